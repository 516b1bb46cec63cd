package dbfield

import (
	"fmt"
	"sort"
)

// Record is the row a field saves into or reads siblings from.
type Record interface {
	Get(name string) (any, bool)
	Set(name string, value any)
}

// MapRecord is a Record backed by a plain map keyed by column name.
// It marshals to JSON as an object.
type MapRecord map[string]any

func (T MapRecord) Get(name string) (any, bool) {
	v, ok := T[name]
	return v, ok
}

func (T MapRecord) Set(name string, value any) {
	T[name] = value
}

// Names returns the keys, sorted.
func (T MapRecord) Names() []string {
	res := make([]string, 0, len(T))
	for k := range T {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}

// LoadFields sets each named field from the record value of the same name.
// Fields with no entry in the record are left untouched.
func LoadFields(r Record, fields ...IDBField) error {
	for _, f := range fields {
		if f.Name() == "" {
			return &NamelessFieldError{Op: "LoadFields", Kind: f.Kind()}
		}
		v, ok := r.Get(f.Name())
		if !ok {
			continue
		}
		if err := f.SetValue(v, r); err != nil {
			return fmt.Errorf("LoadFields: failed to set field %s: %w", f.Name(), err)
		}
	}
	return nil
}

// SaveFields copies every field into the record.
func SaveFields(r Record, fields ...IDBField) error {
	for _, f := range fields {
		if err := f.SaveInto(r); err != nil {
			return fmt.Errorf("SaveFields: %w", err)
		}
	}
	return nil
}
