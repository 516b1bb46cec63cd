package dbfield

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Constructor builds an empty named field of one type.
type Constructor func(name string) IDBField

type registration struct {
	name string
	kind Kind
	ctor Constructor
}

var (
	registryLock sync.RWMutex
	registry     = map[string]registration{}
	kindRegistry = map[Kind]registration{}
)

func init() {
	RegisterType("Varchar", KindVarchar, func(name string) IDBField { return NewVarchar(name) })
	RegisterType("Int", KindInt, func(name string) IDBField { return NewInt(name) })
	RegisterType("Bigint", KindBigint, func(name string) IDBField { return NewBigint(name) })
	RegisterType("ForeignKey", KindForeignKey, func(name string) IDBField { return NewForeignKey(name) })
	RegisterType("Boolean", KindBoolean, func(name string) IDBField { return NewBoolean(name) })
	RegisterType("Decimal", KindDecimal, func(name string) IDBField { return NewDecimal(name) })
	RegisterType("Datetime", KindDatetime, func(name string) IDBField { return NewDatetime(name) })
}

// RegisterType adds or replaces a field type. Names are case-insensitive.
// The most recent registration for a kind is what CreateKind uses.
func RegisterType(typeName string, kind Kind, ctor Constructor) {
	if typeName == "" || ctor == nil {
		panic("dbfield.RegisterType: empty type name or nil constructor")
	}
	registryLock.Lock()
	defer registryLock.Unlock()

	r := registration{name: typeName, kind: kind, ctor: ctor}
	registry[strings.ToLower(typeName)] = r
	kindRegistry[kind] = r
}

// RegisteredTypes lists the registered type names, sorted.
func RegisteredTypes() []string {
	registryLock.RLock()
	defer registryLock.RUnlock()

	res := make([]string, 0, len(registry))
	for _, r := range registry {
		res = append(res, r.name)
	}
	sort.Strings(res)
	return res
}

// Create builds a field of the named type, optionally named, holding value.
// A nil value leaves the field without a value.
func Create(typeName string, value any, name ...string) (IDBField, error) {
	registryLock.RLock()
	r, ok := registry[strings.ToLower(strings.TrimSpace(typeName))]
	registryLock.RUnlock()
	if !ok {
		return nil, &UnknownTypeError{TypeName: typeName}
	}
	return build(r, value, name)
}

// CreateKind is Create keyed by Kind.
func CreateKind(kind Kind, value any, name ...string) (IDBField, error) {
	registryLock.RLock()
	r, ok := kindRegistry[kind]
	registryLock.RUnlock()
	if !ok {
		return nil, &UnknownTypeError{TypeName: kind.String()}
	}
	return build(r, value, name)
}

func build(r registration, value any, name []string) (IDBField, error) {
	fieldName := ""
	if len(name) > 0 {
		fieldName = name[0]
	}
	f := r.ctor(fieldName)
	if value != nil {
		if err := f.SetValue(value, nil); err != nil {
			return nil, fmt.Errorf("Create: failed to set %s value: %w", r.name, err)
		}
	}
	return f, nil
}
