package dbfieldtest

import (
	"context"
	"sync"

	"github.com/softilium/dbfield"
)

// RequiredColumn is one recorded RequireField call.
type RequiredColumn struct {
	Table  string
	Column string
	Spec   dbfield.ColumnSpec
}

// SchemaRecorder is an in-memory dbfield.SchemaRequirer. Err, when set, is
// returned from every call after recording it.
type SchemaRecorder struct {
	lock  sync.Mutex
	calls []RequiredColumn
	Err   error
}

func (T *SchemaRecorder) RequireField(ctx context.Context, table, column string, spec dbfield.ColumnSpec) error {
	T.lock.Lock()
	defer T.lock.Unlock()
	T.calls = append(T.calls, RequiredColumn{Table: table, Column: column, Spec: spec})
	return T.Err
}

// Calls returns a copy of the recorded calls in call order.
func (T *SchemaRecorder) Calls() []RequiredColumn {
	T.lock.Lock()
	defer T.lock.Unlock()
	res := make([]RequiredColumn, len(T.calls))
	copy(res, T.calls)
	return res
}

var _ dbfield.SchemaRequirer = (*SchemaRecorder)(nil)
