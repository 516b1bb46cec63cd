// Package dbfieldtest provides test doubles for code built on dbfield.
package dbfieldtest

import (
	"sort"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/softilium/dbfield"
)

// RecordMock is a dbfield.Record whose Get answers from a fixed property
// map. Set calls are accepted and recorded.
type RecordMock struct {
	mock.Mock
	ClassName string
}

func (m *RecordMock) Get(name string) (any, bool) {
	args := m.Called(name)
	return args.Get(0), args.Bool(1)
}

func (m *RecordMock) Set(name string, value any) {
	m.Called(name, value)
}

var _ dbfield.Record = (*RecordMock)(nil)

// GetModelMock builds a RecordMock for className. Mapped names return their
// value, every other name reports absent. No model construction logic runs.
func GetModelMock(className string, properties map[string]any) *RecordMock {
	m := &RecordMock{ClassName: className}
	names := make([]string, 0, len(properties))
	for k := range properties {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		m.On("Get", k).Return(properties[k], true).Maybe()
	}
	m.On("Get", mock.Anything).Return(nil, false).Maybe()
	m.On("Set", mock.Anything, mock.Anything).Return().Maybe()
	return m
}

// TestingT is the part of *testing.T the mocker needs.
type TestingT interface {
	mock.TestingT
	Cleanup(func())
}

// ModelMocker creates record mocks and checks their expectations when the
// test ends. Embed it in a suite or keep one per test.
type ModelMocker struct {
	t     TestingT
	lock  sync.Mutex
	mocks []*RecordMock
}

func NewModelMocker(t TestingT) *ModelMocker {
	res := &ModelMocker{t: t}
	t.Cleanup(res.AssertExpectations)
	return res
}

func (T *ModelMocker) GetModelMock(className string, properties map[string]any) *RecordMock {
	m := GetModelMock(className, properties)
	m.Test(T.t)

	T.lock.Lock()
	defer T.lock.Unlock()
	T.mocks = append(T.mocks, m)
	return m
}

// AssertExpectations checks every mock created so far.
func (T *ModelMocker) AssertExpectations() {
	T.lock.Lock()
	defer T.lock.Unlock()
	for _, m := range T.mocks {
		m.AssertExpectations(T.t)
	}
}
