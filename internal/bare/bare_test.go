package bare

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type guarded struct {
	name  string
	items []int
}

func TestNew(t *testing.T) {
	t.Parallel()

	v, err := New(reflect.TypeFor[guarded]())
	require.NoError(t, err)
	assert.True(t, v.CanSet())
	assert.Equal(t, guarded{}, v.Interface())

	_, err = New(nil)
	assert.ErrorIs(t, err, ErrNotAllocable)
}

func TestFuncPointer(t *testing.T) {
	t.Parallel()

	fnType := reflect.TypeFor[func() int]()
	impl := func([]reflect.Value) []reflect.Value { return []reflect.Value{reflect.ValueOf(1)} }

	a := reflect.MakeFunc(fnType, impl).Interface()
	b := reflect.MakeFunc(fnType, impl).Interface()

	assert.NotZero(t, FuncPointer(a))
	assert.NotEqual(t, FuncPointer(a), FuncPointer(b))
	assert.Equal(t, FuncPointer(a), FuncPointer(a))
	assert.Zero(t, FuncPointer(nil))
	assert.Zero(t, FuncPointer(42))
}
