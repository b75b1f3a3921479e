// Package bare holds the low-level primitives placeholder synthesis falls
// back to. Values produced here skip every constructor a type may have, so
// the invariants such constructors enforce do not hold for them.
package bare

import (
	"errors"
	"fmt"
	"reflect"
	"unsafe"
)

var ErrNotAllocable = errors.New("type is not allocable")

// New returns an addressable zero value of t without running any
// initialization logic.
func New(t reflect.Type) (v reflect.Value, err error) {
	if t == nil {
		return reflect.Value{}, fmt.Errorf("%w: nil type", ErrNotAllocable)
	}

	defer func() {
		if r := recover(); r != nil {
			v, err = reflect.Value{}, fmt.Errorf("%w: %s: %v", ErrNotAllocable, t, r)
		}
	}()

	return reflect.New(t).Elem(), nil
}

// eface mirrors the runtime layout of an empty interface.
type eface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// FuncPointer returns the address of the closure behind fn. Unlike
// reflect.Value.Pointer it tells apart two closures sharing the same code,
// which is the case for every function built by reflect.MakeFunc.
// It returns 0 when fn is not a non-nil func.
func FuncPointer(fn any) uintptr {
	if fn == nil || reflect.TypeOf(fn).Kind() != reflect.Func {
		return 0
	}

	return uintptr((*eface)(unsafe.Pointer(&fn)).data)
}
