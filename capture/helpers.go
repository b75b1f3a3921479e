package capture

import (
	"errors"
	"fmt"
	"reflect"
)

func orDefault(f *Factory) *Factory {
	if f == nil {
		return Default
	}

	return f
}

// Create returns a placeholder of type T. A nil f means Default.
func Create[T any](f *Factory) (T, error) {
	var zero T

	p, err := orDefault(f).CreateArgument(reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}

	v, ok := p.(T)
	if !ok {
		return zero, &PlaceholderCreationError{
			Type: reflect.TypeFor[T](),
			Err:  fmt.Errorf("%w: %T", ErrCreatorOutput, p),
		}
	}

	return v, nil
}

// MustCreate is like Create but panics on error.
func MustCreate[T any](f *Factory) T {
	v, err := Create[T](f)
	if err != nil {
		panic(err)
	}

	return v
}

// Actual returns the chain p stands for. A nil f means Default.
func Actual(f *Factory, p any) (*Argument, error) {
	return orDefault(f).ActualArgument(p)
}

// RegisterCreator installs a typed creator for the sealed type T.
func RegisterCreator[T any](f *Factory, creator func(id int32) T) error {
	if creator == nil {
		return &ConfigurationError{Type: reflect.TypeFor[T](), Err: ErrNilCreator}
	}

	return orDefault(f).RegisterFinalTypeCreator(reflect.TypeFor[T](), func(id int32) any { return creator(id) })
}

// DeregisterCreator removes the creator of T.
func DeregisterCreator[T any](f *Factory) {
	orDefault(f).DeregisterFinalTypeCreator(reflect.TypeFor[T]())
}

// RegisterEnum declares the members of T in order.
func RegisterEnum[T any](f *Factory, members ...T) error {
	anys := make([]any, len(members))
	for i, m := range members {
		anys[i] = m
	}

	return orDefault(f).RegisterEnum(reflect.TypeFor[T](), anys...)
}

// Path runs fn on a fresh placeholder of T and returns the chain of the
// value fn returns:
//
//	arg, err := capture.Path(nil, func(p Person) string { return p.Address().City() })
//	// arg.String() == "Person.Address().City()"
//
// A placeholder that cannot be created along the way is reported as an
// error instead of a panic.
func Path[T, R any](f *Factory, fn func(T) R) (arg *Argument, err error) {
	f = orDefault(f)

	root, err := Create[T](f)
	if err != nil {
		return nil, err
	}

	defer func() {
		r := recover()
		if r == nil {
			return
		}

		if e, ok := r.(error); ok {
			var pce *PlaceholderCreationError
			if errors.As(e, &pce) {
				arg, err = nil, pce
				return
			}
		}

		panic(r)
	}()

	return f.ActualArgument(fn(root))
}
