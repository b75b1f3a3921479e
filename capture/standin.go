package capture

import (
	"fmt"
	"reflect"
	"sync"
)

var (
	proxyType  = reflect.TypeFor[*Proxy]()
	errorType  = reflect.TypeFor[error]()
	stringType = reflect.TypeFor[string]()
)

// Proxy records the calls made on a stand-in. Generated adapters embed a
// *Proxy and forward every method of their interface to Invoke.
type Proxy struct {
	factory *Factory
	arg     *Argument
}

// Invoke appends the call to the proxy's chain and returns one value per
// result type. The first result is a new placeholder whose chain ends with
// this call; the remaining results, and results of type error, are zero.
//
// Invoke panics with a *PlaceholderCreationError when no placeholder can be
// built for the first result type.
func (p *Proxy) Invoke(method string, results []reflect.Type, args ...any) []any {
	var result reflect.Type
	if len(results) > 0 {
		result = results[0]
	}

	next := p.arg.Append(method, result, p.factory.resolveArgs(args)...)

	out := make([]any, len(results))
	if result == nil || result == errorType {
		return out
	}

	v, err := p.factory.createArgument(result, next)
	if err != nil {
		panic(err)
	}

	out[0] = v

	return out
}

// String describes the stand-in by the chain it records.
func (p *Proxy) String() string {
	if p == nil {
		return "stand-in <nil>"
	}

	return "stand-in " + p.arg.String()
}

func (p *Proxy) capturedArgument() *Argument {
	if p == nil {
		return nil
	}

	return p.arg
}

// standIn is implemented by every adapter embedding *Proxy.
type standIn interface {
	capturedArgument() *Argument
}

// Result returns results[i] as a T, or the zero T when it is missing.
func Result[T any](results []any, i int) T {
	if i < len(results) {
		if v, ok := results[i].(T); ok {
			return v
		}
	}

	var zero T

	return zero
}

// StandIns is the table of adapters implementing interfaces on top of a
// Proxy, keyed by interface type.
type StandIns struct {
	mu       sync.RWMutex
	builders map[reflect.Type]func(*Proxy) any
}

var standIns = &StandIns{builders: make(map[reflect.Type]func(*Proxy) any)}

// RegisterStandIn makes build the adapter used for interface T. Generated
// code calls it from init; registering a non-interface type panics.
func RegisterStandIn[T any](build func(*Proxy) T) {
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Interface {
		panic(fmt.Sprintf("capture: stand-in registered for %s which is not an interface", t))
	}

	standIns.mu.Lock()
	defer standIns.mu.Unlock()

	standIns.builders[t] = func(p *Proxy) any { return build(p) }
}

func (s *StandIns) lookup(t reflect.Type) (func(*Proxy) any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	build, ok := s.builders[t]

	return build, ok
}

// proxable reports whether a stand-in can be produced for t.
func proxable(t reflect.Type) bool {
	switch Classify(t) {
	case Interceptable:
		if t.Kind() == reflect.Func {
			return true
		}

		_, ok := standIns.lookup(t)

		return ok || proxyType.Implements(t)
	default:
		return false
	}
}

func (f *Factory) standIn(t reflect.Type, arg *Argument) (any, error) {
	p := &Proxy{factory: f, arg: arg}

	if t.Kind() == reflect.Func {
		return funcStandIn(t, p), nil
	}

	if build, ok := standIns.lookup(t); ok {
		return build(p), nil
	}

	if proxyType.Implements(t) {
		return p, nil
	}

	return nil, &PlaceholderCreationError{Type: t, Err: ErrNoStandIn}
}

// funcStandIn builds a function of type t recording each of its calls under
// the name of t.
func funcStandIn(t reflect.Type, p *Proxy) any {
	name := t.Name()
	if name == "" {
		name = "func"
	}

	results := make([]reflect.Type, t.NumOut())
	for i := range results {
		results[i] = t.Out(i)
	}

	return reflect.MakeFunc(t, func(in []reflect.Value) []reflect.Value {
		args := make([]any, len(in))
		for i, v := range in {
			args[i] = v.Interface()
		}

		out := p.Invoke(name, results, args...)

		values := make([]reflect.Value, len(results))
		for i, rt := range results {
			v := reflect.New(rt).Elem()
			if out[i] != nil {
				v.Set(reflect.ValueOf(out[i]))
			}

			values[i] = v
		}

		return values
	}).Interface()
}

type errorStandIn struct {
	*Proxy
}

func (s *errorStandIn) Error() string {
	return Result[string](s.Proxy.Invoke("Error", []reflect.Type{stringType}), 0)
}

func init() {
	RegisterStandIn(func(p *Proxy) error { return &errorStandIn{Proxy: p} })
}
