package capture

import (
	"fmt"
	"reflect"
	"sync"
)

// Creator builds one placeholder of a sealed type from an identity.
type Creator func(id int32) any

// Creators is the registry of custom creators for sealed types the
// synthesizer cannot handle natively. Registrations usually happen at startup
// but lookups stay safe while one is in flight.
type Creators struct {
	mu       sync.RWMutex
	creators map[reflect.Type]Creator
}

// NewCreators returns an empty registry.
func NewCreators() *Creators {
	return &Creators{creators: make(map[reflect.Type]Creator)}
}

// Register records creator for t. Interceptable types already have a stand-in
// path, so registering one of them is a configuration error.
func (c *Creators) Register(t reflect.Type, creator Creator) error {
	if t == nil {
		return &ConfigurationError{Err: ErrNilType}
	}

	if Classify(t) != Sealed {
		return &ConfigurationError{Type: t, Err: ErrNotSealed}
	}

	if creator == nil {
		return &ConfigurationError{Type: t, Err: ErrNilCreator}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.creators[t] = creator

	return nil
}

// Deregister removes the creator of t, if any.
func (c *Creators) Deregister(t reflect.Type) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.creators, t)
}

// Lookup returns the creator registered for t.
func (c *Creators) Lookup(t reflect.Type) (Creator, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	creator, ok := c.creators[t]

	return creator, ok
}

// Enums remembers the representative member of enumerated types: the first
// member in declaration order.
type Enums struct {
	mu    sync.RWMutex
	first map[reflect.Type]reflect.Value
}

// NewEnums returns an empty enumeration table.
func NewEnums() *Enums {
	return &Enums{first: make(map[reflect.Type]reflect.Value)}
}

// Register declares t as an enumeration with the given members.
func (e *Enums) Register(t reflect.Type, members ...any) error {
	if t == nil {
		return &ConfigurationError{Err: ErrNilType}
	}

	if len(members) == 0 {
		return &ConfigurationError{Type: t, Err: ErrEmptyEnum}
	}

	for _, m := range members {
		if m == nil || reflect.TypeOf(m) != t {
			return &ConfigurationError{Type: t, Err: fmt.Errorf("%w: %T", ErrEnumMemberType, m)}
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.first[t] = reflect.ValueOf(members[0])

	return nil
}

// First returns the first member of t when t is an enumeration, either
// registered or exposing a `Values() []T` method on its zero value.
func (e *Enums) First(t reflect.Type) (reflect.Value, bool) {
	e.mu.RLock()
	first, ok := e.first[t]
	e.mu.RUnlock()

	if ok {
		return first, true
	}

	first, ok = declaredFirst(t)
	if !ok {
		return reflect.Value{}, false
	}

	e.mu.Lock()
	e.first[t] = first
	e.mu.Unlock()

	return first, true
}

// declaredFirst follows the `func (T) Values() []T` convention.
func declaredFirst(t reflect.Type) (first reflect.Value, ok bool) {
	if t.Kind() == reflect.Interface || t.Kind() == reflect.Func {
		return reflect.Value{}, false
	}

	m, found := t.MethodByName("Values")
	if !found {
		return reflect.Value{}, false
	}

	// m.Type includes the receiver
	mt := m.Type
	if mt.NumIn() != 1 || mt.NumOut() != 1 || mt.Out(0).Kind() != reflect.Slice || mt.Out(0).Elem() != t {
		return reflect.Value{}, false
	}

	defer func() {
		if r := recover(); r != nil {
			first, ok = reflect.Value{}, false
		}
	}()

	values := m.Func.Call([]reflect.Value{reflect.Zero(t)})[0]
	if values.Len() == 0 {
		return reflect.Value{}, false
	}

	return values.Index(0), true
}
