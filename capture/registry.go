package capture

import (
	"fmt"
	"log/slog"
	"reflect"
	"sync/atomic"

	"github.com/davecgh/go-spew/spew"
	lru "github.com/hashicorp/golang-lru/v2"

	"invocation-capture/internal/bare"
)

// DefaultCapacity is the number of placeholders a Registry remembers before
// it starts evicting the least recently used ones.
const DefaultCapacity = 5000

// fingerprint renders non-comparable placeholders into a stable key.
var fingerprint = spew.ConfigState{
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
	SortKeys:                true,
}

// registryKey identifies a placeholder. Exactly one of value, ref and print
// is set, depending on how the placeholder's type supports identity.
type registryKey struct {
	typ   reflect.Type
	value any     // comparable placeholders, including pointers
	ref   uintptr // slices, maps and funcs, pinned by registryEntry.placeholder
	print string  // other non-comparable placeholders
}

type registryEntry struct {
	placeholder any
	arg         *Argument
}

// RegistryStats is a snapshot of the registry counters.
type RegistryStats struct {
	Size      int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Registry maps issued placeholders back to their chains. It is safe for
// concurrent use.
type Registry struct {
	cache    *lru.Cache[registryKey, registryEntry]
	capacity int
	logger   *slog.Logger

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// NewRegistry creates a registry holding at most capacity placeholders.
func NewRegistry(capacity int, logger *slog.Logger) (*Registry, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := &Registry{capacity: capacity, logger: logger}

	cache, err := lru.NewWithEvict(capacity, r.onEvict)
	if err != nil {
		return nil, fmt.Errorf("%w: registry capacity %d: %w", ErrConfiguration, capacity, err)
	}

	r.cache = cache

	return r, nil
}

func (r *Registry) onEvict(key registryKey, entry registryEntry) {
	r.evictions.Add(1)
	r.logger.Debug("placeholder evicted",
		slog.String("type", typeName(key.typ)),
		slog.String("argument", entry.arg.String()))
}

// Bind remembers that placeholder stands for arg. Nil placeholders are
// ignored since they carry no identity.
func (r *Registry) Bind(placeholder any, arg *Argument) {
	key, ok := keyOf(placeholder)
	if !ok {
		r.logger.Debug("placeholder without identity is not bound", slog.Any("placeholder", placeholder))
		return
	}

	if key.print != "" {
		r.logger.Debug("placeholder bound by fingerprint", slog.String("type", typeName(key.typ)))
	}

	if prev, ok := r.cache.Peek(key); ok && !prev.arg.Equal(arg) {
		r.logger.Debug("placeholder rebound to another argument",
			slog.String("type", typeName(key.typ)),
			slog.String("previous", prev.arg.String()),
			slog.String("argument", arg.String()))
	}

	r.cache.Add(key, registryEntry{placeholder: placeholder, arg: arg})
}

// Lookup returns the chain bound to placeholder and marks it as recently used.
func (r *Registry) Lookup(placeholder any) (*Argument, bool) {
	key, ok := keyOf(placeholder)
	if !ok {
		r.misses.Add(1)
		return nil, false
	}

	entry, ok := r.cache.Get(key)
	if !ok {
		r.misses.Add(1)
		return nil, false
	}

	r.hits.Add(1)

	return entry.arg, true
}

// resolve is Lookup without touching the hit and miss counters. It is used
// on call arguments, most of which are literals.
func (r *Registry) resolve(placeholder any) (*Argument, bool) {
	key, ok := keyOf(placeholder)
	if !ok {
		return nil, false
	}

	entry, ok := r.cache.Get(key)
	if !ok {
		return nil, false
	}

	return entry.arg, true
}

// Len returns the number of bound placeholders.
func (r *Registry) Len() int {
	return r.cache.Len()
}

// Capacity returns the configured bound.
func (r *Registry) Capacity() int {
	return r.capacity
}

// Purge forgets every placeholder. Evictions are not counted.
func (r *Registry) Purge() {
	evictions := r.evictions.Load()
	r.cache.Purge()
	r.evictions.Store(evictions)
}

// Stats returns the current counters.
func (r *Registry) Stats() RegistryStats {
	return RegistryStats{
		Size:      r.cache.Len(),
		Capacity:  r.capacity,
		Hits:      r.hits.Load(),
		Misses:    r.misses.Load(),
		Evictions: r.evictions.Load(),
	}
}

func keyOf(placeholder any) (registryKey, bool) {
	if placeholder == nil {
		return registryKey{}, false
	}

	rv := reflect.ValueOf(placeholder)
	t := rv.Type()

	switch t.Kind() {
	case reflect.Slice, reflect.Map:
		if rv.IsNil() {
			return registryKey{}, false
		}

		return registryKey{typ: t, ref: rv.Pointer()}, true

	case reflect.Func:
		if rv.IsNil() {
			return registryKey{}, false
		}

		return registryKey{typ: t, ref: bare.FuncPointer(placeholder)}, true

	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		if rv.IsNil() {
			return registryKey{}, false
		}
	}

	if rv.Comparable() {
		return registryKey{typ: t, value: placeholder}, true
	}

	return registryKey{typ: t, print: fingerprint.Sdump(placeholder)}, true
}
