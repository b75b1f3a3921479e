package capture

import (
	"bytes"
	"log/slog"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T, capacity int) *Registry {
	t.Helper()

	r, err := NewRegistry(capacity, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	return r
}

func TestNewRegistry_InvalidCapacity(t *testing.T) {
	_, err := NewRegistry(0, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestRegistry_BindLookup(t *testing.T) {
	r := newTestRegistry(t, 10)
	arg := NewArgument(intType)

	r.Bind(-2147483647, arg)

	got, ok := r.Lookup(-2147483647)
	require.True(t, ok)
	assert.Same(t, arg, got)

	_, ok = r.Lookup(-2147483646)
	assert.False(t, ok)

	// same value, other type
	_, ok = r.Lookup(int32(-2147483647))
	assert.False(t, ok)

	stats := r.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(2), stats.Misses)
	assert.Equal(t, 1, stats.Size)
	assert.Equal(t, 10, stats.Capacity)
}

func TestRegistry_NilIsNeverBound(t *testing.T) {
	r := newTestRegistry(t, 10)

	var p *int
	var m map[string]int

	r.Bind(nil, NewArgument(intType))
	r.Bind(p, NewArgument(intType))
	r.Bind(m, NewArgument(intType))

	assert.Equal(t, 0, r.Len())

	_, ok := r.Lookup(nil)
	assert.False(t, ok)
}

func TestRegistry_ReferenceIdentity(t *testing.T) {
	r := newTestRegistry(t, 10)

	s1 := []int{0}
	s2 := []int{0}
	m1 := map[string]int{}
	f1 := func() {}

	a1 := NewArgument(intType).Append("One", intType)
	a2 := NewArgument(intType).Append("Two", intType)
	a3 := NewArgument(intType).Append("Three", intType)
	a4 := NewArgument(intType).Append("Four", intType)

	r.Bind(s1, a1)
	r.Bind(s2, a2)
	r.Bind(m1, a3)
	r.Bind(f1, a4)

	got, ok := r.Lookup(s1)
	require.True(t, ok)
	assert.Same(t, a1, got)

	got, ok = r.Lookup(s2)
	require.True(t, ok)
	assert.Same(t, a2, got)

	got, ok = r.Lookup(m1)
	require.True(t, ok)
	assert.Same(t, a3, got)

	got, ok = r.Lookup(f1)
	require.True(t, ok)
	assert.Same(t, a4, got)

	_, ok = r.Lookup(map[string]int{})
	assert.False(t, ok)
}

func TestRegistry_Fingerprint(t *testing.T) {
	type withSlice struct {
		ID   int
		Tags []string
	}

	r := newTestRegistry(t, 10)
	arg := NewArgument(reflect.TypeFor[withSlice]())

	r.Bind(withSlice{ID: 7, Tags: []string{"a"}}, arg)

	got, ok := r.Lookup(withSlice{ID: 7, Tags: []string{"a"}})
	require.True(t, ok)
	assert.Same(t, arg, got)

	_, ok = r.Lookup(withSlice{ID: 8, Tags: []string{"a"}})
	assert.False(t, ok)
}

func TestRegistry_Eviction(t *testing.T) {
	r := newTestRegistry(t, 3)

	for i := range 5 {
		r.Bind(i, NewArgument(intType))
	}

	assert.Equal(t, 3, r.Len())
	assert.Equal(t, uint64(2), r.Stats().Evictions)

	for i := range 2 {
		_, ok := r.Lookup(i)
		assert.False(t, ok, "placeholder %d should be evicted", i)
	}

	for i := 2; i < 5; i++ {
		_, ok := r.Lookup(i)
		assert.True(t, ok, "placeholder %d should be kept", i)
	}

	r.Purge()
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, uint64(2), r.Stats().Evictions)
}

func TestRegistry_LookupRefreshes(t *testing.T) {
	r := newTestRegistry(t, 2)

	r.Bind(1, NewArgument(intType))
	r.Bind(2, NewArgument(intType))

	_, ok := r.Lookup(1)
	require.True(t, ok)

	r.Bind(3, NewArgument(intType))

	_, ok = r.Lookup(1)
	assert.True(t, ok)

	_, ok = r.Lookup(2)
	assert.False(t, ok)
}

func TestRegistry_RebindIsLogged(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r, err := NewRegistry(10, logger)
	require.NoError(t, err)

	root := NewArgument(intType)
	first := root.Append("Len", intType)
	second := root.Append("Cap", intType)

	r.Bind(0, first)
	r.Bind(0, root.Append("Len", intType))
	assert.NotContains(t, buf.String(), "rebound")

	r.Bind(0, second)
	assert.Contains(t, buf.String(), "placeholder rebound to another argument")
	assert.Contains(t, buf.String(), "previous=int.Len()")

	got, ok := r.Lookup(0)
	require.True(t, ok)
	assert.Same(t, second, got)
}

func TestRegistry_ResolveKeepsCounters(t *testing.T) {
	r := newTestRegistry(t, 10)
	arg := NewArgument(intType)

	r.Bind(-7, arg)

	got, ok := r.resolve(-7)
	require.True(t, ok)
	assert.Same(t, arg, got)

	_, ok = r.resolve("literal")
	assert.False(t, ok)

	stats := r.Stats()
	assert.Zero(t, stats.Hits)
	assert.Zero(t, stats.Misses)
}
