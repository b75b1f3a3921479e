package identity_test

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invocation-capture/identity"
)

func TestAllocator_Next(t *testing.T) {
	t.Parallel()

	a := identity.NewAllocator()
	first := a.Next()
	second := a.Next()

	assert.Equal(t, int32(math.MinInt32+1), first)
	assert.Equal(t, first+1, second)
	assert.Equal(t, second, a.Current())
}

func TestAllocator_SeedIsDisjointFromStart(t *testing.T) {
	t.Parallel()

	a := identity.NewAllocator()
	for range 1000 {
		assert.NotEqual(t, identity.Seed, a.Next())
	}
}

func TestAllocator_Concurrent(t *testing.T) {
	t.Parallel()

	const (
		workers = 16
		perWork = 500
	)

	a := identity.NewAllocatorAt(0)
	results := make(chan int32, workers*perWork)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWork {
				results <- a.Next()
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[int32]struct{}, workers*perWork)
	for id := range results {
		_, dup := seen[id]
		require.False(t, dup, "identity %d issued twice", id)
		seen[id] = struct{}{}
	}

	assert.Len(t, seen, workers*perWork)
	assert.Equal(t, int32(workers*perWork), a.Current())
}
