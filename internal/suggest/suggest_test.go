package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		// Identical strings
		{"", "", 0},
		{"Person", "Person", 0},

		// Empty vs non-empty
		{"", "abc", 3},
		{"abc", "", 3},

		// Single character operations
		{"a", "b", 1},
		{"a", "ab", 1},
		{"ab", "a", 1},

		// Multiple operations
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},

		// Runes, not bytes
		{"café", "cafe", 1},
		{"Straße", "Strasse", 2},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, Distance(tt.a, tt.b))
			// symmetric
			assert.Equal(t, tt.expected, Distance(tt.b, tt.a))
		})
	}
}

func TestScore(t *testing.T) {
	assert.InDelta(t, 1.0, Score("", ""), 0.001)
	assert.InDelta(t, 1.0, Score("Person", "person"), 0.001)
	assert.InDelta(t, 0.0, Score("abc", "xyz"), 0.001)
	assert.InDelta(t, 1.0-3.0/7.0, Score("kitten", "sitting"), 0.001)
}

func TestNames(t *testing.T) {
	candidates := []string{"Address", "Person", "Registry", "Persons"}

	assert.Equal(t, []string{"Person", "Persons"}, Names("Persn", candidates, 3))
	assert.Equal(t, []string{"Person"}, Names("Persn", candidates, 1))
	assert.Equal(t, []string{"Address"}, Names("adress", candidates, 3))
	assert.Empty(t, Names("Status", candidates, 3))
	assert.Empty(t, Names("Person", nil, 3))
}
