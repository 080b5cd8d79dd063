package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBounds(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		valid bool
	}{
		{"Valid viewport", "52.0,4.0,53.0,5.0", true},
		{"With spaces", "52.0, 4.0, 53.0, 5.0", true},
		{"Too few parts", "52.0,4.0,53.0", false},
		{"Non-numeric", "52.0,4.0,53.0,abc", false},
		{"Inverted corners", "53.0,5.0,52.0,4.0", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bound := ParseBounds(tt.raw)
			if tt.valid {
				assert.NotNil(t, bound)
			} else {
				assert.Nil(t, bound)
			}
		})
	}
}

func TestInBounds(t *testing.T) {
	bound := ParseBounds("52.0,4.0,53.0,5.0")
	require.NotNil(t, bound)

	assert.True(t, InBounds(*bound, 52.5, 4.5))
	assert.True(t, InBounds(*bound, 52.0, 4.0), "corner is inclusive")
	assert.False(t, InBounds(*bound, 51.9, 4.5))
	assert.False(t, InBounds(*bound, 52.5, 5.1))
}
