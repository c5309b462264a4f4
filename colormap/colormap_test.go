package colormap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLUTEndpoints(t *testing.T) {
	// The table endpoints are the first and last anchors exactly.
	first := Viridis.At(0)
	last := Viridis.At(1)
	assert.InDelta(t, 0.267, first[0], 1e-4)
	assert.InDelta(t, 0.329, first[2], 1e-4)
	assert.InDelta(t, 0.993, last[0], 1e-4)
	assert.InDelta(t, 0.144, last[2], 1e-4)
}

func TestAtClamps(t *testing.T) {
	assert.Equal(t, Gray.At(0), Gray.At(-3))
	assert.Equal(t, Gray.At(1), Gray.At(7))
}

func TestGrayMonotone(t *testing.T) {
	prev := float32(-1)
	for i := 0; i <= 100; i++ {
		v := Gray.At(float32(i) / 100)
		assert.Equal(t, v[0], v[1])
		assert.Equal(t, v[1], v[2])
		assert.GreaterOrEqual(t, v[0], prev)
		prev = v[0]
	}
}

func TestByName(t *testing.T) {
	tests := []struct {
		name string
		want *Colormap
	}{
		{name: "viridis", want: Viridis},
		{name: "plasma", want: Plasma},
		{name: "inferno", want: Inferno},
		{name: "gray", want: Gray},
		{name: "no-such-map", want: Viridis},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Same(t, tt.want, ByName(tt.name))
		})
	}
}

func TestAllNamed(t *testing.T) {
	seen := map[string]bool{}
	for _, cm := range All {
		assert.NotEmpty(t, cm.Name())
		assert.False(t, seen[cm.Name()], "duplicate colormap name %q", cm.Name())
		seen[cm.Name()] = true
	}
}
