package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuler_ConfiguredRatio(t *testing.T) {
	// 500mm over 2000px is 0.25 mm/px.
	r := NewRuler(2000, 500)

	assert.InDelta(t, 50.0, r.ToMM(200), 1e-9)
	assert.InDelta(t, 200.0, r.ToPixels(50), 1e-9)
}

func TestRuler_FallbackRatio(t *testing.T) {
	t.Run("no real-world width", func(t *testing.T) {
		r := NewRuler(1000, 0)
		assert.InDelta(t, 25.0, r.ToMM(100), 1e-9)
	})

	t.Run("no canvas width", func(t *testing.T) {
		r := NewRuler(0, 500)
		assert.InDelta(t, 25.0, r.ToMM(100), 1e-9)
	})

	t.Run("negative metadata", func(t *testing.T) {
		r := NewRuler(-10, -5)
		assert.InDelta(t, DefaultMMPerPixel, r.ToMM(1), 1e-9)
	})
}

func TestRuler_RoundTrip(t *testing.T) {
	r := NewRuler(1800, 420)

	for _, px := range []float64{1, 37.5, 250, 1800} {
		assert.InDelta(t, px, r.ToPixels(r.ToMM(px)), 1e-9)
	}
}
