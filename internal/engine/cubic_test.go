package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tphakala/waveform-resampler/internal/testutil"
)

// TestLinearConverter_Ramp verifies that linear interpolation reproduces a
// ramp exactly and holds the last sample past the end.
func TestLinearConverter_Ramp(t *testing.T) {
	for _, target := range []uint32{66150, 48000, 44099, 29400} {
		r := mustRatio(t, 44100, target)
		src := testutil.GenerateRamp(0, 1, 1000)
		dst := convert(t, NewLinearConverter(r), r, src)

		last := float64(len(src) - 1)
		for j, v := range dst {
			want := min(float64(j)*float64(r.Down)/float64(r.Up), last)
			if !assert.InDelta(t, want, v, 1e-9, "ratio %s frame %d", r, j) {
				break
			}
		}
	}
}

// TestCubicConverter_Ramp verifies that Catmull-Rom interpolation is exact
// for linear data away from the held edges.
func TestCubicConverter_Ramp(t *testing.T) {
	r := mustRatio(t, 44100, 48000)
	src := testutil.GenerateRamp(-1, 0.002, 1000)
	dst := convert(t, NewCubicConverter(r), r, src)

	for j, v := range dst {
		pos := float64(j) * float64(r.Down) / float64(r.Up)
		if pos < 1 || pos > float64(len(src)-3) {
			continue
		}
		want := -1 + 0.002*pos
		if !assert.InDelta(t, want, v, 1e-9, "frame %d", j) {
			break
		}
	}
}

// TestCubicConverter_EdgesHeld verifies that values outside the channel
// repeat the edge samples.
func TestCubicConverter_EdgesHeld(t *testing.T) {
	r := mustRatio(t, 1, 4)
	src := []float64{2, 2}
	dst := convert(t, NewCubicConverter(r), r, src)

	assert.Len(t, dst, 8)
	for _, v := range dst {
		assert.InDelta(t, 2.0, v, 1e-12)
	}
}

func TestHermite(t *testing.T) {
	assert.InDelta(t, 1.0, hermite(0, 1, 2, 3, 0), 1e-15)
	assert.InDelta(t, 2.0, hermite(0, 1, 2, 3, 1), 1e-15)
	assert.InDelta(t, 1.5, hermite(0, 1, 2, 3, 0.5), 1e-15)
	// Symmetric data peaks at the midpoint.
	assert.InDelta(t, 1.125, hermite(0, 1, 1, 0, 0.5), 1e-15)
}

func TestInterpolatorsInfo(t *testing.T) {
	r := mustRatio(t, 44100, 48000)

	linear := NewLinearConverter(r).Info()
	assert.Equal(t, "linear", linear.Algorithm)
	assert.Equal(t, linearInterpolationPoints, linear.Taps)

	cubic := NewCubicConverter(r).Info()
	assert.Equal(t, "cubic", cubic.Algorithm)
	assert.Equal(t, cubicInterpolationPoints, cubic.Taps)
}

func BenchmarkCubicConverter(b *testing.B) {
	r := mustRatio(b, 44100, 48000)
	src := testutil.GenerateNoise(1, 0.5, 44100)
	dst := make([]float64, r.OutputFrames(len(src)))
	c := NewCubicConverter(r)

	for b.Loop() {
		_ = c.Convert(dst, src)
	}
}
