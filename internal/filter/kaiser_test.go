package filter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/waveform-resampler/internal/mathutil"
	"github.com/tphakala/waveform-resampler/internal/testutil"
)

const (
	magnitudeTolerance = 1e-2
	windowTolerance    = 1e-10

	testAttenuation100 = 100.0
	testZeroCrossings  = 16

	testNumPoints512  = 512
	testNumPoints1024 = 1024
)

func TestKaiserWindow_Shape(t *testing.T) {
	for _, beta := range []float64{0, 5, mathutil.KaiserBeta(testAttenuation100), 14} {
		for _, length := range []int{2, 17, 33, 64} {
			window := KaiserWindow(length, beta)
			require.Len(t, window, length)

			testutil.AssertSymmetric(t, window, windowTolerance)
			testutil.AssertAllInRange(t, window, 0, 1+windowTolerance)

			edge := 1 / mathutil.BesselI0(beta)
			assert.InDelta(t, edge, window[0], windowTolerance, "beta %v length %d", beta, length)

			if length%2 == 1 {
				testutil.AssertCenterIsMax(t, window)
				assert.InDelta(t, 1.0, window[length/2], windowTolerance)
			}
		}
	}
}

func TestKaiserWindow_ZeroBetaIsRectangular(t *testing.T) {
	for _, w := range KaiserWindow(9, 0) {
		assert.InDelta(t, 1.0, w, windowTolerance)
	}
}

func TestKaiserWindow_Degenerate(t *testing.T) {
	assert.Nil(t, KaiserWindow(0, 5))
	assert.Nil(t, KaiserWindow(-3, 5))
	assert.Equal(t, []float64{1}, KaiserWindow(1, 5))
}

// TestKaiserWindow_MatchesKernelTaper samples the window at half-lobe
// spacing and compares it with the kernel divided by its sinc factor.
func TestKaiserWindow_MatchesKernelTaper(t *testing.T) {
	k, err := NewKaiserKernel(testZeroCrossings, testAttenuation100)
	require.NoError(t, err)

	window := KaiserWindow(4*testZeroCrossings+1, k.Beta())
	for n := 1; n < len(window)-1; n += 2 {
		u := float64(n-2*testZeroCrossings) / 2
		assert.InDelta(t, k.Eval(u)/Sinc(u), window[n], 1e-12, "u=%v", u)
	}
}

func TestKaiserAt(t *testing.T) {
	const beta = 8.0
	i0Beta := mathutil.BesselI0(beta)

	assert.InDelta(t, 1.0, kaiserAt(0, beta, i0Beta), windowTolerance)
	assert.InDelta(t, kaiserAt(0.4, beta, i0Beta), kaiserAt(-0.4, beta, i0Beta), windowTolerance)
	assert.Less(t, kaiserAt(0.8, beta, i0Beta), kaiserAt(0.4, beta, i0Beta))

	// The endpoints and anything beyond clamp to the edge value.
	for _, x := range []float64{-1, 1, 1.5} {
		assert.InDelta(t, 1/i0Beta, kaiserAt(x, beta, i0Beta), windowTolerance, "x=%v", x)
	}
}

func TestSinc(t *testing.T) {
	assert.InDelta(t, 1.0, Sinc(0), windowTolerance)
	for _, x := range []float64{1, 2, 3, -1, -5} {
		assert.InDelta(t, 0.0, Sinc(x), windowTolerance, "sinc(%v)", x)
	}
	assert.InDelta(t, 2/math.Pi, Sinc(0.5), windowTolerance)
	assert.InDelta(t, Sinc(0.3), Sinc(-0.3), windowTolerance)
}

// TestComputeFrequencyResponse uses the [1/4, 1/2, 1/4] smoother, whose
// response is cos²(πf): unity at DC and a null at Nyquist.
func TestComputeFrequencyResponse(t *testing.T) {
	response := ComputeFrequencyResponse([]float64{0.25, 0.5, 0.25}, testNumPoints512)

	require.Len(t, response.Frequencies, testNumPoints512)
	require.Len(t, response.Magnitude, testNumPoints512)
	require.Len(t, response.Phase, testNumPoints512)

	for i, f := range response.Frequencies {
		want := math.Pow(math.Cos(math.Pi*f), 2)
		assert.InDelta(t, want, response.Magnitude[i], 1e-12, "f=%v", f)
	}
	assert.LessOrEqual(t, response.Magnitude[testNumPoints512-1], magnitudeTolerance)

	assert.Len(t, ComputeFrequencyResponse([]float64{1}, 0).Frequencies, defaultResponsePoints)
}

func TestMagnitudeDB(t *testing.T) {
	tests := []struct {
		mag  float64
		want float64
	}{
		{1, 0},
		{0.5, -6.0206},
		{0.1, -20},
		{0.001, -60},
		{0, -200},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, MagnitudeDB(tt.mag), 0.01, "magnitude %v", tt.mag)
	}
}

func BenchmarkKaiserWindow(b *testing.B) {
	beta := mathutil.KaiserBeta(testAttenuation100)
	for b.Loop() {
		_ = KaiserWindow(2*testZeroCrossings+1, beta)
	}
}

func BenchmarkComputeFrequencyResponse(b *testing.B) {
	coeffs := KaiserWindow(201, mathutil.KaiserBeta(testAttenuation100))
	for b.Loop() {
		_ = ComputeFrequencyResponse(coeffs, testNumPoints1024)
	}
}
