package resampler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tphakala/waveform-resampler/internal/testutil"
)

const (
	testRate      = 44100
	testFrames    = 10007
	testToneFreq  = 1000.0
	testAmplitude = 0.5
)

// noiseWaveform builds a reproducible multi-channel noise waveform. Each
// channel uses its own seed.
func noiseWaveform(t testing.TB, channels, rate uint32, frames int) *Waveform {
	t.Helper()
	planar := make([][]float32, channels)
	for ch := range planar {
		planar[ch] = toFloat32(testutil.GenerateNoise(uint32(ch)+1, testAmplitude, frames))
	}
	w, err := NewWaveformFromPlanar(rate, planar)
	require.NoError(t, err)
	return w
}

// sineWaveform builds a mono tone.
func sineWaveform(t testing.TB, rate uint32, freq float64, frames int) *Waveform {
	t.Helper()
	w, err := NewWaveform(1, rate, toFloat32(testutil.GenerateSine(freq, float64(rate), testAmplitude, frames)))
	require.NoError(t, err)
	return w
}

func toFloat32(s []float64) []float32 {
	out := make([]float32, len(s))
	for i, v := range s {
		out[i] = float32(v)
	}
	return out
}

func toFloat64(s []float32) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = float64(v)
	}
	return out
}

// newTestResampler returns a resampler with the given parallelism.
func newTestResampler(t testing.TB, parallel bool) *Resampler {
	t.Helper()
	cfg := DefaultConfig()
	cfg.EnableParallel = parallel
	r, err := New(cfg)
	require.NoError(t, err)
	return r
}
