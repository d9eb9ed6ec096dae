package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tphakala/waveform-resampler/internal/filter"
)

const (
	testZeroCrossings = 32
	testAttenuation   = 120.0
	testPassband      = 0.95
	testLanczosLobes  = 3

	testSourceRate = 44100.0
	testToneFreq   = 1000.0
	testAmplitude  = 0.5
)

func mustRatio(t testing.TB, source, target uint32) Ratio {
	t.Helper()
	r, err := NewRatio(source, target)
	require.NoError(t, err)
	return r
}

func newSincConverter(t testing.TB, r Ratio, maxPhases int) *KernelConverter {
	t.Helper()
	k, err := filter.NewKaiserKernel(testZeroCrossings, testAttenuation)
	require.NoError(t, err)
	c, err := NewKernelConverter(r, KernelConfig{Kernel: k, Passband: testPassband, MaxPhases: maxPhases})
	require.NoError(t, err)
	return c
}

func newLanczosConverter(t testing.TB, r Ratio) *KernelConverter {
	t.Helper()
	k, err := filter.NewLanczosKernel(testLanczosLobes)
	require.NoError(t, err)
	c, err := NewKernelConverter(r, KernelConfig{Kernel: k})
	require.NoError(t, err)
	return c
}

func newSpectralConverter(t testing.TB, r Ratio) *SpectralConverter {
	t.Helper()
	c, err := NewSpectralConverter(r, 0)
	require.NoError(t, err)
	return c
}

// allConverters returns one converter of every algorithm for r.
func allConverters(t testing.TB, r Ratio) map[string]Converter {
	t.Helper()
	return map[string]Converter{
		"sinc":    newSincConverter(t, r, 0),
		"lanczos": newLanczosConverter(t, r),
		"linear":  NewLinearConverter(r),
		"cubic":   NewCubicConverter(r),
		"fft":     newSpectralConverter(t, r),
	}
}

// convert runs c over src and returns the output.
func convert(t testing.TB, c Converter, r Ratio, src []float64) []float64 {
	t.Helper()
	n := r.OutputFrames(len(src))
	if r.Identity() {
		n = len(src)
	}
	dst := make([]float64, n)
	require.NoError(t, c.Convert(dst, src))
	return dst
}

// interior returns s without skip elements at each end.
func interior(s []float64, skip int) []float64 {
	if len(s) <= 2*skip {
		return nil
	}
	return s[skip : len(s)-skip]
}

// expectedSine returns the ideal resampled tone at targetRate.
func expectedSine(freq, targetRate float64, n int) []float64 {
	s := make([]float64, n)
	for j := range s {
		s[j] = testAmplitude * sinAt(freq, targetRate, j)
	}
	return s
}
