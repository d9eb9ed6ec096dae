package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/waveform-resampler/internal/testutil"
)

func TestNewSpectralConverter_Unsupported(t *testing.T) {
	tests := []struct {
		name    string
		ratio   Ratio
		maxTerm uint64
		wantErr error
	}{
		{"within default limit", Ratio{Up: 44099, Down: 44100}, 0, nil},
		{"up term too large", Ratio{Up: 1 << 21, Down: 3}, 0, ErrUnsupported},
		{"down term too large", Ratio{Up: 3, Down: 1 << 21}, 0, ErrUnsupported},
		{"custom limit", Ratio{Up: 160, Down: 147}, 100, ErrUnsupported},
		{"zero ratio", Ratio{}, 0, ErrInvalidRatio},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewSpectralConverter(tt.ratio, tt.maxTerm)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, c)
		})
	}
}

func TestSpectralConverter_BlockLayout(t *testing.T) {
	tests := []struct {
		target           uint32
		wantIn, wantOut  int
		wantSegmentInput int
	}{
		{22050, 4096, 2048, 5120},
		{88200, 4096, 8192, 5120},
		{48000, 28 * 147, 28 * 160, 36 * 147},
		{44099, 44100, 44099, 3 * 44100},
	}

	for _, tt := range tests {
		r := mustRatio(t, 44100, tt.target)
		c := newSpectralConverter(t, r)
		in, out := c.BlockFrames()
		assert.Equal(t, tt.wantIn, in, "ratio %s", r)
		assert.Equal(t, tt.wantOut, out, "ratio %s", r)
		assert.Equal(t, tt.wantSegmentInput, c.Info().TransformSize, "ratio %s", r)
		assert.Equal(t, "fft", c.Info().Algorithm)
	}
}

func TestRolloffWeights(t *testing.T) {
	w := rolloffWeights(100)
	require.Len(t, w, 101)
	assert.InDelta(t, 1.0, w[0], 0)
	assert.InDelta(t, 1.0, w[95], 0)
	assert.InDelta(t, 0.0, w[100], 1e-15)
	testutil.AssertAllInRange(t, w, 0, 1)
	for i := 96; i <= 100; i++ {
		assert.Less(t, w[i], w[i-1], "weights fall through the roll-off")
	}

	assert.Equal(t, []float64{1, 0}, rolloffWeights(1))
}

// TestSpectralConverter_SineAccuracy resamples an in-band tone and compares
// it with the ideal tone at the target rate.
func TestSpectralConverter_SineAccuracy(t *testing.T) {
	tests := []struct {
		target uint32
		frames int
	}{
		{48000, 16384},
		{88200, 16384},
		{22050, 16384},
		{44099, 100000},
		{44101, 100000},
	}

	for _, tt := range tests {
		r := mustRatio(t, 44100, tt.target)
		t.Run(r.String(), func(t *testing.T) {
			src := testutil.GenerateSine(testToneFreq, testSourceRate, testAmplitude, tt.frames)
			dst := convert(t, newSpectralConverter(t, r), r, src)
			want := expectedSine(testToneFreq, float64(tt.target), len(dst))

			skip := len(dst) / 16
			maxErr := testutil.MaxAbsDiff(interior(dst, skip), interior(want, skip))
			assert.Less(t, maxErr, 2e-3)
			t.Logf("max error %.3e", maxErr)
		})
	}
}

// TestSpectralConverter_AliasingSuppression downsamples a tone above the
// target Nyquist frequency.
func TestSpectralConverter_AliasingSuppression(t *testing.T) {
	r := mustRatio(t, 44100, 22050)
	src := testutil.GenerateSine(15000, testSourceRate, testAmplitude, 16384)

	dst := convert(t, newSpectralConverter(t, r), r, src)
	skip := len(dst) / 16
	assert.Less(t, testutil.RMS(interior(dst, skip)), 1e-2)
}

func BenchmarkSpectralConverter(b *testing.B) {
	src := testutil.GenerateNoise(1, 0.5, 44100)

	for _, target := range []uint32{48000, 22050, 44099} {
		r := mustRatio(b, 44100, target)
		c := newSpectralConverter(b, r)
		dst := make([]float64, r.OutputFrames(len(src)))

		b.Run(r.String(), func(b *testing.B) {
			for b.Loop() {
				_ = c.Convert(dst, src)
			}
		})
	}
}
