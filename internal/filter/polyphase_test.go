package filter

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/waveform-resampler/internal/testutil"
)

const (
	// Test parameters for polyphase tests
	testNumPhases4    = 4
	testNumPhases147  = 147
	testNumPhases1024 = 1024

	// Test tolerances
	coeffTolerance = 1e-10
)

func newTestKernel(t testing.TB) *Kernel {
	t.Helper()
	k, err := NewKaiserKernel(testZeroCrossings, testAttenuation100)
	require.NoError(t, err)
	return k
}

// TestNewPolyphaseFilterBank_Validate tests parameter validation.
func TestNewPolyphaseFilterBank_Validate(t *testing.T) {
	k := newTestKernel(t)

	tests := []struct {
		name      string
		numPhases int
		cutoff    float64
		wantErr   bool
	}{
		{"valid", testNumPhases4, 1.0, false},
		{"valid_downsampling", 1, 0.25, false},
		{"zero_phases", 0, 1.0, true},
		{"zero_cutoff", testNumPhases4, 0, true},
		{"cutoff_above_nyquist", testNumPhases4, 1.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pfb, err := NewPolyphaseFilterBank(k, tt.numPhases, tt.cutoff)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidKernel)
				assert.Nil(t, pfb)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, pfb)
		})
	}
}

// TestPolyphaseFilterBank_Structure verifies the bank dimensions.
func TestPolyphaseFilterBank_Structure(t *testing.T) {
	k := newTestKernel(t)

	tests := []struct {
		name      string
		numPhases int
		cutoff    float64
		wantTaps  int
	}{
		{"upsampling", testNumPhases4, 1.0, 2 * testZeroCrossings},
		{"halving", 1, 0.5, 4 * testZeroCrossings},
		{"fractional", testNumPhases147, 0.9, 2 * 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pfb, err := NewPolyphaseFilterBank(k, tt.numPhases, tt.cutoff)
			require.NoError(t, err)

			assert.Equal(t, tt.numPhases, pfb.NumPhases)
			assert.Equal(t, tt.wantTaps, pfb.TapsPerPhase)
			assert.Len(t, pfb.Coeffs, tt.numPhases*tt.wantTaps)
			assert.Equal(t, len(pfb.Coeffs), BankSize(k, tt.numPhases, tt.cutoff))
			assert.Equal(t, int64(len(pfb.Coeffs))*8, pfb.GetMemoryUsage())
		})
	}
}

// TestPolyphaseFilterBank_DCGain verifies that every phase has unit DC gain.
func TestPolyphaseFilterBank_DCGain(t *testing.T) {
	k := newTestKernel(t)

	for _, numPhases := range []int{testNumPhases4, testNumPhases147, testNumPhases1024} {
		t.Run(fmt.Sprintf("phases_%d", numPhases), func(t *testing.T) {
			pfb, err := NewPolyphaseFilterBank(k, numPhases, 0.9)
			require.NoError(t, err)

			for p := range pfb.NumPhases {
				if !testutil.AssertDCGain(t, pfb.Phase(p), 1.0, coeffTolerance) {
					t.Logf("phase %d", p)
					return
				}
			}
		})
	}
}

// TestPolyphaseFilterBank_PhaseZeroIsImpulse verifies that, without band
// limiting, outputs on input sample positions reproduce the input sample.
func TestPolyphaseFilterBank_PhaseZeroIsImpulse(t *testing.T) {
	k := newTestKernel(t)

	pfb, err := NewPolyphaseFilterBank(k, testNumPhases4, 1.0)
	require.NoError(t, err)

	phase0 := pfb.Phase(0)
	center := pfb.TapsPerPhase/2 - 1
	for i, c := range phase0 {
		if i == center {
			assert.InDelta(t, 1.0, c, coeffTolerance)
		} else {
			assert.InDelta(t, 0.0, c, coeffTolerance, "tap %d", i)
		}
	}
}

// TestPolyphaseFilterBank_MirroredPhases verifies that phase p and phase
// L-p are time reversals of each other.
func TestPolyphaseFilterBank_MirroredPhases(t *testing.T) {
	k := newTestKernel(t)

	pfb, err := NewPolyphaseFilterBank(k, testNumPhases4, 0.8)
	require.NoError(t, err)

	a := pfb.Phase(1)
	b := pfb.Phase(3)
	n := len(a)
	for i := range a {
		assert.InDelta(t, a[i], b[n-1-i], coeffTolerance, "tap %d", i)
	}

	// Half-sample phase is symmetric.
	testutil.AssertSymmetric(t, pfb.Phase(2), coeffTolerance)
}

// TestPolyphaseFilterBank_FrequencyResponse tests passband and stopband of
// a bank stretched for 2:1 downsampling.
func TestPolyphaseFilterBank_FrequencyResponse(t *testing.T) {
	k := newTestKernel(t)

	pfb, err := NewPolyphaseFilterBank(k, 1, 0.5)
	require.NoError(t, err)

	response := pfb.ComputeFrequencyResponse(testNumPoints1024)
	require.Len(t, response.Magnitude, testNumPoints1024)

	for i, f := range response.Frequencies {
		switch {
		case f <= 0.1:
			assert.InDelta(t, 1.0, response.Magnitude[i], 1e-3, "passband at f=%.4f", f)
		case f >= 0.35:
			assert.Less(t, MagnitudeDB(response.Magnitude[i]), -70.0, "stopband at f=%.4f", f)
		}
	}
}

// BenchmarkNewPolyphaseFilterBank benchmarks bank design.
func BenchmarkNewPolyphaseFilterBank(b *testing.B) {
	k := newTestKernel(b)

	b.ResetTimer()
	for b.Loop() {
		_, _ = NewPolyphaseFilterBank(k, testNumPhases147, 0.9)
	}
}
