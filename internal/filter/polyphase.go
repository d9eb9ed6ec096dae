package filter

import (
	"fmt"
)

const (
	minNumPhases = 1

	// Bytes per float64 coefficient.
	bytesPerCoeff = 8

	// taps per output = 2 * span
	tapsPerSpan = 2
)

// PolyphaseFilterBank holds one normalized set of taps per output phase.
//
// For a rational conversion L/M every output lands on one of exactly L
// fractional positions p/L between two input samples, so the bank stores
// L rows of 2*Span taps. Each row sums to 1 so DC passes with unit gain.
//
// Coeffs layout: [phase0_tap0 ... phase0_tapN][phase1_tap0 ...]...
type PolyphaseFilterBank struct {
	// Coeffs stores all filter coefficients in a flat array.
	Coeffs []float64

	// NumPhases is the number of phases (polyphase branches)
	NumPhases int

	// TapsPerPhase is the number of taps in each phase
	TapsPerPhase int

	// Cutoff is the cutoff as a fraction of the input Nyquist frequency
	Cutoff float64
}

// NewPolyphaseFilterBank builds a bank of numPhases rows for the given
// kernel stretched to cutoff. Phase p serves outputs at fraction p/numPhases.
func NewPolyphaseFilterBank(e Evaluator, numPhases int, cutoff float64) (*PolyphaseFilterBank, error) {
	if numPhases < minNumPhases {
		return nil, fmt.Errorf("%w: %d phases (minimum %d)", ErrInvalidKernel, numPhases, minNumPhases)
	}
	if cutoff <= 0 || cutoff > 1 {
		return nil, fmt.Errorf("%w: cutoff %f (must be in (0, 1])", ErrInvalidKernel, cutoff)
	}

	taps := tapsPerSpan * Span(e, cutoff)
	bank := &PolyphaseFilterBank{
		Coeffs:       make([]float64, numPhases*taps),
		NumPhases:    numPhases,
		TapsPerPhase: taps,
		Cutoff:       cutoff,
	}

	for p := range numPhases {
		frac := float64(p) / float64(numPhases)
		Weights(bank.Phase(p), e, frac, cutoff)
	}

	return bank, nil
}

// BankSize returns the number of coefficients a bank for these parameters
// would hold, without building it.
func BankSize(e Evaluator, numPhases int, cutoff float64) int {
	return numPhases * tapsPerSpan * Span(e, cutoff)
}

// Phase returns the taps of phase p. The slice aliases the bank.
func (pfb *PolyphaseFilterBank) Phase(p int) []float64 {
	start := p * pfb.TapsPerPhase
	return pfb.Coeffs[start : start+pfb.TapsPerPhase : start+pfb.TapsPerPhase]
}

// ComputeFrequencyResponse evaluates the response of phase 0.
func (pfb *PolyphaseFilterBank) ComputeFrequencyResponse(numPoints int) FilterResponse {
	return ComputeFrequencyResponse(pfb.Phase(0), numPoints)
}

// GetMemoryUsage returns the approximate memory usage in bytes.
func (pfb *PolyphaseFilterBank) GetMemoryUsage() int64 {
	return int64(len(pfb.Coeffs)) * bytesPerCoeff
}
