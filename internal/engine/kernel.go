package engine

import (
	"fmt"

	"github.com/tphakala/simd/f64"
	"github.com/tphakala/waveform-resampler/internal/filter"
)

// KernelConfig configures a band-limited kernel converter.
type KernelConfig struct {
	// Kernel is the windowed sinc or Lanczos kernel.
	Kernel *filter.Kernel

	// Passband scales the cutoff below min(1, L/M). 1 keeps the full band.
	Passband float64

	// MaxPhases is the largest L served by a precomputed polyphase bank.
	// Zero selects DefaultMaxPolyphasePhases.
	MaxPhases int

	// MaxBankCoeffs caps the bank size. Zero selects DefaultMaxBankCoeffs.
	MaxBankCoeffs int
}

// KernelConverter resamples by convolving the input with a band-limited
// kernel centered on each exact output position. Inputs outside the
// channel are treated as silence.
type KernelConverter struct {
	ratio  Ratio
	cutoff float64
	span   int
	name   string

	// Exactly one of bank and table is set.
	bank  *filter.PolyphaseFilterBank
	table *filter.KernelTable
}

// NewKernelConverter builds the converter for ratio r.
func NewKernelConverter(r Ratio, cfg KernelConfig) (*KernelConverter, error) {
	if cfg.Kernel == nil {
		return nil, fmt.Errorf("%w: nil kernel", filter.ErrInvalidKernel)
	}
	if r.Up == 0 || r.Down == 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRatio, r)
	}

	passband := cfg.Passband
	if passband <= 0 || passband > 1 {
		passband = 1
	}
	maxPhases := cfg.MaxPhases
	if maxPhases <= 0 {
		maxPhases = DefaultMaxPolyphasePhases
	}
	maxCoeffs := cfg.MaxBankCoeffs
	if maxCoeffs <= 0 {
		maxCoeffs = DefaultMaxBankCoeffs
	}

	c := &KernelConverter{
		ratio:  r,
		cutoff: r.Cutoff() * passband,
		name:   cfg.Kernel.Kind().String(),
	}
	c.span = filter.Span(cfg.Kernel, c.cutoff)

	if r.Identity() {
		return c, nil
	}

	if r.Up <= uint64(maxPhases) && filter.BankSize(cfg.Kernel, int(r.Up), c.cutoff) <= maxCoeffs {
		bank, err := filter.NewPolyphaseFilterBank(cfg.Kernel, int(r.Up), c.cutoff)
		if err != nil {
			return nil, err
		}
		c.bank = bank
		return c, nil
	}

	table, err := filter.NewKernelTable(cfg.Kernel, filter.DefaultTableDensity)
	if err != nil {
		return nil, err
	}
	c.table = table
	return c, nil
}

// Convert implements Converter.
func (c *KernelConverter) Convert(dst, src []float64) error {
	if err := checkLengths(c.ratio, dst, src); err != nil {
		return err
	}
	if c.ratio.Identity() {
		copy(dst, src)
		return nil
	}
	if len(dst) == 0 {
		return nil
	}

	taps := tapsPerSpan * c.span

	// Tap k of output j reads input frame index-span+1+k. Only the taps
	// that overlap src are evaluated; the rest would read silence.
	var weights []float64
	if c.bank == nil {
		weights = make([]float64, min(taps, len(src)))
	}

	pos := newPosition(c.ratio)
	for j := range dst {
		first := pos.index - c.span + 1
		lo := max(0, -first)
		hi := min(taps, len(src)-first)

		var coeffs []float64
		if c.bank != nil {
			coeffs = c.bank.Phase(int(pos.rem))[lo:hi]
		} else {
			coeffs = weights[:hi-lo]
			filter.WeightsRange(coeffs, c.table, pos.fraction(), c.cutoff, taps, lo)
		}

		dst[j] = f64.DotProduct(src[first+lo:first+hi], coeffs)
		pos.advance()
	}

	return nil
}

// Info implements Converter.
func (c *KernelConverter) Info() Info {
	info := Info{
		Algorithm: c.name,
		Ratio:     c.ratio,
		Taps:      tapsPerSpan * c.span,
	}
	if c.bank != nil {
		info.Phases = c.bank.NumPhases
		info.MemoryUsage = c.bank.GetMemoryUsage()
	}
	if c.table != nil {
		info.MemoryUsage = int64(c.table.Len()) * 8
	}
	return info
}

// Cutoff returns the effective cutoff as a fraction of the input Nyquist.
func (c *KernelConverter) Cutoff() float64 {
	return c.cutoff
}

// UsesBank reports whether a precomputed polyphase bank is in use.
func (c *KernelConverter) UsesBank() bool {
	return c.bank != nil
}
