package engine

import (
	"fmt"
	"math"

	"github.com/tphakala/simd/f64"

	"github.com/tphakala/waveform-resampler/internal/mathutil"
)

// SpectralConverter resamples in the frequency domain, block by block.
//
// Block b covers k*M input frames starting at b*k*M and yields k*L output
// frames. Each block is extended by q*M frames of context on both sides
// (silence beyond the channel), transformed, truncated or zero-extended
// to the output length with a raised-cosine roll-off over the top of the
// kept band, inverse transformed, and the context trimmed. Because L/M is
// reduced, every block boundary falls on an exact output frame.
type SpectralConverter struct {
	ratio Ratio

	blockIn   int
	blockOut  int
	marginIn  int
	marginOut int
	segIn     int
	segOut    int

	// weights[b] scales bin b of the kept band.
	weights []float64
}

// NewSpectralConverter builds the converter for ratio r. Ratios with a
// term above maxTerm are rejected with ErrUnsupported; zero selects
// DefaultMaxFFTRatioTerm.
func NewSpectralConverter(r Ratio, maxTerm uint64) (*SpectralConverter, error) {
	if r.Up == 0 || r.Down == 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRatio, r)
	}
	if maxTerm == 0 {
		maxTerm = DefaultMaxFFTRatioTerm
	}
	if r.Up > maxTerm || r.Down > maxTerm {
		return nil, fmt.Errorf("%w: fft ratio %s exceeds %d", ErrUnsupported, r, maxTerm)
	}

	c := &SpectralConverter{ratio: r}
	if r.Identity() {
		return c, nil
	}

	up, down := int(r.Up), int(r.Down)
	k := mathutil.CeilDiv(fftBlockFrames, down)
	q := mathutil.CeilDiv(fftMarginFrames, down)

	c.blockIn, c.blockOut = k*down, k*up
	c.marginIn, c.marginOut = q*down, q*up
	c.segIn = c.blockIn + 2*c.marginIn
	c.segOut = c.blockOut + 2*c.marginOut
	c.weights = rolloffWeights(min(c.segIn, c.segOut) / fftHermitianDivisor)

	return c, nil
}

// rolloffWeights returns edge+1 weights: 1 through the band, falling to 0
// at bin edge along a raised cosine.
func rolloffWeights(edge int) []float64 {
	weights := make([]float64, edge+1)
	width := max(1, int(float64(edge)*fftRolloffFraction))
	start := edge - width
	for b := range weights {
		if b <= start {
			weights[b] = 1
			continue
		}
		weights[b] = 0.5 * (1 + math.Cos(math.Pi*float64(b-start)/float64(width)))
	}
	return weights
}

// Convert implements Converter.
func (c *SpectralConverter) Convert(dst, src []float64) error {
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

	// Transforms carry scratch, so each call builds its own.
	forward := newRealTransform(c.segIn)
	inverse := newRealTransform(c.segOut)

	segment := make([]float64, c.segIn)
	coeffs := make([]complex128, c.segIn/fftHermitianDivisor+1)
	spectrum := make([]complex128, c.segOut/fftHermitianDivisor+1)
	out := make([]float64, c.segOut)
	scale := 1.0 / float64(c.segIn)

	for block, outStart := 0, 0; outStart < len(dst); block, outStart = block+1, outStart+c.blockOut {
		c.fillSegment(segment, src, block*c.blockIn-c.marginIn)

		coeffs = forward.Coefficients(coeffs, segment)

		clear(spectrum)
		for b, w := range c.weights {
			spectrum[b] = coeffs[b] * complex(w, 0)
		}

		out = inverse.Sequence(out, spectrum)

		n := min(c.blockOut, len(dst)-outStart)
		f64.Scale(dst[outStart:outStart+n], out[c.marginOut:c.marginOut+n], scale)
	}

	return nil
}

// fillSegment copies src[start : start+len(segment)] into segment,
// zero-filling positions outside src.
func (c *SpectralConverter) fillSegment(segment, src []float64, start int) {
	clear(segment)
	lo := max(start, 0)
	hi := min(start+len(segment), len(src))
	if lo < hi {
		copy(segment[lo-start:], src[lo:hi])
	}
}

// Info implements Converter.
func (c *SpectralConverter) Info() Info {
	return Info{
		Algorithm:     "fft",
		Ratio:         c.ratio,
		Taps:          c.segIn,
		TransformSize: c.segIn,
		MemoryUsage:   int64(len(c.weights)) * 8,
	}
}

// BlockFrames returns the input and output frames per block.
func (c *SpectralConverter) BlockFrames() (in, out int) {
	return c.blockIn, c.blockOut
}
