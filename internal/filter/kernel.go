package filter

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/simd/f64"
	"github.com/tphakala/waveform-resampler/internal/mathutil"
)

// ErrInvalidKernel is returned when kernel parameters are out of range.
var ErrInvalidKernel = errors.New("invalid kernel parameters")

const (
	minLobes = 1
	maxLobes = 256

	minAttenuation = 0.0
	maxAttenuation = 200.0
)

// WindowKind selects the window applied to the sinc kernel.
type WindowKind int

const (
	// WindowKaiser tapers the sinc with a Kaiser window.
	WindowKaiser WindowKind = iota
	// WindowLanczos tapers the sinc with a wider sinc (Lanczos kernel).
	WindowLanczos
)

// String returns the window name.
func (w WindowKind) String() string {
	switch w {
	case WindowKaiser:
		return "kaiser"
	case WindowLanczos:
		return "lanczos"
	default:
		return fmt.Sprintf("window(%d)", int(w))
	}
}

// Evaluator evaluates a symmetric interpolation kernel at offset u,
// measured in cutoff-scaled input samples. Evaluators return zero outside
// [-Lobes(), Lobes()].
type Evaluator interface {
	Eval(u float64) float64
	Lobes() float64
}

// Kernel is a windowed sinc kernel with a finite number of lobes
// (zero crossings) on each side of its center.
type Kernel struct {
	kind   WindowKind
	lobes  float64
	beta   float64
	i0Beta float64
}

// NewKaiserKernel creates a Kaiser-windowed sinc kernel spanning
// zeroCrossings lobes on each side, with β chosen for the given stopband
// attenuation in dB.
func NewKaiserKernel(zeroCrossings int, attenuation float64) (*Kernel, error) {
	if zeroCrossings < minLobes || zeroCrossings > maxLobes {
		return nil, fmt.Errorf("%w: zero crossings %d (must be %d-%d)",
			ErrInvalidKernel, zeroCrossings, minLobes, maxLobes)
	}
	if attenuation < minAttenuation || attenuation > maxAttenuation || math.IsNaN(attenuation) {
		return nil, fmt.Errorf("%w: attenuation %.1f dB (must be %.0f-%.0f)",
			ErrInvalidKernel, attenuation, minAttenuation, maxAttenuation)
	}

	beta := mathutil.KaiserBeta(attenuation)
	return &Kernel{
		kind:   WindowKaiser,
		lobes:  float64(zeroCrossings),
		beta:   beta,
		i0Beta: mathutil.BesselI0(beta),
	}, nil
}

// NewLanczosKernel creates a Lanczos kernel sinc(u)·sinc(u/a) with a lobes.
func NewLanczosKernel(lobes int) (*Kernel, error) {
	if lobes < minLobes || lobes > maxLobes {
		return nil, fmt.Errorf("%w: lanczos lobes %d (must be %d-%d)",
			ErrInvalidKernel, lobes, minLobes, maxLobes)
	}
	return &Kernel{kind: WindowLanczos, lobes: float64(lobes)}, nil
}

// Kind returns the window applied by the kernel.
func (k *Kernel) Kind() WindowKind { return k.kind }

// Lobes returns the kernel half width in cutoff-scaled samples.
func (k *Kernel) Lobes() float64 { return k.lobes }

// Beta returns the Kaiser β parameter (zero for Lanczos).
func (k *Kernel) Beta() float64 { return k.beta }

// Eval evaluates the kernel at u.
func (k *Kernel) Eval(u float64) float64 {
	if u <= -k.lobes || u >= k.lobes {
		return 0
	}
	x := u / k.lobes
	switch k.kind {
	case WindowLanczos:
		return Sinc(u) * Sinc(x)
	default:
		return Sinc(u) * kaiserAt(x, k.beta, k.i0Beta)
	}
}

// Weights fills dst with the kernel taps for an output that lies frac
// (in [0, 1)) input samples past the tap at index len(dst)/2-1, and
// normalizes them to unit DC gain. cutoff is the lowpass cutoff as a
// fraction of the input Nyquist frequency; the kernel is stretched by
// 1/cutoff. It returns the raw sum before normalization.
func Weights(dst []float64, e Evaluator, frac, cutoff float64) float64 {
	span := len(dst) / 2
	center := float64(span-1) + frac
	for k := range dst {
		dst[k] = e.Eval((center - float64(k)) * cutoff)
	}

	sum := f64.Sum(dst)
	if math.Abs(sum) > sincZeroThreshold {
		f64.Scale(dst, dst, 1.0/sum)
	}
	return sum
}

// WeightsRange fills dst with taps [lo, lo+len(dst)) of the taps-long
// kernel that Weights would produce, normalized by the sum over all taps.
// Taps outside the range are evaluated for the sum but not stored.
func WeightsRange(dst []float64, e Evaluator, frac, cutoff float64, taps, lo int) float64 {
	if lo == 0 && len(dst) == taps {
		return Weights(dst, e, frac, cutoff)
	}

	center := float64(taps/2-1) + frac
	hi := lo + len(dst)
	var sum float64
	for k := range taps {
		v := e.Eval((center - float64(k)) * cutoff)
		if k >= lo && k < hi {
			dst[k-lo] = v
		}
		sum += v
	}

	if math.Abs(sum) > sincZeroThreshold {
		f64.Scale(dst, dst, 1.0/sum)
	}
	return sum
}

// Span returns the number of input samples the kernel reaches on each side
// of an output position when stretched for the given cutoff.
func Span(e Evaluator, cutoff float64) int {
	return int(math.Ceil(e.Lobes() / cutoff))
}
