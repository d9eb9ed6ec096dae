package engine

import (
	"math"
	"math/cmplx"

	"github.com/tphakala/simd/c128"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/tphakala/waveform-resampler/internal/mathutil"
)

// realTransform is a real-input DFT of fixed length with gonum's
// conventions: Coefficients returns Len()/2+1 bins and Sequence is the
// unnormalized inverse.
type realTransform interface {
	Len() int
	Coefficients(dst []complex128, seq []float64) []complex128
	Sequence(dst []float64, coeff []complex128) []float64
}

// newRealTransform returns gonum's FFT for lengths whose prime factors are
// small and a Bluestein transform otherwise.
func newRealTransform(n int) realTransform {
	if mathutil.LargestPrimeFactor(n) <= maxSmoothPrime {
		return fourier.NewFFT(n)
	}
	return newBluestein(n)
}

// bluestein computes a length-n DFT for arbitrary n as a circular
// convolution of power-of-two length (chirp-z transform).
//
//	X[k] = w[k] · Σ_j (x[j]·w[j]) · conj(w[k-j]),  w[m] = exp(-iπm²/n)
//
// Instances hold scratch buffers and are not safe for concurrent use.
type bluestein struct {
	n     int
	m     int
	scale float64

	fft       *fourier.CmplxFFT
	chirp     []complex128
	kernelFFT []complex128

	full    []complex128
	work    []complex128
	workFFT []complex128
	product []complex128
}

func newBluestein(n int) *bluestein {
	m := mathutil.NextPowerOfTwo(2*n - 1)
	fft := fourier.NewCmplxFFT(m)

	chirp := make([]complex128, n)
	twoN := uint64(2 * n)
	for k := range n {
		// k² mod 2n keeps the angle argument small for large k.
		kk := uint64(k)
		sq := (kk * kk) % twoN
		chirp[k] = cmplx.Exp(complex(0, -math.Pi*float64(sq)/float64(n)))
	}

	kernel := make([]complex128, m)
	kernel[0] = cmplx.Conj(chirp[0])
	for k := 1; k < n; k++ {
		c := cmplx.Conj(chirp[k])
		kernel[k] = c
		kernel[m-k] = c
	}

	return &bluestein{
		n:         n,
		m:         m,
		scale:     1.0 / float64(m),
		fft:       fft,
		chirp:     chirp,
		kernelFFT: fft.Coefficients(nil, kernel),
		full:      make([]complex128, n),
		work:      make([]complex128, m),
		workFFT:   make([]complex128, m),
		product:   make([]complex128, m),
	}
}

// Len returns the transform length.
func (b *bluestein) Len() int {
	return b.n
}

// dft replaces b.full with its forward DFT.
func (b *bluestein) dft() {
	clear(b.work)
	for k, x := range b.full {
		b.work[k] = x * b.chirp[k]
	}

	b.workFFT = b.fft.Coefficients(b.workFFT, b.work)
	c128.Mul(b.product, b.workFFT, b.kernelFFT)
	b.work = b.fft.Sequence(b.work, b.product)

	for k := range b.full {
		b.full[k] = b.chirp[k] * b.work[k] * complex(b.scale, 0)
	}
}

// Coefficients computes the n/2+1 non-redundant DFT bins of seq.
func (b *bluestein) Coefficients(dst []complex128, seq []float64) []complex128 {
	bins := b.n/fftHermitianDivisor + 1
	if len(dst) != bins {
		dst = make([]complex128, bins)
	}

	for i, v := range seq[:b.n] {
		b.full[i] = complex(v, 0)
	}
	b.dft()
	copy(dst, b.full[:bins])
	return dst
}

// Sequence computes the unnormalized inverse DFT of a Hermitian spectrum
// given by its n/2+1 non-redundant bins.
func (b *bluestein) Sequence(dst []float64, coeff []complex128) []float64 {
	if len(dst) != b.n {
		dst = make([]float64, b.n)
	}

	// IDFT(X) = conj(DFT(conj(X))); with X[n-k] = conj(X[k]) the
	// conjugated spectrum is conj(X[k]) for k <= n/2 and X[n-k] above.
	half := b.n / fftHermitianDivisor
	for k := 0; k <= half; k++ {
		b.full[k] = cmplx.Conj(coeff[k])
	}
	for k := half + 1; k < b.n; k++ {
		b.full[k] = coeff[b.n-k]
	}
	b.dft()

	for i := range dst {
		dst[i] = real(b.full[i])
	}
	return dst
}
