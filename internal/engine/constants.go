package engine

// Cubic (Hermite) interpolation constants
const (
	// Cubic interpolation uses 4-point window
	cubicInterpolationPoints = 4

	// Hermite interpolation coefficients for smooth C1 continuity
	// Formula: y = ((a*x + b)*x + c)*x + d
	// coefA := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	hermiteCoeff0_5 = 0.5
	hermiteCoeff1_5 = 1.5
	hermiteCoeff2_5 = 2.5
)

// Linear interpolation constants
const (
	// Linear interpolation uses 2-point window
	linearInterpolationPoints = 2
)

// Band-limited kernel constants
const (
	// DefaultMaxPolyphasePhases is the largest interpolation factor L for
	// which a full polyphase bank is precomputed.
	DefaultMaxPolyphasePhases = 4096

	// DefaultMaxBankCoeffs caps the size of a precomputed bank (32 MiB).
	DefaultMaxBankCoeffs = 1 << 22

	// taps per output = 2 * span
	tapsPerSpan = 2
)

// Spectral (FFT) resampler constants
const (
	// DefaultMaxFFTRatioTerm is the largest reduced ratio term the
	// spectral resampler accepts.
	DefaultMaxFFTRatioTerm = 1 << 20

	// Target input frames per block and per margin.
	fftBlockFrames  = 4096
	fftMarginFrames = 512

	// Fraction of kept bins covered by the raised-cosine roll-off.
	fftRolloffFraction = 0.05

	// Transform lengths whose prime factors are all <= this use gonum's
	// mixed-radix FFT directly.
	maxSmoothPrime = 7

	// fftHermitianDivisor is used to calculate unique frequency bins in real FFT.
	fftHermitianDivisor = 2
)
