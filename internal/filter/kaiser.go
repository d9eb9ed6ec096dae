// Package filter provides the interpolation kernels used by the
// band-limited resampling modes.
package filter

import (
	"math"

	"github.com/tphakala/waveform-resampler/internal/mathutil"
)

const (
	// Window normalization
	windowNormalizationFactor = 2.0

	// Sinc function constants
	sincCenterTap     = 1.0
	sincZeroThreshold = 1e-10

	// Frequency response defaults
	defaultResponsePoints = 512
)

// KaiserWindow samples the Kaiser taper with parameter beta at length
// evenly spaced points from -1 to 1. This is the taper a Kaiser kernel
// applies across its lobes, so a window of 2*lobes+1 points shows its
// value at each zero crossing. A length below 1 yields nil.
func KaiserWindow(length int, beta float64) []float64 {
	switch {
	case length < 1:
		return nil
	case length == 1:
		return []float64{sincCenterTap}
	}

	i0Beta := mathutil.BesselI0(beta)
	half := float64(length-1) / windowNormalizationFactor
	window := make([]float64, length)
	for n := range window {
		window[n] = kaiserAt((float64(n)-half)/half, beta, i0Beta)
	}
	return window
}

// kaiserAt evaluates the Kaiser window at x in [-1, 1].
func kaiserAt(x, beta, i0Beta float64) float64 {
	if x <= -1 || x >= 1 {
		// Window endpoints; guard against sqrt of a tiny negative.
		return 1.0 / i0Beta
	}
	return mathutil.BesselI0(beta*math.Sqrt(1.0-x*x)) / i0Beta
}

// Sinc is the normalized sinc function sin(πx)/(πx).
func Sinc(x float64) float64 {
	if math.Abs(x) < sincZeroThreshold {
		return sincCenterTap
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

// FilterResponse holds the frequency response of a filter.
type FilterResponse struct {
	// Frequencies at which response was calculated (normalized, 0 to 0.5)
	Frequencies []float64

	// Magnitude response at each frequency (linear scale)
	Magnitude []float64

	// Phase response at each frequency (radians)
	Phase []float64
}

// ComputeFrequencyResponse calculates the frequency response of a FIR filter
// by evaluating its DTFT at numPoints frequencies from DC to just below Nyquist.
// A non-positive numPoints selects 512 points.
func ComputeFrequencyResponse(coeffs []float64, numPoints int) FilterResponse {
	if numPoints <= 0 {
		numPoints = defaultResponsePoints
	}

	response := FilterResponse{
		Frequencies: make([]float64, numPoints),
		Magnitude:   make([]float64, numPoints),
		Phase:       make([]float64, numPoints),
	}

	for k := range numPoints {
		freq := float64(k) / float64(windowNormalizationFactor*numPoints)
		response.Frequencies[k] = freq

		// H(e^jω) = Σ h[n]·e^(-jωn)
		var realPart, imagPart float64
		omega := windowNormalizationFactor * math.Pi * freq

		for n, h := range coeffs {
			angle := omega * float64(n)
			realPart += h * math.Cos(angle)
			imagPart -= h * math.Sin(angle)
		}

		response.Magnitude[k] = math.Hypot(realPart, imagPart)
		response.Phase[k] = math.Atan2(imagPart, realPart)
	}

	return response
}

// MagnitudeDB converts linear magnitude to decibels.
func MagnitudeDB(magnitude float64) float64 {
	const (
		minMagnitude = 1e-10 // Avoid log(0)
		dbMultiplier = 20.0  // 20*log10 for magnitude
	)

	if magnitude < minMagnitude {
		magnitude = minMagnitude
	}
	return dbMultiplier * math.Log10(magnitude)
}
