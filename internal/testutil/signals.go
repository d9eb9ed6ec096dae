package testutil

import (
	"math"
)

// LCG constants for reproducible pseudo-random noise.
const (
	lcgMultiplier = 1103515245
	lcgIncrement  = 12345
	lcgMask       = 0x7FFFFFFF
)

// GenerateSine returns n samples of amplitude·sin(2π·freq·i/rate).
func GenerateSine(freq, rate, amplitude float64, n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/rate)
	}
	return s
}

// GenerateNoise returns n reproducible pseudo-random samples in [-scale, scale).
func GenerateNoise(seed uint32, scale float64, n int) []float64 {
	s := make([]float64, n)
	state := seed
	for i := range s {
		state = state*lcgMultiplier + lcgIncrement
		s[i] = (float64(int32(state&lcgMask))/float64(lcgMask)*2.0 - 1.0) * scale
	}
	return s
}

// GenerateRamp returns start, start+step, ... (n samples).
func GenerateRamp(start, step float64, n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = start + step*float64(i)
	}
	return s
}

// GenerateConstant returns n copies of v.
func GenerateConstant(v float64, n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}
	return s
}

// RMS returns the root mean square of s (0 for an empty slice).
func RMS(s []float64) float64 {
	if len(s) == 0 {
		return 0
	}
	var sum float64
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(s)))
}

// MaxAbsDiff returns the largest |a[i]-b[i]| over the common length.
func MaxAbsDiff(a, b []float64) float64 {
	var m float64
	for i := range min(len(a), len(b)) {
		m = max(m, math.Abs(a[i]-b[i]))
	}
	return m
}
