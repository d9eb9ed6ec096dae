// Package engine implements the resampling algorithms.
//
// Every converter maps one planar channel of N input frames to exactly
// floor(N*L/M) output frames, where L/M is the reduced target/source rate
// ratio. Output frame j sits at the exact rational input position j*M/L.
package engine

import (
	"errors"
	"fmt"

	"github.com/tphakala/waveform-resampler/internal/mathutil"
)

// Common errors returned by converters.
var (
	// ErrUnsupported indicates that an algorithm cannot handle a ratio.
	ErrUnsupported = errors.New("unsupported conversion")

	// ErrInvalidRatio indicates a zero rate.
	ErrInvalidRatio = errors.New("invalid rate ratio")

	// ErrLengthMismatch indicates a destination buffer of the wrong size.
	ErrLengthMismatch = errors.New("destination length mismatch")
)

// Ratio is a reduced target/source frame rate ratio L/M.
type Ratio struct {
	// Up is the interpolation factor L.
	Up uint64
	// Down is the decimation factor M.
	Down uint64
}

// NewRatio reduces targetRate/sourceRate.
func NewRatio(sourceRate, targetRate uint32) (Ratio, error) {
	if sourceRate == 0 || targetRate == 0 {
		return Ratio{}, fmt.Errorf("%w: %d Hz -> %d Hz", ErrInvalidRatio, sourceRate, targetRate)
	}
	up, down := mathutil.ReduceRatio(uint64(targetRate), uint64(sourceRate))
	return Ratio{Up: up, Down: down}, nil
}

// Identity reports whether the ratio is 1.
func (r Ratio) Identity() bool {
	return r.Up == r.Down
}

// Cutoff returns min(1, L/M): the band-limit as a fraction of the input
// Nyquist frequency.
func (r Ratio) Cutoff() float64 {
	if r.Up >= r.Down {
		return 1
	}
	return float64(r.Up) / float64(r.Down)
}

// OutputFrames returns floor(inputFrames * L / M).
func (r Ratio) OutputFrames(inputFrames int) int {
	if inputFrames <= 0 || r.Down == 0 {
		return 0
	}
	n, ok := mathutil.MulDiv(uint64(inputFrames), r.Up, r.Down)
	if !ok {
		return 0
	}
	return int(n)
}

// String returns "L/M".
func (r Ratio) String() string {
	return fmt.Sprintf("%d/%d", r.Up, r.Down)
}

// Converter resamples one planar channel. Implementations are safe for
// concurrent use; per-call scratch is never shared.
type Converter interface {
	// Convert fills dst from src. len(dst) must equal
	// Ratio.OutputFrames(len(src)).
	Convert(dst, src []float64) error

	// Info describes the converter.
	Info() Info
}

// Info describes a converter instance.
type Info struct {
	// Algorithm is the algorithm name.
	Algorithm string

	// Ratio is the reduced conversion ratio.
	Ratio Ratio

	// Taps is the number of input frames read per output frame.
	Taps int

	// Phases is the number of precomputed polyphase rows (0 if none).
	Phases int

	// TransformSize is the forward transform length (spectral only).
	TransformSize int

	// MemoryUsage is the approximate size of precomputed state in bytes.
	MemoryUsage int64
}

// checkLengths validates the destination length against the ratio.
func checkLengths(r Ratio, dst, src []float64) error {
	want := r.OutputFrames(len(src))
	if r.Identity() {
		want = len(src)
	}
	if len(dst) != want {
		return fmt.Errorf("%w: got %d frames, want %d for %d input frames at %s",
			ErrLengthMismatch, len(dst), want, len(src), r)
	}
	return nil
}
