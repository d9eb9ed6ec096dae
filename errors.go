package resampler

import (
	"errors"
	"fmt"
)

// Errors returned by the resampler. Details are wrapped with %w, so
// callers should test with errors.Is.
var (
	// ErrInvalidWaveform indicates malformed input: zero channels or zero
	// frame rate with samples present, a buffer that does not divide into
	// whole frames, ragged planar channels, or non-finite samples.
	ErrInvalidWaveform = errors.New("invalid waveform")

	// ErrInvalidTargetRate indicates a zero target frame rate.
	ErrInvalidTargetRate = errors.New("invalid target frame rate")

	// ErrUnsupportedConversion indicates that the selected mode cannot
	// perform the requested conversion. The resampler never falls back to
	// another mode.
	ErrUnsupportedConversion = errors.New("unsupported conversion")

	// ErrUnknownMode indicates a mode identifier outside the known set.
	ErrUnknownMode = errors.New("unknown resample mode")

	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid resampler configuration")
)

// ConversionError reports a failure inside a resampling algorithm.
type ConversionError struct {
	Mode         Mode
	SourceRateHz uint32
	TargetRateHz uint32
	Err          error
}

// Error implements error.
func (e *ConversionError) Error() string {
	return fmt.Sprintf("resample %s %d Hz -> %d Hz: %v", e.Mode, e.SourceRateHz, e.TargetRateHz, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ConversionError) Unwrap() error {
	return e.Err
}
