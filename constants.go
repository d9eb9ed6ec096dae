package resampler

import "github.com/tphakala/waveform-resampler/internal/engine"

// Channel constants
const (
	stereoChannels = 2 // Stereo channel count (used by interleave functions)
)

// Quality preset parameters
const (
	// Low quality (~80 dB)
	lowZeroCrossings = 8
	lowAttenuation   = 80.0
	lowPassband      = 0.85

	// Medium quality (~100 dB)
	mediumZeroCrossings = 16
	mediumAttenuation   = 100.0
	mediumPassband      = 0.90

	// High quality (~120 dB)
	highZeroCrossings = 32
	highAttenuation   = 120.0
	highPassband      = 0.95

	// Very high quality (~150 dB)
	veryHighZeroCrossings = 64
	veryHighAttenuation   = 150.0
	veryHighPassband      = 0.97
)

// Configuration defaults and limits
const (
	defaultLanczosLobes       = 3
	defaultMaxPolyphasePhases = engine.DefaultMaxPolyphasePhases
	defaultMaxFFTRatioTerm    = engine.DefaultMaxFFTRatioTerm

	maxLanczosLobes         = 64
	maxPolyphasePhasesLimit = 1 << 16
	maxFFTRatioTermLimit    = 1 << 24
	maxWorkersLimit         = 1024
)

// Sample conversion constants
const (
	defaultSourceBitDepth = 16
	minBitDepth           = 8
	maxBitDepth           = 32
)
