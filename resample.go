package resampler

import (
	"fmt"
	"runtime"
	"strings"

	"go.uber.org/zap"
)

// Config holds resampling configuration. Zero numeric fields select the
// defaults documented on each field.
type Config struct {
	// Quality selects the windowed-sinc filter parameters used by ModeSinc.
	Quality QualityPreset

	// LanczosLobes is the number of lobes a of the Lanczos kernel used by
	// ModeLanczos. Zero selects 3.
	LanczosLobes int

	// MaxPolyphasePhases is the largest interpolation factor L for which
	// ModeSinc and ModeLanczos precompute a full polyphase filter bank.
	// Larger factors sample the kernel from a dense lookup table instead.
	// Zero selects 4096.
	MaxPolyphasePhases int

	// MaxFFTRatioTerm bounds both terms of the reduced rate ratio accepted
	// by ModeFFT. Zero selects 1<<20.
	MaxFFTRatioTerm uint64

	// EnableParallel enables parallel channel processing.
	// When true, channels are converted concurrently, at most MaxWorkers at
	// a time. Has no effect on mono audio.
	EnableParallel bool

	// MaxWorkers bounds concurrent channel conversions. Zero selects the
	// number of logical CPUs.
	MaxWorkers int

	// Logger receives debug logs for each conversion. Nil disables logging.
	Logger *zap.Logger
}

// QualityPreset enumerates predefined windowed-sinc filter settings.
type QualityPreset int

const (
	// QualityLow uses a short kernel with ~80 dB stopband attenuation.
	QualityLow QualityPreset = iota

	// QualityMedium uses ~100 dB stopband attenuation.
	QualityMedium

	// QualityHigh uses ~120 dB stopband attenuation. It is the default.
	QualityHigh

	// QualityVeryHigh uses a long kernel with ~150 dB stopband attenuation.
	QualityVeryHigh

	numQualityPresets
)

var qualityNames = [numQualityPresets]string{
	QualityLow:      "low",
	QualityMedium:   "medium",
	QualityHigh:     "high",
	QualityVeryHigh: "veryhigh",
}

// String returns the preset name.
func (q QualityPreset) String() string {
	if q < 0 || q >= numQualityPresets {
		return fmt.Sprintf("QualityPreset(%d)", int(q))
	}
	return qualityNames[q]
}

// ParseQuality returns the preset with the given name, ignoring case.
// "very-high" and "very_high" are accepted for QualityVeryHigh.
func ParseQuality(name string) (QualityPreset, error) {
	key := strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(name)))
	for i, n := range qualityNames {
		if n == key {
			return QualityPreset(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown quality %q", ErrInvalidConfig, name)
}

// QualitySpec holds the windowed-sinc filter parameters of a preset.
type QualitySpec struct {
	// ZeroCrossings is the kernel half width in zero crossings of the sinc.
	ZeroCrossings int

	// Attenuation is the Kaiser window stopband attenuation in dB.
	Attenuation float64

	// Passband scales the cutoff below the lower of the two Nyquist
	// frequencies, leaving room for the transition band.
	Passband float64
}

// GetPresetSpec returns the filter parameters for a preset.
func GetPresetSpec(preset QualityPreset) QualitySpec {
	switch preset {
	case QualityLow:
		return QualitySpec{ZeroCrossings: lowZeroCrossings, Attenuation: lowAttenuation, Passband: lowPassband}
	case QualityMedium:
		return QualitySpec{ZeroCrossings: mediumZeroCrossings, Attenuation: mediumAttenuation, Passband: mediumPassband}
	case QualityVeryHigh:
		return QualitySpec{ZeroCrossings: veryHighZeroCrossings, Attenuation: veryHighAttenuation, Passband: veryHighPassband}
	default:
		return QualitySpec{ZeroCrossings: highZeroCrossings, Attenuation: highAttenuation, Passband: highPassband}
	}
}

// DefaultConfig returns the default configuration: high quality, parallel
// channel processing on all logical CPUs, no logging.
func DefaultConfig() *Config {
	return &Config{
		Quality:            QualityHigh,
		LanczosLobes:       defaultLanczosLobes,
		MaxPolyphasePhases: defaultMaxPolyphasePhases,
		MaxFFTRatioTerm:    defaultMaxFFTRatioTerm,
		EnableParallel:     true,
		MaxWorkers:         runtime.NumCPU(),
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Quality < 0 || c.Quality >= numQualityPresets {
		return fmt.Errorf("%w: unknown quality preset %d", ErrInvalidConfig, int(c.Quality))
	}

	if c.LanczosLobes < 0 || c.LanczosLobes > maxLanczosLobes {
		return fmt.Errorf("%w: lanczos lobes must be 0-%d", ErrInvalidConfig, maxLanczosLobes)
	}

	if c.MaxPolyphasePhases < 0 || c.MaxPolyphasePhases > maxPolyphasePhasesLimit {
		return fmt.Errorf("%w: max polyphase phases must be 0-%d", ErrInvalidConfig, maxPolyphasePhasesLimit)
	}

	if c.MaxFFTRatioTerm > maxFFTRatioTermLimit {
		return fmt.Errorf("%w: max fft ratio term must be at most %d", ErrInvalidConfig, maxFFTRatioTermLimit)
	}

	if c.MaxWorkers < 0 || c.MaxWorkers > maxWorkersLimit {
		return fmt.Errorf("%w: max workers must be 0-%d", ErrInvalidConfig, maxWorkersLimit)
	}

	return nil
}

// withDefaults returns a copy of c with zero fields replaced by defaults.
func (c Config) withDefaults() Config {
	if c.LanczosLobes == 0 {
		c.LanczosLobes = defaultLanczosLobes
	}
	if c.MaxPolyphasePhases == 0 {
		c.MaxPolyphasePhases = defaultMaxPolyphasePhases
	}
	if c.MaxFFTRatioTerm == 0 {
		c.MaxFFTRatioTerm = defaultMaxFFTRatioTerm
	}
	if c.MaxWorkers == 0 {
		c.MaxWorkers = runtime.NumCPU()
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}
