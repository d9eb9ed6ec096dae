package resampler

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tphakala/simd/cpu"
	"go.uber.org/zap"

	"github.com/tphakala/waveform-resampler/internal/engine"
	"github.com/tphakala/waveform-resampler/internal/filter"
)

// Resampler converts waveforms between frame rates. It holds only
// immutable configuration and is safe for concurrent use.
type Resampler struct {
	config  Config
	quality QualitySpec
	sinc    *filter.Kernel
	lanczos *filter.Kernel
	logger  *zap.Logger
}

// New creates a resampler. A nil config selects DefaultConfig.
func New(config *Config) (*Resampler, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	cfg := config.withDefaults()
	quality := GetPresetSpec(cfg.Quality)

	sinc, err := filter.NewKaiserKernel(quality.ZeroCrossings, quality.Attenuation)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	lanczos, err := filter.NewLanczosKernel(cfg.LanczosLobes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return &Resampler{
		config:  cfg,
		quality: quality,
		sinc:    sinc,
		lanczos: lanczos,
		logger:  cfg.Logger,
	}, nil
}

var defaultResampler = sync.OnceValue(func() *Resampler {
	r, err := New(DefaultConfig())
	if err != nil {
		panic(fmt.Sprintf("resampler: default configuration is invalid: %v", err))
	}
	return r
})

// Resample converts source to targetRateHz with the given mode using the
// default configuration.
func Resample(source *Waveform, targetRateHz uint32, mode Mode) (*Waveform, error) {
	return defaultResampler().Resample(source, targetRateHz, mode)
}

// Resample converts w to targetRateHz with ModeDefault.
func (w *Waveform) Resample(targetRateHz uint32) (*Waveform, error) {
	return Resample(w, targetRateHz, ModeDefault)
}

// ResampleByMode converts w to targetRateHz with the given mode.
func (w *Waveform) ResampleByMode(targetRateHz uint32, mode Mode) (*Waveform, error) {
	return Resample(w, targetRateHz, mode)
}

// Resample converts source to targetRateHz with the given mode.
//
// The result has the source's channel count, the target frame rate, and
// exactly TargetFrameCount(source.NumFrames(), source rate, target rate)
// frames for every mode. When the rates are equal the result is a
// bit-identical copy and no algorithm runs. An empty source yields an
// empty waveform at the target rate.
//
// Validation order: a zero target rate fails with ErrInvalidTargetRate,
// then an unknown mode fails with ErrUnknownMode, then a nil source fails
// with ErrInvalidWaveform. Algorithm failures are returned as
// *ConversionError.
func (r *Resampler) Resample(source *Waveform, targetRateHz uint32, mode Mode) (*Waveform, error) {
	return r.resample(source, targetRateHz, mode, r.channelWorkers())
}

// channelWorkers returns the number of channels converted concurrently.
func (r *Resampler) channelWorkers() int {
	if r.config.EnableParallel {
		return r.config.MaxWorkers
	}
	return 1
}

func (r *Resampler) resample(source *Waveform, targetRateHz uint32, mode Mode, workers int) (*Waveform, error) {
	if targetRateHz == 0 {
		return nil, fmt.Errorf("%w: target rate must be positive", ErrInvalidTargetRate)
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}
	if source == nil {
		return nil, fmt.Errorf("%w: nil source", ErrInvalidWaveform)
	}

	if targetRateHz == source.frameRateHz {
		return source.clone(), nil
	}

	inputFrames := source.NumFrames()
	outputFrames := TargetFrameCount(inputFrames, source.frameRateHz, targetRateHz)
	if outputFrames == 0 {
		return &Waveform{channels: source.channels, frameRateHz: targetRateHz, samples: []float32{}}, nil
	}

	start := time.Now()

	conv, err := r.newConverter(mode, source.frameRateHz, targetRateHz)
	if err != nil {
		return nil, r.conversionError(mode, source.frameRateHz, targetRateHz, err)
	}

	samples, err := r.run(conv, source, int(outputFrames), workers)
	if err != nil {
		return nil, r.conversionError(mode, source.frameRateHz, targetRateHz, err)
	}

	r.logger.Debug("resampled waveform",
		zap.Stringer("mode", mode),
		zap.Uint32("channels", source.channels),
		zap.Uint32("source_rate_hz", source.frameRateHz),
		zap.Uint32("target_rate_hz", targetRateHz),
		zap.Uint64("input_frames", inputFrames),
		zap.Uint64("output_frames", outputFrames),
		zap.Duration("elapsed", time.Since(start)))

	return &Waveform{channels: source.channels, frameRateHz: targetRateHz, samples: samples}, nil
}

// newConverter builds the converter for mode at the given rates.
func (r *Resampler) newConverter(mode Mode, sourceRateHz, targetRateHz uint32) (engine.Converter, error) {
	ratio, err := engine.NewRatio(sourceRateHz, targetRateHz)
	if err != nil {
		return nil, err
	}

	switch mode {
	case ModeSinc:
		return engine.NewKernelConverter(ratio, engine.KernelConfig{
			Kernel:    r.sinc,
			Passband:  r.quality.Passband,
			MaxPhases: r.config.MaxPolyphasePhases,
		})
	case ModeLanczos:
		return engine.NewKernelConverter(ratio, engine.KernelConfig{
			Kernel:    r.lanczos,
			MaxPhases: r.config.MaxPolyphasePhases,
		})
	case ModeLinear:
		return engine.NewLinearConverter(ratio), nil
	case ModeCubic:
		return engine.NewCubicConverter(ratio), nil
	case ModeFFT:
		return engine.NewSpectralConverter(ratio, r.config.MaxFFTRatioTerm)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}
}

// run converts every channel of source into a freshly allocated
// interleaved buffer of outputFrames frames.
func (r *Resampler) run(conv engine.Converter, source *Waveform, outputFrames, workers int) ([]float32, error) {
	channels := int(source.channels)
	in := source.planar()

	arena := make([]float64, outputFrames*channels)
	out := make([][]float64, channels)
	for ch := range out {
		out[ch] = arena[ch*outputFrames : (ch+1)*outputFrames : (ch+1)*outputFrames]
	}

	if err := engine.ConvertChannels(conv, out, in, workers); err != nil {
		return nil, err
	}

	samples := make([]float32, outputFrames*channels)
	for ch, data := range out {
		for i, v := range data {
			samples[i*channels+ch] = float32(v)
		}
	}
	return samples, nil
}

// conversionError wraps an algorithm failure, mapping engine errors to
// the package sentinels.
func (r *Resampler) conversionError(mode Mode, sourceRateHz, targetRateHz uint32, err error) error {
	if errors.Is(err, engine.ErrUnsupported) {
		err = fmt.Errorf("%w: %w", ErrUnsupportedConversion, err)
	}

	r.logger.Debug("resample failed",
		zap.Stringer("mode", mode),
		zap.Uint32("source_rate_hz", sourceRateHz),
		zap.Uint32("target_rate_hz", targetRateHz),
		zap.Error(err))

	return &ConversionError{Mode: mode, SourceRateHz: sourceRateHz, TargetRateHz: targetRateHz, Err: err}
}

// Info describes how a conversion would be performed.
type Info struct {
	// Mode is the selected mode.
	Mode Mode

	// Algorithm describes the resampling algorithm in use.
	Algorithm string

	// Ratio is the reduced target/source ratio "L/M".
	Ratio string

	// FilterLength is the number of input frames read per output frame.
	FilterLength int

	// Phases is the number of polyphase filter phases (0 if none).
	Phases int

	// TransformSize is the forward FFT length (ModeFFT only).
	TransformSize int

	// MemoryUsage is the approximate memory usage of precomputed state in bytes.
	MemoryUsage int64

	// Workers is the number of channels converted concurrently.
	Workers int

	// SIMDType describes the SIMD instruction set in use.
	SIMDType string
}

// Info reports how a conversion from sourceRateHz to targetRateHz
// with mode would be performed, without converting any samples.
func (r *Resampler) Info(sourceRateHz, targetRateHz uint32, mode Mode) (Info, error) {
	if targetRateHz == 0 {
		return Info{}, fmt.Errorf("%w: target rate must be positive", ErrInvalidTargetRate)
	}
	if !mode.Valid() {
		return Info{}, fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}
	if sourceRateHz == 0 {
		return Info{}, fmt.Errorf("%w: source rate must be positive", ErrInvalidWaveform)
	}

	conv, err := r.newConverter(mode, sourceRateHz, targetRateHz)
	if err != nil {
		return Info{}, r.conversionError(mode, sourceRateHz, targetRateHz, err)
	}

	ei := conv.Info()
	return Info{
		Mode:          mode,
		Algorithm:     ei.Algorithm,
		Ratio:         ei.Ratio.String(),
		FilterLength:  ei.Taps,
		Phases:        ei.Phases,
		TransformSize: ei.TransformSize,
		MemoryUsage:   ei.MemoryUsage,
		Workers:       r.channelWorkers(),
		SIMDType:      cpu.Info(),
	}, nil
}
