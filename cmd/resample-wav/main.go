// Command resample-wav resamples WAV audio files to a target sample rate.
//
// Usage:
//
//	resample-wav --rate 48 input.wav output.wav
//	resample-wav --rate 16000 --mode fft speech.wav speech_16k.wav
//	resample-wav --rate 96 --quality veryhigh --bit-depth 24 music.wav music_hires.wav
//	RESAMPLE_MODE=cubic resample-wav --rate 44.1 input.wav output.wav
//
// Every flag can also be set with a RESAMPLE_ environment variable
// (RESAMPLE_BIT_DEPTH, RESAMPLE_LOG_LEVEL, ...) or a --config file.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	resampler "github.com/tphakala/waveform-resampler"
	"github.com/tphakala/waveform-resampler/internal/logger"
)

const (
	appName   = "resample-wav"
	envPrefix = "RESAMPLE"

	// Rate parsing
	defaultRateKHz = 48.0
	kHzThreshold   = 1000.0
	kHzToHz        = 1000.0
	roundHalf      = 0.5
	maxRateHz      = 1<<32 - 1

	// Sample formats
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32
	wavFormatPCM    = 1

	// Log file rotation defaults
	defaultLogMaxSizeMB  = 50
	defaultLogMaxBackups = 3
	defaultLogMaxAgeDays = 28

	minRequiredArgs = 2
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := newFlagSet()
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav output.wav\n\nOptions:\n", appName)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < minRequiredArgs {
		fs.Usage()
		return fmt.Errorf("insufficient arguments")
	}

	cfg, err := loadConfig(fs)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if err := convert(cfg, fs.Arg(0), fs.Arg(1), log, stdout); err != nil {
		log.Error("resample failed",
			zap.String("input", fs.Arg(0)),
			zap.String("output", fs.Arg(1)),
			zap.Error(err))
		return err
	}
	return nil
}

// convert resamples inputPath into outputPath and prints a summary.
func convert(cfg cliConfig, inputPath, outputPath string, log *zap.Logger, stdout io.Writer) error {
	targetRate, err := targetRateHz(cfg.Rate)
	if err != nil {
		return err
	}
	mode, err := resampler.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}
	quality, err := resampler.ParseQuality(cfg.Quality)
	if err != nil {
		return err
	}

	r, err := resampler.New(&resampler.Config{
		Quality:        quality,
		EnableParallel: cfg.Parallel,
		MaxWorkers:     cfg.Workers,
		Logger:         log,
	})
	if err != nil {
		return err
	}

	start := time.Now()

	input, err := readWAV(inputPath)
	if err != nil {
		return err
	}
	source := input.waveform

	bitDepth := cfg.BitDepth
	if bitDepth == 0 {
		bitDepth = input.bitDepth
	}

	log.Info("resampling",
		zap.String("input", inputPath),
		zap.String("output", outputPath),
		zap.Uint32("source_rate_hz", source.FrameRateHz()),
		zap.Uint32("target_rate_hz", targetRate),
		zap.Uint32("channels", source.NumChannels()),
		zap.Int("bit_depth", bitDepth),
		zap.Stringer("mode", mode),
		zap.Stringer("quality", quality),
		zap.Bool("parallel", cfg.Parallel))

	out, err := r.Resample(source, targetRate, mode)
	if err != nil {
		return err
	}

	if err := writeWAV(outputPath, out, bitDepth); err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Fprintf(stdout, "Resampled %s -> %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
	fmt.Fprintf(stdout, "  %d Hz -> %d Hz (%d channels, %d-bit, %s)\n",
		source.FrameRateHz(), out.FrameRateHz(), out.NumChannels(), bitDepth, mode)
	fmt.Fprintf(stdout, "  %d frames -> %d frames\n", source.NumFrames(), out.NumFrames())
	if secs := elapsed.Seconds(); secs > 0 {
		fmt.Fprintf(stdout, "  Duration: %.2fs, Speed: %.1fx realtime\n",
			secs, source.Duration().Seconds()/secs)
	}

	return nil
}
