// Command crossvalidate resamples a synthetic waveform with every mode and
// reports frame counts, deviation between modes, and timing.
//
// Usage:
//
//	crossvalidate --rate-in 44100 --rate-out 44099 --frames 44100 --channels 2
//
// It exits non-zero if any mode produces a frame count other than
// floor(frames * rate-out / rate-in).
package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/spf13/pflag"

	resampler "github.com/tphakala/waveform-resampler"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "crossvalidate: %v\n", err)
		os.Exit(1)
	}
}

// modeResult is one mode's conversion outcome.
type modeResult struct {
	mode    resampler.Mode
	info    resampler.Info
	out     *resampler.Waveform
	elapsed time.Duration
	err     error
}

func run(args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("crossvalidate", pflag.ContinueOnError)
	rateIn := fs.Uint32("rate-in", defaultInputRate, "Source frame rate in Hz")
	rateOut := fs.Uint32("rate-out", defaultOutputRate, "Target frame rate in Hz")
	frames := fs.Int("frames", defaultFrames, "Number of source frames")
	channels := fs.Uint32("channels", defaultChannels, "Number of channels")
	quality := fs.String("quality", "high", "Sinc quality preset: low, medium, high, veryhigh")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *frames < 0 || *frames > maxFrames {
		return fmt.Errorf("frames must be 0-%d", maxFrames)
	}
	if *rateIn == 0 || *rateOut == 0 {
		return errors.New("rates must be positive")
	}
	if *channels == 0 || *channels > maxChannels {
		return fmt.Errorf("channels must be 1-%d", maxChannels)
	}
	preset, err := resampler.ParseQuality(*quality)
	if err != nil {
		return err
	}

	r, err := resampler.New(&resampler.Config{Quality: preset, EnableParallel: true})
	if err != nil {
		return err
	}

	source, err := resampler.NewWaveform(*channels, *rateIn, generateTestSignal(*channels, *rateIn, *frames))
	if err != nil {
		return err
	}

	want := resampler.TargetFrameCount(source.NumFrames(), *rateIn, *rateOut)
	up, down := resampler.ReduceRatio(*rateIn, *rateOut)
	fmt.Fprintf(stdout, "Source: %s\n", source)
	fmt.Fprintf(stdout, "Target: %d Hz, ratio %d/%d, expected %d frames\n\n", *rateOut, up, down, want)

	results := make([]modeResult, 0, len(resampler.Modes()))
	for _, mode := range resampler.Modes() {
		res := modeResult{mode: mode}
		res.info, res.err = r.Info(*rateIn, *rateOut, mode)
		if res.err == nil {
			start := time.Now()
			res.out, res.err = r.Resample(source, *rateOut, mode)
			res.elapsed = time.Since(start)
		}
		results = append(results, res)
	}

	mismatches := report(stdout, results, want)
	fmt.Fprintf(stdout, "\nSIMD: %s\n", results[0].info.SIMDType)

	if mismatches > 0 {
		return fmt.Errorf("%d mode(s) produced an unexpected frame count", mismatches)
	}
	return nil
}

// report prints a table of results with deviations measured against the
// first successful mode, and returns the number of frame count mismatches.
func report(w io.Writer, results []modeResult, want uint64) int {
	var reference *resampler.Waveform
	for _, res := range results {
		if res.err == nil {
			reference = res.out
			break
		}
	}

	fmt.Fprintf(w, "%-8s %-8s %10s %6s %8s %10s %12s %12s %10s\n",
		"mode", "kernel", "frames", "taps", "phases", "memory KB", "peak dev", "rms dev", "time")

	mismatches := 0
	for _, res := range results {
		if res.err != nil {
			fmt.Fprintf(w, "%-8s error: %v\n", res.mode, res.err)
			continue
		}
		if res.out.NumFrames() != want {
			mismatches++
		}

		peak, rms := deviation(reference, res.out)
		fmt.Fprintf(w, "%-8s %-8s %10d %6d %8d %10.1f %12.3e %12.3e %10s\n",
			res.mode, res.info.Algorithm, res.out.NumFrames(), res.info.FilterLength, res.info.Phases,
			float64(res.info.MemoryUsage)/bytesPerKilobyte, peak, rms, res.elapsed.Round(time.Microsecond))
	}
	return mismatches
}

// deviation returns the peak and RMS sample difference between a and b
// over their common length.
func deviation(a, b *resampler.Waveform) (peak, rms float64) {
	sa, sb := a.Samples(), b.Samples()
	n := min(len(sa), len(sb))
	if n == 0 {
		return 0, 0
	}

	var sum float64
	for i := range n {
		d := float64(sa[i]) - float64(sb[i])
		peak = max(peak, math.Abs(d))
		sum += d * d
	}
	return peak, math.Sqrt(sum / float64(n))
}

// generateTestSignal returns interleaved tones, one frequency per channel.
func generateTestSignal(channels, rate uint32, frames int) []float32 {
	samples := make([]float32, frames*int(channels))
	for ch := range int(channels) {
		omega := 2 * math.Pi * testSignalFrequency * float64(ch+1) / float64(rate)
		for i := range frames {
			samples[i*int(channels)+ch] = float32(testSignalAmplitude * math.Sin(omega*float64(i)))
		}
	}
	return samples
}
