// Command analyze-filter prints the polyphase filter bank that the sinc
// and lanczos modes use for a conversion: the Kaiser taper, per-phase DC
// gain, and the magnitude response of phase 0 around the cutoff.
//
// Usage:
//
//	analyze-filter --rate-in 44100 --rate-out 48000 --quality high
//	analyze-filter --rate-in 48000 --rate-out 16000 --window lanczos --lobes 4
package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/spf13/pflag"

	resampler "github.com/tphakala/waveform-resampler"
	"github.com/tphakala/waveform-resampler/internal/engine"
	"github.com/tphakala/waveform-resampler/internal/filter"
)

const (
	defaultInputRate  = 44100
	defaultOutputRate = 48000
	defaultLobes      = 3

	// Response evaluation
	defaultResponsePoints = 2048
	nyquistFraction       = 0.5

	// Display limits
	maxPhasesToAnalyze = 4096
	maxPhasesToShow    = 5
	taperSteps         = 4
)

// cutoffMultiples are the reported frequencies, as multiples of the cutoff.
var cutoffMultiples = []float64{0, 0.5, 0.9, 1.0, 1.1, 1.25, 1.5, 2.0}

type params struct {
	rateIn, rateOut uint32
	quality         string
	window          string
	lobes           int
	points          int
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "analyze-filter: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	var p params
	fs := pflag.NewFlagSet("analyze-filter", pflag.ContinueOnError)
	fs.Uint32Var(&p.rateIn, "rate-in", defaultInputRate, "Source frame rate in Hz")
	fs.Uint32Var(&p.rateOut, "rate-out", defaultOutputRate, "Target frame rate in Hz")
	fs.StringVar(&p.quality, "quality", "high", "Kaiser quality preset: low, medium, high, veryhigh")
	fs.StringVar(&p.window, "window", "kaiser", "Kernel window: kaiser or lanczos")
	fs.IntVar(&p.lobes, "lobes", defaultLobes, "Lanczos lobes")
	fs.IntVar(&p.points, "points", defaultResponsePoints, "Frequency response points")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return analyze(stdout, p)
}

func analyze(w io.Writer, p params) error {
	ratio, err := engine.NewRatio(p.rateIn, p.rateOut)
	if err != nil {
		return err
	}

	kernel, passband, err := buildKernel(p)
	if err != nil {
		return err
	}

	cutoff := ratio.Cutoff() * passband
	phases := int(min(ratio.Up, maxPhasesToAnalyze))
	pfb, err := filter.NewPolyphaseFilterBank(kernel, phases, cutoff)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "=== Analyzing Filter Bank ===")
	fmt.Fprintf(w, "Conversion: %d Hz -> %d Hz (ratio %s)\n", p.rateIn, p.rateOut, ratio)
	fmt.Fprintf(w, "Kernel: %s, %.0f lobes, beta %.4f\n", kernel.Kind(), kernel.Lobes(), kernel.Beta())
	fmt.Fprintf(w, "Cutoff: %.6f of input Nyquist\n", cutoff)
	if kernel.Kind() == filter.WindowKaiser {
		printTaper(w, kernel)
	}
	fmt.Fprintf(w, "  NumPhases: %d", pfb.NumPhases)
	if uint64(phases) < ratio.Up {
		fmt.Fprintf(w, " (of %d; conversions above %d phases use a kernel table)", ratio.Up, engine.DefaultMaxPolyphasePhases)
	}
	fmt.Fprintf(w, "\n  TapsPerPhase: %d\n", pfb.TapsPerPhase)
	fmt.Fprintf(w, "  Memory: %.1f KB\n\n", float64(pfb.GetMemoryUsage())/1024)

	// DC gain of each phase
	fmt.Fprintln(w, "DC gain per phase:")
	minDC, maxDC := math.Inf(1), math.Inf(-1)
	for phase := range pfb.NumPhases {
		var dc float64
		for _, c := range pfb.Phase(phase) {
			dc += c
		}
		minDC, maxDC = min(minDC, dc), max(maxDC, dc)
		if phase < maxPhasesToShow {
			fmt.Fprintf(w, "  Phase %2d: %.12f\n", phase, dc)
		}
	}
	if pfb.NumPhases > maxPhasesToShow {
		fmt.Fprintf(w, "  ... (%d more phases)\n", pfb.NumPhases-maxPhasesToShow)
	}
	fmt.Fprintf(w, "  Range: [%.12f, %.12f]\n\n", minDC, maxDC)

	// Magnitude response of phase 0 around the cutoff
	resp := pfb.ComputeFrequencyResponse(p.points)
	edge := cutoff * nyquistFraction
	fmt.Fprintln(w, "Phase 0 magnitude response (frequency as fraction of input rate):")
	for _, m := range cutoffMultiples {
		f := edge * m
		if f >= nyquistFraction {
			break
		}
		k := nearestBin(resp.Frequencies, f)
		fmt.Fprintf(w, "  %4.2f x cutoff  f=%.4f  %9.2f dB\n",
			m, resp.Frequencies[k], filter.MagnitudeDB(resp.Magnitude[k]))
	}

	return nil
}

// printTaper prints the Kaiser window value at evenly spaced lobes, from
// the kernel center out to its edge.
func printTaper(w io.Writer, kernel *filter.Kernel) {
	lobes := int(kernel.Lobes())
	window := filter.KaiserWindow(2*lobes+1, kernel.Beta())

	fmt.Fprintln(w, "Window taper:")
	step := max(1, lobes/taperSteps)
	for lobe := 0; lobe <= lobes; lobe += step {
		fmt.Fprintf(w, "  lobe %3d: %.6f\n", lobe, window[lobes+lobe])
	}
	if lobes%step != 0 {
		fmt.Fprintf(w, "  lobe %3d: %.6f\n", lobes, window[2*lobes])
	}
}

// buildKernel returns the kernel selected by p and its passband scale.
func buildKernel(p params) (*filter.Kernel, float64, error) {
	switch strings.ToLower(strings.TrimSpace(p.window)) {
	case "kaiser":
		preset, err := resampler.ParseQuality(p.quality)
		if err != nil {
			return nil, 0, err
		}
		spec := resampler.GetPresetSpec(preset)
		k, err := filter.NewKaiserKernel(spec.ZeroCrossings, spec.Attenuation)
		return k, spec.Passband, err
	case "lanczos":
		k, err := filter.NewLanczosKernel(p.lobes)
		return k, 1, err
	default:
		return nil, 0, fmt.Errorf("unknown window %q (want kaiser or lanczos)", p.window)
	}
}

// nearestBin returns the index of the frequency closest to f.
func nearestBin(freqs []float64, f float64) int {
	best := 0
	for i, v := range freqs {
		if math.Abs(v-f) < math.Abs(freqs[best]-f) {
			best = i
		}
	}
	return best
}
