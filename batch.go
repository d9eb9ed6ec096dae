package resampler

import (
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// NamedWaveform is a waveform tagged with a caller-chosen name, such as
// the file it was decoded from.
type NamedWaveform struct {
	Name     string
	Waveform *Waveform
}

// NamedResult is the outcome of resampling one NamedWaveform. Exactly one
// of Waveform and Err is set.
type NamedResult struct {
	Name     string
	Waveform *Waveform
	Err      error
}

// BatchArgs configures ResampleBatch.
type BatchArgs struct {
	// NumWorkers bounds the number of waveforms resampled concurrently.
	// Zero selects the number of logical CPUs.
	NumWorkers int
}

// ResampleBatch resamples every item to targetRateHz with mode using the
// default configuration. See (*Resampler).ResampleBatch.
func ResampleBatch(items []NamedWaveform, targetRateHz uint32, mode Mode, args BatchArgs) []NamedResult {
	return defaultResampler().ResampleBatch(items, targetRateHz, mode, args)
}

// ResampleBatch resamples every item to targetRateHz with mode.
//
// Items are processed concurrently, at most args.NumWorkers at a time;
// the channels of each item are converted sequentially. Results are
// returned in input order and a failing item does not affect the others.
func (r *Resampler) ResampleBatch(items []NamedWaveform, targetRateHz uint32, mode Mode, args BatchArgs) []NamedResult {
	workers := args.NumWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]NamedResult, len(items))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, item := range items {
		g.Go(func() error {
			out, err := r.resample(item.Waveform, targetRateHz, mode, 1)
			results[i] = NamedResult{Name: item.Name, Waveform: out, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	r.logger.Debug("resampled batch",
		zap.Stringer("mode", mode),
		zap.Uint32("target_rate_hz", targetRateHz),
		zap.Int("items", len(items)),
		zap.Int("failed", failed),
		zap.Int("workers", workers))

	return results
}
