// Package resampler converts decoded multi-channel audio waveforms between
// arbitrary integer frame rates in pure Go.
//
// A [Waveform] holds interleaved float32 samples with a channel count and a
// frame rate. [Resample] produces an equivalent waveform at a target rate
// using one of a closed set of modes. All modes agree exactly on the output
// shape: the same channel count and
//
//	floor(inputFrames * targetRate / sourceRate)
//
// frames, as reported by [TargetFrameCount]. They differ only in sample
// values.
//
// # Quick Start
//
//	w, err := resampler.NewWaveform(2, 44100, interleaved)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, err := w.Resample(48000)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For a specific mode or configuration:
//
//	r, err := resampler.New(&resampler.Config{
//	    Quality:        resampler.QualityVeryHigh,
//	    EnableParallel: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, err := r.Resample(w, 22050, resampler.ModeFFT)
//
// # Modes
//
//   - [ModeSinc] (default): band-limited interpolation with a Kaiser
//     windowed-sinc kernel, tuned by the [QualityPreset] in [Config].
//   - [ModeLanczos]: sinc kernel with a Lanczos window of
//     [Config.LanczosLobes] lobes.
//   - [ModeLinear]: two-point linear interpolation, edge samples held.
//   - [ModeCubic]: four-point Catmull-Rom cubic Hermite interpolation.
//   - [ModeFFT]: block-wise spectral resampling with overlapping
//     segments. Reduced ratios with a term above [Config.MaxFFTRatioTerm]
//     fail with [ErrUnsupportedConversion].
//
// Output frame j is positioned at input frame j*M/L, where L/M is the
// reduced ratio targetRate/sourceRate. Positions are tracked in exact
// integer arithmetic, so long inputs accumulate no drift.
//
// # Errors
//
// Failures wrap one of the sentinel errors ([ErrInvalidWaveform],
// [ErrInvalidTargetRate], [ErrUnknownMode], [ErrUnsupportedConversion],
// [ErrInvalidConfig]); test them with errors.Is. Failures inside an
// algorithm are returned as a [*ConversionError] carrying the mode and
// rates. A mode that cannot perform a conversion never falls back to
// another mode.
//
// # Concurrency
//
// A [Resampler] holds only immutable configuration and is safe for
// concurrent use. With [Config.EnableParallel] the channels of a waveform
// are converted concurrently; results are bit-identical to sequential
// processing. [ResampleBatch] converts many waveforms with a bounded
// worker pool.
//
// # Interop
//
// [FromIntBuffer], [FromFloat32Buffer], [Waveform.ToIntBuffer] and
// [Waveform.ToFloat32Buffer] convert between waveforms and go-audio
// buffers. The package never reads or writes files; see cmd/resample-wav
// for a WAV front end.
package resampler
