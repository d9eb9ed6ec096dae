package resampler

import (
	"fmt"

	"github.com/tphakala/waveform-resampler/internal/engine"
)

// Common sample rates for convenience functions.
const (
	// RateCD is the CD quality sample rate (Red Book standard).
	RateCD = 44100

	// RateDAT is the DAT/DVD sample rate.
	RateDAT = 48000

	// RateHiRes88 is the high-resolution 2x CD sample rate.
	RateHiRes88 = 88200

	// RateHiRes96 is the high-resolution 2x DAT sample rate.
	RateHiRes96 = 96000

	// RateHiRes176 is the very high resolution 4x CD sample rate.
	RateHiRes176 = 176400

	// RateHiRes192 is the very high resolution 4x DAT sample rate.
	RateHiRes192 = 192000

	// RateTelephony is the telephony (PSTN narrowband) sample rate.
	RateTelephony = 8000

	// RateVoIP is the VoIP wideband sample rate.
	RateVoIP = 16000

	// RateSpeech is the speech recognition common sample rate.
	RateSpeech = 22050

	// RateVideo is the video production sample rate (matches many video formats).
	RateVideo = 48000
)

// ResampleMono is a convenience function for one-shot mono resampling of
// float64 samples with the default configuration. Samples stay in float64
// throughout; the output has TargetFrameCount frames.
func ResampleMono(input []float64, inputRate, outputRate uint32, mode Mode) ([]float64, error) {
	out, err := defaultResampler().resampleChannels([][]float64{input}, inputRate, outputRate, mode)
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// ResampleStereo is a convenience function for one-shot stereo resampling.
// Both channels must have the same length.
func ResampleStereo(left, right []float64, inputRate, outputRate uint32, mode Mode) (leftOut, rightOut []float64, err error) {
	if len(left) != len(right) {
		return nil, nil, fmt.Errorf("%w: left has %d frames, right has %d",
			ErrInvalidWaveform, len(left), len(right))
	}

	out, err := defaultResampler().resampleChannels([][]float64{left, right}, inputRate, outputRate, mode)
	if err != nil {
		return nil, nil, err
	}
	return out[0], out[1], nil
}

// resampleChannels converts planar float64 channels of equal length.
func (r *Resampler) resampleChannels(in [][]float64, inputRate, outputRate uint32, mode Mode) ([][]float64, error) {
	if outputRate == 0 {
		return nil, fmt.Errorf("%w: target rate must be positive", ErrInvalidTargetRate)
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}

	frames := len(in[0])
	if inputRate == outputRate {
		out := make([][]float64, len(in))
		for ch, data := range in {
			out[ch] = append([]float64(nil), data...)
		}
		return out, nil
	}
	if frames > 0 && inputRate == 0 {
		return nil, fmt.Errorf("%w: %d samples with zero frame rate", ErrInvalidWaveform, frames)
	}

	outputFrames := int(TargetFrameCount(uint64(frames), inputRate, outputRate))
	out := make([][]float64, len(in))
	for ch := range out {
		out[ch] = make([]float64, outputFrames)
	}
	if outputFrames == 0 {
		return out, nil
	}

	conv, err := r.newConverter(mode, inputRate, outputRate)
	if err != nil {
		return nil, r.conversionError(mode, inputRate, outputRate, err)
	}
	if err := engine.ConvertChannels(conv, out, in, r.channelWorkers()); err != nil {
		return nil, r.conversionError(mode, inputRate, outputRate, err)
	}
	return out, nil
}

// InterleaveToStereo converts two mono channels to interleaved stereo.
// Output format: [L0, R0, L1, R1, L2, R2, ...]
func InterleaveToStereo(left, right []float64) []float64 {
	minLen := min(len(left), len(right))
	result := make([]float64, minLen*stereoChannels)
	for i := range minLen {
		result[i*stereoChannels] = left[i]
		result[i*stereoChannels+1] = right[i]
	}
	return result
}

// DeinterleaveFromStereo converts interleaved stereo to two mono channels.
// Input format: [L0, R0, L1, R1, L2, R2, ...]
func DeinterleaveFromStereo(interleaved []float64) (left, right []float64) {
	numSamples := len(interleaved) / stereoChannels
	left = make([]float64, numSamples)
	right = make([]float64, numSamples)
	for i := range numSamples {
		left[i] = interleaved[i*stereoChannels]
		right[i] = interleaved[i*stereoChannels+1]
	}
	return left, right
}
