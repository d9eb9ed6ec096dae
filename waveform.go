package resampler

import (
	"fmt"
	"math"
	"time"

	"github.com/tphakala/waveform-resampler/internal/mathutil"
)

// Waveform is an immutable block of decoded audio: a channel count, a frame
// rate, and interleaved float32 samples [f0c0, f0c1, ..., f1c0, ...].
// An empty waveform (zero frames) is legal, and only an empty waveform may
// have zero channels or a zero frame rate.
type Waveform struct {
	channels    uint32
	frameRateHz uint32
	samples     []float32
}

// NewWaveform builds a waveform from interleaved samples. The buffer is
// copied. It fails with ErrInvalidWaveform when samples are present but
// channels or frameRateHz is zero, when the buffer does not divide into
// whole frames, or when a sample is NaN or infinite.
func NewWaveform(channels, frameRateHz uint32, interleaved []float32) (*Waveform, error) {
	if err := validateInterleaved(channels, frameRateHz, interleaved); err != nil {
		return nil, err
	}

	samples := make([]float32, len(interleaved))
	copy(samples, interleaved)
	return &Waveform{channels: channels, frameRateHz: frameRateHz, samples: samples}, nil
}

// NewWaveformFromPlanar builds a waveform from one slice per channel.
// All channels must have the same length.
func NewWaveformFromPlanar(frameRateHz uint32, planar [][]float32) (*Waveform, error) {
	channels := len(planar)
	if uint64(channels) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidWaveform, channels)
	}

	var frames int
	if channels > 0 {
		frames = len(planar[0])
	}
	for ch, data := range planar {
		if len(data) != frames {
			return nil, fmt.Errorf("%w: channel %d has %d frames, channel 0 has %d",
				ErrInvalidWaveform, ch, len(data), frames)
		}
	}

	samples := make([]float32, frames*channels)
	for ch, data := range planar {
		for i, v := range data {
			samples[i*channels+ch] = v
		}
	}

	if err := validateInterleaved(uint32(channels), frameRateHz, samples); err != nil {
		return nil, err
	}
	return &Waveform{channels: uint32(channels), frameRateHz: frameRateHz, samples: samples}, nil
}

func validateInterleaved(channels, frameRateHz uint32, samples []float32) error {
	if len(samples) == 0 {
		return nil
	}
	if channels == 0 {
		return fmt.Errorf("%w: %d samples with zero channels", ErrInvalidWaveform, len(samples))
	}
	if frameRateHz == 0 {
		return fmt.Errorf("%w: %d samples with zero frame rate", ErrInvalidWaveform, len(samples))
	}
	if len(samples)%int(channels) != 0 {
		return fmt.Errorf("%w: %d samples do not divide into %d channels",
			ErrInvalidWaveform, len(samples), channels)
	}
	for i, v := range samples {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: non-finite sample %v at frame %d channel %d",
				ErrInvalidWaveform, v, i/int(channels), i%int(channels))
		}
	}
	return nil
}

// NumChannels returns the number of channels.
func (w *Waveform) NumChannels() uint32 {
	return w.channels
}

// NumFrames returns the number of frames.
func (w *Waveform) NumFrames() uint64 {
	if w.channels == 0 {
		return 0
	}
	return uint64(len(w.samples)) / uint64(w.channels)
}

// FrameRateHz returns the frame rate in Hz.
func (w *Waveform) FrameRateHz() uint32 {
	return w.frameRateHz
}

// Duration returns NumFrames / FrameRateHz, truncated to the nanosecond.
// It is zero for an empty waveform.
func (w *Waveform) Duration() time.Duration {
	if w.frameRateHz == 0 {
		return 0
	}
	ns, ok := mathutil.MulDiv(w.NumFrames(), uint64(time.Second), uint64(w.frameRateHz))
	if !ok || ns > math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(ns)
}

// IsEmpty reports whether the waveform has no frames.
func (w *Waveform) IsEmpty() bool {
	return len(w.samples) == 0
}

// Samples returns a copy of the interleaved samples.
func (w *Waveform) Samples() []float32 {
	out := make([]float32, len(w.samples))
	copy(out, w.samples)
	return out
}

// Channel returns a copy of one channel's samples.
func (w *Waveform) Channel(ch int) ([]float32, error) {
	if ch < 0 || ch >= int(w.channels) {
		return nil, fmt.Errorf("channel %d out of range [0, %d)", ch, w.channels)
	}

	frames := int(w.NumFrames())
	stride := int(w.channels)
	out := make([]float32, frames)
	for i := range out {
		out[i] = w.samples[i*stride+ch]
	}
	return out, nil
}

// Frame returns a copy of the samples of frame i, one per channel.
func (w *Waveform) Frame(i int) ([]float32, error) {
	if i < 0 || uint64(i) >= w.NumFrames() {
		return nil, fmt.Errorf("frame %d out of range [0, %d)", i, w.NumFrames())
	}

	stride := int(w.channels)
	out := make([]float32, stride)
	copy(out, w.samples[i*stride:(i+1)*stride])
	return out, nil
}

// At returns the sample at frame i, channel ch, or 0 when out of range.
func (w *Waveform) At(i, ch int) float32 {
	if ch < 0 || ch >= int(w.channels) || i < 0 || uint64(i) >= w.NumFrames() {
		return 0
	}
	return w.samples[i*int(w.channels)+ch]
}

// Equal reports whether both waveforms have the same shape, frame rate,
// and bit-identical samples.
func (w *Waveform) Equal(other *Waveform) bool {
	if w == nil || other == nil {
		return w == other
	}
	if w.channels != other.channels || w.frameRateHz != other.frameRateHz ||
		len(w.samples) != len(other.samples) {
		return false
	}
	for i, v := range w.samples {
		if math.Float32bits(v) != math.Float32bits(other.samples[i]) {
			return false
		}
	}
	return true
}

// String implements fmt.Stringer.
func (w *Waveform) String() string {
	return fmt.Sprintf("Waveform { frame_rate_hz: %d, num_channels: %d, num_frames: %d }",
		w.frameRateHz, w.channels, w.NumFrames())
}

// clone returns a deep copy.
func (w *Waveform) clone() *Waveform {
	return &Waveform{channels: w.channels, frameRateHz: w.frameRateHz, samples: w.Samples()}
}

// planar splits the samples into one float64 slice per channel, backed by a
// single allocation.
func (w *Waveform) planar() [][]float64 {
	channels := int(w.channels)
	frames := int(w.NumFrames())
	arena := make([]float64, frames*channels)

	out := make([][]float64, channels)
	for ch := range out {
		out[ch] = arena[ch*frames : (ch+1)*frames : (ch+1)*frames]
	}
	for i := range frames {
		frame := w.samples[i*channels : (i+1)*channels]
		for ch, v := range frame {
			out[ch][i] = float64(v)
		}
	}
	return out
}
