package resampler

import (
	"fmt"
	"math"

	"github.com/go-audio/audio"
)

// fullScale returns the largest positive signed sample value at bitDepth.
func fullScale(bitDepth int) float64 {
	return float64(int64(1)<<(bitDepth-1) - 1)
}

// checkFormat validates a go-audio buffer format.
func checkFormat(format *audio.Format) (channels, rate uint32, err error) {
	if format == nil {
		return 0, 0, fmt.Errorf("%w: buffer has no format", ErrInvalidWaveform)
	}
	if format.NumChannels < 0 || uint64(format.NumChannels) > math.MaxUint32 {
		return 0, 0, fmt.Errorf("%w: %d channels", ErrInvalidWaveform, format.NumChannels)
	}
	if format.SampleRate < 0 || uint64(format.SampleRate) > math.MaxUint32 {
		return 0, 0, fmt.Errorf("%w: sample rate %d Hz", ErrInvalidWaveform, format.SampleRate)
	}
	return uint32(format.NumChannels), uint32(format.SampleRate), nil
}

// FromIntBuffer converts a decoded integer PCM buffer to a waveform,
// normalizing by the buffer's SourceBitDepth (16 when unset) so that full
// scale maps to [-1, 1].
func FromIntBuffer(buf *audio.IntBuffer) (*Waveform, error) {
	if buf == nil {
		return nil, fmt.Errorf("%w: nil buffer", ErrInvalidWaveform)
	}
	channels, rate, err := checkFormat(buf.Format)
	if err != nil {
		return nil, err
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = defaultSourceBitDepth
	}
	if bitDepth < minBitDepth || bitDepth > maxBitDepth {
		return nil, fmt.Errorf("%w: bit depth %d outside %d-%d",
			ErrInvalidWaveform, bitDepth, minBitDepth, maxBitDepth)
	}

	scale := 1 / fullScale(bitDepth)
	samples := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float32(float64(v) * scale)
	}

	if err := validateInterleaved(channels, rate, samples); err != nil {
		return nil, err
	}
	return &Waveform{channels: channels, frameRateHz: rate, samples: samples}, nil
}

// FromFloat32Buffer converts a decoded float32 buffer to a waveform. The
// samples are copied unchanged.
func FromFloat32Buffer(buf *audio.Float32Buffer) (*Waveform, error) {
	if buf == nil {
		return nil, fmt.Errorf("%w: nil buffer", ErrInvalidWaveform)
	}
	channels, rate, err := checkFormat(buf.Format)
	if err != nil {
		return nil, err
	}
	return NewWaveform(channels, rate, buf.Data)
}

// ToIntBuffer converts the waveform to integer PCM at bitDepth (8-32).
// Samples are clamped to [-1, 1] before scaling.
func (w *Waveform) ToIntBuffer(bitDepth int) (*audio.IntBuffer, error) {
	if bitDepth < minBitDepth || bitDepth > maxBitDepth {
		return nil, fmt.Errorf("%w: bit depth %d outside %d-%d",
			ErrInvalidConfig, bitDepth, minBitDepth, maxBitDepth)
	}

	scale := fullScale(bitDepth)
	data := make([]int, len(w.samples))
	for i, v := range w.samples {
		s := max(-1, min(1, float64(v)))
		data[i] = int(math.Round(s * scale))
	}

	return &audio.IntBuffer{
		Format:         w.format(),
		Data:           data,
		SourceBitDepth: bitDepth,
	}, nil
}

// ToFloat32Buffer converts the waveform to a go-audio float32 buffer.
func (w *Waveform) ToFloat32Buffer() *audio.Float32Buffer {
	return &audio.Float32Buffer{
		Format:         w.format(),
		Data:           w.Samples(),
		SourceBitDepth: maxBitDepth,
	}
}

func (w *Waveform) format() *audio.Format {
	return &audio.Format{NumChannels: int(w.channels), SampleRate: int(w.frameRateHz)}
}
