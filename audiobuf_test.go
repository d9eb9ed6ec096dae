package resampler

import (
	"testing"

	"github.com/go-audio/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromIntBuffer(t *testing.T) {
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: 44100},
		Data:           []int{0, 32767, -32767, 16384},
		SourceBitDepth: 16,
	}

	w, err := FromIntBuffer(buf)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), w.NumChannels())
	assert.Equal(t, uint32(44100), w.FrameRateHz())
	assert.Equal(t, uint64(2), w.NumFrames())

	samples := w.Samples()
	assert.InDelta(t, 0.0, samples[0], 0)
	assert.InDelta(t, 1.0, samples[1], 1e-7)
	assert.InDelta(t, -1.0, samples[2], 1e-7)
	assert.InDelta(t, 0.5, samples[3], 1e-4)
}

func TestFromIntBuffer_DefaultBitDepth(t *testing.T) {
	buf := &audio.IntBuffer{
		Format: &audio.Format{NumChannels: 1, SampleRate: 16000},
		Data:   []int{32767},
	}
	w, err := FromIntBuffer(buf)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, w.At(0, 0), 1e-7)
}

func TestFromIntBuffer_Invalid(t *testing.T) {
	tests := []struct {
		name string
		buf  *audio.IntBuffer
	}{
		{name: "nil", buf: nil},
		{name: "no format", buf: &audio.IntBuffer{Data: []int{1}}},
		{name: "ragged", buf: &audio.IntBuffer{Format: &audio.Format{NumChannels: 2, SampleRate: 8000}, Data: []int{1}}},
		{name: "negative rate", buf: &audio.IntBuffer{Format: &audio.Format{NumChannels: 1, SampleRate: -1}, Data: []int{1}}},
		{name: "bit depth", buf: &audio.IntBuffer{Format: &audio.Format{NumChannels: 1, SampleRate: 8000}, Data: []int{1}, SourceBitDepth: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromIntBuffer(tt.buf)
			require.ErrorIs(t, err, ErrInvalidWaveform)
		})
	}
}

func TestToIntBuffer(t *testing.T) {
	w, err := NewWaveform(1, 48000, []float32{0, 0.5, 1, -1, 1.5, -2})
	require.NoError(t, err)

	buf, err := w.ToIntBuffer(16)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 16384, 32767, -32767, 32767, -32767}, buf.Data)
	assert.Equal(t, 16, buf.SourceBitDepth)
	assert.Equal(t, 1, buf.Format.NumChannels)
	assert.Equal(t, 48000, buf.Format.SampleRate)

	buf24, err := w.ToIntBuffer(24)
	require.NoError(t, err)
	assert.Equal(t, 8388607, buf24.Data[2])

	_, err = w.ToIntBuffer(7)
	require.ErrorIs(t, err, ErrInvalidConfig)
	_, err = w.ToIntBuffer(33)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestIntBuffer_RoundTrip(t *testing.T) {
	data := []int{0, 1, -1, 1000, -1000, 32767, -32767, 12345, -23456, 7}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: 22050},
		Data:           data,
		SourceBitDepth: 16,
	}

	w, err := FromIntBuffer(buf)
	require.NoError(t, err)
	back, err := w.ToIntBuffer(16)
	require.NoError(t, err)
	assert.Equal(t, data, back.Data)
}

func TestFloat32Buffer_RoundTrip(t *testing.T) {
	buf := &audio.Float32Buffer{
		Format: &audio.Format{NumChannels: 2, SampleRate: 96000},
		Data:   []float32{0.25, -0.25, 0.5, -0.5},
	}

	w, err := FromFloat32Buffer(buf)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), w.NumFrames())

	back := w.ToFloat32Buffer()
	assert.Equal(t, buf.Data, back.Data)
	assert.Equal(t, buf.Format.NumChannels, back.Format.NumChannels)
	assert.Equal(t, buf.Format.SampleRate, back.Format.SampleRate)

	_, err = FromFloat32Buffer(nil)
	require.ErrorIs(t, err, ErrInvalidWaveform)
}
