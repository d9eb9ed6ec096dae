package main

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"

	resampler "github.com/tphakala/waveform-resampler"
)

// wavInput is a fully decoded WAV file.
type wavInput struct {
	waveform *resampler.Waveform
	bitDepth int
}

// readWAV decodes a PCM WAV file into a waveform.
func readWAV(path string) (*wavInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	bitDepth := int(decoder.BitDepth)
	if !supportedBitDepth(bitDepth) {
		return nil, fmt.Errorf("unsupported bit depth %d in %s (want 16, 24 or 32)", bitDepth, path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}
	buf.SourceBitDepth = bitDepth

	w, err := resampler.FromIntBuffer(buf)
	if err != nil {
		return nil, fmt.Errorf("failed to convert audio data: %w", err)
	}
	return &wavInput{waveform: w, bitDepth: bitDepth}, nil
}

// writeWAV encodes a waveform as integer PCM at bitDepth. Close errors
// are returned since the encoder finalizes the header on close.
func writeWAV(path string, w *resampler.Waveform, bitDepth int) (err error) {
	if !supportedBitDepth(bitDepth) {
		return fmt.Errorf("unsupported output bit depth %d (want 16, 24 or 32)", bitDepth)
	}

	buf, err := w.ToIntBuffer(bitDepth)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	encoder := wav.NewEncoder(f, int(w.FrameRateHz()), bitDepth, int(w.NumChannels()), wavFormatPCM)
	if err := encoder.Write(buf); err != nil {
		_ = encoder.Close()
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV file: %w", err)
	}
	return nil
}

func supportedBitDepth(bitDepth int) bool {
	switch bitDepth {
	case bitsPerSample16, bitsPerSample24, bitsPerSample32:
		return true
	default:
		return false
	}
}
