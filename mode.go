package resampler

import (
	"fmt"
	"strings"
)

// Mode selects a resampling algorithm. All modes produce the same number
// of frames and channels and differ only in sample values.
type Mode int

const (
	// ModeSinc reconstructs the signal with a Kaiser-windowed sinc kernel.
	// When downsampling the kernel bandwidth narrows to act as the
	// anti-aliasing lowpass. It is the default mode.
	ModeSinc Mode = iota

	// ModeLanczos uses a Lanczos (sinc-windowed sinc) kernel. Like
	// ModeSinc it narrows its bandwidth when downsampling.
	ModeLanczos

	// ModeLinear interpolates linearly between the two bracketing input
	// frames. It applies no anti-aliasing filter.
	ModeLinear

	// ModeCubic interpolates with a 4-point Catmull-Rom Hermite spline.
	// It applies no anti-aliasing filter.
	ModeCubic

	// ModeFFT resamples each block in the frequency domain by truncating
	// or zero-extending its spectrum. It fails with
	// ErrUnsupportedConversion when the reduced rate ratio has a term
	// above Config.MaxFFTRatioTerm.
	ModeFFT

	numModes
)

// ModeDefault is the mode used when none is given.
const ModeDefault = ModeSinc

var modeNames = [numModes]string{
	ModeSinc:    "sinc",
	ModeLanczos: "lanczos",
	ModeLinear:  "linear",
	ModeCubic:   "cubic",
	ModeFFT:     "fft",
}

// Modes returns every mode in declaration order.
func Modes() []Mode {
	modes := make([]Mode, numModes)
	for i := range modes {
		modes[i] = Mode(i)
	}
	return modes
}

// ParseMode returns the mode with the given name. Matching ignores case
// and surrounding space; "default" names ModeDefault.
func ParseMode(name string) (Mode, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "default" {
		return ModeDefault, nil
	}
	for i, n := range modeNames {
		if n == key {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q (valid: default, %s)", ErrUnknownMode, name, strings.Join(modeNames[:], ", "))
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m >= 0 && m < numModes
}

// String returns the mode name.
func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
