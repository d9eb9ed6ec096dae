package resampler

import (
	"math"

	"github.com/tphakala/waveform-resampler/internal/mathutil"
)

// TargetFrameCount returns the number of frames every mode produces when
// converting inputFrames frames from sourceRateHz to targetRateHz:
//
//	floor(inputFrames * targetRateHz / sourceRateHz)
//
// The product is formed in 128 bits, so the result is exact for any
// input length. Equal rates return inputFrames unchanged. Zero input
// frames or a zero source rate (only legal for an empty waveform) give 0.
// A result too large for uint64 saturates at math.MaxUint64.
func TargetFrameCount(inputFrames uint64, sourceRateHz, targetRateHz uint32) uint64 {
	if sourceRateHz == targetRateHz {
		return inputFrames
	}
	if inputFrames == 0 || sourceRateHz == 0 {
		return 0
	}

	n, ok := mathutil.MulDiv(inputFrames, uint64(targetRateHz), uint64(sourceRateHz))
	if !ok {
		return math.MaxUint64
	}
	return n
}

// ReduceRatio returns the conversion ratio targetRateHz/sourceRateHz in
// lowest terms as up/down. Every output frame j lies at input position
// j*down/up.
func ReduceRatio(sourceRateHz, targetRateHz uint32) (up, down uint64) {
	return mathutil.ReduceRatio(uint64(targetRateHz), uint64(sourceRateHz))
}
