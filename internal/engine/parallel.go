package engine

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ConvertChannels runs conv over every planar channel, writing dst[ch]
// from src[ch]. With workers > 1 channels are converted concurrently, at
// most workers at a time. The first error is returned.
func ConvertChannels(conv Converter, dst, src [][]float64, workers int) error {
	if len(dst) != len(src) {
		return fmt.Errorf("%w: %d destination channels for %d source channels",
			ErrLengthMismatch, len(dst), len(src))
	}

	if workers <= 1 || len(src) <= 1 {
		for ch := range src {
			if err := conv.Convert(dst[ch], src[ch]); err != nil {
				return fmt.Errorf("channel %d: %w", ch, err)
			}
		}
		return nil
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for ch := range src {
		g.Go(func() error {
			if err := conv.Convert(dst[ch], src[ch]); err != nil {
				return fmt.Errorf("channel %d: %w", ch, err)
			}
			return nil
		})
	}
	return g.Wait()
}
