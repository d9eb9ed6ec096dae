package filter

import (
	"fmt"
	"math"
)

// DefaultTableDensity is the number of table points per kernel lobe.
const DefaultTableDensity = 512

// KernelTable is a dense lookup table of a kernel over [0, Lobes()].
// Values between points are linearly interpolated. It implements
// Evaluator and is used when a full polyphase bank would be too large.
type KernelTable struct {
	values  []float64
	density float64
	lobes   float64
}

// NewKernelTable samples e at density points per lobe.
func NewKernelTable(e Evaluator, density int) (*KernelTable, error) {
	if density < 1 {
		return nil, fmt.Errorf("%w: table density %d", ErrInvalidKernel, density)
	}

	lobes := e.Lobes()
	n := int(math.Ceil(lobes*float64(density))) + 1
	// One trailing zero so interpolation at the last point needs no check.
	values := make([]float64, n+1)
	for i := range n {
		values[i] = e.Eval(float64(i) / float64(density))
	}

	return &KernelTable{
		values:  values,
		density: float64(density),
		lobes:   lobes,
	}, nil
}

// Lobes returns the kernel half width.
func (t *KernelTable) Lobes() float64 { return t.lobes }

// Len returns the number of stored points.
func (t *KernelTable) Len() int { return len(t.values) }

// Eval returns the interpolated kernel value at u.
func (t *KernelTable) Eval(u float64) float64 {
	u = math.Abs(u)
	if u >= t.lobes {
		return 0
	}
	pos := u * t.density
	i := int(pos)
	frac := pos - float64(i)
	return t.values[i] + frac*(t.values[i+1]-t.values[i])
}
