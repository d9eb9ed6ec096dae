package engine

// position tracks the exact input position j*M/L of output frame j as an
// integer index plus a remainder in [0, L). Advancing never accumulates
// rounding error.
type position struct {
	index int
	rem   uint64

	up    uint64
	whole int
	frac  uint64
}

func newPosition(r Ratio) position {
	return position{
		up:    r.Up,
		whole: int(r.Down / r.Up),
		frac:  r.Down % r.Up,
	}
}

// advance moves to the next output frame.
func (p *position) advance() {
	p.index += p.whole
	p.rem += p.frac
	if p.rem >= p.up {
		p.rem -= p.up
		p.index++
	}
}

// fraction returns rem/L in [0, 1).
func (p *position) fraction() float64 {
	return float64(p.rem) / float64(p.up)
}
