package engine

// CubicConverter implements cubic (4-point, 3rd order) Hermite
// interpolation at exact output positions. Samples beyond either end of
// the channel hold the edge value. It applies no anti-aliasing filter.
type CubicConverter struct {
	ratio Ratio
}

// NewCubicConverter creates a cubic interpolation converter.
func NewCubicConverter(r Ratio) *CubicConverter {
	return &CubicConverter{ratio: r}
}

// Convert implements Converter.
func (c *CubicConverter) Convert(dst, src []float64) error {
	if err := checkLengths(c.ratio, dst, src); err != nil {
		return err
	}
	if c.ratio.Identity() {
		copy(dst, src)
		return nil
	}

	last := len(src) - 1
	pos := newPosition(c.ratio)
	for j := range dst {
		i := pos.index
		if pos.rem == 0 {
			dst[j] = src[i]
		} else {
			dst[j] = hermite(
				src[clampIndex(i-1, last)],
				src[i],
				src[clampIndex(i+1, last)],
				src[clampIndex(i+2, last)],
				pos.fraction(),
			)
		}
		pos.advance()
	}

	return nil
}

// Info implements Converter.
func (c *CubicConverter) Info() Info {
	return Info{Algorithm: "cubic", Ratio: c.ratio, Taps: cubicInterpolationPoints}
}

// hermite performs Catmull-Rom cubic Hermite interpolation between y1 and
// y2 at fraction x, using y0 and y3 for the tangents.
// y = ((a*x + b)*x + c)*x + d
func hermite(y0, y1, y2, y3, x float64) float64 {
	coefA := -hermiteCoeff0_5*y0 + hermiteCoeff1_5*y1 - hermiteCoeff1_5*y2 + hermiteCoeff0_5*y3
	coefB := y0 - hermiteCoeff2_5*y1 + 2*y2 - hermiteCoeff0_5*y3
	coefC := -hermiteCoeff0_5*y0 + hermiteCoeff0_5*y2
	coefD := y1

	return ((coefA*x+coefB)*x+coefC)*x + coefD
}

// LinearConverter implements linear (2-point, 1st order) interpolation:
// y = x[i]*(1-f) + x[i+1]*f. The last input sample is held past the end.
// It applies no anti-aliasing filter.
type LinearConverter struct {
	ratio Ratio
}

// NewLinearConverter creates a linear interpolation converter.
func NewLinearConverter(r Ratio) *LinearConverter {
	return &LinearConverter{ratio: r}
}

// Convert implements Converter.
func (l *LinearConverter) Convert(dst, src []float64) error {
	if err := checkLengths(l.ratio, dst, src); err != nil {
		return err
	}
	if l.ratio.Identity() {
		copy(dst, src)
		return nil
	}

	last := len(src) - 1
	pos := newPosition(l.ratio)
	for j := range dst {
		i := pos.index
		if pos.rem == 0 || i >= last {
			dst[j] = src[i]
		} else {
			f := pos.fraction()
			dst[j] = src[i]*(1-f) + src[i+1]*f
		}
		pos.advance()
	}

	return nil
}

// Info implements Converter.
func (l *LinearConverter) Info() Info {
	return Info{Algorithm: "linear", Ratio: l.ratio, Taps: linearInterpolationPoints}
}

func clampIndex(i, last int) int {
	if i < 0 {
		return 0
	}
	if i > last {
		return last
	}
	return i
}
