// Package easing implements the cubic-Bézier easing solver and the
// standard CSS easing catalogue.
package easing

import "math"

// Easing is any object producing sample(t) -> float64.
type Easing interface {
	Sample(t float64) float64
}

// Func adapts a plain function to the Easing interface.
type Func func(t float64) float64

func (f Func) Sample(t float64) float64 { return f(t) }

// CubicBezier is parametrised by two control points with implicit endpoints
// (0,0) and (1,1).
type CubicBezier struct {
	p1x, p1y, p2x, p2y float64

	ax, bx, cx float64
	ay, by, cy float64

	gradientStart float64
	gradientEnd   float64
}

// NewCubicBezier precomputes the polynomial coefficients and the linear
// extrapolation gradients at 0 and 1.
func NewCubicBezier(p1x, p1y, p2x, p2y float64) *CubicBezier {
	c := &CubicBezier{p1x: p1x, p1y: p1y, p2x: p2x, p2y: p2y}

	c.cx = 3 * p1x
	c.bx = 3*(p2x-p1x) - c.cx
	c.ax = 1 - c.cx - c.bx

	c.cy = 3 * p1y
	c.by = 3*(p2y-p1y) - c.cy
	c.ay = 1 - c.cy - c.by

	if p1x > 0 {
		c.gradientStart = p1y / p1x
	} else if p1y == 0 && p2x > 0 {
		c.gradientStart = p2y / p2x
	}

	if p2x < 1 {
		c.gradientEnd = (p2y - 1) / (p2x - 1)
	} else if p2y == 1 && p1x < 1 {
		c.gradientEnd = (p1y - 1) / (p1x - 1)
	}

	return c
}

func (c *CubicBezier) curveX(t float64) float64 {
	return ((c.ax*t+c.bx)*t + c.cx) * t
}

func (c *CubicBezier) curveY(t float64) float64 {
	return ((c.ay*t+c.by)*t + c.cy) * t
}

func (c *CubicBezier) derivativeX(t float64) float64 {
	return (3*c.ax*t+2*c.bx)*t + c.cx
}

// solveT finds t such that curveX(t) = x, via up to 8 Newton iterations
// (tolerance 1e-6, bailing to bisection if the derivative is too small).
func (c *CubicBezier) solveT(x float64) float64 {
	t := x
	for i := 0; i < 8; i++ {
		d := c.derivativeX(t)
		if math.Abs(d) < 1e-6 {
			break
		}
		current := c.curveX(t) - x
		if math.Abs(current) < 1e-6 {
			return t
		}
		t -= current / d
	}

	// Bisection fallback.
	lo, hi := 0.0, 1.0
	t = x
	for math.Abs(c.curveX(t)-x) > 1e-6 && hi-lo > 1e-7 {
		if c.curveX(t) < x {
			lo = t
		} else {
			hi = t
		}
		t = (lo + hi) / 2
	}
	return t
}

// Sample evaluates the easing at x, with linear extrapolation outside [0,1].
func (c *CubicBezier) Sample(x float64) float64 {
	if x < 0 {
		return c.gradientStart * x
	}
	if x > 1 {
		return 1 + c.gradientEnd*(x-1)
	}
	t := c.solveT(x)
	return c.curveY(t)
}
