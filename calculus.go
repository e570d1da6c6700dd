package graphcalc

import (
	"math"
	"strconv"
)

// Fn is a real function of one variable. Evaluating it fails if, e.g., it
// refers to a variable with no value.
type Fn func(x float64) (float64, error)

// DiffStep is the step of the forward difference that Differentiate uses.
const DiffStep = 1e-4

// Differentiate approximates the derivative of f of the given order by
// applying the forward difference (f(x+h) - f(x))/h order times, with h =
// DiffStep. Error grows quickly with order; beyond two or three derivatives
// the result is mostly noise. Order 0 returns f.
func Differentiate(f Fn, order int) Fn {
	if order < 0 {
		panic("graphcalc: derivative of negative order " + strconv.Itoa(order))
	}
	for i := 0; i < order; i++ {
		f = forward(f)
	}
	return f
}

func forward(f Fn) Fn {
	return func(x float64) (float64, error) {
		a, err := f(x + DiffStep)
		if err != nil {
			return 0, err
		}
		b, err := f(x)
		if err != nil {
			return 0, err
		}
		return (a - b) / DiffStep, nil
	}
}

// Integrate approximates the integral of f from start to end with the
// trapezoid rule over n equal subintervals, i.e. the mean of the left and
// right Riemann sums. Panics if n is not positive.
func Integrate(f Fn, start, end float64, n int) (float64, error) {
	if n <= 0 {
		panic("graphcalc: integral over " + strconv.Itoa(n) + " subintervals")
	}
	w := (end - start) / float64(n)
	var left, right float64
	for i := 0; i <= n; i++ {
		y, err := f(start + float64(i)*w)
		if err != nil {
			return 0, err
		}
		if i < n {
			left += y
		}
		if i > 0 {
			right += y
		}
	}
	return (left*w + right*w) / 2, nil
}

// FindRoots samples f from start up to but excluding stop in increments of
// step and returns every sampled x where |f(x)| < epsilon. This is a scan, not
// a convergent method: depending on step and epsilon, a root may produce no
// points, one, or a run of neighbors. Panics if step is not positive.
func FindRoots(f Fn, start, stop, step, epsilon float64) ([]float64, error) {
	if !(step > 0) {
		panic("graphcalc: root scan with step " + strconv.FormatFloat(step, 'g', -1, 64))
	}
	var roots []float64
	for i := 0; ; i++ {
		x := start + float64(i)*step
		if !(x < stop) {
			break
		}
		y, err := f(x)
		if err != nil {
			return nil, err
		}
		if math.Abs(y) < epsilon {
			roots = append(roots, x)
		}
	}
	return roots, nil
}
