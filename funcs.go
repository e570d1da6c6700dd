package graphcalc

import (
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// funcnames is the function registry in the order the lexer searches it.
var funcnames = [...]string{"ln", "log", "sin", "cos", "tan", "sqrt", "int"}

// function is a builtin from reals to reals. int is not a function in this
// sense because it evaluates its first argument many times; it has its own
// node kind.
type function interface {
	// call evaluates the function on invoc, which has a length for which
	// canCall returned true.
	call(ctx *Context, invoc []float64) float64
	// canCall returns whether the function can be called with n arguments.
	canCall(n int) bool
}

var globalfuncs = map[string]function{
	"ln":   bigmonadic{bigfloat.Log, math.Log},
	"log":  logarithm{},
	"sin":  monadic(math.Sin),
	"cos":  monadic(math.Cos),
	"tan":  monadic(math.Tan),
	"sqrt": bigmonadic{(*big.Float).Sqrt, math.Sqrt},
}

// isfunc returns whether name is exactly a registered function name.
func isfunc(name string) bool {
	for _, fn := range funcnames {
		if fn == name {
			return true
		}
	}
	return false
}

// arity returns whether the function with the given name accepts n
// arguments.
func arity(name string, n int) bool {
	if name == "int" {
		return n == 3
	}
	return globalfuncs[name].canCall(n)
}

type monadic func(float64) float64

func (m monadic) call(ctx *Context, invoc []float64) float64 {
	return m(invoc[0])
}

func (m monadic) canCall(n int) bool {
	return n == 1
}

// bigmonadic is a function of one variable on the positive reals computed at
// the context's precision. Arguments that are not positive and finite use the
// float64 version, which gives the IEEE results for them.
type bigmonadic struct {
	f  func(out, in *big.Float) *big.Float
	fl func(float64) float64
}

func (m bigmonadic) call(ctx *Context, invoc []float64) float64 {
	x := invoc[0]
	if !(x > 0) || math.IsInf(x, 1) {
		return m.fl(x)
	}
	return bigcall(ctx.prec, m.f, x)
}

func (m bigmonadic) canCall(n int) bool {
	return n == 1
}

// bigcall evaluates f at x with prec bits. x must be positive and finite.
func bigcall(prec uint, f func(out, in *big.Float) *big.Float, x float64) float64 {
	in := new(big.Float).SetPrec(prec).SetFloat64(x)
	out := new(big.Float).SetPrec(prec)
	f(out, in)
	r, _ := out.Float64()
	return r
}

// logarithm is log(x) in base 10 or log(x, b) in base b.
type logarithm struct{}

func (logarithm) call(ctx *Context, invoc []float64) float64 {
	x, b := invoc[0], 10.0
	if len(invoc) == 2 {
		b = invoc[1]
	}
	if !(x > 0) || math.IsInf(x, 1) || !(b > 0) || math.IsInf(b, 1) || b == 1 {
		return math.Log(x) / math.Log(b)
	}
	return bigquo(ctx.prec, x, b)
}

func (logarithm) canCall(n int) bool {
	return n == 1 || n == 2
}

// bigquo computes ln(x)/ln(b) with prec bits, for positive finite x and b.
func bigquo(prec uint, x, b float64) float64 {
	out := new(big.Float).SetPrec(prec)
	bigfloat.Log(out, new(big.Float).SetPrec(prec).SetFloat64(x))
	base := new(big.Float).SetPrec(prec)
	bigfloat.Log(base, new(big.Float).SetPrec(prec).SetFloat64(b))
	r, _ := out.Quo(out, base).Float64()
	return r
}
