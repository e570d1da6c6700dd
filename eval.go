package graphcalc

import (
	"strconv"
)

// intSteps is the number of subintervals int uses.
const intSteps = 10000

// Context is a context for evaluating expressions. It holds variable values
// and the precision of functions computed with arbitrary precision. It is not
// safe to use a Context concurrently with Set.
type Context struct {
	names map[rune]float64
	prec  uint
}

// ContextOption is an option used when creating a context. Every
// ContextOption is also a SessionOption that applies to the session's
// variables.
type ContextOption interface {
	SessionOption
	ctxOption()
}

type (
	varopt struct {
		name rune
		val  float64
	}
	varsopt map[rune]float64
	precopt uint
)

func (varopt) ctxOption()  {}
func (varsopt) ctxOption() {}
func (precopt) ctxOption() {}

// SetVar sets the value of a variable in the context.
func SetVar(name rune, val float64) ContextOption {
	return varopt{name, val}
}

// SetVars sets the values of any number of variables in the context.
func SetVars(vars map[rune]float64) ContextOption {
	return varsopt(vars)
}

// Prec sets the precision in bits of ln, log, and sqrt. Results are always
// rounded to float64, but a higher precision keeps the rounding correct.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// NewContext creates a new evaluation context. If no precision is given, the
// default is 64.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{prec: 64}
	return ctx.Clone(opts...)
}

// Clone creates a copy of a context and applies options to it. Setting
// variables in the copy does not affect the original.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		names: make(map[rune]float64, len(ctx.names)),
		prec:  ctx.prec,
	}
	for name, val := range ctx.names {
		n.names[name] = val
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			n.names[opt.name] = opt.val
		case varsopt:
			for k, v := range opt {
				n.names[k] = v
			}
		case precopt:
			n.prec = uint(opt)
		default:
			panic("graphcalc: unknown option type")
		}
	}
	return &n
}

// Set sets the value of a variable. Returns ctx for chaining.
func (ctx *Context) Set(name rune, value float64) *Context {
	ctx.names[name] = value
	return ctx
}

// Lookup returns the value of a variable and whether it is set.
func (ctx *Context) Lookup(name rune) (float64, bool) {
	v, ok := ctx.names[name]
	return v, ok
}

// Prec returns the precision to which ln, log, and sqrt are computed.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// Eval evaluates an expression with no value for x. If the expression uses x,
// the result is a *FreeVariableError.
func (ctx *Context) Eval(e *Expr) (float64, error) {
	return e.n.eval(ctx, 0, false)
}

// EvalAt evaluates an expression with the free variable set to x.
func (ctx *Context) EvalAt(e *Expr, x float64) (float64, error) {
	return e.n.eval(ctx, x, true)
}

// Fn returns e as a function of x. The function uses a copy of ctx made now,
// so later changes to ctx do not affect it.
func (ctx *Context) Fn(e *Expr) Fn {
	snap := ctx.Clone()
	return func(x float64) (float64, error) {
		return e.n.eval(snap, x, true)
	}
}

// eval computes the node's value. free indicates whether x is bound.
func (n *node) eval(ctx *Context, x float64, free bool) (float64, error) {
	switch n.kind {
	case nodeNum:
		return n.num, nil
	case nodeVar:
		v, ok := ctx.names[n.name]
		if !ok {
			return 0, &NameError{Name: n.name}
		}
		return v, nil
	case nodeX:
		if !free {
			return 0, &FreeVariableError{}
		}
		return x, nil
	case nodeCall:
		invoc := make([]float64, len(n.args))
		for i, arg := range n.args {
			v, err := arg.eval(ctx, x, free)
			if err != nil {
				return 0, err
			}
			invoc[i] = v
		}
		if !n.fn.canCall(len(invoc)) {
			panic("graphcalc: " + n.call + " called with " + strconv.Itoa(len(invoc)) + " arguments (bad AST?)")
		}
		return n.fn.call(ctx, invoc), nil
	case nodeInt:
		if len(n.args) != 3 {
			panic("graphcalc: int called with " + strconv.Itoa(len(n.args)) + " arguments (bad AST?)")
		}
		lo, err := n.args[1].eval(ctx, x, free)
		if err != nil {
			return 0, err
		}
		hi, err := n.args[2].eval(ctx, x, free)
		if err != nil {
			return 0, err
		}
		f := func(t float64) (float64, error) {
			return n.args[0].eval(ctx, t, true)
		}
		return Integrate(f, lo, hi, intSteps)
	case nodeAdd, nodeSub, nodeMul, nodeDiv:
		l, err := n.left.eval(ctx, x, free)
		if err != nil {
			return 0, err
		}
		r, err := n.right.eval(ctx, x, free)
		if err != nil {
			return 0, err
		}
		switch n.kind {
		case nodeAdd:
			return l + r, nil
		case nodeSub:
			return l - r, nil
		case nodeMul:
			return l * r, nil
		default:
			// Division by zero gives an infinity or NaN.
			return l / r, nil
		}
	default:
		panic("graphcalc: invalid AST node " + n.kind.String())
	}
}

// EvalString is a shortcut to parse and evaluate a string expression with no
// value for x.
func EvalString(src string, opts ...ContextOption) (float64, error) {
	a, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return NewContext(opts...).Eval(a)
}

// NameError is an error from a lookup for a variable that is missing from the
// evaluation context.
type NameError struct {
	// Name is the name that was missing.
	Name rune
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.QuoteRune(err.Name)
}

// FreeVariableError is an error from evaluating x outside of a graph,
// derivative, or integral.
type FreeVariableError struct{}

func (err *FreeVariableError) Error() string {
	return "free variable 'x' has no value here"
}
