package graphcalc

import (
	"errors"
	"fmt"
	"log"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// derivcmd matches a request to sample a derivative of a curve, e.g. f'(x).
var derivcmd = regexp.MustCompile(`^[a-zA-Z]'+\(x\)$`)

var errCommand = errors.New("invalid command")

// Intercepts scans for crossings of two curves over this range.
const (
	interceptMin  = 0.0
	interceptMax  = 20.0
	interceptStep = 0.001
	interceptEps  = 0.001
)

// Session holds the variables and curves defined by a sequence of commands.
// Each command either succeeds completely or leaves the session unchanged.
// A Session is not safe for concurrent use.
type Session struct {
	ctx    *Context
	curves map[rune]*Expr
	win    window
	log    *log.Logger
}

type window struct {
	min, max, step float64
}

// SessionOption is an option used when creating a session.
type SessionOption interface {
	sessionOption(*Session)
}

type (
	windowopt window
	logopt    struct {
		l *log.Logger
	}
)

// maxSamples is the most points a window may sample.
const maxSamples = 1 << 24

// Window sets the range and spacing of x values at which curves are sampled.
// The default is from -10 to 10 in steps of 0.1. Panics unless min <= max,
// step > 0, all three are finite, and the window has at most 1<<24 steps.
func Window(min, max, step float64) SessionOption {
	if !finite(min) || !finite(max) || !finite(step) || !(min <= max) || !(step > 0) || !((max-min)/step <= maxSamples) {
		panic("graphcalc: invalid window " + strconv.FormatFloat(min, 'g', -1, 64) + " to " + strconv.FormatFloat(max, 'g', -1, 64) + " by " + strconv.FormatFloat(step, 'g', -1, 64))
	}
	return windowopt{min, max, step}
}

func (o windowopt) sessionOption(s *Session) {
	s.win = window(o)
}

// Logger sets a logger to which the session reports why commands fail.
// Without one, failures are silent apart from the nil result.
func Logger(l *log.Logger) SessionOption {
	return logopt{l}
}

func (o logopt) sessionOption(s *Session) {
	s.log = o.l
}

func (o varopt) sessionOption(s *Session)  { s.ctx = s.ctx.Clone(o) }
func (o varsopt) sessionOption(s *Session) { s.ctx = s.ctx.Clone(o) }
func (o precopt) sessionOption(s *Session) { s.ctx = s.ctx.Clone(o) }

// NewSession creates a session with no curves. Its variables and precision
// start as a copy of ctx, which may be nil.
func NewSession(ctx *Context, opts ...SessionOption) *Session {
	if ctx == nil {
		ctx = NewContext()
	} else {
		ctx = ctx.Clone()
	}
	s := Session{
		ctx:    ctx,
		curves: make(map[rune]*Expr),
		win:    window{-10, 10, 0.1},
	}
	for _, opt := range opts {
		opt.sessionOption(&s)
	}
	return &s
}

// Evaluate runs one command. The command is one of:
//
//	expr          evaluate an expression; the result is a *Value
//	f'(x)         sample a derivative of curve f, one ' per order; *Graph
//	a = expr      assign a variable; *Value with Name set
//	f(x) = expr   define and sample curve f; *Graph
//
// Any failure, whether lexing, parsing, or evaluating, gives a nil result and
// leaves the session unchanged.
func (s *Session) Evaluate(line string) Result {
	r, err := s.evaluate(line)
	if err != nil {
		s.logf("%q: %v", line, err)
		return nil
	}
	return r
}

func (s *Session) evaluate(line string) (Result, error) {
	switch n := strings.Count(line, "="); n {
	case 0:
		cmd := strip(line)
		if derivcmd.MatchString(cmd) {
			return s.derivative(cmd)
		}
		e, err := Parse(line, Curves(s.curves))
		if err != nil {
			return nil, err
		}
		v, err := s.ctx.Eval(e)
		if err != nil {
			return nil, err
		}
		return &Value{Value: v}, nil
	case 1:
		lhs, rhs, _ := strings.Cut(line, "=")
		lhs, rhs = strip(lhs), strip(rhs)
		if curveref.MatchString(lhs) {
			return s.define(rune(lhs[0]), rhs)
		}
		return s.assign(lhs, rhs)
	default:
		return nil, fmt.Errorf("%w: %d '=' signs", errCommand, n)
	}
}

func (s *Session) derivative(cmd string) (Result, error) {
	name := rune(cmd[0])
	c := s.curves[name]
	if c == nil {
		return nil, &CurveError{Col: 1, Name: name}
	}
	f := Differentiate(s.ctx.Fn(c), strings.Count(cmd, "'"))
	pts, err := s.sample(f)
	if err != nil {
		return nil, err
	}
	return &Graph{Points: pts}, nil
}

func (s *Session) define(name rune, rhs string) (Result, error) {
	e, err := Parse(rhs, Curves(s.curves))
	if err != nil {
		return nil, fmt.Errorf("defining %c(x): %w", name, err)
	}
	pts, err := s.sample(func(x float64) (float64, error) { return s.ctx.EvalAt(e, x) })
	if err != nil {
		return nil, fmt.Errorf("defining %c(x): %w", name, err)
	}
	s.curves[name] = e
	return &Graph{Points: pts}, nil
}

func (s *Session) assign(lhs, rhs string) (Result, error) {
	name, sz := utf8.DecodeRuneInString(lhs)
	if sz == 0 || sz != len(lhs) || !unicode.IsLetter(name) {
		return nil, fmt.Errorf("%w: cannot assign to %q", errCommand, lhs)
	}
	e, err := Parse(rhs, Curves(s.curves))
	if err != nil {
		return nil, fmt.Errorf("assigning %c: %w", name, err)
	}
	v, err := s.ctx.Eval(e)
	if err != nil {
		return nil, fmt.Errorf("assigning %c: %w", name, err)
	}
	s.ctx.Set(name, v)
	return &Value{Value: v, Name: lhs}, nil
}

// sample evaluates f across the session's window.
func (s *Session) sample(f Fn) ([]Point, error) {
	n := int(math.Round((s.win.max - s.win.min) / s.win.step))
	pts := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		x := s.win.min + float64(i)*s.win.step
		y, err := f(x)
		if err != nil {
			return nil, err
		}
		pts = append(pts, Point{X: x, Y: y})
	}
	return pts, nil
}

// Intercepts finds the x values in [0, 20) at which curves f and g are within
// 0.001 of each other, sampling every 0.001. Like FindRoots, which it uses,
// one crossing may produce several neighboring values. The result is false
// if either curve is undefined or fails to evaluate.
func (s *Session) Intercepts(f, g rune) ([]float64, bool) {
	cf, cg := s.curves[f], s.curves[g]
	if cf == nil || cg == nil {
		s.logf("intercepts of %c and %c: undefined curve", f, g)
		return nil, false
	}
	ff, gf := s.ctx.Fn(cf), s.ctx.Fn(cg)
	d := func(x float64) (float64, error) {
		a, err := ff(x)
		if err != nil {
			return 0, err
		}
		b, err := gf(x)
		if err != nil {
			return 0, err
		}
		return a - b, nil
	}
	roots, err := FindRoots(d, interceptMin, interceptMax, interceptStep, interceptEps)
	if err != nil {
		s.logf("intercepts of %c and %c: %v", f, g, err)
		return nil, false
	}
	return roots, true
}

// Var returns the value of a variable and whether it is defined.
func (s *Session) Var(name rune) (float64, bool) {
	return s.ctx.Lookup(name)
}

// Curve returns the expression of a defined curve, or nil if there is no
// curve with that name.
func (s *Session) Curve(name rune) *Expr {
	return s.curves[name]
}

func (s *Session) logf(format string, args ...interface{}) {
	if s.log != nil {
		s.log.Printf(format, args...)
	}
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// strip removes all whitespace from s.
func strip(s string) string {
	return strings.Join(strings.Fields(s), "")
}
