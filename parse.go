package graphcalc

import (
	"strings"
	"unicode/utf8"
)

// Expr = num | var | x | Call | Add | Sub | Mul | Div | '(' Expr ')'
// Call = funcname '(' Expr { ',' Expr } ')'
// Int = 'int' '(' (letter '(x)' | Expr) ',' Expr ',' Expr ')'
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr
// Div = Expr '/' Expr
//
// Parsing does not climb precedence while scanning. The lexer records the
// parenthesis depth of every token, and the builder repeatedly picks the
// token that must be the root of the current slice.

// Expr is a parsed expression that can be evaluated with a context. An Expr
// is never modified after parsing, so it is safe to share between contexts
// and sessions.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// names is the list of variable names used in the expression.
	names []rune
}

// parsectx holds general data for parsing. It is also a ParseOption.
type parsectx struct {
	// names is the set of variable names that have been seen this parse.
	names map[rune]bool
	// curves is the set of curves that int can reference by name.
	curves map[rune]*Expr
}

// Parse parses an expression so it can be evaluated with a context. The given
// options are applied in order.
func Parse(src string, opts ...ParseOption) (*Expr, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := parsectx{
		names: make(map[rune]bool),
	}
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	n, err := build(toks, &p, utf8.RuneCountInString(src)+1, "")
	if err != nil {
		return nil, err
	}
	ex := Expr{
		n:     n,
		names: make([]rune, 0, len(p.names)),
	}
	for k := range p.names {
		ex.names = append(ex.names, k)
	}
	sortrunes(ex.names)
	return &ex, nil
}

// sortrunes sorts a rune slice without using package sort because that has
// reflection and allocation problems.
func sortrunes(names []rune) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// build builds the tree for a slice of tokens. If the slice is empty, the
// error reports col and end as the place where the missing expression should
// have been.
func build(toks []lexToken, p *parsectx, col int, end string) (*node, error) {
	switch len(toks) {
	case 0:
		return nil, &EmptyExpressionError{Col: col, End: end}
	case 1:
		if toks[0].kind == tokenFunc {
			return buildcall(toks[0], p)
		}
	}
	k := splitpoint(toks)
	if k < 0 {
		if len(toks) != 1 {
			return nil, &TermError{Col: toks[1].pos}
		}
		return leaf(toks[0], p), nil
	}
	tok := toks[k]
	if tok.kind == tokenFunc {
		// The call is the loosest token, so it sits next to another value
		// with no operator between them.
		return nil, &TermError{Col: tok.pos}
	}
	op := tok.text()
	lhs, err := build(toks[:k], p, tok.pos, op)
	if err != nil {
		return nil, err
	}
	rhs, err := build(toks[k+1:], p, tok.pos, op)
	if err != nil {
		return nil, err
	}
	return &node{kind: nodeAdd + nodeKind(tok.kind-tokenAdd), left: lhs, right: rhs}, nil
}

func leaf(tok lexToken, p *parsectx) *node {
	switch tok.kind {
	case tokenNum:
		return &node{kind: nodeNum, num: tok.num}
	case tokenVar:
		p.names[tok.name] = true
		return &node{kind: nodeVar, name: tok.name}
	case tokenX:
		return &node{kind: nodeX, name: tok.name}
	default:
		panic("graphcalc: invalid leaf token " + tok.String())
	}
}

// buildcall builds a call from a function token. If the first argument group
// is a curve reference, the curve's tree is copied in as the first argument.
func buildcall(tok lexToken, p *parsectx) (*node, error) {
	n := &node{kind: nodeCall, call: tok.fn, fn: globalfuncs[tok.fn]}
	if tok.fn == "int" {
		n.kind = nodeInt
	}
	args := tok.args
	if len(args) > 0 && len(args[0]) == 1 && args[0][0].kind == tokenCurve {
		ref := args[0][0]
		c := p.curves[ref.name]
		if c == nil {
			return nil, &CurveError{Col: ref.pos, Name: ref.name}
		}
		n.args = append(n.args, c.n.clone())
		for _, v := range c.names {
			p.names[v] = true
		}
		args = args[1:]
	}
	for _, arg := range args {
		a, err := build(arg, p, tok.pos, tok.fn)
		if err != nil {
			return nil, err
		}
		n.args = append(n.args, a)
	}
	if !arity(tok.fn, len(n.args)) {
		return nil, &CallError{Col: tok.pos, Func: tok.fn, Len: len(n.args)}
	}
	return n, nil
}

// splitpoint finds the index of the token that is the root of the tree for
// toks. The result is -1 if toks contains only leaves or is a single call.
func splitpoint(toks []lexToken) int {
	if len(toks) == 1 && toks[0].kind == tokenFunc {
		return -1
	}
	k := -1
	var best operator
	for i, tok := range toks {
		r := rank(tok.kind)
		if r < 0 {
			continue
		}
		op := operator{depth: tok.depth, rank: r, pos: i}
		if k < 0 || op.looser(best) {
			k, best = i, op
		}
	}
	return k
}

// Vars returns the variable names used when evaluating the expression.
func (e *Expr) Vars() []rune {
	return append(([]rune)(nil), e.names...)
}

// String creates a string representation of the parsed expression, with
// alternating round and square brackets grouping each term.
func (e *Expr) String() string {
	var b strings.Builder
	e.n.fmt(&b, false)
	return b.String()
}

type operator struct {
	// depth is the parenthesis depth of the operator.
	depth int
	// rank is the operator class. Higher binds more loosely.
	rank int8
	// pos is the index of the operator in its token slice.
	pos int
}

// looser returns whether op should be the root of a tree that also contains
// than. Shallower operators come first, then looser classes, then later
// positions so that operators in the same class associate to the left.
func (op operator) looser(than operator) bool {
	if op.depth != than.depth {
		return op.depth < than.depth
	}
	if op.rank != than.rank {
		return op.rank > than.rank
	}
	return op.pos > than.pos
}

// rank gets the operator class of a token kind. The result is -1 for leaves.
func rank(k tokenKind) int8 {
	switch k {
	case tokenFunc:
		return 0
	case tokenMul, tokenDiv:
		return 1
	case tokenAdd, tokenSub:
		return 2
	default:
		return -1
	}
}
