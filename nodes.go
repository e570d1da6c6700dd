package graphcalc

import (
	"strconv"
	"strings"
)

// node is a node in the expression tree. Operators own left and right, calls
// own args, and leaves own nothing.
type node struct {
	kind nodeKind

	num  float64
	name rune
	fn   function
	call string

	left  *node
	right *node
	args  []*node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum // num
	nodeVar // lookup(name)
	nodeX   // the free variable

	nodeCall // call fn with args
	nodeInt  // integrate args[0] over x from args[1] to args[2]

	nodeAdd // evaluate left, add right
	nodeSub // evaluate left, sub right
	nodeMul // evaluate left, mul right
	nodeDiv // evaluate left, div by right
)

//go:generate go mod edit -require=golang.org/x/tools@v0.1.0
//go:generate go mod download
//go:generate go run golang.org/x/tools/cmd/stringer -type=nodeKind -trimprefix=node
//go:generate go mod tidy

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

func (n *node) fmt(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	switch n.kind {
	case nodeNone:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
		if n.left != nil {
			n.left.fmt(b, !square)
		}
		b.WriteByte('#')
		if n.right != nil {
			n.right.fmt(b, !square)
		}
		b.WriteByte('$')
	case nodeNum:
		b.WriteString(strconv.FormatFloat(n.num, 'g', -1, 64))
	case nodeVar, nodeX:
		b.WriteRune(n.name)
	case nodeCall, nodeInt:
		b.WriteString(n.call)
		n.fmtargs(b, !square)
	case nodeAdd:
		n.left.fmt(b, !square)
		b.WriteString(" + ")
		n.right.fmt(b, !square)
	case nodeSub:
		n.left.fmt(b, !square)
		b.WriteString(" - ")
		n.right.fmt(b, !square)
	case nodeMul:
		n.left.fmt(b, !square)
		b.WriteString(" * ")
		n.right.fmt(b, !square)
	case nodeDiv:
		n.left.fmt(b, !square)
		b.WriteString(" / ")
		n.right.fmt(b, !square)
	default:
		panic("graphcalc: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

func (n *node) fmtargs(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	for i, arg := range n.args {
		if i > 0 {
			b.WriteString(", ")
		}
		arg.fmt(b, !square)
	}
}

// clone makes a deep copy of the tree rooted at n.
func (n *node) clone() *node {
	if n == nil {
		return nil
	}
	m := *n
	m.left = n.left.clone()
	m.right = n.right.clone()
	if n.args != nil {
		m.args = make([]*node, len(n.args))
		for i, arg := range n.args {
			m.args[i] = arg.clone()
		}
	}
	return &m
}
