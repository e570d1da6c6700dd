package graphcalc

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	curveopt struct {
		name rune
		e    *Expr
	}
	curvesopt map[rune]*Expr
)

// Curve makes a curve available to int by name, so that "int(f(x), 0, 1)"
// integrates e. To hide a curve, pass nil for e.
func Curve(name rune, e *Expr) ParseOption {
	return &curveopt{name, e}
}

func (o *curveopt) parseOption(p parsectx) parsectx {
	if p.curves == nil {
		p.curves = map[rune]*Expr{}
	}
	p.curves[o.name] = o.e
	return p
}

// Curves makes a group of curves available to int. To hide any curve, set it
// to nil.
func Curves(curves map[rune]*Expr) ParseOption {
	return curvesopt(curves)
}

func (o curvesopt) parseOption(p parsectx) parsectx {
	if p.curves == nil {
		// Always make a copy.
		p.curves = make(map[rune]*Expr, len(o))
	}
	for k, v := range o {
		p.curves[k] = v
	}
	return p
}
