package graphcalc

import (
	"encoding/json"
	"math"
	"strconv"
)

// Result is the outcome of a successful session command. It is either a
// *Value or a *Graph.
type Result interface {
	result()
}

// Value is the result of evaluating an expression or assigning a variable.
type Value struct {
	Value float64
	// Name is the variable that was assigned, or the empty string if the
	// command was a plain expression.
	Name string
}

// Graph is the result of defining a curve or requesting a derivative: the
// curve sampled across the session's window.
type Graph struct {
	Points []Point
}

// Point is a sampled point of a curve. Y may be NaN or infinite where the
// curve is undefined.
type Point struct {
	X, Y float64
}

func (*Value) result() {}
func (*Graph) result() {}

// MarshalJSON encodes v as {"type":"Value","value":v,"var_name":name}, with a
// null var_name for plain expressions.
func (v *Value) MarshalJSON() ([]byte, error) {
	var name *string
	if v.Name != "" {
		name = &v.Name
	}
	return json.Marshal(struct {
		Type    string    `json:"type"`
		Value   jsonFloat `json:"value"`
		VarName *string   `json:"var_name"`
	}{"Value", jsonFloat(v.Value), name})
}

// MarshalJSON encodes g as {"type":"Graph","points":[[x,y],...]}.
func (g *Graph) MarshalJSON() ([]byte, error) {
	pts := g.Points
	if pts == nil {
		pts = []Point{}
	}
	return json.Marshal(struct {
		Type   string  `json:"type"`
		Points []Point `json:"points"`
	}{"Graph", pts})
}

// MarshalJSON encodes p as a two-element array.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]jsonFloat{jsonFloat(p.X), jsonFloat(p.Y)})
}

// jsonFloat encodes NaN and infinities as null, which encoding/json refuses
// to do for float64.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	x := float64(f)
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, x, 'g', -1, 64), nil
}
