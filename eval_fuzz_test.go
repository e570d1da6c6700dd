//go:build go1.18
// +build go1.18

package graphcalc_test

import (
	"testing"

	"github.com/zephyrtronium/graphcalc"
)

func FuzzEval(f *testing.F) {
	f.Add("x")
	f.Add("a")
	f.Add("sqrt(ln(x)/log(x, 2))")
	f.Add("int(x*x, a, 1)")
	f.Fuzz(func(t *testing.T, s string) {
		graphcalc.EvalString(s, graphcalc.SetVar('a', 0.5))
	})
}
