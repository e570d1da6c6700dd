//go:build go1.18
// +build go1.18

package graphcalc_test

import (
	"testing"

	"github.com/zephyrtronium/graphcalc"
)

func FuzzParse(f *testing.F) {
	f.Add("x")
	f.Add("2+3*4")
	f.Add("asin(x)")
	f.Add("int(f(x), 0, 1)")
	f.Add("log(log(8, 2), 4)")
	f.Fuzz(func(t *testing.T, s string) {
		e, err := graphcalc.Parse(s, graphcalc.Curve('f', nil))
		if (e == nil) == (err == nil) {
			t.Errorf("Parse(%q) gave %v, %v", s, e, err)
		}
		if err == nil {
			return
		}
		if _, ok := err.(graphcalc.InputError); !ok {
			t.Errorf("Parse(%q) gave non-InputError %T: %v", s, err, err)
		}
	})
}
