package graphcalc

import (
	"errors"
	"reflect"
	"testing"
)

func TestLex(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		tokens []lexToken
	}{
		// spaces
		{"empty", "", nil},
		{"spaces", " \t \r\n ", nil},
		// numbers
		{"digit", "2", []lexToken{{kind: tokenNum, pos: 1, num: 2}}},
		{"digits", "9876543210", []lexToken{{kind: tokenNum, pos: 1, num: 9876543210}}},
		{"decimal", "1.5", []lexToken{{kind: tokenNum, pos: 1, num: 1.5}}},
		{"leading-dot", ".5", []lexToken{{kind: tokenNum, pos: 1, num: 0.5}}},
		{"trailing-dot", "3.", []lexToken{{kind: tokenNum, pos: 1, num: 3}}},
		{"separate", "2 3", []lexToken{{kind: tokenNum, pos: 1, num: 2}, {kind: tokenNum, pos: 3, num: 3}}},
		// operators
		{"add", "2+3", []lexToken{{kind: tokenNum, pos: 1, num: 2}, {kind: tokenAdd, pos: 2}, {kind: tokenNum, pos: 3, num: 3}}},
		{"ops", "-+/*", []lexToken{{kind: tokenSub, pos: 1}, {kind: tokenAdd, pos: 2}, {kind: tokenDiv, pos: 3}, {kind: tokenMul, pos: 4}}},
		// variables
		{"var", "a", []lexToken{{kind: tokenVar, pos: 1, name: 'a'}}},
		{"x", "x", []lexToken{{kind: tokenX, pos: 1, name: 'x'}}},
		{"run", "abx", []lexToken{{kind: tokenVar, pos: 1, name: 'a'}, {kind: tokenVar, pos: 2, name: 'b'}, {kind: tokenX, pos: 3, name: 'x'}}},
		{"unicode", "π", []lexToken{{kind: tokenVar, pos: 1, name: 'π'}}},
		{"mul", "a*b", []lexToken{{kind: tokenVar, pos: 1, name: 'a'}, {kind: tokenMul, pos: 2}, {kind: tokenVar, pos: 3, name: 'b'}}},
		// brackets
		{"paren", "(2)", []lexToken{{kind: tokenNum, depth: 1, pos: 2, num: 2}}},
		{"nested", "((a))-b", []lexToken{{kind: tokenVar, depth: 2, pos: 3, name: 'a'}, {kind: tokenSub, pos: 6}, {kind: tokenVar, pos: 7, name: 'b'}}},
		{"var-paren", "f(x)", []lexToken{{kind: tokenVar, pos: 1, name: 'f'}, {kind: tokenX, depth: 1, pos: 3, name: 'x'}}},
		// calls
		{"call", "sin(x)", []lexToken{
			{kind: tokenFunc, pos: 1, fn: "sin", args: [][]lexToken{
				{{kind: tokenX, pos: 5, name: 'x'}},
			}},
		}},
		{"call-leading", "asin(1)", []lexToken{
			{kind: tokenVar, pos: 1, name: 'a'},
			{kind: tokenFunc, pos: 2, fn: "sin", args: [][]lexToken{
				{{kind: tokenNum, pos: 6, num: 1}},
			}},
		}},
		{"call-depth", "(cos(0))", []lexToken{
			{kind: tokenFunc, depth: 1, pos: 2, fn: "cos", args: [][]lexToken{
				{{kind: tokenNum, pos: 6, num: 0}},
			}},
		}},
		{"call-nested", "sqrt((1))", []lexToken{
			{kind: tokenFunc, pos: 1, fn: "sqrt", args: [][]lexToken{
				{{kind: tokenNum, depth: 1, pos: 7, num: 1}},
			}},
		}},
		{"call-2", "log(8, 2)", []lexToken{
			{kind: tokenFunc, pos: 1, fn: "log", args: [][]lexToken{
				{{kind: tokenNum, pos: 5, num: 8}},
				{{kind: tokenNum, pos: 8, num: 2}},
			}},
		}},
		{"call-inner-comma", "log(log(8, 2), 3)", []lexToken{
			{kind: tokenFunc, pos: 1, fn: "log", args: [][]lexToken{
				{{kind: tokenFunc, pos: 5, fn: "log", args: [][]lexToken{
					{{kind: tokenNum, pos: 9, num: 8}},
					{{kind: tokenNum, pos: 12, num: 2}},
				}}},
				{{kind: tokenNum, pos: 16, num: 3}},
			}},
		}},
		{"call-empty", "ln()", []lexToken{
			{kind: tokenFunc, pos: 1, fn: "ln", args: [][]lexToken{nil}},
		}},
		{"call-add", "sin(x)+1", []lexToken{
			{kind: tokenFunc, pos: 1, fn: "sin", args: [][]lexToken{
				{{kind: tokenX, pos: 5, name: 'x'}},
			}},
			{kind: tokenAdd, pos: 7},
			{kind: tokenNum, pos: 8, num: 1},
		}},
		// integrals
		{"int", "int(x*x, 0, 1)", []lexToken{
			{kind: tokenFunc, pos: 1, fn: "int", args: [][]lexToken{
				{{kind: tokenX, pos: 5, name: 'x'}, {kind: tokenMul, pos: 6}, {kind: tokenX, pos: 7, name: 'x'}},
				{{kind: tokenNum, pos: 10, num: 0}},
				{{kind: tokenNum, pos: 13, num: 1}},
			}},
		}},
		{"int-curve", "int(f(x), 0, 1)", []lexToken{
			{kind: tokenFunc, pos: 1, fn: "int", args: [][]lexToken{
				{{kind: tokenCurve, pos: 5, name: 'f'}},
				{{kind: tokenNum, pos: 11, num: 0}},
				{{kind: tokenNum, pos: 14, num: 1}},
			}},
		}},
		{"int-curve-spaced", "int( g(x) ,0,1)", []lexToken{
			{kind: tokenFunc, pos: 1, fn: "int", args: [][]lexToken{
				{{kind: tokenCurve, pos: 6, name: 'g'}},
				{{kind: tokenNum, pos: 12, num: 0}},
				{{kind: tokenNum, pos: 14, num: 1}},
			}},
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			toks, err := lex(c.src)
			if err != nil {
				t.Fatalf("lexing %q: %v", c.src, err)
			}
			if !reflect.DeepEqual(toks, c.tokens) {
				t.Errorf("lexing %q:\n\twant %v\n\tgot  %v", c.src, c.tokens, toks)
			}
		})
	}
}

func TestLexErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		kind string
		col  int
	}{
		{"dots", "1.2.3", "number", 4},
		{"symbol", "1$", "", 2},
		{"underscore", "_a", "", 1},
		{"digit-ident", "a1$", "", 3},
		{"open", "(1", "bracket", 1},
		{"open-inner", "((1)", "bracket", 1},
		{"close", "1)", "bracket", 2},
		{"close-open", ")(", "bracket", 1},
		{"unterminated", "sin(1", "bracket", 4},
		{"unknown-func", "sinh(1)", "function", 1},
		{"unknown-func-leading", "asinh(1)", "function", 2},
		{"int-2", "int(x, 0)", "int", 1},
		{"int-4", "int(x, 0, 1, 2)", "int", 1},
		{"arg", "log(1, 2$)", "", 9},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			toks, err := lex(c.src)
			if err == nil {
				t.Fatalf("lexing %q succeeded with %v", c.src, toks)
			}
			var lerr *LexError
			if !errors.As(err, &lerr) {
				t.Fatalf("lexing %q: wrong error type %T: %v", c.src, err, err)
			}
			if lerr.Kind != c.kind {
				t.Errorf("lexing %q: want kind %q, got %q", c.src, c.kind, lerr.Kind)
			}
			if lerr.Pos() != c.col {
				t.Errorf("lexing %q: want column %d, got %d (%v)", c.src, c.col, lerr.Pos(), err)
			}
		})
	}
}

func TestFindfunc(t *testing.T) {
	cases := []struct {
		id   string
		k    int
		name string
	}{
		{"", -1, ""},
		{"ab", -1, ""},
		{"ln", 0, "ln"},
		{"sin", 0, "sin"},
		{"asin", 1, "sin"},
		{"sinh", 0, "sinh"},
		// Registry order wins over position: ln is searched before sin.
		{"sinln", 3, "ln"},
		{"sqrt", 0, "sqrt"},
		{"abint", 2, "int"},
	}
	for _, c := range cases {
		k, name := findfunc(c.id)
		if k != c.k || name != c.name {
			t.Errorf("findfunc(%q): want %d %q, got %d %q", c.id, c.k, c.name, k, name)
		}
	}
}
