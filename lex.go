package graphcalc

import (
	"errors"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type lexToken struct {
	kind tokenKind
	// depth is the number of unclosed parentheses before the token.
	depth int
	pos   int

	num  float64
	name rune
	fn   string
	args [][]lexToken
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text() + "@" + strconv.Itoa(t.pos) + "/" + strconv.Itoa(t.depth)
}

func (t lexToken) text() string {
	switch t.kind {
	case tokenAdd, tokenSub, tokenMul, tokenDiv:
		return opstrs[t.kind-tokenAdd]
	case tokenNum:
		return strconv.FormatFloat(t.num, 'g', -1, 64)
	case tokenVar, tokenX, tokenCurve:
		return string(t.name)
	case tokenFunc:
		var b strings.Builder
		b.WriteString(t.fn)
		b.WriteByte('(')
		for i, arg := range t.args {
			if i > 0 {
				b.WriteString(", ")
			}
			for j, tok := range arg {
				if j > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(tok.text())
			}
		}
		b.WriteByte(')')
		return b.String()
	default:
		return ""
	}
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenAdd through tokenDiv are binary operators, in the same order as
	// Operators.
	tokenAdd
	tokenSub
	tokenMul
	tokenDiv
	// tokenNum is a numeric literal.
	tokenNum
	// tokenVar is a single-letter variable.
	tokenVar
	// tokenX is the free variable x.
	tokenX
	// tokenFunc is a call to a registered function. Its args are the lexed
	// argument groups.
	tokenFunc
	// tokenCurve names a defined curve. It only appears as the sole token of
	// the first argument group of int.
	tokenCurve
)

//go:generate go mod edit -require=golang.org/x/tools@v0.1.0
//go:generate go mod download
//go:generate go run golang.org/x/tools/cmd/stringer -type=tokenKind -trimprefix=token
//go:generate go mod tidy

// Operators contains the runes which are binary operators.
const Operators = "+-*/"

var opstrs = [...]string{"+", "-", "*", "/"}

// curveref matches the first argument of int when it names a defined curve.
var curveref = regexp.MustCompile(`^[a-zA-Z]\(x\)$`)

type lexer struct {
	src   io.RuneScanner
	buf   strings.Builder
	rune  int
	depth int
}

// lex scans an entire expression into tokens.
func lex(src string) ([]lexToken, error) {
	return lexAt(src, 0)
}

// lexAt lexes src as though it followed col runes of an enclosing input, so
// that token positions and errors refer to the whole input.
func lexAt(src string, col int) ([]lexToken, error) {
	if err := checkBrackets(src, col); err != nil {
		return nil, err
	}
	l := lexer{src: strings.NewReader(src), rune: col}
	var toks []lexToken
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		switch {
		case unicode.IsSpace(r):
			continue
		case r == '(':
			l.depth++
		case r == ')':
			l.depth--
		case '0' <= r && r <= '9', r == '.':
			l.unreadRune()
			tok, err := l.scanNum()
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
		case unicode.IsLetter(r):
			l.unreadRune()
			toks, err = l.scanIdent(toks)
			if err != nil {
				return nil, err
			}
		default:
			if k := strings.IndexRune(Operators, r); k >= 0 {
				toks = append(toks, lexToken{kind: tokenAdd + tokenKind(k), depth: l.depth, pos: l.rune})
				continue
			}
			// Write the rune so that it shows up in the error message.
			l.buf.WriteRune(r)
			return nil, l.error("")
		}
	}
	for i := range toks {
		if toks[i].kind == tokenVar && toks[i].name == 'x' {
			toks[i].kind = tokenX
		}
	}
	return toks, nil
}

// checkBrackets verifies that every close parenthesis in src has an open
// parenthesis before it and that none are left open.
func checkBrackets(src string, col int) error {
	var open []int
	for _, r := range src {
		col++
		switch r {
		case '(':
			open = append(open, col)
		case ')':
			if len(open) == 0 {
				return &LexError{Text: ")", Kind: "bracket", Col: col}
			}
			open = open[:len(open)-1]
		}
	}
	if len(open) != 0 {
		return &LexError{Text: "(", Kind: "bracket", Col: open[len(open)-1]}
	}
	return nil
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

func (l *lexer) scanNum() (lexToken, error) {
	defer l.buf.Reset()
	tok := lexToken{kind: tokenNum, depth: l.depth, pos: l.rune + 1}
	dot := false
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return tok, err
		}
		if r == '.' {
			if dot {
				l.buf.WriteRune(r)
				return tok, l.error("number")
			}
			dot = true
		} else if r < '0' || r > '9' {
			l.unreadRune()
			break
		}
		l.buf.WriteRune(r)
	}
	s := l.buf.String()
	if s[0] == '.' {
		s = "0" + s
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		// Only digits and a single dot reach here.
		panic("graphcalc: invalid number " + strconv.Quote(s) + ": " + err.Error())
	}
	tok.num = v
	return tok, nil
}

// scanIdent scans a run of letters. If the run contains a function name and
// is followed by an open parenthesis, the letters before the name become
// variables and the call's arguments are scanned.
func (l *lexer) scanIdent(toks []lexToken) ([]lexToken, error) {
	defer l.buf.Reset()
	pos := l.rune + 1
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if r == '(' {
			id := l.buf.String()
			if k, name := findfunc(id); k >= 0 {
				for _, v := range id[:k] {
					toks = append(toks, lexToken{kind: tokenVar, depth: l.depth, pos: pos, name: v})
					pos++
				}
				if !isfunc(name) {
					return nil, &LexError{Text: name, Kind: "function", Col: pos}
				}
				call, err := l.scanCall(name, pos)
				if err != nil {
					return nil, err
				}
				return append(toks, call), nil
			}
		}
		if !unicode.IsLetter(r) {
			l.unreadRune()
			break
		}
		l.buf.WriteRune(r)
	}
	for _, v := range l.buf.String() {
		toks = append(toks, lexToken{kind: tokenVar, depth: l.depth, pos: pos, name: v})
		pos++
	}
	return toks, nil
}

// findfunc searches id for the first registered function name, in registry
// order. The result is the byte index of the match and the remainder of id
// from that index, or -1 if there is no match. The match is by substring, so
// e.g. "asin" is the variable a followed by sin.
func findfunc(id string) (int, string) {
	for _, name := range funcnames {
		if k := strings.Index(id, name); k >= 0 {
			return k, id[k:]
		}
	}
	return -1, ""
}

// scanCall scans the argument groups of a call to the function name at
// column pos. The open parenthesis has already been read.
func (l *lexer) scanCall(name string, pos int) (lexToken, error) {
	var (
		groups []string
		cols   []int
		cur    strings.Builder
	)
	start := l.rune
	depth := 1
	for depth > 0 {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// checkBrackets already rejected unterminated calls.
				panic("graphcalc: unterminated call to " + name + " after bracket check")
			}
			return lexToken{}, err
		}
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				continue
			}
		case ',':
			if depth == 1 {
				groups = append(groups, cur.String())
				cols = append(cols, start)
				cur.Reset()
				start = l.rune
				continue
			}
		}
		cur.WriteRune(r)
	}
	groups = append(groups, cur.String())
	cols = append(cols, start)

	tok := lexToken{kind: tokenFunc, depth: l.depth, pos: pos, fn: name}
	var ref []lexToken
	if name == "int" {
		if len(groups) != 3 {
			return lexToken{}, &LexError{Text: name + "(" + strings.Join(groups, ",") + ")", Kind: "int", Col: pos}
		}
		g := strings.TrimSpace(groups[0])
		if curveref.MatchString(g) {
			lead := strings.IndexFunc(groups[0], func(r rune) bool { return !unicode.IsSpace(r) })
			c, _ := utf8.DecodeRuneInString(g)
			ref = []lexToken{{kind: tokenCurve, pos: cols[0] + 1 + utf8.RuneCountInString(groups[0][:lead]), name: c}}
			groups, cols = groups[1:], cols[1:]
		}
	}
	if ref != nil {
		tok.args = append(tok.args, ref)
	}
	for i, g := range groups {
		arg, err := lexAt(g, cols[i])
		if err != nil {
			return lexToken{}, err
		}
		tok.args = append(tok.args, arg)
	}
	return tok, nil
}

func (l *lexer) error(kind string) error {
	return &LexError{
		Text: l.buf.String(),
		Kind: kind,
		Col:  l.rune,
	}
}

// LexError indicates input that cannot be split into tokens. It implements
// InputError.
type LexError struct {
	// Text is the input the lexer was scanning when it found the problem.
	Text string
	// Kind is the type of problem. This may be "bracket" for unbalanced
	// parentheses, including a call with no closing parenthesis, "int" for
	// an integral without exactly three arguments, "number" for a malformed
	// numeric literal, "function" for an unknown function name, or the empty
	// string for a character that begins no token.
	Kind string
	// Col is the position of the problem, in runes.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	switch err.Kind {
	case "":
		return "invalid token at " + pos + ": " + err.Text
	case "bracket":
		return "unbalanced " + err.Text + " at " + pos
	case "int":
		return "int needs 3 arguments at " + pos + ": " + err.Text
	case "function":
		return "unknown function at " + pos + ": " + err.Text
	default:
		return "invalid " + err.Kind + " at " + pos + ": " + err.Text
	}
}

func (err *LexError) Pos() int {
	return err.Col
}
