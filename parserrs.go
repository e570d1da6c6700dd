package graphcalc

import "strconv"

// TermError is an error indicating values next to each other with no operator
// between them, e.g. "2 3" or "2sin(x)". It implements InputError.
type TermError struct {
	// Col is the position of the second value.
	Col int
}

func (err *TermError) Error() string {
	return errpos(err.Col, "missing operator between terms")
}

func (err *TermError) Pos() int {
	return err.Col
}

// CurveError is an error indicating a reference to a curve that has not been
// defined. It implements InputError.
type CurveError struct {
	// Col is the position of the reference.
	Col int
	// Name is the name of the missing curve.
	Name rune
}

func (err *CurveError) Error() string {
	return errpos(err.Col, "undefined curve "+strconv.QuoteRune(err.Name))
}

func (err *CurveError) Pos() int {
	return err.Col
}

// CallError is an error indicating a function call with the wrong number of
// arguments. It implements InputError.
type CallError struct {
	// Col is the position of the function name.
	Col int
	// Func is the function name that was called.
	Func string
	// Len is the number of arguments the function call tried to imply.
	Len int
}

func (err *CallError) Error() string {
	return errpos(err.Col, "cannot call "+err.Func+" with "+strconv.Itoa(err.Len)+" arguments")
}

func (err *CallError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating an empty subexpression.
type EmptyExpressionError struct {
	// Col is the position of the token next to the missing subexpression.
	Col int
	// End is the operator or function name next to the missing
	// subexpression, or the empty string if the whole input is empty.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression next to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input during lexing or parsing implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*TermError)(nil)
	_ InputError = (*CurveError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*LexError)(nil)
)
