package symbolic

import (
	"errors"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Error categories. Every error returned by this package matches exactly one
// of these with errors.Is.
var (
	// ErrLex matches invalid characters, invalid numbers, and unbalanced
	// brackets.
	ErrLex = errors.New("lexical error")
	// ErrParse matches malformed token sequences and function calls with the
	// wrong number of arguments.
	ErrParse = errors.New("parse error")
	// ErrUndefined matches arithmetic with no defined result, like division
	// by zero or ∞-∞.
	ErrUndefined = errors.New("arithmetically undefined")
	// ErrUnsupported matches operations with no rule for their operands, like
	// adding vectors of different lengths.
	ErrUnsupported = errors.New("unsupported operation")
	// ErrNotANumber matches requests for numeric structure that an
	// expression does not have.
	ErrNotANumber = errors.New("not a number")
)

// InputError is an error with position information. Every error resulting from
// invalid input text implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

// localizer is implemented by errors with messages in the catalog.
type localizer interface {
	localize(p *message.Printer) string
}

var english = message.NewPrinter(language.English)

// Localize renders err in the language tag. Errors not from this package, or
// languages without messages, fall back to English.
func Localize(err error, tag language.Tag) string {
	var l localizer
	if !errors.As(err, &l) {
		return err.Error()
	}
	return l.localize(message.NewPrinter(tag))
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Kind is the type of token the lexer was scanning. This may be "number",
	// "identifier", or the empty string (if a token kind hadn't been decided).
	Kind string
	// Col is the position of the invalid rune.
	Col int
}

func (err *LexError) localize(p *message.Printer) string {
	if err.Kind == "" {
		return p.Sprintf(msgLexToken, err.Col, err.Text)
	}
	return p.Sprintf(msgLexKind, err.Col, err.Kind, err.Text)
}

func (err *LexError) Error() string { return err.localize(english) }
func (err *LexError) Pos() int { return err.Col }
func (err *LexError) Is(target error) bool { return target == ErrLex }

// BracketError is an error indicating unbalanced or mismatched brackets in the
// input. It implements InputError.
type BracketError struct {
	// Col is the position of the offending bracket, or of the end of input
	// for brackets never closed.
	Col int
	// Left is the opening bracket.
	Left string
	// Right is the mismatched closing bracket.
	Right string
}

func (err *BracketError) localize(p *message.Printer) string {
	switch {
	case err.Left == "":
		return p.Sprintf(msgBracketClose, err.Col, err.Right)
	case err.Right == "":
		return p.Sprintf(msgBracketOpen, err.Col, err.Left)
	default:
		return p.Sprintf(msgBracketMismatch, err.Col, err.Left, err.Right)
	}
}

func (err *BracketError) Error() string { return err.localize(english) }
func (err *BracketError) Pos() int { return err.Col }
func (err *BracketError) Is(target error) bool { return target == ErrLex }

// OperatorError is an error indicating an operator token where it cannot
// appear. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the token that was not understood.
	Operator string
	// Unary is whether the parser expected a unary operator at the time.
	Unary bool
}

func (err *OperatorError) localize(p *message.Printer) string {
	if err.Unary {
		return p.Sprintf(msgOperatorUnary, err.Col, err.Operator)
	}
	return p.Sprintf(msgOperatorBinary, err.Col, err.Operator)
}

func (err *OperatorError) Error() string { return err.localize(english) }
func (err *OperatorError) Pos() int { return err.Col }
func (err *OperatorError) Is(target error) bool { return target == ErrParse }

// CallError is an error indicating a function call with the wrong number of
// arguments. It implements InputError.
type CallError struct {
	// Col is the position of the function name.
	Col int
	// Func is the function name that was called.
	Func string
	// Len is the number of arguments in the call.
	Len int
}

func (err *CallError) localize(p *message.Printer) string {
	return p.Sprintf(msgCall, err.Col, err.Func, err.Len)
}

func (err *CallError) Error() string { return err.localize(english) }
func (err *CallError) Pos() int { return err.Col }
func (err *CallError) Is(target error) bool { return target == ErrParse }

// EmptyExpressionError is an error indicating an empty subexpression.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression.
	End string
}

func (err *EmptyExpressionError) localize(p *message.Printer) string {
	if err.End == "" {
		return p.Sprintf(msgEmptyEnd, err.Col)
	}
	return p.Sprintf(msgEmpty, err.Col, strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Error() string { return err.localize(english) }
func (err *EmptyExpressionError) Pos() int { return err.Col }
func (err *EmptyExpressionError) Is(target error) bool { return target == ErrParse }

// MalformedError is an error indicating two juxtaposed terms while implicit
// multiplication is disabled. It implements InputError.
type MalformedError struct {
	// Col is the position of the second term.
	Col int
	// Text is the second term.
	Text string
}

func (err *MalformedError) localize(p *message.Printer) string {
	return p.Sprintf(msgMalformed, err.Col, err.Text)
}

func (err *MalformedError) Error() string { return err.localize(english) }
func (err *MalformedError) Pos() int { return err.Col }
func (err *MalformedError) Is(target error) bool { return target == ErrParse }

// UndefinedError is an error indicating arithmetic with no defined result.
type UndefinedError struct {
	// Op is the operation, e.g. "/" or "^".
	Op string
	// Expr describes the undefined form, e.g. "0*Infinity".
	Expr string
	// Err is the underlying cause, if any.
	Err error
}

func (err *UndefinedError) localize(p *message.Printer) string {
	return p.Sprintf(msgUndefined, err.Op, err.Expr)
}

func (err *UndefinedError) Error() string { return err.localize(english) }
func (err *UndefinedError) Unwrap() error { return err.Err }
func (err *UndefinedError) Is(target error) bool { return target == ErrUndefined }

// UnsupportedError is an error indicating operands for which an operation has
// no rule.
type UnsupportedError struct {
	// Op is the operation.
	Op string
	// Reason explains what is missing.
	Reason string
}

func (err *UnsupportedError) localize(p *message.Printer) string {
	return p.Sprintf(msgUnsupported, err.Op, err.Reason)
}

func (err *UnsupportedError) Error() string { return err.localize(english) }
func (err *UnsupportedError) Is(target error) bool { return target == ErrUnsupported }

// dimensionMismatch creates the error for element-wise operations on
// value-sets of different lengths.
func dimensionMismatch(op string, n, m int) error {
	return &UnsupportedError{Op: op, Reason: "dimension mismatch: " + strconv.Itoa(n) + " and " + strconv.Itoa(m) + " elements"}
}

// NotANumberError is an error indicating that an expression lacks the numeric
// structure requested of it.
type NotANumberError struct {
	// Expr is the text of the offending expression.
	Expr string
	// Want describes the required structure.
	Want string
}

func (err *NotANumberError) localize(p *message.Printer) string {
	return p.Sprintf(msgNotANumber, err.Expr, err.Want)
}

func (err *NotANumberError) Error() string { return err.localize(english) }
func (err *NotANumberError) Is(target error) bool { return target == ErrNotANumber }

// NameError is an error from numeric evaluation of an expression with a
// variable that has no value.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) localize(p *message.Printer) string {
	return p.Sprintf(msgName, strconv.Quote(err.Name))
}

func (err *NameError) Error() string { return err.localize(english) }
func (err *NameError) Is(target error) bool { return target == ErrNotANumber }

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*MalformedError)(nil)
)
