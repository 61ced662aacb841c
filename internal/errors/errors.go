// Package errors implements the §7 error taxonomy as a single error type
// carrying a symbolic Kind, modeled directly on the teacher's
// internal/interp/errors.InterpreterError: one struct, one constructor per
// kind, Unwrap support for %w chains.
package errors

import (
	"fmt"

	"github.com/cwbudde/go-ticore/internal/lexer"
)

// Kind is one of the closed set of error conditions named in §7. Callers
// branch on Kind, not on message text.
type Kind string

const (
	Syntax        Kind = "Syntax"
	DivideByZero  Kind = "DivideByZero"
	Overflow      Kind = "Overflow"
	Domain        Kind = "Domain"
	DataType      Kind = "DataType"
	Argument      Kind = "Argument"
	DimMismatch   Kind = "DimMismatch"
	Singular      Kind = "Singular"
	Undefined     Kind = "Undefined"
	InvalidDim    Kind = "InvalidDim"
	Stat          Kind = "Stat"
	NonReal       Kind = "NonReal"
	NoSignChange  Kind = "NoSignChange"
	LabelNotFound Kind = "LabelNotFound"
	Break         Kind = "Break"
	Iterations    Kind = "Iterations"
)

// CalcError is the one error type surfaced by every core package. It is
// never caught inside the core (§7): it propagates to the caller.
type CalcError struct {
	Kind    Kind
	Message string
	Pos     *lexer.Position
	Label   string // set only for LabelNotFound
	wrapped error
}

func (e *CalcError) Error() string {
	if e.Pos != nil {
		return fmt.Sprintf("%s error at %d:%d: %s", e.Kind, e.Pos.Line, e.Pos.Column, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *CalcError) Unwrap() error { return e.wrapped }

// Is reports whether err is a *CalcError of the given Kind, so callers can
// write errors.Is style checks without reaching into the struct.
func Is(err error, kind Kind) bool {
	ce, ok := err.(*CalcError)
	return ok && ce.Kind == kind
}

func newf(kind Kind, pos *lexer.Position, format string, args ...any) *CalcError {
	return &CalcError{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}

func New(kind Kind, pos *lexer.Position, message string) *CalcError {
	return &CalcError{Kind: kind, Message: message, Pos: pos}
}

func NewSyntax(pos *lexer.Position, format string, args ...any) *CalcError {
	return newf(Syntax, pos, format, args...)
}

func NewDivideByZero(pos *lexer.Position) *CalcError {
	return newf(DivideByZero, pos, "division by zero")
}

func NewOverflow(pos *lexer.Position, format string, args ...any) *CalcError {
	return newf(Overflow, pos, format, args...)
}

func NewDomain(pos *lexer.Position, format string, args ...any) *CalcError {
	return newf(Domain, pos, format, args...)
}

func NewDataType(pos *lexer.Position, format string, args ...any) *CalcError {
	return newf(DataType, pos, format, args...)
}

func NewArgument(pos *lexer.Position, format string, args ...any) *CalcError {
	return newf(Argument, pos, format, args...)
}

func NewDimMismatch(pos *lexer.Position, format string, args ...any) *CalcError {
	return newf(DimMismatch, pos, format, args...)
}

func NewSingular(pos *lexer.Position, format string, args ...any) *CalcError {
	return newf(Singular, pos, format, args...)
}

func NewUndefined(pos *lexer.Position, format string, args ...any) *CalcError {
	return newf(Undefined, pos, format, args...)
}

func NewInvalidDim(pos *lexer.Position, format string, args ...any) *CalcError {
	return newf(InvalidDim, pos, format, args...)
}

func NewStat(pos *lexer.Position, format string, args ...any) *CalcError {
	return newf(Stat, pos, format, args...)
}

func NewNonReal(pos *lexer.Position, format string, args ...any) *CalcError {
	return newf(NonReal, pos, format, args...)
}

func NewNoSignChange(pos *lexer.Position) *CalcError {
	return newf(NoSignChange, pos, "no sign change over interval")
}

func NewLabelNotFound(label string) *CalcError {
	return &CalcError{Kind: LabelNotFound, Message: fmt.Sprintf("label not found: %s", label), Label: label}
}

func NewBreak() *CalcError {
	return &CalcError{Kind: Break, Message: "cancelled"}
}

func NewIterations(pos *lexer.Position, format string, args ...any) *CalcError {
	return newf(Iterations, pos, format, args...)
}

// Wrap attaches Kind/Message context to an existing error while preserving
// it for Unwrap.
func Wrap(kind Kind, pos *lexer.Position, err error) *CalcError {
	return &CalcError{Kind: kind, Message: err.Error(), Pos: pos, wrapped: err}
}
