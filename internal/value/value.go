// Package value implements the universal tagged Value (§3/§4.1): an
// interface with one concrete struct per variant, following the teacher's
// internal/interp.Value pattern (IntegerValue/FloatValue/StringValue/...)
// rather than a single struct with a discriminant field, since Go's
// interfaces give exhaustive-enough matching via type switches without
// the boilerplate of a manual tag enum.
package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is the common interface satisfied by every runtime value variant.
type Value interface {
	// Kind returns the variant name, used in error messages and tests.
	Kind() string
	// String renders the value the way a calculator would echo it.
	String() string
}

// Real wraps a single double; it may hold a non-finite payload (Inf/NaN),
// which propagates through arithmetic but fails AsInt (§3).
type Real struct{ V float64 }

func (r Real) Kind() string { return "Real" }
func (r Real) String() string {
	if math.IsNaN(r.V) {
		return "NaN"
	}
	if math.IsInf(r.V, 1) {
		return "Inf"
	}
	if math.IsInf(r.V, -1) {
		return "-Inf"
	}
	return strconv.FormatFloat(r.V, 'g', -1, 64)
}

// Complex wraps a real/imaginary double pair.
type Complex struct{ Re, Im float64 }

func (c Complex) Kind() string { return "Complex" }
func (c Complex) String() string {
	sign := "+"
	im := c.Im
	if im < 0 {
		sign = "-"
		im = -im
	}
	return fmt.Sprintf("%s%s%si", strconv.FormatFloat(c.Re, 'g', -1, 64), sign, strconv.FormatFloat(im, 'g', -1, 64))
}

// List is a finite ordered sequence of doubles, 1-indexed externally; it
// may be empty.
type List struct{ Elems []float64 }

func (l List) Kind() string { return "List" }
func (l List) String() string {
	parts := make([]string, len(l.Elems))
	for i, e := range l.Elems {
		parts[i] = Real{e}.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ComplexList is an ordered sequence of complex values.
type ComplexList struct{ Elems []Complex }

func (l ComplexList) Kind() string { return "ComplexList" }
func (l ComplexList) String() string {
	parts := make([]string, len(l.Elems))
	for i, e := range l.Elems {
		parts[i] = e.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Matrix is a rectangular, row-major, 1-indexed matrix: a non-empty
// sequence of rows, each row the same non-empty length.
type Matrix struct{ Rows [][]float64 }

func (m Matrix) Kind() string { return "Matrix" }

func (m Matrix) NumRows() int { return len(m.Rows) }
func (m Matrix) NumCols() int {
	if len(m.Rows) == 0 {
		return 0
	}
	return len(m.Rows[0])
}

// IsRectangular reports whether every row has the same, non-zero length.
// Matrix values are expected to already satisfy this invariant; callers
// that build a Matrix from evaluated rows must check it themselves (§4.5
// MatrixLiteral evaluation fails DimMismatch otherwise).
func (m Matrix) IsRectangular() bool {
	if len(m.Rows) == 0 {
		return false
	}
	n := len(m.Rows[0])
	if n == 0 {
		return false
	}
	for _, row := range m.Rows {
		if len(row) != n {
			return false
		}
	}
	return true
}

func (m Matrix) String() string {
	rows := make([]string, len(m.Rows))
	for i, row := range m.Rows {
		parts := make([]string, len(row))
		for j, e := range row {
			parts[j] = Real{e}.String()
		}
		rows[i] = "[" + strings.Join(parts, ", ") + "]"
	}
	return "[" + strings.Join(rows, "") + "]"
}

// CloneRows returns a deep copy of the matrix's row data, for kernels that
// mutate in place (Gauss elimination etc.) without aliasing the caller's
// matrix.
func (m Matrix) CloneRows() [][]float64 {
	out := make([][]float64, len(m.Rows))
	for i, row := range m.Rows {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

// String is the calculator's text/string value.
type String struct{ V string }

func (s String) Kind() string   { return "String" }
func (s String) String() string { return s.V }

// Coercions (§4.1). Each returns ok=false rather than erroring; callers
// that need a CalcError on failure construct one from the Kind.

// AsReal coerces a value to Real: Real passes through, Complex succeeds
// iff |imag| < 1e-12, List succeeds iff it holds exactly one element.
func AsReal(v Value) (float64, bool) {
	switch t := v.(type) {
	case Real:
		return t.V, true
	case Complex:
		if math.Abs(t.Im) < 1e-12 {
			return t.Re, true
		}
		return 0, false
	case List:
		if len(t.Elems) == 1 {
			return t.Elems[0], true
		}
		return 0, false
	}
	return 0, false
}

// AsComplex coerces Real (imag=0) or Complex to a Complex pair.
func AsComplex(v Value) (Complex, bool) {
	switch t := v.(type) {
	case Real:
		return Complex{Re: t.V}, true
	case Complex:
		return t, true
	}
	return Complex{}, false
}

// AsList coerces Real (singleton) or List to a List.
func AsList(v Value) (List, bool) {
	switch t := v.(type) {
	case Real:
		return List{Elems: []float64{t.V}}, true
	case List:
		return t, true
	}
	return List{}, false
}

// AsMatrix coerces only Matrix.
func AsMatrix(v Value) (Matrix, bool) {
	m, ok := v.(Matrix)
	return m, ok
}

// AsString coerces only String.
func AsString(v Value) (string, bool) {
	s, ok := v.(String)
	if !ok {
		return "", false
	}
	return s.V, true
}

// AsInt coerces a value (via AsReal) to an int iff the double is finite,
// integral, and |v| < 1e15 (§3).
func AsInt(v Value) (int64, bool) {
	f, ok := AsReal(v)
	if !ok {
		return 0, false
	}
	return FloatToInt(f)
}

// FloatToInt applies the Real->Int coercion rule directly to a float64.
func FloatToInt(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f != math.Trunc(f) {
		return 0, false
	}
	if math.Abs(f) >= 1e15 {
		return 0, false
	}
	return int64(f), true
}

// Truthy treats any non-zero Real (after AsReal coercion) as true, per the
// §4.5 logical-operator rule.
func Truthy(v Value) (bool, bool) {
	f, ok := AsReal(v)
	if !ok {
		return false, false
	}
	return f != 0, true
}

// Equal is structural equality. NaN does NOT equal itself, matching Go's
// native float64 `==` (documented choice, §4.1 leaves this to the
// implementer); tests that need NaN-aware comparison use math.IsNaN
// directly instead of Equal.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Real:
		bv, ok := b.(Real)
		return ok && av.V == bv.V
	case Complex:
		bv, ok := b.(Complex)
		return ok && av.Re == bv.Re && av.Im == bv.Im
	case List:
		bv, ok := b.(List)
		if !ok || len(av.Elems) != len(bv.Elems) {
			return false
		}
		for i := range av.Elems {
			if av.Elems[i] != bv.Elems[i] {
				return false
			}
		}
		return true
	case ComplexList:
		bv, ok := b.(ComplexList)
		if !ok || len(av.Elems) != len(bv.Elems) {
			return false
		}
		for i := range av.Elems {
			if av.Elems[i] != bv.Elems[i] {
				return false
			}
		}
		return true
	case Matrix:
		bv, ok := b.(Matrix)
		if !ok || len(av.Rows) != len(bv.Rows) {
			return false
		}
		for i := range av.Rows {
			if len(av.Rows[i]) != len(bv.Rows[i]) {
				return false
			}
			for j := range av.Rows[i] {
				if av.Rows[i][j] != bv.Rows[i][j] {
					return false
				}
			}
		}
		return true
	case String:
		bv, ok := b.(String)
		return ok && av.V == bv.V
	}
	return false
}

// BoolReal converts a Go bool into the Real(1)/Real(0) convention used for
// comparison and logical-operator results (§4.5).
func BoolReal(b bool) Real {
	if b {
		return Real{1}
	}
	return Real{0}
}
