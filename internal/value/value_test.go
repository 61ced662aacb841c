package value

import (
	"math"
	"testing"
)

func TestRealString(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{3, "3"},
		{3.5, "3.5"},
		{-2, "-2"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Inf"},
		{math.Inf(-1), "-Inf"},
	}
	for _, tt := range tests {
		if got := (Real{tt.v}).String(); got != tt.want {
			t.Errorf("Real{%v}.String() = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestComplexString(t *testing.T) {
	tests := []struct {
		c    Complex
		want string
	}{
		{Complex{2, 3}, "2+3i"},
		{Complex{2, -3}, "2-3i"},
		{Complex{0, 1}, "0+1i"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestAsRealCoercions(t *testing.T) {
	if f, ok := AsReal(Real{5}); !ok || f != 5 {
		t.Errorf("AsReal(Real{5}) = (%v,%v), want (5,true)", f, ok)
	}
	if f, ok := AsReal(Complex{2, 0}); !ok || f != 2 {
		t.Errorf("AsReal(Complex{2,0}) = (%v,%v), want (2,true)", f, ok)
	}
	if _, ok := AsReal(Complex{2, 1}); ok {
		t.Error("AsReal(Complex{2,1}) should fail: nonzero imaginary part")
	}
	if f, ok := AsReal(List{Elems: []float64{7}}); !ok || f != 7 {
		t.Errorf("AsReal(singleton List) = (%v,%v), want (7,true)", f, ok)
	}
	if _, ok := AsReal(List{Elems: []float64{1, 2}}); ok {
		t.Error("AsReal(multi-element List) should fail")
	}
	if _, ok := AsReal(String{"x"}); ok {
		t.Error("AsReal(String) should fail")
	}
}

func TestAsIntCoercion(t *testing.T) {
	if n, ok := AsInt(Real{4}); !ok || n != 4 {
		t.Errorf("AsInt(4) = (%v,%v), want (4,true)", n, ok)
	}
	if _, ok := AsInt(Real{4.5}); ok {
		t.Error("AsInt(4.5) should fail: not integral")
	}
	if _, ok := AsInt(Real{1e16}); ok {
		t.Error("AsInt(1e16) should fail: exceeds magnitude bound")
	}
	if _, ok := AsInt(Real{math.NaN()}); ok {
		t.Error("AsInt(NaN) should fail")
	}
}

func TestTruthy(t *testing.T) {
	if v, ok := Truthy(Real{0}); !ok || v {
		t.Errorf("Truthy(0) = (%v,%v), want (false,true)", v, ok)
	}
	if v, ok := Truthy(Real{-1}); !ok || !v {
		t.Errorf("Truthy(-1) = (%v,%v), want (true,true)", v, ok)
	}
	if _, ok := Truthy(String{"x"}); ok {
		t.Error("Truthy(String) should fail: no Real coercion")
	}
}

func TestEqualNaNIsNotEqualToItself(t *testing.T) {
	nan := Real{math.NaN()}
	if Equal(nan, nan) {
		t.Error("Equal(NaN, NaN) should be false, matching native float64 ==")
	}
}

func TestEqualAcrossVariants(t *testing.T) {
	if !Equal(Real{1}, Real{1}) {
		t.Error("Equal(Real{1}, Real{1}) should be true")
	}
	if Equal(Real{1}, String{"1"}) {
		t.Error("Equal across different variants should be false")
	}
	a := List{Elems: []float64{1, 2, 3}}
	b := List{Elems: []float64{1, 2, 3}}
	if !Equal(a, b) {
		t.Error("Equal(List, List) with matching elements should be true")
	}
}

func TestMatrixRectangularity(t *testing.T) {
	m := Matrix{Rows: [][]float64{{1, 2}, {3, 4}}}
	if !m.IsRectangular() {
		t.Error("2x2 matrix should be rectangular")
	}
	if m.NumRows() != 2 || m.NumCols() != 2 {
		t.Errorf("dims = (%d,%d), want (2,2)", m.NumRows(), m.NumCols())
	}
	ragged := Matrix{Rows: [][]float64{{1, 2}, {3}}}
	if ragged.IsRectangular() {
		t.Error("ragged matrix should not report rectangular")
	}
}

func TestMatrixCloneRowsIsIndependent(t *testing.T) {
	m := Matrix{Rows: [][]float64{{1, 2}}}
	clone := m.CloneRows()
	clone[0][0] = 99
	if m.Rows[0][0] != 1 {
		t.Error("CloneRows should not alias the original row slices")
	}
}

func TestBoolReal(t *testing.T) {
	if BoolReal(true) != (Real{1}) {
		t.Error("BoolReal(true) should be Real{1}")
	}
	if BoolReal(false) != (Real{0}) {
		t.Error("BoolReal(false) should be Real{0}")
	}
}
