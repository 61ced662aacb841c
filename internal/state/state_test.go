package state

import (
	"testing"

	"github.com/cwbudde/go-ticore/internal/value"
)

func TestNewStateDefaults(t *testing.T) {
	st := New()
	if v, ok := value.AsReal(st.Ans()); !ok || v != 0 {
		t.Errorf("Ans() = %v, want Real(0)", st.Ans())
	}
	if got := st.GetScalar("X"); !value.Equal(got, value.Real{V: 0}) {
		t.Errorf("GetScalar(unset) = %v, want Real(0)", got)
	}
}

func TestScalarNameIsCaseInsensitive(t *testing.T) {
	st := New()
	st.SetScalar("x", value.Real{V: 7})
	if got := st.GetScalar("X"); !value.Equal(got, value.Real{V: 7}) {
		t.Errorf("GetScalar(\"X\") after SetScalar(\"x\",7) = %v, want Real(7)", got)
	}
}

func TestListUndefinedReturnsError(t *testing.T) {
	st := New()
	if _, err := st.GetList("L1"); err == nil {
		t.Error("GetList on an unset list should return an error")
	}
	if st.HasList("L1") {
		t.Error("HasList should be false before any SetList")
	}
	st.SetList("L1", value.List{Elems: []float64{1, 2, 3}})
	if !st.HasList("L1") {
		t.Error("HasList should be true after SetList")
	}
	l, err := st.GetList("L1")
	if err != nil {
		t.Fatalf("GetList returned error after SetList: %v", err)
	}
	if len(l.Elems) != 3 {
		t.Errorf("len(Elems) = %d, want 3", len(l.Elems))
	}
}

func TestMatrixUndefinedReturnsError(t *testing.T) {
	st := New()
	if _, err := st.GetMatrix("A"); err == nil {
		t.Error("GetMatrix on an unset matrix should return an error")
	}
	m := value.Matrix{Rows: [][]float64{{1, 2}, {3, 4}}}
	st.SetMatrix("A", m)
	got, err := st.GetMatrix("A")
	if err != nil {
		t.Fatalf("GetMatrix returned error after SetMatrix: %v", err)
	}
	if !got.IsRectangular() {
		t.Error("stored matrix lost its rectangularity")
	}
}

func TestStringVariableRoundTrip(t *testing.T) {
	st := New()
	if _, err := st.GetString("Str1"); err == nil {
		t.Error("GetString on an unset string variable should return an error")
	}
	st.SetString("Str1", "hello")
	got, err := st.GetString("Str1")
	if err != nil || got != "hello" {
		t.Errorf("GetString = (%q,%v), want (hello,nil)", got, err)
	}
}

func TestFunctionSlotRoundTrip(t *testing.T) {
	st := New()
	if text, enabled := st.GetSlotText(0); text != "" || enabled {
		t.Errorf("GetSlotText(0) before any write = (%q,%v), want (\"\",false)", text, enabled)
	}
	st.SetSlot(0, "X^2")
	text, enabled := st.GetSlotText(0)
	if text != "X^2" || !enabled {
		t.Errorf("GetSlotText(0) = (%q,%v), want (X^2,true)", text, enabled)
	}
}

func TestFunctionSlotOutOfRangeIsIgnored(t *testing.T) {
	st := New()
	st.SetSlot(10, "X")
	if text, enabled := st.GetSlotText(10); text != "" || enabled {
		t.Errorf("GetSlotText(10) out of range = (%q,%v), want (\"\",false)", text, enabled)
	}
}

func TestHistoryRecordsInOrderWithStableIDs(t *testing.T) {
	st := New()
	e1 := st.RecordHistory("1+1", "2")
	e2 := st.RecordHistory("2+2", "4")
	hist := st.History()
	if len(hist) != 2 {
		t.Fatalf("len(History()) = %d, want 2", len(hist))
	}
	if hist[0].ID != e1.ID || hist[1].ID != e2.ID {
		t.Error("History() entries do not preserve recorded IDs in order")
	}
	if hist[0].Expr != "1+1" || hist[0].Result != "2" {
		t.Errorf("unexpected first entry: %+v", hist[0])
	}
}

func TestHistoryReturnsACopy(t *testing.T) {
	st := New()
	st.RecordHistory("1", "1")
	hist := st.History()
	hist[0].Expr = "mutated"
	if st.History()[0].Expr != "1" {
		t.Error("History() should return a defensive copy, not an alias of the internal log")
	}
}

func TestProgramStorageRoundTrip(t *testing.T) {
	st := New()
	if _, ok := st.GetProgram("MISSING"); ok {
		t.Error("GetProgram on an unset name should report ok=false")
	}
	st.SetProgram("DEMO", "Disp 1")
	src, ok := st.GetProgram("DEMO")
	if !ok || src != "Disp 1" {
		t.Errorf("GetProgram(DEMO) = (%q,%v), want (\"Disp 1\",true)", src, ok)
	}
}

func TestCancelCooperativeFlag(t *testing.T) {
	st := New()
	if st.Cancelled() {
		t.Error("a fresh State should not be Cancelled")
	}
	st.Cancel()
	if !st.Cancelled() {
		t.Error("Cancelled() should be true after Cancel()")
	}
	st.ResetCancel()
	if st.Cancelled() {
		t.Error("Cancelled() should be false after ResetCancel()")
	}
}

func TestSeedRNGIsDeterministic(t *testing.T) {
	st := New()
	st.SeedRNG(42)
	a := st.RNG().Float64()
	st.SeedRNG(42)
	b := st.RNG().Float64()
	if a != b {
		t.Errorf("two RNGs seeded identically diverged: %v != %v", a, b)
	}
}

func TestWindowAndModeRoundTrip(t *testing.T) {
	st := New()
	w := st.Window()
	w.XMin, w.XMax = -5, 5
	st.SetWindow(w)
	if got := st.Window(); got.XMin != -5 || got.XMax != 5 {
		t.Errorf("Window() after SetWindow = %+v", got)
	}

	m := st.Mode()
	m.Angle = Radian
	st.SetMode(m)
	if st.Mode().Angle != Radian {
		t.Error("SetMode should change the angle unit")
	}
}
