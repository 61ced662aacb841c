// Package state implements the evaluator-facing State façade (§3/§4.4/§6):
// named stores for scalars, lists, matrices, strings, function slots,
// modes, the graph window, and expression history, plus the one shared
// mutable resource (the calculator's random-number generator) and the
// cooperative cancellation flag (§5).
//
// State owns no back-reference to the evaluator (per the teacher-inspired
// design note on cyclic references): Y-slot evaluation is implemented by
// internal/eval against a *State passed in by non-owning reference, not by
// a method on State itself.
package state

import (
	"math/rand"
	"strings"
	"sync/atomic"

	"github.com/cwbudde/go-ticore/internal/errors"
	"github.com/cwbudde/go-ticore/internal/value"
	"github.com/google/uuid"
)

// AngleUnit selects how trig functions interpret/report angles (§4.5).
type AngleUnit int

const (
	Radian AngleUnit = iota
	Degree
)

// Mode bundles the calculator's global settings. Only AngleUnit affects
// evaluator semantics; NumberFormat/GraphMode/ComplexFormat are carried
// for completeness (§3) but their interpretation is a display-layer
// concern out of this core's scope (§1).
type Mode struct {
	Angle         AngleUnit
	NumberFormat  string
	GraphMode     string
	ComplexFormat string
}

// Window holds the graphing window parameters consumed by the plot
// sampler (§4.6).
type Window struct {
	XMin, XMax   float64
	YMin, YMax   float64
	XScl, YScl   float64
	PixelWidth   int
	XRes         float64
}

// Slot is one of the ten Y-register function-slot definitions.
type Slot struct {
	Text    string
	Enabled bool
}

// HistoryEntry records one evaluated expression/result pair, stamped with
// a stable ID so an external persistence collaborator (§6) can reference
// entries independent of their position in the log.
type HistoryEntry struct {
	ID     uuid.UUID
	Expr   string
	Result string
}

// State is the process-wide container described in §3. Exactly one
// evaluation may be in flight against a given State at a time (§5);
// State performs no internal locking of its own.
type State struct {
	scalars  map[string]value.Value
	lists    map[string]value.List
	matrices map[string]value.Matrix
	strings  map[string]string
	slots    [10]Slot
	ans      value.Value
	mode     Mode
	window   Window
	history  []HistoryEntry
	programs map[string]string
	rng      *rand.Rand
	cancel   atomic.Bool
}

// New constructs an empty State: no scalar, list, matrix, or string
// variable is defined; Ans reads as Real(0); angle mode defaults to
// Degree, matching the calculator's factory-reset mode screen.
func New() *State {
	return &State{
		scalars:  make(map[string]value.Value),
		lists:    make(map[string]value.List),
		matrices: make(map[string]value.Matrix),
		strings:  make(map[string]string),
		programs: make(map[string]string),
		ans:      value.Real{V: 0},
		mode:     Mode{Angle: Degree},
		window:   Window{XMin: -10, XMax: 10, YMin: -10, YMax: 10, XScl: 1, YScl: 1, PixelWidth: 94, XRes: 1},
		rng:      rand.New(rand.NewSource(1)),
	}
}

func normScalar(name string) string { return strings.ToUpper(name) }

// GetScalar returns the named variable's value, defaulting to Real(0) for
// any name that has never been written (§4.4).
func (s *State) GetScalar(name string) value.Value {
	if v, ok := s.scalars[normScalar(name)]; ok {
		return v
	}
	return value.Real{V: 0}
}

// SetScalar writes a variable; writes are total (§4.4).
func (s *State) SetScalar(name string, v value.Value) {
	s.scalars[normScalar(name)] = v
}

// GetList returns the named list, or Undefined if it has never been
// written (§4.4) — built-in names L1..L6 are valid identifiers but are not
// implicitly populated.
func (s *State) GetList(name string) (value.List, error) {
	if v, ok := s.lists[name]; ok {
		return v, nil
	}
	return value.List{}, errors.NewUndefined(nil, "list %s is undefined", name)
}

// SetList writes a list of any length (§4.4).
func (s *State) SetList(name string, v value.List) {
	s.lists[name] = v
}

// HasList reports whether name has been written.
func (s *State) HasList(name string) bool {
	_, ok := s.lists[name]
	return ok
}

// GetMatrix returns the named matrix, or Undefined if unset.
func (s *State) GetMatrix(name string) (value.Matrix, error) {
	if v, ok := s.matrices[name]; ok {
		return v, nil
	}
	return value.Matrix{}, errors.NewUndefined(nil, "matrix %s is undefined", name)
}

// SetMatrix writes a matrix as given; rectangularity is an evaluator-level
// invariant, not enforced here (§4.4).
func (s *State) SetMatrix(name string, v value.Matrix) {
	s.matrices[name] = v
}

// GetString returns the named string variable, or Undefined if unset.
func (s *State) GetString(name string) (string, error) {
	if v, ok := s.strings[name]; ok {
		return v, nil
	}
	return "", errors.NewUndefined(nil, "string variable %s is undefined", name)
}

// SetString writes a string variable.
func (s *State) SetString(name string, v string) {
	s.strings[name] = v
}

// GetSlotText returns the 0-indexed function slot's stored expression text
// and whether it is enabled for plotting; index 0 corresponds to Y0.
func (s *State) GetSlotText(index int) (string, bool) {
	if index < 0 || index > 9 {
		return "", false
	}
	return s.slots[index].Text, s.slots[index].Enabled
}

// SetSlot writes a function slot's expression text, enabling it.
func (s *State) SetSlot(index int, text string) {
	if index < 0 || index > 9 {
		return
	}
	s.slots[index] = Slot{Text: text, Enabled: true}
}

// Ans returns the last recorded result.
func (s *State) Ans() value.Value { return s.ans }

// SetAns overwrites the last-result slot; not rolled back on failure (§7).
func (s *State) SetAns(v value.Value) { s.ans = v }

// Mode returns a copy of the current mode settings.
func (s *State) Mode() Mode { return s.mode }

// SetMode replaces the mode settings wholesale.
func (s *State) SetMode(m Mode) { s.mode = m }

// Window returns a copy of the current graph window parameters.
func (s *State) Window() Window { return s.window }

// SetWindow replaces the graph window parameters wholesale.
func (s *State) SetWindow(w Window) { s.window = w }

// RecordHistory appends an expression/result pair, stamping it with a
// fresh UUID.
func (s *State) RecordHistory(expr, result string) HistoryEntry {
	entry := HistoryEntry{ID: uuid.New(), Expr: expr, Result: result}
	s.history = append(s.history, entry)
	return entry
}

// History returns the full expression/result log in recorded order.
func (s *State) History() []HistoryEntry {
	return append([]HistoryEntry(nil), s.history...)
}

// GetProgram returns a program's stored source text.
func (s *State) GetProgram(name string) (string, bool) {
	src, ok := s.programs[name]
	return src, ok
}

// SetProgram stores a program's source text under name.
func (s *State) SetProgram(name, source string) {
	s.programs[name] = source
}

// RNG returns the State's shared random source (§5: "Random-number
// generators are shared State; concurrent evaluations would race and are
// disallowed").
func (s *State) RNG() *rand.Rand { return s.rng }

// SeedRNG reseeds the random source, primarily for deterministic tests.
func (s *State) SeedRNG(seed int64) { s.rng = rand.New(rand.NewSource(seed)) }

// Cancel sets the cooperative cancellation flag (§5). Safe to call from
// outside the goroutine driving evaluation.
func (s *State) Cancel() { s.cancel.Store(true) }

// Cancelled reports whether Cancel has been called and not yet reset.
func (s *State) Cancelled() bool { return s.cancel.Load() }

// ResetCancel clears the cancellation flag, e.g. before starting a new
// program run.
func (s *State) ResetCancel() { s.cancel.Store(false) }
