package eval

import (
	"github.com/cwbudde/go-ticore/internal/errors"
	"github.com/cwbudde/go-ticore/internal/parser"
	"github.com/cwbudde/go-ticore/internal/state"
	"github.com/cwbudde/go-ticore/internal/value"
)

// EvaluateSlot implements §4.5.1: Y_i(x). It temporarily binds Variable
// X to Real(x), parses and evaluates the slot's stored expression text,
// and restores the prior X binding on every exit path. State carries no
// back-reference to the evaluator (§9's design note on cyclic
// references), so this lives in internal/eval and takes *state.State by
// reference rather than being a State method.
func EvaluateSlot(st *state.State, index int, x float64) (value.Value, error) {
	text, enabled := st.GetSlotText(index)
	if !enabled || text == "" {
		return nil, errors.NewUndefined(nil, "function slot Y%d is undefined", index)
	}

	prevX := st.GetScalar("X")
	st.SetScalar("X", value.Real{V: x})
	defer st.SetScalar("X", prevX)

	node, err := parser.Parse(text)
	if err != nil {
		return nil, err
	}
	return Eval(node, st)
}

// EvaluateSeq implements the seq(expr, var, start, end, step) supplemented
// feature (SPEC_FULL.md SUPPLEMENTED FEATURES): parse exprText once, then
// re-evaluate it once per step with var bound in State, restoring the
// prior binding on exit, rather than the source's under-implemented bare
// arithmetic progression.
func EvaluateSeq(st *state.State, exprText, varName string, start, end, step float64) (value.Value, error) {
	if step == 0 {
		return nil, errors.NewArgument(nil, "seq requires a non-zero step")
	}
	node, err := parser.Parse(exprText)
	if err != nil {
		return nil, err
	}

	prev := st.GetScalar(varName)
	defer st.SetScalar(varName, prev)

	var out []float64
	ascending := step > 0
	for v := start; (ascending && v <= end) || (!ascending && v >= end); v += step {
		st.SetScalar(varName, value.Real{V: v})
		result, err := Eval(node, st)
		if err != nil {
			return nil, err
		}
		f, ok := value.AsReal(result)
		if !ok {
			return nil, errors.NewDataType(nil, "seq expression must evaluate to Real")
		}
		out = append(out, f)
	}
	return value.List{Elems: out}, nil
}
