package eval

import (
	"strings"

	"github.com/cwbudde/go-ticore/internal/errors"
	"github.com/cwbudde/go-ticore/internal/kernel"
	"github.com/cwbudde/go-ticore/internal/lexer"
	"github.com/cwbudde/go-ticore/internal/state"
	"github.com/cwbudde/go-ticore/internal/value"
)

func dispatchListFunction(name string, args []value.Value, pos *lexer.Position, st *state.State) (value.Value, error) {
	switch name {
	case "dim":
		return fnDim(args, pos)
	case "sum":
		return fnSum(args, pos)
	case "prod":
		return fnProd(args, pos)
	case "mean":
		return fnMean(args, pos)
	case "median":
		return fnMedian(args, pos)
	case "cumsum":
		return fnCumSum(args, pos)
	case "augment":
		return fnAugment(args, pos)
	case "min":
		return fnMinMax(args, pos, false)
	case "max":
		return fnMinMax(args, pos, true)
	case "length":
		return fnLength(args, pos)
	case "sub":
		return fnSub(args, pos)
	case "instring":
		return fnInString(args, pos)
	case "det":
		return fnDet(args, pos)
	case "identity":
		return fnIdentity(args, pos)
	case "ref":
		return fnRef(args, pos)
	case "rref":
		return fnRref(args, pos)
	case "inverse":
		return fnInverse(args, pos)
	case "randint":
		return fnRandInt(args, pos, st)
	case "randnorm":
		return fnRandNorm(args, pos, st)
	case "rand":
		return fnRand(args, pos, st)
	case "randm":
		return fnRandM(args, pos, st)
	}
	return nil, errors.NewUndefined(pos, "unknown function %s", name)
}

func asListArg(v value.Value, pos *lexer.Position) (value.List, error) {
	l, ok := value.AsList(v)
	if !ok {
		return value.List{}, errors.NewDataType(pos, "expected a List argument")
	}
	return l, nil
}

func fnDim(args []value.Value, pos *lexer.Position) (value.Value, error) {
	if err := requireArgs("dim", args, 1, pos); err != nil {
		return nil, err
	}
	if m, ok := args[0].(value.Matrix); ok {
		return value.List{Elems: []float64{float64(m.NumRows()), float64(m.NumCols())}}, nil
	}
	l, err := asListArg(args[0], pos)
	if err != nil {
		return nil, err
	}
	return value.Real{V: float64(len(l.Elems))}, nil
}

func fnLength(args []value.Value, pos *lexer.Position) (value.Value, error) {
	if err := requireArgs("length", args, 1, pos); err != nil {
		return nil, err
	}
	if s, ok := args[0].(value.String); ok {
		return value.Real{V: float64(len([]rune(s.V)))}, nil
	}
	l, err := asListArg(args[0], pos)
	if err != nil {
		return nil, err
	}
	return value.Real{V: float64(len(l.Elems))}, nil
}

func fnSum(args []value.Value, pos *lexer.Position) (value.Value, error) {
	if err := requireArgs("sum", args, 1, pos); err != nil {
		return nil, err
	}
	l, err := asListArg(args[0], pos)
	if err != nil {
		return nil, err
	}
	sum := 0.0
	for _, e := range l.Elems {
		sum += e
	}
	return value.Real{V: sum}, nil
}

func fnProd(args []value.Value, pos *lexer.Position) (value.Value, error) {
	if err := requireArgs("prod", args, 1, pos); err != nil {
		return nil, err
	}
	l, err := asListArg(args[0], pos)
	if err != nil {
		return nil, err
	}
	prod := 1.0
	for _, e := range l.Elems {
		prod *= e
	}
	return value.Real{V: prod}, nil
}

func fnMean(args []value.Value, pos *lexer.Position) (value.Value, error) {
	if err := requireArgs("mean", args, 1, pos); err != nil {
		return nil, err
	}
	l, err := asListArg(args[0], pos)
	if err != nil {
		return nil, err
	}
	stats, statErr := kernel.OneVar(l.Elems)
	if statErr != nil {
		return nil, errors.Wrap(errors.Stat, pos, statErr)
	}
	return value.Real{V: stats.Mean}, nil
}

func fnMedian(args []value.Value, pos *lexer.Position) (value.Value, error) {
	if err := requireArgs("median", args, 1, pos); err != nil {
		return nil, err
	}
	l, err := asListArg(args[0], pos)
	if err != nil {
		return nil, err
	}
	stats, statErr := kernel.OneVar(l.Elems)
	if statErr != nil {
		return nil, errors.Wrap(errors.Stat, pos, statErr)
	}
	return value.Real{V: stats.Median}, nil
}

func fnCumSum(args []value.Value, pos *lexer.Position) (value.Value, error) {
	if err := requireArgs("cumSum", args, 1, pos); err != nil {
		return nil, err
	}
	l, err := asListArg(args[0], pos)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(l.Elems))
	running := 0.0
	for i, e := range l.Elems {
		running += e
		out[i] = running
	}
	return value.List{Elems: out}, nil
}

func fnAugment(args []value.Value, pos *lexer.Position) (value.Value, error) {
	if err := requireArgs("augment", args, 2, pos); err != nil {
		return nil, err
	}
	if m1, ok := args[0].(value.Matrix); ok {
		m2, ok2 := args[1].(value.Matrix)
		if !ok2 || m1.NumRows() != m2.NumRows() {
			return nil, errors.NewDimMismatch(pos, "augment requires matrices with the same row count")
		}
		rows := make([][]float64, m1.NumRows())
		for i := range rows {
			rows[i] = append(append([]float64(nil), m1.Rows[i]...), m2.Rows[i]...)
		}
		return value.Matrix{Rows: rows}, nil
	}
	l1, err := asListArg(args[0], pos)
	if err != nil {
		return nil, err
	}
	l2, err := asListArg(args[1], pos)
	if err != nil {
		return nil, err
	}
	return value.List{Elems: append(append([]float64(nil), l1.Elems...), l2.Elems...)}, nil
}

func fnMinMax(args []value.Value, pos *lexer.Position, wantMax bool) (value.Value, error) {
	pick := func(a, b float64) float64 {
		if wantMax {
			if a > b {
				return a
			}
			return b
		}
		if a < b {
			return a
		}
		return b
	}
	if len(args) == 1 {
		l, err := asListArg(args[0], pos)
		if err != nil {
			return nil, err
		}
		if len(l.Elems) == 0 {
			return nil, errors.NewStat(pos, "min/max requires a non-empty list")
		}
		best := l.Elems[0]
		for _, e := range l.Elems[1:] {
			best = pick(best, e)
		}
		return value.Real{V: best}, nil
	}
	if len(args) == 2 {
		a, aok := value.AsReal(args[0])
		b, bok := value.AsReal(args[1])
		if !aok || !bok {
			return nil, errors.NewDataType(pos, "min/max operands must coerce to Real")
		}
		return value.Real{V: pick(a, b)}, nil
	}
	return nil, errors.NewArgument(pos, "min/max expects 1 or 2 arguments, got %d", len(args))
}

func fnSub(args []value.Value, pos *lexer.Position) (value.Value, error) {
	if err := requireArgs("sub", args, 3, pos); err != nil {
		return nil, err
	}
	s, ok := value.AsString(args[0])
	if !ok {
		return nil, errors.NewDataType(pos, "sub's first argument must be a String")
	}
	start, startOk := value.AsInt(args[1])
	length, lengthOk := value.AsInt(args[2])
	if !startOk || !lengthOk {
		return nil, errors.NewDataType(pos, "sub's start/length must coerce to integers")
	}
	runes := []rune(s)
	if start < 1 || length < 0 || start-1+length > int64(len(runes)) {
		return nil, errors.NewInvalidDim(pos, "sub range out of bounds")
	}
	return value.String{V: string(runes[start-1 : start-1+length])}, nil
}

func fnInString(args []value.Value, pos *lexer.Position) (value.Value, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, errors.NewArgument(pos, "inString expects 2 or 3 arguments, got %d", len(args))
	}
	haystack, ok := value.AsString(args[0])
	if !ok {
		return nil, errors.NewDataType(pos, "inString's first argument must be a String")
	}
	needle, ok := value.AsString(args[1])
	if !ok {
		return nil, errors.NewDataType(pos, "inString's second argument must be a String")
	}
	start := int64(1)
	if len(args) == 3 {
		var startOk bool
		start, startOk = value.AsInt(args[2])
		if !startOk || start < 1 {
			return nil, errors.NewInvalidDim(pos, "inString's start must be a positive integer")
		}
	}
	runes := []rune(haystack)
	if start > int64(len(runes))+1 {
		return value.Real{V: 0}, nil
	}
	idx := strings.Index(string(runes[start-1:]), needle)
	if idx < 0 {
		return value.Real{V: 0}, nil
	}
	return value.Real{V: float64(start) + float64(len([]rune(string(runes[start-1:])[:idx])))}, nil
}

func fnDet(args []value.Value, pos *lexer.Position) (value.Value, error) {
	if err := requireArgs("det", args, 1, pos); err != nil {
		return nil, err
	}
	m, ok := args[0].(value.Matrix)
	if !ok {
		return nil, errors.NewDataType(pos, "det requires a Matrix argument")
	}
	d, err := kernel.Determinant(m.Rows)
	if err != nil {
		return nil, errors.Wrap(errors.InvalidDim, pos, err)
	}
	return value.Real{V: d}, nil
}

func fnIdentity(args []value.Value, pos *lexer.Position) (value.Value, error) {
	if err := requireArgs("identity", args, 1, pos); err != nil {
		return nil, err
	}
	n, ok := value.AsInt(args[0])
	if !ok || n < 1 {
		return nil, errors.NewDomain(pos, "identity requires a positive integer size")
	}
	return value.Matrix{Rows: kernel.Identity(int(n))}, nil
}

func fnRef(args []value.Value, pos *lexer.Position) (value.Value, error) {
	if err := requireArgs("ref", args, 1, pos); err != nil {
		return nil, err
	}
	m, ok := args[0].(value.Matrix)
	if !ok {
		return nil, errors.NewDataType(pos, "ref requires a Matrix argument")
	}
	return value.Matrix{Rows: kernel.REF(m.Rows)}, nil
}

func fnRref(args []value.Value, pos *lexer.Position) (value.Value, error) {
	if err := requireArgs("rref", args, 1, pos); err != nil {
		return nil, err
	}
	m, ok := args[0].(value.Matrix)
	if !ok {
		return nil, errors.NewDataType(pos, "rref requires a Matrix argument")
	}
	return value.Matrix{Rows: kernel.RREF(m.Rows)}, nil
}

func fnInverse(args []value.Value, pos *lexer.Position) (value.Value, error) {
	if err := requireArgs("inverse", args, 1, pos); err != nil {
		return nil, err
	}
	m, ok := args[0].(value.Matrix)
	if !ok {
		return nil, errors.NewDataType(pos, "inverse requires a Matrix argument")
	}
	rows, err := kernel.Inverse(m.Rows)
	if err != nil {
		return nil, errors.Wrap(errors.Singular, pos, err)
	}
	return value.Matrix{Rows: rows}, nil
}

func fnRandInt(args []value.Value, pos *lexer.Position, st *state.State) (value.Value, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, errors.NewArgument(pos, "randInt expects 2 or 3 arguments, got %d", len(args))
	}
	lo, lok := value.AsInt(args[0])
	hi, hok := value.AsInt(args[1])
	if !lok || !hok || hi < lo {
		return nil, errors.NewDomain(pos, "randInt requires integer bounds with low <= high")
	}
	n := int64(1)
	if len(args) == 3 {
		var nok bool
		n, nok = value.AsInt(args[2])
		if !nok || n < 1 {
			return nil, errors.NewDomain(pos, "randInt's count must be a positive integer")
		}
	}
	rng := st.RNG()
	out := make([]float64, n)
	span := hi - lo + 1
	for i := range out {
		out[i] = float64(lo + rng.Int63n(span))
	}
	if n == 1 {
		return value.Real{V: out[0]}, nil
	}
	return value.List{Elems: out}, nil
}

func fnRandNorm(args []value.Value, pos *lexer.Position, st *state.State) (value.Value, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, errors.NewArgument(pos, "randNorm expects 2 or 3 arguments, got %d", len(args))
	}
	mean, mok := value.AsReal(args[0])
	stddev, sok := value.AsReal(args[1])
	if !mok || !sok {
		return nil, errors.NewDataType(pos, "randNorm's mean/stddev must coerce to Real")
	}
	n := int64(1)
	if len(args) == 3 {
		var nok bool
		n, nok = value.AsInt(args[2])
		if !nok || n < 1 {
			return nil, errors.NewDomain(pos, "randNorm's count must be a positive integer")
		}
	}
	rng := st.RNG()
	out := make([]float64, n)
	for i := range out {
		out[i] = mean + stddev*kernel.InverseNormalCDF(rng.Float64())
	}
	if n == 1 {
		return value.Real{V: out[0]}, nil
	}
	return value.List{Elems: out}, nil
}

func fnRand(args []value.Value, pos *lexer.Position, st *state.State) (value.Value, error) {
	if len(args) > 1 {
		return nil, errors.NewArgument(pos, "rand expects 0 or 1 arguments, got %d", len(args))
	}
	n := int64(1)
	if len(args) == 1 {
		var ok bool
		n, ok = value.AsInt(args[0])
		if !ok || n < 1 {
			return nil, errors.NewDomain(pos, "rand's count must be a positive integer")
		}
	}
	rng := st.RNG()
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.Float64()
	}
	if n == 1 {
		return value.Real{V: out[0]}, nil
	}
	return value.List{Elems: out}, nil
}

func fnRandM(args []value.Value, pos *lexer.Position, st *state.State) (value.Value, error) {
	if err := requireArgs("randM", args, 2, pos); err != nil {
		return nil, err
	}
	rows, rok := value.AsInt(args[0])
	cols, cok := value.AsInt(args[1])
	if !rok || !cok || rows < 1 || cols < 1 {
		return nil, errors.NewDomain(pos, "randM requires positive integer dimensions")
	}
	rng := st.RNG()
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
		for j := range out[i] {
			out[i][j] = float64(rng.Int63n(10))
		}
	}
	return value.Matrix{Rows: out}, nil
}
