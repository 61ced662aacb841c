package eval

import (
	"math"

	"github.com/cwbudde/go-ticore/internal/ast"
	"github.com/cwbudde/go-ticore/internal/errors"
	"github.com/cwbudde/go-ticore/internal/kernel"
	"github.com/cwbudde/go-ticore/internal/lexer"
	"github.com/cwbudde/go-ticore/internal/state"
	"github.com/cwbudde/go-ticore/internal/value"
)

func evalBinary(n *ast.Binary, st *state.State) (value.Value, error) {
	left, err := Eval(n.Left, st)
	if err != nil {
		return nil, err
	}
	right, err := Eval(n.Right, st)
	if err != nil {
		return nil, err
	}
	return binaryOp(n.Op, left, right, n.Pos())
}

// binaryOp applies the §4.5 broadcasting rules, dispatching on the
// concrete operand types before falling back to the scalar rule.
func binaryOp(op ast.BinaryOp, left, right value.Value, pos lexer.Position) (value.Value, error) {
	lList, lIsList := left.(value.List)
	rList, rIsList := right.(value.List)
	lMatrix, lIsMatrix := left.(value.Matrix)
	rMatrix, rIsMatrix := right.(value.Matrix)
	lString, lIsString := left.(value.String)
	rString, rIsString := right.(value.String)

	switch {
	case lIsList && rIsList:
		if len(lList.Elems) != len(rList.Elems) {
			return nil, errors.NewDimMismatch(posRef(pos), "lists must be equal length, got %d and %d", len(lList.Elems), len(rList.Elems))
		}
		out := make([]float64, len(lList.Elems))
		for i := range lList.Elems {
			v, err := scalarOp(op, value.Real{V: lList.Elems[i]}, value.Real{V: rList.Elems[i]}, pos)
			if err != nil {
				return nil, err
			}
			f, ok := value.AsReal(v)
			if !ok {
				return nil, errors.NewDataType(posRef(pos), "list operation must yield Real elements")
			}
			out[i] = f
		}
		return value.List{Elems: out}, nil

	case lIsList && !rIsMatrix && !rIsList && !rIsString:
		out := make([]float64, len(lList.Elems))
		for i, e := range lList.Elems {
			v, err := scalarOp(op, value.Real{V: e}, right, pos)
			if err != nil {
				return nil, err
			}
			f, ok := value.AsReal(v)
			if !ok {
				return nil, errors.NewDataType(posRef(pos), "list operation must yield Real elements")
			}
			out[i] = f
		}
		return value.List{Elems: out}, nil

	case rIsList && !lIsMatrix && !lIsList && !lIsString:
		out := make([]float64, len(rList.Elems))
		for i, e := range rList.Elems {
			v, err := scalarOp(op, left, value.Real{V: e}, pos)
			if err != nil {
				return nil, err
			}
			f, ok := value.AsReal(v)
			if !ok {
				return nil, errors.NewDataType(posRef(pos), "list operation must yield Real elements")
			}
			out[i] = f
		}
		return value.List{Elems: out}, nil

	case lIsMatrix && rIsMatrix:
		return matrixMatrixOp(op, lMatrix, rMatrix, pos)

	case lIsMatrix && !rIsMatrix:
		return matrixScalarOp(op, lMatrix, right, pos)

	case rIsMatrix && !lIsMatrix:
		if op != ast.OpMul {
			return nil, errors.NewDataType(posRef(pos), "only multiplication is defined for Real * Matrix")
		}
		s, ok := value.AsReal(left)
		if !ok {
			return nil, errors.NewDataType(posRef(pos), "scalar operand must coerce to Real")
		}
		return value.Matrix{Rows: kernel.ScalarMultiply(rMatrix.Rows, s)}, nil

	case lIsString && rIsString:
		if op != ast.OpAdd {
			return nil, errors.NewDataType(posRef(pos), "only + is defined for String + String")
		}
		return value.String{V: lString.V + rString.V}, nil

	default:
		return scalarOp(op, left, right, pos)
	}
}

func matrixMatrixOp(op ast.BinaryOp, a, b value.Matrix, pos lexer.Position) (value.Value, error) {
	switch op {
	case ast.OpAdd:
		rows, err := kernel.Add(a.Rows, b.Rows)
		if err != nil {
			return nil, errors.Wrap(errors.DimMismatch, posRef(pos), err)
		}
		return value.Matrix{Rows: rows}, nil
	case ast.OpSub:
		rows, err := kernel.Sub(a.Rows, b.Rows)
		if err != nil {
			return nil, errors.Wrap(errors.DimMismatch, posRef(pos), err)
		}
		return value.Matrix{Rows: rows}, nil
	case ast.OpMul:
		rows, err := kernel.Multiply(a.Rows, b.Rows)
		if err != nil {
			return nil, errors.Wrap(errors.DimMismatch, posRef(pos), err)
		}
		return value.Matrix{Rows: rows}, nil
	default:
		return nil, errors.NewDataType(posRef(pos), "operator not defined between two matrices")
	}
}

func matrixScalarOp(op ast.BinaryOp, m value.Matrix, scalar value.Value, pos lexer.Position) (value.Value, error) {
	s, ok := value.AsReal(scalar)
	if !ok {
		return nil, errors.NewDataType(posRef(pos), "scalar operand must coerce to Real")
	}
	switch op {
	case ast.OpMul:
		return value.Matrix{Rows: kernel.ScalarMultiply(m.Rows, s)}, nil
	case ast.OpDiv:
		if s == 0 {
			return nil, errors.NewDivideByZero(posRef(pos))
		}
		return value.Matrix{Rows: kernel.ScalarDivide(m.Rows, s)}, nil
	case ast.OpPow:
		p, ok := value.FloatToInt(s)
		if !ok || p < 0 {
			return nil, errors.NewDomain(posRef(pos), "matrix power requires a non-negative integer exponent")
		}
		if m.NumRows() != m.NumCols() {
			return nil, errors.NewInvalidDim(posRef(pos), "matrix power requires a square matrix")
		}
		rows, err := kernel.Power(m.Rows, p)
		if err != nil {
			return nil, errors.Wrap(errors.InvalidDim, posRef(pos), err)
		}
		return value.Matrix{Rows: rows}, nil
	default:
		return nil, errors.NewDataType(posRef(pos), "operator not defined between Matrix and Real")
	}
}

// scalarOp implements §4.5's scalar binary rule: arithmetic, comparisons,
// logicals, nPr/nCr, with Complex promotion when either operand is
// Complex and the operator is arithmetic.
func scalarOp(op ast.BinaryOp, left, right value.Value, pos lexer.Position) (value.Value, error) {
	if isArithmetic(op) {
		if _, lc := left.(value.Complex); lc {
			return complexOp(op, left, right, pos)
		}
		if _, rc := right.(value.Complex); rc {
			return complexOp(op, left, right, pos)
		}
	}

	switch op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpPow:
		l, lok := value.AsReal(left)
		r, rok := value.AsReal(right)
		if !lok || !rok {
			return nil, errors.NewDataType(posRef(pos), "operand does not coerce to Real")
		}
		return realArith(op, l, r, pos)

	case ast.OpNPr, ast.OpNCr:
		n, nok := value.AsInt(left)
		r, rok := value.AsInt(right)
		if !nok || !rok {
			return nil, errors.NewDataType(posRef(pos), "nPr/nCr operands must coerce to integers")
		}
		var res float64
		var err error
		if op == ast.OpNPr {
			res, err = kernel.Permutations(n, r)
		} else {
			res, err = kernel.Combinations(n, r)
		}
		if err != nil {
			return nil, errors.Wrap(errors.Domain, posRef(pos), err)
		}
		return value.Real{V: res}, nil

	case ast.OpEq, ast.OpNotEq, ast.OpLt, ast.OpGt, ast.OpLe, ast.OpGe:
		return comparisonOp(op, left, right, pos)

	case ast.OpAnd, ast.OpOr, ast.OpXor:
		l, lok := value.Truthy(left)
		r, rok := value.Truthy(right)
		if !lok || !rok {
			return nil, errors.NewDataType(posRef(pos), "logical operand must coerce to Real")
		}
		var result bool
		switch op {
		case ast.OpAnd:
			result = l && r
		case ast.OpOr:
			result = l || r
		case ast.OpXor:
			result = l != r
		}
		return value.BoolReal(result), nil
	}

	return nil, errors.NewDataType(posRef(pos), "unsupported binary operator")
}

func isArithmetic(op ast.BinaryOp) bool {
	switch op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpPow:
		return true
	}
	return false
}

func realArith(op ast.BinaryOp, l, r float64, pos lexer.Position) (value.Value, error) {
	switch op {
	case ast.OpAdd:
		return value.Real{V: l + r}, nil
	case ast.OpSub:
		return value.Real{V: l - r}, nil
	case ast.OpMul:
		return value.Real{V: l * r}, nil
	case ast.OpDiv:
		if r == 0 {
			return nil, errors.NewDivideByZero(posRef(pos))
		}
		return value.Real{V: l / r}, nil
	case ast.OpPow:
		result := math.Pow(l, r)
		if math.IsInf(result, 0) || math.IsNaN(result) {
			return nil, errors.NewOverflow(posRef(pos), "%g ^ %g is not finite", l, r)
		}
		return value.Real{V: result}, nil
	}
	return nil, errors.NewDataType(posRef(pos), "unsupported arithmetic operator")
}

func complexOp(op ast.BinaryOp, left, right value.Value, pos lexer.Position) (value.Value, error) {
	l, lok := value.AsComplex(left)
	r, rok := value.AsComplex(right)
	if !lok || !rok {
		return nil, errors.NewDataType(posRef(pos), "complex operand must coerce to Complex")
	}
	switch op {
	case ast.OpAdd:
		return value.Complex{Re: l.Re + r.Re, Im: l.Im + r.Im}, nil
	case ast.OpSub:
		return value.Complex{Re: l.Re - r.Re, Im: l.Im - r.Im}, nil
	case ast.OpMul:
		return value.Complex{Re: l.Re*r.Re - l.Im*r.Im, Im: l.Re*r.Im + l.Im*r.Re}, nil
	case ast.OpDiv:
		denom := r.Re*r.Re + r.Im*r.Im
		if denom == 0 {
			return nil, errors.NewDivideByZero(posRef(pos))
		}
		return value.Complex{
			Re: (l.Re*r.Re + l.Im*r.Im) / denom,
			Im: (l.Im*r.Re - l.Re*r.Im) / denom,
		}, nil
	case ast.OpPow:
		mag := math.Hypot(l.Re, l.Im)
		theta := math.Atan2(l.Im, l.Re)
		// Only integer and real-scalar exponents are supported; r must be
		// real-valued (Im == 0) per this core's scope.
		if r.Im != 0 {
			return nil, errors.NewDomain(posRef(pos), "complex exponents are not supported")
		}
		newMag := math.Pow(mag, r.Re)
		newTheta := theta * r.Re
		result := value.Complex{Re: newMag * math.Cos(newTheta), Im: newMag * math.Sin(newTheta)}
		if math.IsInf(result.Re, 0) || math.IsInf(result.Im, 0) || math.IsNaN(result.Re) || math.IsNaN(result.Im) {
			return nil, errors.NewOverflow(posRef(pos), "complex power overflowed")
		}
		return result, nil
	}
	return nil, errors.NewDataType(posRef(pos), "unsupported complex arithmetic operator")
}

func comparisonOp(op ast.BinaryOp, left, right value.Value, pos lexer.Position) (value.Value, error) {
	l, lok := value.AsReal(left)
	r, rok := value.AsReal(right)
	if !lok || !rok {
		return nil, errors.NewDataType(posRef(pos), "comparison operand must coerce to Real")
	}
	var result bool
	switch op {
	case ast.OpEq:
		result = l == r
	case ast.OpNotEq:
		result = l != r
	case ast.OpLt:
		result = l < r
	case ast.OpGt:
		result = l > r
	case ast.OpLe:
		result = l <= r
	case ast.OpGe:
		result = l >= r
	}
	return value.BoolReal(result), nil
}
