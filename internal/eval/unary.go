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

func evalUnaryPrefix(n *ast.UnaryPrefix, st *state.State) (value.Value, error) {
	operand, err := Eval(n.Operand, st)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case ast.OpNegate:
		return negate(operand, posRef(n.Pos()))
	case ast.OpNot:
		b, ok := value.Truthy(operand)
		if !ok {
			return nil, errors.NewDataType(posRef(n.Pos()), "not requires a Real-coercible operand")
		}
		return value.BoolReal(!b), nil
	}
	return nil, errors.NewDataType(posRef(n.Pos()), "unsupported unary prefix operator")
}

func negate(v value.Value, pos *lexer.Position) (value.Value, error) {
	switch t := v.(type) {
	case value.Real:
		return value.Real{V: -t.V}, nil
	case value.Complex:
		return value.Complex{Re: -t.Re, Im: -t.Im}, nil
	case value.List:
		out := make([]float64, len(t.Elems))
		for i, e := range t.Elems {
			out[i] = -e
		}
		return value.List{Elems: out}, nil
	case value.Matrix:
		return value.Matrix{Rows: kernel.ScalarMultiply(t.Rows, -1)}, nil
	}
	return nil, errors.NewDataType(pos, "negation is not defined for %s", v.Kind())
}

func evalUnaryPostfix(n *ast.UnaryPostfix, st *state.State) (value.Value, error) {
	operand, err := Eval(n.Operand, st)
	if err != nil {
		return nil, err
	}
	pos := posRef(n.Pos())

	if n.Op == ast.OpFactorial {
		return applyPointwise(operand, pos, func(x float64) (float64, error) {
			i, ok := value.FloatToInt(x)
			if !ok {
				return 0, errors.NewDomain(pos, "factorial requires an integer operand")
			}
			return kernel.Factorial(i)
		})
	}

	if n.Op == ast.OpInverse {
		if m, ok := operand.(value.Matrix); ok {
			rows, err := kernel.Inverse(m.Rows)
			if err != nil {
				return nil, errors.Wrap(errors.Singular, pos, err)
			}
			return value.Matrix{Rows: rows}, nil
		}
	}

	return applyPointwise(operand, pos, func(x float64) (float64, error) {
		switch n.Op {
		case ast.OpSquare:
			return x * x, nil
		case ast.OpCube:
			return x * x * x, nil
		case ast.OpInverse:
			if x == 0 {
				return 0, errors.NewDivideByZero(pos)
			}
			return 1 / x, nil
		case ast.OpDegToRad:
			return x * math.Pi / 180, nil
		case ast.OpPercent:
			return x / 100, nil
		}
		return 0, errors.NewDataType(pos, "unsupported postfix operator")
	})
}

// applyPointwise applies f to a Real directly or elementwise over a List,
// per §4.5 ("other postfix operators ... broadcast over Lists").
func applyPointwise(v value.Value, pos *lexer.Position, f func(float64) (float64, error)) (value.Value, error) {
	switch t := v.(type) {
	case value.Real:
		r, err := f(t.V)
		if err != nil {
			return nil, err
		}
		return value.Real{V: r}, nil
	case value.List:
		out := make([]float64, len(t.Elems))
		for i, e := range t.Elems {
			r, err := f(e)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return value.List{Elems: out}, nil
	}
	return nil, errors.NewDataType(pos, "operator requires a Real or List operand")
}
