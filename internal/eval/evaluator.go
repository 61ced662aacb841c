// Package eval implements the §4.5 evaluator: AST -> Value, the
// broadcasting rules over scalars/lists/matrices, the store protocol,
// element access, and builtin function dispatch. Modeled on the
// teacher's internal/interp.Interpreter visitor-style eval(node, env)
// dispatch, generalized from a tree-walking script interpreter to a
// single-expression evaluator over the calculator's tagged Value.
package eval

import (
	"math"

	"github.com/cwbudde/go-ticore/internal/ast"
	"github.com/cwbudde/go-ticore/internal/errors"
	"github.com/cwbudde/go-ticore/internal/lexer"
	"github.com/cwbudde/go-ticore/internal/state"
	"github.com/cwbudde/go-ticore/internal/value"
)

// Eval evaluates an AST node against st, dispatching by concrete node
// type the way the teacher's interpreter dispatches by statement/expr
// kind.
func Eval(node ast.Node, st *state.State) (value.Value, error) {
	switch n := node.(type) {
	case *ast.Number:
		return value.Real{V: n.Value}, nil

	case *ast.StringLit:
		return value.String{V: n.Value}, nil

	case *ast.Constant:
		return evalConstant(n, st)

	case *ast.Variable:
		return st.GetScalar(n.Name), nil

	case *ast.ListVar:
		v, err := st.GetList(n.Name)
		if err != nil {
			return nil, err
		}
		return v, nil

	case *ast.MatrixVar:
		v, err := st.GetMatrix(n.Name)
		if err != nil {
			return nil, err
		}
		return v, nil

	case *ast.StringVar:
		s, err := st.GetString(stringVarName(n.Index))
		if err != nil {
			return nil, err
		}
		return value.String{V: s}, nil

	case *ast.FunctionSlot:
		text, ok := st.GetSlotText(n.Index)
		if !ok || text == "" {
			return nil, errors.NewUndefined(&n.Token.Pos, "function slot Y%d is undefined", n.Index)
		}
		return value.String{V: text}, nil

	case *ast.Binary:
		return evalBinary(n, st)

	case *ast.UnaryPrefix:
		return evalUnaryPrefix(n, st)

	case *ast.UnaryPostfix:
		return evalUnaryPostfix(n, st)

	case *ast.FunctionCall:
		return evalFunctionCall(n, st)

	case *ast.ListLiteral:
		return evalListLiteral(n, st)

	case *ast.MatrixLiteral:
		return evalMatrixLiteral(n, st)

	case *ast.ElementAccess:
		return evalElementAccess(n, st)

	case *ast.Store:
		return evalStore(n, st)

	case *ast.ImplicitMul:
		left, err := Eval(n.Left, st)
		if err != nil {
			return nil, err
		}
		right, err := Eval(n.Right, st)
		if err != nil {
			return nil, err
		}
		return binaryOp(ast.OpMul, left, right, n.Pos())
	}

	return nil, errors.NewSyntax(nil, "unevaluable node %T", node)
}

func evalConstant(n *ast.Constant, st *state.State) (value.Value, error) {
	switch n.Kind {
	case ast.ConstPi:
		return value.Real{V: math.Pi}, nil
	case ast.ConstEulerE:
		return value.Real{V: math.E}, nil
	case ast.ConstImaginaryI:
		return value.Complex{Re: 0, Im: 1}, nil
	default: // ConstAns
		return st.Ans(), nil
	}
}

// stringVarName maps a 0-9 string-variable slot index to its State key.
func stringVarName(index int) string {
	digits := "0123456789"
	if index < 0 || index > 9 {
		return "Str?"
	}
	return "Str" + digits[index:index+1]
}

func evalListLiteral(n *ast.ListLiteral, st *state.State) (value.Value, error) {
	elems := make([]float64, len(n.Elements))
	for i, e := range n.Elements {
		v, err := Eval(e, st)
		if err != nil {
			return nil, err
		}
		f, ok := value.AsReal(v)
		if !ok {
			return nil, errors.NewDataType(posRef(e.Pos()), "list element must coerce to Real")
		}
		elems[i] = f
	}
	return value.List{Elems: elems}, nil
}

func evalMatrixLiteral(n *ast.MatrixLiteral, st *state.State) (value.Value, error) {
	rows := make([][]float64, len(n.Rows))
	for i, row := range n.Rows {
		r := make([]float64, len(row))
		for j, e := range row {
			v, err := Eval(e, st)
			if err != nil {
				return nil, err
			}
			f, ok := value.AsReal(v)
			if !ok {
				return nil, errors.NewDataType(posRef(e.Pos()), "matrix element must coerce to Real")
			}
			r[j] = f
		}
		rows[i] = r
	}
	m := value.Matrix{Rows: rows}
	if !m.IsRectangular() {
		return nil, errors.NewDimMismatch(posRef(n.Pos()), "matrix literal rows must be equal-length and non-empty")
	}
	return m, nil
}

func evalElementAccess(n *ast.ElementAccess, st *state.State) (value.Value, error) {
	pos := n.Pos()

	switch target := n.Target.(type) {
	case *ast.ListVar:
		list, err := st.GetList(target.Name)
		if err != nil {
			return nil, err
		}
		if len(n.Indices) != 1 {
			return nil, errors.NewArgument(posRef(pos), "list element access takes exactly one index")
		}
		idx, err := evalIndex(n.Indices[0], st)
		if err != nil {
			return nil, err
		}
		if idx < 1 || idx > int64(len(list.Elems)) {
			return nil, errors.NewInvalidDim(posRef(pos), "list index %d out of range [1, %d]", idx, len(list.Elems))
		}
		return value.Real{V: list.Elems[idx-1]}, nil

	case *ast.MatrixVar:
		m, err := st.GetMatrix(target.Name)
		if err != nil {
			return nil, err
		}
		if len(n.Indices) != 2 {
			return nil, errors.NewArgument(posRef(pos), "matrix element access takes exactly two indices")
		}
		row, err := evalIndex(n.Indices[0], st)
		if err != nil {
			return nil, err
		}
		col, err := evalIndex(n.Indices[1], st)
		if err != nil {
			return nil, err
		}
		if row < 1 || row > int64(m.NumRows()) || col < 1 || col > int64(m.NumCols()) {
			return nil, errors.NewInvalidDim(posRef(pos), "matrix index (%d, %d) out of range", row, col)
		}
		return value.Real{V: m.Rows[row-1][col-1]}, nil

	case *ast.FunctionSlot:
		if len(n.Indices) != 1 {
			return nil, errors.NewArgument(posRef(pos), "function slot evaluation takes exactly one argument")
		}
		argVal, err := Eval(n.Indices[0], st)
		if err != nil {
			return nil, err
		}
		x, ok := value.AsReal(argVal)
		if !ok {
			return nil, errors.NewDataType(posRef(pos), "function slot argument must coerce to Real")
		}
		return EvaluateSlot(st, target.Index, x)

	default:
		return nil, errors.NewDataType(posRef(pos), "element access target must be a list, matrix, or function slot")
	}
}

func evalIndex(node ast.Node, st *state.State) (int64, error) {
	v, err := Eval(node, st)
	if err != nil {
		return 0, err
	}
	i, ok := value.AsInt(v)
	if !ok {
		return 0, errors.NewDataType(posRef(node.Pos()), "index must coerce to an integer")
	}
	return i, nil
}

func evalStore(n *ast.Store, st *state.State) (value.Value, error) {
	v, err := Eval(n.Expr, st)
	if err != nil {
		return nil, err
	}

	switch target := n.Target.(type) {
	case *ast.Variable:
		st.SetScalar(target.Name, v)
		return v, nil

	case *ast.ListVar:
		list, ok := value.AsList(v)
		if !ok {
			return nil, errors.NewDataType(posRef(n.Pos()), "value does not coerce to a list")
		}
		st.SetList(target.Name, list)
		return v, nil

	case *ast.MatrixVar:
		m, ok := value.AsMatrix(v)
		if !ok {
			return nil, errors.NewDataType(posRef(n.Pos()), "value does not coerce to a matrix")
		}
		st.SetMatrix(target.Name, m)
		return v, nil

	case *ast.StringVar:
		s, ok := value.AsString(v)
		if !ok {
			return nil, errors.NewDataType(posRef(n.Pos()), "value does not coerce to a string")
		}
		st.SetString(stringVarName(target.Index), s)
		return v, nil

	case *ast.ElementAccess:
		return v, storeElement(target, v, st)

	default:
		return nil, errors.NewSyntax(posRef(n.Pos()), "invalid store target")
	}
}

func storeElement(target *ast.ElementAccess, v value.Value, st *state.State) error {
	switch t := target.Target.(type) {
	case *ast.ListVar:
		if len(target.Indices) != 1 {
			return errors.NewArgument(posRef(target.Pos()), "list element store takes exactly one index")
		}
		idx, err := evalIndex(target.Indices[0], st)
		if err != nil {
			return err
		}
		if idx < 1 {
			return errors.NewInvalidDim(posRef(target.Pos()), "list index must be >= 1, got %d", idx)
		}
		f, ok := value.AsReal(v)
		if !ok {
			return errors.NewDataType(posRef(target.Pos()), "stored list element must coerce to Real")
		}
		list, err := st.GetList(t.Name)
		if err != nil {
			list = value.List{}
		}
		for int64(len(list.Elems)) < idx {
			list.Elems = append(list.Elems, 0)
		}
		list.Elems[idx-1] = f
		st.SetList(t.Name, list)
		return nil

	case *ast.MatrixVar:
		if len(target.Indices) != 2 {
			return errors.NewArgument(posRef(target.Pos()), "matrix element store takes exactly two indices")
		}
		row, err := evalIndex(target.Indices[0], st)
		if err != nil {
			return err
		}
		col, err := evalIndex(target.Indices[1], st)
		if err != nil {
			return err
		}
		f, ok := value.AsReal(v)
		if !ok {
			return errors.NewDataType(posRef(target.Pos()), "stored matrix element must coerce to Real")
		}
		m, err := st.GetMatrix(t.Name)
		if err != nil {
			return err
		}
		if row < 1 || row > int64(m.NumRows()) || col < 1 || col > int64(m.NumCols()) {
			return errors.NewInvalidDim(posRef(target.Pos()), "matrix index (%d, %d) out of range", row, col)
		}
		m.Rows[row-1][col-1] = f
		st.SetMatrix(t.Name, m)
		return nil

	default:
		return errors.NewSyntax(posRef(target.Pos()), "invalid element-store target")
	}
}

// angleUnit reports the current mode's angle unit for trig conversion.
func angleUnit(st *state.State) state.AngleUnit { return st.Mode().Angle }

// toRadians converts x from the current angle mode to radians.
func toRadians(x float64, st *state.State) float64 {
	if angleUnit(st) == state.Degree {
		return x * math.Pi / 180
	}
	return x
}

// fromRadians converts x from radians back to the current angle mode.
func fromRadians(x float64, st *state.State) float64 {
	if angleUnit(st) == state.Degree {
		return x * 180 / math.Pi
	}
	return x
}

// posRef takes the address of a Pos() result so it can be passed to the
// errors package, which expects *lexer.Position rather than a value (Node.Pos()
// returns by value since nodes have no stable addressable Position field).
func posRef(p lexer.Position) *lexer.Position { return &p }
