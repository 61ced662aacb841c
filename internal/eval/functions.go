package eval

import (
	"math"
	"strings"

	"github.com/cwbudde/go-ticore/internal/ast"
	"github.com/cwbudde/go-ticore/internal/errors"
	"github.com/cwbudde/go-ticore/internal/kernel"
	"github.com/cwbudde/go-ticore/internal/lexer"
	"github.com/cwbudde/go-ticore/internal/state"
	"github.com/cwbudde/go-ticore/internal/value"
)

// listOnlyFunctions names builtins that dispatch before the scalar path
// (§4.5: "List-only operations ... dispatch before the scalar path").
var listOnlyFunctions = map[string]bool{
	"dim": true, "sum": true, "prod": true, "mean": true, "median": true,
	"cumsum": true, "augment": true, "min": true, "max": true, "length": true,
	"sub": true, "instring": true, "det": true, "identity": true, "ref": true,
	"rref": true, "randint": true, "randnorm": true, "rand": true, "randm": true,
	"inverse": true,
}

func evalFunctionCall(n *ast.FunctionCall, st *state.State) (value.Value, error) {
	name := strings.ToLower(n.Name)
	pos := posRef(n.Pos())

	// seq, nDeriv, and fnInt need their first argument's raw AST shape
	// (a bound variable name, or a function-slot reference) rather than
	// its evaluated Value, so they dispatch before argument evaluation.
	switch name {
	case "seq":
		return dispatchSeq(n, st)
	case "nderiv":
		return dispatchNDeriv(n, pos, st)
	case "fnint":
		return dispatchFnInt(n, pos, st)
	}

	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := Eval(a, st)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	if listOnlyFunctions[name] {
		return dispatchListFunction(name, args, pos, st)
	}

	return dispatchScalarFunction(name, args, pos, st)
}

func requireArgs(name string, args []value.Value, n int, pos *lexer.Position) error {
	if len(args) != n {
		return errors.NewArgument(pos, "%s expects %d argument(s), got %d", name, n, len(args))
	}
	return nil
}

func dispatchScalarFunction(name string, args []value.Value, pos *lexer.Position, st *state.State) (value.Value, error) {
	// Single-argument real functions broadcast over Lists automatically.
	switch name {
	case "sin", "cos", "tan", "asin", "acos", "atan":
		return dispatchTrig(name, args, pos, st)

	case "log":
		return dispatchLog(args, pos)

	case "ln":
		if err := requireArgs(name, args, 1, pos); err != nil {
			return nil, err
		}
		return applyPointwise(args[0], pos, func(x float64) (float64, error) {
			if x <= 0 {
				return 0, errors.NewDomain(pos, "ln requires a positive argument")
			}
			return math.Log(x), nil
		})

	case "exp":
		if err := requireArgs(name, args, 1, pos); err != nil {
			return nil, err
		}
		return applyPointwise(args[0], pos, func(x float64) (float64, error) {
			r := math.Exp(x)
			if math.IsInf(r, 0) {
				return 0, errors.NewOverflow(pos, "exp(%g) is not finite", x)
			}
			return r, nil
		})

	case "sqrt":
		if err := requireArgs(name, args, 1, pos); err != nil {
			return nil, err
		}
		return applyPointwise(args[0], pos, func(x float64) (float64, error) {
			if x < 0 {
				return 0, errors.NewNonReal(pos, "sqrt of a negative number requires complex mode")
			}
			return math.Sqrt(x), nil
		})

	case "abs":
		if err := requireArgs(name, args, 1, pos); err != nil {
			return nil, err
		}
		if c, ok := args[0].(value.Complex); ok {
			return value.Real{V: math.Hypot(c.Re, c.Im)}, nil
		}
		return applyPointwise(args[0], pos, func(x float64) (float64, error) { return math.Abs(x), nil })

	case "round":
		if err := requireArgs(name, args, 1, pos); err != nil {
			return nil, err
		}
		return applyPointwise(args[0], pos, func(x float64) (float64, error) { return math.Round(x), nil })

	case "int", "ipart":
		if err := requireArgs(name, args, 1, pos); err != nil {
			return nil, err
		}
		return applyPointwise(args[0], pos, func(x float64) (float64, error) { return math.Trunc(x), nil })

	case "floor":
		if err := requireArgs(name, args, 1, pos); err != nil {
			return nil, err
		}
		return applyPointwise(args[0], pos, func(x float64) (float64, error) { return math.Floor(x), nil })

	case "ceil", "ceiling":
		if err := requireArgs(name, args, 1, pos); err != nil {
			return nil, err
		}
		return applyPointwise(args[0], pos, func(x float64) (float64, error) { return math.Ceil(x), nil })

	case "invnorm":
		if err := requireArgs(name, args, 1, pos); err != nil {
			return nil, err
		}
		return applyPointwise(args[0], pos, func(x float64) (float64, error) {
			if x <= 0 || x >= 1 {
				return 0, errors.NewDomain(pos, "invNorm requires an argument strictly between 0 and 1")
			}
			return kernel.InverseNormalCDF(x), nil
		})
	}

	return nil, errors.NewUndefined(pos, "unknown function %s", name)
}

func dispatchTrig(name string, args []value.Value, pos *lexer.Position, st *state.State) (value.Value, error) {
	if err := requireArgs(name, args, 1, pos); err != nil {
		return nil, err
	}
	switch name {
	case "sin":
		return applyPointwise(args[0], pos, func(x float64) (float64, error) {
			return math.Sin(toRadians(x, st)), nil
		})
	case "cos":
		return applyPointwise(args[0], pos, func(x float64) (float64, error) {
			return math.Cos(toRadians(x, st)), nil
		})
	case "tan":
		return applyPointwise(args[0], pos, func(x float64) (float64, error) {
			rad := toRadians(x, st)
			if math.Abs(math.Cos(rad)) < 1e-14 {
				return 0, errors.NewDomain(pos, "tan is undefined at this angle")
			}
			return math.Tan(rad), nil
		})
	case "asin":
		return applyPointwise(args[0], pos, func(x float64) (float64, error) {
			if x < -1 || x > 1 {
				return 0, errors.NewDomain(pos, "asin domain is [-1, 1]")
			}
			return fromRadians(math.Asin(x), st), nil
		})
	case "acos":
		return applyPointwise(args[0], pos, func(x float64) (float64, error) {
			if x < -1 || x > 1 {
				return 0, errors.NewDomain(pos, "acos domain is [-1, 1]")
			}
			return fromRadians(math.Acos(x), st), nil
		})
	case "atan":
		return applyPointwise(args[0], pos, func(x float64) (float64, error) {
			return fromRadians(math.Atan(x), st), nil
		})
	}
	return nil, errors.NewUndefined(pos, "unknown trig function %s", name)
}

func dispatchLog(args []value.Value, pos *lexer.Position) (value.Value, error) {
	switch len(args) {
	case 1:
		return applyPointwise(args[0], pos, func(x float64) (float64, error) {
			if x <= 0 {
				return 0, errors.NewDomain(pos, "log requires a positive argument")
			}
			return math.Log10(x), nil
		})
	case 2:
		base, ok := value.AsReal(args[1])
		if !ok {
			return nil, errors.NewDataType(pos, "log base must coerce to Real")
		}
		if base <= 0 || base == 1 {
			return nil, errors.NewDomain(pos, "log base must be positive and not equal to 1")
		}
		return applyPointwise(args[0], pos, func(x float64) (float64, error) {
			if x <= 0 {
				return 0, errors.NewDomain(pos, "log requires a positive argument")
			}
			return math.Log(x) / math.Log(base), nil
		})
	}
	return nil, errors.NewArgument(pos, "log expects 1 or 2 arguments, got %d", len(args))
}

func dispatchSeq(n *ast.FunctionCall, st *state.State) (value.Value, error) {
	pos := posRef(n.Pos())
	if len(n.Args) < 4 || len(n.Args) > 5 {
		return nil, errors.NewArgument(pos, "seq expects 4 or 5 arguments, got %d", len(n.Args))
	}
	varNode, ok := n.Args[1].(*ast.Variable)
	if !ok {
		return nil, errors.NewArgument(pos, "seq's second argument must be a variable")
	}
	start, err := evalArgReal(n.Args[2], st)
	if err != nil {
		return nil, err
	}
	end, err := evalArgReal(n.Args[3], st)
	if err != nil {
		return nil, err
	}
	step := 1.0
	if len(n.Args) == 5 {
		step, err = evalArgReal(n.Args[4], st)
		if err != nil {
			return nil, err
		}
	}
	return EvaluateSeq(st, n.Args[0].String(), varNode.Name, start, end, step)
}

func evalArgReal(node ast.Node, st *state.State) (float64, error) {
	v, err := Eval(node, st)
	if err != nil {
		return 0, err
	}
	f, ok := value.AsReal(v)
	if !ok {
		return 0, errors.NewDataType(posRef(node.Pos()), "argument must coerce to Real")
	}
	return f, nil
}

// slotIndexOf recovers a function-slot index from an argument's raw AST
// node: only a bare FunctionSlot reference (Y1, ..., Y0) is accepted.
func slotIndexOf(node ast.Node) (int, bool) {
	slot, ok := node.(*ast.FunctionSlot)
	if !ok {
		return 0, false
	}
	return slot.Index, true
}

func dispatchNDeriv(n *ast.FunctionCall, pos *lexer.Position, st *state.State) (value.Value, error) {
	if len(n.Args) < 2 || len(n.Args) > 3 {
		return nil, errors.NewArgument(pos, "nDeriv expects 2 or 3 arguments, got %d", len(n.Args))
	}
	slotIdx, ok := slotIndexOf(n.Args[0])
	if !ok {
		return nil, errors.NewArgument(pos, "nDeriv's first argument must be a function slot")
	}
	x, err := evalArgReal(n.Args[1], st)
	if err != nil {
		return nil, err
	}
	h := 0.0
	if len(n.Args) == 3 {
		h, err = evalArgReal(n.Args[2], st)
		if err != nil {
			return nil, err
		}
	}
	var evalErr error
	f := func(v float64) float64 {
		r, err := EvaluateSlot(st, slotIdx, v)
		if err != nil {
			evalErr = err
			return 0
		}
		fv, _ := value.AsReal(r)
		return fv
	}
	result := kernel.SymmetricDerivative(f, x, h)
	if evalErr != nil {
		return nil, evalErr
	}
	return value.Real{V: result}, nil
}

func dispatchFnInt(n *ast.FunctionCall, pos *lexer.Position, st *state.State) (value.Value, error) {
	if len(n.Args) != 3 {
		return nil, errors.NewArgument(pos, "fnInt expects 3 arguments, got %d", len(n.Args))
	}
	slotIdx, ok := slotIndexOf(n.Args[0])
	if !ok {
		return nil, errors.NewArgument(pos, "fnInt's first argument must be a function slot")
	}
	a, err := evalArgReal(n.Args[1], st)
	if err != nil {
		return nil, err
	}
	b, err := evalArgReal(n.Args[2], st)
	if err != nil {
		return nil, err
	}
	var evalErr error
	f := func(v float64) float64 {
		r, err := EvaluateSlot(st, slotIdx, v)
		if err != nil {
			evalErr = err
			return 0
		}
		fv, _ := value.AsReal(r)
		return fv
	}
	result := kernel.Simpson(f, a, b, 0)
	if evalErr != nil {
		return nil, evalErr
	}
	return value.Real{V: result}, nil
}
