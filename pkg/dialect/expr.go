package dialect

import (
	"strings"

	"github.com/leapstack-labs/fluentql/pkg/core"
)

func (r *renderer) compileFunc(f *core.F) (string, error) {
	switch f.Op() {
	case core.OpAdd:
		return r.infix(f, r.op(r.d.Operators.Add))
	case core.OpSubtract:
		return r.infix(f, r.op(r.d.Operators.Subtract))
	case core.OpMultiply:
		return r.infix(f, r.op(r.d.Operators.Multiply))
	case core.OpDivide:
		return r.infix(f, r.op(r.d.Operators.Divide))
	case core.OpModulo:
		return r.infix(f, r.op(r.d.Operators.Modulo))
	case core.OpBitwiseAnd:
		return r.infix(f, r.op(r.d.Operators.And))
	case core.OpBitwiseOr:
		return r.infix(f, r.op(r.d.Operators.Or))
	case core.OpBitwiseXor:
		return r.infix(f, r.op(r.d.Operators.Xor))
	case core.OpEquals:
		return r.infix(f, r.op(r.d.Operators.Equal))
	case core.OpNotEqual:
		return r.infix(f, r.op(r.d.Operators.NotEqual))
	case core.OpLessThan:
		return r.infix(f, r.op(r.d.Operators.LessThan))
	case core.OpLessThanOrEqual:
		return r.infix(f, r.op(r.d.Operators.LessThanOrEqual))
	case core.OpGreaterThan:
		return r.infix(f, r.op(r.d.Operators.GreaterThan))
	case core.OpGreaterThanOrEqual:
		return r.infix(f, r.op(r.d.Operators.GreaterThanOrEqual))
	case core.OpLike:
		return r.infix(f, r.fname(r.d.Names.Like))
	case core.OpNot:
		return r.compileNot(f)
	case core.OpIn:
		return r.compileIn(f)
	case core.OpAs:
		return r.compileAs(f)
	case core.OpStar:
		return r.kw(r.d.Keywords.Star), nil
	case core.OpTableStar:
		return r.compileTableStar(f)
	case core.OpAsc:
		return r.compileOrdering(f, r.d.Keywords.Asc)
	case core.OpDesc:
		return r.compileOrdering(f, r.d.Keywords.Desc)
	case core.OpMax:
		return r.call(r.fname(r.d.Names.Max), f.Args())
	case core.OpMin:
		return r.call(r.fname(r.d.Names.Min), f.Args())
	case core.OpSum:
		return r.call(r.fname(r.d.Names.Sum), f.Args())
	default:
		return r.compileGenericFunc(f)
	}
}

// infix renders left <name> right. The right operand is parenthesized when
// it is itself a function whose own arguments include a nested function.
// This is a conservative heuristic, not operator-precedence tracking.
func (r *renderer) infix(f *core.F, name string) (string, error) {
	left, err := r.dispatch(f.Arg(0))
	if err != nil {
		return "", err
	}
	right, err := r.dispatch(f.Arg(1))
	if err != nil {
		return "", err
	}
	if rhs, ok := f.Arg(1).(*core.F); ok && hasFuncArg(rhs) {
		right = "(" + right + ")"
	}
	return left + " " + name + " " + right, nil
}

func hasFuncArg(f *core.F) bool {
	for _, arg := range f.Args() {
		if _, ok := arg.(*core.F); ok {
			return true
		}
	}
	return false
}

func (r *renderer) compileNot(f *core.F) (string, error) {
	inner, err := r.dispatch(f.Arg(0))
	if err != nil {
		return "", err
	}
	return r.op(r.d.Operators.Not) + " (" + inner + ")", nil
}

func (r *renderer) compileIn(f *core.F) (string, error) {
	left, err := r.dispatch(f.Arg(0))
	if err != nil {
		return "", err
	}
	right, err := r.dispatch(f.Arg(1))
	if err != nil {
		return "", err
	}
	return left + " " + r.op(r.d.Operators.In) + " (" + right + ")", nil
}

// compileAs renders expr AS name. The alias is a raw identifier, never
// quoted as a string literal.
func (r *renderer) compileAs(f *core.F) (string, error) {
	left, err := r.dispatch(f.Arg(0))
	if err != nil {
		return "", err
	}
	alias, _ := f.Arg(1).(string)
	return left + " " + r.kw(r.d.Keywords.As) + " " + alias, nil
}

func (r *renderer) compileTableStar(f *core.F) (string, error) {
	table, err := r.dispatch(f.Arg(0))
	if err != nil {
		return "", err
	}
	return table + "." + r.kw(r.d.Keywords.Star), nil
}

func (r *renderer) compileOrdering(f *core.F, direction string) (string, error) {
	operand, err := r.dispatch(f.Arg(0))
	if err != nil {
		return "", err
	}
	return operand + " " + r.kw(direction), nil
}

// call renders name(arg0, arg1, ...).
func (r *renderer) call(name string, args []any) (string, error) {
	parts := make([]string, len(args))
	for i, arg := range args {
		rendered, err := r.dispatch(arg)
		if err != nil {
			return "", err
		}
		parts[i] = rendered
	}
	return name + "(" + strings.Join(parts, r.listSep()) + ")", nil
}

// compileGenericFunc is the fallback for variants without a dedicated
// rendering: name(arg0, arg1, ...) using the custom function name or the
// lowercase variant name.
func (r *renderer) compileGenericFunc(f *core.F) (string, error) {
	name := f.FuncName()
	if name == "" {
		name = f.Op().String()
	}
	return r.call(r.fname(name), f.Args())
}
