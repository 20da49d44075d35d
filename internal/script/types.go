// Package script exposes the query builder to Starlark. Tables, columns,
// expressions and queries are wrapped as Starlark values so .star scripts
// can assemble statements fluently and emit rendered SQL.
package script

import (
	"fmt"
	"sort"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/leapstack-labs/fluentql/pkg/core"
)

// builtinMethod is the signature shared by all bound methods.
type builtinMethod func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

func builtinAttr(recv starlark.Value, name string, methods map[string]builtinMethod) (starlark.Value, error) {
	m, ok := methods[name]
	if !ok {
		return nil, nil // no such attr
	}
	return starlark.NewBuiltin(name, m).BindReceiver(recv), nil
}

func methodNames(methods map[string]builtinMethod) []string {
	names := make([]string, 0, len(methods))
	for name := range methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// toOperand converts a Starlark value to an expression-tree operand.
func toOperand(v starlark.Value) (any, error) {
	switch val := v.(type) {
	case *Column:
		return val.col, nil
	case *Expr:
		return val.f, nil
	case starlark.String:
		return string(val), nil
	case starlark.Bool:
		return bool(val), nil
	case starlark.Int:
		i, ok := val.Int64()
		if !ok {
			return nil, fmt.Errorf("integer %s does not fit in 64 bits", val)
		}
		return i, nil
	case starlark.Float:
		return float64(val), nil
	case starlark.NoneType:
		return nil, nil
	default:
		return nil, fmt.Errorf("cannot use %s as a query operand", v.Type())
	}
}

// buildExpr runs an expression constructor, converting construction panics
// into Starlark errors so a bad script fails its evaluation instead of
// crashing the process.
func buildExpr(build func() *core.F) (v starlark.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("%v", r)
		}
	}()
	return &Expr{f: build()}, nil
}

// binaryExpr maps a Starlark binary operator to the matching constructor.
func binaryExpr(op syntax.Token, x any, y starlark.Value, side starlark.Side) (starlark.Value, error) {
	operand, err := toOperand(y)
	if err != nil {
		return nil, err
	}
	left, right := x, operand
	if side == starlark.Right {
		left, right = operand, x
	}

	switch op {
	case syntax.PLUS:
		return buildExpr(func() *core.F { return core.Add(left, right) })
	case syntax.MINUS:
		return buildExpr(func() *core.F { return core.Subtract(left, right) })
	case syntax.STAR:
		return buildExpr(func() *core.F { return core.Multiply(left, right) })
	case syntax.SLASH:
		return buildExpr(func() *core.F { return core.Divide(left, right) })
	case syntax.PERCENT:
		return buildExpr(func() *core.F { return core.Modulo(left, right) })
	case syntax.AMP:
		return buildExpr(func() *core.F { return core.BitwiseAnd(left, right) })
	case syntax.PIPE:
		return buildExpr(func() *core.F { return core.BitwiseOr(left, right) })
	case syntax.CIRCUMFLEX:
		return buildExpr(func() *core.F { return core.BitwiseXor(left, right) })
	default:
		return nil, nil // operator not supported for this type
	}
}

// Table wraps a table reference. Columns are reached by indexing:
// t["col"] yields a column value.
type Table struct {
	t *core.Table
}

var (
	_ starlark.Value    = (*Table)(nil)
	_ starlark.Mapping  = (*Table)(nil)
	_ starlark.HasAttrs = (*Table)(nil)
)

// NewTable wraps a table reference as a Starlark value.
func NewTable(t *core.Table) *Table { return &Table{t: t} }

// Unwrap returns the underlying table reference.
func (t *Table) Unwrap() *core.Table { return t.t }

func (t *Table) String() string        { return fmt.Sprintf("table(%s)", t.t.Qualname()) }
func (t *Table) Type() string          { return "table" }
func (t *Table) Freeze()               {}
func (t *Table) Truth() starlark.Bool  { return starlark.True }
func (t *Table) Hash() (uint32, error) { return starlark.String(t.t.Qualname()).Hash() }

// Get implements t["col"].
func (t *Table) Get(k starlark.Value) (starlark.Value, bool, error) {
	name, ok := starlark.AsString(k)
	if !ok {
		return nil, false, fmt.Errorf("table index must be a string, got %s", k.Type())
	}
	col, err := t.t.Column(name)
	if err != nil {
		return nil, false, err
	}
	return &Column{col: col}, true, nil
}

func (t *Table) Attr(name string) (starlark.Value, error) {
	switch name {
	case "name":
		return starlark.String(t.t.Name()), nil
	case "db":
		return starlark.String(t.t.DB()), nil
	}
	return builtinAttr(t, name, tableMethods)
}

func (t *Table) AttrNames() []string {
	return append([]string{"db", "name"}, methodNames(tableMethods)...)
}

var tableMethods = map[string]builtinMethod{
	"all": func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
			return nil, err
		}
		t := b.Receiver().(*Table)
		return &Expr{f: t.t.All()}, nil
	},
}

// Column wraps a column reference. Arithmetic and boolean operators build
// expression nodes; comparisons use methods (eq, lt, ...) because Starlark
// does not dispatch comparison operators to foreign types.
type Column struct {
	col *core.Column
}

var (
	_ starlark.Value     = (*Column)(nil)
	_ starlark.HasAttrs  = (*Column)(nil)
	_ starlark.HasBinary = (*Column)(nil)
)

func (c *Column) String() string        { return fmt.Sprintf("column(%s)", c.col.Name()) }
func (c *Column) Type() string          { return "column" }
func (c *Column) Freeze()               {}
func (c *Column) Truth() starlark.Bool  { return starlark.True }
func (c *Column) Hash() (uint32, error) { return starlark.String(c.col.Name()).Hash() }

func (c *Column) Binary(op syntax.Token, y starlark.Value, side starlark.Side) (starlark.Value, error) {
	return binaryExpr(op, c.col, y, side)
}

func (c *Column) Attr(name string) (starlark.Value, error) {
	return builtinAttr(c, name, columnMethods)
}

func (c *Column) AttrNames() []string { return methodNames(columnMethods) }

// columnUnary wraps a no-argument sugar method.
func columnUnary(build func(c *core.Column) *core.F) builtinMethod {
	return func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
			return nil, err
		}
		col := b.Receiver().(*Column).col
		return buildExpr(func() *core.F { return build(col) })
	}
}

// columnBinaryMethod wraps a one-argument sugar method.
func columnBinaryMethod(build func(c *core.Column, other any) *core.F) builtinMethod {
	return func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var other starlark.Value
		if err := starlark.UnpackArgs(b.Name(), args, kwargs, "other", &other); err != nil {
			return nil, err
		}
		operand, err := toOperand(other)
		if err != nil {
			return nil, err
		}
		col := b.Receiver().(*Column).col
		return buildExpr(func() *core.F { return build(col, operand) })
	}
}

var columnMethods = map[string]builtinMethod{
	"eq":    columnBinaryMethod((*core.Column).Eq),
	"ne":    columnBinaryMethod((*core.Column).Ne),
	"lt":    columnBinaryMethod((*core.Column).Lt),
	"le":    columnBinaryMethod((*core.Column).Le),
	"gt":    columnBinaryMethod((*core.Column).Gt),
	"ge":    columnBinaryMethod((*core.Column).Ge),
	"like":  columnBinaryMethod((*core.Column).Like),
	"is_in": columnBinaryMethod((*core.Column).In),
	"sum":   columnUnary((*core.Column).Sum),
	"min":   columnUnary((*core.Column).Min),
	"max":   columnUnary((*core.Column).Max),
	"asc":   columnUnary((*core.Column).Asc),
	"desc":  columnUnary((*core.Column).Desc),
	"alias": func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var name string
		if err := starlark.UnpackArgs(b.Name(), args, kwargs, "name", &name); err != nil {
			return nil, err
		}
		col := b.Receiver().(*Column).col
		return &Column{col: col.Alias(name)}, nil
	},
}

// Expr wraps a function expression node.
type Expr struct {
	f *core.F
}

var (
	_ starlark.Value     = (*Expr)(nil)
	_ starlark.HasAttrs  = (*Expr)(nil)
	_ starlark.HasBinary = (*Expr)(nil)
)

func (e *Expr) String() string        { return fmt.Sprintf("expr(%s)", e.f.Op()) }
func (e *Expr) Type() string          { return "expr" }
func (e *Expr) Freeze()               {}
func (e *Expr) Truth() starlark.Bool  { return starlark.True }
func (e *Expr) Hash() (uint32, error) { return starlark.String(e.f.Op().String()).Hash() }

func (e *Expr) Binary(op syntax.Token, y starlark.Value, side starlark.Side) (starlark.Value, error) {
	return binaryExpr(op, e.f, y, side)
}

func (e *Expr) Attr(name string) (starlark.Value, error) {
	return builtinAttr(e, name, exprMethods)
}

func (e *Expr) AttrNames() []string { return methodNames(exprMethods) }

func exprBinaryMethod(build func(f *core.F, other any) *core.F) builtinMethod {
	return func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var other starlark.Value
		if err := starlark.UnpackArgs(b.Name(), args, kwargs, "other", &other); err != nil {
			return nil, err
		}
		operand, err := toOperand(other)
		if err != nil {
			return nil, err
		}
		f := b.Receiver().(*Expr).f
		return buildExpr(func() *core.F { return build(f, operand) })
	}
}

var exprMethods = map[string]builtinMethod{
	"eq":    exprBinaryMethod((*core.F).Eq),
	"ne":    exprBinaryMethod((*core.F).Ne),
	"lt":    exprBinaryMethod((*core.F).Lt),
	"le":    exprBinaryMethod((*core.F).Le),
	"gt":    exprBinaryMethod((*core.F).Gt),
	"ge":    exprBinaryMethod((*core.F).Ge),
	"like":  exprBinaryMethod((*core.F).Like),
	"is_in": exprBinaryMethod((*core.F).In),
	"and_":  exprBinaryMethod((*core.F).And),
	"or_":   exprBinaryMethod((*core.F).Or),
	"xor":   exprBinaryMethod((*core.F).Xor),
	"as_": func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var alias string
		if err := starlark.UnpackArgs(b.Name(), args, kwargs, "alias", &alias); err != nil {
			return nil, err
		}
		f := b.Receiver().(*Expr).f
		return buildExpr(func() *core.F { return f.As(alias) })
	},
}
