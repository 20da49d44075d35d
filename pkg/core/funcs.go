package core

// Exported per-variant constructors. These are the tree-building surface
// used by the operator sugar on Column and F; like regexp.MustCompile they
// panic on invalid construction (see NewFunc for the checked path).

// Add builds a + b.
func Add(a, b any) *F { return mustFunc(OpAdd, a, b) }

// Subtract builds a - b.
func Subtract(a, b any) *F { return mustFunc(OpSubtract, a, b) }

// Multiply builds a * b.
func Multiply(a, b any) *F { return mustFunc(OpMultiply, a, b) }

// Divide builds a / b.
func Divide(a, b any) *F { return mustFunc(OpDivide, a, b) }

// Modulo builds a % b.
func Modulo(a, b any) *F { return mustFunc(OpModulo, a, b) }

// BitwiseAnd builds the boolean conjunction of a and b.
func BitwiseAnd(a, b any) *F { return mustFunc(OpBitwiseAnd, a, b) }

// BitwiseOr builds the boolean disjunction of a and b.
func BitwiseOr(a, b any) *F { return mustFunc(OpBitwiseOr, a, b) }

// BitwiseXor builds the boolean exclusive-or of a and b.
func BitwiseXor(a, b any) *F { return mustFunc(OpBitwiseXor, a, b) }

// Not builds the negation of a boolean expression.
func Not(a any) *F { return mustFunc(OpNot, a) }

// Comparison constructors mirror their operands when the left side is a
// bare constant and the right side is column-valued, so Equals(120, col)
// renders as "col = 120" and GreaterThan(20, col) as "col < 20". This
// matches the reflected-operator behavior the builder API is modeled on.

// Equals builds a = b.
func Equals(a, b any) *F {
	op, a, b := mirrorComparison(OpEquals, a, b)
	return mustFunc(op, a, b)
}

// NotEqual builds a <> b.
func NotEqual(a, b any) *F {
	op, a, b := mirrorComparison(OpNotEqual, a, b)
	return mustFunc(op, a, b)
}

// LessThan builds a < b.
func LessThan(a, b any) *F {
	op, a, b := mirrorComparison(OpLessThan, a, b)
	return mustFunc(op, a, b)
}

// LessThanOrEqual builds a <= b.
func LessThanOrEqual(a, b any) *F {
	op, a, b := mirrorComparison(OpLessThanOrEqual, a, b)
	return mustFunc(op, a, b)
}

// GreaterThan builds a > b.
func GreaterThan(a, b any) *F {
	op, a, b := mirrorComparison(OpGreaterThan, a, b)
	return mustFunc(op, a, b)
}

// GreaterThanOrEqual builds a >= b.
func GreaterThanOrEqual(a, b any) *F {
	op, a, b := mirrorComparison(OpGreaterThanOrEqual, a, b)
	return mustFunc(op, a, b)
}

// Like builds a like b.
func Like(a, b any) *F { return mustFunc(OpLike, a, b) }

// In builds a in (b).
func In(a, b any) *F { return mustFunc(OpIn, a, b) }

// As binds an alias name to a referenceable expression.
func As(expr any, alias string) *F { return mustFunc(OpAs, expr, alias) }

// TableStar builds the t.* wildcard for a table.
func TableStar(t *Table) *F { return mustFunc(OpTableStar, t) }

// Star builds the bare * wildcard.
func Star() *F { return mustFunc(OpStar) }

// Max builds the max aggregate over a column-valued expression.
func Max(a any) *F { return mustFunc(OpMax, a) }

// Min builds the min aggregate over a column-valued expression.
func Min(a any) *F { return mustFunc(OpMin, a) }

// Sum builds the sum aggregate over a column-valued expression.
func Sum(a any) *F { return mustFunc(OpSum, a) }

// Asc wraps a column as an ascending order-by criterion.
func Asc(c *Column) *F { return mustFunc(OpAsc, c) }

// Desc wraps a column as a descending order-by criterion.
func Desc(c *Column) *F { return mustFunc(OpDesc, c) }

// Func builds a generic named function; the compiler renders it as
// name(arg0, arg1, ...).
func Func(name string, args ...any) *F {
	f, err := NewNamedFunc(name, args...)
	if err != nil {
		panic(err)
	}
	return f
}

func isOperandExpr(v any) bool {
	switch v.(type) {
	case *F, *Column, *Table:
		return true
	}
	return false
}

func mirrorComparison(op Op, a, b any) (Op, any, any) {
	if isOperandExpr(a) || !isOperandExpr(b) {
		return op, a, b
	}
	switch op {
	case OpLessThan:
		op = OpGreaterThan
	case OpLessThanOrEqual:
		op = OpGreaterThanOrEqual
	case OpGreaterThan:
		op = OpLessThan
	case OpGreaterThanOrEqual:
		op = OpLessThanOrEqual
	}
	return op, b, a
}

// ---------- Operator sugar on F ----------

// Eq builds f = other.
func (f *F) Eq(other any) *F { return Equals(f, other) }

// Ne builds f <> other.
func (f *F) Ne(other any) *F { return NotEqual(f, other) }

// Lt builds f < other.
func (f *F) Lt(other any) *F { return LessThan(f, other) }

// Le builds f <= other.
func (f *F) Le(other any) *F { return LessThanOrEqual(f, other) }

// Gt builds f > other.
func (f *F) Gt(other any) *F { return GreaterThan(f, other) }

// Ge builds f >= other.
func (f *F) Ge(other any) *F { return GreaterThanOrEqual(f, other) }

// Add builds f + other.
func (f *F) Add(other any) *F { return Add(f, other) }

// Sub builds f - other.
func (f *F) Sub(other any) *F { return Subtract(f, other) }

// Mul builds f * other.
func (f *F) Mul(other any) *F { return Multiply(f, other) }

// Div builds f / other.
func (f *F) Div(other any) *F { return Divide(f, other) }

// Mod builds f % other.
func (f *F) Mod(other any) *F { return Modulo(f, other) }

// And builds f and other.
func (f *F) And(other any) *F { return BitwiseAnd(f, other) }

// Or builds f or other.
func (f *F) Or(other any) *F { return BitwiseOr(f, other) }

// Xor builds f xor other.
func (f *F) Xor(other any) *F { return BitwiseXor(f, other) }

// Like builds f like pattern.
func (f *F) Like(pattern any) *F { return Like(f, pattern) }

// In builds f in (other).
func (f *F) In(other any) *F { return In(f, other) }

// As binds an alias name to the expression.
func (f *F) As(alias string) *F { return As(f, alias) }
