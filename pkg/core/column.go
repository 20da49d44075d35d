package core

// Column is a column reference: a name, an element kind, an optional alias
// and a back-pointer to the owning table. The back-pointer is used for
// qualified-name rendering only and never implies ownership.
type Column struct {
	name  string
	kind  Kind
	alias string
	table *Table
}

// NewColumn constructs an unbound column reference.
func NewColumn(name string, kind Kind) *Column {
	return &Column{name: name, kind: kind}
}

// Bind sets the owning-table back-pointer and returns the column.
func (c *Column) Bind(t *Table) *Column {
	c.table = t
	return c
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// Kind returns the column's element kind.
func (c *Column) Kind() Kind { return c.kind }

// Table returns the owning-table back-pointer, nil if unbound.
func (c *Column) Table() *Table { return c.table }

// AliasName returns the alias, empty if the column is not aliased.
func (c *Column) AliasName() string { return c.alias }

// IsAliased reports whether an alias is set.
func (c *Column) IsAliased() bool { return c.alias != "" }

// Alias returns a copy of the column with the alias set. The copy stays
// bound to the same table and compares equal to the original under Equals.
func (c *Column) Alias(name string) *Column {
	copied := *c
	copied.alias = name
	return &copied
}

// Equals reports whether two column references are identical: same owning
// table object, same name, same kind. Aliases do not participate.
func (c *Column) Equals(other *Column) bool {
	return other != nil &&
		other.table == c.table &&
		other.name == c.name &&
		other.kind == c.kind
}

// ---------- Operator sugar ----------
//
// Each method constructs the corresponding expression-tree node, so
// col.Gt(10) yields a GreaterThan expression over (col, 10).

// Eq builds c = other.
func (c *Column) Eq(other any) *F { return Equals(c, other) }

// Ne builds c <> other.
func (c *Column) Ne(other any) *F { return NotEqual(c, other) }

// Lt builds c < other.
func (c *Column) Lt(other any) *F { return LessThan(c, other) }

// Le builds c <= other.
func (c *Column) Le(other any) *F { return LessThanOrEqual(c, other) }

// Gt builds c > other.
func (c *Column) Gt(other any) *F { return GreaterThan(c, other) }

// Ge builds c >= other.
func (c *Column) Ge(other any) *F { return GreaterThanOrEqual(c, other) }

// Add builds c + other.
func (c *Column) Add(other any) *F { return Add(c, other) }

// Sub builds c - other.
func (c *Column) Sub(other any) *F { return Subtract(c, other) }

// Mul builds c * other.
func (c *Column) Mul(other any) *F { return Multiply(c, other) }

// Div builds c / other.
func (c *Column) Div(other any) *F { return Divide(c, other) }

// Mod builds c % other.
func (c *Column) Mod(other any) *F { return Modulo(c, other) }

// And builds c and other.
func (c *Column) And(other any) *F { return BitwiseAnd(c, other) }

// Or builds c or other.
func (c *Column) Or(other any) *F { return BitwiseOr(c, other) }

// Xor builds c xor other.
func (c *Column) Xor(other any) *F { return BitwiseXor(c, other) }

// Like builds c like pattern.
func (c *Column) Like(pattern any) *F { return Like(c, pattern) }

// In builds c in (other).
func (c *Column) In(other any) *F { return In(c, other) }

// Sum builds sum(c).
func (c *Column) Sum() *F { return Sum(c) }

// Min builds min(c).
func (c *Column) Min() *F { return Min(c) }

// Max builds max(c).
func (c *Column) Max() *F { return Max(c) }

// Asc wraps the column as an ascending order-by criterion.
func (c *Column) Asc() *F { return Asc(c) }

// Desc wraps the column as a descending order-by criterion.
func (c *Column) Desc() *F { return Desc(c) }
