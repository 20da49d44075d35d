package query

import (
	"github.com/leapstack-labs/fluentql/pkg/core"
)

// Command is the statement kind a Query is bound to. The first six are
// top-level statement kinds; Where, On, Join and Having are used only for
// internally nested sub-queries (grouped clauses).
type Command int

// Command constants.
const (
	CommandSelect Command = iota
	CommandInsert
	CommandUpdate
	CommandDelete
	CommandCreate
	CommandDrop
	CommandWhere
	CommandOn
	CommandJoin
	CommandHaving
)

var commandNames = map[Command]string{
	CommandSelect: "select",
	CommandInsert: "insert",
	CommandUpdate: "update",
	CommandDelete: "delete",
	CommandCreate: "create",
	CommandDrop:   "drop",
	CommandWhere:  "where",
	CommandOn:     "on",
	CommandJoin:   "join",
	CommandHaving: "having",
}

// String returns the lowercase command name.
func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// Option keys consumed by the dialect compiler.
const (
	OptionDistinct = "distinct"
	OptionFetch    = "fetch"
	OptionSkip     = "skip"
	OptionJoinType = "join_type"
)

// Query is the mutable fluent builder for one SQL statement or one nested
// clause group. The command kind, once set by a factory, is immutable.
type Query struct {
	cmd     Command
	err     error
	targets []*core.Table
	selects []any // nil renders as the star wildcard
	joins   []*Query
	where   any // single composed boolean expression tree
	having  any
	on      any
	using   string
	groupBy []*core.Column
	orderBy []*core.F // Asc/Desc wrappers
	opts    map[string]any
}

// GroupFunc builds a nested clause group. The callback receives a fresh
// sub-query inheriting the parent's target list and composes conditions on
// it; the accumulated expression is folded into the parent as one grouped
// operand.
type GroupFunc func(*Query)

func newQuery(cmd Command) *Query {
	return &Query{cmd: cmd, opts: make(map[string]any)}
}

// Select creates a SELECT query. With no expressions the select list
// defaults to the star wildcard. Each expression must be a column reference
// or a function expression; aliased columns are wrapped in As.
func Select(exprs ...any) *Query {
	q := newQuery(CommandSelect)
	if len(exprs) == 0 {
		return q
	}
	selects := make([]any, 0, len(exprs))
	for _, expr := range exprs {
		switch e := expr.(type) {
		case *core.Column:
			if e.IsAliased() {
				selects = append(selects, core.As(e, e.AliasName()))
			} else {
				selects = append(selects, e)
			}
		case *core.F:
			selects = append(selects, e)
		default:
			return q.fail(builderErrorf("select: expected column or function expression, got %T", expr))
		}
	}
	q.selects = selects
	return q
}

// Delete creates a DELETE query.
func Delete() *Query { return newQuery(CommandDelete) }

// Insert creates an INSERT query.
func Insert() *Query { return newQuery(CommandInsert) }

// Update creates an UPDATE query.
func Update() *Query { return newQuery(CommandUpdate) }

// Create creates a CREATE query.
func Create() *Query { return newQuery(CommandCreate) }

// Drop creates a DROP query.
func Drop() *Query { return newQuery(CommandDrop) }

// fail records the first builder error; later calls are no-ops.
func (q *Query) fail(err error) *Query {
	if q.err == nil {
		q.err = err
	}
	return q
}

// Err returns the first builder error, nil if the query is well-formed.
func (q *Query) Err() error { return q.err }

// Command returns the command kind the query is bound to.
func (q *Query) Command() Command { return q.cmd }

// From sets the sole primary target table. Calling it twice is an error.
func (q *Query) From(t *core.Table) *Query {
	if q.err != nil {
		return q
	}
	if q.cmd >= CommandWhere {
		return q.fail(builderErrorf("from: not valid on a nested %s clause", q.cmd))
	}
	if len(q.targets) > 0 {
		return q.fail(builderErrorf("from: target already set to %s", q.targets[0].Qualname()))
	}
	q.targets = append(q.targets, t)
	return q
}

// ---------- Boolean composition ----------

// compose folds cond into *slot under boolOp, producing a strictly
// left-associative binary tree. cond may be a boolean expression, a column,
// a bool constant, or a GroupFunc building a nested group.
func (q *Query) compose(slot *any, sub Command, cond any, boolOp core.Op, clause string) *Query {
	if q.err != nil {
		return q
	}

	var operand any
	switch c := cond.(type) {
	case *core.F:
		if k := c.Kind(); k.Elem != core.KindBoolean && k.Elem != core.KindAny {
			return q.fail(builderErrorf("%s: condition must be boolean, got %s", clause, k))
		}
		operand = c
	case *core.Column:
		if k := c.Kind(); k != core.KindBoolean && k != core.KindAny {
			return q.fail(builderErrorf("%s: condition column must be boolean, got %s", clause, k))
		}
		operand = c
	case bool:
		operand = c
	case GroupFunc:
		operand = q.group(sub, c)
	case func(*Query):
		operand = q.group(sub, c)
	default:
		return q.fail(builderErrorf("%s: expected condition or group callback, got %T", clause, cond))
	}
	if q.err != nil {
		return q
	}
	if operand == nil {
		return q
	}

	if *slot == nil {
		*slot = operand
		return q
	}
	switch boolOp {
	case core.OpBitwiseAnd:
		*slot = core.BitwiseAnd(*slot, operand)
	case core.OpBitwiseOr:
		*slot = core.BitwiseOr(*slot, operand)
	default:
		return q.fail(builderErrorf("%s: unsupported boolean combinator %s", clause, boolOp))
	}
	return q
}

// group runs a callback against a fresh nested sub-query and returns its
// accumulated expression. Rendering wraps grouped operands in parentheses.
func (q *Query) group(cmd Command, fn func(*Query)) any {
	sub := newQuery(cmd)
	sub.targets = q.targets
	fn(sub)
	if sub.err != nil {
		q.fail(sub.err)
		return nil
	}
	if cmd == CommandOn {
		return sub.on
	}
	return sub.where
}

func (q *Query) whereAllowed() bool {
	switch q.cmd {
	case CommandSelect, CommandDelete, CommandUpdate, CommandWhere, CommandHaving:
		return true
	}
	return false
}

// Where composes a condition into the where expression under AND.
func (q *Query) Where(cond any) *Query { return q.whereWith(cond, core.OpBitwiseAnd) }

// AndWhere composes a condition into the where expression under AND.
func (q *Query) AndWhere(cond any) *Query { return q.whereWith(cond, core.OpBitwiseAnd) }

// OrWhere composes a condition into the where expression under OR.
func (q *Query) OrWhere(cond any) *Query { return q.whereWith(cond, core.OpBitwiseOr) }

func (q *Query) whereWith(cond any, boolOp core.Op) *Query {
	if q.err != nil {
		return q
	}
	if !q.whereAllowed() {
		return q.fail(builderErrorf("where: not valid for a %s query", q.cmd))
	}
	return q.compose(&q.where, CommandWhere, cond, boolOp, "where")
}

// Having composes a condition into the having expression under AND. Only
// meaningful alongside GroupBy; that pairing is left to the caller.
func (q *Query) Having(cond any) *Query { return q.havingWith(cond, core.OpBitwiseAnd) }

// AndHaving composes a condition into the having expression under AND.
func (q *Query) AndHaving(cond any) *Query { return q.havingWith(cond, core.OpBitwiseAnd) }

// OrHaving composes a condition into the having expression under OR.
func (q *Query) OrHaving(cond any) *Query { return q.havingWith(cond, core.OpBitwiseOr) }

func (q *Query) havingWith(cond any, boolOp core.Op) *Query {
	if q.err != nil {
		return q
	}
	if q.cmd != CommandSelect {
		return q.fail(builderErrorf("having: only valid for a select query, not %s", q.cmd))
	}
	return q.compose(&q.having, CommandHaving, cond, boolOp, "having")
}

// ---------- Select-only clauses ----------

// GroupBy appends grouping columns. At least one column is required.
func (q *Query) GroupBy(columns ...*core.Column) *Query {
	if q.err != nil {
		return q
	}
	if q.cmd != CommandSelect {
		return q.fail(builderErrorf("group by: only valid for a select query, not %s", q.cmd))
	}
	if len(columns) == 0 {
		return q.fail(builderErrorf("group by: at least one column is required"))
	}
	for _, c := range columns {
		if c == nil {
			return q.fail(builderErrorf("group by: nil column"))
		}
	}
	q.groupBy = append(q.groupBy, columns...)
	return q
}

// OrderBy appends ordering criteria: column references (ascending by
// default) or explicit Asc/Desc wrappers. Anything else is an error.
func (q *Query) OrderBy(criteria ...any) *Query {
	if q.err != nil {
		return q
	}
	if q.cmd != CommandSelect {
		return q.fail(builderErrorf("order by: only valid for a select query, not %s", q.cmd))
	}
	if len(criteria) == 0 {
		return q.fail(builderErrorf("order by: at least one criterion is required"))
	}
	for _, criterion := range criteria {
		switch c := criterion.(type) {
		case *core.Column:
			q.orderBy = append(q.orderBy, c.Asc())
		case *core.F:
			if op := c.Op(); op != core.OpAsc && op != core.OpDesc {
				return q.fail(builderErrorf("order by: expected column or asc/desc wrapper, got %s expression", op))
			}
			q.orderBy = append(q.orderBy, c)
		default:
			return q.fail(builderErrorf("order by: expected column or asc/desc wrapper, got %T", criterion))
		}
	}
	return q
}

// Fetch limits the number of fetched rows. The dialect renders it as LIMIT.
func (q *Query) Fetch(n int) *Query { return q.selectOption("fetch", OptionFetch, n) }

// Skip skips leading rows. The dialect renders it as OFFSET.
func (q *Query) Skip(n int) *Query { return q.selectOption("skip", OptionSkip, n) }

// Distinct marks the select list as distinct.
func (q *Query) Distinct() *Query { return q.selectOption("distinct", OptionDistinct, true) }

func (q *Query) selectOption(clause, name string, value any) *Query {
	if q.err != nil {
		return q
	}
	if q.cmd != CommandSelect {
		return q.fail(builderErrorf("%s: only valid for a select query, not %s", clause, q.cmd))
	}
	q.opts[name] = value
	return q
}

// ---------- Options ----------

// SetOption sets a free-form option consumed by the compiler.
func (q *Query) SetOption(name string, value any) *Query {
	if q.err != nil {
		return q
	}
	q.opts[name] = value
	return q
}

// HasOption reports whether an option is set.
func (q *Query) HasOption(name string) bool {
	_, ok := q.opts[name]
	return ok
}

// Option returns an option value, nil if unset.
func (q *Query) Option(name string) any { return q.opts[name] }

// ---------- Compilation ----------

// Compiler renders a query to SQL text. It is implemented by the dialect
// package; rendering never mutates the query.
type Compiler interface {
	Compile(q *Query) (string, error)
}

// Compile renders the query with the given compiler.
func (q *Query) Compile(c Compiler) (string, error) {
	return c.Compile(q)
}

// ---------- Read-only accessors used by compilers ----------

// Targets returns the ordered target tables; the first is the primary FROM
// target, subsequent entries are join targets.
func (q *Query) Targets() []*core.Table { return q.targets }

// SelectList returns the select expressions; nil means the star wildcard.
func (q *Query) SelectList() []any { return q.selects }

// JoinList returns the nested join sub-queries in order.
func (q *Query) JoinList() []*Query { return q.joins }

// WhereExpr returns the composed where expression, nil if absent.
func (q *Query) WhereExpr() any { return q.where }

// HavingExpr returns the composed having expression, nil if absent.
func (q *Query) HavingExpr() any { return q.having }

// OnExpr returns the composed join condition, nil if absent.
func (q *Query) OnExpr() any { return q.on }

// UsingColumn returns the using column name, empty if absent.
func (q *Query) UsingColumn() string { return q.using }

// GroupByColumns returns the grouping columns in order.
func (q *Query) GroupByColumns() []*core.Column { return q.groupBy }

// OrderByItems returns the ordering criteria as Asc/Desc wrappers.
func (q *Query) OrderByItems() []*core.F { return q.orderBy }
