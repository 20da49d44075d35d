package query

import "github.com/leapstack-labs/fluentql/pkg/core"

// Join kind tags stored under the join_type option of a join sub-query.
const (
	JoinInner = "inner"
	JoinOuter = "outer"
	JoinLeft  = "left"
	JoinRight = "right"
	JoinCross = "cross"
)

var joinKinds = map[string]struct{}{
	JoinInner: {},
	JoinOuter: {},
	JoinLeft:  {},
	JoinRight: {},
	JoinCross: {},
}

// Join appends target to the target list and creates a nested JOIN
// sub-query inheriting the cumulative targets. The on callback populates
// the join condition through On/AndOn/OrOn/Using; a nil callback forces
// cross-join semantics regardless of how.
func (q *Query) Join(target *core.Table, on func(*Query), how string) *Query {
	if q.err != nil {
		return q
	}
	if q.cmd != CommandSelect {
		return q.fail(builderErrorf("join: only valid for a select query, not %s", q.cmd))
	}
	if _, ok := joinKinds[how]; !ok {
		return q.fail(builderErrorf("join: unknown join kind %q", how))
	}
	if on == nil {
		how = JoinCross
	}

	q.targets = append(q.targets, target)

	join := newQuery(CommandJoin)
	join.targets = q.targets
	join.opts[OptionJoinType] = how
	if on != nil {
		on(join)
		if join.err != nil {
			return q.fail(join.err)
		}
	}
	q.joins = append(q.joins, join)
	return q
}

// InnerJoin is Join with inner semantics.
func (q *Query) InnerJoin(target *core.Table, on func(*Query)) *Query {
	return q.Join(target, on, JoinInner)
}

// OuterJoin is Join with outer semantics.
func (q *Query) OuterJoin(target *core.Table, on func(*Query)) *Query {
	return q.Join(target, on, JoinOuter)
}

// LeftJoin is Join with left semantics.
func (q *Query) LeftJoin(target *core.Table, on func(*Query)) *Query {
	return q.Join(target, on, JoinLeft)
}

// RightJoin is Join with right semantics.
func (q *Query) RightJoin(target *core.Table, on func(*Query)) *Query {
	return q.Join(target, on, JoinRight)
}

// CrossJoin is Join without a join condition.
func (q *Query) CrossJoin(target *core.Table) *Query {
	return q.Join(target, nil, JoinCross)
}

// On composes a join condition under AND. Valid only on a join sub-query.
func (q *Query) On(cond any) *Query { return q.onWith(cond, core.OpBitwiseAnd) }

// AndOn composes a join condition under AND.
func (q *Query) AndOn(cond any) *Query { return q.onWith(cond, core.OpBitwiseAnd) }

// OrOn composes a join condition under OR.
func (q *Query) OrOn(cond any) *Query { return q.onWith(cond, core.OpBitwiseOr) }

func (q *Query) onWith(cond any, boolOp core.Op) *Query {
	if q.err != nil {
		return q
	}
	if q.cmd != CommandJoin && q.cmd != CommandOn {
		return q.fail(builderErrorf("on: only valid on a join sub-query, not a %s query", q.cmd))
	}
	return q.compose(&q.on, CommandOn, cond, boolOp, "on")
}

// Using sets the join column. Valid only on a join sub-query and mutually
// exclusive with On; setting it twice is an error. An On composed after
// Using is caught by the compiler as a conflict.
func (q *Query) Using(column string) *Query {
	if q.err != nil {
		return q
	}
	if q.cmd != CommandJoin {
		return q.fail(builderErrorf("using: only valid on a join sub-query, not a %s query", q.cmd))
	}
	if q.on != nil {
		return q.fail(builderErrorf("using: join condition already set via on"))
	}
	if q.using != "" {
		return q.fail(builderErrorf("using: column already set to %q", q.using))
	}
	q.using = column
	return q
}
