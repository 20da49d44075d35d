package dialect

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/fluentql/pkg/query"
)

func (r *renderer) compileQuery(q *query.Query) (string, error) {
	switch q.Command() {
	case query.CommandSelect:
		return r.compileSelect(q)
	case query.CommandDelete:
		return r.compileDelete(q)
	case query.CommandJoin:
		return r.compileJoin(q)
	default:
		return "", compileErrorf("cannot compile a %s query", q.Command())
	}
}

// compileSelect assembles the fixed section order:
// select [distinct] targets from target [joins] [where] [group by]
// [having] [order by] [limit] [offset].
func (r *renderer) compileSelect(q *query.Query) (string, error) {
	targets := q.Targets()
	if len(targets) == 0 {
		return "", compileErrorf("select query must have a target")
	}

	var sections []string

	selectKw := r.kw(r.d.Keywords.Select)
	if q.HasOption(query.OptionDistinct) {
		selectKw += " " + r.kw(r.d.Keywords.Distinct)
	}
	sections = append(sections, selectKw)

	selectList, err := r.compileSelectList(q.SelectList())
	if err != nil {
		return "", err
	}
	sections = append(sections, selectList)

	from, err := r.dispatch(targets[0])
	if err != nil {
		return "", err
	}
	sections = append(sections, r.kw(r.d.Keywords.From)+" "+from)

	for _, join := range q.JoinList() {
		rendered, err := r.compileJoin(join)
		if err != nil {
			return "", err
		}
		sections = append(sections, rendered)
	}

	if cond := q.WhereExpr(); cond != nil {
		rendered, err := r.dispatch(cond)
		if err != nil {
			return "", err
		}
		sections = append(sections, r.kw(r.d.Keywords.Where)+" "+rendered)
	}

	if groupBy := q.GroupByColumns(); len(groupBy) > 0 {
		parts := make([]string, len(groupBy))
		for i, col := range groupBy {
			parts[i] = r.compileColumnRef(col)
		}
		sections = append(sections, r.kw(r.d.Keywords.GroupBy)+" "+strings.Join(parts, r.listSep()))
	}

	if cond := q.HavingExpr(); cond != nil {
		rendered, err := r.dispatch(cond)
		if err != nil {
			return "", err
		}
		sections = append(sections, r.kw(r.d.Keywords.Having)+" "+rendered)
	}

	if orderBy := q.OrderByItems(); len(orderBy) > 0 {
		parts := make([]string, len(orderBy))
		for i, item := range orderBy {
			rendered, err := r.compileFunc(item)
			if err != nil {
				return "", err
			}
			parts[i] = rendered
		}
		sections = append(sections, r.kw(r.d.Keywords.OrderBy)+" "+strings.Join(parts, r.listSep()))
	}

	if q.HasOption(query.OptionFetch) {
		sections = append(sections, r.kw(r.d.Keywords.Limit)+" "+renderCount(q.Option(query.OptionFetch)))
	}
	if q.HasOption(query.OptionSkip) {
		sections = append(sections, r.kw(r.d.Keywords.Offset)+" "+renderCount(q.Option(query.OptionSkip)))
	}

	return r.joinSections(sections), nil
}

func (r *renderer) compileSelectList(exprs []any) (string, error) {
	if exprs == nil {
		return r.kw(r.d.Keywords.Star), nil
	}
	parts := make([]string, len(exprs))
	for i, expr := range exprs {
		rendered, err := r.dispatch(expr)
		if err != nil {
			return "", err
		}
		parts[i] = rendered
	}
	return strings.Join(parts, r.listSep()), nil
}

func (r *renderer) compileDelete(q *query.Query) (string, error) {
	targets := q.Targets()
	if len(targets) == 0 {
		return "", compileErrorf("delete query must have a target")
	}

	target, err := r.dispatch(targets[0])
	if err != nil {
		return "", err
	}
	sections := []string{r.kw(r.d.Keywords.Delete), r.kw(r.d.Keywords.From) + " " + target}

	if cond := q.WhereExpr(); cond != nil {
		rendered, err := r.dispatch(cond)
		if err != nil {
			return "", err
		}
		sections = append(sections, r.kw(r.d.Keywords.Where)+" "+rendered)
	}

	return r.joinSections(sections), nil
}

func (r *renderer) compileJoin(join *query.Query) (string, error) {
	joinType, _ := join.Option(query.OptionJoinType).(string)

	var joinKw string
	switch joinType {
	case query.JoinInner:
		joinKw = r.d.Keywords.InnerJoin
	case query.JoinOuter:
		joinKw = r.d.Keywords.OuterJoin
	case query.JoinLeft:
		joinKw = r.d.Keywords.LeftJoin
	case query.JoinRight:
		joinKw = r.d.Keywords.RightJoin
	case query.JoinCross:
		joinKw = r.d.Keywords.CrossJoin
	default:
		return "", compileErrorf("invalid join kind: %q", joinType)
	}

	targets := join.Targets()
	target, err := r.dispatch(targets[len(targets)-1])
	if err != nil {
		return "", err
	}
	compiled := r.kw(joinKw) + " " + target

	on := join.OnExpr()
	using := join.UsingColumn()
	if on != nil && using != "" {
		return "", compileErrorf("cannot have both using and on in a join")
	}

	switch {
	case on != nil:
		rendered, err := r.dispatch(on)
		if err != nil {
			return "", err
		}
		compiled += " " + r.kw(r.d.Keywords.On) + " " + rendered
	case using != "":
		compiled += " " + r.kw(r.d.Keywords.Using) + " (" + using + ")"
	}

	return compiled, nil
}

func renderCount(v any) string {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}
