package script

import (
	"fmt"

	"go.starlark.net/starlark"

	"github.com/leapstack-labs/fluentql/pkg/core"
	"github.com/leapstack-labs/fluentql/pkg/dialect"
	"github.com/leapstack-labs/fluentql/pkg/query"
)

// Query wraps the fluent builder. Every clause method mutates the
// underlying query and returns the same wrapper, so scripts chain calls the
// way Go callers do. Builder errors stay sticky and surface at compile.
type Query struct {
	q *query.Query
}

var (
	_ starlark.Value    = (*Query)(nil)
	_ starlark.HasAttrs = (*Query)(nil)
)

// NewQuery wraps a builder as a Starlark value.
func NewQuery(q *query.Query) *Query { return &Query{q: q} }

// Unwrap returns the underlying builder.
func (q *Query) Unwrap() *query.Query { return q.q }

func (q *Query) String() string        { return fmt.Sprintf("query(%s)", q.q.Command()) }
func (q *Query) Type() string          { return "query" }
func (q *Query) Freeze()               {}
func (q *Query) Truth() starlark.Bool  { return starlark.Bool(q.q.Err() == nil) }
func (q *Query) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: query") }

func (q *Query) Attr(name string) (starlark.Value, error) {
	return builtinAttr(q, name, queryMethods)
}

func (q *Query) AttrNames() []string { return methodNames(queryMethods) }

// condition converts a Starlark value to a where/having/on condition: an
// expression, a boolean column, or a bool constant. Callables are handled
// by the caller, which needs the thread to invoke them.
func condition(v starlark.Value) (any, error) {
	switch val := v.(type) {
	case *Expr:
		return val.f, nil
	case *Column:
		return val.col, nil
	case starlark.Bool:
		return bool(val), nil
	default:
		return nil, fmt.Errorf("cannot use %s as a condition", v.Type())
	}
}

func conditionMethod(apply func(q *query.Query, cond any) *query.Query) builtinMethod {
	return func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var v starlark.Value
		if err := starlark.UnpackArgs(b.Name(), args, kwargs, "cond", &v); err != nil {
			return nil, err
		}
		recv := b.Receiver().(*Query)

		// A callable builds a nested group against a fresh sub-query.
		if fn, ok := v.(starlark.Callable); ok {
			var callErr error
			apply(recv.q, query.GroupFunc(func(sub *query.Query) {
				_, callErr = starlark.Call(thread, fn, starlark.Tuple{&Query{q: sub}}, nil)
			}))
			if callErr != nil {
				return nil, callErr
			}
			return recv, nil
		}

		cond, err := condition(v)
		if err != nil {
			return nil, err
		}
		apply(recv.q, cond)
		return recv, nil
	}
}

func intMethod(apply func(q *query.Query, n int) *query.Query) builtinMethod {
	return func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var n int
		if err := starlark.UnpackArgs(b.Name(), args, kwargs, "n", &n); err != nil {
			return nil, err
		}
		recv := b.Receiver().(*Query)
		apply(recv.q, n)
		return recv, nil
	}
}

// joinMethod adapts the join family: join(table, on=expr_or_callable,
// using="col"). With neither on nor using the join is a cross join.
func joinMethod(how string) builtinMethod {
	return func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var (
			target *Table
			on     starlark.Value
			using  string
		)
		if err := starlark.UnpackArgs(b.Name(), args, kwargs,
			"table", &target, "on?", &on, "using?", &using); err != nil {
			return nil, err
		}

		var (
			onFn    func(*query.Query)
			callErr error
		)
		switch {
		case using != "":
			if on != nil && on != starlark.None {
				return nil, fmt.Errorf("%s: on and using are mutually exclusive", b.Name())
			}
			onFn = func(j *query.Query) { j.Using(using) }
		case on == nil || on == starlark.None:
			onFn = nil
		default:
			if fn, ok := on.(starlark.Callable); ok {
				onFn = func(j *query.Query) {
					_, callErr = starlark.Call(thread, fn, starlark.Tuple{&Query{q: j}}, nil)
				}
				break
			}
			cond, err := condition(on)
			if err != nil {
				return nil, err
			}
			onFn = func(j *query.Query) { j.On(cond) }
		}

		recv := b.Receiver().(*Query)
		recv.q.Join(target.t, onFn, how)
		if callErr != nil {
			return nil, callErr
		}
		return recv, nil
	}
}

var queryMethods = map[string]builtinMethod{
	"from_": func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var target *Table
		if err := starlark.UnpackArgs(b.Name(), args, kwargs, "table", &target); err != nil {
			return nil, err
		}
		recv := b.Receiver().(*Query)
		recv.q.From(target.t)
		return recv, nil
	},

	"where":      conditionMethod((*query.Query).Where),
	"and_where":  conditionMethod((*query.Query).AndWhere),
	"or_where":   conditionMethod((*query.Query).OrWhere),
	"having":     conditionMethod((*query.Query).Having),
	"and_having": conditionMethod((*query.Query).AndHaving),
	"or_having":  conditionMethod((*query.Query).OrHaving),
	"on":         conditionMethod((*query.Query).On),
	"and_on":     conditionMethod((*query.Query).AndOn),
	"or_on":      conditionMethod((*query.Query).OrOn),

	"using": func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var column string
		if err := starlark.UnpackArgs(b.Name(), args, kwargs, "column", &column); err != nil {
			return nil, err
		}
		recv := b.Receiver().(*Query)
		recv.q.Using(column)
		return recv, nil
	},

	"inner_join": joinMethod(query.JoinInner),
	"outer_join": joinMethod(query.JoinOuter),
	"left_join":  joinMethod(query.JoinLeft),
	"right_join": joinMethod(query.JoinRight),
	"cross_join": func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var target *Table
		if err := starlark.UnpackArgs(b.Name(), args, kwargs, "table", &target); err != nil {
			return nil, err
		}
		recv := b.Receiver().(*Query)
		recv.q.CrossJoin(target.t)
		return recv, nil
	},

	"group_by": func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if len(kwargs) > 0 {
			return nil, fmt.Errorf("%s: unexpected keyword arguments", b.Name())
		}
		columns := make([]*core.Column, len(args))
		for i, arg := range args {
			col, ok := arg.(*Column)
			if !ok {
				return nil, fmt.Errorf("%s: expected column, got %s", b.Name(), arg.Type())
			}
			columns[i] = col.col
		}
		recv := b.Receiver().(*Query)
		recv.q.GroupBy(columns...)
		return recv, nil
	},

	"order_by": func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if len(kwargs) > 0 {
			return nil, fmt.Errorf("%s: unexpected keyword arguments", b.Name())
		}
		criteria := make([]any, len(args))
		for i, arg := range args {
			switch a := arg.(type) {
			case *Column:
				criteria[i] = a.col
			case *Expr:
				criteria[i] = a.f
			default:
				return nil, fmt.Errorf("%s: expected column or ordering, got %s", b.Name(), arg.Type())
			}
		}
		recv := b.Receiver().(*Query)
		recv.q.OrderBy(criteria...)
		return recv, nil
	},

	"fetch": intMethod((*query.Query).Fetch),
	"skip":  intMethod((*query.Query).Skip),

	"distinct": func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
			return nil, err
		}
		recv := b.Receiver().(*Query)
		recv.q.Distinct()
		return recv, nil
	},

	"compile": func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var (
			name         = "ansi"
			allCaps      bool
			keywordsCaps bool
			breakLines   bool
			indent       bool
		)
		if err := starlark.UnpackArgs(b.Name(), args, kwargs,
			"dialect?", &name,
			"all_caps?", &allCaps,
			"keywords_caps?", &keywordsCaps,
			"break_lines?", &breakLines,
			"indent?", &indent); err != nil {
			return nil, err
		}

		var opts []dialect.Option
		if allCaps {
			opts = append(opts, dialect.WithAllCaps())
		}
		if keywordsCaps {
			opts = append(opts, dialect.WithKeywordsCaps())
		}
		if breakLines {
			opts = append(opts, dialect.WithBreakLineOnSections())
		}
		if indent {
			opts = append(opts, dialect.WithIndent())
		}

		recv := b.Receiver().(*Query)
		sql, err := dialect.Compile(name, recv.q, opts...)
		if err != nil {
			return nil, err
		}
		return starlark.String(sql), nil
	},

	"err": func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
			return nil, err
		}
		recv := b.Receiver().(*Query)
		if err := recv.q.Err(); err != nil {
			return starlark.String(err.Error()), nil
		}
		return starlark.None, nil
	},
}
