package dialect

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/leapstack-labs/fluentql/pkg/core"
	"github.com/leapstack-labs/fluentql/pkg/query"
)

// Compiler renders queries to SQL text through one dialect's vocabulary.
// It holds only configuration set at construction and is read-only during
// Compile, so one instance may be shared across goroutines.
type Compiler struct {
	d    *Dialect
	opts Options
}

// NewCompiler creates a compiler for the given dialect.
func NewCompiler(d *Dialect, opts ...Option) *Compiler {
	c := &Compiler{d: d}
	for _, opt := range opts {
		opt(&c.opts)
	}
	return c
}

// Compile renders a query and terminates it with the dialect's statement
// end symbol. A sticky builder error on the query is returned before any
// rendering happens.
func (c *Compiler) Compile(q *query.Query) (string, error) {
	if err := q.Err(); err != nil {
		return "", err
	}

	r := &renderer{d: c.d, opts: c.opts, absolute: c.absoluteNames(q)}
	body, err := r.compileQuery(q)
	if err != nil {
		return "", err
	}
	return body + c.d.Symbols.QueryEnd, nil
}

// absoluteNames resolves the column-qualification rule: an explicit option
// wins, otherwise queries spanning more than one target table qualify
// column names to disambiguate them across joins.
func (c *Compiler) absoluteNames(q *query.Query) bool {
	if c.opts.absoluteNames != nil {
		return *c.opts.absoluteNames
	}
	return len(q.Targets()) > 1
}

// Compile renders a query through a named registered dialect.
func Compile(name string, q *query.Query, opts ...Option) (string, error) {
	d, ok := Get(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownDialect, name)
	}
	return NewCompiler(d, opts...).Compile(q)
}

// renderer is the per-call traversal state. The double dispatch lives here:
// queries resolve by command kind, expressions by variant, and everything
// else renders as a reference or constant.
type renderer struct {
	d        *Dialect
	opts     Options
	absolute bool
}

func (r *renderer) dispatch(node any) (string, error) {
	switch n := node.(type) {
	case *query.Query:
		return r.compileQuery(n)
	case *core.F:
		return r.compileFunc(n)
	case *core.Column:
		return r.compileColumnRef(n), nil
	case *core.Table:
		return n.Qualname(), nil
	default:
		return r.compileConstant(n)
	}
}

// kw renders a keyword, honoring the casing options.
func (r *renderer) kw(s string) string {
	if r.opts.AllCaps || r.opts.KeywordsCaps {
		return strings.ToUpper(s)
	}
	return s
}

// op renders an operator, upper-cased only under AllCaps.
func (r *renderer) op(s string) string {
	if r.opts.AllCaps {
		return strings.ToUpper(s)
	}
	return s
}

// fname renders a function name, upper-cased only under AllCaps.
func (r *renderer) fname(s string) string {
	if r.opts.AllCaps {
		return strings.ToUpper(s)
	}
	return s
}

// listSep is the separator for rendered expression lists.
func (r *renderer) listSep() string {
	return r.d.Symbols.ListSeparator + " "
}

// joinSections assembles statement sections in their fixed order.
func (r *renderer) joinSections(sections []string) string {
	if !r.opts.BreakLineOnSections {
		return strings.Join(sections, " ")
	}
	sep := "\n"
	if r.opts.Indent {
		sep = "\n  "
	}
	return strings.Join(sections, sep)
}

func (r *renderer) compileColumnRef(c *core.Column) string {
	if r.absolute && c.Table() != nil {
		return c.Table().Name() + "." + c.Name()
	}
	return c.Name()
}

func (r *renderer) compileConstant(v any) (string, error) {
	switch val := v.(type) {
	case string:
		q := r.d.Symbols.StringQuote
		return q + strings.ReplaceAll(val, q, q+q) + q, nil
	case bool:
		if val {
			return r.kw(r.d.Keywords.True), nil
		}
		return r.kw(r.d.Keywords.False), nil
	case nil:
		return r.kw(r.d.Keywords.Null), nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32), nil
	case time.Time:
		q := r.d.Symbols.StringQuote
		return q + val.Format("2006-01-02 15:04:05") + q, nil
	default:
		return fmt.Sprintf("%v", val), nil
	}
}
