package dialect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/fluentql/pkg/core"
	"github.com/leapstack-labs/fluentql/pkg/dialect"
	"github.com/leapstack-labs/fluentql/pkg/dialects/ansi"
	"github.com/leapstack-labs/fluentql/pkg/query"
)

var orders = core.NewTable("orders")

func compileWith(t *testing.T, q *query.Query, opts ...dialect.Option) string {
	t.Helper()
	sql, err := dialect.NewCompiler(ansi.ANSI, opts...).Compile(q)
	require.NoError(t, err)
	return sql
}

func TestCompileReturnsBuilderError(t *testing.T) {
	q := query.Select("not a column").From(orders)
	_, err := dialect.NewCompiler(ansi.ANSI).Compile(q)

	var berr *query.QueryBuilderError
	require.ErrorAs(t, err, &berr)
}

func TestCompileByName(t *testing.T) {
	q := query.Select().From(orders)

	sql, err := dialect.Compile("ansi", q)
	require.NoError(t, err)
	assert.Equal(t, "select * from orders;", sql)

	_, err = dialect.Compile("no-such-flavor", q)
	require.ErrorIs(t, err, dialect.ErrUnknownDialect)
}

func TestCompileIsIdempotent(t *testing.T) {
	q := query.Select().From(orders).Where(orders.C("col1").Gt(10))
	c := dialect.NewCompiler(ansi.ANSI)

	first, err := c.Compile(q)
	require.NoError(t, err)
	second, err := c.Compile(q)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAllCapsOption(t *testing.T) {
	q := query.Select().
		From(orders).
		Where(orders.C("col1").Gt(10).And(orders.C("label").Like("a%")))

	sql := compileWith(t, q, dialect.WithAllCaps())
	assert.Equal(t, "SELECT * FROM orders WHERE col1 > 10 AND label LIKE 'a%';", sql)
}

func TestKeywordsCapsOption(t *testing.T) {
	q := query.Select().
		From(orders).
		Where(orders.C("col1").Gt(10).And(orders.C("label").Like("a%")))

	// Keywords upper-case, operators and function-style names do not.
	sql := compileWith(t, q, dialect.WithKeywordsCaps())
	assert.Equal(t, "SELECT * FROM orders WHERE col1 > 10 and label like 'a%';", sql)
}

func TestBreakLineOnSections(t *testing.T) {
	q := query.Select().From(orders).Where(orders.C("col1").Gt(10)).Fetch(5)

	sql := compileWith(t, q, dialect.WithBreakLineOnSections())
	assert.Equal(t, "select\n*\nfrom orders\nwhere col1 > 10\nlimit 5;", sql)

	sql = compileWith(t, q,
		dialect.WithBreakLineOnSections(),
		dialect.WithIndent(),
	)
	assert.Equal(t, "select\n  *\n  from orders\n  where col1 > 10\n  limit 5;", sql)
}

func TestAbsoluteNamesAutomaticWithJoins(t *testing.T) {
	other := core.NewTable("other")
	q := query.Select().
		From(orders).
		InnerJoin(other, func(j *query.Query) {
			j.On(orders.C("id").Eq(other.C("id")))
		}).
		Where(orders.C("col1").Gt(10))

	sql := compileWith(t, q)
	assert.Equal(t,
		"select * from orders inner join other on orders.id = other.id where orders.col1 > 10;",
		sql)
}

func TestAbsoluteNamesOverride(t *testing.T) {
	q := query.Select(orders.C("col1")).From(orders)

	sql := compileWith(t, q, dialect.WithAbsoluteColumnNames(true))
	assert.Equal(t, "select orders.col1 from orders;", sql)

	// Forcing it off suppresses qualification even across joins.
	other := core.NewTable("other")
	joined := query.Select().
		From(orders).
		InnerJoin(other, func(j *query.Query) {
			j.On(orders.C("id").Eq(other.C("id")))
		})

	sql = compileWith(t, joined, dialect.WithAbsoluteColumnNames(false))
	assert.Equal(t, "select * from orders inner join other on id = id;", sql)
}

func TestConstantRendering(t *testing.T) {
	anyCol := orders.C("c")

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"string quoted", "abc", "select * from orders where c = 'abc';"},
		{"quote doubled", "it's", "select * from orders where c = 'it''s';"},
		{"true keyword", true, "select * from orders where c = true;"},
		{"int", 42, "select * from orders where c = 42;"},
		{"int64", int64(42), "select * from orders where c = 42;"},
		{"float", 0.5, "select * from orders where c = 0.5;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := query.Select().From(orders).Where(anyCol.Eq(tt.value))
			assert.Equal(t, tt.want, compileWith(t, q))
		})
	}
}

func TestNullConstant(t *testing.T) {
	q := query.Select().From(orders).Where(core.Equals(orders.C("c"), nil))
	assert.Equal(t, "select * from orders where c = null;", compileWith(t, q))
}

func TestUnsupportedCommandFails(t *testing.T) {
	q := query.Insert()
	_, err := dialect.NewCompiler(ansi.ANSI).Compile(q)

	var cerr *dialect.CompilationError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, err.Error(), "insert")
}
