package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/leapstack-labs/fluentql/pkg/dialects/ansi"
	_ "github.com/leapstack-labs/fluentql/pkg/dialects/postgres"
)

func run(t *testing.T, src string) *Context {
	t.Helper()
	ctx := NewContext("ansi")
	require.NoError(t, ctx.RunSource("test.star", src))
	return ctx
}

func TestEmitSimpleSelect(t *testing.T) {
	ctx := run(t, `
t = ql.table("orders")
ql.emit("all_orders", ql.select().from_(t))
`)

	results := ctx.Results()
	require.Len(t, results, 1)
	assert.Equal(t, "all_orders", results[0].Name)
	assert.Equal(t, "select * from orders;", results[0].SQL)
}

func TestColumnMethodsAndOperators(t *testing.T) {
	ctx := run(t, `
t = ql.table("orders")
q = ql.select().from_(t).where((t["amount"] + 10).gt(20))
ql.emit("adjusted", q)
`)

	results := ctx.Results()
	require.Len(t, results, 1)
	assert.Equal(t, "select * from orders where amount + 10 > 20;", results[0].SQL)
}

func TestReversedOperandOperator(t *testing.T) {
	ctx := run(t, `
t = ql.table("orders")
ql.emit("r", ql.select().from_(t).where((10 + t["amount"]).lt(100)))
`)

	assert.Equal(t, "select * from orders where 10 + amount < 100;", ctx.Results()[0].SQL)
}

func TestAggregateQuery(t *testing.T) {
	ctx := run(t, `
t = ql.table("orders", columns={"amount": "number", "region": "string"})
q = (ql.select(t["region"], t["amount"].sum().as_("total"))
    .from_(t)
    .group_by(t["region"])
    .having(t["amount"].sum().gt(100))
    .order_by(t["region"]))
ql.emit("regional_totals", q)
`)

	assert.Equal(t,
		"select region, sum(amount) as total from orders group by region having sum(amount) > 100 order by region asc;",
		ctx.Results()[0].SQL)
}

func TestGroupCallback(t *testing.T) {
	ctx := run(t, `
t = ql.table("orders")
q = (ql.select()
    .from_(t)
    .where(t["state"].eq("open"))
    .and_where(lambda g: g.where(t["region"].eq("emea")).or_where(t["region"].eq("apac"))))
ql.emit("open_regional", q)
`)

	assert.Equal(t,
		"select * from orders where state = 'open' and (region = 'emea' or region = 'apac');",
		ctx.Results()[0].SQL)
}

func TestJoinWithOnExpression(t *testing.T) {
	ctx := run(t, `
a = ql.table("orders")
b = ql.table("customers")
q = ql.select().from_(a).inner_join(b, on=a["customer_id"].eq(b["id"]))
ql.emit("joined", q)
`)

	assert.Equal(t,
		"select * from orders inner join customers on orders.customer_id = customers.id;",
		ctx.Results()[0].SQL)
}

func TestJoinWithUsing(t *testing.T) {
	ctx := run(t, `
a = ql.table("orders")
b = ql.table("customers")
ql.emit("u", ql.select().from_(a).left_join(b, using="customer_id"))
`)

	assert.Equal(t,
		"select * from orders left join customers using (customer_id);",
		ctx.Results()[0].SQL)
}

func TestJoinWithCallback(t *testing.T) {
	ctx := run(t, `
a = ql.table("orders")
b = ql.table("customers")
q = ql.select().from_(a).inner_join(b, on=lambda j: j.on(a["customer_id"].eq(b["id"])).and_on(b["active"].eq(True)))
ql.emit("cb", q)
`)

	assert.Equal(t,
		"select * from orders inner join customers on orders.customer_id = customers.id and customers.active = true;",
		ctx.Results()[0].SQL)
}

func TestDeleteAndDialectOverride(t *testing.T) {
	ctx := run(t, `
t = ql.table("orders")
ql.emit("purge", ql.delete().from_(t).where(t["age"].ne(0)), dialect="postgres")
`)

	assert.Equal(t, "delete from orders where age != 0;", ctx.Results()[0].SQL)
}

func TestCompileMethod(t *testing.T) {
	ctx := run(t, `
t = ql.table("orders")
sql = ql.select().from_(t).compile(dialect="ansi", all_caps=True)
ql.emit("check", ql.select().from_(t))
fail_unless = sql == "SELECT * FROM orders;"
if not fail_unless:
    fail("unexpected sql: " + sql)
`)
	require.Len(t, ctx.Results(), 1)
}

func TestDialectsBuiltin(t *testing.T) {
	run(t, `
names = ql.dialects()
if "ansi" not in names:
    fail("ansi missing from " + str(names))
`)
}

func TestSchemaViolationFailsScript(t *testing.T) {
	ctx := NewContext("ansi")
	err := ctx.RunSource("bad.star", `
t = ql.table("orders", columns={"amount": "number"})
x = t["missing"]
`)
	var serr *ScriptError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, err.Error(), "missing")
}

func TestBuilderErrorSurfacesAtEmit(t *testing.T) {
	ctx := NewContext("ansi")
	err := ctx.RunSource("bad.star", `
t = ql.table("orders")
u = ql.table("other")
ql.emit("x", ql.select().from_(t).from_(u))
`)
	var serr *ScriptError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, err.Error(), "target already set")
}

func TestKindMismatchFailsScript(t *testing.T) {
	ctx := NewContext("ansi")
	err := ctx.RunSource("bad.star", `
t = ql.table("orders", columns={"label": "string"})
x = t["label"] + 10
`)
	require.Error(t, err)
}

func TestUnknownColumnKind(t *testing.T) {
	ctx := NewContext("ansi")
	err := ctx.RunSource("bad.star", `
t = ql.table("orders", columns={"x": "jsonb"})
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jsonb")
}

func TestDefaultDialectFallback(t *testing.T) {
	ctx := NewContext("")
	assert.Equal(t, "ansi", ctx.Dialect())
}
