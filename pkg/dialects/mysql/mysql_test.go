package mysql_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/fluentql/pkg/core"
	"github.com/leapstack-labs/fluentql/pkg/dialect"
	"github.com/leapstack-labs/fluentql/pkg/dialects/mysql"
	"github.com/leapstack-labs/fluentql/pkg/query"
)

func TestNotEqualSpelling(t *testing.T) {
	table := core.NewTable("t")

	q := query.Select().From(table).Where(table.C("a").Ne(1))
	sql, err := dialect.NewCompiler(mysql.MySQL).Compile(q)
	require.NoError(t, err)
	assert.Equal(t, "select * from t where a != 1;", sql)
}

func TestInheritsGenericVocabulary(t *testing.T) {
	assert.Equal(t, "limit", mysql.MySQL.Keywords.Limit)
	assert.Equal(t, "xor", mysql.MySQL.Operators.Xor)
}

func TestRegistered(t *testing.T) {
	d, ok := dialect.Get("mysql")
	require.True(t, ok)
	assert.Same(t, mysql.MySQL, d)
}
