package postgres_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/fluentql/pkg/core"
	"github.com/leapstack-labs/fluentql/pkg/dialect"
	"github.com/leapstack-labs/fluentql/pkg/dialects/postgres"
	"github.com/leapstack-labs/fluentql/pkg/query"
)

func TestOperatorOverrides(t *testing.T) {
	table := core.NewTable("t")

	q := query.Select().From(table).Where(table.C("a").Ne(1))
	sql, err := dialect.NewCompiler(postgres.Postgres).Compile(q)
	require.NoError(t, err)
	assert.Equal(t, "select * from t where a != 1;", sql)

	assert.Equal(t, "#", postgres.Postgres.Operators.Xor)
}

func TestInheritsGenericVocabulary(t *testing.T) {
	assert.Equal(t, "select", postgres.Postgres.Keywords.Select)
	assert.Equal(t, ";", postgres.Postgres.Symbols.QueryEnd)
}

func TestRegistered(t *testing.T) {
	d, ok := dialect.Get("postgres")
	require.True(t, ok)
	assert.Same(t, postgres.Postgres, d)
}
