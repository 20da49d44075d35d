// Package postgres provides the PostgreSQL dialect: the generic vocabulary
// with PostgreSQL operator spellings.
package postgres

import (
	"github.com/leapstack-labs/fluentql/pkg/dialect"
	"github.com/leapstack-labs/fluentql/pkg/dialects/ansi"
)

func init() {
	dialect.Register(Postgres)
}

// Postgres extends the generic dialect.
var Postgres = newPostgres()

func newPostgres() *dialect.Dialect {
	d := ansi.ANSI.Clone("postgres")
	// PostgreSQL has no boolean xor keyword; # is the bitwise operator.
	d.Operators.NotEqual = "!="
	d.Operators.Xor = "#"
	return d
}
