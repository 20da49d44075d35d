// Package mysql provides the MySQL dialect: the generic vocabulary with
// MySQL operator spellings.
package mysql

import (
	"github.com/leapstack-labs/fluentql/pkg/dialect"
	"github.com/leapstack-labs/fluentql/pkg/dialects/ansi"
)

func init() {
	dialect.Register(MySQL)
}

// MySQL extends the generic dialect.
var MySQL = newMySQL()

func newMySQL() *dialect.Dialect {
	d := ansi.ANSI.Clone("mysql")
	d.Operators.NotEqual = "!="
	return d
}
