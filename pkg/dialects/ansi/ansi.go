// Package ansi provides the base generic SQL dialect.
//
// Its vocabulary targets a generic ANSI-like SQL flavor and serves as the
// foundation for the other dialects, which clone it and override individual
// entries.
package ansi

import (
	"github.com/leapstack-labs/fluentql/pkg/dialect"
)

func init() {
	dialect.Register(ANSI)
}

// ANSI is the base generic SQL dialect.
var ANSI = &dialect.Dialect{
	Name: "ansi",
	Keywords: dialect.Keywords{
		Select:   "select",
		Distinct: "distinct",
		From:     "from",
		As:       "as",
		Where:    "where",
		Star:     "*",

		GroupBy: "group by",
		Having:  "having",
		OrderBy: "order by",
		Limit:   "limit",
		Offset:  "offset",

		Delete: "delete",

		Join:      "join",
		LeftJoin:  "left join",
		RightJoin: "right join",
		InnerJoin: "inner join",
		OuterJoin: "outer join",
		CrossJoin: "join",
		Using:     "using",
		On:        "on",

		True:  "true",
		False: "false",
		Null:  "null",
		Asc:   "asc",
		Desc:  "desc",
	},
	Operators: dialect.Operators{
		Add:                "+",
		Subtract:           "-",
		Multiply:           "*",
		Divide:             "/",
		Modulo:             "%",
		And:                "and",
		Or:                 "or",
		Xor:                "xor",
		Not:                "not",
		Equal:              "=",
		NotEqual:           "<>",
		LessThan:           "<",
		LessThanOrEqual:    "<=",
		GreaterThan:        ">",
		GreaterThanOrEqual: ">=",
		In:                 "in",
	},
	Names: dialect.Names{
		Max:  "max",
		Min:  "min",
		Sum:  "sum",
		Like: "like",
	},
	Symbols: dialect.Symbols{
		ListSeparator: ",",
		QueryEnd:      ";",
		StringQuote:   "'",
	},
}
