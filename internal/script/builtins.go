package script

import (
	"fmt"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/leapstack-labs/fluentql/pkg/core"
	"github.com/leapstack-labs/fluentql/pkg/dialect"
	"github.com/leapstack-labs/fluentql/pkg/query"
)

// kindNames maps the kind spellings accepted in table schemas.
var kindNames = map[string]core.Kind{
	"any":      core.KindAny,
	"bool":     core.KindBoolean,
	"boolean":  core.KindBoolean,
	"number":   core.KindNumber,
	"string":   core.KindString,
	"date":     core.KindDate,
	"time":     core.KindTime,
	"datetime": core.KindDateTime,
}

func parseKind(name string) (core.Kind, error) {
	k, ok := kindNames[strings.ToLower(name)]
	if !ok {
		return core.KindAny, fmt.Errorf("unknown column kind %q", name)
	}
	return k, nil
}

// Module builds the ql builtin module bound to this context.
//
// Members: table, select, delete, emit, dialects.
func (c *Context) Module() *starlarkstruct.Module {
	return &starlarkstruct.Module{
		Name: "ql",
		Members: starlark.StringDict{
			"table":    starlark.NewBuiltin("ql.table", c.tableBuiltin),
			"select":   starlark.NewBuiltin("ql.select", c.selectBuiltin),
			"delete":   starlark.NewBuiltin("ql.delete", c.deleteBuiltin),
			"emit":     starlark.NewBuiltin("ql.emit", c.emitBuiltin),
			"dialects": starlark.NewBuiltin("ql.dialects", c.dialectsBuiltin),
		},
	}
}

// ql.table(name, db="", columns=None) declares a table reference. columns
// is an optional dict of column name to kind name; declaring it makes
// unknown column lookups fail.
func (c *Context) tableBuiltin(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		name    string
		db      string
		columns *starlark.Dict
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"name", &name, "db?", &db, "columns?", &columns); err != nil {
		return nil, err
	}

	var opts []core.TableOption
	if db != "" {
		opts = append(opts, core.WithDB(db))
	}
	if columns != nil {
		schema := make(map[string]core.Kind, columns.Len())
		for _, item := range columns.Items() {
			colName, ok := starlark.AsString(item[0])
			if !ok {
				return nil, fmt.Errorf("%s: column name must be a string, got %s", b.Name(), item[0].Type())
			}
			kindName, ok := starlark.AsString(item[1])
			if !ok {
				return nil, fmt.Errorf("%s: column kind must be a string, got %s", b.Name(), item[1].Type())
			}
			kind, err := parseKind(kindName)
			if err != nil {
				return nil, fmt.Errorf("%s: column %q: %w", b.Name(), colName, err)
			}
			schema[colName] = kind
		}
		opts = append(opts, core.WithColumns(schema))
	}

	return NewTable(core.NewTable(name, opts...)), nil
}

// ql.select(*exprs) starts a SELECT query; with no arguments the select
// list is the star wildcard.
func (c *Context) selectBuiltin(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) > 0 {
		return nil, fmt.Errorf("%s: unexpected keyword arguments", b.Name())
	}
	exprs := make([]any, len(args))
	for i, arg := range args {
		switch a := arg.(type) {
		case *Column:
			exprs[i] = a.col
		case *Expr:
			exprs[i] = a.f
		default:
			return nil, fmt.Errorf("%s: expected column or expression, got %s", b.Name(), arg.Type())
		}
	}
	return NewQuery(query.Select(exprs...)), nil
}

// ql.delete() starts a DELETE query.
func (c *Context) deleteBuiltin(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}
	return NewQuery(query.Delete()), nil
}

// ql.emit(name, query, dialect=None) renders a query under the context's
// dialect (or an explicit override) and records the result.
func (c *Context) emitBuiltin(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		name        string
		q           *Query
		dialectName string
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"name", &name, "query", &q, "dialect?", &dialectName); err != nil {
		return nil, err
	}
	if dialectName == "" {
		dialectName = c.dialectName
	}

	sql, err := dialect.Compile(dialectName, q.q, c.opts...)
	if err != nil {
		return nil, fmt.Errorf("emit %q: %w", name, err)
	}
	c.record(Rendered{Name: name, SQL: sql})
	return starlark.None, nil
}

// ql.dialects() lists the registered dialect names.
func (c *Context) dialectsBuiltin(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}
	names := dialect.List()
	values := make([]starlark.Value, len(names))
	for i, n := range names {
		values[i] = starlark.String(n)
	}
	return starlark.NewList(values), nil
}
