// Package query provides the fluent statement builder.
//
// A Query is created by a command-specific factory (Select, Delete, ...),
// mutated through chained builder calls that each return the same instance,
// and rendered by a dialect compiler. Illegal builder usage records a sticky
// *QueryBuilderError: the first error wins, later calls are no-ops, and the
// error is surfaced both by Err and by Compile.
//
// A Query is owned by one caller; concurrent mutation of the same instance
// is not synchronized. Compilation is read-only, so a built query may be
// compiled repeatedly and under multiple dialects.
package query
