// Package core defines the shared language of the FluentQL system.
//
// This package contains:
//   - The kind lattice used for expression validation (Kind, ValueKind)
//   - The expression model (F, Op) with eager arity and kind checking
//   - Schema value objects (Table, Column)
//   - Construction-time error types (ArityError, KindMismatchError)
//
// The Golden Rule: pkg/core imports ONLY the standard library.
// All other packages depend on core, not the reverse.
package core
