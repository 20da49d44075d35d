package core

import (
	"fmt"
	"strings"
)

// ArityError reports an expression constructed with the wrong number of
// arguments.
type ArityError struct {
	Op    Op
	Want  int
	Found int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s: expected %d argument(s), found %d", e.Op, e.Want, e.Found)
}

// KindMismatchError reports an expression argument whose resolved kind is
// incompatible with the declared kind for its position, or a generic group
// whose arguments share no common kind.
type KindMismatchError struct {
	Op       Op
	Position int    // argument index, -1 for a generic-group failure
	Want     string // expected kind (or description of the constraint)
	Found    string // resolved kind(s)
}

func (e *KindMismatchError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("%s: arguments expected to share a kind, found %s", e.Op, e.Found)
	}
	return fmt.Sprintf("%s: argument %d: expected %s, found %s", e.Op, e.Position, e.Want, e.Found)
}

func genericMismatch(op Op, kinds []Kind) *KindMismatchError {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return &KindMismatchError{Op: op, Position: -1, Found: strings.Join(names, ", ")}
}
