package core

import "time"

// Kind is the semantic category of a value or of an expression's result.
// It is deliberately a flat lattice under Any: two distinct concrete kinds
// never share a narrower common kind.
type Kind uint8

// Kind constants for SQL value categories.
const (
	KindAny Kind = iota
	KindBoolean
	KindNumber
	KindString
	KindDate
	KindTime
	KindDateTime
	KindNull
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindAny:
		return "any"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	case KindDateTime:
		return "datetime"
	case KindNull:
		return "null"
	default:
		return "unknown"
	}
}

// ValueKind is the resolved kind of an operand: its element kind plus
// whether it is column-valued (a collection) or a scalar constant.
type ValueKind struct {
	Elem       Kind
	Collection bool
}

// Scalar reports whether the value is a scalar constant.
func (v ValueKind) Scalar() bool { return !v.Collection }

// String returns "collection(elem)" or the bare element kind name.
func (v ValueKind) String() string {
	if v.Collection {
		return "collection(" + v.Elem.String() + ")"
	}
	return v.Elem.String()
}

// Unify returns the narrowest common kind of a and b. Any and Null unify
// with everything; otherwise the kinds must be equal. The second return
// value is false when no common kind exists.
func Unify(a, b Kind) (Kind, bool) {
	switch {
	case a == b:
		return a, true
	case a == KindAny || a == KindNull:
		return b, true
	case b == KindAny || b == KindNull:
		return a, true
	default:
		return KindAny, false
	}
}

// kindCompatible reports whether an operand of kind `given` can occupy an
// argument position declared as `expected`.
func kindCompatible(given, expected Kind) bool {
	_, ok := Unify(given, expected)
	return ok
}

// KindOf resolves the ValueKind of an operand: a sub-expression contributes
// its declared return kind, a column contributes a collection of its element
// kind, and Go literals map onto scalar kinds. The second return value is
// false for operand types the model does not understand.
func KindOf(arg any) (ValueKind, bool) {
	switch v := arg.(type) {
	case *F:
		return v.kind, true
	case *Column:
		return ValueKind{Elem: v.kind, Collection: true}, true
	case bool:
		return ValueKind{Elem: KindBoolean}, true
	case string:
		return ValueKind{Elem: KindString}, true
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return ValueKind{Elem: KindNumber}, true
	case time.Time:
		return ValueKind{Elem: KindDateTime}, true
	case nil:
		return ValueKind{Elem: KindNull}, true
	default:
		return ValueKind{}, false
	}
}
