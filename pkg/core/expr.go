package core

import "fmt"

// Op identifies an expression variant.
type Op uint8

// Op constants for the expression variants.
const (
	OpCustom Op = iota // generic named function

	// Arithmetic
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpModulo

	// Boolean combinators
	OpBitwiseAnd
	OpBitwiseOr
	OpBitwiseXor
	OpNot

	// Comparison
	OpEquals
	OpNotEqual
	OpLessThan
	OpLessThanOrEqual
	OpGreaterThan
	OpGreaterThanOrEqual
	OpLike
	OpIn

	// Structural
	OpAs
	OpTableStar
	OpStar

	// Aggregate
	OpMax
	OpMin
	OpSum

	// Ordering
	OpAsc
	OpDesc
)

var opNames = map[Op]string{
	OpCustom:             "custom",
	OpAdd:                "add",
	OpSubtract:           "subtract",
	OpMultiply:           "multiply",
	OpDivide:             "divide",
	OpModulo:             "modulo",
	OpBitwiseAnd:         "bitwiseand",
	OpBitwiseOr:          "bitwiseor",
	OpBitwiseXor:         "bitwisexor",
	OpNot:                "not",
	OpEquals:             "equals",
	OpNotEqual:           "notequal",
	OpLessThan:           "lessthan",
	OpLessThanOrEqual:    "lessthanorequal",
	OpGreaterThan:        "greaterthan",
	OpGreaterThanOrEqual: "greaterthanorequal",
	OpLike:               "like",
	OpIn:                 "in",
	OpAs:                 "as",
	OpTableStar:          "tablestar",
	OpStar:               "star",
	OpMax:                "max",
	OpMin:                "min",
	OpSum:                "sum",
	OpAsc:                "asc",
	OpDesc:               "desc",
}

// String returns the lowercase variant name.
func (op Op) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return "unknown"
}

// F is a function expression: an immutable node in the query AST holding an
// ordered argument tuple and a resolved return kind. Construction validates
// arity and kinds eagerly, so a tree, once built, is known-valid.
type F struct {
	op   Op
	name string // custom function name, set only for OpCustom
	args []any  // *F, *Column, *Table or literal constants
	kind ValueKind
}

// Op returns the expression variant.
func (f *F) Op() Op { return f.op }

// FuncName returns the rendering name for a custom function.
func (f *F) FuncName() string { return f.name }

// Kind returns the resolved return kind.
func (f *F) Kind() ValueKind { return f.kind }

// Args returns the ordered argument tuple. The returned slice must be
// treated as read-only.
func (f *F) Args() []any { return f.args }

// NArgs returns the argument count.
func (f *F) NArgs() int { return len(f.args) }

// Arg returns the i-th argument.
func (f *F) Arg(i int) any { return f.args[i] }

// ---------- Validation ----------

// resultRule selects how a variant's return kind is computed.
type resultRule uint8

const (
	// resultBoolean yields a boolean, column-valued if any argument is.
	resultBoolean resultRule = iota
	// resultUnified yields the unified element kind of the arguments,
	// column-valued if any argument is.
	resultUnified
	// resultElem yields the element kind of the single collection argument,
	// de-collectionized to a scalar.
	resultElem
	// resultAny yields an unconstrained kind, column-valued if any argument
	// is. Used for generic named functions.
	resultAny
)

// opSpec is the static declaration consulted by the generic validator:
// arity, expected element kind per position, whether positions share a
// generic kind group, and the return-kind rule.
type opSpec struct {
	arity      int
	params     []Kind // nil means unconstrained positions
	generic    bool   // all positions must unify to one element kind
	collection bool   // every argument must be column-valued
	result     resultRule
}

var opSpecs = map[Op]opSpec{
	OpAdd:      {arity: 2, params: []Kind{KindNumber, KindNumber}, result: resultUnified},
	OpSubtract: {arity: 2, params: []Kind{KindNumber, KindNumber}, result: resultUnified},
	OpMultiply: {arity: 2, params: []Kind{KindNumber, KindNumber}, result: resultUnified},
	OpDivide:   {arity: 2, params: []Kind{KindNumber, KindNumber}, result: resultUnified},
	OpModulo:   {arity: 2, params: []Kind{KindNumber, KindNumber}, result: resultUnified},

	OpBitwiseAnd: {arity: 2, params: []Kind{KindBoolean, KindBoolean}, result: resultBoolean},
	OpBitwiseOr:  {arity: 2, params: []Kind{KindBoolean, KindBoolean}, result: resultBoolean},
	OpBitwiseXor: {arity: 2, params: []Kind{KindBoolean, KindBoolean}, result: resultBoolean},
	OpNot:        {arity: 1, params: []Kind{KindBoolean}, result: resultBoolean},

	OpEquals:             {arity: 2, generic: true, result: resultBoolean},
	OpNotEqual:           {arity: 2, generic: true, result: resultBoolean},
	OpLessThan:           {arity: 2, generic: true, result: resultBoolean},
	OpLessThanOrEqual:    {arity: 2, generic: true, result: resultBoolean},
	OpGreaterThan:        {arity: 2, generic: true, result: resultBoolean},
	OpGreaterThanOrEqual: {arity: 2, generic: true, result: resultBoolean},
	OpLike:               {arity: 2, params: []Kind{KindString, KindString}, result: resultBoolean},
	OpIn:                 {arity: 2, result: resultBoolean},

	OpMax: {arity: 1, collection: true, result: resultElem},
	OpMin: {arity: 1, collection: true, result: resultElem},
	OpSum: {arity: 1, collection: true, result: resultElem},
}

// NewFunc constructs a builtin expression variant, validating the argument
// count and kinds. Errors are *ArityError or *KindMismatchError.
func NewFunc(op Op, args ...any) (*F, error) {
	switch op {
	case OpCustom:
		return nil, fmt.Errorf("custom functions require a name, use NewNamedFunc")
	case OpStar:
		if len(args) != 0 {
			return nil, &ArityError{Op: op, Want: 0, Found: len(args)}
		}
		return &F{op: op, kind: ValueKind{Elem: KindAny, Collection: true}}, nil
	case OpTableStar:
		if len(args) != 1 {
			return nil, &ArityError{Op: op, Want: 1, Found: len(args)}
		}
		if _, ok := args[0].(*Table); !ok {
			return nil, &KindMismatchError{Op: op, Position: 0, Want: "table reference", Found: fmt.Sprintf("%T", args[0])}
		}
		return &F{op: op, args: args, kind: ValueKind{Elem: KindAny, Collection: true}}, nil
	case OpAs:
		return newAs(args)
	case OpAsc, OpDesc:
		if len(args) != 1 {
			return nil, &ArityError{Op: op, Want: 1, Found: len(args)}
		}
		col, ok := args[0].(*Column)
		if !ok {
			return nil, &KindMismatchError{Op: op, Position: 0, Want: "column reference", Found: fmt.Sprintf("%T", args[0])}
		}
		return &F{op: op, args: args, kind: ValueKind{Elem: col.kind, Collection: true}}, nil
	}

	spec, ok := opSpecs[op]
	if !ok {
		return nil, fmt.Errorf("unknown expression variant: %d", op)
	}
	return newChecked(op, "", spec, args)
}

// NewNamedFunc constructs a generic named function over the given arguments.
// The compiler renders it through the name(arg0, arg1, ...) fallback.
func NewNamedFunc(name string, args ...any) (*F, error) {
	return newChecked(OpCustom, name, opSpec{arity: -1, result: resultAny}, args)
}

func newAs(args []any) (*F, error) {
	if len(args) != 2 {
		return nil, &ArityError{Op: OpAs, Want: 2, Found: len(args)}
	}
	var kind ValueKind
	switch v := args[0].(type) {
	case *Column:
		kind = ValueKind{Elem: v.kind, Collection: true}
	case *Table:
		kind = ValueKind{Elem: KindAny, Collection: true}
	case *F:
		kind = v.kind
	default:
		return nil, &KindMismatchError{Op: OpAs, Position: 0, Want: "column, table or function", Found: fmt.Sprintf("%T", args[0])}
	}
	if _, ok := args[1].(string); !ok {
		return nil, &KindMismatchError{Op: OpAs, Position: 1, Want: "alias name", Found: fmt.Sprintf("%T", args[1])}
	}
	return &F{op: OpAs, args: args, kind: kind}, nil
}

func newChecked(op Op, name string, spec opSpec, args []any) (*F, error) {
	if spec.arity >= 0 && len(args) != spec.arity {
		return nil, &ArityError{Op: op, Want: spec.arity, Found: len(args)}
	}

	kinds := make([]ValueKind, len(args))
	for i, arg := range args {
		vk, ok := KindOf(arg)
		if !ok {
			return nil, &KindMismatchError{Op: op, Position: i, Want: "constant, column or expression", Found: fmt.Sprintf("%T", arg)}
		}
		kinds[i] = vk
	}

	collection := false
	for i, vk := range kinds {
		if vk.Collection {
			collection = true
		}
		if spec.collection && !vk.Collection {
			return nil, &KindMismatchError{Op: op, Position: i, Want: "collection", Found: vk.String()}
		}
		if spec.params != nil && !kindCompatible(vk.Elem, spec.params[i]) {
			return nil, &KindMismatchError{Op: op, Position: i, Want: spec.params[i].String(), Found: vk.String()}
		}
	}

	elem := KindAny
	if spec.generic || spec.result == resultUnified {
		elems := make([]Kind, len(kinds))
		for i, vk := range kinds {
			elems[i] = vk.Elem
		}
		unified := KindAny
		if len(elems) > 0 {
			unified = elems[0]
			for _, k := range elems[1:] {
				var ok bool
				unified, ok = Unify(unified, k)
				if !ok {
					return nil, genericMismatch(op, elems)
				}
			}
		}
		elem = unified
	}

	var kind ValueKind
	switch spec.result {
	case resultBoolean:
		kind = ValueKind{Elem: KindBoolean, Collection: collection}
	case resultUnified:
		kind = ValueKind{Elem: elem, Collection: collection}
	case resultElem:
		kind = ValueKind{Elem: kinds[0].Elem}
	case resultAny:
		kind = ValueKind{Elem: KindAny, Collection: collection}
	}

	return &F{op: op, name: name, args: args, kind: kind}, nil
}

// mustFunc backs the exported per-variant constructors and the operator
// sugar on Column and F. Invalid construction is a programmer error, so it
// panics with the underlying *ArityError or *KindMismatchError.
func mustFunc(op Op, args ...any) *F {
	f, err := NewFunc(op, args...)
	if err != nil {
		panic(err)
	}
	return f
}
