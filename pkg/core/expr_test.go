package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	exprTable = NewTable("orders")
	amount    = NewColumn("amount", KindNumber).Bind(exprTable)
	flag      = NewColumn("active", KindBoolean).Bind(exprTable)
	label     = NewColumn("label", KindString).Bind(exprTable)
)

func TestArityChecked(t *testing.T) {
	tests := []struct {
		name string
		op   Op
		args []any
	}{
		{"add one arg", OpAdd, []any{amount}},
		{"add three args", OpAdd, []any{amount, 1, 2}},
		{"not two args", OpNot, []any{flag, flag}},
		{"max no args", OpMax, []any{}},
		{"star with arg", OpStar, []any{amount}},
		{"tablestar no args", OpTableStar, []any{}},
		{"as one arg", OpAs, []any{amount}},
		{"asc two args", OpAsc, []any{amount, amount}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFunc(tt.op, tt.args...)
			var arityErr *ArityError
			require.ErrorAs(t, err, &arityErr)
			assert.Equal(t, tt.op, arityErr.Op)
		})
	}
}

func TestKindChecked(t *testing.T) {
	tests := []struct {
		name string
		op   Op
		args []any
	}{
		{"add string operand", OpAdd, []any{amount, "abc"}},
		{"add string column", OpAdd, []any{label, 10}},
		{"and number operand", OpBitwiseAnd, []any{flag, 10}},
		{"not number column", OpNot, []any{amount}},
		{"like number pattern", OpLike, []any{label, 10}},
		{"equals number vs string", OpEquals, []any{amount, "abc"}},
		{"sum of scalar", OpSum, []any{10}},
		{"asc of expression", OpAsc, []any{amount.Gt(10)}},
		{"tablestar of column", OpTableStar, []any{amount}},
		{"unsupported operand", OpAdd, []any{amount, struct{}{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFunc(tt.op, tt.args...)
			var kindErr *KindMismatchError
			require.ErrorAs(t, err, &kindErr)
		})
	}
}

func TestGenericUnification(t *testing.T) {
	// Any-kind columns compare against anything.
	anyCol := exprTable.C("whatever")
	_, err := NewFunc(OpEquals, anyCol, "abc")
	require.NoError(t, err)
	_, err = NewFunc(OpEquals, anyCol, 10)
	require.NoError(t, err)

	// Typed columns must agree.
	_, err = NewFunc(OpEquals, amount, label)
	var kindErr *KindMismatchError
	require.ErrorAs(t, err, &kindErr)
	assert.Equal(t, -1, kindErr.Position)
}

func TestReturnKinds(t *testing.T) {
	t.Run("arithmetic over column is numeric collection", func(t *testing.T) {
		f := amount.Add(10)
		assert.Equal(t, ValueKind{Elem: KindNumber, Collection: true}, f.Kind())
	})

	t.Run("arithmetic over constants stays scalar", func(t *testing.T) {
		f := Divide(10, 100)
		assert.Equal(t, ValueKind{Elem: KindNumber}, f.Kind())
	})

	t.Run("collection propagates through nesting", func(t *testing.T) {
		f := GreaterThanOrEqual(amount, Multiply(amount, 100))
		assert.Equal(t, ValueKind{Elem: KindBoolean, Collection: true}, f.Kind())
	})

	t.Run("aggregate de-collectionizes", func(t *testing.T) {
		f := amount.Sum()
		assert.Equal(t, ValueKind{Elem: KindNumber}, f.Kind())
		// And chains into further comparison.
		g := f.Gt(100)
		assert.Equal(t, ValueKind{Elem: KindBoolean}, g.Kind())
	})

	t.Run("as preserves the operand kind", func(t *testing.T) {
		f := As(amount, "total")
		assert.Equal(t, ValueKind{Elem: KindNumber, Collection: true}, f.Kind())
	})
}

func TestComparisonMirroring(t *testing.T) {
	tests := []struct {
		name    string
		f       *F
		wantOp  Op
		leftCol bool
	}{
		{"equals mirrors constant left", Equals(120, amount), OpEquals, true},
		{"not equal mirrors constant left", NotEqual(120, amount), OpNotEqual, true},
		{"greater than flips to less than", GreaterThan(20, amount), OpLessThan, true},
		{"less than flips to greater than", LessThan(20, amount), OpGreaterThan, true},
		{"ge flips to le", GreaterThanOrEqual(20, amount), OpLessThanOrEqual, true},
		{"le flips to ge", LessThanOrEqual(20, amount), OpGreaterThanOrEqual, true},
		{"no mirror with column left", GreaterThan(amount, 20), OpGreaterThan, true},
		{"no mirror for two constants", Equals(1, 1), OpEquals, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantOp, tt.f.Op())
			_, isCol := tt.f.Arg(0).(*Column)
			assert.Equal(t, tt.leftCol, isCol)
		})
	}
}

func TestArithmeticNeverMirrors(t *testing.T) {
	f := Divide(10, 100)
	assert.Equal(t, 10, f.Arg(0))
	assert.Equal(t, 100, f.Arg(1))

	f = Add(10, amount)
	assert.Equal(t, 10, f.Arg(0))
}

func TestSugarPanicsOnInvalidConstruction(t *testing.T) {
	assert.Panics(t, func() { _ = amount.Add("abc") })
	assert.Panics(t, func() { _ = label.Sum().Add(label) })
	assert.Panics(t, func() { _ = Not(amount) })

	// The panic value is the underlying construction error.
	defer func() {
		recovered := recover()
		require.NotNil(t, recovered)
		_, ok := recovered.(*KindMismatchError)
		assert.True(t, ok)
	}()
	_ = flag.And(10)
}

func TestNamedFunc(t *testing.T) {
	f := Func("coalesce", amount, 0)
	assert.Equal(t, OpCustom, f.Op())
	assert.Equal(t, "coalesce", f.FuncName())
	assert.Equal(t, 2, f.NArgs())
	assert.Equal(t, ValueKind{Elem: KindAny, Collection: true}, f.Kind())

	// Mixed constant kinds are fine for generic named functions.
	_, err := NewNamedFunc("fake", 1, "two", true)
	require.NoError(t, err)
}

func TestNewFuncRejectsCustomWithoutName(t *testing.T) {
	_, err := NewFunc(OpCustom, 1)
	require.Error(t, err)
}
