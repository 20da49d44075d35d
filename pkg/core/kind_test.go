package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnify(t *testing.T) {
	tests := []struct {
		name string
		a, b Kind
		want Kind
		ok   bool
	}{
		{"same kind", KindNumber, KindNumber, KindNumber, true},
		{"any narrows left", KindAny, KindString, KindString, true},
		{"any narrows right", KindBoolean, KindAny, KindBoolean, true},
		{"null narrows left", KindNull, KindNumber, KindNumber, true},
		{"null narrows right", KindDate, KindNull, KindDate, true},
		{"any with any", KindAny, KindAny, KindAny, true},
		{"number vs string", KindNumber, KindString, KindAny, false},
		{"boolean vs number", KindBoolean, KindNumber, KindAny, false},
		{"date vs datetime", KindDate, KindDateTime, KindAny, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Unify(tt.a, tt.b)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	table := NewTable("orders")
	col := table.C("amount")

	tests := []struct {
		name string
		arg  any
		want ValueKind
	}{
		{"bool", true, ValueKind{Elem: KindBoolean}},
		{"string", "abc", ValueKind{Elem: KindString}},
		{"int", 42, ValueKind{Elem: KindNumber}},
		{"int64", int64(42), ValueKind{Elem: KindNumber}},
		{"float64", 4.2, ValueKind{Elem: KindNumber}},
		{"time", time.Now(), ValueKind{Elem: KindDateTime}},
		{"nil", nil, ValueKind{Elem: KindNull}},
		{"column", col, ValueKind{Elem: KindAny, Collection: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := KindOf(tt.arg)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKindOfUnsupported(t *testing.T) {
	_, ok := KindOf(struct{}{})
	assert.False(t, ok)
}

func TestKindOfExpression(t *testing.T) {
	table := NewTable("orders")

	// A comparison over a column is a boolean collection.
	got, ok := KindOf(table.C("amount").Gt(10))
	require.True(t, ok)
	assert.Equal(t, ValueKind{Elem: KindBoolean, Collection: true}, got)

	// A comparison over two scalar constants stays scalar.
	got, ok = KindOf(Equals(1, 1))
	require.True(t, ok)
	assert.Equal(t, ValueKind{Elem: KindBoolean}, got)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "number", KindNumber.String())
	assert.Equal(t, "collection(boolean)", ValueKind{Elem: KindBoolean, Collection: true}.String())
	assert.Equal(t, "string", ValueKind{Elem: KindString}.String())
}
