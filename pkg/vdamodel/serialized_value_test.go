package vdamodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializedValueCastMismatchFails(t *testing.T) {
	v := NewIntValue(5)
	_, err := v.Float()
	require.ErrorIs(t, err, ErrBadSerializedValueCast)

	_, err = v.Bool()
	require.ErrorIs(t, err, ErrBadSerializedValueCast)
}

func TestSerializedValueOrderingByType(t *testing.T) {
	a := NewIntValue(1)
	b := NewIntValue(2)
	cmp, err := a.Compare(b)
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))

	fa := NewFloatValue(1.5)
	fb := NewFloatValue(1.5)
	assert.True(t, fa.Equal(fb))

	sa := NewStringValue("abc")
	sb := NewStringValue("abd")
	assert.True(t, sa.Less(sb))
}

func TestSerializedValueBooleanOrderingTrueGreaterThanFalse(t *testing.T) {
	tru := NewBoolValue(true)
	fls := NewBoolValue(false)

	cmp, err := tru.Compare(fls)
	require.NoError(t, err)
	assert.Equal(t, 1, cmp)

	cmp, err = fls.Compare(tru)
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)

	assert.True(t, tru.Equal(NewBoolValue(true)))
}

func TestSerializedValueMixedTypeComparisonFails(t *testing.T) {
	i := NewIntValue(1)
	s := NewStringValue("1")

	_, err := i.Compare(s)
	require.ErrorIs(t, err, ErrBadSerializedValueCast)
	assert.False(t, i.Equal(s))
	assert.False(t, i.Less(s))
}

func TestParameterRangeSatisfiesValueSet(t *testing.T) {
	pr := ParameterRange{Key: "mode", ValueSet: map[string]struct{}{"FAST": {}, "SLOW": {}}}
	assert.True(t, pr.Satisfies(NewStringValue("FAST")))
	assert.False(t, pr.Satisfies(NewStringValue("MEDIUM")))
}

func TestParameterRangeSatisfiesOrdinalBounds(t *testing.T) {
	min := NewFloatValue(0)
	max := NewFloatValue(10)
	pr := ParameterRange{Key: "speed", OrdinalMin: &min, OrdinalMax: &max}

	assert.True(t, pr.Satisfies(NewFloatValue(5)))
	assert.True(t, pr.Satisfies(NewFloatValue(0)))
	assert.True(t, pr.Satisfies(NewFloatValue(10)))
	assert.False(t, pr.Satisfies(NewFloatValue(-1)))
	assert.False(t, pr.Satisfies(NewFloatValue(11)))
}

func TestActionEqualityIgnoresDescription(t *testing.T) {
	descA := "pick up pallet"
	descB := "something else"
	a := Action{ActionType: "pick", ActionID: "a1", BlockingType: BlockingHard, ActionDescription: &descA}
	b := Action{ActionType: "pick", ActionID: "a1", BlockingType: BlockingHard, ActionDescription: &descB}

	assert.True(t, a.Equal(b))

	c := Action{ActionType: "pick", ActionID: "a2", BlockingType: BlockingHard}
	assert.False(t, a.Equal(c))
}
