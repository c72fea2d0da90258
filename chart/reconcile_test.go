package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconcile(t *testing.T) {
	plan := Reconcile([]string{"A", "B", "C"}, []string{"B", "C", "D"})
	assert.Equal(t, []int{2}, plan.Enter)
	assert.Equal(t, []Pair{{Prev: 1, Next: 0}, {Prev: 2, Next: 1}}, plan.Update)
	assert.Equal(t, []int{0}, plan.Exit)
}

func TestReconcileEmptySides(t *testing.T) {
	plan := Reconcile(nil, []string{"A", "B"})
	assert.Equal(t, []int{0, 1}, plan.Enter)
	assert.Empty(t, plan.Update)
	assert.Empty(t, plan.Exit)

	plan = Reconcile([]string{"A", "B"}, nil)
	assert.Empty(t, plan.Enter)
	assert.Equal(t, []int{0, 1}, plan.Exit)
}

func TestReconcileRepeatedKeys(t *testing.T) {
	plan := Reconcile([]string{"x", "x", "y"}, []string{"x", "y", "y"})
	assert.Equal(t, []Pair{{Prev: 0, Next: 0}, {Prev: 2, Next: 1}}, plan.Update)
	assert.Equal(t, []int{2}, plan.Enter)
	assert.Equal(t, []int{1}, plan.Exit)
}

func TestKeys(t *testing.T) {
	data := Dataset{{"a", 1}, {"b", 2}, {"a", 3}}

	assert.Equal(t, []BarKey{{"a", 0}, {"b", 0}, {"a", 1}}, Keys(data, KeyByLabel))
	assert.Equal(t, []BarKey{{"0", 0}, {"1", 0}, {"2", 0}}, Keys(data, KeyByIndex))
	assert.Equal(t, "a#1", BarKey{"a", 1}.String())
	assert.Equal(t, "a", BarKey{"a", 0}.String())
	assert.Equal(t, "2", Keys(data, KeyByIndex)[2].String())
}
