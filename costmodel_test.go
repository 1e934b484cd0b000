package kdtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMacdonaldBoothPrefersBalancedAreaSplit(t *testing.T) {
	box := NewAABB(Vector3{}, Vector3{X: 2, Y: 1, Z: 1})
	e := newCostEvaluator(CostModelMacdonaldBooth, 1.0)
	e.init(box, 4)

	balanced := e.eval(3, 3, 2, 2, 1, 1)
	lopsided := e.eval(5.9, 0.1, 3, 1, 1, 1)
	assert.Less(t, balanced.value, lopsided.value)
}

func TestMacdonaldBoothModifiedCoefsDiscountsEmptySide(t *testing.T) {
	box := NewAABB(Vector3{}, Vector3{X: 2, Y: 1, Z: 1})
	plain := newCostEvaluator(CostModelMacdonaldBooth, 1.0)
	plain.init(box, 4)
	modified := newCostEvaluator(CostModelMacdonaldBoothModifiedCoefs, 1.0)
	modified.init(box, 4)

	plainCost := plain.eval(3, 3, 4, 0, 2, 0)
	modifiedCost := modified.eval(3, 3, 4, 0, 2, 0)
	assert.Less(t, modifiedCost.value, plainCost.value, "an empty side should be discounted, not charged full area fraction")
}

func TestDoubleRecurseGSProducesFiniteCost(t *testing.T) {
	box := NewAABB(Vector3{}, Vector3{X: 2, Y: 2, Z: 2})
	e := newCostEvaluator(CostModelDoubleRecurseGS, 1.0)
	e.init(box, 10)

	c := e.eval(12, 12, 6, 4, 1, 1)
	assert.False(t, isNaNOrInf(c.value))
}

func TestDoubleRecurseFallsBackOnDegenerateArea(t *testing.T) {
	box := AABB{} // zero surface area
	e := newCostEvaluator(CostModelDoubleRecurseGS, 1.0)
	e.init(box, 10)

	c := e.eval(0, 0, 6, 4, 1, 1)
	assert.False(t, isNaNOrInf(c.value))
}

func isNaNOrInf(v float64) bool {
	return v != v || v > 1e300 || v < -1e300
}
