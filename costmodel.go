package kdtree

import "math"

// CostModel selects which split-cost formula the builder's axis sweep
// minimizes. All four are surface-area-weighted: a split is good when the
// area-fraction-weighted cost of its two children is small relative to the
// cost of leaving the node unsplit.
type CostModel int

const (
	// CostModelMacdonaldBooth is the classic MacDonald/Booth formula:
	// stoppingCost + areaFractionLeft*objectCostLeft + areaFractionRight*objectCostRight.
	CostModelMacdonaldBooth CostModel = iota
	// CostModelMacdonaldBoothModifiedCoefs discounts the area fraction of a
	// side left empty by the split, favoring splits that carve off empty
	// space even when that does not change an object's own cost term.
	CostModelMacdonaldBoothModifiedCoefs
	// CostModelDoubleRecurseGS models total expected cost as the fixed
	// point of a self-similar recursion (spec.md §4.1) and ranks splits by
	// the resulting growth exponent, solved via findDoubleRecurseSoln.
	CostModelDoubleRecurseGS
	// CostModelDoubleRecurseModifiedCoefs is CostModelDoubleRecurseGS with
	// the same empty-side discount CostModelMacdonaldBoothModifiedCoefs
	// applies, folded into the recursion's area ratios before solving.
	CostModelDoubleRecurseModifiedCoefs
)

func (m CostModel) String() string {
	switch m {
	case CostModelMacdonaldBooth:
		return "MacdonaldBooth"
	case CostModelMacdonaldBoothModifiedCoefs:
		return "MacdonaldBoothModifiedCoefs"
	case CostModelDoubleRecurseGS:
		return "DoubleRecurseGS"
	case CostModelDoubleRecurseModifiedCoefs:
		return "DoubleRecurseModifiedCoefs"
	default:
		return "Unknown"
	}
}

// emptySideDiscount is the coefficient applied to an empty child's area
// fraction by the "modified coefficients" variants, matching the original's
// CalcMacdonaldBoothModifiedCoefs treatment of a zero-object side: an empty
// half is worth carving off even though it contributes no object cost of
// its own.
const emptySideDiscount = 0.8

// splitCost is one candidate split's evaluated price. exponent is only
// meaningful for the double-recurse models; it is the fixed point growth
// rate from findDoubleRecurseSoln, and is monotonic with Value (smaller is
// always better) so the builder can compare candidates on it directly
// without recomputing Value during a pruning pass.
type splitCost struct {
	value    float64
	exponent float64
}

// costEvaluator is initialized once per node (before its axis sweep begins)
// and then evaluated once per candidate split along every axis swept.
type costEvaluator interface {
	// init precomputes whatever the model needs from the node's own box and
	// the total accumulated object cost of everything it holds.
	init(nodeBox AABB, totalObjectCost float64)
	// eval prices a single candidate: the two child boxes' areas, the
	// accumulated object cost assigned to each side, and how many distinct
	// objects (not cost units) land on each side.
	eval(leftArea, rightArea, leftObjectCost, rightObjectCost float64, numLeft, numRight int) splitCost
}

func newCostEvaluator(model CostModel, stoppingCostPerRay float64) costEvaluator {
	switch model {
	case CostModelMacdonaldBoothModifiedCoefs:
		return &macdonaldBoothEvaluator{stoppingCostPerRay: stoppingCostPerRay, modifiedCoefs: true}
	case CostModelDoubleRecurseGS:
		return &doubleRecurseEvaluator{stoppingCostPerRay: stoppingCostPerRay}
	case CostModelDoubleRecurseModifiedCoefs:
		return &doubleRecurseEvaluator{stoppingCostPerRay: stoppingCostPerRay, modifiedCoefs: true}
	default:
		return &macdonaldBoothEvaluator{stoppingCostPerRay: stoppingCostPerRay}
	}
}

// macdonaldBoothEvaluator implements both CostModelMacdonaldBooth and, when
// modifiedCoefs is set, CostModelMacdonaldBoothModifiedCoefs.
type macdonaldBoothEvaluator struct {
	stoppingCostPerRay float64
	modifiedCoefs      bool
	parentArea         float64
}

func (e *macdonaldBoothEvaluator) init(nodeBox AABB, totalObjectCost float64) {
	e.parentArea = nodeBox.SurfaceArea()
}

func (e *macdonaldBoothEvaluator) eval(leftArea, rightArea, leftObjectCost, rightObjectCost float64, numLeft, numRight int) splitCost {
	if e.parentArea <= 0 {
		return splitCost{value: e.stoppingCostPerRay + leftObjectCost + rightObjectCost}
	}
	coeffLeft := leftArea / e.parentArea
	coeffRight := rightArea / e.parentArea
	if e.modifiedCoefs {
		if numLeft == 0 {
			coeffLeft *= emptySideDiscount
		}
		if numRight == 0 {
			coeffRight *= emptySideDiscount
		}
	}
	return splitCost{value: e.stoppingCostPerRay + coeffLeft*leftObjectCost + coeffRight*rightObjectCost}
}

// doubleRecurseEvaluator implements CostModelDoubleRecurseGS and, when
// modifiedCoefs is set, CostModelDoubleRecurseModifiedCoefs.
type doubleRecurseEvaluator struct {
	stoppingCostPerRay float64
	modifiedCoefs      bool
	parentArea         float64
	totalObjectCost    float64
}

func (e *doubleRecurseEvaluator) init(nodeBox AABB, totalObjectCost float64) {
	e.parentArea = nodeBox.SurfaceArea()
	e.totalObjectCost = totalObjectCost
}

func (e *doubleRecurseEvaluator) eval(leftArea, rightArea, leftObjectCost, rightObjectCost float64, numLeft, numRight int) splitCost {
	if e.parentArea <= 0 || e.totalObjectCost <= 0 {
		return splitCost{value: e.stoppingCostPerRay + leftObjectCost + rightObjectCost}
	}

	alpha := leftArea / e.parentArea
	beta := rightArea / e.parentArea
	if e.modifiedCoefs {
		if numLeft == 0 {
			alpha *= emptySideDiscount
		}
		if numRight == 0 {
			beta *= emptySideDiscount
		}
	}
	// The solver requires alpha, beta in (0,1]; a flat or degenerate child
	// box can produce exactly 0, which the simple SAH fallback below
	// handles without needing the fixed-point solution at all.
	if alpha <= 0 {
		alpha = math.SmallestNonzeroFloat64
	}
	if beta <= 0 {
		beta = math.SmallestNonzeroFloat64
	}

	a := leftObjectCost / e.totalObjectCost
	b := rightObjectCost / e.totalObjectCost
	if a+b <= 1.0 {
		// Degenerate: the recursion's fixed point requires A+B > 1 (spec.md
		// §4.1). Fall back to the direct area-weighted estimate rather than
		// dividing by a non-positive denominator.
		return splitCost{value: e.stoppingCostPerRay + alpha*leftObjectCost + beta*rightObjectCost}
	}

	c, x, d := findDoubleRecurseSoln(a, b, alpha, beta)
	value := c*math.Pow(e.totalObjectCost, x) + d
	return splitCost{value: e.stoppingCostPerRay * value, exponent: x}
}

// evalBounded is the pruning form used during an axis sweep once a
// best-so-far exponent is known: it can reject a candidate without ever
// computing math.Pow against the full object count. ok is false both when
// the candidate is rejected and when the model doesn't support bounded
// evaluation (the two MacdonaldBooth variants), in which case callers must
// fall back to eval.
func evalBounded(e costEvaluator, leftArea, rightArea, leftObjectCost, rightObjectCost float64, numLeft, numRight int, exponentToBeat float64) (splitCost, bool) {
	dr, isDoubleRecurse := e.(*doubleRecurseEvaluator)
	if !isDoubleRecurse || dr.parentArea <= 0 || dr.totalObjectCost <= 0 {
		return splitCost{}, false
	}

	alpha := leftArea / dr.parentArea
	beta := rightArea / dr.parentArea
	if dr.modifiedCoefs {
		if numLeft == 0 {
			alpha *= emptySideDiscount
		}
		if numRight == 0 {
			beta *= emptySideDiscount
		}
	}
	if alpha <= 0 || beta <= 0 {
		return splitCost{}, false
	}

	a := leftObjectCost / dr.totalObjectCost
	b := rightObjectCost / dr.totalObjectCost
	if a+b <= 1.0 {
		return splitCost{}, false
	}

	c, x, d, ok := findDoubleRecurseSolnBounded(a, b, alpha, beta, exponentToBeat)
	if !ok {
		return splitCost{}, false
	}
	value := c*math.Pow(dr.totalObjectCost, x) + d
	return splitCost{value: dr.stoppingCostPerRay * value, exponent: x}, true
}
