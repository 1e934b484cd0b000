package kdtree

import (
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

var optionsValidator = validator.New()

// ObjectCostFunc returns the per-ray intersection cost of testing a single
// object, keyed by its object ID. Supply this when objects have
// heterogeneous cost (e.g. a triangle mesh mixed with cheap spheres);
// leave it nil to use a flat ObjectConstantCost for every object.
type ObjectCostFunc func(objectID int) float64

// BuildOptions configures BuildTree. The zero value is invalid: callers
// must set at least ExtentTripleStorageMultiplier (validated to be >= 1)
// and StoppingCostPerRay (validated to be > 0); NewBuildOptions returns a
// populated, valid starting point.
type BuildOptions struct {
	// CostModel selects the split-cost formula; see CostModel's constants.
	CostModel CostModel `validate:"gte=0,lte=3"`

	// StoppingCostPerRay is the assumed cost of testing a ray against a
	// single leaf's worth of work, the unit every cost model measures
	// splits against. Must be positive.
	StoppingCostPerRay float64 `validate:"gt=0"`

	// MinObjectsPerLeaf stops recursion once a node holds this many
	// objects or fewer, regardless of what the cost model would prefer.
	MinObjectsPerLeaf int `validate:"gte=1"`

	// MaxDepth bounds recursion depth as a backstop against pathological
	// scenes (many coincident objects) that would otherwise never satisfy
	// the cost model's stopping criterion.
	MaxDepth int `validate:"gte=1"`

	// ObjectConstantCost is the per-object intersection cost used when
	// ObjectCost is nil.
	ObjectConstantCost float64 `validate:"gt=0"`

	// ObjectCost, if set, overrides ObjectConstantCost per object.
	ObjectCost ObjectCostFunc `validate:"-"`

	// ExtentTripleStorageMultiplier sizes the per-axis extent-triple arena
	// to 2*ExtentTripleStorageMultiplier*NumObjects (spec.md §4.3). Must be
	// at least 1; values above 2 are rarely needed since every object
	// contributes at most one MIN/MAX pair per axis per tree level it's
	// copied at.
	ExtentTripleStorageMultiplier int `validate:"gte=1"`

	// Logger receives structured build diagnostics (Traverse does not
	// log). The zero
	// value (zerolog.Logger{}) is a valid no-op logger.
	Logger zerolog.Logger `validate:"-"`
}

// NewBuildOptions returns BuildOptions populated with the defaults this
// package recommends: CostModelDoubleRecurseGS, a single object per leaf as
// the floor, and enough arena headroom for several levels of unbalanced
// splits.
func NewBuildOptions() BuildOptions {
	return BuildOptions{
		CostModel:                     CostModelDoubleRecurseGS,
		StoppingCostPerRay:            1.0,
		MinObjectsPerLeaf:             1,
		MaxDepth:                      64,
		ObjectConstantCost:            1.0,
		ExtentTripleStorageMultiplier: 2,
		Logger:                        zerolog.Nop(),
	}
}

// validate reports every struct-tag violation found, in one error wrapped
// as ErrContractViolation.
func (o BuildOptions) validate() error {
	if err := optionsValidator.Struct(o); err != nil {
		return contractErr("invalid BuildOptions: %s", err.Error())
	}
	return nil
}

func (o BuildOptions) objectCost(objectID int) float64 {
	if o.ObjectCost != nil {
		return o.ObjectCost(objectID)
	}
	return o.ObjectConstantCost
}
