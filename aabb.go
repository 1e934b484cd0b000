package kdtree

import "math"

// AABB is an axis-aligned bounding box given by two corner points, with
// Min <= Max componentwise. A box is well-formed iff it has non-negative
// volume; it is flat on an axis iff Min and Max agree on that axis.
type AABB struct {
	Min, Max Vector3
}

// NewAABB builds an AABB from two corners without reordering them: callers
// must already guarantee Min <= Max componentwise (spec.md's "well-formed"
// invariant). A malformed box is a contract violation the caller must avoid,
// not one this constructor repairs.
func NewAABB(min, max Vector3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints returns the smallest AABB enclosing every point given.
// Panics-free on an empty slice: it returns the degenerate box at the
// origin, matching the teacher's NewAABBFromPoints convention.
func NewAABBFromPoints(points []Vector3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	box := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box.Min.X = minF(box.Min.X, p.X)
		box.Min.Y = minF(box.Min.Y, p.Y)
		box.Min.Z = minF(box.Min.Z, p.Z)
		box.Max.X = maxF(box.Max.X, p.X)
		box.Max.Y = maxF(box.Max.Y, p.Y)
		box.Max.Z = maxF(box.Max.Z, p.Z)
	}
	return box
}

// WellFormed reports whether the box has non-negative volume along every
// axis (flat axes are allowed; negative extent is not).
func (b AABB) WellFormed() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z
}

// IsFlat reports whether the box has zero extent along axis a.
func (b AABB) IsFlat(a Axis) bool {
	switch a {
	case AxisX:
		return b.Min.X == b.Max.X
	case AxisY:
		return b.Min.Y == b.Max.Y
	default:
		return b.Min.Z == b.Max.Z
	}
}

// AxisMin/AxisMax read a single axis's slab bound.
func (b AABB) AxisMin(a Axis) float64 { return b.Min.component(a) }
func (b AABB) AxisMax(a Axis) float64 { return b.Max.component(a) }

// WithAxisMin returns a copy of b with axis a's minimum bound replaced.
func (b AABB) WithAxisMin(a Axis, v float64) AABB {
	switch a {
	case AxisX:
		b.Min.X = v
	case AxisY:
		b.Min.Y = v
	default:
		b.Min.Z = v
	}
	return b
}

// WithAxisMax returns a copy of b with axis a's maximum bound replaced.
func (b AABB) WithAxisMax(a Axis, v float64) AABB {
	switch a {
	case AxisX:
		b.Max.X = v
	case AxisY:
		b.Max.Y = v
	default:
		b.Max.Z = v
	}
	return b
}

// EnlargeToEnclose grows b, in place semantics via return value, to also
// contain other.
func (b AABB) EnlargeToEnclose(other AABB) AABB {
	return AABB{
		Min: Vector3{
			X: minF(b.Min.X, other.Min.X),
			Y: minF(b.Min.Y, other.Min.Y),
			Z: minF(b.Min.Z, other.Min.Z),
		},
		Max: Vector3{
			X: maxF(b.Max.X, other.Max.X),
			Y: maxF(b.Max.Y, other.Max.Y),
			Z: maxF(b.Max.Z, other.Max.Z),
		},
	}
}

// IntersectAgainst returns the intersection of b and other. Use WellFormed
// (or the equivalent IsEmpty-style check) on the result to tell whether the
// intersection is non-empty.
func (b AABB) IntersectAgainst(other AABB) AABB {
	return AABB{
		Min: Vector3{
			X: maxF(b.Min.X, other.Min.X),
			Y: maxF(b.Min.Y, other.Min.Y),
			Z: maxF(b.Min.Z, other.Min.Z),
		},
		Max: Vector3{
			X: minF(b.Max.X, other.Max.X),
			Y: minF(b.Max.Y, other.Max.Y),
			Z: minF(b.Max.Z, other.Max.Z),
		},
	}
}

// SurfaceArea returns the box's total surface area (twice the sum of the
// three pairwise face areas).
func (b AABB) SurfaceArea() float64 {
	d := Vector3{X: b.Max.X - b.Min.X, Y: b.Max.Y - b.Min.Y, Z: b.Max.Z - b.Min.Z}
	return 2.0 * (d.X*d.Y + d.X*d.Z + d.Y*d.Z)
}

// Center returns the midpoint of the box.
func (b AABB) Center() Vector3 {
	return Vector3{
		X: (b.Min.X + b.Max.X) / 2,
		Y: (b.Min.Y + b.Max.Y) / 2,
		Z: (b.Min.Z + b.Max.Z) / 2,
	}
}

// dirInverse holds the per-axis sign and reciprocal of a ray direction, so
// repeated slab tests against many nodes of the same ray need not recompute
// them (spec.md §4.2: "one that consumes them ... to avoid recomputation at
// every node").
type dirInverse struct {
	sign [3]int
	inv  Vector3
}

func newDirInverse(dir Vector3) dirInverse {
	di := dirInverse{sign: [3]int{sign(dir.X), sign(dir.Y), sign(dir.Z)}}
	if di.sign[AxisX] != 0 {
		di.inv.X = 1.0 / dir.X
	}
	if di.sign[AxisY] != 0 {
		di.inv.Y = 1.0 / dir.Y
	}
	if di.sign[AxisZ] != 0 {
		di.inv.Z = 1.0 / dir.Z
	}
	return di
}

func (d dirInverse) invComponent(a Axis) float64 {
	switch a {
	case AxisX:
		return d.inv.X
	case AxisY:
		return d.inv.Y
	default:
		return d.inv.Z
	}
}

// rayEntryExit is the slab test shared by both exported forms: given the
// ray origin and precomputed per-axis sign/inverse, it returns the entry and
// exit distances and the axis of the entering/exiting face. ok is false on
// a miss: either the computed interval is inverted (exit < entry) or the
// ray is parallel to a slab with its origin outside that slab.
func rayEntryExit(origin Vector3, di dirInverse, box AABB) (entryDist float64, entryAxis Axis, exitDist float64, exitAxis Axis, ok bool) {
	entryDist = math.Inf(-1)
	exitDist = math.Inf(1)
	entryAxis, exitAxis = AxisX, AxisX

	for _, a := range [3]Axis{AxisX, AxisY, AxisZ} {
		s := di.sign[a]
		if s == 0 {
			o := origin.component(a)
			if o < box.AxisMin(a) || o > box.AxisMax(a) {
				return 0, 0, 0, 0, false
			}
			continue
		}
		var near, far float64
		if s > 0 {
			near, far = box.AxisMin(a), box.AxisMax(a)
		} else {
			near, far = box.AxisMax(a), box.AxisMin(a)
		}
		inv := di.invComponent(a)
		newEnter := (near - origin.component(a)) * inv
		newExit := (far - origin.component(a)) * inv
		if newEnter > entryDist {
			entryDist = newEnter
			entryAxis = a
		}
		if newExit < exitDist {
			exitDist = newExit
			exitAxis = a
		}
	}

	if exitDist < entryDist {
		return 0, 0, 0, 0, false
	}
	return entryDist, entryAxis, exitDist, exitAxis, true
}

// RayEntryExit computes the ray's entry/exit distances and face axes
// against b, deriving the per-axis sign/inverse from dir itself. Prefer
// RayEntryExitPrecomputed inside a hot traversal loop where dir is shared
// across many nodes.
func (b AABB) RayEntryExit(origin, dir Vector3) (entryDist float64, entryAxis Axis, exitDist float64, exitAxis Axis, ok bool) {
	return rayEntryExit(origin, newDirInverse(dir), b)
}

// rayEntryExitPrecomputed is the form the traversal engine uses: di must
// have been built once per ray via newDirInverse and is reused at every
// node tested.
func (b AABB) rayEntryExitPrecomputed(origin Vector3, di dirInverse) (entryDist float64, entryAxis Axis, exitDist float64, exitAxis Axis, ok bool) {
	return rayEntryExit(origin, di, b)
}
