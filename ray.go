package kdtree

// Ray is an origin point and a normalized direction. Use NewRay to
// construct one; Traverse only needs Origin/Direction separately, but
// collaborators (the primitives a caller tests within a leaf) typically
// want the bundled type.
type Ray struct {
	Origin    Vector3
	Direction Vector3
}

// NewRay returns a Ray with dir normalized. A near-zero-length dir falls
// back to {0,1,0} (see normalizeVector) rather than producing a NaN
// direction; callers passing a degenerate direction to Traverse directly
// still get ErrContractViolation there, since Traverse checks for the
// exact zero vector.
func NewRay(origin, dir Vector3) Ray {
	return Ray{Origin: origin, Direction: normalizeVector(dir)}
}
