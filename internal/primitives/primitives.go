// Package primitives provides sample Primitive implementations — Sphere,
// Triangle, Parallelogram, and Parallelepiped — that exercise a kdtree.Tree
// built over them. They are reference collaborators, not part of the
// kdtree package's public API: kdtree.BuildTree and kdtree.Tree.Traverse
// only ever deal in object IDs, AABBs and rays, never in a concrete
// primitive type.
package primitives

import (
	"math"

	"github.com/mirstar13/go-kdtree"
)

// Primitive is the capability kdbench and this package's tests assume:
// exact ray intersection for whichever concrete type it's implemented on.
type Primitive interface {
	// Bounds returns the primitive's unclipped world-space AABB.
	Bounds() kdtree.AABB
	// Intersect returns the distance along the ray at which it first hits
	// the primitive, or ok=false on a miss.
	Intersect(origin, dir kdtree.Vector3) (distance float64, ok bool)
}

// ClippedBounds conservatively clips a primitive's own Bounds() against
// box: it intersects the two AABBs rather than deriving the primitive's
// exact clipped silhouette (the original's CalcExtentsInBox family, which
// needs a bespoke derivation per shape, e.g. solving for a sphere's extreme
// point within a box face). A conservative box only ever costs the tree a
// slightly less tight split; it never changes correctness.
func ClippedBounds(p Primitive, box kdtree.AABB) (kdtree.AABB, bool) {
	clipped := p.Bounds().IntersectAgainst(box)
	if !clipped.WellFormed() {
		return kdtree.AABB{}, false
	}
	return clipped, true
}

const epsilon = 1e-9

// Sphere is a ball of the given radius centered at Center.
type Sphere struct {
	Center kdtree.Vector3
	Radius float64
}

func (s Sphere) Bounds() kdtree.AABB {
	r := kdtree.Vector3{X: s.Radius, Y: s.Radius, Z: s.Radius}
	return kdtree.NewAABB(subV(s.Center, r), addV(s.Center, r))
}

// Intersect is grounded in ViewableSphere::FindIntersectionNT: solve the
// quadratic |origin + t*dir - center|^2 = radius^2 for the smallest
// positive root.
func (s Sphere) Intersect(origin, dir kdtree.Vector3) (float64, bool) {
	oc := subV(origin, s.Center)
	b := 2 * dotV(dir, oc)
	c := dotV(oc, oc) - s.Radius*s.Radius
	a := dotV(dir, dir)
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}
	sqrtDisc := math.Sqrt(disc)
	t := (-b - sqrtDisc) / (2 * a)
	if t > epsilon {
		return t, true
	}
	t = (-b + sqrtDisc) / (2 * a)
	if t > epsilon {
		return t, true
	}
	return 0, false
}

// Triangle is a flat triangle with vertices P0, P1, P2.
type Triangle struct {
	P0, P1, P2 kdtree.Vector3
}

func (t Triangle) Bounds() kdtree.AABB {
	return kdtree.NewAABBFromPoints([]kdtree.Vector3{t.P0, t.P1, t.P2})
}

// Intersect is the Möller–Trumbore test, as the teacher's raycast.go
// implements it, reworked onto Vector3.
func (t Triangle) Intersect(origin, dir kdtree.Vector3) (float64, bool) {
	edge1 := subV(t.P1, t.P0)
	edge2 := subV(t.P2, t.P0)

	h := crossV(dir, edge2)
	det := dotV(edge1, h)
	if math.Abs(det) < epsilon {
		return 0, false
	}
	invDet := 1.0 / det

	s := subV(origin, t.P0)
	u := invDet * dotV(s, h)
	if u < -epsilon || u > 1.0+epsilon {
		return 0, false
	}

	q := crossV(s, edge1)
	v := invDet * dotV(dir, q)
	if v < -epsilon || u+v > 1.0+epsilon {
		return 0, false
	}

	distance := invDet * dotV(edge2, q)
	if distance > epsilon {
		return distance, true
	}
	return 0, false
}

// Parallelogram is the planar quadrilateral with corner Origin and edge
// vectors Edge1, Edge2 (vertices Origin, Origin+Edge1, Origin+Edge1+Edge2,
// Origin+Edge2).
type Parallelogram struct {
	Origin, Edge1, Edge2 kdtree.Vector3
}

func (p Parallelogram) Bounds() kdtree.AABB {
	v1 := addV(p.Origin, p.Edge1)
	v2 := addV(v1, p.Edge2)
	v3 := addV(p.Origin, p.Edge2)
	return kdtree.NewAABBFromPoints([]kdtree.Vector3{p.Origin, v1, v2, v3})
}

// Intersect solves the plane equation for t, then checks the hit point's
// edge-vector coordinates both lie in [0,1].
func (p Parallelogram) Intersect(origin, dir kdtree.Vector3) (float64, bool) {
	normal := crossV(p.Edge1, p.Edge2)
	denom := dotV(normal, dir)
	if math.Abs(denom) < epsilon {
		return 0, false
	}
	t := dotV(normal, subV(p.Origin, origin)) / denom
	if t <= epsilon {
		return 0, false
	}
	hit := subV(addV(origin, scaleV(dir, t)), p.Origin)

	e1e1 := dotV(p.Edge1, p.Edge1)
	e1e2 := dotV(p.Edge1, p.Edge2)
	e2e2 := dotV(p.Edge2, p.Edge2)
	he1 := dotV(hit, p.Edge1)
	he2 := dotV(hit, p.Edge2)
	invDenom := 1.0 / (e1e1*e2e2 - e1e2*e1e2)
	a := (he1*e2e2 - he2*e1e2) * invDenom
	b := (he2*e1e1 - he1*e1e2) * invDenom
	if a < -epsilon || a > 1.0+epsilon || b < -epsilon || b > 1.0+epsilon {
		return 0, false
	}
	return t, true
}

// Parallelepiped is the solid spanned by Origin and three edge vectors,
// i.e. six parallelogram faces.
type Parallelepiped struct {
	Origin, Edge1, Edge2, Edge3 kdtree.Vector3
}

func (p Parallelepiped) Bounds() kdtree.AABB {
	pts := make([]kdtree.Vector3, 0, 8)
	for _, a := range [2]kdtree.Vector3{{}, p.Edge1} {
		for _, b := range [2]kdtree.Vector3{{}, p.Edge2} {
			for _, c := range [2]kdtree.Vector3{{}, p.Edge3} {
				pts = append(pts, addV(p.Origin, addV(a, addV(b, c))))
			}
		}
	}
	return kdtree.NewAABBFromPoints(pts)
}

// Intersect tests the solid's six parallelogram faces and returns the
// nearest positive hit, matching the teacher's raycastObject dispatch
// pattern of testing a composite shape face-by-face and keeping the
// closest result.
func (p Parallelepiped) Intersect(origin, dir kdtree.Vector3) (float64, bool) {
	faces := [6]Parallelogram{
		{Origin: p.Origin, Edge1: p.Edge1, Edge2: p.Edge2},
		{Origin: p.Origin, Edge1: p.Edge2, Edge2: p.Edge3},
		{Origin: p.Origin, Edge1: p.Edge3, Edge2: p.Edge1},
		{Origin: addV(p.Origin, p.Edge3), Edge1: p.Edge1, Edge2: p.Edge2},
		{Origin: addV(p.Origin, p.Edge1), Edge1: p.Edge2, Edge2: p.Edge3},
		{Origin: addV(p.Origin, p.Edge2), Edge1: p.Edge3, Edge2: p.Edge1},
	}
	best := math.Inf(1)
	hit := false
	for _, f := range faces {
		if d, ok := f.Intersect(origin, dir); ok && d < best {
			best = d
			hit = true
		}
	}
	return best, hit
}

func addV(a, b kdtree.Vector3) kdtree.Vector3 {
	return kdtree.Vector3{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z}
}
func subV(a, b kdtree.Vector3) kdtree.Vector3 {
	return kdtree.Vector3{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z}
}
func scaleV(a kdtree.Vector3, s float64) kdtree.Vector3 {
	return kdtree.Vector3{X: a.X * s, Y: a.Y * s, Z: a.Z * s}
}
func dotV(a, b kdtree.Vector3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }
func crossV(a, b kdtree.Vector3) kdtree.Vector3 {
	return kdtree.Vector3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}
