// Package kdtree builds and traverses a k-d tree over the axis-aligned
// bounding boxes of arbitrary 3D primitives.
//
// Construction uses a cost-driven, surface-area-heuristic style sweep: each
// candidate split is scored by one of four pluggable cost models (two
// classical SAH variants and two "double-recurse" variants whose score is
// the root of a self-referential cost recurrence) and the globally best
// axis/value is chosen at every node. Traversal descends the tree in
// distance order along a ray, with an explicit per-traversal stack so many
// goroutines can traverse the same built tree concurrently.
//
// The tree never inspects primitive geometry directly. Callers hand
// BuildTree a primitive count and two callbacks -- one producing a
// primitive's bounding box, the other its box clipped against a query
// region -- so the package has no notion of spheres, triangles, or meshes.
// See internal/primitives for sample implementations of that contract.
package kdtree
