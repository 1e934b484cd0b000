package kdtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAABBWellFormed(t *testing.T) {
	assert.True(t, NewAABB(Vector3{}, Vector3{X: 1, Y: 1, Z: 1}).WellFormed())
	assert.False(t, NewAABB(Vector3{X: 1}, Vector3{X: 0}).WellFormed())
}

func TestAABBIsFlat(t *testing.T) {
	b := NewAABB(Vector3{X: 0, Y: 0, Z: 5}, Vector3{X: 1, Y: 1, Z: 5})
	assert.True(t, b.IsFlat(AxisZ))
	assert.False(t, b.IsFlat(AxisX))
}

func TestAABBEnlargeToEncloseAndIntersect(t *testing.T) {
	a := NewAABB(Vector3{X: 0, Y: 0, Z: 0}, Vector3{X: 1, Y: 1, Z: 1})
	b := NewAABB(Vector3{X: 0.5, Y: 0.5, Z: 0.5}, Vector3{X: 2, Y: 2, Z: 2})

	enclosing := a.EnlargeToEnclose(b)
	assert.Equal(t, Vector3{X: 0, Y: 0, Z: 0}, enclosing.Min)
	assert.Equal(t, Vector3{X: 2, Y: 2, Z: 2}, enclosing.Max)

	intersection := a.IntersectAgainst(b)
	assert.Equal(t, Vector3{X: 0.5, Y: 0.5, Z: 0.5}, intersection.Min)
	assert.Equal(t, Vector3{X: 1, Y: 1, Z: 1}, intersection.Max)

	disjoint := NewAABB(Vector3{X: 10, Y: 10, Z: 10}, Vector3{X: 11, Y: 11, Z: 11})
	assert.False(t, a.IntersectAgainst(disjoint).WellFormed())
}

func TestAABBSurfaceArea(t *testing.T) {
	unitCube := NewAABB(Vector3{}, Vector3{X: 1, Y: 1, Z: 1})
	assert.InDelta(t, 6.0, unitCube.SurfaceArea(), 1e-9)
}

func TestRayEntryExitHit(t *testing.T) {
	box := NewAABB(Vector3{X: 0, Y: 0, Z: 0}, Vector3{X: 1, Y: 1, Z: 1})
	entry, entryAxis, exit, _, ok := box.RayEntryExit(Vector3{X: 0.5, Y: 0.5, Z: -1}, Vector3{X: 0, Y: 0, Z: 1})
	require.True(t, ok)
	assert.InDelta(t, 1.0, entry, 1e-9)
	assert.InDelta(t, 2.0, exit, 1e-9)
	assert.Equal(t, AxisZ, entryAxis)
}

func TestRayEntryExitMiss(t *testing.T) {
	box := NewAABB(Vector3{X: 0, Y: 0, Z: 0}, Vector3{X: 1, Y: 1, Z: 1})
	_, _, _, _, ok := box.RayEntryExit(Vector3{X: 10, Y: 10, Z: -1}, Vector3{X: 0, Y: 0, Z: 1})
	assert.False(t, ok)
}

func TestRayEntryExitParallelOutsideSlab(t *testing.T) {
	box := NewAABB(Vector3{X: 0, Y: 0, Z: 0}, Vector3{X: 1, Y: 1, Z: 1})
	// Ray travels along Z only, with X origin outside the box's X slab.
	_, _, _, _, ok := box.RayEntryExit(Vector3{X: 5, Y: 0.5, Z: -1}, Vector3{X: 0, Y: 0, Z: 1})
	assert.False(t, ok)
}

func TestRayEntryExitPrecomputedMatchesDirectForm(t *testing.T) {
	box := NewAABB(Vector3{X: -1, Y: -1, Z: -1}, Vector3{X: 1, Y: 1, Z: 1})
	origin := Vector3{X: -5, Y: 0.2, Z: 0.3}
	dir := Vector3{X: 1, Y: 0, Z: 0}

	wantEntry, wantEntryAxis, wantExit, wantExitAxis, wantOK := box.RayEntryExit(origin, dir)
	di := newDirInverse(dir)
	gotEntry, gotEntryAxis, gotExit, gotExitAxis, gotOK := box.rayEntryExitPrecomputed(origin, di)

	assert.Equal(t, wantOK, gotOK)
	assert.Equal(t, wantEntry, gotEntry)
	assert.Equal(t, wantExit, gotExit)
	assert.Equal(t, wantEntryAxis, gotEntryAxis)
	assert.Equal(t, wantExitAxis, gotExitAxis)
}
