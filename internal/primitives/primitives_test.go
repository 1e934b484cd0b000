package primitives

import (
	"testing"

	"github.com/mirstar13/go-kdtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSphereIntersect(t *testing.T) {
	s := Sphere{Center: kdtree.Vector3{X: 0, Y: 0, Z: 5}, Radius: 1}

	d, ok := s.Intersect(kdtree.Vector3{}, kdtree.Vector3{X: 0, Y: 0, Z: 1})
	require.True(t, ok)
	assert.InDelta(t, 4.0, d, 1e-9)

	_, ok = s.Intersect(kdtree.Vector3{}, kdtree.Vector3{X: 1, Y: 0, Z: 0})
	assert.False(t, ok)
}

func TestSphereBounds(t *testing.T) {
	s := Sphere{Center: kdtree.Vector3{X: 1, Y: 2, Z: 3}, Radius: 2}
	b := s.Bounds()
	assert.Equal(t, kdtree.Vector3{X: -1, Y: 0, Z: 1}, b.Min)
	assert.Equal(t, kdtree.Vector3{X: 3, Y: 4, Z: 5}, b.Max)
}

func TestTriangleIntersect(t *testing.T) {
	tri := Triangle{
		P0: kdtree.Vector3{X: -1, Y: -1, Z: 5},
		P1: kdtree.Vector3{X: 1, Y: -1, Z: 5},
		P2: kdtree.Vector3{X: 0, Y: 1, Z: 5},
	}
	d, ok := tri.Intersect(kdtree.Vector3{}, kdtree.Vector3{X: 0, Y: 0, Z: 1})
	require.True(t, ok)
	assert.InDelta(t, 5.0, d, 1e-9)

	_, ok = tri.Intersect(kdtree.Vector3{X: 10, Y: 10, Z: 0}, kdtree.Vector3{X: 0, Y: 0, Z: 1})
	assert.False(t, ok)
}

func TestParallelogramIntersect(t *testing.T) {
	p := Parallelogram{
		Origin: kdtree.Vector3{X: -1, Y: -1, Z: 5},
		Edge1:  kdtree.Vector3{X: 2, Y: 0, Z: 0},
		Edge2:  kdtree.Vector3{X: 0, Y: 2, Z: 0},
	}
	d, ok := p.Intersect(kdtree.Vector3{}, kdtree.Vector3{X: 0, Y: 0, Z: 1})
	require.True(t, ok)
	assert.InDelta(t, 5.0, d, 1e-9)

	_, ok = p.Intersect(kdtree.Vector3{X: 5, Y: 5, Z: 0}, kdtree.Vector3{X: 0, Y: 0, Z: 1})
	assert.False(t, ok)
}

func TestParallelepipedBoundsAndIntersect(t *testing.T) {
	pp := Parallelepiped{
		Origin: kdtree.Vector3{X: 0, Y: 0, Z: 0},
		Edge1:  kdtree.Vector3{X: 1, Y: 0, Z: 0},
		Edge2:  kdtree.Vector3{X: 0, Y: 1, Z: 0},
		Edge3:  kdtree.Vector3{X: 0, Y: 0, Z: 1},
	}
	b := pp.Bounds()
	assert.Equal(t, kdtree.Vector3{X: 0, Y: 0, Z: 0}, b.Min)
	assert.Equal(t, kdtree.Vector3{X: 1, Y: 1, Z: 1}, b.Max)

	d, ok := pp.Intersect(kdtree.Vector3{X: 0.5, Y: 0.5, Z: -5}, kdtree.Vector3{X: 0, Y: 0, Z: 1})
	require.True(t, ok)
	assert.InDelta(t, 5.0, d, 1e-9)
}

func TestClippedBounds(t *testing.T) {
	s := Sphere{Center: kdtree.Vector3{X: 0, Y: 0, Z: 0}, Radius: 2}
	box := kdtree.NewAABB(kdtree.Vector3{X: -1, Y: -10, Z: -10}, kdtree.Vector3{X: 1, Y: 10, Z: 10})
	clipped, ok := ClippedBounds(s, box)
	require.True(t, ok)
	assert.Equal(t, -1.0, clipped.Min.X)
	assert.Equal(t, 1.0, clipped.Max.X)

	farBox := kdtree.NewAABB(kdtree.Vector3{X: 100, Y: 100, Z: 100}, kdtree.Vector3{X: 200, Y: 200, Z: 200})
	_, ok = ClippedBounds(s, farBox)
	assert.False(t, ok)
}
