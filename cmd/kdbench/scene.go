package main

import (
	"github.com/mirstar13/go-kdtree"
	"github.com/mirstar13/go-kdtree/internal/primitives"
)

// buildScene lays out numSpheres spheres of radius 0.4 on a roughly cubic
// grid centered at the origin, spaced 1 unit apart, so neighboring spheres
// never overlap (a 0.2-unit gap separates them). The layout is fully
// deterministic across runs.
func buildScene(numSpheres int) []primitives.Sphere {
	spheres := make([]primitives.Sphere, 0, numSpheres)
	side := 1
	for side*side*side < numSpheres {
		side++
	}
	half := float64(side-1) / 2
	for i := 0; i < numSpheres; i++ {
		x := i % side
		y := (i / side) % side
		z := i / (side * side)
		spheres = append(spheres, primitives.Sphere{
			Center: kdtree.Vector3{
				X: float64(x) - half,
				Y: float64(y) - half,
				Z: float64(z) - half,
			},
			Radius: 0.4,
		})
	}
	return spheres
}

func sceneExtentFuncs(scene []primitives.Sphere) (kdtree.ExtentFunc, kdtree.ExtentInBoxFunc) {
	extent := func(id int) kdtree.AABB { return scene[id].Bounds() }
	extentInBox := func(id int, box kdtree.AABB) (kdtree.AABB, bool) {
		return primitives.ClippedBounds(scene[id], box)
	}
	return extent, extentInBox
}
