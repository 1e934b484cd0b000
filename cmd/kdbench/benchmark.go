package main

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mirstar13/go-kdtree"
)

// BenchmarkConfig mirrors the teacher's own BenchmarkConfig shape:
// everything RunBenchmark needs to sweep a matrix of configurations.
type BenchmarkConfig struct {
	NumObjects         int
	NumRays            int
	StorageMultiplier  int
	CostModels         []kdtree.CostModel
	Logger             zerolog.Logger
}

// BenchmarkResult holds results for a single (cost model) run.
type BenchmarkResult struct {
	CostModel    kdtree.CostModel
	BuildTime    time.Duration
	TraverseTime time.Duration
	NodesBuilt   int64
	LeavesBuilt  int64
	MaxDepth     int64
	NodesPerRay  float64
}

// RunBenchmark builds the tree once per cost model in config, fires
// config.NumRays random rays through each, and reports timing plus the
// resulting BuildStats — the same "build once, sweep configurations,
// tabulate" shape as the teacher's RunBenchmark over render modes.
func RunBenchmark(config BenchmarkConfig) []BenchmarkResult {
	scene := buildScene(config.NumObjects)
	extent, extentInBox := sceneExtentFuncs(scene)

	rng := rand.New(rand.NewSource(1))
	rays := make([]kdtree.Ray, config.NumRays)
	for i := range rays {
		origin := kdtree.Vector3{X: rng.Float64()*4 - 2, Y: rng.Float64()*4 - 2, Z: -10}
		rays[i] = kdtree.NewRay(origin, kdtree.Vector3{X: 0, Y: 0, Z: 1})
	}

	results := make([]BenchmarkResult, 0, len(config.CostModels))
	for _, model := range config.CostModels {
		opts := kdtree.NewBuildOptions()
		opts.CostModel = model
		opts.ExtentTripleStorageMultiplier = config.StorageMultiplier
		opts.Logger = config.Logger

		start := time.Now()
		tree, err := kdtree.BuildTree(len(scene), extent, extentInBox, opts)
		buildTime := time.Since(start)
		if err != nil {
			fmt.Printf("build failed for %s: %v\n", model, err)
			continue
		}

		start = time.Now()
		for _, ray := range rays {
			tree.Traverse(ray.Origin, ray.Direction, 1e9, true,
				func(objectID int, seek float64) float64 {
					if d, ok := scene[objectID].Intersect(ray.Origin, ray.Direction); ok && d < seek {
						return d
					}
					return seek
				}, nil)
		}
		traverseTime := time.Since(start)

		stats := tree.Stats()
		results = append(results, BenchmarkResult{
			CostModel:    model,
			BuildTime:    buildTime,
			TraverseTime: traverseTime,
			NodesBuilt:   stats.NodesBuilt.Load(),
			LeavesBuilt:  stats.LeavesBuilt.Load(),
			MaxDepth:     stats.MaxDepthReached.Load(),
			NodesPerRay:  float64(stats.NodesVisited.Load()) / float64(config.NumRays),
		})
	}
	return results
}

// PrintBenchmarkResults prints a formatted results table, in the same
// fixed-width tabular style as the teacher's PrintBenchmarkResults.
func PrintBenchmarkResults(results []BenchmarkResult) {
	fmt.Println(strings.Repeat("=", 88))
	fmt.Println("KDTREE BENCHMARK RESULTS")
	fmt.Println(strings.Repeat("=", 88))
	fmt.Printf("%-28s %-12s %-12s %-10s %-10s %-10s\n",
		"Cost Model", "Build", "Traverse", "Nodes", "Leaves", "Nodes/Ray")
	fmt.Println(strings.Repeat("=", 88))
	for _, r := range results {
		fmt.Printf("%-28s %-12s %-12s %-10d %-10d %-10.2f\n",
			r.CostModel,
			r.BuildTime.Round(time.Microsecond),
			r.TraverseTime.Round(time.Microsecond),
			r.NodesBuilt,
			r.LeavesBuilt,
			r.NodesPerRay,
		)
	}
	fmt.Println(strings.Repeat("=", 88))
}
