// Command kdbench builds a k-d tree over a synthetic grid of spheres and
// benchmarks every cost model against it, in the same spirit as the
// teacher's own benchmark-suite demo: build once, sweep configurations,
// print a tabulated comparison.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/mirstar13/go-kdtree"
)

func main() {
	numObjects := pflag.IntP("objects", "n", 2000, "number of spheres in the synthetic scene")
	numRays := pflag.IntP("rays", "r", 5000, "number of rays fired per cost model")
	verbose := pflag.BoolP("verbose", "v", false, "enable debug-level build logging")
	multiplier := pflag.Int("storage-multiplier", 2, "ExtentTripleStorageMultiplier")
	pflag.Parse()

	if *numObjects <= 0 || *numRays <= 0 {
		fmt.Fprintln(os.Stderr, "objects and rays must both be positive")
		os.Exit(1)
	}

	logger := zerolog.Nop()
	if *verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}

	config := BenchmarkConfig{
		NumObjects:        *numObjects,
		NumRays:           *numRays,
		StorageMultiplier: *multiplier,
		Logger:            logger,
		CostModels: []kdtree.CostModel{
			kdtree.CostModelMacdonaldBooth,
			kdtree.CostModelMacdonaldBoothModifiedCoefs,
			kdtree.CostModelDoubleRecurseGS,
			kdtree.CostModelDoubleRecurseModifiedCoefs,
		},
	}

	results := RunBenchmark(config)
	PrintBenchmarkResults(results)
}
