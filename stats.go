package kdtree

import "go.uber.org/atomic"

// BuildStats accumulates counters over a tree's construction and its
// lifetime of traversals. All fields are safe for concurrent use: a Tree
// may be traversed by many goroutines at once (traversal never mutates the
// tree), and they all tally into the same BuildStats.
type BuildStats struct {
	// NodesBuilt and LeavesBuilt count construction-time output.
	NodesBuilt  atomic.Int64
	LeavesBuilt atomic.Int64
	// MaxDepthReached is the deepest leaf produced during construction.
	MaxDepthReached atomic.Int64

	// NodesVisited and LeavesVisited count traversal-time work across every
	// call to Tree.Traverse since the tree was built.
	NodesVisited   atomic.Int64
	LeavesVisited  atomic.Int64
	ObjectsTested  atomic.Int64
}

func (s *BuildStats) recordInternalNode() {
	s.NodesBuilt.Inc()
}

func (s *BuildStats) recordLeaf(depth int) {
	s.LeavesBuilt.Inc()
	for {
		cur := s.MaxDepthReached.Load()
		if int64(depth) <= cur || s.MaxDepthReached.CAS(cur, int64(depth)) {
			return
		}
	}
}

func (s *BuildStats) recordNodeVisit() { s.NodesVisited.Inc() }
func (s *BuildStats) recordLeafVisit() { s.LeavesVisited.Inc() }
func (s *BuildStats) recordObjectsTested(n int) {
	s.ObjectsTested.Add(int64(n))
}
