package kdtree

import (
	"github.com/gammazero/deque"
)

// ObjectVisitor is called once per object a traversal reaches, in
// arbitrary order within a leaf. It returns a possibly-tightened stop
// distance: returning a value smaller than seekDistance narrows the
// traversal's remaining search (e.g. "found a hit at distance d, no need
// to look past d anymore"). Returning the same seekDistance it was given
// leaves the search radius unchanged.
type ObjectVisitor func(objectID int, seekDistance float64) (newSeekDistance float64)

// ListVisitor is called once per leaf a traversal reaches, with the full
// slice of object IDs the leaf owns, in the same narrowing-seekDistance
// style as ObjectVisitor. Prefer this over ObjectVisitor when a caller can
// batch-test a leaf's objects more cheaply together than one at a time.
type ListVisitor func(objectIDs []int, seekDistance float64) (newSeekDistance float64)

// stackFrame is one pending node on the traversal's explicit LIFO stack,
// along with the ray-parameter window ([entry, exit)) it was queued under.
// Re-deriving these bounds on pop (rather than re-testing the node's AABB
// from scratch) is what lets the engine skip a node outright once
// seekDistance has shrunk past its entry distance.
type stackFrame struct {
	nodeIdx int
	entry   float64
	exit    float64
}

// Traverse walks the tree in distance-order along the ray from origin in
// direction dir, visiting nodes nearest-first and stopping early once
// seekDistance has shrunk to exclude a node's entire entry/exit window.
// obeySeekDistance false disables that pruning, visiting every node the
// ray passes through at distances >= 0 regardless of what visitor reports
// (useful for "find all" queries rather than "find nearest").
//
// Exactly one of objVisitor/listVisitor should be non-nil; Traverse calls
// listVisitor once per leaf reached, or objVisitor once per object in that
// leaf (listVisitor is used if both are set). It returns the final
// seekDistance after the walk completes or is pruned short.
func (t *Tree) Traverse(origin, dir Vector3, seekDistance float64, obeySeekDistance bool, objVisitor ObjectVisitor, listVisitor ListVisitor) (float64, error) {
	if objVisitor == nil && listVisitor == nil {
		return seekDistance, contractErr("Traverse requires a non-nil ObjectVisitor or ListVisitor")
	}
	if dir == (Vector3{}) {
		return seekDistance, contractErr("ray direction must be non-zero")
	}

	di := newDirInverse(dir)
	root := &t.nodes[t.root]
	rootEntry, _, rootExit, _, ok := root.box.rayEntryExitPrecomputed(origin, di)
	if !ok || rootExit < 0 {
		// Misses the root entirely, or the whole box lies behind the origin.
		return seekDistance, nil
	}
	if rootEntry < 0 {
		rootEntry = 0
	}
	if obeySeekDistance && rootEntry > seekDistance {
		return seekDistance, nil
	}

	var stack deque.Deque
	stack.PushBack(stackFrame{nodeIdx: t.root, entry: rootEntry, exit: rootExit})

	// hitParallel/parallelHitMax track whether any parallel-to-split-plane
	// node has been descended into both children at once: the near/far
	// ordering guarantee does not hold along that path (spec.md §4.6), so a
	// stack entry must not be discarded by the seekDistance cutoff below
	// while its minDist is still within that span.
	hitParallel := false
	parallelHitMax := 0.0

	for stack.Len() > 0 {
		frame := stack.PopBack().(stackFrame)
		if obeySeekDistance && frame.entry > seekDistance {
			if !hitParallel || frame.entry >= parallelHitMax {
				continue
			}
		}
		node := &t.nodes[frame.nodeIdx]
		t.stats.recordNodeVisit()

		if node.isLeaf() {
			t.stats.recordLeafVisit()
			if len(node.objects) == 0 {
				continue
			}
			t.stats.recordObjectsTested(len(node.objects))
			if listVisitor != nil {
				seekDistance = listVisitor(node.objects, seekDistance)
			} else {
				for _, id := range node.objects {
					seekDistance = objVisitor(id, seekDistance)
					if obeySeekDistance && seekDistance < frame.entry {
						break
					}
				}
			}
			continue
		}

		axis := node.splitAxis
		originOnAxis := origin.component(axis)
		dirSign := di.sign[axis]

		if dirSign == 0 {
			// Ray runs parallel to the split plane.
			switch {
			case originOnAxis < node.splitValue:
				// Strictly on the left: it stays there for the whole
				// [entry, exit) window.
				if node.hasLeft() {
					stack.PushBack(stackFrame{nodeIdx: node.left, entry: frame.entry, exit: frame.exit})
				}
			case originOnAxis > node.splitValue:
				if node.hasRight() {
					stack.PushBack(stackFrame{nodeIdx: node.right, entry: frame.entry, exit: frame.exit})
				}
			case node.hasLeft() && node.hasRight():
				// Exactly on the plane with both children present: an
				// object on either side can be the nearest hit, so both
				// must be visited with the full interval.
				stack.PushBack(stackFrame{nodeIdx: node.right, entry: frame.entry, exit: frame.exit})
				stack.PushBack(stackFrame{nodeIdx: node.left, entry: frame.entry, exit: frame.exit})
				hitParallel = true
				if frame.exit > parallelHitMax {
					parallelHitMax = frame.exit
				}
			case node.hasLeft():
				stack.PushBack(stackFrame{nodeIdx: node.left, entry: frame.entry, exit: frame.exit})
			case node.hasRight():
				stack.PushBack(stackFrame{nodeIdx: node.right, entry: frame.entry, exit: frame.exit})
			}
			continue
		}

		// Distance along the ray at which it crosses the split plane.
		tSplit := (node.splitValue - originOnAxis) * di.invComponent(axis)

		nearChild, farChild := node.left, node.right
		if dirSign < 0 {
			nearChild, farChild = node.right, node.left
		}

		// Push the far child first so the near child pops first: the stack
		// is LIFO, so whichever is pushed last is visited next.
		if tSplit <= frame.exit && hasChild(farChild) {
			stack.PushBack(stackFrame{nodeIdx: farChild, entry: maxF(tSplit, frame.entry), exit: frame.exit})
		}
		if tSplit >= frame.entry && hasChild(nearChild) {
			stack.PushBack(stackFrame{nodeIdx: nearChild, entry: frame.entry, exit: minF(tSplit, frame.exit)})
		}
	}

	return seekDistance, nil
}

func hasChild(idx int) bool { return idx != noChild }
