package kdtree

import "math"

// ExtentFunc returns an object's unclipped bounding box in world space.
type ExtentFunc func(objectID int) AABB

// ExtentInBoxFunc returns an object's bounding box clipped to box. ok is
// false if the object does not actually intersect box (a contract
// violation on the caller's part: BuildTree only ever calls this for
// objects already known, via the parent node's own bookkeeping, to
// intersect box).
type ExtentInBoxFunc func(objectID int, box AABB) (clipped AABB, ok bool)

// Tree is an immutable k-d tree over a fixed set of objects, built once by
// BuildTree and safe for concurrent traversal by any number of goroutines.
type Tree struct {
	nodes []treeNode
	root  int
	stats *BuildStats
	opts  BuildOptions
}

// Stats returns the tree's build/traversal counters.
func (t *Tree) Stats() *BuildStats { return t.stats }

// Bounds returns the root node's bounding box.
func (t *Tree) Bounds() AABB { return t.nodes[t.root].box }

// side classifies where one object's clipped extent falls relative to a
// candidate split plane.
type side uint8

const (
	sideLeft side = iota
	sideRight
	sideBoth
)

func classifySide(clipped AABB, axis Axis, value float64) side {
	switch {
	case clipped.AxisMax(axis) <= value:
		return sideLeft
	case clipped.AxisMin(axis) >= value:
		return sideRight
	default:
		return sideBoth
	}
}

// BuildTree constructs a k-d tree over numObjects objects (identified by
// the IDs 0..numObjects-1). extent supplies an object's unclipped world
// bounds; extentInBox supplies the same object's bounds clipped to a
// given node's box, used to re-tighten bounds as the tree descends
// (spec.md §4.3). A zero-object scene is not an error: it builds a single
// empty leaf.
func BuildTree(numObjects int, extent ExtentFunc, extentInBox ExtentInBoxFunc, opts BuildOptions) (*Tree, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	stats := &BuildStats{}

	if numObjects == 0 {
		return &Tree{nodes: []treeNode{newLeafNode(AABB{}, nil)}, root: 0, stats: stats, opts: opts}, nil
	}
	if numObjects < 0 {
		return nil, contractErr("numObjects must be >= 0, got %d", numObjects)
	}

	sceneBox := extent(0)
	boxes := make([]AABB, numObjects)
	boxes[0] = sceneBox
	for id := 1; id < numObjects; id++ {
		boxes[id] = extent(id)
		sceneBox = sceneBox.EnlargeToEnclose(boxes[id])
	}

	capacity := 2 * opts.ExtentTripleStorageMultiplier * numObjects
	arenas := [3]*extentArena{newExtentArena(capacity), newExtentArena(capacity), newExtentArena(capacity)}
	streams := [3]*extentStream{
		newExtentStream(arenas[0], 0),
		newExtentStream(arenas[1], 0),
		newExtentStream(arenas[2], 0),
	}
	for id, box := range boxes {
		for axis := 0; axis < 3; axis++ {
			streams[axis].appendExtent(box.AxisMin(Axis(axis)), box.AxisMax(Axis(axis)), id)
		}
	}
	for axis := 0; axis < 3; axis++ {
		streams[axis].sort()
		arenas[axis].tail = streams[axis].n
	}

	b := &builder{opts: opts, stats: stats, extentInBox: extentInBox, nodes: make([]treeNode, 0, 2*numObjects)}
	rootIdx, err := b.buildSubTree(sceneBox, streams[0], streams[1], streams[2], numObjects, 0)
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug().
		Int("objects", numObjects).
		Int64("nodes", stats.NodesBuilt.Load()).
		Int64("leaves", stats.LeavesBuilt.Load()).
		Int64("maxDepth", stats.MaxDepthReached.Load()).
		Msg("kdtree build complete")
	return &Tree{nodes: b.nodes, root: rootIdx, stats: stats, opts: opts}, nil
}

type builder struct {
	opts        BuildOptions
	stats       *BuildStats
	extentInBox ExtentInBoxFunc
	nodes       []treeNode
}

func (b *builder) addNode(n treeNode) int {
	b.nodes = append(b.nodes, n)
	return len(b.nodes) - 1
}

func (b *builder) makeLeaf(box AABB, ids []int, depth int) int {
	b.stats.recordLeaf(depth)
	return b.addNode(newLeafNode(box, ids))
}

// buildSubTree recursively splits the node bounded by box and holding the
// objects described by xs/ys/zs (one extent stream per axis, all scoped to
// exactly this node's membership). It returns the index of the node it
// created in b.nodes.
func (b *builder) buildSubTree(box AABB, xs, ys, zs *extentStream, numObjects int, depth int) (int, error) {
	ids := xs.objectIDs()

	totalCost := 0.0
	for _, id := range ids {
		totalCost += b.opts.objectCost(id)
	}
	leafCost := b.opts.StoppingCostPerRay * totalCost

	if numObjects <= b.opts.MinObjectsPerLeaf || depth >= b.opts.MaxDepth {
		return b.makeLeaf(box, ids, depth), nil
	}

	evaluator := newCostEvaluator(b.opts.CostModel, b.opts.StoppingCostPerRay)
	evaluator.init(box, totalCost)

	bestCost := leafCost
	haveSplit := false
	var bestAxis Axis
	var bestValue float64
	bestExponent := math.Inf(1)

	streams := [3]*extentStream{xs, ys, zs}
	for axisIdx, s := range streams {
		sweepAxis(Axis(axisIdx), s, evaluator, box, totalCost, b.opts.objectCost, &bestCost, &haveSplit, &bestAxis, &bestValue, &bestExponent)
	}

	if !haveSplit {
		return b.makeLeaf(box, ids, depth), nil
	}
	b.stats.recordInternalNode()

	leftBox := box.WithAxisMax(bestAxis, bestValue)
	rightBox := box.WithAxisMin(bestAxis, bestValue)

	leftIDs := make([]int, 0, len(ids))
	rightIDs := make([]int, 0, len(ids))
	for _, id := range ids {
		clipped, ok := b.extentInBox(id, box)
		if !ok {
			return 0, contractErr("object %d does not intersect its own node box", id)
		}
		switch classifySide(clipped, bestAxis, bestValue) {
		case sideLeft:
			leftIDs = append(leftIDs, id)
		case sideRight:
			rightIDs = append(rightIDs, id)
		default:
			leftIDs = append(leftIDs, id)
			rightIDs = append(rightIDs, id)
		}
	}

	// The tail-allocated child's triples are dead once its subtree is built,
	// so its tail space is handed back at that point.
	var tailMarks [3]int
	for axis, s := range [3]*extentStream{xs, ys, zs} {
		tailMarks[axis] = s.arena.tail
	}
	releaseTail := func() {
		for axis, s := range [3]*extentStream{xs, ys, zs} {
			s.arena.tail = tailMarks[axis]
		}
	}

	leftLarger := len(leftIDs) >= len(rightIDs)
	leftStreams, err := b.populateSide(xs, ys, zs, leftIDs, leftBox, leftLarger)
	if err != nil {
		return 0, err
	}
	rightStreams, err := b.populateSide(xs, ys, zs, rightIDs, rightBox, !leftLarger)
	if err != nil {
		return 0, err
	}

	var leftIdx, rightIdx int
	if len(leftIDs) <= len(rightIDs) {
		if leftIdx, err = b.buildSubTree(leftBox, leftStreams[0], leftStreams[1], leftStreams[2], len(leftIDs), depth+1); err != nil {
			return 0, err
		}
		if !leftLarger {
			releaseTail()
		}
		if rightIdx, err = b.buildSubTree(rightBox, rightStreams[0], rightStreams[1], rightStreams[2], len(rightIDs), depth+1); err != nil {
			return 0, err
		}
		releaseTail()
	} else {
		if rightIdx, err = b.buildSubTree(rightBox, rightStreams[0], rightStreams[1], rightStreams[2], len(rightIDs), depth+1); err != nil {
			return 0, err
		}
		releaseTail()
		if leftIdx, err = b.buildSubTree(leftBox, leftStreams[0], leftStreams[1], leftStreams[2], len(leftIDs), depth+1); err != nil {
			return 0, err
		}
	}

	return b.addNode(newInternalNode(box, bestAxis, bestValue, leftIdx, rightIdx)), nil
}

// populateSide builds fresh, re-clipped extent streams (one per axis) for
// one child. reuse selects whether this child claims the parent's own
// arena windows (the larger child, compacting into space that's about to
// be abandoned anyway) or claims new space from each arena's tail (the
// smaller child) — spec.md §4.3's "smaller child copied to the free tail,
// larger child compacted in place".
func (b *builder) populateSide(px, py, pz *extentStream, ids []int, childBox AABB, reuse bool) ([3]*extentStream, error) {
	var out [3]*extentStream
	parents := [3]*extentStream{px, py, pz}
	for axis := 0; axis < 3; axis++ {
		arena := parents[axis].arena
		var start int
		if reuse {
			start = parents[axis].start
		} else {
			off, err := arena.allocTail(len(ids))
			if err != nil {
				return out, err
			}
			start = off
		}
		st := newExtentStream(arena, start)
		for _, id := range ids {
			clipped, ok := b.extentInBox(id, childBox)
			if !ok {
				return out, contractErr("object %d does not intersect its assigned child box", id)
			}
			st.appendExtent(clipped.AxisMin(Axis(axis)), clipped.AxisMax(Axis(axis)), id)
		}
		st.sort()
		out[axis] = st
	}
	return out, nil
}

// sweepAxis scans stream's sorted triples once, evaluating every interior
// candidate split plane against evaluator and updating the best-so-far
// split found across all three axes.
//
// At each distinct coordinate there are two candidate split positions
// (spec.md §4.5 step 1): just before the event, where this value's MAX
// triples have already been closed (their objects no longer count on the
// right side) but its FLAT/MIN triples have not yet been opened onto the
// left side, and just after, where both have. Evaluating only the "after" state (as an earlier version of
// this function did) charges every MIN triple's object to the left side
// even when the matching MAX of a touching neighbor closes at the exact
// same coordinate, which double-counts abutting geometry into both
// children instead of finding the clean disjoint split between them.
func sweepAxis(
	axis Axis, stream *extentStream, evaluator costEvaluator, nodeBox AABB, totalCost float64,
	objectCost func(int) float64,
	bestCost *float64, haveSplit *bool, bestAxis *Axis, bestValue *float64, bestExponent *float64,
) {
	triples := stream.triples()
	m := len(triples)
	if m == 0 {
		return
	}
	totalObjects := stream.numObjects()

	closed, opened := 0, 0
	closedCost, openedCost := 0.0, 0.0

	evalCandidate := func(v float64) {
		// numLeftMembers/numRightMembers double-count objects straddling v
		// (opened but not yet closed) into both sides, matching spec.md
		// §4.5 step 3's "primitive overlapping the split belongs to both
		// children" rule.
		numLeftMembers := opened
		numRightMembers := totalObjects - closed
		costLeft := openedCost
		costRight := totalCost - closedCost

		leftBox := nodeBox.WithAxisMax(axis, v)
		rightBox := nodeBox.WithAxisMin(axis, v)
		leftArea := leftBox.SurfaceArea()
		rightArea := rightBox.SurfaceArea()

		var c splitCost
		if *haveSplit {
			if bc, ok := evalBounded(evaluator, leftArea, rightArea, costLeft, costRight, numLeftMembers, numRightMembers, *bestExponent); ok {
				c = bc
			} else {
				c = evaluator.eval(leftArea, rightArea, costLeft, costRight, numLeftMembers, numRightMembers)
			}
		} else {
			c = evaluator.eval(leftArea, rightArea, costLeft, costRight, numLeftMembers, numRightMembers)
		}

		if c.value < *bestCost {
			*bestCost = c.value
			*haveSplit = true
			*bestAxis = axis
			*bestValue = v
			*bestExponent = c.exponent
		}
	}

	i := 0
	firstGroup := true
	for i < m {
		v := triples[i].value
		j := i

		// Phase 1: close this value's MAX triples, removing their objects
		// from the right side. Sort order (Max < Flat < Min) guarantees these triples, if any, sit at
		// the front of the group.
		for j < m && triples[j].value == v && triples[j].kind == extentKindMax {
			closed++
			closedCost += objectCost(triples[j].objectID)
			j++
		}

		// "Just before v": this value's MAX triples are folded in, its
		// FLAT/MIN triples are not. Skipped for the very first group, where
		// nothing has opened yet and the left side is trivially empty.
		if !firstGroup {
			evalCandidate(v)
		}

		// Phase 2: open this value's FLAT/MIN triples onto the left side
		// (a FLAT is also closed, since a zero-width object at exactly v is
		// entirely left of any split placed strictly after v).
		for j < m && triples[j].value == v {
			t := triples[j]
			cost := objectCost(t.objectID)
			switch t.kind {
			case extentKindFlat:
				closed++
				opened++
				closedCost += cost
				openedCost += cost
			case extentKindMin:
				opened++
				openedCost += cost
			}
			j++
		}

		i = j
		firstGroup = false
		if i >= m {
			break // final group: split here always leaves the right side empty
		}

		// "Just after v": all of this value's triples are folded in.
		evalCandidate(v)
	}
}
