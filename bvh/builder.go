package bvh

import (
	"sort"

	"github.com/achilleasa/lumen/shape"
	"github.com/achilleasa/lumen/types"
)

func triBounds(tris []*shape.Triangle) types.Box {
	var out types.Box
	for _, tri := range tris {
		out = types.Merge(out, tri.Bounds())
	}
	return out
}

func centroidBounds(tris []*shape.Triangle) types.Box {
	var out types.Box
	for _, tri := range tris {
		out.Extend(tri.Centroid())
	}
	return out
}

func longestAxis(b types.Box) (axis int, extent float32) {
	side := b.Maxi.Sub(b.Mini)
	for i := 1; i < 3; i++ {
		if side[i] > side[axis] {
			axis = i
		}
	}
	return axis, side[axis]
}

// Split the work list in two halves. Returns false when no worthwhile
// split exists and the caller should emit a leaf.
func (b *builder) split(tris []*shape.Triangle) ([]*shape.Triangle, []*shape.Triangle, bool) {
	if b.strategy == SAH {
		return b.splitSAH(tris)
	}
	return b.splitMedian(tris)
}

// Partition around the centroid median along the axis of maximum
// centroid extent.
func (b *builder) splitMedian(tris []*shape.Triangle) ([]*shape.Triangle, []*shape.Triangle, bool) {
	axis, extent := longestAxis(centroidBounds(tris))
	if extent <= 0 {
		return nil, nil, false
	}

	sort.Slice(tris, func(i, j int) bool {
		return tris[i].Centroid()[axis] < tris[j].Centroid()[axis]
	})
	mid := len(tris) / 2
	return tris[:mid], tris[mid:], true
}

// Project centroids into uniform buckets along the longest axis and
// pick the split with the lowest surface area heuristic cost. Falls
// back to a leaf when no split beats the leaf cost.
func (b *builder) splitSAH(tris []*shape.Triangle) ([]*shape.Triangle, []*shape.Triangle, bool) {
	cb := centroidBounds(tris)
	axis, extent := longestAxis(cb)
	if extent <= 0 {
		return nil, nil, false
	}

	nodeBounds := triBounds(tris)
	nodeArea := nodeBounds.Area()
	if nodeArea <= 0 {
		return nil, nil, false
	}

	bucketOf := func(tri *shape.Triangle) int {
		bucket := int(float32(sahBuckets) * (tri.Centroid()[axis] - cb.Mini[axis]) / extent)
		if bucket >= sahBuckets {
			bucket = sahBuckets - 1
		}
		return bucket
	}

	var counts [sahBuckets]int
	var bounds [sahBuckets]types.Box
	for _, tri := range tris {
		bucket := bucketOf(tri)
		counts[bucket]++
		bounds[bucket] = types.Merge(bounds[bucket], tri.Bounds())
	}

	// Sweep the candidate splits between consecutive buckets; split s
	// sends buckets [0, s] left and the rest right.
	bestSplit := -1
	bestCost := float32(len(tris))
	for s := 0; s < sahBuckets-1; s++ {
		var leftCount, rightCount int
		var leftBox, rightBox types.Box
		for i := 0; i <= s; i++ {
			leftCount += counts[i]
			leftBox = types.Merge(leftBox, bounds[i])
		}
		for i := s + 1; i < sahBuckets; i++ {
			rightCount += counts[i]
			rightBox = types.Merge(rightBox, bounds[i])
		}
		if leftCount == 0 || rightCount == 0 {
			continue
		}

		cost := 1.0 + (float32(leftCount)*leftBox.Area()+float32(rightCount)*rightBox.Area())/nodeArea
		if cost < bestCost {
			bestCost = cost
			bestSplit = s
		}
	}
	if bestSplit == -1 {
		return nil, nil, false
	}

	// In-place partition around the winning bucket boundary.
	left := 0
	right := len(tris) - 1
	for left <= right {
		if bucketOf(tris[left]) <= bestSplit {
			left++
			continue
		}
		tris[left], tris[right] = tris[right], tris[left]
		right--
	}
	return tris[:left], tris[left:], true
}

// Repeatedly split the work list to form up to width groups. A group
// that cannot be split carries over whole and collapses to a leaf at
// that branch.
func (b *builder) fanOut(tris []*shape.Triangle, width int) [][]*shape.Triangle {
	groups := [][]*shape.Triangle{tris}
	for rounds := width; rounds > 1; rounds >>= 1 {
		next := make([][]*shape.Triangle, 0, len(groups)*2)
		for _, group := range groups {
			if len(group) <= b.leafLimit {
				next = append(next, group)
				continue
			}
			left, right, ok := b.split(group)
			if !ok {
				next = append(next, group)
				continue
			}
			next = append(next, left, right)
		}
		groups = next
	}
	return groups
}

func (b *builder) build(tris []*shape.Triangle, depth int) *node {
	if depth > b.stats.maxDepth {
		b.stats.maxDepth = depth
	}

	out := &node{bounds: triBounds(tris)}
	if len(tris) <= b.leafLimit {
		out.tris = tris
		b.stats.leafs++
		return out
	}

	left, right, ok := b.split(tris)
	if !ok {
		out.tris = tris
		b.stats.leafs++
		return out
	}

	out.left = b.build(left, depth+1)
	out.right = b.build(right, depth+1)
	b.stats.nodes++
	return out
}

func (b *builder) build4(tris []*shape.Triangle, depth int) *node4 {
	if depth > b.stats.maxDepth {
		b.stats.maxDepth = depth
	}

	out := &node4{bounds: triBounds(tris)}
	if len(tris) <= b.leafLimit {
		out.tris = tris
		b.stats.leafs++
		return out
	}

	groups := b.fanOut(tris, 4)
	if len(groups) == 1 {
		out.tris = tris
		b.stats.leafs++
		return out
	}

	for _, group := range groups {
		child := b.build4(group, depth+1)
		out.boxes.SetLane(out.count, child.bounds)
		out.children[out.count] = child
		out.count++
	}
	b.stats.nodes++
	return out
}

func (b *builder) build8(tris []*shape.Triangle, depth int) *node8 {
	if depth > b.stats.maxDepth {
		b.stats.maxDepth = depth
	}

	out := &node8{bounds: triBounds(tris)}
	if len(tris) <= b.leafLimit {
		out.tris = tris
		b.stats.leafs++
		return out
	}

	groups := b.fanOut(tris, 8)
	if len(groups) == 1 {
		out.tris = tris
		b.stats.leafs++
		return out
	}

	for _, group := range groups {
		child := b.build8(group, depth+1)
		out.boxes.SetLane(out.count, child.bounds)
		out.children[out.count] = child
		out.count++
	}
	b.stats.nodes++
	return out
}
