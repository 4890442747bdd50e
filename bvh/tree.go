package bvh

import (
	"github.com/achilleasa/lumen/shape"
	"github.com/achilleasa/lumen/types"
)

// Tree answers ray queries against the triangle set it was built
// from. It satisfies the mesh intersector contract for all widths.
type Tree struct {
	width int
	root  *node
	root4 *node4
	root8 *node8
}

type node struct {
	bounds types.Box
	left   *node
	right  *node
	tris   []*shape.Triangle
}

type node4 struct {
	bounds   types.Box
	boxes    types.Box4
	children [4]*node4
	count    int
	tris     []*shape.Triangle
}

type node8 struct {
	bounds   types.Box
	boxes    types.Box8
	children [8]*node8
	count    int
	tris     []*shape.Triangle
}

// Get the tree fan-out.
func (t *Tree) Width() int {
	return t.width
}

// Run a closest-hit query, tightening rec on success.
func (t *Tree) Intersect(ray *types.Ray, rec *shape.HitRecord) bool {
	switch t.width {
	case 4:
		packed := ray.Packed()
		return t.root4.intersect(ray, &packed, rec)
	case 8:
		packed := ray.Packed()
		return t.root8.intersect(ray, &packed, rec)
	default:
		return t.root.intersect(ray, rec)
	}
}

// Run an occlusion query, tightening rec on success.
func (t *Tree) ShadowIntersect(ray *types.Ray, rec *shape.ShadowRecord) bool {
	switch t.width {
	case 4:
		packed := ray.Packed()
		return t.root4.shadowIntersect(ray, &packed, rec)
	case 8:
		packed := ray.Packed()
		return t.root8.shadowIntersect(ray, &packed, rec)
	default:
		return t.root.shadowIntersect(ray, rec)
	}
}

// Recursion order between children does not matter for correctness;
// triangles refuse to overwrite a closer existing hit.
func (n *node) intersect(ray *types.Ray, rec *shape.HitRecord) bool {
	if !n.bounds.Hit(ray) {
		return false
	}
	if n.tris != nil {
		var found bool
		for _, tri := range n.tris {
			if tri.Hit(ray, rec) {
				found = true
			}
		}
		return found
	}

	found := n.left.intersect(ray, rec)
	if n.right.intersect(ray, rec) {
		found = true
	}
	return found
}

func (n *node) shadowIntersect(ray *types.Ray, rec *shape.ShadowRecord) bool {
	if !n.bounds.Hit(ray) {
		return false
	}
	if n.tris != nil {
		var found bool
		for _, tri := range n.tris {
			if tri.ShadowHit(ray, rec) {
				found = true
			}
		}
		return found
	}

	found := n.left.shadowIntersect(ray, rec)
	if n.right.shadowIntersect(ray, rec) {
		found = true
	}
	return found
}

func (n *node4) intersect(ray *types.Ray, packed *types.PackedRay, rec *shape.HitRecord) bool {
	if n.tris != nil {
		var found bool
		for _, tri := range n.tris {
			if tri.Hit(ray, rec) {
				found = true
			}
		}
		return found
	}

	mask := n.boxes.Hit(packed)
	var found bool
	for lane := 0; lane < n.count; lane++ {
		if mask&(1<<uint(lane)) == 0 {
			continue
		}
		if n.children[lane].intersect(ray, packed, rec) {
			found = true
		}
	}
	return found
}

func (n *node4) shadowIntersect(ray *types.Ray, packed *types.PackedRay, rec *shape.ShadowRecord) bool {
	if n.tris != nil {
		var found bool
		for _, tri := range n.tris {
			if tri.ShadowHit(ray, rec) {
				found = true
			}
		}
		return found
	}

	mask := n.boxes.Hit(packed)
	var found bool
	for lane := 0; lane < n.count; lane++ {
		if mask&(1<<uint(lane)) == 0 {
			continue
		}
		if n.children[lane].shadowIntersect(ray, packed, rec) {
			found = true
		}
	}
	return found
}

func (n *node8) intersect(ray *types.Ray, packed *types.PackedRay, rec *shape.HitRecord) bool {
	if n.tris != nil {
		var found bool
		for _, tri := range n.tris {
			if tri.Hit(ray, rec) {
				found = true
			}
		}
		return found
	}

	mask := n.boxes.Hit(packed)
	var found bool
	for lane := 0; lane < n.count; lane++ {
		if mask&(1<<uint(lane)) == 0 {
			continue
		}
		if n.children[lane].intersect(ray, packed, rec) {
			found = true
		}
	}
	return found
}

func (n *node8) shadowIntersect(ray *types.Ray, packed *types.PackedRay, rec *shape.ShadowRecord) bool {
	if n.tris != nil {
		var found bool
		for _, tri := range n.tris {
			if tri.ShadowHit(ray, rec) {
				found = true
			}
		}
		return found
	}

	mask := n.boxes.Hit(packed)
	var found bool
	for lane := 0; lane < n.count; lane++ {
		if mask&(1<<uint(lane)) == 0 {
			continue
		}
		if n.children[lane].shadowIntersect(ray, packed, rec) {
			found = true
		}
	}
	return found
}
