package shape

import (
	"github.com/achilleasa/lumen/material"
	"github.com/achilleasa/lumen/types"
)

// Vertex attributes referenced by triangles.
type Vertex struct {
	Pos types.Vec3
	Nrm types.Vec3
	UV  types.Vec2
}

// HitRecord captures the closest intersection found so far. Shapes
// refuse to write unless their hit is strictly closer than Dist.
type HitRecord struct {
	Dist float32
	Pos  types.Vec3
	Nrm  types.Vec3
	UV   types.Vec2
	Obj  Shape
	Mat  material.Material
}

// ShadowRecord captures occlusion queries; Pdf holds the area-measure
// density when the record comes from light sampling.
type ShadowRecord struct {
	Dist float32
	Pdf  float32
	Obj  Shape
	Mat  material.Material
}

// Create a hit record primed for a fresh query.
func NewHitRecord() HitRecord {
	return HitRecord{Dist: types.FHitMax}
}

// Create a shadow record primed for a fresh query.
func NewShadowRecord() ShadowRecord {
	return ShadowRecord{Dist: types.FHitMax}
}

// Shape is implemented by every primitive the tracer can intersect.
type Shape interface {
	// Run a closest-hit query, tightening rec on success.
	Hit(ray *types.Ray, rec *HitRecord) bool

	// Run an occlusion query, tightening rec on success.
	ShadowHit(ray *types.Ray, rec *ShadowRecord) bool

	// Sample a point on the shape surface and return its position
	// and normal.
	SampleArea(rng *types.Random) (types.Vec3, types.Vec3)
}

// Intersector answers ray queries against a triangle set on behalf of
// a mesh. Acceleration structures implement it.
type Intersector interface {
	Intersect(ray *types.Ray, rec *HitRecord) bool
	ShadowIntersect(ray *types.Ray, rec *ShadowRecord) bool
}
