package shape

import (
	"github.com/achilleasa/lumen/material"
	"github.com/achilleasa/lumen/types"
)

// Mesh owns a vertex pool, a material list and the triangles that
// reference them. Hit queries go through the attached acceleration
// structure when one is present and fall back to a linear scan.
type Mesh struct {
	Vertices  []Vertex
	Materials []material.Material
	Triangles []*Triangle

	accel Intersector
}

// Create a new mesh.
func NewMesh(vertices []Vertex, materials []material.Material, triangles []*Triangle) *Mesh {
	return &Mesh{
		Vertices:  vertices,
		Materials: materials,
		Triangles: triangles,
	}
}

// Attach an acceleration structure built over the mesh triangles.
func (m *Mesh) SetIntersector(accel Intersector) {
	m.accel = accel
}

// Run a closest-hit query, tightening rec on success.
func (m *Mesh) Hit(ray *types.Ray, rec *HitRecord) bool {
	if m.accel != nil {
		return m.accel.Intersect(ray, rec)
	}

	var found bool
	for _, tri := range m.Triangles {
		if tri.Hit(ray, rec) {
			found = true
		}
	}
	return found
}

// Run an occlusion query, tightening rec on success.
func (m *Mesh) ShadowHit(ray *types.Ray, rec *ShadowRecord) bool {
	if m.accel != nil {
		return m.accel.ShadowIntersect(ray, rec)
	}

	var found bool
	for _, tri := range m.Triangles {
		if tri.ShadowHit(ray, rec) {
			found = true
		}
	}
	return found
}

// Sample a point on a random mesh triangle.
func (m *Mesh) SampleArea(rng *types.Random) (types.Vec3, types.Vec3) {
	if len(m.Triangles) == 0 {
		return types.Vec3{}, types.XYZ(0, 1, 0)
	}
	tri := m.Triangles[int(rng.Next())%len(m.Triangles)]
	return tri.SampleArea(rng)
}
