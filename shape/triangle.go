package shape

import (
	"github.com/chewxy/math32"

	"github.com/achilleasa/lumen/material"
	"github.com/achilleasa/lumen/types"
)

// Triangle referencing three vertices. Edges, centroid and bounds are
// cached at construction time for the intersection and build paths.
type Triangle struct {
	V0, V1, V2 *Vertex
	Mat        material.Material

	e1       types.Vec3
	e2       types.Vec3
	centroid types.Vec3
	bbox     types.Box
}

// Create a new triangle and populate its cached fields.
func NewTriangle(v0, v1, v2 *Vertex, mat material.Material) *Triangle {
	tri := &Triangle{
		V0:  v0,
		V1:  v1,
		V2:  v2,
		Mat: mat,
		e1:  v1.Pos.Sub(v0.Pos),
		e2:  v2.Pos.Sub(v0.Pos),
	}
	tri.centroid = v0.Pos.Add(v1.Pos).Add(v2.Pos).Div(3.0)
	tri.bbox.Extend(v0.Pos)
	tri.bbox.Extend(v1.Pos)
	tri.bbox.Extend(v2.Pos)
	return tri
}

// Get the cached triangle centroid.
func (t *Triangle) Centroid() types.Vec3 {
	return t.centroid
}

// Get the cached triangle bounds.
func (t *Triangle) Bounds() types.Box {
	return t.bbox
}

// Get the triangle surface area.
func (t *Triangle) Area() float32 {
	return 0.5 * t.e1.Cross(t.e2).Len()
}

func (t *Triangle) intersect(ray *types.Ray, maxDist float32) (dist, u, v float32, ok bool) {
	pvec := ray.Dir.Cross(t.e2)
	det := t.e1.Dot(pvec)
	if math32.Abs(det) <= types.Epsilon {
		return 0, 0, 0, false
	}
	invDet := 1.0 / det

	tvec := ray.Pos.Sub(t.V0.Pos)
	u = tvec.Dot(pvec) * invDet
	if u <= 0 || u >= 1 {
		return 0, 0, 0, false
	}

	qvec := tvec.Cross(t.e1)
	v = ray.Dir.Dot(qvec) * invDet
	if v <= 0 || u+v >= 1 {
		return 0, 0, 0, false
	}

	dist = t.e2.Dot(qvec) * invDet
	if dist < types.FHitMin || dist >= maxDist {
		return 0, 0, 0, false
	}
	return dist, u, v, true
}

// Run a closest-hit query, tightening rec on success. Shading normal
// and uv are barycentric-interpolated from the vertex attributes.
func (t *Triangle) Hit(ray *types.Ray, rec *HitRecord) bool {
	dist, u, v, ok := t.intersect(ray, rec.Dist)
	if !ok {
		return false
	}

	w := 1.0 - u - v
	rec.Dist = dist
	rec.Pos = ray.At(dist)
	rec.Nrm = t.V0.Nrm.Mul(w).Add(t.V1.Nrm.Mul(u)).Add(t.V2.Nrm.Mul(v)).Normalize()
	rec.UV = types.XY(
		t.V0.UV[0]*w+t.V1.UV[0]*u+t.V2.UV[0]*v,
		t.V0.UV[1]*w+t.V1.UV[1]*u+t.V2.UV[1]*v,
	)
	rec.Obj = t
	rec.Mat = t.Mat
	return true
}

// Run an occlusion query, tightening rec on success.
func (t *Triangle) ShadowHit(ray *types.Ray, rec *ShadowRecord) bool {
	dist, _, _, ok := t.intersect(ray, rec.Dist)
	if !ok {
		return false
	}

	rec.Dist = dist
	rec.Pdf = 1.0 / t.Area()
	rec.Obj = t
	rec.Mat = t.Mat
	return true
}

// Sample a uniform point on the triangle; the returned normal is the
// geometric one.
func (t *Triangle) SampleArea(rng *types.Random) (types.Vec3, types.Vec3) {
	u := rng.Float()
	v := rng.Float()
	if u+v > 1 {
		u = 1.0 - u
		v = 1.0 - v
	}
	pos := t.V0.Pos.Add(t.e1.Mul(u)).Add(t.e2.Mul(v))
	return pos, t.e1.Cross(t.e2).Normalize()
}
