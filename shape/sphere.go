package shape

import (
	"github.com/chewxy/math32"

	"github.com/achilleasa/lumen/material"
	"github.com/achilleasa/lumen/types"
)

// Analytic sphere.
type Sphere struct {
	Center types.Vec3
	Radius float32
	Mat    material.Material
}

// Create a new sphere.
func NewSphere(center types.Vec3, radius float32, mat material.Material) *Sphere {
	return &Sphere{Center: center, Radius: radius, Mat: mat}
}

// Get the sphere surface area.
func (s *Sphere) Area() float32 {
	return 4.0 * math32.Pi * s.Radius * s.Radius
}

func (s *Sphere) intersect(ray *types.Ray, maxDist float32) (float32, bool) {
	po := s.Center.Sub(ray.Pos)
	b := po.Dot(ray.Dir)
	det := b*b - po.Dot(po) + s.Radius*s.Radius
	if det < 0 {
		return 0, false
	}

	sqrtDet := math32.Sqrt(det)
	dist := b - sqrtDet
	if dist < types.FHitMin {
		dist = b + sqrtDet
	}
	if dist < types.FHitMin || dist >= maxDist {
		return 0, false
	}
	return dist, true
}

// Run a closest-hit query, tightening rec on success.
func (s *Sphere) Hit(ray *types.Ray, rec *HitRecord) bool {
	dist, ok := s.intersect(ray, rec.Dist)
	if !ok {
		return false
	}

	pos := ray.At(dist)
	nrm := pos.Sub(s.Center).Mul(1.0 / s.Radius)

	rec.Dist = dist
	rec.Pos = pos
	rec.Nrm = nrm
	rec.UV = equirectUV(nrm)
	rec.Obj = s
	rec.Mat = s.Mat
	return true
}

// Run an occlusion query, tightening rec on success.
func (s *Sphere) ShadowHit(ray *types.Ray, rec *ShadowRecord) bool {
	dist, ok := s.intersect(ray, rec.Dist)
	if !ok {
		return false
	}

	rec.Dist = dist
	rec.Pdf = 1.0 / s.Area()
	rec.Obj = s
	rec.Mat = s.Mat
	return true
}

// Sample a uniform point on the sphere surface.
func (s *Sphere) SampleArea(rng *types.Random) (types.Vec3, types.Vec3) {
	z := 1.0 - 2.0*rng.Float()
	r := math32.Sqrt(1.0 - z*z)
	sin, cos := math32.Sincos(2.0 * math32.Pi * rng.Float())

	nrm := types.XYZ(r*cos, r*sin, z)
	return s.Center.Add(nrm.Mul(s.Radius)), nrm
}

// Map a unit direction to equirectangular texture coordinates.
func equirectUV(nrm types.Vec3) types.Vec2 {
	theta := math32.Acos(nrm[1])
	phi := math32.Atan2(nrm[0], nrm[2])
	if phi < 0 {
		phi += 2.0 * math32.Pi
	}
	return types.XY(phi/(2.0*math32.Pi), (math32.Pi-theta)/math32.Pi)
}
