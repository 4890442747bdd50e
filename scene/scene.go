package scene

import (
	"github.com/chewxy/math32"

	"github.com/achilleasa/lumen/material"
	"github.com/achilleasa/lumen/shape"
	"github.com/achilleasa/lumen/types"
)

// Scene bundles everything a render needs: geometry, materials,
// textures, the camera and the optional environment light. The scene
// owns all referenced resources and releases them on Dispose.
type Scene struct {
	Width   int
	Height  int
	Samples int

	Textures  []*Texture
	Materials []material.Material
	Shapes    []shape.Shape
	Camera    *Camera

	// Environment map sampled by rays that escape the scene.
	IBL *Texture
}

// Create a new empty scene.
func NewScene() *Scene {
	return &Scene{}
}

// Run a closest-hit query against every top-level shape, folding the
// hit distance to the minimum.
func (s *Scene) Hit(ray *types.Ray, rec *shape.HitRecord) bool {
	var found bool
	for _, obj := range s.Shapes {
		if obj.Hit(ray, rec) {
			found = true
		}
	}
	return found
}

// Run an occlusion query against every top-level shape.
func (s *Scene) ShadowHit(ray *types.Ray, rec *shape.ShadowRecord) bool {
	var found bool
	for _, obj := range s.Shapes {
		if obj.ShadowHit(ray, rec) {
			found = true
		}
	}
	return found
}

// Sample the environment map along a unit direction using an
// equirectangular projection. Scenes without an environment map
// return black.
func (s *Scene) SampleIBL(dir types.Vec3) types.Vec3 {
	if s.IBL == nil {
		return types.Vec3{}
	}

	theta := math32.Acos(dir[1])
	phi := math32.Atan2(dir[0], dir[2])
	if phi < 0 {
		phi += 2.0 * math32.Pi
	}
	return s.IBL.Sample(types.XY(phi/(2.0*math32.Pi), theta/math32.Pi))
}

// Release every resource owned by the scene.
func (s *Scene) Dispose() {
	s.Textures = nil
	s.Materials = nil
	s.Shapes = nil
	s.Camera = nil
	s.IBL = nil
}
