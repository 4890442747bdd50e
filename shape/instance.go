package shape

import (
	"github.com/achilleasa/lumen/types"
)

// ShapeInstance places a child shape in the scene under a world
// transform. Rays are intersected in the child's local space and the
// results are mapped back to world space.
type ShapeInstance struct {
	Child    Shape
	World    types.Mat4
	invWorld types.Mat4
	nrmWorld types.Mat4
}

// Create a new instance of a shape under the given world transform.
func NewShapeInstance(child Shape, world types.Mat4) *ShapeInstance {
	inv := world.Inverse()
	return &ShapeInstance{
		Child:    child,
		World:    world,
		invWorld: inv,
		nrmWorld: inv.Transpose(),
	}
}

func (s *ShapeInstance) localRay(ray *types.Ray) types.Ray {
	return types.NewRay(
		s.invWorld.TransformCoord(ray.Pos),
		s.invWorld.TransformDir(ray.Dir).Normalize(),
	)
}

// Run a closest-hit query, tightening rec on success. Hit position
// and normal are transformed back to world space.
func (s *ShapeInstance) Hit(ray *types.Ray, rec *HitRecord) bool {
	local := s.localRay(ray)
	if !s.Child.Hit(&local, rec) {
		return false
	}

	rec.Pos = s.World.TransformCoord(rec.Pos)
	rec.Nrm = s.nrmWorld.TransformDir(rec.Nrm).Normalize()
	rec.Obj = s
	return true
}

// Run an occlusion query, tightening rec on success.
func (s *ShapeInstance) ShadowHit(ray *types.Ray, rec *ShadowRecord) bool {
	local := s.localRay(ray)
	if !s.Child.ShadowHit(&local, rec) {
		return false
	}

	rec.Obj = s
	return true
}

// Sample a point on the child surface and map it to world space.
func (s *ShapeInstance) SampleArea(rng *types.Random) (types.Vec3, types.Vec3) {
	pos, nrm := s.Child.SampleArea(rng)
	return s.World.TransformCoord(pos), s.nrmWorld.TransformDir(nrm).Normalize()
}
