package scene

import (
	"github.com/chewxy/math32"

	"github.com/achilleasa/lumen/types"
)

// Pinhole camera. The frustum axes are baked at construction time so
// emitting a primary ray is a couple of multiply-adds.
type Camera struct {
	pos      types.Vec3
	axisX    types.Vec3
	axisY    types.Vec3
	axisZ    types.Vec3
	nearClip float32
	invW     float32
	invH     float32
}

// Create a new camera. The field of view is in radians and spans the
// vertical image axis.
func NewCamera(pos, dir, up types.Vec3, fov, aspect, nearClip float32, width, height int) *Camera {
	axisZ := dir.Normalize()
	halfTan := math32.Tan(fov * 0.5)
	axisX := axisZ.Cross(up).Normalize().Mul(halfTan * aspect)
	axisY := axisZ.Cross(axisX).Normalize().Mul(halfTan)

	return &Camera{
		pos:      pos,
		axisX:    axisX,
		axisY:    axisY,
		axisZ:    axisZ,
		nearClip: nearClip,
		invW:     1.0 / float32(width),
		invH:     1.0 / float32(height),
	}
}

// Emit a primary ray through a pixel. The ray origin sits on the near
// plane along the pixel direction.
func (c *Camera) Emit(x, y int) types.Ray {
	fx := float32(x)*c.invW - 0.5
	fy := float32(y)*c.invH - 0.5

	dir := c.axisX.Mul(fx).Add(c.axisY.Mul(fy)).Add(c.axisZ)
	return types.NewRay(
		c.pos.Add(dir.Mul(c.nearClip)),
		dir.Normalize(),
	)
}
