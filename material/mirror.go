package material

import (
	"github.com/achilleasa/lumen/types"
)

// Ideal specular reflector.
type Mirror struct {
	base
}

// Create a new Mirror material.
func NewMirror(albedo, emission types.Vec3) *Mirror {
	return &Mirror{base: base{albedo: albedo, emission: emission}}
}

// Get the material type.
func (m *Mirror) Type() Type {
	return TypeMirror
}

// Returns true if the material scatters along a delta distribution.
func (m *Mirror) IsDelta() bool {
	return true
}

// Reflect the incident direction around the oriented normal.
func (m *Mirror) Shade(arg *ShadeArg) types.Vec3 {
	normal := orient(arg.Normal, arg.In)
	arg.Out = arg.In.Reflect(normal)
	arg.Pdf = 1.0
	return m.reflectance(arg.UV)
}
