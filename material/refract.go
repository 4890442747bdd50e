package material

import (
	"github.com/chewxy/math32"

	"github.com/achilleasa/lumen/types"
)

// Dielectric with Schlick Fresnel and a Russian roulette split
// between the reflected and the transmitted branch.
type Refract struct {
	base
	ior float32
}

// Create a new Refract material with the given index of refraction.
func NewRefract(albedo, emission types.Vec3, ior float32) *Refract {
	return &Refract{base: base{albedo: albedo, emission: emission}, ior: ior}
}

// Get the material type.
func (m *Refract) Type() Type {
	return TypeRefract
}

// Returns true if the material scatters along a delta distribution.
func (m *Refract) IsDelta() bool {
	return true
}

// Sample either the reflected or the transmitted lobe. Total internal
// reflection forces the reflected branch with the full albedo weight.
func (m *Refract) Shade(arg *ShadeArg) types.Vec3 {
	albedo := m.reflectance(arg.UV)
	normal := orient(arg.Normal, arg.In)
	reflDir := arg.In.Reflect(normal)

	// The ray enters the medium when the oriented normal kept the
	// original orientation.
	into := arg.Normal.Dot(normal) > 0

	nc := float32(1.0)
	nt := m.ior
	nnt := nt / nc
	if into {
		nnt = nc / nt
	}

	ddn := arg.In.Dot(normal)
	cos2t := 1.0 - nnt*nnt*(1.0-ddn*ddn)
	if cos2t <= 0 {
		arg.Out = reflDir
		arg.Pdf = 1.0
		return albedo
	}

	sign := float32(1.0)
	if !into {
		sign = -1.0
	}
	tdir := arg.In.Mul(nnt).
		Sub(arg.Normal.Mul(sign * (ddn*nnt + math32.Sqrt(cos2t)))).
		Normalize()

	a := nt - nc
	b := nt + nc
	r0 := (a * a) / (b * b)

	c := 1.0 + ddn
	if !into {
		c = 1.0 - tdir.Dot(arg.Normal)
	}

	re := r0 + (1.0-r0)*c*c*c*c*c
	tr := 1.0 - re
	prob := 0.25 + 0.5*re

	if arg.Rng.Float() < prob {
		arg.Out = reflDir
		arg.Pdf = prob
		return albedo.Mul(re / prob)
	}
	arg.Out = tdir
	arg.Pdf = 1.0 - prob
	return albedo.Mul(tr / (1.0 - prob))
}
