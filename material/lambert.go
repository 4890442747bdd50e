package material

import (
	"github.com/chewxy/math32"

	"github.com/achilleasa/lumen/types"
)

// Ideal diffuse reflector.
type Lambert struct {
	base
}

// Create a new Lambert material.
func NewLambert(albedo, emission types.Vec3) *Lambert {
	return &Lambert{base: base{albedo: albedo, emission: emission}}
}

// Get the material type.
func (m *Lambert) Type() Type {
	return TypeLambert
}

// Returns true if the material scatters along a delta distribution.
func (m *Lambert) IsDelta() bool {
	return false
}

// Sample a cosine-weighted direction on the hemisphere around the
// oriented normal. The cosine factor and the pdf cancel so the weight
// reduces to the albedo.
func (m *Lambert) Shade(arg *ShadeArg) types.Vec3 {
	normal := orient(arg.Normal, arg.In)
	onb := types.OnbFromW(normal)

	r1 := 2.0 * math32.Pi * arg.Rng.Float()
	r2 := arg.Rng.Float()
	r2s := math32.Sqrt(r2)

	sin, cos := math32.Sincos(r1)
	arg.Out = onb.U.Mul(cos * r2s).
		Add(onb.V.Mul(sin * r2s)).
		Add(onb.W.Mul(math32.Sqrt(1.0 - r2))).
		Normalize()
	arg.Pdf = arg.Out.Dot(normal) / math32.Pi

	return m.reflectance(arg.UV)
}
