package material

import (
	"github.com/chewxy/math32"

	"github.com/achilleasa/lumen/types"
)

// Glossy reflector with a power-cosine lobe around the perfect
// reflection direction.
type Phong struct {
	base
	shininess float32
}

// Create a new Phong material with the given lobe exponent.
func NewPhong(albedo, emission types.Vec3, shininess float32) *Phong {
	return &Phong{base: base{albedo: albedo, emission: emission}, shininess: shininess}
}

// Get the material type.
func (m *Phong) Type() Type {
	return TypePhong
}

// Returns true if the material scatters along a delta distribution.
func (m *Phong) IsDelta() bool {
	return false
}

// Sample the lobe around the reflection direction. Directions that
// land under the surface contribute zero weight.
func (m *Phong) Shade(arg *ShadeArg) types.Vec3 {
	normal := orient(arg.Normal, arg.In)
	onb := types.OnbFromW(arg.In.Reflect(normal))

	phi := 2.0 * math32.Pi * arg.Rng.Float()
	cosTheta := math32.Pow(1.0-arg.Rng.Float(), 1.0/(m.shininess+1.0))
	sinTheta := math32.Sqrt(1.0 - cosTheta*cosTheta)

	sin, cos := math32.Sincos(phi)
	arg.Out = onb.U.Mul(cos * sinTheta).
		Add(onb.V.Mul(sin * sinTheta)).
		Add(onb.W.Mul(cosTheta)).
		Normalize()
	arg.Pdf = (m.shininess + 1.0) / (2.0 * math32.Pi) * cosTheta

	cosOut := arg.Out.Dot(normal)
	if cosOut < 0 {
		cosOut = 0
	}
	scale := cosOut * (m.shininess + 2.0) / (m.shininess + 1.0)
	return m.reflectance(arg.UV).Mul(scale)
}
