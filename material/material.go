package material

import (
	"github.com/achilleasa/lumen/types"
)

// Supported material types.
type Type uint8

const (
	TypeLambert Type = iota
	TypeMirror
	TypeRefract
	TypePhong
)

// Russian roulette survival probabilities never drop below this value.
const minThreshold float32 = 1e-3

// Sampler provides texel lookups for materials that modulate their
// albedo with a texture.
type Sampler interface {
	// Sample the texture at the given uv coordinates.
	Sample(uv types.Vec2) types.Vec3
}

// ShadeArg bundles the inputs and outputs of a single shade call. The
// material fills in Out and Pdf.
type ShadeArg struct {
	In     types.Vec3
	Normal types.Vec3
	UV     types.Vec2
	Rng    *types.Random

	Out types.Vec3
	Pdf float32
}

// Material samples an outgoing direction for an incident one and
// reports the associated reflectance weight. The returned weight is
// already divided by the sampling pdf.
type Material interface {
	// Get the material type.
	Type() Type

	// Returns true if the material scatters along a delta distribution.
	IsDelta() bool

	// Get the Russian roulette survival probability for this material.
	Threshold() float32

	// Get the emitted radiance.
	Emission() types.Vec3

	// Sample an outgoing direction and return the reflectance weight.
	Shade(arg *ShadeArg) types.Vec3
}

type base struct {
	albedo   types.Vec3
	emission types.Vec3
	tex      Sampler
}

// Get the emitted radiance.
func (b *base) Emission() types.Vec3 {
	return b.emission
}

// Get the Russian roulette survival probability, defined as the max
// albedo channel floored at a small positive value.
func (b *base) Threshold() float32 {
	out := b.albedo.MaxComponent()
	if out < minThreshold {
		out = minThreshold
	}
	return out
}

// Attach a texture that modulates the albedo at shade time.
func (b *base) SetTexture(tex Sampler) {
	b.tex = tex
}

func (b *base) reflectance(uv types.Vec2) types.Vec3 {
	if b.tex == nil {
		return b.albedo
	}
	return b.albedo.MulVec3(b.tex.Sample(uv))
}

// Flip the shading normal so it opposes the incident direction.
func orient(normal, in types.Vec3) types.Vec3 {
	if normal.Dot(in) < 0 {
		return normal
	}
	return normal.Neg()
}
