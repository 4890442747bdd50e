package scene

import (
	"github.com/chewxy/math32"

	"github.com/achilleasa/lumen/types"
)

// Texture stores decoded image data as 3 linear float32 channels per
// texel.
type Texture struct {
	Width  int
	Height int
	Pixels []float32
}

// Create a new texture of the given dimensions with all texels black.
func NewTexture(width, height int) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: make([]float32, 3*width*height),
	}
}

// Set a texel value.
func (t *Texture) SetTexel(x, y int, value types.Vec3) {
	idx := 3 * (y*t.Width + x)
	t.Pixels[idx] = value[0]
	t.Pixels[idx+1] = value[1]
	t.Pixels[idx+2] = value[2]
}

// Get a texel value. Coordinates wrap around the texture edges.
func (t *Texture) Texel(x, y int) types.Vec3 {
	x = ((x % t.Width) + t.Width) % t.Width
	y = ((y % t.Height) + t.Height) % t.Height
	idx := 3 * (y*t.Width + x)
	return types.XYZ(t.Pixels[idx], t.Pixels[idx+1], t.Pixels[idx+2])
}

// Sample the texture at the given uv coordinates with a bilinear tap.
func (t *Texture) Sample(uv types.Vec2) types.Vec3 {
	u := uv[0] - math32.Floor(uv[0])
	v := uv[1] - math32.Floor(uv[1])

	fx := u*float32(t.Width) - 0.5
	fy := v*float32(t.Height) - 0.5
	x0 := int(math32.Floor(fx))
	y0 := int(math32.Floor(fy))
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	c00 := t.Texel(x0, y0)
	c10 := t.Texel(x0+1, y0)
	c01 := t.Texel(x0, y0+1)
	c11 := t.Texel(x0+1, y0+1)

	top := c00.Mul(1.0 - tx).Add(c10.Mul(tx))
	bottom := c01.Mul(1.0 - tx).Add(c11.Mul(tx))
	return top.Mul(1.0 - ty).Add(bottom.Mul(ty))
}
