package renderer

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/chewxy/math32"
	"golang.org/x/image/bmp"

	"github.com/achilleasa/lumen/types"
)

// Rec.601 luminance weights.
var bt601ToLuminance = types.XYZ(0.299, 0.587, 0.114)

// ACES filmic curve coefficients.
const (
	acesA float32 = 2.51
	acesB float32 = 0.03
	acesC float32 = 2.43
	acesD float32 = 0.59
	acesE float32 = 0.14
)

// Canvas accumulates linear radiance estimates and tonemaps them into
// LDR snapshots. Sample accumulation and snapshot encoding use
// separate buffers so a snapshot never disturbs the running estimate.
type Canvas struct {
	width  int
	height int

	accum []types.Vec3
	temp  []types.Vec3
}

// Create a new canvas with all pixels black.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		width:  width,
		height: height,
		accum:  make([]types.Vec3, width*height),
		temp:   make([]types.Vec3, width*height),
	}
}

// Add a radiance estimate to a pixel.
func (c *Canvas) Add(x, y int, value types.Vec3) {
	idx := y*c.width + x
	c.accum[idx] = c.accum[idx].Add(value)
}

// Get the accumulated estimate for a pixel.
func (c *Canvas) At(x, y int) types.Vec3 {
	return c.accum[y*c.width+x]
}

// Get the log-average luminance of the accumulated estimate. A small
// offset keeps black pixels out of the log singularity.
func (c *Canvas) logAveLuminance() float32 {
	var sum float32
	for _, px := range c.accum {
		sum += math32.Log(1e-5 + bt601ToLuminance.Dot(px))
	}
	return math32.Exp(sum / float32(len(c.accum)))
}

// Apply the ACES filmic curve scaled around the log-average luminance
// and encode the result as sRGB into the snapshot buffer.
func (c *Canvas) tonemap(exposure float32) {
	coeff := exposure / c.logAveLuminance() * 0.6
	for i, px := range c.accum {
		p := px.Mul(coeff)
		c.temp[i] = types.XYZ(
			acesCurve(p[0]),
			acesCurve(p[1]),
			acesCurve(p[2]),
		).Saturate().SRGBEncode()
	}
}

func acesCurve(v float32) float32 {
	return (v * (acesA*v + acesB)) / (v*(acesC*v+acesD) + acesE)
}

// Tonemap the accumulated estimate and write it to dir/NNN.bmp.
// Returns the path of the written file.
func (c *Canvas) WriteSnapshot(dir string, counter int, exposure float32) (string, error) {
	c.tonemap(exposure)

	img := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			value := c.temp[y*c.width+x]
			img.SetRGBA(x, y, color.RGBA{
				R: quantize(value[0]),
				G: quantize(value[1]),
				B: quantize(value[2]),
				A: 255,
			})
		}
	}

	path := filepath.Join(dir, fmt.Sprintf("%03d.bmp", counter))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("renderer: could not create snapshot file: %w", err)
	}
	if err = bmp.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("renderer: could not encode snapshot: %w", err)
	}
	if err = f.Close(); err != nil {
		return "", fmt.Errorf("renderer: could not write snapshot: %w", err)
	}
	return path, nil
}

func quantize(v float32) uint8 {
	return uint8(v*255.0 + 0.5)
}
