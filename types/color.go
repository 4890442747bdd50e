package types

import (
	"github.com/chewxy/math32"
)

const srgbCut float32 = 0.0031308

// Encode a linear color channel to the sRGB transfer curve.
func SRGBEncode(linear float32) float32 {
	if linear <= srgbCut {
		return linear * 12.92
	}
	return 1.055*math32.Pow(linear, 1.0/2.4) - 0.055
}

// Decode an sRGB color channel back to linear.
func SRGBDecode(encoded float32) float32 {
	if encoded <= srgbCut*12.92 {
		return encoded / 12.92
	}
	return math32.Pow((encoded+0.055)/1.055, 2.4)
}

// Encode all channels of a linear color to sRGB.
func (v Vec3) SRGBEncode() Vec3 {
	return Vec3{SRGBEncode(v[0]), SRGBEncode(v[1]), SRGBEncode(v[2])}
}

// Decode all channels of an sRGB color to linear.
func (v Vec3) SRGBDecode() Vec3 {
	return Vec3{SRGBDecode(v[0]), SRGBDecode(v[1]), SRGBDecode(v[2])}
}
