package scene

import (
	"github.com/achilleasa/lumen/material"
	"github.com/achilleasa/lumen/shape"
	"github.com/achilleasa/lumen/types"
)

// Create the built-in Cornell box test scene. The walls are huge
// spheres so the whole box renders with a single primitive type.
func Default(width, height, samples int) *Scene {
	gray := material.NewLambert(types.XYZ(0.75, 0.75, 0.75), types.Vec3{})
	black := material.NewLambert(types.XYZ(0.01, 0.01, 0.01), types.Vec3{})
	green := material.NewLambert(types.XYZ(0.25, 0.75, 0.25), types.Vec3{})
	blue := material.NewLambert(types.XYZ(0.25, 0.25, 0.75), types.Vec3{})
	red := material.NewLambert(types.XYZ(0.75, 0.25, 0.25), types.Vec3{})
	white := material.NewLambert(types.XYZ(0.99, 0.99, 0.99), types.Vec3{})
	light := material.NewLambert(types.Vec3{}, types.XYZ(12.0, 12.0, 12.0))

	s := NewScene()
	s.Width = width
	s.Height = height
	s.Samples = samples
	s.Materials = []material.Material{gray, black, green, blue, red, white, light}
	s.Shapes = []shape.Shape{
		shape.NewSphere(types.XYZ(1e5+1.0, 40.8, 81.6), 1e5, green),
		shape.NewSphere(types.XYZ(-1e5+99.0, 40.8, 81.6), 1e5, blue),
		shape.NewSphere(types.XYZ(50.0, 40.8, 1e5), 1e5, gray),
		shape.NewSphere(types.XYZ(50.0, 40.8, -1e5+170.0), 1e5, black),
		shape.NewSphere(types.XYZ(50.0, 1e5, 81.6), 1e5, gray),
		shape.NewSphere(types.XYZ(50.0, -1e5+81.6, 81.6), 1e5, gray),
		shape.NewSphere(types.XYZ(27.0, 16.5, 47.0), 16.5, red),
		shape.NewSphere(types.XYZ(73.0, 16.5, 78.0), 16.5, white),
		shape.NewSphere(types.XYZ(50.0, 81.6, 81.6), 5.0, light),
	}
	s.Camera = NewCamera(
		types.XYZ(50.0, 52.0, 295.6),
		types.XYZ(0.0, -0.042612, -1.0).Normalize(),
		types.XYZ(0.0, 1.0, 0.0),
		0.5135,
		float32(width)/float32(height),
		130.0,
		width, height,
	)
	return s
}
