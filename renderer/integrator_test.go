package renderer

import (
	"testing"

	"github.com/achilleasa/lumen/material"
	"github.com/achilleasa/lumen/scene"
	"github.com/achilleasa/lumen/shape"
	"github.com/achilleasa/lumen/types"
)

func TestRadianceEmissiveHit(t *testing.T) {
	// A black body emitter straight ahead contributes exactly its
	// emission; the zero albedo kills the path at the first bounce.
	sc := scene.NewScene()
	sc.Shapes = []shape.Shape{
		shape.NewSphere(
			types.XYZ(0, 0, -5),
			1.0,
			material.NewLambert(types.Vec3{}, types.XYZ(5, 5, 5)),
		),
	}

	rng := types.NewRandom(42)
	ray := types.NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1))
	if got := radiance(sc, ray, rng, 3); !vec3Near(got, types.XYZ(5, 5, 5), 1e-5) {
		t.Fatalf("expected emitted radiance (5 5 5); got %v", got)
	}
}

func TestRadianceMiss(t *testing.T) {
	sc := scene.NewScene()

	rng := types.NewRandom(42)
	ray := types.NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1))
	if got := radiance(sc, ray, rng, 3); !vec3Near(got, types.Vec3{}, 0) {
		t.Fatalf("expected an empty scene to yield black; got %v", got)
	}
}

func TestRadianceEnvironment(t *testing.T) {
	sc := scene.NewScene()
	ibl := scene.NewTexture(4, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			ibl.SetTexel(x, y, types.XYZ(0.5, 0.25, 0.125))
		}
	}
	sc.IBL = ibl

	rng := types.NewRandom(42)
	ray := types.NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1))
	if got := radiance(sc, ray, rng, 3); !vec3Near(got, types.XYZ(0.5, 0.25, 0.125), 1e-5) {
		t.Fatalf("expected escaped ray to pick up the environment; got %v", got)
	}
}

func TestRadianceBounceGathersLight(t *testing.T) {
	// A mirror bounces the path into an emitter off to the side.
	sc := scene.NewScene()
	sc.Shapes = []shape.Shape{
		shape.NewSphere(
			types.XYZ(0, 0, -10),
			1.0,
			material.NewMirror(types.XYZ(0.9, 0.9, 0.9), types.Vec3{}),
		),
		shape.NewSphere(
			types.XYZ(0, 0, 20),
			5.0,
			material.NewLambert(types.Vec3{}, types.XYZ(2, 2, 2)),
		),
	}

	// The ray hits the mirror dead center and reflects straight
	// back through its origin into the emitter.
	rng := types.NewRandom(42)
	ray := types.NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1))
	if got := radiance(sc, ray, rng, 3); !vec3Near(got, types.XYZ(1.8, 1.8, 1.8), 1e-4) {
		t.Fatalf("expected mirror-attenuated emission (1.8 1.8 1.8); got %v", got)
	}
}
