package renderer

import (
	"github.com/achilleasa/lumen/material"
	"github.com/achilleasa/lumen/scene"
	"github.com/achilleasa/lumen/shape"
	"github.com/achilleasa/lumen/types"
)

// Trace a path through the scene and return the radiance it gathers.
// Paths survive the first few bounces unconditionally and then face
// russian roulette against the material survival threshold. Rays that
// escape the scene pick up the environment radiance and terminate.
func radiance(sc *scene.Scene, ray types.Ray, rng *types.Random, minBouncesForRR uint32) types.Vec3 {
	L := types.Vec3{}
	W := types.XYZ(1, 1, 1)

	for depth := uint32(0); ; depth++ {
		rec := shape.NewHitRecord()
		if !sc.Hit(&ray, &rec) {
			L = L.Add(W.MulVec3(sc.SampleIBL(ray.Dir)))
			break
		}

		L = L.Add(W.MulVec3(rec.Mat.Emission()))

		p := rec.Mat.Threshold()
		if depth > minBouncesForRR {
			if rng.Float() >= p {
				break
			}
		} else {
			p = 1.0
		}

		arg := material.ShadeArg{
			In:     ray.Dir,
			Normal: rec.Nrm,
			UV:     rec.UV,
			Rng:    rng,
		}
		weight := rec.Mat.Shade(&arg)

		W = W.MulVec3(weight).Div(p)
		if !W.IsFinite() {
			// A non-finite weight poisons the whole path.
			return types.Vec3{}
		}
		if W.MaxComponent() <= 0 {
			break
		}

		ray = types.NewRay(rec.Pos, arg.Out)
	}

	return L
}
