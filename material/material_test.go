package material

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/achilleasa/lumen/types"
)

func TestShadeWeightNonNegative(t *testing.T) {
	type spec struct {
		descr string
		mat   Material
	}

	specs := []spec{
		{descr: "lambert", mat: NewLambert(types.XYZ(0.7, 0.2, 0.9), types.Vec3{})},
		{descr: "mirror", mat: NewMirror(types.XYZ(0.9, 0.9, 0.9), types.Vec3{})},
		{descr: "refract", mat: NewRefract(types.XYZ(1, 1, 1), types.Vec3{}, 1.5)},
		{descr: "phong", mat: NewPhong(types.XYZ(0.5, 0.5, 0.5), types.Vec3{}, 32)},
	}

	rng := types.NewRandom(99)
	for specIndex, spec := range specs {
		for iter := 0; iter < 10000; iter++ {
			in := types.XYZ(rng.Float()*2-1, rng.Float()*2-1, rng.Float()*2-1).Normalize()
			if in == (types.Vec3{}) {
				continue
			}
			arg := &ShadeArg{
				In:     in,
				Normal: types.XYZ(0, 1, 0),
				Rng:    rng,
			}
			w := spec.mat.Shade(arg)
			if w[0] < 0 || w[1] < 0 || w[2] < 0 {
				t.Fatalf("[spec %d] %s: negative weight %v for in %v", specIndex, spec.descr, w, in)
			}
			if arg.Pdf < 0 {
				t.Fatalf("[spec %d] %s: negative pdf %f", specIndex, spec.descr, arg.Pdf)
			}
		}
	}
}

func TestLambertEnergy(t *testing.T) {
	albedo := types.XYZ(0.75, 0.5, 0.25)
	mat := NewLambert(albedo, types.Vec3{})
	rng := types.NewRandom(31337)

	// The cosine-weighted estimator folds the cosine and pdf into the
	// returned weight so averaging the weights recovers the albedo.
	var sum types.Vec3
	const samples = 200000
	for i := 0; i < samples; i++ {
		arg := &ShadeArg{
			In:     types.XYZ(0, -1, 0),
			Normal: types.XYZ(0, 1, 0),
			Rng:    rng,
		}
		sum = sum.Add(mat.Shade(arg))
	}
	mean := sum.Div(samples)
	for i := 0; i < 3; i++ {
		if rel := math32.Abs(mean[i]-albedo[i]) / albedo[i]; rel > 0.01 {
			t.Fatalf("channel %d: mean %f deviates from albedo %f by %f", i, mean[i], albedo[i], rel)
		}
	}
}

func TestLambertSamplesAboveSurface(t *testing.T) {
	mat := NewLambert(types.XYZ(1, 1, 1), types.Vec3{})
	rng := types.NewRandom(5)
	normal := types.XYZ(0, 1, 0)

	for i := 0; i < 10000; i++ {
		arg := &ShadeArg{In: types.XYZ(0.3, -0.8, 0.1).Normalize(), Normal: normal, Rng: rng}
		mat.Shade(arg)
		if arg.Out.Dot(normal) < 0 {
			t.Fatalf("[iter %d] sample under the surface: %v", i, arg.Out)
		}
		if math32.Abs(arg.Out.Len()-1) > 1e-3 {
			t.Fatalf("[iter %d] sample not normalized: %v", i, arg.Out)
		}
	}
}

func TestMirrorReflect(t *testing.T) {
	mat := NewMirror(types.XYZ(0.9, 0.9, 0.9), types.Vec3{})
	rng := types.NewRandom(1)

	arg := &ShadeArg{
		In:     types.XYZ(1, -1, 0).Normalize(),
		Normal: types.XYZ(0, 1, 0),
		Rng:    rng,
	}
	w := mat.Shade(arg)

	exp := types.XYZ(1, 1, 0).Normalize()
	if arg.Out.Sub(exp).Len() > 1e-5 {
		t.Fatalf("expected reflection %v; got %v", exp, arg.Out)
	}
	if arg.Pdf != 1 {
		t.Fatalf("expected pdf 1; got %f", arg.Pdf)
	}
	if w != types.XYZ(0.9, 0.9, 0.9) {
		t.Fatalf("expected albedo weight; got %v", w)
	}
}

func TestRefractFresnelNormalIncidence(t *testing.T) {
	ior := float32(1.5)
	mat := NewRefract(types.XYZ(1, 1, 1), types.Vec3{}, ior)
	expRe := ((ior - 1) / (ior + 1)) * ((ior - 1) / (ior + 1))

	// At normal incidence the Schlick term reduces to R0. The branch
	// weights expose Re through albedo*Re/prob and albedo*Tr/(1-prob).
	rng := types.NewRandom(2)
	for i := 0; i < 1000; i++ {
		arg := &ShadeArg{
			In:     types.XYZ(0, -1, 0),
			Normal: types.XYZ(0, 1, 0),
			Rng:    rng,
		}
		w := mat.Shade(arg)

		expProb := 0.25 + 0.5*expRe
		var gotRe float32
		if arg.Out[1] > 0 {
			// Reflected branch: w = Re/prob.
			gotRe = w[0] * expProb
		} else {
			// Transmitted branch: w = (1-Re)/(1-prob).
			gotRe = 1.0 - w[0]*(1.0-expProb)
		}
		if math32.Abs(gotRe-expRe) > 1e-5 {
			t.Fatalf("[iter %d] expected Re %f; got %f", i, expRe, gotRe)
		}
	}
}

func TestRefractTotalInternalReflection(t *testing.T) {
	albedo := types.XYZ(1, 1, 1)
	mat := NewRefract(albedo, types.Vec3{}, 1.5)
	rng := types.NewRandom(3)

	// Ray travelling inside the dense medium grazing the surface at 85
	// degrees from the inside normal; past the critical angle the
	// transmitted branch vanishes.
	normal := types.XYZ(0, 1, 0)
	sin, cos := math32.Sincos(85.0 * math32.Pi / 180.0)
	in := types.XYZ(sin, cos, 0).Normalize()

	arg := &ShadeArg{In: in, Normal: normal, Rng: rng}
	w := mat.Shade(arg)

	oriented := normal.Neg()
	exp := in.Reflect(oriented)
	if arg.Out.Sub(exp).Len() > 1e-5 {
		t.Fatalf("expected reflection %v; got %v", exp, arg.Out)
	}
	if w != albedo {
		t.Fatalf("expected full albedo weight; got %v", w)
	}
}

func TestPhongLobe(t *testing.T) {
	mat := NewPhong(types.XYZ(1, 1, 1), types.Vec3{}, 1000)
	rng := types.NewRandom(4)

	in := types.XYZ(1, -1, 0).Normalize()
	normal := types.XYZ(0, 1, 0)
	refl := in.Reflect(normal)

	// A very shiny lobe concentrates samples around the reflection
	// direction.
	for i := 0; i < 1000; i++ {
		arg := &ShadeArg{In: in, Normal: normal, Rng: rng}
		mat.Shade(arg)
		if arg.Out.Dot(refl) < 0.9 {
			t.Fatalf("[iter %d] sample %v strayed from lobe axis %v", i, arg.Out, refl)
		}
		if arg.Pdf <= 0 {
			t.Fatalf("[iter %d] expected positive pdf; got %f", i, arg.Pdf)
		}
	}
}

func TestThreshold(t *testing.T) {
	type spec struct {
		albedo types.Vec3
		exp    float32
	}

	specs := []spec{
		{albedo: types.XYZ(0.2, 0.8, 0.5), exp: 0.8},
		{albedo: types.XYZ(0, 0, 0), exp: 1e-3},
		{albedo: types.XYZ(1, 1, 1), exp: 1},
	}

	for specIndex, spec := range specs {
		mat := NewLambert(spec.albedo, types.Vec3{})
		if got := mat.Threshold(); got != spec.exp {
			t.Fatalf("[spec %d] expected %f; got %f", specIndex, spec.exp, got)
		}
	}
}

type solidSampler struct {
	value types.Vec3
}

func (s *solidSampler) Sample(uv types.Vec2) types.Vec3 {
	return s.value
}

func TestTextureModulation(t *testing.T) {
	mat := NewLambert(types.XYZ(1, 0.5, 1), types.Vec3{})
	mat.SetTexture(&solidSampler{value: types.XYZ(0.5, 0.5, 0.5)})
	rng := types.NewRandom(6)

	arg := &ShadeArg{In: types.XYZ(0, -1, 0), Normal: types.XYZ(0, 1, 0), Rng: rng}
	if got, exp := mat.Shade(arg), types.XYZ(0.5, 0.25, 0.5); got != exp {
		t.Fatalf("expected modulated albedo %v; got %v", exp, got)
	}
}
