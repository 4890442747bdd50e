package shape

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/achilleasa/lumen/material"
	"github.com/achilleasa/lumen/types"
)

func testMaterial() material.Material {
	return material.NewLambert(types.XYZ(1, 1, 1), types.Vec3{})
}

func TestSphereHit(t *testing.T) {
	type spec struct {
		descr   string
		ray     types.Ray
		expHit  bool
		expDist float32
	}

	s := NewSphere(types.XYZ(0, 0, 0), 1, testMaterial())

	specs := []spec{
		{
			descr:   "head on",
			ray:     types.NewRay(types.XYZ(0, 0, 5), types.XYZ(0, 0, -1)),
			expHit:  true,
			expDist: 4,
		},
		{
			descr:  "miss",
			ray:    types.NewRay(types.XYZ(0, 5, 5), types.XYZ(0, 0, -1)),
			expHit: false,
		},
		{
			descr:   "from inside picks the far root",
			ray:     types.NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1)),
			expHit:  true,
			expDist: 1,
		},
		{
			descr:  "behind the origin",
			ray:    types.NewRay(types.XYZ(0, 0, 5), types.XYZ(0, 0, 1)),
			expHit: false,
		},
	}

	for specIndex, spec := range specs {
		rec := NewHitRecord()
		got := s.Hit(&spec.ray, &rec)
		if got != spec.expHit {
			t.Fatalf("[spec %d] %s: expected hit %t; got %t", specIndex, spec.descr, spec.expHit, got)
		}
		if !spec.expHit {
			continue
		}
		if math32.Abs(rec.Dist-spec.expDist) > 1e-4 {
			t.Fatalf("[spec %d] %s: expected dist %f; got %f", specIndex, spec.descr, spec.expDist, rec.Dist)
		}
	}
}

func TestSphereHitRefusesToWorsen(t *testing.T) {
	s := NewSphere(types.XYZ(0, 0, 0), 1, testMaterial())
	ray := types.NewRay(types.XYZ(0, 0, 5), types.XYZ(0, 0, -1))

	rec := NewHitRecord()
	rec.Dist = 2 // an existing closer hit
	if s.Hit(&ray, &rec) {
		t.Fatal("expected hit at dist 4 to be rejected")
	}
	if rec.Dist != 2 {
		t.Fatalf("record distance overwritten: %f", rec.Dist)
	}
}

func TestSphereNormalAndUV(t *testing.T) {
	s := NewSphere(types.XYZ(0, 0, 0), 2, testMaterial())
	ray := types.NewRay(types.XYZ(0, 0, 5), types.XYZ(0, 0, -1))

	rec := NewHitRecord()
	if !s.Hit(&ray, &rec) {
		t.Fatal("expected hit")
	}
	if rec.Nrm.Sub(types.XYZ(0, 0, 1)).Len() > 1e-5 {
		t.Fatalf("expected +z normal; got %v", rec.Nrm)
	}
	// phi = atan2(0, 1) = 0, theta = acos(0) = pi/2.
	if math32.Abs(rec.UV[0]) > 1e-5 || math32.Abs(rec.UV[1]-0.5) > 1e-5 {
		t.Fatalf("unexpected uv %v", rec.UV)
	}
}

func triangleFixture() (*Triangle, []Vertex) {
	verts := []Vertex{
		{Pos: types.XYZ(-1, -1, 0), Nrm: types.XYZ(0, 0, 1), UV: types.XY(0, 0)},
		{Pos: types.XYZ(1, -1, 0), Nrm: types.XYZ(0, 0, 1), UV: types.XY(1, 0)},
		{Pos: types.XYZ(0, 1, 0), Nrm: types.XYZ(0, 0, 1), UV: types.XY(0.5, 1)},
	}
	return NewTriangle(&verts[0], &verts[1], &verts[2], testMaterial()), verts
}

func TestTriangleHit(t *testing.T) {
	type spec struct {
		descr  string
		ray    types.Ray
		expHit bool
	}

	tri, _ := triangleFixture()

	specs := []spec{
		{
			descr:  "through the interior",
			ray:    types.NewRay(types.XYZ(0, 0, 5), types.XYZ(0, 0, -1)),
			expHit: true,
		},
		{
			descr:  "outside the barycentric range",
			ray:    types.NewRay(types.XYZ(2, 2, 5), types.XYZ(0, 0, -1)),
			expHit: false,
		},
		{
			descr:  "parallel to the plane",
			ray:    types.NewRay(types.XYZ(0, 0, 5), types.XYZ(1, 0, 0)),
			expHit: false,
		},
		{
			descr:  "behind the origin",
			ray:    types.NewRay(types.XYZ(0, 0, -5), types.XYZ(0, 0, -1)),
			expHit: false,
		},
	}

	for specIndex, spec := range specs {
		rec := NewHitRecord()
		if got := tri.Hit(&spec.ray, &rec); got != spec.expHit {
			t.Fatalf("[spec %d] %s: expected hit %t; got %t", specIndex, spec.descr, spec.expHit, got)
		}
	}
}

func TestTriangleInterpolation(t *testing.T) {
	tri, _ := triangleFixture()
	ray := types.NewRay(types.XYZ(0, 0, 5), types.XYZ(0, 0, -1))

	rec := NewHitRecord()
	if !tri.Hit(&ray, &rec) {
		t.Fatal("expected hit")
	}
	if math32.Abs(rec.Dist-5) > 1e-4 {
		t.Fatalf("expected dist 5; got %f", rec.Dist)
	}
	if rec.Nrm.Sub(types.XYZ(0, 0, 1)).Len() > 1e-5 {
		t.Fatalf("expected +z normal; got %v", rec.Nrm)
	}
	// The origin ray hits at barycentric (u=0.25, v=0.5) for this layout.
	if rec.UV[0] < 0 || rec.UV[0] > 1 || rec.UV[1] < 0 || rec.UV[1] > 1 {
		t.Fatalf("uv outside unit square: %v", rec.UV)
	}
}

func TestTriangleCachedBounds(t *testing.T) {
	tri, _ := triangleFixture()

	bounds := tri.Bounds()
	if bounds.Empty() {
		t.Fatal("expected non-empty bounds")
	}
	if bounds.Mini != types.XYZ(-1, -1, 0) || bounds.Maxi != types.XYZ(1, 1, 0) {
		t.Fatalf("unexpected bounds %v", bounds)
	}
	if tri.Centroid().Sub(types.XYZ(0, -1.0/3.0, 0)).Len() > 1e-5 {
		t.Fatalf("unexpected centroid %v", tri.Centroid())
	}
	if math32.Abs(tri.Area()-2) > 1e-5 {
		t.Fatalf("expected area 2; got %f", tri.Area())
	}
}

func TestShapeInstance(t *testing.T) {
	// A unit sphere moved to (10, 0, 0) via an instance transform.
	s := NewSphere(types.XYZ(0, 0, 0), 1, testMaterial())
	inst := NewShapeInstance(s, types.Translation(types.XYZ(10, 0, 0)))

	ray := types.NewRay(types.XYZ(10, 0, 5), types.XYZ(0, 0, -1))
	rec := NewHitRecord()
	if !inst.Hit(&ray, &rec) {
		t.Fatal("expected hit on the translated sphere")
	}
	if rec.Pos.Sub(types.XYZ(10, 0, 1)).Len() > 1e-4 {
		t.Fatalf("expected world position (10,0,1); got %v", rec.Pos)
	}
	if rec.Nrm.Sub(types.XYZ(0, 0, 1)).Len() > 1e-4 {
		t.Fatalf("expected +z normal; got %v", rec.Nrm)
	}

	missRay := types.NewRay(types.XYZ(0, 0, 5), types.XYZ(0, 0, -1))
	missRec := NewHitRecord()
	if inst.Hit(&missRay, &missRec) {
		t.Fatal("expected miss at the original location")
	}
}

func TestMeshBruteForce(t *testing.T) {
	tri, verts := triangleFixture()
	mesh := NewMesh(verts, []material.Material{tri.Mat}, []*Triangle{tri})

	ray := types.NewRay(types.XYZ(0, 0, 5), types.XYZ(0, 0, -1))
	rec := NewHitRecord()
	if !mesh.Hit(&ray, &rec) {
		t.Fatal("expected hit through the mesh scan")
	}
	if rec.Obj != Shape(tri) {
		t.Fatal("expected the hit to reference the triangle")
	}

	shadow := NewShadowRecord()
	if !mesh.ShadowHit(&ray, &shadow) {
		t.Fatal("expected shadow hit")
	}
	if shadow.Pdf <= 0 {
		t.Fatalf("expected positive area pdf; got %f", shadow.Pdf)
	}
}
