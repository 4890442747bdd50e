package scene

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/achilleasa/lumen/material"
)

func TestReadMesh(t *testing.T) {
	var buf bytes.Buffer
	mustWriteSMD(t, &buf,
		smdHeader{
			Magic:         smdMagic,
			Version:       smdVersion,
			VertexCount:   3,
			MaterialCount: 2,
			TextureCount:  1,
			TriangleCount: 1,
		},
		[]smdVertex{
			{Position: [3]float32{0, 0, 0}, Normal: [3]float32{0, 0, 1}, Texcoord: [2]float32{0, 0}},
			{Position: [3]float32{1, 0, 0}, Normal: [3]float32{0, 0, 1}, Texcoord: [2]float32{1, 0}},
			{Position: [3]float32{0, 1, 0}, Normal: [3]float32{0, 0, 1}, Texcoord: [2]float32{0, 1}},
		},
		[]smdMaterial{
			{Type: smdMaterialLambert, Color: [3]float32{0.75, 0.25, 0.25}},
			{Type: smdMaterialPhong, Color: [3]float32{0.9, 0.9, 0.9}, Shininess: 100},
		},
		[]smdTexture{smdTexturePath("albedo.png")},
		[]smdTriangle{{VertexOffset: 0, MaterialID: 1}},
	)

	mesh, texPaths, err := ReadMesh(&buf)
	if err != nil {
		t.Fatalf("expected mesh read to succeed; got %v", err)
	}
	if len(mesh.Vertices) != 3 {
		t.Fatalf("expected 3 vertices; got %d", len(mesh.Vertices))
	}
	if len(mesh.Materials) != 2 {
		t.Fatalf("expected 2 materials; got %d", len(mesh.Materials))
	}
	if mesh.Materials[0].Type() != material.TypeLambert {
		t.Fatalf("expected material 0 to be a lambert; got type %d", mesh.Materials[0].Type())
	}
	if mesh.Materials[1].Type() != material.TypePhong {
		t.Fatalf("expected material 1 to be a phong; got type %d", mesh.Materials[1].Type())
	}
	if len(texPaths) != 1 || texPaths[0] != "albedo.png" {
		t.Fatalf("expected texture path list [albedo.png]; got %v", texPaths)
	}
	if len(mesh.Triangles) != 1 {
		t.Fatalf("expected 1 triangle; got %d", len(mesh.Triangles))
	}
}

func TestReadMeshErrors(t *testing.T) {
	type spec struct {
		header   smdHeader
		tris     []smdTriangle
		expError error
	}

	specs := []spec{
		{
			header:   smdHeader{Magic: [4]byte{'B', 'A', 'D', '0'}, Version: smdVersion},
			expError: ErrMeshBadMagic,
		},
		{
			header:   smdHeader{Magic: smdMagic, Version: 42},
			expError: ErrMeshBadVersion,
		},
		{
			header: smdHeader{
				Magic:         smdMagic,
				Version:       smdVersion,
				VertexCount:   3,
				MaterialCount: 1,
				TriangleCount: 1,
			},
			tris:     []smdTriangle{{VertexOffset: 2, MaterialID: 0}},
			expError: ErrMeshBadIndex,
		},
		{
			header: smdHeader{
				Magic:         smdMagic,
				Version:       smdVersion,
				VertexCount:   3,
				MaterialCount: 1,
				TriangleCount: 1,
			},
			tris:     []smdTriangle{{VertexOffset: 0, MaterialID: 7}},
			expError: ErrMeshBadIndex,
		},
	}

	for specIndex, spec := range specs {
		var buf bytes.Buffer
		mustWriteSMD(t, &buf,
			spec.header,
			make([]smdVertex, spec.header.VertexCount),
			make([]smdMaterial, spec.header.MaterialCount),
			nil,
			spec.tris,
		)

		_, _, err := ReadMesh(&buf)
		if !errors.Is(err, spec.expError) {
			t.Fatalf("[spec %d] expected error %v; got %v", specIndex, spec.expError, err)
		}
	}
}

func TestReadMeshTruncatedStream(t *testing.T) {
	var buf bytes.Buffer
	mustWriteSMD(t, &buf,
		smdHeader{
			Magic:         smdMagic,
			Version:       smdVersion,
			VertexCount:   3,
			TriangleCount: 1,
		},
		nil, nil, nil, nil,
	)

	if _, _, err := ReadMesh(&buf); err == nil {
		t.Fatal("expected truncated mesh stream to fail")
	}
}

func mustWriteSMD(t *testing.T, buf *bytes.Buffer, header smdHeader, verts []smdVertex, mats []smdMaterial, texs []smdTexture, tris []smdTriangle) {
	t.Helper()
	for _, block := range []interface{}{header, verts, mats, texs, tris} {
		if err := binary.Write(buf, binary.LittleEndian, block); err != nil {
			t.Fatalf("could not encode mesh block: %v", err)
		}
	}
}

func smdTexturePath(path string) smdTexture {
	var tex smdTexture
	copy(tex.Path[:], path)
	return tex
}
