package scene

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/achilleasa/lumen/material"
	"github.com/achilleasa/lumen/shape"
	"github.com/achilleasa/lumen/types"
)

// SMD mesh container constants.
var smdMagic = [4]byte{'S', 'M', 'D', '0'}

const smdVersion uint32 = 1

// Mesh material type tags stored in SMD files.
const (
	smdMaterialLambert uint32 = iota
	smdMaterialMirror
	smdMaterialRefract
	smdMaterialPhong
)

type smdHeader struct {
	Magic         [4]byte
	Version       uint32
	VertexCount   uint32
	MaterialCount uint32
	TextureCount  uint32
	TriangleCount uint32
}

type smdVertex struct {
	Position [3]float32
	Normal   [3]float32
	Texcoord [2]float32
}

type smdMaterial struct {
	Type      uint32
	Color     [3]float32
	Emissive  [3]float32
	Ior       float32
	Shininess float32
}

type smdTexture struct {
	Path [256]byte
}

type smdTriangle struct {
	VertexOffset uint32
	MaterialID   uint32
}

// Decode a little-endian SMD mesh stream. The returned string slice
// lists the texture paths referenced by the container; resolving and
// decoding them is left to the caller.
func ReadMesh(r io.Reader) (*shape.Mesh, []string, error) {
	var header smdHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, nil, fmt.Errorf("scene: could not read mesh header: %w", err)
	}
	if header.Magic != smdMagic {
		return nil, nil, ErrMeshBadMagic
	}
	if header.Version != smdVersion {
		return nil, nil, fmt.Errorf("%w: %d", ErrMeshBadVersion, header.Version)
	}

	vertices := make([]shape.Vertex, header.VertexCount)
	for i := range vertices {
		var vert smdVertex
		if err := binary.Read(r, binary.LittleEndian, &vert); err != nil {
			return nil, nil, fmt.Errorf("scene: could not read mesh vertex %d: %w", i, err)
		}
		vertices[i] = shape.Vertex{
			Pos: types.Vec3(vert.Position),
			Nrm: types.Vec3(vert.Normal),
			UV:  types.Vec2(vert.Texcoord),
		}
	}

	materials := make([]material.Material, header.MaterialCount)
	for i := range materials {
		var mat smdMaterial
		if err := binary.Read(r, binary.LittleEndian, &mat); err != nil {
			return nil, nil, fmt.Errorf("scene: could not read mesh material %d: %w", i, err)
		}

		color := types.Vec3(mat.Color)
		emissive := types.Vec3(mat.Emissive)
		switch mat.Type {
		case smdMaterialMirror:
			materials[i] = material.NewMirror(color, emissive)
		case smdMaterialRefract:
			materials[i] = material.NewRefract(color, emissive, mat.Ior)
		case smdMaterialPhong:
			materials[i] = material.NewPhong(color, emissive, mat.Shininess)
		default:
			materials[i] = material.NewLambert(color, emissive)
		}
	}

	texPaths := make([]string, header.TextureCount)
	for i := range texPaths {
		var tex smdTexture
		if err := binary.Read(r, binary.LittleEndian, &tex); err != nil {
			return nil, nil, fmt.Errorf("scene: could not read mesh texture %d: %w", i, err)
		}
		texPaths[i] = cString(tex.Path[:])
	}

	triangles := make([]*shape.Triangle, header.TriangleCount)
	for i := range triangles {
		var tri smdTriangle
		if err := binary.Read(r, binary.LittleEndian, &tri); err != nil {
			return nil, nil, fmt.Errorf("scene: could not read mesh triangle %d: %w", i, err)
		}
		if tri.VertexOffset+2 >= header.VertexCount || tri.MaterialID >= header.MaterialCount {
			return nil, nil, fmt.Errorf("%w: triangle %d", ErrMeshBadIndex, i)
		}
		triangles[i] = shape.NewTriangle(
			&vertices[tri.VertexOffset],
			&vertices[tri.VertexOffset+1],
			&vertices[tri.VertexOffset+2],
			materials[tri.MaterialID],
		)
	}

	return shape.NewMesh(vertices, materials, triangles), texPaths, nil
}

func cString(raw []byte) string {
	for i, b := range raw {
		if b == 0 {
			return string(raw[:i])
		}
	}
	return string(raw)
}
