package scene

import (
	"encoding/xml"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strconv"
	"strings"
	"time"

	hdrimage "github.com/mdouchement/hdr"
	_ "github.com/mdouchement/hdr/codec/rgbe"
	"github.com/chewxy/math32"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/achilleasa/lumen/bvh"
	"github.com/achilleasa/lumen/log"
	"github.com/achilleasa/lumen/material"
	"github.com/achilleasa/lumen/shape"
	"github.com/achilleasa/lumen/types"
)

// Mesh acceleration settings applied to every mesh in a scene
// document.
type ReadOptions struct {
	// BVH fan-out. Zero selects the widest supported tree.
	BVHWidth int

	// BVH split scoring strategy.
	BVHStrategy bvh.Strategy
}

type xmlScene struct {
	XMLName xml.Name `xml:"scene"`
	Width   int      `xml:"width,attr"`
	Height  int      `xml:"height,attr"`
	Samples int      `xml:"samples,attr"`
	IBLPath string   `xml:"ibl_path,attr"`

	Textures  []xmlTexture  `xml:"textures>texture"`
	Lamberts  []xmlMaterial `xml:"lamberts>lambert"`
	Mirrors   []xmlMaterial `xml:"mirrors>mirror"`
	Refracts  []xmlMaterial `xml:"refracts>refract"`
	Phongs    []xmlMaterial `xml:"phongs>phong"`
	Spheres   []xmlSphere   `xml:"sphere_shapes>sphere"`
	Meshes    []xmlMesh     `xml:"mesh_shapes>mesh"`
	Instances []xmlInstance `xml:"instance_shapes>instance"`
	Cameras   []xmlCamera   `xml:"cameras>camera"`
}

type xmlTexture struct {
	ID   uint32 `xml:"id,attr"`
	Path string `xml:"path,attr"`
}

type xmlMaterial struct {
	ID        uint32  `xml:"id,attr"`
	Color     string  `xml:"color,attr"`
	Emissive  string  `xml:"emissive,attr"`
	Ior       float32 `xml:"ior,attr"`
	Shininess float32 `xml:"shininess,attr"`
	TextureID uint32  `xml:"texture_id,attr"`
}

type xmlSphere struct {
	ID         uint32  `xml:"id,attr"`
	Pos        string  `xml:"pos,attr"`
	Radius     float32 `xml:"radius,attr"`
	MaterialID uint32  `xml:"material_id,attr"`
}

type xmlMesh struct {
	ID   uint32 `xml:"id,attr"`
	Path string `xml:"path,attr"`
}

type xmlInstance struct {
	ID      uint32 `xml:"id,attr"`
	ShapeID uint32 `xml:"shape_id,attr"`
	World   string `xml:"world,attr"`
}

type xmlCamera struct {
	Pos    string  `xml:"pos,attr"`
	Dir    string  `xml:"dir,attr"`
	Upward string  `xml:"upward,attr"`
	FovDeg float32 `xml:"fov_deg,attr"`
	Znear  float32 `xml:"znear,attr"`
}

// Read a scene document from a local file or http/https URL. Mesh
// and texture references inside the document resolve relative to it.
func ReadFile(path string, opts ReadOptions) (*Scene, error) {
	res, err := NewResource(path, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	return Read(res, opts)
}

// Read a scene document from a resource.
func Read(res *Resource, opts ReadOptions) (*Scene, error) {
	var doc xmlScene
	if err := xml.NewDecoder(res).Decode(&doc); err != nil {
		return nil, fmt.Errorf("scene: could not parse scene document: %w", err)
	}

	if opts.BVHWidth == 0 {
		opts.BVHWidth = 8
	}

	ld := &loader{
		logger:    log.New("scene"),
		base:      res,
		opts:      opts,
		textures:  make(map[uint32]*Texture),
		materials: make(map[uint32]material.Material),
		shapes:    make(map[uint32]shape.Shape),
	}
	return ld.load(&doc)
}

type loader struct {
	logger log.Logger
	base   *Resource
	opts   ReadOptions

	// A nil entry marks a texture that was declared but failed to
	// decode; materials referencing it sample their default color.
	textures  map[uint32]*Texture
	materials map[uint32]material.Material
	shapes    map[uint32]shape.Shape

	shapeOrder []uint32
}

func (l *loader) load(doc *xmlScene) (*Scene, error) {
	start := time.Now()

	if doc.Width <= 0 || doc.Height <= 0 || doc.Samples <= 0 {
		return nil, ErrInvalidDimensions
	}

	s := NewScene()
	s.Width = doc.Width
	s.Height = doc.Height
	s.Samples = doc.Samples

	if err := l.loadTextures(doc, s); err != nil {
		return nil, err
	}
	if err := l.loadMaterials(doc, s); err != nil {
		return nil, err
	}
	if err := l.loadShapes(doc, s); err != nil {
		return nil, err
	}
	if err := l.loadCamera(doc, s); err != nil {
		return nil, err
	}

	if doc.IBLPath != "" {
		ibl, err := l.decodeTexture(doc.IBLPath, l.base)
		if err != nil {
			return nil, err
		}
		s.IBL = ibl
	}

	l.logger.Noticef(
		"loaded scene in %d ms: %d texture(s), %d material(s), %d top-level shape(s)",
		time.Since(start).Nanoseconds()/1e6,
		len(s.Textures), len(s.Materials), len(s.Shapes),
	)
	return s, nil
}

func (l *loader) loadTextures(doc *xmlScene, s *Scene) error {
	for _, def := range doc.Textures {
		if _, exists := l.textures[def.ID]; exists {
			return fmt.Errorf("%w: texture %d", ErrDuplicateID, def.ID)
		}

		tex, err := l.decodeTexture(def.Path, l.base)
		if err != nil {
			l.logger.Warningf("skipping texture %d: %v", def.ID, err)
			l.textures[def.ID] = nil
			continue
		}
		l.textures[def.ID] = tex
		s.Textures = append(s.Textures, tex)
	}
	return nil
}

func (l *loader) loadMaterials(doc *xmlScene, s *Scene) error {
	for _, def := range doc.Lamberts {
		color, emissive, err := l.materialColors(def)
		if err != nil {
			return err
		}
		if err := l.addMaterial(s, def, material.NewLambert(color, emissive)); err != nil {
			return err
		}
	}
	for _, def := range doc.Mirrors {
		color, emissive, err := l.materialColors(def)
		if err != nil {
			return err
		}
		if err := l.addMaterial(s, def, material.NewMirror(color, emissive)); err != nil {
			return err
		}
	}
	for _, def := range doc.Refracts {
		color, emissive, err := l.materialColors(def)
		if err != nil {
			return err
		}
		if err := l.addMaterial(s, def, material.NewRefract(color, emissive, def.Ior)); err != nil {
			return err
		}
	}
	for _, def := range doc.Phongs {
		color, emissive, err := l.materialColors(def)
		if err != nil {
			return err
		}
		if err := l.addMaterial(s, def, material.NewPhong(color, emissive, def.Shininess)); err != nil {
			return err
		}
	}
	return nil
}

func (l *loader) materialColors(def xmlMaterial) (color, emissive types.Vec3, err error) {
	if color, err = parseVec3(def.Color); err != nil {
		return color, emissive, fmt.Errorf("material %d: %w", def.ID, err)
	}
	if def.Emissive != "" {
		if emissive, err = parseVec3(def.Emissive); err != nil {
			return color, emissive, fmt.Errorf("material %d: %w", def.ID, err)
		}
	}
	return color, emissive, nil
}

// Materials embed their texture sampler at load time so shading does
// not need a texture id lookup.
type texturedMaterial interface {
	material.Material
	SetTexture(tex material.Sampler)
}

func (l *loader) addMaterial(s *Scene, def xmlMaterial, mat texturedMaterial) error {
	if _, exists := l.materials[def.ID]; exists {
		return fmt.Errorf("%w: material %d", ErrDuplicateID, def.ID)
	}

	if def.TextureID != 0 {
		tex, exists := l.textures[def.TextureID]
		if !exists {
			return fmt.Errorf("%w: material %d references texture %d", ErrUnknownTextureID, def.ID, def.TextureID)
		}
		if tex != nil {
			mat.SetTexture(tex)
		}
	}

	l.materials[def.ID] = mat
	s.Materials = append(s.Materials, mat)
	return nil
}

func (l *loader) loadShapes(doc *xmlScene, s *Scene) error {
	for _, def := range doc.Spheres {
		if _, exists := l.shapes[def.ID]; exists {
			return fmt.Errorf("%w: sphere %d", ErrDuplicateID, def.ID)
		}
		pos, err := parseVec3(def.Pos)
		if err != nil {
			return fmt.Errorf("sphere %d: %w", def.ID, err)
		}
		mat, exists := l.materials[def.MaterialID]
		if !exists {
			return fmt.Errorf("%w: sphere %d references material %d", ErrUnknownMaterialID, def.ID, def.MaterialID)
		}
		l.shapes[def.ID] = shape.NewSphere(pos, def.Radius, mat)
		l.shapeOrder = append(l.shapeOrder, def.ID)
	}

	for _, def := range doc.Meshes {
		if _, exists := l.shapes[def.ID]; exists {
			return fmt.Errorf("%w: mesh %d", ErrDuplicateID, def.ID)
		}
		mesh, err := l.loadMesh(def, s)
		if err != nil {
			return err
		}
		l.shapes[def.ID] = mesh
		l.shapeOrder = append(l.shapeOrder, def.ID)
	}

	// Shapes referenced by an instance act as templates; the
	// instances take their place in the top-level shape list.
	instanced := make(map[uint32]bool)
	instances := make([]shape.Shape, 0, len(doc.Instances))
	for _, def := range doc.Instances {
		if _, exists := l.shapes[def.ID]; exists {
			return fmt.Errorf("%w: instance %d", ErrDuplicateID, def.ID)
		}
		child, exists := l.shapes[def.ShapeID]
		if !exists {
			return fmt.Errorf("%w: instance %d references shape %d", ErrUnknownShapeID, def.ID, def.ShapeID)
		}
		world, err := parseMat4(def.World)
		if err != nil {
			return fmt.Errorf("instance %d: %w", def.ID, err)
		}

		inst := shape.NewShapeInstance(child, world)
		l.shapes[def.ID] = inst
		instanced[def.ShapeID] = true
		instances = append(instances, inst)
	}

	for _, id := range l.shapeOrder {
		if !instanced[id] {
			s.Shapes = append(s.Shapes, l.shapes[id])
		}
	}
	s.Shapes = append(s.Shapes, instances...)
	return nil
}

func (l *loader) loadMesh(def xmlMesh, s *Scene) (*shape.Mesh, error) {
	res, err := NewResource(def.Path, l.base)
	if err != nil {
		return nil, fmt.Errorf("mesh %d: %w", def.ID, err)
	}
	defer res.Close()

	mesh, texPaths, err := ReadMesh(res)
	if err != nil {
		return nil, fmt.Errorf("mesh %d: %w", def.ID, err)
	}

	// Mesh texture references resolve against the mesh container, not
	// the scene document.
	for _, texPath := range texPaths {
		tex, err := l.decodeTexture(texPath, res)
		if err != nil {
			l.logger.Warningf("skipping mesh %d texture: %v", def.ID, err)
			continue
		}
		s.Textures = append(s.Textures, tex)
	}
	s.Materials = append(s.Materials, mesh.Materials...)

	tree, err := bvh.Build(mesh.Triangles, bvh.Options{
		Width:    l.opts.BVHWidth,
		Strategy: l.opts.BVHStrategy,
	})
	if err != nil {
		return nil, fmt.Errorf("mesh %d: %w", def.ID, err)
	}
	mesh.SetIntersector(tree)
	return mesh, nil
}

func (l *loader) loadCamera(doc *xmlScene, s *Scene) error {
	if len(doc.Cameras) == 0 {
		return ErrMissingCamera
	}

	// Only the first camera drives the render.
	def := doc.Cameras[0]
	pos, err := parseVec3(def.Pos)
	if err != nil {
		return fmt.Errorf("camera: %w", err)
	}
	dir, err := parseVec3(def.Dir)
	if err != nil {
		return fmt.Errorf("camera: %w", err)
	}
	up, err := parseVec3(def.Upward)
	if err != nil {
		return fmt.Errorf("camera: %w", err)
	}

	fov := def.FovDeg * math32.Pi / 180.0
	aspect := float32(s.Width) / float32(s.Height)
	s.Camera = NewCamera(pos, dir, up, fov, aspect, def.Znear, s.Width, s.Height)
	return nil
}

func (l *loader) decodeTexture(path string, relTo *Resource) (*Texture, error) {
	res, err := NewResource(path, relTo)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	img, _, err := image.Decode(res)
	if err != nil {
		return nil, fmt.Errorf("scene: could not decode texture %q: %w", res.Path(), err)
	}
	return textureFromImage(img), nil
}

// Convert a decoded image into a linear float texture. HDR sources
// keep their radiance values; LDR sources get linearized from sRGB.
func textureFromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	tex := NewTexture(bounds.Dx(), bounds.Dy())

	if hdrImg, ok := img.(hdrimage.Image); ok {
		for y := 0; y < tex.Height; y++ {
			for x := 0; x < tex.Width; x++ {
				r, g, b, _ := hdrImg.HDRAt(bounds.Min.X+x, bounds.Min.Y+y).HDRRGBA()
				tex.SetTexel(x, y, types.XYZ(float32(r), float32(g), float32(b)))
			}
		}
		return tex
	}

	for y := 0; y < tex.Height; y++ {
		for x := 0; x < tex.Width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			tex.SetTexel(x, y, types.XYZ(
				float32(r)/65535.0,
				float32(g)/65535.0,
				float32(b)/65535.0,
			).SRGBDecode())
		}
	}
	return tex
}

func parseVec3(raw string) (types.Vec3, error) {
	values, err := parseFloats(raw, 3)
	if err != nil {
		return types.Vec3{}, err
	}
	return types.XYZ(values[0], values[1], values[2]), nil
}

func parseMat4(raw string) (types.Mat4, error) {
	values, err := parseFloats(raw, 16)
	if err != nil {
		return types.Mat4{}, err
	}

	var m types.Mat4
	copy(m[:], values)
	return m, nil
}

func parseFloats(raw string, count int) ([]float32, error) {
	fields := strings.Fields(raw)
	if len(fields) != count {
		return nil, fmt.Errorf("scene: expected %d float values; got %d", count, len(fields))
	}

	values := make([]float32, count)
	for i, field := range fields {
		parsed, err := strconv.ParseFloat(field, 32)
		if err != nil {
			return nil, fmt.Errorf("scene: could not parse float value %q: %w", field, err)
		}
		values[i] = float32(parsed)
	}
	return values, nil
}
