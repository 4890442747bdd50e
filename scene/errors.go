package scene

import (
	"errors"
)

var (
	ErrMissingCamera     = errors.New("scene: no camera defined")
	ErrInvalidDimensions = errors.New("scene: width, height and samples must be positive")
	ErrDuplicateID       = errors.New("scene: duplicate id")
	ErrUnknownMaterialID = errors.New("scene: reference to unknown material id")
	ErrUnknownShapeID    = errors.New("scene: reference to unknown shape id")
	ErrUnknownTextureID  = errors.New("scene: reference to unknown texture id")

	ErrMeshBadMagic   = errors.New("scene: mesh file magic mismatch")
	ErrMeshBadVersion = errors.New("scene: unsupported mesh file version")
	ErrMeshBadIndex   = errors.New("scene: mesh triangle references data out of bounds")
)
