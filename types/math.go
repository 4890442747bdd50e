package types

const (
	// Largest hit distance the tracer considers valid.
	FHitMax float32 = 1e12

	// Smallest hit distance; intersections closer than this are
	// treated as self-intersections and rejected.
	FHitMin float32 = 1e-1

	// Machine epsilon for float32.
	Epsilon float32 = 1.1920929e-07
)
