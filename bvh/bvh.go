package bvh

import (
	"errors"
	"time"

	"github.com/achilleasa/lumen/log"
	"github.com/achilleasa/lumen/shape"
)

// Strategy selects how the builder scores candidate splits.
type Strategy uint8

const (
	// Partition around the centroid median of the longest axis.
	Median Strategy = iota

	// Score bucketed split candidates with the surface area heuristic.
	SAH
)

// The number of uniform buckets candidate SAH splits are projected into.
const sahBuckets = 12

var (
	ErrEmptyTriangleList = errors.New("bvh: cannot build a tree out of an empty triangle list")
	ErrUnsupportedWidth  = errors.New("bvh: unsupported tree width; must be 1, 4 or 8")
)

// Tree construction options.
type Options struct {
	// Tree fan-out. Supported values are 1, 4 and 8.
	Width int

	// Split scoring strategy.
	Strategy Strategy
}

type stats struct {
	nodes    int
	leafs    int
	maxDepth int
}

type builder struct {
	logger    log.Logger
	strategy  Strategy
	leafLimit int
	stats     stats
}

// Construct a tree over a set of triangles. The builder owns a
// permutation of the input slice; triangles in a leaf are contiguous.
func Build(tris []*shape.Triangle, opts Options) (*Tree, error) {
	if len(tris) == 0 {
		return nil, ErrEmptyTriangleList
	}

	b := &builder{
		logger:   log.New("bvh"),
		strategy: opts.Strategy,
	}

	switch opts.Width {
	case 1:
		b.leafLimit = 4
	case 4:
		b.leafLimit = 16
	case 8:
		b.leafLimit = 64
	default:
		return nil, ErrUnsupportedWidth
	}

	tree := &Tree{width: opts.Width}
	start := time.Now()
	switch opts.Width {
	case 1:
		tree.root = b.build(tris, 0)
	case 4:
		tree.root4 = b.build4(tris, 0)
	case 8:
		tree.root8 = b.build8(tris, 0)
	}
	b.logger.Debugf(
		"tree build time: %d ms, width: %d, triangles: %d, maxDepth: %d, nodes: %d, leafs: %d",
		time.Since(start).Nanoseconds()/1e6,
		opts.Width, len(tris),
		b.stats.maxDepth, b.stats.nodes, b.stats.leafs,
	)
	return tree, nil
}
