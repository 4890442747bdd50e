package renderer

import "time"

type Options struct {
	// Number of worker goroutines. A zero value selects one worker
	// per logical CPU, leaving one free for the monitor.
	Workers int

	// Min bounces before applying russian roulette for path elimination.
	MinBouncesForRR uint32

	// Exposure for tonemapping.
	Exposure float32

	// Directory where image snapshots are written.
	OutDir string

	// Time between periodic snapshots. Zero disables them.
	SnapshotInterval time.Duration

	// Hard wall-clock deadline for the render. Zero renders until
	// the sample target is reached.
	TimeLimit time.Duration
}

// Fill in defaults for unset option fields.
func (o Options) withDefaults() Options {
	if o.MinBouncesForRR == 0 {
		o.MinBouncesForRR = 3
	}
	if o.Exposure == 0 {
		o.Exposure = 0.18
	}
	if o.OutDir == "" {
		o.OutDir = "img"
	}
	return o
}
