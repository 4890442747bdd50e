package renderer

import "time"

type WorkerStat struct {
	// The worker id.
	Id int

	// Number of image rows traced.
	Rows uint64

	// Number of primary rays emitted.
	Rays uint64

	// Total time spent tracing.
	TraceTime time.Duration
}

type FrameStats struct {
	// Individual worker stats.
	Workers []WorkerStat

	// Number of completed sample passes.
	SamplesPerPixel int

	// Number of snapshots written.
	Snapshots int

	// Total render time for the frame.
	RenderTime time.Duration
}
