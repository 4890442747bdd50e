package renderer

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/achilleasa/lumen/log"
	"github.com/achilleasa/lumen/scene"
	"github.com/achilleasa/lumen/types"
)

// Renderer progressively refines an image estimate of a scene.
type Renderer interface {
	// Render frame.
	Render() error

	// Get the canvas the render accumulates into.
	Canvas() *Canvas

	// Get render statistics.
	Stats() FrameStats
}

// Per-worker state. Each worker owns a private generator so samples
// never contend on shared PRNG state.
type threadData struct {
	id  int
	rng *types.Random

	rows      uint64
	rays      uint64
	traceTime time.Duration
}

type monteCarlo struct {
	logger log.Logger
	scene  *scene.Scene
	opts   Options

	canvas *Canvas
	queue  *taskQueue

	threads []*threadData

	// Rows left in the current sample pass.
	pending  int32
	passDone chan struct{}

	// finish aborts tracing work; exit terminates the workers.
	finish uint32
	exit   uint32

	snapshots int32
	stats     FrameStats
}

// Create a new CPU monte carlo renderer for a scene.
func New(sc *scene.Scene, opts Options) (Renderer, error) {
	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	if sc.Camera == nil {
		return nil, ErrCameraNotDefined
	}

	opts = opts.withDefaults()
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU() - 1
		if opts.Workers < 1 {
			opts.Workers = 1
		}
	}

	return &monteCarlo{
		logger:   log.New("renderer"),
		scene:    sc,
		opts:     opts,
		canvas:   NewCanvas(sc.Width, sc.Height),
		queue:    newTaskQueue(),
		passDone: make(chan struct{}, 1),
	}, nil
}

// Render frame. The image estimate is refined one sample pass at a
// time; every pass sweeps the full pixel grid so partial renders stay
// uniformly converged. Returns ErrInterrupted when the time limit
// expires before the sample target is reached.
func (r *monteCarlo) Render() error {
	if err := os.MkdirAll(r.opts.OutDir, 0755); err != nil {
		return fmt.Errorf("renderer: could not create output dir: %w", err)
	}

	r.logger.Noticef(
		"rendering %dx%d frame at %d samples per pixel using %d workers",
		r.scene.Width, r.scene.Height, r.scene.Samples, r.opts.Workers,
	)

	var wg sync.WaitGroup
	for i := 0; i < r.opts.Workers; i++ {
		td := &threadData{
			id:  i,
			rng: types.NewRandom(uint32(i) * 1000),
		}
		r.threads = append(r.threads, td)

		wg.Add(1)
		go r.workerLoop(td, &wg)
	}

	monitorDone := make(chan struct{})
	go r.monitorLoop(monitorDone)

	start := time.Now()
	var rendered int
	for pass := 0; pass < r.scene.Samples; pass++ {
		if atomic.LoadUint32(&r.finish) == 1 {
			break
		}

		atomic.StoreInt32(&r.pending, int32(r.scene.Height))
		for y := 0; y < r.scene.Height; y++ {
			r.queue.Push(rowTask{y: y})
		}
		<-r.passDone
		if atomic.LoadUint32(&r.finish) == 1 {
			// The deadline cut this pass short; it does not count.
			break
		}
		rendered++

		if progressStep := r.scene.Samples / 10; progressStep > 0 && rendered%progressStep == 0 {
			r.logger.Infof("%d%% complete", 100*rendered/r.scene.Samples)
		}
	}

	atomic.StoreUint32(&r.exit, 1)
	wg.Wait()
	close(monitorDone)

	r.stats.RenderTime = time.Since(start)
	r.stats.SamplesPerPixel = rendered
	r.stats.Workers = r.stats.Workers[:0]
	for _, td := range r.threads {
		r.stats.Workers = append(r.stats.Workers, WorkerStat{
			Id:        td.id,
			Rows:      td.rows,
			Rays:      td.rays,
			TraceTime: td.traceTime,
		})
	}

	r.writeSnapshot()
	r.stats.Snapshots = int(atomic.LoadInt32(&r.snapshots))

	if rendered < r.scene.Samples {
		r.logger.Warning("rendering incomplete; time limit reached")
		return ErrInterrupted
	}
	return nil
}

// Get the canvas the render accumulates into.
func (r *monteCarlo) Canvas() *Canvas {
	return r.canvas
}

// Get render statistics.
func (r *monteCarlo) Stats() FrameStats {
	return r.stats
}

func (r *monteCarlo) workerLoop(td *threadData, wg *sync.WaitGroup) {
	defer wg.Done()
	for {
		if atomic.LoadUint32(&r.exit) == 1 {
			return
		}

		task, ok := r.queue.Pop()
		if !ok {
			runtime.Gosched()
			continue
		}

		r.traceRow(td, task.y)
		if atomic.AddInt32(&r.pending, -1) == 0 {
			r.passDone <- struct{}{}
		}
	}
}

func (r *monteCarlo) traceRow(td *threadData, y int) {
	start := time.Now()
	invSamples := 1.0 / float32(r.scene.Samples)

	for x := 0; x < r.scene.Width; x++ {
		if atomic.LoadUint32(&r.finish) == 1 {
			break
		}

		ray := r.scene.Camera.Emit(x, y)
		value := radiance(r.scene, ray, td.rng, r.opts.MinBouncesForRR)
		r.canvas.Add(x, y, value.Mul(invSamples))
		td.rays++
	}

	td.rows++
	td.traceTime += time.Since(start)
}

// The monitor periodically captures in-progress snapshots and
// enforces the render deadline.
func (r *monteCarlo) monitorLoop(done chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	start := time.Now()
	lastSnapshot := start
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			now := time.Now()
			if r.opts.SnapshotInterval > 0 && now.Sub(lastSnapshot) >= r.opts.SnapshotInterval {
				r.writeSnapshot()
				lastSnapshot = now
			}
			if r.opts.TimeLimit > 0 && now.Sub(start) >= r.opts.TimeLimit {
				atomic.StoreUint32(&r.finish, 1)
				return
			}
		}
	}
}

func (r *monteCarlo) writeSnapshot() {
	counter := atomic.AddInt32(&r.snapshots, 1) - 1
	path, err := r.canvas.WriteSnapshot(r.opts.OutDir, int(counter), r.opts.Exposure)
	if err != nil {
		r.logger.Warningf("could not write snapshot %d: %v", counter, err)
		return
	}
	r.logger.Noticef("captured %s", path)
}
