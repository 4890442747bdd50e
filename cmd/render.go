package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/achilleasa/lumen/bvh"
	"github.com/achilleasa/lumen/renderer"
	"github.com/achilleasa/lumen/scene"
)

// The scene document loaded when no argument is given.
const defaultSceneFile = "test_scene.xml"

// Render a scene. Without a scene file argument the default document
// is loaded; if that is missing too the built-in test scene is
// rendered instead.
func Render(ctx *cli.Context) error {
	setupLogging(ctx)

	readOpts := scene.ReadOptions{
		BVHWidth: ctx.Int("bvh-width"),
	}
	if ctx.Bool("sah") {
		readOpts.BVHStrategy = bvh.SAH
	}

	sc, err := loadScene(ctx, readOpts)
	if err != nil {
		return err
	}
	defer sc.Dispose()

	r, err := renderer.New(sc, renderer.Options{
		Workers:          ctx.Int("workers"),
		MinBouncesForRR:  uint32(ctx.Int("rr-bounces")),
		Exposure:         float32(ctx.Float64("exposure")),
		OutDir:           ctx.String("out-dir"),
		SnapshotInterval: ctx.Duration("snapshot-interval"),
		TimeLimit:        ctx.Duration("time-limit"),
	})
	if err != nil {
		return err
	}

	err = r.Render()
	if err != nil && !errors.Is(err, renderer.ErrInterrupted) {
		return err
	}

	displayFrameStats(r.Stats())
	return nil
}

func loadScene(ctx *cli.Context, readOpts scene.ReadOptions) (*scene.Scene, error) {
	if ctx.NArg() > 0 {
		return scene.ReadFile(ctx.Args().First(), readOpts)
	}

	sc, err := scene.ReadFile(defaultSceneFile, readOpts)
	if err == nil {
		return sc, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	logger.Noticef("no scene file found; rendering the built-in test scene")
	return scene.Default(
		ctx.Int("width"),
		ctx.Int("height"),
		ctx.Int("spp"),
	), nil
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Rows", "Primary rays", "Trace time"})
	for _, stat := range stats.Workers {
		table.Append([]string{
			fmt.Sprintf("%d", stat.Id),
			fmt.Sprintf("%d", stat.Rows),
			fmt.Sprintf("%d", stat.Rays),
			fmt.Sprintf("%s", stat.TraceTime),
		})
	}
	table.SetFooter([]string{
		"",
		"",
		fmt.Sprintf("%d spp / %d snapshots", stats.SamplesPerPixel, stats.Snapshots),
		fmt.Sprintf("%s", stats.RenderTime),
	})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
