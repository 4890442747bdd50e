package main

import (
	"os"
	"time"

	"github.com/urfave/cli"

	"github.com/achilleasa/lumen/cmd"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "lumen"
	app.Usage = "render scenes using path tracing"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene",
			Description: `
Load a scene document, build BVH trees over its meshes and progressively
render it with the monte carlo path tracer. In-progress and final images
are tonemapped and written to the output directory as BMP snapshots.

Without a scene file argument the command loads test_scene.xml from the
working directory and falls back to a built-in test scene when that does
not exist either.`,
			ArgsUsage: "[scene_file.xml]",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: 1280,
					Usage: "frame width for the built-in scene",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 720,
					Usage: "frame height for the built-in scene",
				},
				cli.IntFlag{
					Name:  "spp",
					Value: 512,
					Usage: "samples per pixel for the built-in scene",
				},
				cli.IntFlag{
					Name:  "workers",
					Usage: "number of render workers; defaults to one less than the cpu count (at least 1)",
				},
				cli.IntFlag{
					Name:  "rr-bounces",
					Value: 3,
					Usage: "min bounces before russian roulette path elimination",
				},
				cli.Float64Flag{
					Name:  "exposure",
					Value: 0.18,
					Usage: "exposure for tone-mapping",
				},
				cli.StringFlag{
					Name:  "out-dir, o",
					Value: "img",
					Usage: "directory where image snapshots are written",
				},
				cli.DurationFlag{
					Name:  "snapshot-interval",
					Value: 30 * time.Second,
					Usage: "time between progress snapshots; 0 disables them",
				},
				cli.DurationFlag{
					Name:  "time-limit",
					Value: 272 * time.Second,
					Usage: "hard render deadline; 0 renders to completion",
				},
				cli.IntFlag{
					Name:  "bvh-width",
					Value: 8,
					Usage: "bvh tree fan-out for mesh intersections; 1, 4 or 8",
				},
				cli.BoolFlag{
					Name:  "sah",
					Usage: "score bvh splits with the surface area heuristic",
				},
			},
			Action: cmd.Render,
		},
	}

	app.Run(os.Args)
}
