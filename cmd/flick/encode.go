package main

import (
	"image"
	"image/draw"
	"image/gif"
	"io"
	"log"
	"os"

	"github.com/twotone/flick/video"
	"github.com/urfave/cli/v2"
)

const defaultFPS = 30

var encodeCommand = &cli.Command{
	Name:      "encode",
	Usage:     "Encode an animated GIF into a video resource",
	ArgsUsage: "SOURCE TARGET",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "fps",
			Usage: "frame rate, 0 derives it from the GIF timing",
		},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() < 2 {
			cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
		}

		logger := log.New(io.Discard, "", 0)
		if c.Bool("verbose") {
			logger.SetOutput(os.Stderr)
		}

		f, err := os.Open(c.Args().Get(0))
		if err != nil {
			return cli.Exit(err, 1)
		}
		defer f.Close()

		g, err := gif.DecodeAll(f)
		if err != nil {
			return cli.Exit(err, 1)
		}

		fps := c.Int("fps")
		if fps == 0 && len(g.Delay) > 0 && g.Delay[0] > 0 {
			fps = 100 / g.Delay[0]
		}
		if fps == 0 {
			fps = defaultFPS
		}

		bounds := g.Image[0].Bounds()
		enc, err := video.NewEncoder(bounds.Dx(), bounds.Dy(), fps)
		if err != nil {
			return cli.Exit(err, 1)
		}

		// GIF frames may cover only the changed region; composite each
		// onto the running canvas before quantizing.
		canvas := image.NewRGBA(bounds)
		for i, frame := range g.Image {
			draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
			if err := enc.AddFrame(canvas); err != nil {
				return cli.Exit(err, 1)
			}
			logger.Printf("frame %d encoded", i)
		}

		out, err := os.Create(c.Args().Get(1))
		if err != nil {
			return cli.Exit(err, 1)
		}

		if _, err := enc.WriteTo(out); err != nil {
			out.Close()
			return cli.Exit(err, 1)
		}
		if err := out.Close(); err != nil {
			return cli.Exit(err, 1)
		}

		logger.Printf("%d frames at %d fps written to %s", enc.Frames(), fps, c.Args().Get(1))

		return nil
	},
}
