package main

import (
	"io"
	"log"
	"os"

	"github.com/twotone/flick"
	"github.com/twotone/flick/video"
	"github.com/urfave/cli/v2"
)

var exportCommand = &cli.Command{
	Name:      "export",
	Usage:     "Decode every frame to PNG files",
	ArgsUsage: "FILE DIRECTORY",
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

		v, err := video.NewReader(f)
		if err != nil {
			return cli.Exit(err, 1)
		}

		if err := flick.ExportFrames(v, c.Args().Get(1), logger); err != nil {
			return cli.Exit(err, 1)
		}

		return nil
	},
}
