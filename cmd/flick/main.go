package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/twotone/flick/video"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

var infoCommand = &cli.Command{
	Name:      "info",
	Usage:     "Describe a video resource",
	ArgsUsage: "FILE",
	Action: func(c *cli.Context) error {
		if c.NArg() < 1 {
			cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
		}

		f, err := os.Open(c.Args().First())
		if err != nil {
			return cli.Exit(err, 1)
		}
		defer f.Close()

		v, err := video.NewReader(f)
		if err != nil {
			return cli.Exit(err, 1)
		}

		hdr := v.Header()
		duration := time.Duration(hdr.Frames) * time.Second / time.Duration(hdr.FPS)

		var total, largest int
		for i := 0; i < v.FrameCount(); i++ {
			n := v.FrameSize(i)
			total += n
			if n > largest {
				largest = n
			}
		}

		fmt.Printf("%s: %dx%d, %d frames, %d fps, %s\n",
			c.Args().First(), hdr.Width, hdr.Height, hdr.Frames, hdr.FPS, duration)
		fmt.Printf("encoded: %d bytes, largest frame %d bytes, mean %d bytes\n",
			total, largest, total/v.FrameCount())
		if largest > video.MaxEncodedFrame {
			fmt.Printf("note: frames over %d bytes truncate on playback\n", video.MaxEncodedFrame)
		}

		return nil
	},
}

func main() {
	app := cli.NewApp()

	app.Name = "flick"
	app.Usage = "Two-tone RLE video playback utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			EnvVars: []string{"FLICK_VERBOSE"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		infoCommand,
		encodeCommand,
		exportCommand,
		playCommand,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
