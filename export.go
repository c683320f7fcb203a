package flick

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/twotone/flick/rgb565"
	"github.com/twotone/flick/video"
)

const exportWorkers = 8

type exportJob struct {
	index int
	enc   []byte
}

// exportJobs reads every encoded frame in order and hands each to the
// workers as an owned copy. The reader never leaves this goroutine, so
// its seek position needs no locking.
func exportJobs(ctx context.Context, v *video.Reader) (<-chan exportJob, <-chan error) {
	out := make(chan exportJob)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)

		buf := make([]byte, video.MaxEncodedFrame)
		for i := 0; i < v.FrameCount(); i++ {
			n, err := v.ReadFrame(i, buf)
			if err != nil {
				errc <- err
				return
			}

			job := exportJob{index: i, enc: append([]byte(nil), buf[:n]...)}
			select {
			case out <- job:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()
	return out, errc
}

func exportFrameWorker(v *video.Reader, dir string, logger *log.Logger, in <-chan exportJob) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)

		hdr := v.Header()
		pix := make([]uint16, hdr.Pixels())
		img := image.NewRGBA(image.Rect(0, 0, int(hdr.Width), int(hdr.Height)))

		for job := range in {
			video.DecodeFrame(job.enc, pix, rgb565.White, rgb565.Black, false)
			for j, p := range pix {
				c := rgb565.RGBA(p)
				img.Pix[j*4] = c.R
				img.Pix[j*4+1] = c.G
				img.Pix[j*4+2] = c.B
				img.Pix[j*4+3] = 0xff
			}

			name := filepath.Join(dir, fmt.Sprintf("frame-%05d.png", job.index))
			f, err := os.Create(name)
			if err != nil {
				errc <- err
				return
			}
			if err := png.Encode(f, img); err != nil {
				f.Close()
				errc <- err
				return
			}
			if err := f.Close(); err != nil {
				errc <- err
				return
			}

			logger.Printf("wrote %s", name)
		}
	}()
	return errc
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// ExportFrames decodes every frame through the startup palette and
// writes one PNG per frame into dir. Decoding and compression fan out
// across a fixed worker pool; frame order is preserved in the file
// names, not the write order.
func ExportFrames(v *video.Reader, dir string, logger *log.Logger) error {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var errcList []<-chan error

	jobs, errc := exportJobs(ctx, v)
	errcList = append(errcList, errc)

	for i := 0; i < exportWorkers; i++ {
		errcList = append(errcList, exportFrameWorker(v, dir, logger, jobs))
	}

	return waitForPipeline(errcList...)
}
