package inputdisplay

import (
	"context"
	"image"
	_ "image/gif"  // decoder
	_ "image/jpeg" // decoder
	_ "image/png"  // decoder
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/inputdisplay/bmp"
	"github.com/pkg/errors"
)

// maxImageSize is the largest source file a Converter will read.
const maxImageSize = 16 << (10 * 2)

// Converter turns artwork in any registered image format into sprite sheet
// bitmaps the overlay can load.
type Converter struct {
	// Workers is the number of files converted at once
	Workers int

	logger *log.Logger
}

// NewConverter returns a Converter logging to logger.
func NewConverter(logger *log.Logger) *Converter {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	return &Converter{
		Workers: 4,
		logger:  logger,
	}
}

// ConvertFile converts the image in src and writes the bitmap to dst.
func (c *Converter) ConvertFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	m, format, err := image.Decode(in)
	if err != nil {
		return errors.Wrap(err, src)
	}
	c.logger.Printf("%s: %s image, %v", src, format, m.Bounds().Size())

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if err := bmp.Encode(out, m); err != nil {
		out.Close()
		return errors.Wrap(err, dst)
	}

	return out.Close()
}

func isImage(file string) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".png", ".gif", ".jpg", ".jpeg":
		return true
	default:
		return false
	}
}

func (c *Converter) findImages(ctx context.Context, base string) (<-chan string, <-chan error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				// Only the top directory is converted
				if file != base {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore hidden and irregular files
			if info.Name()[0] == '.' || !info.Mode().IsRegular() {
				return nil
			}

			if !isImage(file) {
				return nil
			}

			if info.Size() > maxImageSize {
				c.logger.Printf("%s: skipping, %d bytes", file, info.Size())
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc
}

func (c *Converter) convertWorker(ctx context.Context, in <-chan string, dst string) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)) + ".bmp"
			if err := c.ConvertFile(file, filepath.Join(dst, name)); err != nil {
				errc <- err
				return
			}
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

// ConvertDirectory converts every image directly inside src, writing each
// bitmap into dst under the same base name. It stops at the first error.
func (c *Converter) ConvertDirectory(ctx context.Context, src, dst string) error {
	dir, err := filepath.Abs(src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dst, 0o755); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	files, errc := c.findImages(ctx, dir)
	errcList := []<-chan error{errc}

	workers := c.Workers
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		errcList = append(errcList, c.convertWorker(ctx, files, dst))
	}

	return waitForPipeline(errcList...)
}
