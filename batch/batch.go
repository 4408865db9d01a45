// Package batch drives whole generate-encode-stamp runs.
package batch

import (
	"fmt"
	"image/color"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"bloatgen/blocks"
	"bloatgen/encode"
	"bloatgen/parallel"
	"bloatgen/stamp"
)

// Config drives one batch run.
type Config struct {
	Images  int    // number of images to generate
	Dir     string // output directory, created if absent
	Blocks  blocks.Config
	Encode  encode.Options
	Workers int // 1 encodes sequentially
}

func (c Config) Validate() error {
	if c.Images < 1 {
		return fmt.Errorf("invalid number of images: %d", c.Images)
	}
	return c.Blocks.Validate()
}

// FileName returns the deterministic name of image i (1-based).
func (c Config) FileName(i int) string {
	return filepath.Join(c.Dir, fmt.Sprintf("bloated_image_%d.%s", i, c.Encode.Ext()))
}

// Run generates and encodes conf.Images images into conf.Dir, then
// hands the directory to the stamper in a single call. The capture time
// is fixed by the caller before any image is written, so the whole
// batch shares one nominal capture time. Any failure aborts the run;
// images already on disk are left in place.
func Run(conf Config, pal color.Palette, stamper stamp.Stamper, when time.Time) error {
	start := time.Now()

	if err := conf.Validate(); err != nil {
		return err
	}
	if len(pal) == 0 {
		return fmt.Errorf("empty palette")
	}

	if err := os.MkdirAll(conf.Dir, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", conf.Dir, err)
	}

	if conf.Workers > 1 {
		if err := runPooled(conf, pal); err != nil {
			return err
		}
	} else {
		rnd := newRand()
		for i := 1; i <= conf.Images; i++ {
			if err := writeOne(conf, pal, rnd, i); err != nil {
				return err
			}
		}
	}

	ts := stamp.Timestamp(when)
	if err := stamper.Stamp(conf.Dir, ts); err != nil {
		return fmt.Errorf("could not stamp metadata on %q, images were left in place: %w", conf.Dir, err)
	}

	slog.Info("done", "images", conf.Images, "dir", conf.Dir, "elapsed", time.Since(start))
	return nil
}

func runPooled(conf Config, pal color.Palette) error {
	pool := parallel.New(conf.Workers)

	errs := make([]error, conf.Images)
	for i := 1; i <= conf.Images; i++ {
		pool.Submit(func() {
			errs[i-1] = writeOne(conf, pal, newRand(), i)
		})
	}
	pool.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func writeOne(conf Config, pal color.Palette, rnd *rand.Rand, i int) error {
	img, err := blocks.Generate(conf.Blocks, pal, rnd)
	if err != nil {
		return err
	}

	name := conf.FileName(i)
	if err := encode.Save(img, name, conf.Encode); err != nil {
		return err
	}

	slog.Info("image saved", "index", i, "file", name)
	return nil
}

// newRand derives a fresh source from the auto-seeded process-wide
// generator; draws stay independent across workers.
func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
