package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"bloatgen/batch"
	"bloatgen/blocks"
	"bloatgen/encode"
	"bloatgen/palette"
	"bloatgen/stamp"

	"github.com/alecthomas/kong"
)

type CLI struct {
	NumImages  int      `arg:"" optional:"" default:"1" help:"Number of images to generate"`
	Size       int      `arg:"" optional:"" default:"1000" help:"Edge length of each square image in pixels, at most 1000 and divisible by the block size"`
	BlockSize  int      `arg:"" optional:"" default:"25" help:"Edge length of each square block in pixels"`
	Quality    int      `arg:"" optional:"" default:"100" help:"JPEG quality (0-100), higher means larger files and less artifacting"`
	OutputPath string   `arg:"" optional:"" default:"output.png" help:"Base output path, informational only; files are named by the batch"`
	Extra      []string `arg:"" optional:"" name:"date-or-color" help:"Optional YYYYMMDD capture date, then zero or more #RRGGBB colors"`

	Format  string `help:"Output image format" enum:"jpeg,png,bmp,tiff" default:"jpeg"`
	Palette string `help:"Palette name (bw, gray16, vga16) or RIFF PAL file, instead of #RRGGBB arguments"`
	Workers int    `help:"Number of parallel encoders, 1 generates strictly sequentially" default:"1"`

	colors color.Palette
	when   time.Time
}

func (c *CLI) Validate(kctx *kong.Context) error {
	if c.NumImages < 1 {
		return fmt.Errorf("invalid number of images: %d", c.NumImages)
	}
	if c.Quality < 0 || c.Quality > 100 {
		return fmt.Errorf("invalid quality %d, should be 0-100", c.Quality)
	}
	if err := (blocks.Config{Size: c.Size, BlockSize: c.BlockSize}).Validate(); err != nil {
		return err
	}

	args := c.Extra
	c.when = time.Now()
	if len(args) > 0 && isDate(args[0]) {
		var err error
		if c.when, err = stamp.ParseDate(args[0]); err != nil {
			return err
		}
		args = args[1:]
	}

	var err error
	switch {
	case len(args) > 0 && c.Palette != "":
		return fmt.Errorf("cannot combine --palette with #RRGGBB arguments")
	case len(args) > 0:
		c.colors, err = palette.FromHex(args)
	case c.Palette != "":
		c.colors, err = palette.Load(c.Palette)
	default:
		c.colors = palette.Default()
	}
	return err
}

// isDate reports whether the first free argument is a YYYYMMDD capture
// date override rather than a color.
func isDate(s string) bool {
	if len(s) != 8 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (c *CLI) Run() error {
	slog.Info("running", "images", c.NumImages, "size", c.Size, "block_size", c.BlockSize,
		"quality", c.Quality, "format", c.Format, "output_path", c.OutputPath,
		"colors", len(c.colors), "workers", c.Workers, "capture_time", stamp.Timestamp(c.when))

	dir := fmt.Sprintf("generated_images_%s", time.Now().Format("20060102_150405"))
	conf := batch.Config{
		Images:  c.NumImages,
		Dir:     dir,
		Blocks:  blocks.Config{Size: c.Size, BlockSize: c.BlockSize},
		Encode:  encode.Options{Format: c.Format, Quality: c.Quality},
		Workers: c.Workers,
	}

	return batch.Run(conf, c.colors, stamp.ExifStamper{}, c.when)
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("bloatgen"),
		kong.Description("Generate batches of large, blocky test images sharing one capture timestamp."),
	)
	kctx.FatalIfErrorf(kctx.Run())
}
