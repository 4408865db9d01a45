package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"bloatgen/blocks"
	"bloatgen/encode"
	"bloatgen/palette"
)

type fakeStamper struct {
	dirs       []string
	timestamps []string
	err        error
}

func (f *fakeStamper) Stamp(dir, timestamp string) error {
	f.dirs = append(f.dirs, dir)
	f.timestamps = append(f.timestamps, timestamp)
	return f.err
}

func testConfig(dir string, images int) Config {
	return Config{
		Images:  images,
		Dir:     dir,
		Blocks:  blocks.Config{Size: 100, BlockSize: 25},
		Encode:  encode.Options{Format: "jpeg", Quality: 100},
		Workers: 1,
	}
}

func TestRunWritesAllImagesAndStampsOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "generated_images_20230615_120000")
	stamper := &fakeStamper{}
	when := time.Date(2023, 6, 15, 12, 0, 0, 0, time.Local)

	if err := Run(testConfig(dir, 3), palette.Default(), stamper, when); err != nil {
		t.Fatalf("Run: %v", err)
	}

	for i := 1; i <= 3; i++ {
		name := filepath.Join(dir, fmt.Sprintf("bloated_image_%d.jpg", i))
		info, err := os.Stat(name)
		if err != nil {
			t.Fatalf("missing output %s: %v", name, err)
		}
		if info.Size() == 0 {
			t.Fatalf("output %s is empty", name)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("directory holds %d files, want 3", len(entries))
	}

	if len(stamper.dirs) != 1 || stamper.dirs[0] != dir {
		t.Fatalf("stamper called with dirs %v, want exactly [%s]", stamper.dirs, dir)
	}
	if got, want := stamper.timestamps[0], "2023:06:15 12:00:00"; got != want {
		t.Fatalf("stamped timestamp = %q, want %q", got, want)
	}
}

func TestRunPooled(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	conf := testConfig(dir, 5)
	conf.Workers = 4
	stamper := &fakeStamper{}

	if err := Run(conf, palette.Default(), stamper, time.Now()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("directory holds %d files, want 5", len(entries))
	}
	if len(stamper.dirs) != 1 {
		t.Fatalf("stamper called %d times, want 1", len(stamper.dirs))
	}
}

func TestRunRejectsBadDimensionsBeforeAnyOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	conf := testConfig(dir, 1)
	conf.Blocks = blocks.Config{Size: 100, BlockSize: 30}
	stamper := &fakeStamper{}

	if err := Run(conf, palette.Default(), stamper, time.Now()); err == nil {
		t.Fatalf("expected error for non-divisible dimensions")
	}

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("output directory was created despite invalid configuration")
	}
	if len(stamper.dirs) != 0 {
		t.Fatalf("stamper was called despite invalid configuration")
	}
}

func TestRunRejectsEmptyPalette(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	if err := Run(testConfig(dir, 1), nil, &fakeStamper{}, time.Now()); err == nil {
		t.Fatalf("expected error for empty palette")
	}
}

func TestRunStamperFailureIsFatalButKeepsImages(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	wantErr := errors.New("backing tool unavailable")
	stamper := &fakeStamper{err: wantErr}

	err := Run(testConfig(dir, 2), palette.Default(), stamper, time.Now())
	if !errors.Is(err, wantErr) {
		t.Fatalf("Run error = %v, want wrapped %v", err, wantErr)
	}

	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatalf("read dir: %v", readErr)
	}
	if len(entries) != 2 {
		t.Fatalf("directory holds %d files after stamp failure, want 2", len(entries))
	}
}

func TestFileName(t *testing.T) {
	conf := testConfig("outdir", 1)
	if got, want := conf.FileName(7), filepath.Join("outdir", "bloated_image_7.jpg"); got != want {
		t.Fatalf("FileName(7) = %q, want %q", got, want)
	}

	conf.Encode.Format = "png"
	if got, want := conf.FileName(12), filepath.Join("outdir", "bloated_image_12.png"); got != want {
		t.Fatalf("FileName(12) = %q, want %q", got, want)
	}
}
