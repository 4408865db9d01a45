package stamp

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	exif "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
	jpegstructure "github.com/dsoprea/go-jpeg-image-structure/v2"
)

// ExifStamper writes the capture timestamp into the EXIF date tags of
// every JPEG in the directory and sets every file's access and
// modification times to match. Non-JPEG files only get their file times
// set, they have no EXIF segment to carry the tags.
type ExifStamper struct{}

var _ Stamper = ExifStamper{}

func (ExifStamper) Stamp(dir, timestamp string) error {
	when, err := time.ParseInLocation(Layout, timestamp, time.Local)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", timestamp, err)
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", dir, err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}

		path := filepath.Join(dir, file.Name())
		switch strings.ToLower(filepath.Ext(path)) {
		case ".jpg", ".jpeg":
			if err := writeExifDates(path, timestamp); err != nil {
				return fmt.Errorf("could not stamp %q: %w", path, err)
			}
		}

		if err := os.Chtimes(path, when, when); err != nil {
			return fmt.Errorf("could not set file times on %q: %w", path, err)
		}
	}

	return nil
}

// The three date tags cameras set on capture.
var dateTags = []struct{ ifdPath, name string }{
	{"IFD0", "DateTime"},
	{"IFD/Exif", "DateTimeOriginal"},
	{"IFD/Exif", "DateTimeDigitized"},
}

func writeExifDates(path, timestamp string) (err error) {
	parser := jpegstructure.NewJpegMediaParser()
	intfc, err := parser.ParseFile(path)
	if err != nil {
		return fmt.Errorf("could not parse JPEG: %w", err)
	}
	sl := intfc.(*jpegstructure.SegmentList)

	rootIb, err := sl.ConstructExifBuilder()
	if err != nil {
		// Freshly encoded files carry no EXIF segment yet.
		im, imErr := exifcommon.NewIfdMappingWithStandard()
		if imErr != nil {
			return fmt.Errorf("could not build IFD mapping: %w", imErr)
		}
		rootIb = exif.NewIfdBuilder(im, exif.NewTagIndex(), exifcommon.IfdStandardIfdIdentity,
			exifcommon.EncodeDefaultByteOrder)
	}

	for _, tag := range dateTags {
		ib, err := exif.GetOrCreateIbFromRootIb(rootIb, tag.ifdPath)
		if err != nil {
			return fmt.Errorf("could not open IFD %s: %w", tag.ifdPath, err)
		}
		if err := ib.SetStandardWithName(tag.name, timestamp); err != nil {
			return fmt.Errorf("could not set tag %s: %w", tag.name, err)
		}
	}

	if err := sl.SetExif(rootIb); err != nil {
		return fmt.Errorf("could not attach EXIF segment: %w", err)
	}

	dir, name := filepath.Split(path)
	outFile, err := os.CreateTemp(dir, name)
	if err != nil {
		return fmt.Errorf("could not create temporary file: %w", err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil && err == nil {
			err = fmt.Errorf("could not flush %q: %w", outFile.Name(), defErr)
		}
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close %q: %w", outFile.Name(), defErr)
		}

		if err != nil || !canRename {
			if defErr := os.Remove(outFile.Name()); defErr != nil {
				slog.Error("could not remove temporary file", "name", outFile.Name(), "error", defErr)
			}
			return
		}

		if defErr := os.Rename(outFile.Name(), path); defErr != nil {
			err = fmt.Errorf("could not rename %q: %w", path, defErr)
		}
	}()

	if err = sl.Write(outFile); err != nil {
		return fmt.Errorf("could not write stamped JPEG: %w", err)
	}

	canRename = true
	return err
}
