package palette

import (
	"encoding/binary"
	"fmt"
	"image/color"
	"io"

	"golang.org/x/image/riff"
)

/*
typedef struct tagLOGPALETTE {
  WORD         palVersion;
  WORD         palNumEntries;
  PALETTEENTRY palPalEntry[1];
} LOGPALETTE;

typedef struct tagPALETTEENTRY {
  BYTE peRed;
  BYTE peGreen;
  BYTE peBlue;
  BYTE peFlags;
} PALETTEENTRY;
*/

var (
	palType  = riff.FourCC{'P', 'A', 'L', ' '}
	dataType = riff.FourCC{'d', 'a', 't', 'a'}
)

// ReadPAL reads every data chunk of a RIFF PAL stream and flattens the
// entries into a single palette. Entry flags are ignored and colors are
// always opaque.
func ReadPAL(r io.Reader) (color.Palette, error) {
	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not open RIFF stream: %w", err)
	} else if formType != palType {
		return nil, fmt.Errorf("unsupported RIFF content type: %s", string(formType[:]))
	}

	var pal color.Palette
	for i := 0; ; i++ {
		id, _, data, err := rd.Next()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("could not read chunk #%d: %w", i, err)
		}
		if id != dataType {
			return nil, fmt.Errorf("unsupported chunk type in #%d: %s", i, string(id[:]))
		}

		chunk, err := readEntries(data, i)
		if err != nil {
			return nil, err
		}
		pal = append(pal, chunk...)
	}

	return pal, nil
}

func readEntries(r io.Reader, ident int) (color.Palette, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("could not read header of chunk #%d: %w", ident, err)
	}

	if ver := binary.BigEndian.Uint16(hdr[:2]); ver != 3 {
		return nil, fmt.Errorf("unsupported palette version in chunk #%d: %d", ident, ver)
	}

	count := binary.LittleEndian.Uint16(hdr[2:])
	res := make(color.Palette, 0, count)
	var entry [4]byte
	for i := range int(count) {
		if _, err := io.ReadFull(r, entry[:]); err != nil {
			return res, fmt.Errorf("could not read color %d/%d of chunk #%d: %w", i, count, ident, err)
		}
		res = append(res, color.RGBA{R: entry[0], G: entry[1], B: entry[2], A: 0xFF})
	}

	return res, nil
}
