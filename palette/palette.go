// Package palette provides the fill colors for generated images: strict
// #RRGGBB parsing, built-in presets and RIFF PAL files.
package palette

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
)

// Default returns the palette used when no colors are given: black and
// white, in that order.
func Default() color.Palette {
	return color.Palette{
		color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF},
		color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
	}
}

// ParseHex reads a color of the exact form #RRGGBB, case-insensitive.
// No short form, no alpha.
func ParseHex(s string) (color.RGBA, error) {
	var c color.RGBA
	if len(s) != 7 || s[0] != '#' {
		return c, fmt.Errorf("invalid color %q, should be #RRGGBB", s)
	}

	r, err := strconv.ParseUint(s[1:3], 16, 8)
	if err != nil {
		return c, fmt.Errorf("invalid red channel in %q: %w", s, err)
	}
	g, err := strconv.ParseUint(s[3:5], 16, 8)
	if err != nil {
		return c, fmt.Errorf("invalid green channel in %q: %w", s, err)
	}
	b, err := strconv.ParseUint(s[5:7], 16, 8)
	if err != nil {
		return c, fmt.Errorf("invalid blue channel in %q: %w", s, err)
	}

	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xFF}, nil
}

// FromHex parses a list of #RRGGBB strings into a palette. A single
// bad string fails the whole list, there are no partial palettes.
func FromHex(ss []string) (color.Palette, error) {
	if len(ss) == 0 {
		return nil, fmt.Errorf("no colors given")
	}

	pal := make(color.Palette, 0, len(ss))
	for _, s := range ss {
		c, err := ParseHex(s)
		if err != nil {
			return nil, err
		}
		pal = append(pal, c)
	}
	return pal, nil
}

var builtin = map[string]color.Palette{
	"bw": Default(),
	"gray16": {
		color.RGBA{0x00, 0x00, 0x00, 0xFF}, color.RGBA{0x11, 0x11, 0x11, 0xFF},
		color.RGBA{0x22, 0x22, 0x22, 0xFF}, color.RGBA{0x33, 0x33, 0x33, 0xFF},
		color.RGBA{0x44, 0x44, 0x44, 0xFF}, color.RGBA{0x55, 0x55, 0x55, 0xFF},
		color.RGBA{0x66, 0x66, 0x66, 0xFF}, color.RGBA{0x77, 0x77, 0x77, 0xFF},
		color.RGBA{0x88, 0x88, 0x88, 0xFF}, color.RGBA{0x99, 0x99, 0x99, 0xFF},
		color.RGBA{0xAA, 0xAA, 0xAA, 0xFF}, color.RGBA{0xBB, 0xBB, 0xBB, 0xFF},
		color.RGBA{0xCC, 0xCC, 0xCC, 0xFF}, color.RGBA{0xDD, 0xDD, 0xDD, 0xFF},
		color.RGBA{0xEE, 0xEE, 0xEE, 0xFF}, color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
	},
	"vga16": {
		color.RGBA{0x00, 0x00, 0x00, 0xFF}, color.RGBA{0x00, 0x00, 0xAA, 0xFF},
		color.RGBA{0x00, 0xAA, 0x00, 0xFF}, color.RGBA{0x00, 0xAA, 0xAA, 0xFF},
		color.RGBA{0xAA, 0x00, 0x00, 0xFF}, color.RGBA{0xAA, 0x00, 0xAA, 0xFF},
		color.RGBA{0xAA, 0x55, 0x00, 0xFF}, color.RGBA{0xAA, 0xAA, 0xAA, 0xFF},
		color.RGBA{0x55, 0x55, 0x55, 0xFF}, color.RGBA{0x55, 0x55, 0xFF, 0xFF},
		color.RGBA{0x55, 0xFF, 0x55, 0xFF}, color.RGBA{0x55, 0xFF, 0xFF, 0xFF},
		color.RGBA{0xFF, 0x55, 0x55, 0xFF}, color.RGBA{0xFF, 0x55, 0xFF, 0xFF},
		color.RGBA{0xFF, 0xFF, 0x55, 0xFF}, color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
	},
}

// Load resolves a palette argument: a built-in name (bw, gray16, vga16)
// or the path of a RIFF PAL file.
func Load(nameOrPath string) (color.Palette, error) {
	if pal, ok := builtin[strings.ToLower(nameOrPath)]; ok {
		return pal, nil
	}

	f, err := os.Open(nameOrPath)
	if err != nil {
		return nil, fmt.Errorf("could not open palette file %q: %w", nameOrPath, err)
	}
	defer f.Close()

	pal, err := ReadPAL(f)
	if err != nil {
		return nil, fmt.Errorf("could not load palette %q: %w", nameOrPath, err)
	}
	if len(pal) == 0 {
		return nil, fmt.Errorf("palette file %q contains no colors", nameOrPath)
	}
	return pal, nil
}
