package main

import (
	"testing"
)

func TestIsDate(t *testing.T) {
	for in, want := range map[string]bool{
		"20230615": true,
		"19000101": true,
		"99999999": true, // shape only; range checks happen during parsing
		"2023061":  false,
		"#FF5733":  false,
		"2023a615": false,
		"":         false,
	} {
		if got := isDate(in); got != want {
			t.Fatalf("isDate(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestCLIValidate(t *testing.T) {
	base := func() CLI {
		return CLI{NumImages: 1, Size: 1000, BlockSize: 25, Quality: 100, Format: "jpeg", Workers: 1}
	}

	t.Run("defaults_to_black_and_white", func(t *testing.T) {
		c := base()
		if err := c.Validate(nil); err != nil {
			t.Fatalf("Validate: %v", err)
		}
		if len(c.colors) != 2 {
			t.Fatalf("got %d colors, want 2", len(c.colors))
		}
	})

	t.Run("date_then_colors", func(t *testing.T) {
		c := base()
		c.Extra = []string{"20230615", "#FF5733", "#33FF57"}
		if err := c.Validate(nil); err != nil {
			t.Fatalf("Validate: %v", err)
		}
		if len(c.colors) != 2 {
			t.Fatalf("got %d colors, want 2", len(c.colors))
		}
		if got, want := c.when.Format("2006-01-02 15:04"), "2023-06-15 12:00"; got != want {
			t.Fatalf("capture time = %q, want %q", got, want)
		}
	})

	t.Run("colors_without_date", func(t *testing.T) {
		c := base()
		c.Extra = []string{"#FF5733"}
		if err := c.Validate(nil); err != nil {
			t.Fatalf("Validate: %v", err)
		}
		if len(c.colors) != 1 {
			t.Fatalf("got %d colors, want 1", len(c.colors))
		}
	})

	t.Run("malformed_color", func(t *testing.T) {
		c := base()
		c.Extra = []string{"#ZZZZZZ"}
		if err := c.Validate(nil); err == nil {
			t.Fatalf("expected error for malformed color")
		}
	})

	t.Run("bad_date_range", func(t *testing.T) {
		c := base()
		c.Extra = []string{"21020101"}
		if err := c.Validate(nil); err == nil {
			t.Fatalf("expected error for out-of-range year")
		}
	})

	t.Run("indivisible_block_size", func(t *testing.T) {
		c := base()
		c.Size, c.BlockSize = 100, 30
		if err := c.Validate(nil); err == nil {
			t.Fatalf("expected error for non-divisible dimensions")
		}
	})

	t.Run("quality_out_of_range", func(t *testing.T) {
		c := base()
		c.Quality = 101
		if err := c.Validate(nil); err == nil {
			t.Fatalf("expected error for quality above 100")
		}
	})

	t.Run("palette_flag", func(t *testing.T) {
		c := base()
		c.Palette = "vga16"
		if err := c.Validate(nil); err != nil {
			t.Fatalf("Validate: %v", err)
		}
		if len(c.colors) != 16 {
			t.Fatalf("got %d colors, want 16", len(c.colors))
		}
	})

	t.Run("palette_flag_conflicts_with_colors", func(t *testing.T) {
		c := base()
		c.Palette = "bw"
		c.Extra = []string{"#FF5733"}
		if err := c.Validate(nil); err == nil {
			t.Fatalf("expected error for --palette combined with colors")
		}
	})
}
