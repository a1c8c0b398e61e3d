package colorcube

import (
	"errors"
	"testing"

	"github.com/ironsheep/image-color-mcp/internal/raster"
	"github.com/ironsheep/image-color-mcp/internal/raster/rastertest"
)

// stripeImage returns a 10-row image whose columns hold colors with the given
// widths, so each color's pixel count is 10*width.
func stripeImage(colors []raster.RGBColor, widths []int) *raster.Image {
	total := 0
	for _, w := range widths {
		total += w
	}
	return rastertest.RGBFunc(total, 10, func(x, y int) (uint8, uint8, uint8) {
		for i, w := range widths {
			if x < w {
				c := colors[i]
				return c.R, c.G, c.B
			}
			x -= w
		}
		return 0, 0, 0
	})
}

func TestTopColors_OrderAndTies(t *testing.T) {
	h := &Histogram{SigBits: 2, Counts: make([]int, 64)}
	h.Counts[5] = 10
	h.Counts[40] = 30
	h.Counts[7] = 10
	h.Counts[2] = 10
	h.Counts[63] = 1

	entries, err := TopColors(h, 3)
	if err != nil {
		t.Fatalf("TopColors failed: %v", err)
	}
	want := []uint32{40, 2, 5}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i, e := range entries {
		if e.Index != want[i] {
			t.Errorf("entry %d: index %d, want %d", i, e.Index, want[i])
		}
	}
	if entries[0].Count != 30 {
		t.Errorf("first count: got %d, want 30", entries[0].Count)
	}
}

func TestTopColors_CountInvariant(t *testing.T) {
	img := rastertest.RGBFunc(64, 64, func(x, y int) (uint8, uint8, uint8) {
		return uint8(x * 4), uint8(y * 4), uint8((x + y) * 2)
	})
	h, err := BuildHistogram(img, 3, 1)
	if err != nil {
		t.Fatal(err)
	}
	total := h.Total()

	for _, n := range []int{1, 5, 20, h.Occupied(), h.Occupied() + 10} {
		entries, err := TopColors(h, n)
		if err != nil {
			t.Fatal(err)
		}
		sum := 0
		for _, e := range entries {
			sum += e.Count
		}
		if sum > total {
			t.Errorf("n=%d: sum %d exceeds total %d", n, sum, total)
		}
		if n >= h.Occupied() && sum != total {
			t.Errorf("n=%d: sum %d, want total %d", n, sum, total)
		}
	}
}

func TestTopColors_Errors(t *testing.T) {
	if _, err := TopColors(nil, 3); !errors.Is(err, raster.ErrInvalidInput) {
		t.Errorf("nil histogram: got %v", err)
	}
	h := &Histogram{SigBits: 2, Counts: make([]int, 64)}
	if _, err := TopColors(h, 0); !errors.Is(err, raster.ErrParameterOutOfRange) {
		t.Errorf("n=0: got %v", err)
	}
}

func TestMostPopulatedColors(t *testing.T) {
	img := stripeImage(
		[]raster.RGBColor{{R: 255, G: 0, B: 0}, {R: 0, G: 0, B: 255}, {R: 0, G: 255, B: 0}},
		[]int{2, 5, 3},
	)
	entries, pal, err := MostPopulatedColors(img, 4, 1, 2)
	if err != nil {
		t.Fatalf("MostPopulatedColors failed: %v", err)
	}
	if len(entries) != 2 || len(pal) != 2 {
		t.Fatalf("got %d entries / %d palette colors, want 2", len(entries), len(pal))
	}
	if entries[0].Count != 50 || entries[1].Count != 30 {
		t.Errorf("counts: got %d,%d want 50,30", entries[0].Count, entries[1].Count)
	}
	// Center of the top cube for blue at sigbits 4.
	if entries[0].RGB != (raster.RGBColor{R: 8, G: 8, B: 248}) {
		t.Errorf("top color: got %+v", entries[0].RGB)
	}
	if entries[0].Hex != "#0808f8" {
		t.Errorf("hex: got %s", entries[0].Hex)
	}
}

func TestSimpleQuantize(t *testing.T) {
	img := stripeImage(
		[]raster.RGBColor{{R: 250, G: 10, B: 10}, {R: 10, G: 10, B: 250}, {R: 240, G: 20, B: 20}},
		[]int{6, 8, 1},
	)
	out, entries, err := SimpleQuantize(img, 4, 1, 2)
	if err != nil {
		t.Fatalf("SimpleQuantize failed: %v", err)
	}
	if out.Width != img.Width || out.Height != img.Height {
		t.Fatalf("size: got %dx%d", out.Width, out.Height)
	}
	if !out.IsPaletted() || len(out.Palette) != 2 {
		t.Fatalf("output should be paletted with 2 colors")
	}
	if entries[0].Count != 80 {
		t.Errorf("first entry count: got %d, want 80 (blue)", entries[0].Count)
	}

	// Reds map to entry 1, blues to entry 0. The lone (240,20,20) column is in
	// an unselected cube and falls back to the nearest entry, which is red.
	for x, want := range map[int]uint8{0: 1, 7: 0, 14: 1} {
		if got := out.Sample(x, 3); got != want {
			t.Errorf("column %d: got palette index %d, want %d", x, got, want)
		}
	}
}

func TestSimpleQuantize_Parameters(t *testing.T) {
	img := rastertest.SolidRGB(4, 4, 10, 20, 30)
	tests := []struct {
		name             string
		sigbits, ncolors int
	}{
		{"sigbits 5", 5, 8},
		{"sigbits 1", 1, 8},
		{"ncolors 0", 3, 0},
		{"ncolors 257", 3, 257},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := SimpleQuantize(img, tt.sigbits, 1, tt.ncolors); !errors.Is(err, raster.ErrParameterOutOfRange) {
				t.Errorf("got %v, want ErrParameterOutOfRange", err)
			}
		})
	}
}
