package colormetric

import (
	"errors"
	"testing"

	"github.com/ironsheep/image-color-mcp/internal/raster"
	"github.com/ironsheep/image-color-mcp/internal/raster/rastertest"
)

var allMagnitudes = []MagnitudeType{MaxDiffFromAverage2, MaxMinDiffFrom2, MaxDiff}

func TestPixelMetrics_Gray(t *testing.T) {
	for v := 0; v < 256; v += 5 {
		g := uint8(v)
		if rc, gc, bc := PixelContent(g, g, g); rc|gc|bc != 0 {
			t.Fatalf("gray %d: content (%d,%d,%d)", v, rc, gc, bc)
		}
		for _, mt := range allMagnitudes {
			if m := PixelMagnitude(g, g, g, mt); m != 0 {
				t.Fatalf("gray %d: %v magnitude %d", v, mt, m)
			}
		}
	}
}

func TestPixelMetrics_KnownPixels(t *testing.T) {
	tests := []struct {
		name       string
		r, g, b    uint8
		content    [3]uint8
		magnitudes map[MagnitudeType]uint8
	}{
		{
			name:    "pure blue",
			r:       0, g: 0, b: 255,
			content: [3]uint8{0, 0, 255},
			magnitudes: map[MagnitudeType]uint8{
				MaxDiffFromAverage2: 255,
				MaxMinDiffFrom2:     255,
				MaxDiff:             255,
			},
		},
		{
			name:    "blue ramp",
			r:       0, g: 127, b: 255,
			content: [3]uint8{0, 0, 191},
			magnitudes: map[MagnitudeType]uint8{
				MaxDiffFromAverage2: 191,
				MaxMinDiffFrom2:     128,
				MaxDiff:             255,
			},
		},
		{
			name:    "orange",
			r:       255, g: 128, b: 0,
			content: [3]uint8{191, 0, 0},
			magnitudes: map[MagnitudeType]uint8{
				MaxDiffFromAverage2: 191,
				MaxMinDiffFrom2:     128,
				MaxDiff:             255,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc, gc, bc := PixelContent(tt.r, tt.g, tt.b)
			if got := [3]uint8{rc, gc, bc}; got != tt.content {
				t.Errorf("content: got %v, want %v", got, tt.content)
			}
			for mt, want := range tt.magnitudes {
				if got := PixelMagnitude(tt.r, tt.g, tt.b, mt); got != want {
					t.Errorf("%v: got %d, want %d", mt, got, want)
				}
			}
		})
	}
}

func TestColorContent_Image(t *testing.T) {
	img := rastertest.RGBFunc(3, 1, func(x, y int) (uint8, uint8, uint8) {
		switch x {
		case 0:
			return 0, 127, 255
		case 1:
			return 80, 80, 80
		}
		return 10, 0, 30
	})

	c, err := ColorContent(img, WhitePoint{}, 0)
	if err != nil {
		t.Fatalf("ColorContent failed: %v", err)
	}
	if c.B.GrayAt(0, 0).Y != 191 || c.R.GrayAt(0, 0).Y != 0 {
		t.Errorf("pixel 0: got R=%d B=%d", c.R.GrayAt(0, 0).Y, c.B.GrayAt(0, 0).Y)
	}
	if c.R.GrayAt(1, 0).Y != 0 || c.G.GrayAt(1, 0).Y != 0 || c.B.GrayAt(1, 0).Y != 0 {
		t.Error("gray pixel should have no content")
	}
	if got := c.B.GrayAt(2, 0).Y; got != 25 {
		t.Errorf("pixel 2 blue: got %d, want 25", got)
	}
}

func TestColorMetrics_DarkSuppression(t *testing.T) {
	img := rastertest.SolidRGB(4, 4, 0, 0, 99)

	c, err := ColorContent(img, WhitePoint{}, 100)
	if err != nil {
		t.Fatalf("ColorContent failed: %v", err)
	}
	for _, g := range []*[]uint8{&c.R.Pix, &c.G.Pix, &c.B.Pix} {
		for _, v := range *g {
			if v != 0 {
				t.Fatal("dark pixel should have zero content")
			}
		}
	}

	for _, mt := range allMagnitudes {
		m, err := ColorMagnitude(img, WhitePoint{}, 100, mt)
		if err != nil {
			t.Fatalf("ColorMagnitude failed: %v", err)
		}
		for _, v := range m.Pix {
			if v != 0 {
				t.Fatalf("%v: dark pixel should have zero magnitude", mt)
			}
		}
	}

	// Exactly at mingray the pixel is not dark.
	m, err := ColorMagnitude(img, WhitePoint{}, 99, MaxDiff)
	if err != nil {
		t.Fatal(err)
	}
	if m.GrayAt(0, 0).Y != 99 {
		t.Errorf("pixel at mingray: got %d, want 99", m.GrayAt(0, 0).Y)
	}
}

func TestColorMetrics_WhitePointApplied(t *testing.T) {
	// A yellowish cast: white reads as (255, 255, 200).
	img := rastertest.SolidRGB(2, 2, 255, 255, 200)
	wp := WhitePoint{R: 255, G: 255, B: 200}

	m, err := ColorMagnitude(img, wp, 0, MaxDiff)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.GrayAt(0, 0).Y; got != 0 {
		t.Errorf("corrected white: magnitude %d, want 0", got)
	}

	m, err = ColorMagnitude(img, WhitePoint{}, 0, MaxDiff)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.GrayAt(0, 0).Y; got != 55 {
		t.Errorf("uncorrected: magnitude %d, want 55", got)
	}
}

func TestColorMetrics_GrayAnyWhitePoint(t *testing.T) {
	img := rastertest.RGBFunc(16, 16, func(x, y int) (uint8, uint8, uint8) {
		v := uint8(x*16 + y)
		return v, v, v
	})
	for _, wp := range []WhitePoint{{}, {200, 200, 200}, {255, 255, 255}} {
		for _, mt := range allMagnitudes {
			m, err := ColorMagnitude(img, wp, 0, mt)
			if err != nil {
				t.Fatal(err)
			}
			for _, v := range m.Pix {
				if v != 0 {
					t.Fatalf("wp %v %v: gray pixel magnitude %d", wp, mt, v)
				}
			}
		}
	}
}

// A non-neutral white point makes gray input colored and makes input
// proportional to the white point gray.
func TestColorMetrics_GrayAfterCorrection(t *testing.T) {
	wp := WhitePoint{R: 255, G: 200, B: 160}
	img := rastertest.RGBFunc(2, 1, func(x, y int) (uint8, uint8, uint8) {
		if x == 0 {
			return 128, 100, 80 // half of the white point
		}
		return 100, 100, 100
	})
	for _, mt := range allMagnitudes {
		m, err := ColorMagnitude(img, wp, 0, mt)
		if err != nil {
			t.Fatal(err)
		}
		if got := m.GrayAt(0, 0).Y; got != 0 {
			t.Errorf("%v: corrected gray has magnitude %d", mt, got)
		}
		if got := m.GrayAt(1, 0).Y; got == 0 {
			t.Errorf("%v: gray input should become colored after correction", mt)
		}
	}
}

func TestColorMetrics_Errors(t *testing.T) {
	rgb := rastertest.SolidRGB(2, 2, 1, 2, 3)
	tests := []struct {
		name    string
		img     *raster.Image
		wp      WhitePoint
		mingray int
		want    error
	}{
		{"nil image", nil, WhitePoint{}, 0, raster.ErrInvalidInput},
		{"gray image", raster.NewGray(2, 2), WhitePoint{}, 0, raster.ErrUnsupportedDepth},
		{"mixed white point", rgb, WhitePoint{R: 200, G: 0, B: 200}, 0, raster.ErrMalformedWhitePoint},
		{"white point over 255", rgb, WhitePoint{R: 300, G: 200, B: 200}, 0, raster.ErrParameterOutOfRange},
		{"mingray over 255", rgb, WhitePoint{}, 256, raster.ErrParameterOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ColorContent(tt.img, tt.wp, tt.mingray)
			if !errors.Is(err, tt.want) || c != nil {
				t.Errorf("ColorContent: got (%v, %v), want error %v", c, err, tt.want)
			}
			m, err := ColorMagnitude(tt.img, tt.wp, tt.mingray, MaxDiff)
			if !errors.Is(err, tt.want) || m != nil {
				t.Errorf("ColorMagnitude: got error %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := ColorMagnitude(rgb, WhitePoint{}, 0, MagnitudeType(42)); !errors.Is(err, raster.ErrParameterOutOfRange) {
		t.Errorf("unknown magnitude type: got %v", err)
	}
}

func TestMagnitudeType_ParseRoundTrip(t *testing.T) {
	for _, mt := range allMagnitudes {
		got, err := ParseMagnitudeType(mt.String())
		if err != nil || got != mt {
			t.Errorf("ParseMagnitudeType(%q) = %v, %v", mt.String(), got, err)
		}
	}
	if _, err := ParseMagnitudeType("bogus"); err == nil {
		t.Error("expected error for unknown name")
	}
}
