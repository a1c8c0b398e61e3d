package filter

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/ironsheep/image-color-mcp/internal/raster"
	"github.com/ironsheep/image-color-mcp/internal/raster/rastertest"
)

// squareMask returns a size x size mask with a filled block [x0,x1) x [y0,y1).
func squareMask(size, x0, y0, x1, y1 int) *raster.Mask {
	m := raster.NewMask(size, size)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			m.Set(x, y, true)
		}
	}
	return m
}

func TestMinimumEroder_Block(t *testing.T) {
	m := squareMask(20, 5, 5, 15, 15) // 10x10 block

	tests := []struct {
		radius int
		want   int
	}{
		{0, 100},
		{1, 64},
		{2, 36},
		{4, 4},
		{5, 0},
	}

	for _, tt := range tests {
		got := MinimumEroder{}.Erode(m, tt.radius).Count()
		if got != tt.want {
			t.Errorf("radius %d: got %d pixels, want %d", tt.radius, got, tt.want)
		}
	}
}

func TestMinimumEroder_BorderDoesNotErode(t *testing.T) {
	m := squareMask(8, 0, 0, 8, 8)
	if got := (MinimumEroder{}).Erode(m, 3).Count(); got != 64 {
		t.Errorf("full mask eroded to %d pixels, want 64", got)
	}
}

func TestMinimumEroder_DiagonalNeighbour(t *testing.T) {
	m := squareMask(9, 0, 0, 9, 9)
	m.Set(4, 4, false)

	out := MinimumEroder{}.Erode(m, 1)
	for _, p := range [][2]int{{3, 3}, {5, 5}, {3, 5}, {4, 3}} {
		if out.At(p[0], p[1]) {
			t.Errorf("pixel %v next to hole should be eroded", p)
		}
	}
	if !out.At(2, 2) || !out.At(6, 4) {
		t.Error("pixels two away from the hole should survive radius 1")
	}
}

func TestMinimumEroder_DoesNotModifyInput(t *testing.T) {
	m := squareMask(10, 2, 2, 8, 8)
	before := m.Count()
	MinimumEroder{}.Erode(m, 2)
	if m.Count() != before {
		t.Error("Erode modified its input")
	}
}

func TestDiskEroder_Subset(t *testing.T) {
	m := squareMask(30, 3, 4, 25, 20)
	m.Set(10, 10, false)

	for _, radius := range []int{0, 1, 2, 3} {
		out := DiskEroder{}.Erode(m, radius)
		for i, v := range out.Pix {
			if v != 0 && m.Pix[i] == 0 {
				t.Fatalf("radius %d: pixel %d selected in output but not input", radius, i)
			}
		}
		if radius == 0 && out.Count() != m.Count() {
			t.Errorf("radius 0 should copy the mask")
		}
	}
}

func TestSobelGradient_Uniform(t *testing.T) {
	img := rastertest.SolidRGB(16, 16, 90, 140, 200)
	for _, op := range []GradientOperator{SobelGradient{}, SobelGradient{Smooth: true}, BildSobel{}} {
		g, err := op.Magnitude(img)
		if err != nil {
			t.Fatalf("%T: Magnitude failed: %v", op, err)
		}
		if g.Bounds().Dx() != 16 || g.Bounds().Dy() != 16 {
			t.Fatalf("%T: bounds %v", op, g.Bounds())
		}
		// Interior only: border handling differs between operators.
		for y := 1; y < 15; y++ {
			for x := 1; x < 15; x++ {
				if v := g.GrayAt(x, y).Y; v != 0 {
					t.Fatalf("%T: uniform image has gradient %d at (%d,%d)", op, v, x, y)
				}
			}
		}
	}
}

func TestSobelGradient_Ramp(t *testing.T) {
	img := rastertest.GrayFunc(20, 10, func(x, y int) uint8 { return uint8(x * 3) })
	g, err := SobelGradient{}.Magnitude(img)
	if err != nil {
		t.Fatalf("Magnitude failed: %v", err)
	}
	// Interior columns see a slope of 3 levels per pixel.
	for x := 1; x < 19; x++ {
		if v := g.GrayAt(x, 5).Y; v != 3 {
			t.Errorf("column %d: got %d, want 3", x, v)
		}
	}
}

func TestSobelGradient_StepEdge(t *testing.T) {
	img := rastertest.GrayFunc(20, 20, func(x, y int) uint8 {
		if x < 10 {
			return 0
		}
		return 255
	})
	g, err := SobelGradient{}.Magnitude(img)
	if err != nil {
		t.Fatalf("Magnitude failed: %v", err)
	}
	if g.GrayAt(9, 10).Y == 0 || g.GrayAt(10, 10).Y == 0 {
		t.Error("edge columns should have nonzero gradient")
	}
	if g.GrayAt(2, 10).Y != 0 || g.GrayAt(17, 10).Y != 0 {
		t.Error("flat regions should have zero gradient")
	}
}

func TestSobelGradient_InvalidInput(t *testing.T) {
	if _, err := (SobelGradient{}).Magnitude(nil); !errors.Is(err, raster.ErrInvalidInput) {
		t.Errorf("got %v, want ErrInvalidInput", err)
	}
}

// referenceErode erodes m directly from the definition: a pixel survives iff
// every in-bounds pixel within Chebyshev distance radius is selected.
func referenceErode(m *raster.Mask, radius int) *raster.Mask {
	out := raster.NewMask(m.Width, m.Height)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			keep := m.At(x, y)
			for dy := -radius; keep && dy <= radius; dy++ {
				for dx := -radius; keep && dx <= radius; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || ny < 0 || nx >= m.Width || ny >= m.Height {
						continue
					}
					keep = m.At(nx, ny)
				}
			}
			out.Set(x, y, keep)
		}
	}
	return out
}

func TestMinimumEroder_MatchesDefinition(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 60; trial++ {
		w, h := 1+rng.Intn(40), 1+rng.Intn(40)
		radius := 1 + rng.Intn(4)
		m := raster.NewMask(w, h)
		for i := range m.Pix {
			if rng.Intn(10) < 8 {
				m.Pix[i] = 1
			}
		}

		want := referenceErode(m, radius)
		got := MinimumEroder{}.Erode(m, radius)
		for i := range want.Pix {
			if got.Pix[i] != want.Pix[i] {
				t.Fatalf("trial %d (%dx%d radius %d): pixel (%d,%d) got %d, want %d",
					trial, w, h, radius, i%w, i/w, got.Pix[i], want.Pix[i])
			}
		}
	}
}

func TestEroderByName(t *testing.T) {
	tests := []struct {
		name string
		want Eroder
	}{
		{"", MinimumEroder{}},
		{"minimum", MinimumEroder{}},
		{"disk", DiskEroder{}},
	}
	for _, tt := range tests {
		got, err := EroderByName(tt.name)
		if err != nil || got != tt.want {
			t.Errorf("%q: got %T, %v", tt.name, got, err)
		}
	}
	if _, err := EroderByName("brick"); !errors.Is(err, raster.ErrParameterOutOfRange) {
		t.Errorf("unknown eroder: got %v", err)
	}
}

func TestGradientByName(t *testing.T) {
	tests := []struct {
		name string
		want GradientOperator
	}{
		{"", SobelGradient{}},
		{"sobel", SobelGradient{}},
		{"sobel_smooth", SobelGradient{Smooth: true}},
		{"bild", BildSobel{}},
	}
	for _, tt := range tests {
		got, err := GradientByName(tt.name)
		if err != nil || got != tt.want {
			t.Errorf("%q: got %#v, %v", tt.name, got, err)
		}
	}
	if _, err := GradientByName("laplace"); !errors.Is(err, raster.ErrParameterOutOfRange) {
		t.Errorf("unknown operator: got %v", err)
	}
}
