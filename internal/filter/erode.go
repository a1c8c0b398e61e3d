package filter

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/gift"

	"github.com/ironsheep/image-color-mcp/internal/raster"
)

// Eroder shrinks the selected region of a binary mask.
//
// Erode must return a new mask no larger than m: a pixel survives only if it
// was selected in m. radius <= 0 returns an unmodified copy.
type Eroder interface {
	Erode(m *raster.Mask, radius int) *raster.Mask
}

// DiskEroder erodes with bild's effect.Erode, whose kernel size follows the
// radius. The result is intersected with the input so it never grows the mask.
type DiskEroder struct{}

// Erode implements Eroder.
func (DiskEroder) Erode(m *raster.Mask, radius int) *raster.Mask {
	if radius <= 0 {
		out := raster.NewMask(m.Width, m.Height)
		copy(out.Pix, m.Pix)
		return out
	}

	var eroded image.Image = effect.Erode(m.ToGray(), float64(radius))
	out := raster.MaskFromGray(eroded)
	for i, v := range m.Pix {
		if v == 0 {
			out.Pix[i] = 0
		}
	}
	return out
}

// MinimumEroder erodes with gift's square minimum filter of size 2*radius+1.
//
// A pixel survives iff every pixel within Chebyshev distance radius is
// selected. gift extends the image by its edge pixels, which for a minimum
// filter is the same as counting positions outside the mask as selected, so
// the image border does not erode the mask.
type MinimumEroder struct{}

// Erode implements Eroder.
func (MinimumEroder) Erode(m *raster.Mask, radius int) *raster.Mask {
	if radius <= 0 {
		out := raster.NewMask(m.Width, m.Height)
		copy(out.Pix, m.Pix)
		return out
	}

	src := m.ToGray()
	g := gift.New(gift.Minimum(2*radius+1, false))
	dst := image.NewGray(g.Bounds(src.Bounds()))
	g.Draw(dst, src)

	out := raster.MaskFromGray(dst)
	for i, v := range m.Pix {
		if v == 0 {
			out.Pix[i] = 0
		}
	}
	return out
}

// EroderByName returns the Eroder for "minimum" (or "") or "disk".
func EroderByName(name string) (Eroder, error) {
	switch name {
	case "", "minimum":
		return MinimumEroder{}, nil
	case "disk":
		return DiskEroder{}, nil
	}
	return nil, fmt.Errorf("%w: unknown eroder %q", raster.ErrParameterOutOfRange, name)
}
