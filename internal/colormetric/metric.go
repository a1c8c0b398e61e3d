package colormetric

import (
	"fmt"
	"image"

	"github.com/ironsheep/image-color-mcp/internal/raster"
)

// MagnitudeType selects how a pixel's deviation from gray is summarised.
type MagnitudeType int

const (
	// MaxDiffFromAverage2 is the largest |X - avg(other two)| over channels.
	MaxDiffFromAverage2 MagnitudeType = iota + 1

	// MaxMinDiffFrom2 is, over channels X, the largest min(|X-Y|, |X-Z|):
	// the median of the three pairwise differences.
	MaxMinDiffFrom2

	// MaxDiff is max(r,g,b) - min(r,g,b).
	MaxDiff
)

var magnitudeNames = map[MagnitudeType]string{
	MaxDiffFromAverage2: "max_diff_from_average_2",
	MaxMinDiffFrom2:     "max_min_diff_from_2",
	MaxDiff:             "max_diff",
}

func (t MagnitudeType) String() string {
	if s, ok := magnitudeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("MagnitudeType(%d)", int(t))
}

// ParseMagnitudeType maps a policy name as returned by String back to its type.
func ParseMagnitudeType(s string) (MagnitudeType, error) {
	for t, name := range magnitudeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown magnitude type %q", raster.ErrParameterOutOfRange, s)
}

// Content holds the three per-channel content images.
type Content struct {
	R *image.Gray
	G *image.Gray
	B *image.Gray
}

// aboveAverage returns max(0, x - (y+z)/2), dropping a trailing half level.
func aboveAverage(x, y, z int) uint8 {
	d := 2*x - y - z
	if d <= 0 {
		return 0
	}
	return uint8(d / 2)
}

// absInt returns |v|.
func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// PixelContent returns how far each channel exceeds the average of the other
// two. No white-point correction or dark suppression is applied.
func PixelContent(r, g, b uint8) (rc, gc, bc uint8) {
	ri, gi, bi := int(r), int(g), int(b)
	return aboveAverage(ri, gi, bi), aboveAverage(gi, ri, bi), aboveAverage(bi, ri, gi)
}

// PixelMagnitude returns the colorfulness of one pixel under policy t.
// No white-point correction or dark suppression is applied.
func PixelMagnitude(r, g, b uint8, t MagnitudeType) uint8 {
	ri, gi, bi := int(r), int(g), int(b)
	switch t {
	case MaxDiffFromAverage2:
		rd := absInt(2*ri-gi-bi) / 2
		gd := absInt(2*gi-ri-bi) / 2
		bd := absInt(2*bi-ri-gi) / 2
		return uint8(max(rd, gd, bd))
	case MaxMinDiffFrom2:
		rg, rb, gb := absInt(ri-gi), absInt(ri-bi), absInt(gi-bi)
		return uint8(max(min(rg, rb), min(rg, gb), min(rb, gb)))
	case MaxDiff:
		return max(r, g, b) - min(r, g, b)
	}
	return 0
}

// metricParams validates the inputs shared by ColorContent and ColorMagnitude.
func metricParams(img *raster.Image, wp WhitePoint, mingray int) error {
	if err := raster.CheckImage(img); err != nil {
		return err
	}
	if !img.HasColor() {
		return fmt.Errorf("%w: color metrics need 32-bit or paletted image, got depth %d",
			raster.ErrUnsupportedDepth, img.Depth)
	}
	if err := wp.Validate(); err != nil {
		return err
	}
	return raster.CheckThreshold("mingray", mingray)
}

// ColorContent computes the three content images of img.
//
// Each pixel is first corrected by wp (unless zero). If the brightest
// corrected channel is below mingray all three outputs are 0.
func ColorContent(img *raster.Image, wp WhitePoint, mingray int) (*Content, error) {
	if err := metricParams(img, wp, mingray); err != nil {
		return nil, err
	}

	rect := image.Rect(0, 0, img.Width, img.Height)
	out := &Content{R: image.NewGray(rect), G: image.NewGray(rect), B: image.NewGray(rect)}
	raster.MapRows(img.Height, func(y int) {
		for x := 0; x < img.Width; x++ {
			r, g, b := wp.Apply(img.RGB(x, y))
			if int(max(r, g, b)) < mingray {
				continue
			}
			i := y*out.R.Stride + x
			out.R.Pix[i], out.G.Pix[i], out.B.Pix[i] = PixelContent(r, g, b)
		}
	})
	return out, nil
}

// ColorMagnitude computes one magnitude image of img under policy t, with the
// same white-point and dark-pixel handling as ColorContent.
func ColorMagnitude(img *raster.Image, wp WhitePoint, mingray int, t MagnitudeType) (*image.Gray, error) {
	if err := metricParams(img, wp, mingray); err != nil {
		return nil, err
	}
	if _, ok := magnitudeNames[t]; !ok {
		return nil, fmt.Errorf("%w: magnitude type %d", raster.ErrParameterOutOfRange, int(t))
	}

	out := image.NewGray(image.Rect(0, 0, img.Width, img.Height))
	raster.MapRows(img.Height, func(y int) {
		for x := 0; x < img.Width; x++ {
			r, g, b := wp.Apply(img.RGB(x, y))
			if int(max(r, g, b)) < mingray {
				continue
			}
			out.Pix[y*out.Stride+x] = PixelMagnitude(r, g, b, t)
		}
	})
	return out, nil
}
