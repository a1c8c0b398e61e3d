package colormetric

import (
	"fmt"

	"github.com/ironsheep/image-color-mcp/internal/filter"
	"github.com/ironsheep/image-color-mcp/internal/raster"
)

// MaskBuilder builds binary masks over color images. Eroder is used by
// ColorMask when a minimum distance is requested.
type MaskBuilder struct {
	Eroder filter.Eroder
}

// NewMaskBuilder returns a builder using square (8-connected) erosion.
func NewMaskBuilder() *MaskBuilder {
	return &MaskBuilder{Eroder: filter.MinimumEroder{}}
}

// ColorMask selects pixels whose max-min channel spread is at least
// threshdiff. No white-point correction is applied.
//
// When mindist > 1 the mask is eroded with a square element of side
// 2*(mindist-1)+1, so only color pixels at least mindist from every non-color
// pixel survive. mindist <= 1 disables erosion.
func (mb *MaskBuilder) ColorMask(img *raster.Image, threshdiff, mindist int) (*raster.Mask, error) {
	if err := maskInput(img); err != nil {
		return nil, err
	}
	if err := raster.CheckThreshold("threshdiff", threshdiff); err != nil {
		return nil, err
	}

	mask := buildMask(img, func(c raster.RGBColor) bool {
		return int(c.Max()-c.Min()) >= threshdiff
	})
	if mindist <= 1 {
		return mask, nil
	}

	eroder := mb.Eroder
	if eroder == nil {
		eroder = filter.MinimumEroder{}
	}
	return eroder.Erode(mask, mindist-1), nil
}

// GrayMask selects pixels that are close to gray: max channel at most
// maxlimit and max-min spread at most satlimit.
func (mb *MaskBuilder) GrayMask(img *raster.Image, maxlimit, satlimit int) (*raster.Mask, error) {
	if err := maskInput(img); err != nil {
		return nil, err
	}
	if err := raster.CheckThreshold("maxlimit", maxlimit); err != nil {
		return nil, err
	}
	if err := raster.CheckThreshold("satlimit", satlimit); err != nil {
		return nil, err
	}

	return buildMask(img, func(c raster.RGBColor) bool {
		return int(c.Max()) <= maxlimit && int(c.Max()-c.Min()) <= satlimit
	}), nil
}

// ColorRangeMask selects pixels whose every channel lies within [lo, hi].
func (mb *MaskBuilder) ColorRangeMask(img *raster.Image, lo, hi raster.RGBColor) (*raster.Mask, error) {
	if err := maskInput(img); err != nil {
		return nil, err
	}
	if lo.R > hi.R || lo.G > hi.G || lo.B > hi.B {
		return nil, fmt.Errorf("%w: empty color range %v..%v", raster.ErrParameterOutOfRange, lo, hi)
	}

	return buildMask(img, func(c raster.RGBColor) bool {
		return c.R >= lo.R && c.R <= hi.R &&
			c.G >= lo.G && c.G <= hi.G &&
			c.B >= lo.B && c.B <= hi.B
	}), nil
}

func maskInput(img *raster.Image) error {
	if err := raster.CheckImage(img); err != nil {
		return err
	}
	if !img.HasColor() {
		return fmt.Errorf("%w: masks need 32-bit or paletted image, got depth %d",
			raster.ErrUnsupportedDepth, img.Depth)
	}
	return nil
}

// buildMask selects every pixel for which keep returns true.
func buildMask(img *raster.Image, keep func(raster.RGBColor) bool) *raster.Mask {
	mask := raster.NewMask(img.Width, img.Height)
	raster.MapRows(img.Height, func(y int) {
		for x := 0; x < img.Width; x++ {
			if keep(img.At(x, y)) {
				mask.Pix[y*mask.Width+x] = 1
			}
		}
	})
	return mask
}
