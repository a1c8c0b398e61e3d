package colormetric

import (
	"fmt"

	"github.com/ironsheep/image-color-mcp/internal/raster"
)

// WhitePoint is the color that should map to pure white. The zero value
// disables correction.
type WhitePoint struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// IsZero reports whether correction is disabled.
func (wp WhitePoint) IsZero() bool {
	return wp.R == 0 && wp.G == 0 && wp.B == 0
}

// Validate requires all components zero, or all in [1,255].
func (wp WhitePoint) Validate() error {
	if wp.IsZero() {
		return nil
	}
	if wp.R <= 0 || wp.G <= 0 || wp.B <= 0 {
		return fmt.Errorf("%w: (%d,%d,%d) mixes zero and nonzero components",
			raster.ErrMalformedWhitePoint, wp.R, wp.G, wp.B)
	}
	if wp.R > 255 || wp.G > 255 || wp.B > 255 {
		return fmt.Errorf("%w: white point (%d,%d,%d) exceeds 255",
			raster.ErrParameterOutOfRange, wp.R, wp.G, wp.B)
	}
	return nil
}

// Apply rescales each channel so the white point maps to 255.
func (wp WhitePoint) Apply(r, g, b uint8) (uint8, uint8, uint8) {
	if wp.IsZero() {
		return r, g, b
	}
	return scaleChannel(r, wp.R), scaleChannel(g, wp.G), scaleChannel(b, wp.B)
}

// scaleChannel computes clamp(round(v*255/white)) with round half up.
func scaleChannel(v uint8, white int) uint8 {
	s := (int(v)*255*2 + white) / (2 * white)
	if s > 255 {
		return 255
	}
	return uint8(s)
}
