package raster

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// Colorful converts to a go-colorful sRGB color with components in [0,1].
func (c RGBColor) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Hex formats the color as "#rrggbb".
func (c RGBColor) Hex() string {
	return c.Colorful().Hex()
}

// Distance is the Euclidean distance between two colors in RGB space,
// with each channel scaled to [0,1].
func (c RGBColor) Distance(o RGBColor) float64 {
	return c.Colorful().DistanceRgb(o.Colorful())
}

// RGBA converts to a standard opaque color.
func (c RGBColor) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Max returns the largest component.
func (c RGBColor) Max() uint8 {
	return max(c.R, c.G, c.B)
}

// Min returns the smallest component.
func (c RGBColor) Min() uint8 {
	return min(c.R, c.G, c.B)
}

// At returns the color of the pixel at (x, y).
func (img *Image) At(x, y int) RGBColor {
	r, g, b := img.RGB(x, y)
	return RGBColor{R: r, G: g, B: b}
}
