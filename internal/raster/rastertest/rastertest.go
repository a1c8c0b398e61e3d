// Package rastertest builds synthetic raster images for tests.
package rastertest

import "github.com/ironsheep/image-color-mcp/internal/raster"

// SolidRGB returns a 32-bit image filled with one color.
func SolidRGB(width, height int, r, g, b uint8) *raster.Image {
	return RGBFunc(width, height, func(x, y int) (uint8, uint8, uint8) { return r, g, b })
}

// RGBFunc returns a 32-bit image whose pixels are produced by fn.
func RGBFunc(width, height int, fn func(x, y int) (r, g, b uint8)) *raster.Image {
	img := raster.NewRGB(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b := fn(x, y)
			img.SetRGB(x, y, r, g, b)
		}
	}
	return img
}

// GrayFunc returns an 8-bit gray image whose pixels are produced by fn.
func GrayFunc(width, height int, fn func(x, y int) uint8) *raster.Image {
	img := raster.NewGray(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetSample(x, y, fn(x, y))
		}
	}
	return img
}
