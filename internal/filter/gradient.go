package filter

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/effect"

	"github.com/ironsheep/image-color-mcp/internal/raster"
)

// GradientOperator computes a per-pixel gradient magnitude field with the
// same dimensions as the source image.
type GradientOperator interface {
	Magnitude(img *raster.Image) (*image.Gray, error)
}

// SobelGradient is the default GradientOperator.
//
// # Algorithm
//
//  1. Grayscale conversion: each pixel's BT.601 luminance (gray images use
//     their own samples, paletted images their palette colors)
//
//  2. Optional Gaussian blur: 5x5 kernel when Smooth is set
//
//  3. Sobel operators for X and Y gradients, border pixels replicated:
//     magnitude = sqrt(Gx² + Gy²) / 8, rounded and clamped to 255
//
// The /8 normalisation makes a linear ramp of s levels per pixel report s.
type SobelGradient struct {
	Smooth bool
}

// Magnitude implements GradientOperator.
func (s SobelGradient) Magnitude(img *raster.Image) (*image.Gray, error) {
	if err := raster.CheckImage(img); err != nil {
		return nil, err
	}
	width, height := img.Width, img.Height

	gray := make([][]float64, height)
	for y := 0; y < height; y++ {
		gray[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			gray[y][x] = float64(img.Gray(x, y))
		}
	}
	if s.Smooth {
		gray = gaussianBlur(gray, width, height)
	}

	sobelX := [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY := [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	out := image.NewGray(image.Rect(0, 0, width, height))
	raster.MapRows(height, func(y int) {
		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					gx += gray[py][px] * sobelX[ky+1][kx+1]
					gy += gray[py][px] * sobelY[ky+1][kx+1]
				}
			}
			mag := math.Round(math.Sqrt(gx*gx+gy*gy) / 8)
			if mag > 255 {
				mag = 255
			}
			out.Pix[y*out.Stride+x] = uint8(mag)
		}
	})
	return out, nil
}

// gaussianBlur applies a 5x5 Gaussian blur (sigma ≈ 1.4, kernel sum 273).
// Border pixels use clamped (replicated) edge values.
func gaussianBlur(img [][]float64, width, height int) [][]float64 {
	kernel := [5][5]float64{
		{1, 4, 7, 4, 1},
		{4, 16, 26, 16, 4},
		{7, 26, 41, 26, 7},
		{4, 16, 26, 16, 4},
		{1, 4, 7, 4, 1},
	}
	kernelSum := 273.0

	result := make([][]float64, height)
	for y := 0; y < height; y++ {
		result[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			var sum float64
			for ky := -2; ky <= 2; ky++ {
				for kx := -2; kx <= 2; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					sum += img[py][px] * kernel[ky+2][kx+2]
				}
			}
			result[y][x] = sum / kernelSum
		}
	}
	return result
}

// BildSobel computes the gradient field with bild's effect.Sobel on the
// luminance image.
type BildSobel struct{}

// Magnitude implements GradientOperator.
func (BildSobel) Magnitude(img *raster.Image) (*image.Gray, error) {
	if err := raster.CheckImage(img); err != nil {
		return nil, err
	}
	src := image.NewGray(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			src.Pix[y*src.Stride+x] = img.Gray(x, y)
		}
	}

	var edges image.Image = effect.Sobel(src)
	b := edges.Bounds()
	if b.Dx() != img.Width || b.Dy() != img.Height {
		return nil, fmt.Errorf("sobel output %dx%d does not match input %dx%d",
			b.Dx(), b.Dy(), img.Width, img.Height)
	}
	out := image.NewGray(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			out.SetGray(x, y, color.GrayModel.Convert(edges.At(x+b.Min.X, y+b.Min.Y)).(color.Gray))
		}
	}
	return out, nil
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// GradientByName returns the GradientOperator for "sobel" (or ""),
// "sobel_smooth" or "bild".
func GradientByName(name string) (GradientOperator, error) {
	switch name {
	case "", "sobel":
		return SobelGradient{}, nil
	case "sobel_smooth":
		return SobelGradient{Smooth: true}, nil
	case "bild":
		return BildSobel{}, nil
	}
	return nil, fmt.Errorf("%w: unknown gradient operator %q", raster.ErrParameterOutOfRange, name)
}
