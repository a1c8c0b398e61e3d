package colorstats

import (
	"fmt"
	"image"

	"github.com/ironsheep/image-color-mcp/internal/colorcube"
	"github.com/ironsheep/image-color-mcp/internal/filter"
	"github.com/ironsheep/image-color-mcp/internal/raster"
)

// QuantizationSigBits is the cube resolution used to count colors in smooth
// regions (cube side 16).
const QuantizationSigBits = 4

// Analyzer computes the statistics that need a gradient operator or
// configured defaults.
type Analyzer struct {
	Config   Config
	Gradient filter.GradientOperator
}

// NewAnalyzer returns an analyzer with DefaultConfig and SobelGradient.
func NewAnalyzer() *Analyzer {
	return &Analyzer{Config: DefaultConfig(), Gradient: filter.SobelGradient{}}
}

// QuantizationEstimate is the result of ColorsForQuantization.
type QuantizationEstimate struct {
	// NumColors is the number of occupied cubes (color images) or significant
	// gray levels (gray images) within low-gradient regions.
	NumColors int `json:"num_colors"`

	// IsColor reports whether the sampled image passes the color test.
	IsColor bool `json:"is_color"`

	// Thresh is the gradient threshold that was applied.
	Thresh int `json:"thresh"`

	// Factor is the sampling factor used for counting.
	Factor int `json:"factor"`

	// LowGradientFraction is the share of pixels below the gradient threshold.
	LowGradientFraction float64 `json:"low_gradient_fraction"`
}

// SamplingFactor picks a stride that keeps about 400 samples along the
// shorter image side.
func SamplingFactor(img *raster.Image) int {
	return max(1, min(img.Width, img.Height)/400)
}

// ColorsForQuantization estimates how many colors an image shows in its
// smooth regions, where quantization is most likely to posterize.
//
// Pixels whose gradient magnitude is below thresh form the low-gradient
// region (UseDefault selects Config.GradientThresh). The color test runs once
// over all sampled pixels, so whether colors or gray levels are counted does
// not depend on thresh. Color images count the occupied 16-level cubes among
// the region's pixels. Otherwise the result counts significant gray levels
// among the region's pixels, measured against all sampled pixels. Both counts
// only grow with the region, so the result never falls as thresh rises.
// Gray images at depth 2 or 4 are counted on their expanded 8-bit levels.
func (a *Analyzer) ColorsForQuantization(img *raster.Image, thresh int) (*QuantizationEstimate, error) {
	if err := raster.CheckImage(img); err != nil {
		return nil, err
	}
	thresh = orDefault(thresh, a.Config.GradientThresh)
	if err := raster.CheckThreshold("thresh", thresh); err != nil {
		return nil, err
	}
	if err := a.Config.Validate(); err != nil {
		return nil, err
	}

	grad, err := a.gradient().Magnitude(img)
	if err != nil {
		return nil, fmt.Errorf("gradient: %w", err)
	}
	mask := lowGradientMask(grad, thresh)
	factor := SamplingFactor(img)

	est := &QuantizationEstimate{
		Thresh:              thresh,
		Factor:              factor,
		LowGradientFraction: mask.Fraction(),
	}
	if img.HasColor() {
		f := colorFraction(img, nil, ColorTestDarkThresh, ColorTestLightThresh, ColorTestDiffThresh, factor)
		est.IsColor = f.Colorful() >= MinColorShare
	}

	if est.IsColor {
		h, err := colorcube.BuildMaskedHistogram(img, mask, QuantizationSigBits, factor)
		if err != nil {
			return nil, err
		}
		est.NumColors = h.Occupied()
		return est, nil
	}

	hist := grayHistogram(img, mask, factor)
	total := raster.SampledCount(img.Width, factor) * raster.SampledCount(img.Height, factor)
	est.NumColors = significantLevels(hist, total, a.Config)
	return est, nil
}

func (a *Analyzer) gradient() filter.GradientOperator {
	if a.Gradient == nil {
		return filter.SobelGradient{}
	}
	return a.Gradient
}

// lowGradientMask selects pixels whose gradient is below thresh.
func lowGradientMask(grad *image.Gray, thresh int) *raster.Mask {
	b := grad.Bounds()
	m := raster.NewMask(b.Dx(), b.Dy())
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if int(grad.GrayAt(x+b.Min.X, y+b.Min.Y).Y) < thresh {
				m.Pix[y*m.Width+x] = 1
			}
		}
	}
	return m
}
