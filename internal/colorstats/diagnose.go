package colorstats

import (
	"github.com/ironsheep/image-color-mcp/internal/raster"
)

// Suggested encodings returned by Diagnose.
const (
	EncodingPalette   = "palette"
	EncodingGrayscale = "grayscale"
	EncodingQuantized = "quantized"
	EncodingTrueColor = "truecolor"
)

// PosterizationCubeLimit is the largest number of occupied 16-level cubes in
// smooth regions for which a 256-color quantization is expected to hold up.
const PosterizationCubeLimit = 256

// Diagnosis summarises an image's color content in one pass of the
// individual statistics.
type Diagnosis struct {
	Width             int                   `json:"width"`
	Height            int                   `json:"height"`
	Depth             int                   `json:"depth"`
	Factor            int                   `json:"factor"`
	NumColors         int                   `json:"num_colors"`
	Fraction          *Fraction             `json:"fraction,omitempty"`
	Quantization      *QuantizationEstimate `json:"quantization"`
	PosterizationRisk bool                  `json:"posterization_risk"`
	SuggestedEncoding string                `json:"suggested_encoding"`
}

// Diagnose runs NumColors, ColorFraction (color images only) and
// ColorsForQuantization and suggests an encoding:
//
//   - grayscale: no color channels, or too few colorful pixels
//   - palette: at most 256 exact colors
//   - quantized: color, with few enough cubes in smooth regions
//   - truecolor: color smooth regions would posterize when quantized
func (a *Analyzer) Diagnose(img *raster.Image) (*Diagnosis, error) {
	if err := raster.CheckImage(img); err != nil {
		return nil, err
	}
	factor := SamplingFactor(img)

	d := &Diagnosis{
		Width:  img.Width,
		Height: img.Height,
		Depth:  img.Depth,
		Factor: factor,
	}

	n, err := NumColors(img, factor)
	if err != nil {
		return nil, err
	}
	d.NumColors = n

	if img.HasColor() {
		d.Fraction, err = ColorFraction(img, ColorTestDarkThresh, ColorTestLightThresh, ColorTestDiffThresh, factor)
		if err != nil {
			return nil, err
		}
	}

	d.Quantization, err = a.ColorsForQuantization(img, UseDefault)
	if err != nil {
		return nil, err
	}

	switch {
	case !img.HasColor() || !d.Quantization.IsColor:
		d.SuggestedEncoding = EncodingGrayscale
	case d.NumColors > 0:
		d.SuggestedEncoding = EncodingPalette
	case d.Quantization.NumColors > PosterizationCubeLimit:
		d.PosterizationRisk = true
		d.SuggestedEncoding = EncodingTrueColor
	default:
		d.SuggestedEncoding = EncodingQuantized
	}
	return d, nil
}
