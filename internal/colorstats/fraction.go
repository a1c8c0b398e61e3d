package colorstats

import (
	"fmt"

	"github.com/ironsheep/image-color-mcp/internal/raster"
)

// Fraction is the result of ColorFraction.
type Fraction struct {
	// PixFract is the share of sampled pixels that are neither near-black
	// nor near-white.
	PixFract float64 `json:"pix_fract"`

	// ColorFract is the share of those pixels whose channel spread reaches
	// diffthresh. It is 0 when no pixel was considered.
	ColorFract float64 `json:"color_fract"`
}

// Colorful estimates the share of all pixels that carry meaningful color.
func (f Fraction) Colorful() float64 {
	return f.PixFract * f.ColorFract
}

// ColorFraction samples every factor-th pixel. A pixel is considered when
// max(r,g,b) >= darkthresh and min(r,g,b) <= lightthresh, and is colorful when
// also max-min >= diffthresh.
func ColorFraction(img *raster.Image, darkthresh, lightthresh, diffthresh, factor int) (*Fraction, error) {
	if err := raster.CheckImage(img); err != nil {
		return nil, err
	}
	if !img.HasColor() {
		return nil, fmt.Errorf("%w: color fraction needs 32-bit or paletted image, got depth %d",
			raster.ErrUnsupportedDepth, img.Depth)
	}
	for _, p := range []struct {
		name string
		v    int
	}{{"darkthresh", darkthresh}, {"lightthresh", lightthresh}, {"diffthresh", diffthresh}} {
		if err := raster.CheckThreshold(p.name, p.v); err != nil {
			return nil, err
		}
	}
	if err := raster.CheckFactor(factor); err != nil {
		return nil, err
	}

	f := colorFraction(img, nil, darkthresh, lightthresh, diffthresh, factor)
	return &f, nil
}

// colorFraction is ColorFraction over the sampled pixels selected by mask
// (nil selects all), with validated parameters.
func colorFraction(img *raster.Image, mask *raster.Mask, darkthresh, lightthresh, diffthresh, factor int) Fraction {
	// counts: total, considered, colorful
	counts := raster.ReduceRows(img.Height, factor,
		func() *[3]int { return new([3]int) },
		func(acc *[3]int, y int) {
			for x := 0; x < img.Width; x += factor {
				if mask != nil && !mask.At(x, y) {
					continue
				}
				acc[0]++
				c := img.At(x, y)
				hi, lo := int(c.Max()), int(c.Min())
				if hi < darkthresh || lo > lightthresh {
					continue
				}
				acc[1]++
				if hi-lo >= diffthresh {
					acc[2]++
				}
			}
		},
		func(total, part *[3]int) {
			for i := range total {
				total[i] += part[i]
			}
		})

	var f Fraction
	if counts[0] > 0 {
		f.PixFract = float64(counts[1]) / float64(counts[0])
	}
	if counts[1] > 0 {
		f.ColorFract = float64(counts[2]) / float64(counts[1])
	}
	return f
}
