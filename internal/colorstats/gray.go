package colorstats

import (
	"fmt"

	"github.com/ironsheep/image-color-mcp/internal/raster"
)

// NumSignificantGrayColors counts the gray levels L in [darkthresh,
// lightthresh] holding at least minfract of the sampled pixels of an 8-bit
// gray image.
//
// Pass UseDefault for darkthresh, lightthresh or minfract to use
// DefaultDarkThresh, DefaultLightThresh and DefaultMinFract.
func NumSignificantGrayColors(img *raster.Image, darkthresh, lightthresh int, minfract float64, factor int) (int, error) {
	if err := raster.CheckImage(img); err != nil {
		return 0, err
	}
	if !img.IsGray8() {
		return 0, fmt.Errorf("%w: significant gray levels need 8-bit gray image, got depth %d",
			raster.ErrUnsupportedDepth, img.Depth)
	}
	if err := raster.CheckFactor(factor); err != nil {
		return 0, err
	}
	cfg := DefaultConfig()
	cfg.DarkThresh = orDefault(darkthresh, cfg.DarkThresh)
	cfg.LightThresh = orDefault(lightthresh, cfg.LightThresh)
	if minfract != UseDefault {
		cfg.MinFract = minfract
	}
	if err := cfg.Validate(); err != nil {
		return 0, err
	}

	hist := grayHistogram(img, nil, factor)
	total := raster.SampledCount(img.Width, factor) * raster.SampledCount(img.Height, factor)
	return significantLevels(hist, total, cfg), nil
}

// grayHistogram counts the intensity of every sampled pixel selected by mask
// (nil selects all).
func grayHistogram(img *raster.Image, mask *raster.Mask, factor int) []int {
	return raster.ReduceRows(img.Height, factor,
		func() []int { return make([]int, 256) },
		func(acc []int, y int) {
			for x := 0; x < img.Width; x += factor {
				if mask != nil && !mask.At(x, y) {
					continue
				}
				acc[img.Gray(x, y)]++
			}
		},
		func(total, part []int) {
			for i, c := range part {
				total[i] += c
			}
		})
}

// significantLevels counts levels in [DarkThresh, LightThresh] whose share of
// total reaches MinFract.
func significantLevels(hist []int, total int, cfg Config) int {
	if total == 0 {
		return 0
	}
	n := 0
	for level := cfg.DarkThresh; level <= cfg.LightThresh; level++ {
		if float64(hist[level])/float64(total) >= cfg.MinFract {
			n++
		}
	}
	return n
}
