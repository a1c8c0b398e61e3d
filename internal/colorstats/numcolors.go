package colorstats

import (
	"fmt"

	"github.com/ironsheep/image-color-mcp/internal/raster"
)

// MaxEnumeratedColors is the largest distinct-color count NumColors reports
// for 32-bit images.
const MaxEnumeratedColors = 256

// NumColors counts the distinct values among every factor-th pixel.
//
// For depths 2, 4 and 8 it counts distinct samples (palette indices or gray
// levels), which is always exact. For 32-bit images it counts distinct r,g,b
// triples and returns 0 as soon as more than MaxEnumeratedColors are seen.
func NumColors(img *raster.Image, factor int) (int, error) {
	if err := raster.CheckImage(img); err != nil {
		return 0, err
	}
	if err := raster.CheckFactor(factor); err != nil {
		return 0, err
	}

	switch img.Depth {
	case raster.Depth2, raster.Depth4, raster.Depth8:
		seen := raster.ReduceRows(img.Height, factor,
			func() []bool { return make([]bool, 256) },
			func(acc []bool, y int) {
				for x := 0; x < img.Width; x += factor {
					acc[img.Sample(x, y)] = true
				}
			},
			func(total, part []bool) {
				for i, v := range part {
					total[i] = total[i] || v
				}
			})
		n := 0
		for _, v := range seen {
			if v {
				n++
			}
		}
		return n, nil

	case raster.Depth32:
		seen := make(map[raster.RGBColor]struct{}, MaxEnumeratedColors+1)
		for y := 0; y < img.Height; y += factor {
			for x := 0; x < img.Width; x += factor {
				seen[img.At(x, y)] = struct{}{}
				if len(seen) > MaxEnumeratedColors {
					return 0, nil
				}
			}
		}
		return len(seen), nil
	}

	return 0, fmt.Errorf("%w: %d", raster.ErrUnsupportedDepth, img.Depth)
}
