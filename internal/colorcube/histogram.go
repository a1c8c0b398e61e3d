package colorcube

import (
	"fmt"

	"github.com/ironsheep/image-color-mcp/internal/raster"
)

// Histogram counts pixels per cube. Counts is dense, ordered by cube index
// (red-major, blue-minor).
type Histogram struct {
	SigBits int
	Counts  []int
}

// Total returns the number of counted pixels.
func (h *Histogram) Total() int {
	n := 0
	for _, c := range h.Counts {
		n += c
	}
	return n
}

// Occupied returns the number of nonzero cubes.
func (h *Histogram) Occupied() int {
	n := 0
	for _, c := range h.Counts {
		if c > 0 {
			n++
		}
	}
	return n
}

// BuildHistogram counts every factor-th pixel of img into cubes at sigbits.
// The image must carry color: 32-bit or paletted.
func BuildHistogram(img *raster.Image, sigbits, factor int) (*Histogram, error) {
	return BuildMaskedHistogram(img, nil, sigbits, factor)
}

// BuildMaskedHistogram is BuildHistogram restricted to pixels selected in
// mask. A nil mask selects everything.
func BuildMaskedHistogram(img *raster.Image, mask *raster.Mask, sigbits, factor int) (*Histogram, error) {
	if err := raster.CheckImage(img); err != nil {
		return nil, err
	}
	if !img.HasColor() {
		return nil, fmt.Errorf("%w: cube histogram needs 32-bit or paletted image, got depth %d",
			raster.ErrUnsupportedDepth, img.Depth)
	}
	if err := raster.CheckFactor(factor); err != nil {
		return nil, err
	}
	if mask != nil && (mask.Width != img.Width || mask.Height != img.Height) {
		return nil, fmt.Errorf("%w: mask %dx%d does not match image %dx%d",
			raster.ErrInvalidInput, mask.Width, mask.Height, img.Width, img.Height)
	}
	ix, err := NewIndexer(sigbits)
	if err != nil {
		return nil, err
	}

	size := ix.Size()
	counts := raster.ReduceRows(img.Height, factor,
		func() []int { return make([]int, size) },
		func(acc []int, y int) {
			for x := 0; x < img.Width; x += factor {
				if mask != nil && !mask.At(x, y) {
					continue
				}
				r, g, b := img.RGB(x, y)
				acc[ix.Index(r, g, b)]++
			}
		},
		func(total, part []int) {
			for i, c := range part {
				total[i] += c
			}
		})

	return &Histogram{SigBits: sigbits, Counts: counts}, nil
}
