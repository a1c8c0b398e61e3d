package colorcube

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/ironsheep/image-color-mcp/internal/raster"
)

// Simple quantizer limits.
const (
	MaxQuantizeSigBits = 4
	MaxPaletteColors   = 256
)

// ColorEntry is one populated cube and its representative color.
type ColorEntry struct {
	Index uint32          `json:"index"` // Cube index at the histogram's sigbits
	RGB   raster.RGBColor `json:"rgb"`   // Cube center
	Hex   string          `json:"hex"`   // Cube center as "#rrggbb"
	Count int             `json:"count"` // Pixels counted in the cube
}

// TopColors returns up to n of the most populated cubes, largest count first.
//
// Empty cubes are never returned, so fewer than n entries come back when fewer
// cubes are occupied. Cubes with equal counts are ordered by ascending index.
func TopColors(h *Histogram, n int) ([]ColorEntry, error) {
	if h == nil {
		return nil, fmt.Errorf("%w: nil histogram", raster.ErrInvalidInput)
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: ncolors %d must be >= 1", raster.ErrParameterOutOfRange, n)
	}
	ix, err := NewIndexer(h.SigBits)
	if err != nil {
		return nil, err
	}

	occupied := make([]uint32, 0, 64)
	for i, c := range h.Counts {
		if c > 0 {
			occupied = append(occupied, uint32(i))
		}
	}
	// Indices are already ascending, so a stable sort by count keeps the
	// index tie-break.
	sort.SliceStable(occupied, func(i, j int) bool {
		return h.Counts[occupied[i]] > h.Counts[occupied[j]]
	})
	if len(occupied) > n {
		occupied = occupied[:n]
	}

	entries := make([]ColorEntry, len(occupied))
	for i, index := range occupied {
		c := ix.Color(index)
		entries[i] = ColorEntry{
			Index: index,
			RGB:   c,
			Hex:   c.Hex(),
			Count: h.Counts[index],
		}
	}
	return entries, nil
}

// Palette returns the entries' colors in order.
func Palette(entries []ColorEntry) color.Palette {
	pal := make(color.Palette, len(entries))
	for i, e := range entries {
		pal[i] = e.RGB.RGBA()
	}
	return pal
}

// MostPopulatedColors histograms img at sigbits with sampling factor and
// returns the ncolors most populated cubes together with their palette.
func MostPopulatedColors(img *raster.Image, sigbits, factor, ncolors int) ([]ColorEntry, color.Palette, error) {
	h, err := BuildHistogram(img, sigbits, factor)
	if err != nil {
		return nil, nil, err
	}
	entries, err := TopColors(h, ncolors)
	if err != nil {
		return nil, nil, err
	}
	return entries, Palette(entries), nil
}

// SimpleQuantize maps img onto the ncolors most populated cubes.
//
// The histogram is taken at sampling factor, but every pixel of the output is
// assigned: pixels whose cube was selected take that entry, all others take
// the entry nearest to their own color in RGB space (lowest palette index on
// ties). sigbits must be in [2,4] and ncolors in [1,256].
func SimpleQuantize(img *raster.Image, sigbits, factor, ncolors int) (*raster.Image, []ColorEntry, error) {
	if err := raster.CheckRange("sigbits", sigbits, MinSigBits, MaxQuantizeSigBits); err != nil {
		return nil, nil, err
	}
	if err := raster.CheckRange("ncolors", ncolors, 1, MaxPaletteColors); err != nil {
		return nil, nil, err
	}
	entries, pal, err := MostPopulatedColors(img, sigbits, factor, ncolors)
	if err != nil {
		return nil, nil, err
	}
	if len(entries) == 0 {
		return nil, nil, fmt.Errorf("%w: no pixels sampled", raster.ErrInvalidInput)
	}

	ix, err := NewIndexer(sigbits)
	if err != nil {
		return nil, nil, err
	}
	lut := make([]int, ix.Size())
	for i := range lut {
		lut[i] = -1
	}
	for i, e := range entries {
		lut[e.Index] = i
	}

	out, err := raster.NewPaletted(img.Width, img.Height, pal)
	if err != nil {
		return nil, nil, err
	}
	raster.MapRows(img.Height, func(y int) {
		for x := 0; x < img.Width; x++ {
			c := img.At(x, y)
			slot := lut[ix.Index(c.R, c.G, c.B)]
			if slot < 0 {
				slot = nearestEntry(entries, c)
			}
			out.SetSample(x, y, uint8(slot))
		}
	})
	return out, entries, nil
}

// nearestEntry returns the index of the entry closest to c.
func nearestEntry(entries []ColorEntry, c raster.RGBColor) int {
	best := 0
	bestDist := c.Distance(entries[0].RGB)
	for i := 1; i < len(entries); i++ {
		if d := c.Distance(entries[i].RGB); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
