package colorcube

import (
	"fmt"

	"github.com/ironsheep/image-color-mcp/internal/raster"
)

// Sigbits limits.
const (
	MinSigBits = 2
	MaxSigBits = 6
)

// Indexer maps colors to cube indices at a fixed resolution using three
// 256-entry lookup tables.
type Indexer struct {
	sigbits int
	rtab    [256]uint32
	gtab    [256]uint32
	btab    [256]uint32
}

// NewIndexer builds the lookup tables for sigbits in [2,6].
func NewIndexer(sigbits int) (*Indexer, error) {
	if sigbits < MinSigBits || sigbits > MaxSigBits {
		return nil, fmt.Errorf("%w: sigbits %d not in [%d,%d]",
			raster.ErrParameterOutOfRange, sigbits, MinSigBits, MaxSigBits)
	}
	ix := &Indexer{sigbits: sigbits}
	shift := uint(8 - sigbits)
	for v := 0; v < 256; v++ {
		q := uint32(v) >> shift
		ix.rtab[v] = q << uint(2*sigbits)
		ix.gtab[v] = q << uint(sigbits)
		ix.btab[v] = q
	}
	return ix, nil
}

// SigBits returns the number of bits kept per channel.
func (ix *Indexer) SigBits() int { return ix.sigbits }

// Size returns the number of cubes, 2^(3*sigbits).
func (ix *Indexer) Size() int { return 1 << uint(3*ix.sigbits) }

// Index returns the cube containing (r, g, b).
func (ix *Indexer) Index(r, g, b uint8) uint32 {
	return ix.rtab[r] | ix.gtab[g] | ix.btab[b]
}

// RGB returns the center of the cube at index. Each channel is its field
// shifted back to 8 bits with bit 7-sigbits set.
func (ix *Indexer) RGB(index uint32) (r, g, b uint8) {
	s := uint(ix.sigbits)
	mask := uint32(1)<<s - 1
	center := uint32(1) << (7 - s)
	r = uint8((index>>(2*s))&mask<<(8-s) | center)
	g = uint8((index>>s)&mask<<(8-s) | center)
	b = uint8(index&mask<<(8-s) | center)
	return r, g, b
}

// Color returns the cube center as an RGBColor.
func (ix *Indexer) Color(index uint32) raster.RGBColor {
	r, g, b := ix.RGB(index)
	return raster.RGBColor{R: r, G: g, B: b}
}
