package raster

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Supported bit depths.
const (
	Depth2  = 2
	Depth4  = 4
	Depth8  = 8
	Depth32 = 32
)

// Image is a width x height grid of pixels at a fixed bit depth.
//
// For depths 2, 4 and 8 Pix holds one sample per pixel in row-major order and
// Palette, when non-nil, maps samples to colors. Without a palette the samples
// are gray levels. For depth 32 Pix holds three bytes (r, g, b) per pixel.
//
// Analysis functions treat an Image as read-only.
type Image struct {
	Width   int
	Height  int
	Depth   int
	Palette color.Palette
	Pix     []uint8

	palRGB [][3]uint8
}

// New allocates a zeroed image of the given depth.
func New(width, height, depth int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidInput, width, height)
	}
	spp := 1
	switch depth {
	case Depth2, Depth4, Depth8:
	case Depth32:
		spp = 3
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedDepth, depth)
	}
	return &Image{
		Width:  width,
		Height: height,
		Depth:  depth,
		Pix:    make([]uint8, width*height*spp),
	}, nil
}

// NewRGB allocates a zeroed 32-bit image.
func NewRGB(width, height int) *Image {
	img, err := New(width, height, Depth32)
	if err != nil {
		panic(err)
	}
	return img
}

// NewGray allocates a zeroed 8-bit gray image.
func NewGray(width, height int) *Image {
	img, err := New(width, height, Depth8)
	if err != nil {
		panic(err)
	}
	return img
}

// NewPaletted allocates a zeroed indexed image. The depth is the smallest of
// 2, 4 or 8 that can address every palette entry.
func NewPaletted(width, height int, pal color.Palette) (*Image, error) {
	if len(pal) == 0 || len(pal) > 256 {
		return nil, fmt.Errorf("%w: palette size %d", ErrParameterOutOfRange, len(pal))
	}
	depth := Depth8
	switch {
	case len(pal) <= 4:
		depth = Depth2
	case len(pal) <= 16:
		depth = Depth4
	}
	img, err := New(width, height, depth)
	if err != nil {
		return nil, err
	}
	img.SetPalette(pal)
	return img, nil
}

// SetPalette attaches a palette to an indexed image.
func (img *Image) SetPalette(pal color.Palette) {
	img.Palette = pal
	img.palRGB = make([][3]uint8, len(pal))
	for i, c := range pal {
		r, g, b, _ := c.RGBA()
		img.palRGB[i] = [3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
	}
}

// IsRGB reports whether the image stores full r,g,b triples.
func (img *Image) IsRGB() bool { return img.Depth == Depth32 }

// IsPaletted reports whether samples index a palette.
func (img *Image) IsPaletted() bool { return img.Depth != Depth32 && img.Palette != nil }

// HasColor reports whether pixels can carry color: 32-bit or paletted.
func (img *Image) HasColor() bool { return img.IsRGB() || img.IsPaletted() }

// IsGray8 reports whether the image is 8-bit gray without a palette.
func (img *Image) IsGray8() bool { return img.Depth == Depth8 && img.Palette == nil }

// Sample returns the raw sample at (x, y): gray level or palette index.
// It must not be called on 32-bit images.
func (img *Image) Sample(x, y int) uint8 {
	return img.Pix[y*img.Width+x]
}

// SetSample stores a raw sample at (x, y).
func (img *Image) SetSample(x, y int, v uint8) {
	img.Pix[y*img.Width+x] = v
}

// SetRGB stores a color at (x, y) in a 32-bit image.
func (img *Image) SetRGB(x, y int, r, g, b uint8) {
	i := (y*img.Width + x) * 3
	img.Pix[i] = r
	img.Pix[i+1] = g
	img.Pix[i+2] = b
}

// RGB returns the 8-bit color of the pixel at (x, y) at any depth.
func (img *Image) RGB(x, y int) (r, g, b uint8) {
	if img.Depth == Depth32 {
		i := (y*img.Width + x) * 3
		return img.Pix[i], img.Pix[i+1], img.Pix[i+2]
	}
	v := img.Pix[y*img.Width+x]
	if img.Palette != nil {
		if int(v) < len(img.palRGB) {
			c := img.palRGB[v]
			return c[0], c[1], c[2]
		}
		if int(v) < len(img.Palette) {
			pr, pg, pb, _ := img.Palette[v].RGBA()
			return uint8(pr >> 8), uint8(pg >> 8), uint8(pb >> 8)
		}
		return 0, 0, 0
	}
	v = img.expand(v)
	return v, v, v
}

// Gray returns the 8-bit intensity of the pixel at (x, y). Gray images return
// their (expanded) sample; color pixels return their luminance.
func (img *Image) Gray(x, y int) uint8 {
	if img.Depth != Depth32 && img.Palette == nil {
		return img.expand(img.Pix[y*img.Width+x])
	}
	r, g, b := img.RGB(x, y)
	return Luminance(r, g, b)
}

// expand maps a 2- or 4-bit gray sample to the 8-bit range.
func (img *Image) expand(v uint8) uint8 {
	switch img.Depth {
	case Depth2:
		return v * 85
	case Depth4:
		return v * 17
	}
	return v
}

// Luminance converts a color to gray using ITU-R BT.601 weights, rounded.
func Luminance(r, g, b uint8) uint8 {
	return uint8((299*int(r) + 587*int(g) + 114*int(b) + 500) / 1000)
}

// FromImage converts a decoded image.
//
// *image.Paletted keeps its palette, *image.Gray becomes 8-bit gray and every
// other image is normalized through imaging.Clone to 32-bit RGB. Alpha is
// discarded.
func FromImage(src image.Image) (*Image, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidInput)
	}
	b := src.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: empty bounds %v", ErrInvalidInput, b)
	}

	switch s := src.(type) {
	case *image.Paletted:
		img, err := NewPaletted(b.Dx(), b.Dy(), s.Palette)
		if err != nil {
			return nil, err
		}
		for y := 0; y < img.Height; y++ {
			for x := 0; x < img.Width; x++ {
				img.SetSample(x, y, s.ColorIndexAt(x+b.Min.X, y+b.Min.Y))
			}
		}
		return img, nil
	case *image.Gray:
		img := NewGray(b.Dx(), b.Dy())
		for y := 0; y < img.Height; y++ {
			copy(img.Pix[y*img.Width:(y+1)*img.Width], s.Pix[s.PixOffset(b.Min.X, y+b.Min.Y):])
		}
		return img, nil
	}

	nrgba := imaging.Clone(src)
	img := NewRGB(b.Dx(), b.Dy())
	for y := 0; y < img.Height; y++ {
		row := nrgba.Pix[y*nrgba.Stride:]
		for x := 0; x < img.Width; x++ {
			img.SetRGB(x, y, row[x*4], row[x*4+1], row[x*4+2])
		}
	}
	return img, nil
}

// ToImage converts back to a standard image for encoding.
func (img *Image) ToImage() image.Image {
	rect := image.Rect(0, 0, img.Width, img.Height)
	switch {
	case img.IsRGB():
		out := image.NewNRGBA(rect)
		for y := 0; y < img.Height; y++ {
			for x := 0; x < img.Width; x++ {
				r, g, b := img.RGB(x, y)
				i := out.PixOffset(x, y)
				out.Pix[i], out.Pix[i+1], out.Pix[i+2], out.Pix[i+3] = r, g, b, 255
			}
		}
		return out
	case img.IsPaletted():
		out := image.NewPaletted(rect, img.Palette)
		copy(out.Pix, img.Pix)
		return out
	}
	out := image.NewGray(rect)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			out.SetGray(x, y, color.Gray{Y: img.Gray(x, y)})
		}
	}
	return out
}

// Crop returns a copy of the region r (clipped to the image) at the same
// depth and palette.
func (img *Image) Crop(r image.Rectangle) (*Image, error) {
	r = r.Intersect(image.Rect(0, 0, img.Width, img.Height))
	if r.Empty() {
		return nil, fmt.Errorf("%w: crop region outside image bounds", ErrInvalidInput)
	}
	out, err := New(r.Dx(), r.Dy(), img.Depth)
	if err != nil {
		return nil, err
	}
	if img.Palette != nil {
		out.SetPalette(img.Palette)
	}
	spp := 1
	if img.IsRGB() {
		spp = 3
	}
	for y := 0; y < out.Height; y++ {
		src := ((y+r.Min.Y)*img.Width + r.Min.X) * spp
		copy(out.Pix[y*out.Width*spp:(y+1)*out.Width*spp], img.Pix[src:src+out.Width*spp])
	}
	return out, nil
}
