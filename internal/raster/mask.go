package raster

import (
	"image"
	"image/color"
)

// Mask is a binary image; Pix holds 1 for selected pixels and 0 otherwise.
type Mask struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewMask allocates an all-zero mask.
func NewMask(width, height int) *Mask {
	return &Mask{Width: width, Height: height, Pix: make([]uint8, width*height)}
}

// At reports whether (x, y) is selected.
func (m *Mask) At(x, y int) bool { return m.Pix[y*m.Width+x] != 0 }

// Set marks (x, y) as selected or not.
func (m *Mask) Set(x, y int, on bool) {
	if on {
		m.Pix[y*m.Width+x] = 1
	} else {
		m.Pix[y*m.Width+x] = 0
	}
}

// Count returns the number of selected pixels.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}

// Fraction returns the selected share of all pixels.
func (m *Mask) Fraction() float64 {
	if len(m.Pix) == 0 {
		return 0
	}
	return float64(m.Count()) / float64(len(m.Pix))
}

// ToGray renders the mask as 0/255 gray, selected pixels white.
func (m *Mask) ToGray() *image.Gray {
	out := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for i, v := range m.Pix {
		if v != 0 {
			out.Pix[i] = 255
		}
	}
	return out
}

// MaskFromGray selects every pixel of g that is nonzero.
func MaskFromGray(g image.Image) *Mask {
	b := g.Bounds()
	m := NewMask(b.Dx(), b.Dy())
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			v := color.GrayModel.Convert(g.At(x+b.Min.X, y+b.Min.Y)).(color.Gray)
			m.Set(x, y, v.Y != 0)
		}
	}
	return m
}
