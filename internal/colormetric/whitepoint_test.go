package colormetric

import (
	"errors"
	"testing"

	"github.com/ironsheep/image-color-mcp/internal/raster"
)

func TestWhitePoint_Validate(t *testing.T) {
	tests := []struct {
		wp   WhitePoint
		want error
	}{
		{WhitePoint{}, nil},
		{WhitePoint{1, 1, 1}, nil},
		{WhitePoint{255, 240, 200}, nil},
		{WhitePoint{0, 100, 100}, raster.ErrMalformedWhitePoint},
		{WhitePoint{100, 100, 0}, raster.ErrMalformedWhitePoint},
		{WhitePoint{-5, 100, 100}, raster.ErrMalformedWhitePoint},
		{WhitePoint{256, 100, 100}, raster.ErrParameterOutOfRange},
	}
	for _, tt := range tests {
		err := tt.wp.Validate()
		if tt.want == nil && err != nil {
			t.Errorf("%v: unexpected error %v", tt.wp, err)
		}
		if tt.want != nil && !errors.Is(err, tt.want) {
			t.Errorf("%v: got %v, want %v", tt.wp, err, tt.want)
		}
	}
}

func TestWhitePoint_Apply(t *testing.T) {
	wp := WhitePoint{R: 200, G: 100, B: 255}
	tests := []struct {
		in, want [3]uint8
	}{
		{[3]uint8{0, 0, 0}, [3]uint8{0, 0, 0}},
		{[3]uint8{200, 100, 255}, [3]uint8{255, 255, 255}},
		{[3]uint8{100, 50, 128}, [3]uint8{128, 128, 128}}, // 127.5 rounds up
		{[3]uint8{250, 200, 10}, [3]uint8{255, 255, 10}},  // clamped
	}
	for _, tt := range tests {
		r, g, b := wp.Apply(tt.in[0], tt.in[1], tt.in[2])
		if got := [3]uint8{r, g, b}; got != tt.want {
			t.Errorf("Apply(%v): got %v, want %v", tt.in, got, tt.want)
		}
	}

	r, g, b := WhitePoint{}.Apply(12, 34, 56)
	if r != 12 || g != 34 || b != 56 {
		t.Error("zero white point should not change the pixel")
	}
}
