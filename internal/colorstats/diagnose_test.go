package colorstats

import (
	"errors"
	"testing"

	"github.com/ironsheep/image-color-mcp/internal/raster"
	"github.com/ironsheep/image-color-mcp/internal/raster/rastertest"
)

func TestDiagnose(t *testing.T) {
	tests := []struct {
		name         string
		img          *raster.Image
		wantEncoding string
		wantRisk     bool
	}{
		{
			name:         "gray image",
			img:          rastertest.GrayFunc(64, 64, func(x, y int) uint8 { return uint8(x * 4) }),
			wantEncoding: EncodingGrayscale,
		},
		{
			name: "gray-valued rgb",
			img: rastertest.RGBFunc(64, 64, func(x, y int) (uint8, uint8, uint8) {
				v := uint8(x * 4)
				return v, v, v
			}),
			wantEncoding: EncodingGrayscale,
		},
		{
			name:         "few flat colors",
			img:          stripesImage(),
			wantEncoding: EncodingPalette,
		},
		{
			name: "smooth two-channel gradient",
			img: rastertest.RGBFunc(256, 256, func(x, y int) (uint8, uint8, uint8) {
				return uint8(x), uint8(y), 128
			}),
			wantEncoding: EncodingQuantized,
		},
		{
			name: "smooth three-channel gradient",
			img: rastertest.RGBFunc(256, 256, func(x, y int) (uint8, uint8, uint8) {
				return uint8(x), uint8(y), uint8((x + y) / 2)
			}),
			wantEncoding: EncodingTrueColor,
			wantRisk:     true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewAnalyzer().Diagnose(tt.img)
			if err != nil {
				t.Fatalf("Diagnose failed: %v", err)
			}
			if d.SuggestedEncoding != tt.wantEncoding {
				t.Errorf("encoding: got %q, want %q (diagnosis %+v, quantization %+v)",
					d.SuggestedEncoding, tt.wantEncoding, *d, *d.Quantization)
			}
			if d.PosterizationRisk != tt.wantRisk {
				t.Errorf("posterization risk: got %v, want %v", d.PosterizationRisk, tt.wantRisk)
			}
			if d.Width != tt.img.Width || d.Height != tt.img.Height || d.Depth != tt.img.Depth {
				t.Errorf("geometry mismatch: %+v", *d)
			}
		})
	}
}

func TestDiagnose_FractionOnlyForColor(t *testing.T) {
	a := NewAnalyzer()

	d, err := a.Diagnose(raster.NewGray(8, 8))
	if err != nil {
		t.Fatal(err)
	}
	if d.Fraction != nil {
		t.Errorf("gray image: unexpected fraction %+v", *d.Fraction)
	}

	d, err = a.Diagnose(stripesImage())
	if err != nil {
		t.Fatal(err)
	}
	if d.Fraction == nil || d.NumColors != 3 {
		t.Errorf("color image: fraction %v, num colors %d", d.Fraction, d.NumColors)
	}
}

func TestDiagnose_Nil(t *testing.T) {
	if _, err := NewAnalyzer().Diagnose(nil); !errors.Is(err, raster.ErrInvalidInput) {
		t.Errorf("got %v, want ErrInvalidInput", err)
	}
}
