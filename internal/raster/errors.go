package raster

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput reports a missing or empty image.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedDepth reports an image depth the operation cannot handle.
	ErrUnsupportedDepth = errors.New("unsupported depth")

	// ErrParameterOutOfRange reports a scalar parameter outside its domain.
	ErrParameterOutOfRange = errors.New("parameter out of range")

	// ErrMalformedWhitePoint reports a white point mixing zero and nonzero components.
	ErrMalformedWhitePoint = errors.New("malformed white point")
)

// CheckImage returns ErrInvalidInput if img is nil or has no pixels.
func CheckImage(img *Image) error {
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidInput)
	}
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("%w: empty image %dx%d", ErrInvalidInput, img.Width, img.Height)
	}
	return nil
}

// CheckFactor validates a subsampling factor.
func CheckFactor(factor int) error {
	if factor < 1 {
		return fmt.Errorf("%w: factor %d must be >= 1", ErrParameterOutOfRange, factor)
	}
	return nil
}

// CheckThreshold validates an 8-bit threshold such as darkthresh or diffthresh.
func CheckThreshold(name string, v int) error {
	if v < 0 || v > 255 {
		return fmt.Errorf("%w: %s %d not in [0,255]", ErrParameterOutOfRange, name, v)
	}
	return nil
}

// CheckRange validates that v lies in [lo, hi].
func CheckRange(name string, v, lo, hi int) error {
	if v < lo || v > hi {
		return fmt.Errorf("%w: %s %d not in [%d,%d]", ErrParameterOutOfRange, name, v, lo, hi)
	}
	return nil
}
