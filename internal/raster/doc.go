// Package raster holds the pixel containers shared by the colour analysis
// packages.
//
// An Image is an immutable grid of samples at one of four bit depths:
//   - 2, 4, 8: one unpacked sample per pixel, either a gray value or a palette index
//   - 32: an 8-bit r,g,b triple per pixel
//
// A Mask is a binary image of the same dimensions, 1 marking a selected pixel.
//
// # Sampling
//
// Analysis functions take a subsampling factor f >= 1; only pixels whose row and
// column are multiples of f are visited. Sampling never modifies the image.
//
// # Thread Safety
//
// Images and masks are not mutated by any analysis function, so they can be
// shared across goroutines. ReduceRows splits sampled rows across workers,
// each with a private accumulator that is merged once the worker finishes.
//
// # Error Handling
//
// Parameter and input violations are reported with the sentinel errors in this
// package (ErrInvalidInput, ErrUnsupportedDepth, ErrParameterOutOfRange,
// ErrMalformedWhitePoint), wrapped with context. Use errors.Is to test for them.
package raster
