// Package filter provides the neighbourhood operators the colour analysis
// depends on: binary erosion and gradient magnitude.
//
// Both are expressed as small strategy interfaces so analysis code can be
// exercised with stub implementations:
//
//   - Eroder:           erode(mask, radius) -> mask
//   - GradientOperator: gradientMagnitude(image) -> 8-bit scalar field
//
// # Implementations
//
// MinimumEroder erodes with a square (2r+1)x(2r+1) structuring element, which
// is the 8-connected distance used by colour masks, through gift's minimum
// filter. DiskEroder delegates to bild's effect.Erode.
//
// SobelGradient computes |G|/8 on BT.601 luminance with an optional 5x5
// Gaussian pre-blur, so a ramp rising by s gray levels per pixel has magnitude
// s. BildSobel delegates to bild's effect.Sobel.
package filter
