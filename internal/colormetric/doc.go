// Package colormetric measures how far each pixel is from gray.
//
// # Content and Magnitude
//
// After optional white-point correction, a pixel's content in channel X is how
// far X exceeds the average of the other two channels, floored at 0. Its
// magnitude is a single byte summarising the deviation under one of three
// policies (see MagnitudeType).
//
// Pixels whose brightest corrected channel is below mingray are treated as
// dark and report zero content and magnitude.
//
// # Rounding
//
// White-point correction rounds half up. The "average of the other two"
// difference is evaluated as (2X - Y - Z) / 2 and truncated, so a half level
// is dropped: (0, 127, 255) has blue content 191.
//
// # Masks
//
// MaskBuilder thresholds the max-min channel spread into a color mask and can
// erode it so only color pixels far from any non-color pixel survive. It also
// builds gray masks and color-range masks.
package colormetric
