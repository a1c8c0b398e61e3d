// Package colorstats reduces an image to scalar color statistics used to
// decide how it can be encoded.
//
//   - ColorFraction: share of mid-tone pixels and how many of them are colorful
//   - NumSignificantGrayColors: gray levels holding a meaningful share of pixels
//   - NumColors: exact color count, or 0 when a 32-bit image has more than 256
//   - Analyzer.ColorsForQuantization: colors or gray levels present in smooth,
//     low-gradient regions, the areas that posterize under quantization
//   - Analyzer.Diagnose: all of the above with a suggested encoding
//
// Thresholds that accept UseDefault (-1) take their value from Config; the
// package defaults are the Default* constants.
package colorstats
