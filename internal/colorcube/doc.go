// Package colorcube buckets RGB colors into an axis-aligned cube grid.
//
// A cube index keeps the top sigbits bits of each channel, packed red-major:
//
//	index = r>>(8-s) << 2s | g>>(8-s) << s | b>>(8-s)
//
// giving 2^(3s) cubes for s in [2,6]. The package builds cube histograms over
// (optionally masked, optionally subsampled) images, selects the most
// populated cubes, and uses them as a palette for a simple quantizer.
//
// This is a diagnostic bucketing scheme, not a production quantizer.
package colorcube
