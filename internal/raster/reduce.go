package raster

import (
	"sync"

	"github.com/anthonynsimon/bild/parallel"
)

// SampledCount returns how many of n positions are visited at stride factor.
func SampledCount(n, factor int) int {
	return (n + factor - 1) / factor
}

// ReduceRows visits every factor-th row of an image of the given height.
//
// Rows are split into contiguous ranges handled by parallel workers. Each worker
// gets its own accumulator from newAcc, passes it to visit for every row in its
// range, and hands it to merge when done. merge runs under a lock against the
// accumulator that is finally returned, so it only needs to be commutative and
// associative for the result to be independent of scheduling.
func ReduceRows[T any](height, factor int, newAcc func() T, visit func(acc T, y int), merge func(total, part T)) T {
	total := newAcc()
	var mu sync.Mutex
	parallel.Line(SampledCount(height, factor), func(start, end int) {
		part := newAcc()
		for i := start; i < end; i++ {
			visit(part, i*factor)
		}
		mu.Lock()
		merge(total, part)
		mu.Unlock()
	})
	return total
}

// MapRows calls fn for every row of the image in parallel. fn must only write
// to output locations owned by its row.
func MapRows(height int, fn func(y int)) {
	parallel.Line(height, func(start, end int) {
		for y := start; y < end; y++ {
			fn(y)
		}
	})
}
