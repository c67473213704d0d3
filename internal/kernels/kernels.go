// Package kernels holds the data-parallel primitives the shrinkage
// policies run over coefficient bands: elementwise absolute value,
// blocked sum-of-squares reduction, the pointwise shrinkage
// nonlinearities, and the sliding-window neighborhood shrink.
//
// Every kernel splits its flat input into contiguous blocks, one per
// worker, and combines per-block results on the calling goroutine.
package kernels

import (
	"runtime"
	"sync"
)

// blockSpan computes the block boundaries for splitting n elements
// across the worker set.
func blockSpan(n, workers int) []int {
	if workers > n {
		workers = n
	}
	bounds := make([]int, 0, workers+1)
	for i := 0; i <= workers; i++ {
		bounds = append(bounds, i*n/workers)
	}
	return bounds
}

// numBlocks reports how many blocks parallelBlocks will use for n
// elements, so reductions can size their partial-result slices up front.
func numBlocks(n int) int {
	if n == 0 {
		return 0
	}
	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	return workers
}

// parallelBlocks runs fn once per block, passing the block index and
// the half-open element range, and waits for all blocks.
func parallelBlocks(n int, fn func(block, lo, hi int)) int {
	if n == 0 {
		return 0
	}

	workers := runtime.NumCPU()
	bounds := blockSpan(n, workers)
	blocks := len(bounds) - 1

	var wg sync.WaitGroup
	wg.Add(blocks)
	for b := 0; b < blocks; b++ {
		go func(b, lo, hi int) {
			defer wg.Done()
			fn(b, lo, hi)
		}(b, bounds[b], bounds[b+1])
	}
	wg.Wait()

	return blocks
}
