package device

import (
	"sync"
)

// Pool recycles buffer storage between calls so repeated denoising runs
// do not reallocate per band. Free lists are bucketed by exact element
// count; each bucket is capped.
type Pool struct {
	free     map[int][][]float64
	maxPer   int
	mu       sync.Mutex
	hits     int64
	misses   int64
	released int64
}

// NewPool creates a pool retaining at most maxPerSize blocks per size.
func NewPool(maxPerSize int) *Pool {
	if maxPerSize < 1 {
		maxPerSize = 1
	}
	return &Pool{
		free:   make(map[int][][]float64),
		maxPer: maxPerSize,
	}
}

func (p *Pool) get(n int) []float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	blocks := p.free[n]
	if len(blocks) == 0 {
		p.misses++
		return nil
	}

	block := blocks[len(blocks)-1]
	p.free[n] = blocks[:len(blocks)-1]
	p.hits++

	for i := range block {
		block[i] = 0
	}
	return block
}

func (p *Pool) put(block []float64) {
	if block == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.released++
	if len(p.free[len(block)]) >= p.maxPer {
		return
	}
	p.free[len(block)] = append(p.free[len(block)], block)
}

// Stats reports pool behaviour counters.
type Stats struct {
	Hits     int64
	Misses   int64
	Released int64
	Retained int
}

func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	retained := 0
	for _, blocks := range p.free {
		retained += len(blocks)
	}

	return Stats{
		Hits:     p.hits,
		Misses:   p.misses,
		Released: p.released,
		Retained: retained,
	}
}

// Cleanup drops every retained block and reports how many were freed.
func (p *Pool) Cleanup() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	count := 0
	for size, blocks := range p.free {
		count += len(blocks)
		delete(p.free, size)
	}
	return count
}
