package device

import (
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
)

// ErrClosed is returned when a buffer is used after release.
var ErrClosed = errors.New("device buffer is closed")

// Buffer is an owned block of coefficient storage sized to one band.
// It models accelerator residency: callers stage data in with CopyIn,
// run kernels over Data, read results out with CopyOut, and must Close
// on every exit path. Close releases the storage back to the pool.
type Buffer struct {
	data    []float64
	isValid int32
	pool    *Pool
	id      uint64
}

var nextBufferID uint64

// Alloc obtains a buffer of n elements, reusing pooled storage when a
// matching size is available.
func (p *Pool) Alloc(n int) (*Buffer, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid buffer size: %d", n)
	}

	data := p.get(n)
	if data == nil {
		data = make([]float64, n)
	}

	buf := &Buffer{
		data:    data,
		isValid: 1,
		pool:    p,
		id:      atomic.AddUint64(&nextBufferID, 1),
	}

	// Backstop if Close is never called.
	runtime.SetFinalizer(buf, (*Buffer).finalize)

	return buf, nil
}

// Len returns the element capacity of the buffer.
func (b *Buffer) Len() int {
	if !b.IsValid() {
		return 0
	}
	return len(b.data)
}

func (b *Buffer) IsValid() bool {
	return atomic.LoadInt32(&b.isValid) == 1
}

// Data exposes the device-side storage for kernel execution.
func (b *Buffer) Data() ([]float64, error) {
	if !b.IsValid() {
		return nil, ErrClosed
	}
	return b.data, nil
}

// CopyIn transfers host data into the buffer.
func (b *Buffer) CopyIn(src []float64) error {
	if !b.IsValid() {
		return ErrClosed
	}
	if len(src) != len(b.data) {
		return fmt.Errorf("copy in: host length %d does not match buffer length %d", len(src), len(b.data))
	}
	copy(b.data, src)
	return nil
}

// CopyOut transfers the buffer contents back to host storage.
func (b *Buffer) CopyOut(dst []float64) error {
	if !b.IsValid() {
		return ErrClosed
	}
	if len(dst) != len(b.data) {
		return fmt.Errorf("copy out: host length %d does not match buffer length %d", len(dst), len(b.data))
	}
	copy(dst, b.data)
	return nil
}

// Close releases the storage. Safe to call more than once.
func (b *Buffer) Close() {
	if atomic.CompareAndSwapInt32(&b.isValid, 1, 0) {
		if b.pool != nil {
			b.pool.put(b.data)
		}
		b.data = nil
		runtime.SetFinalizer(b, nil)
	}
}

func (b *Buffer) finalize() {
	if atomic.LoadInt32(&b.isValid) == 1 {
		b.Close()
	}
}
