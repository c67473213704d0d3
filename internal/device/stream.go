package device

import (
	"sync"
)

// Stream executes submitted work items one after another on a dedicated
// goroutine. Work on distinct streams may overlap freely; within one
// stream, items run in launch order. Results become observable only
// after Synchronize, which drains the queue and surfaces the first
// error. A failed item does not stop later items from running, matching
// the launch-and-sync discipline the policies rely on. A stream has a
// single owning goroutine; Launch must not race with Close.
type Stream struct {
	work chan func() error
	done chan struct{}

	mu      sync.Mutex
	err     error
	pending sync.WaitGroup
	closed  bool
}

// NewStream starts a stream ready to accept work.
func NewStream() *Stream {
	s := &Stream{
		work: make(chan func() error, 16),
		done: make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *Stream) run() {
	defer close(s.done)
	for fn := range s.work {
		if err := fn(); err != nil {
			s.mu.Lock()
			if s.err == nil {
				s.err = err
			}
			s.mu.Unlock()
		}
		s.pending.Done()
	}
}

// Launch enqueues a work item. Launch never blocks on kernel completion,
// only on queue backpressure.
func (s *Stream) Launch(fn func() error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.pending.Add(1)
	s.mu.Unlock()

	s.work <- fn
}

// Synchronize blocks until every launched item has finished and returns
// the first error observed since the previous Synchronize.
func (s *Stream) Synchronize() error {
	s.pending.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.err
	s.err = nil
	return err
}

// Close drains outstanding work and stops the stream goroutine.
// The stream cannot be reused afterwards.
func (s *Stream) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		<-s.done
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.pending.Wait()
	close(s.work)
	<-s.done

	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.err
	s.err = nil
	return err
}
