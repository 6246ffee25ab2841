package ui

import "sync"

// scope tracks one view instance's mounted lifetime. It is shared by every
// copy of the view so the invocation goroutine can observe unmount.
type scope struct {
	mu      sync.Mutex
	entered bool
	exited  bool
}

// enter mounts the scope. It reports true only for the first call, and never
// after exit.
func (s *scope) enter() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entered || s.exited {
		return false
	}
	s.entered = true
	return true
}

func (s *scope) exit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exited = true
}

// active reports whether results may still be applied.
func (s *scope) active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entered && !s.exited
}
