package result

import "sync"

// Cell holds a Result that starts as Loading and may be resolved once.
// The zero value is ready to use.
type Cell struct {
	mu      sync.RWMutex
	current Result
}

// Resolve moves the cell from Loading to r. It returns false, leaving the cell
// untouched, when the cell is already terminal or r is not a terminal state.
func (c *Cell) Resolve(r Result) bool {
	if r == nil || !r.Terminal() {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil && c.current.Terminal() {
		return false
	}
	c.current = r
	return true
}

// Current returns the held result.
func (c *Cell) Current() Result {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.current == nil {
		return Loading{}
	}
	return c.current
}

// Resolved reports whether the cell has reached a terminal state.
func (c *Cell) Resolved() bool {
	return c.Current().Terminal()
}
