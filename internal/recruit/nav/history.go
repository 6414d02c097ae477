package nav

import (
	"slices"
	"sync"
)

// Navigator moves the user to a path.
type Navigator interface {
	Navigate(path string)
}

// History is the current location plus every location visited. Navigating
// to the current location does nothing.
type History struct {
	mu      sync.Mutex
	entries []string
	onMove  []func(string)
}

func NewHistory(start string) *History {
	return &History{entries: []string{start}}
}

func (h *History) Navigate(path string) {
	h.mu.Lock()
	if h.entries[len(h.entries)-1] == path {
		h.mu.Unlock()
		return
	}
	h.entries = append(h.entries, path)
	fns := slices.Clone(h.onMove)
	h.mu.Unlock()

	for _, fn := range fns {
		fn(path)
	}
}

// Location returns the current path.
func (h *History) Location() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[len(h.entries)-1]
}

// Entries returns every location visited, oldest first.
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.entries)
}

// OnMove registers fn to run after every change of location.
func (h *History) OnMove(fn func(path string)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onMove = append(h.onMove, fn)
}
