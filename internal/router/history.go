package router

import "sync"

// History is the navigation state of a tab.
type History interface {
	// Path returns the current path.
	Path() string
	// Push makes path the current entry.
	Push(path string)
}

// MemoryHistory is an in-process History with back and forward navigation.
type MemoryHistory struct {
	mu      sync.Mutex
	entries []string
	index   int
}

// NewMemoryHistory creates a history positioned at path.
func NewMemoryHistory(path string) *MemoryHistory {
	return &MemoryHistory{entries: []string{path}}
}

func (h *MemoryHistory) Path() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.index]
}

// Push drops the forward entries and appends path.
func (h *MemoryHistory) Push(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries[:h.index+1], path)
	h.index++
}

// Back moves one entry back and reports whether it moved.
func (h *MemoryHistory) Back() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index == 0 {
		return false
	}
	h.index--
	return true
}

// Forward moves one entry forward and reports whether it moved.
func (h *MemoryHistory) Forward() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index >= len(h.entries)-1 {
		return false
	}
	h.index++
	return true
}

// Entries returns the history entries.
func (h *MemoryHistory) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.entries...)
}

// RequestHistory is the navigation state while serving one page request.
// The browser owns the real history; pushes are reported back as a redirect.
type RequestHistory struct {
	initial string
	current string
}

// NewRequestHistory creates the history of a request for path.
func NewRequestHistory(path string) *RequestHistory {
	return &RequestHistory{initial: path, current: path}
}

func (h *RequestHistory) Path() string { return h.current }

func (h *RequestHistory) Push(path string) { h.current = path }

// Moved reports whether the path changed while serving the request.
func (h *RequestHistory) Moved() bool { return h.current != h.initial }
