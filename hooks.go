package signlib

import (
	"sync"
)

// ChangeKind names the mutation that produced a Change.
type ChangeKind string

// Change kinds.
const (
	ChangeAdded    ChangeKind = "added"
	ChangeLinked   ChangeKind = "linked"
	ChangeDeleted  ChangeKind = "deleted"
	ChangeCleared  ChangeKind = "cleared"
	ChangeFavorite ChangeKind = "favorite"
)

// Change describes a committed catalog mutation.
type Change struct {
	Kind     ChangeKind `json:"kind"`
	Revision uint64     `json:"revision"`
	// IDs are the affected records; empty for a clear.
	IDs []string `json:"ids,omitempty"`
}

// ChangeHook is called after a mutation has been committed and persisted
type ChangeHook func(Change)

// hooks manages change callbacks
type hooks struct {
	mu       sync.RWMutex
	onChange []ChangeHook
}

func newHooks() *hooks {
	return &hooks{}
}

func (h *hooks) add(fn ChangeHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onChange = append(h.onChange, fn)
}

func (h *hooks) trigger(c Change) {
	h.mu.RLock()
	fns := make([]ChangeHook, len(h.onChange))
	copy(fns, h.onChange)
	h.mu.RUnlock()

	for _, fn := range fns {
		fn(c)
	}
}

// OnChange registers a callback for committed mutations. Callbacks run on
// the mutating goroutine, outside the Library lock, and may read the Library.
func (l *Library) OnChange(fn ChangeHook) {
	l.hooks.add(fn)
}
