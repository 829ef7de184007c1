package catalogs

import (
	"fmt"
	"sync"
	"time"
)

// Clock returns the current time. Tests substitute a fixed clock.
type Clock func() time.Time

// IDGenerator hands out millisecond stamps for new records.
// Stamps are strictly increasing so two creations in the same millisecond
// never share an id, and a deleted id is never produced again.
type IDGenerator struct {
	mu    sync.Mutex
	clock Clock
	last  int64
}

// NewIDGenerator creates a generator on clock, or time.Now when nil.
func NewIDGenerator(clock Clock) *IDGenerator {
	if clock == nil {
		clock = time.Now
	}
	return &IDGenerator{clock: clock}
}

// Stamp returns the next millisecond stamp.
func (g *IDGenerator) Stamp() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.clock().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return ms
}

// Observe advances the generator past stamps already in use, e.g. after a load.
func (g *IDGenerator) Observe(ms int64) {
	g.mu.Lock()
	if ms > g.last {
		g.last = ms
	}
	g.mu.Unlock()
}

// SingleID returns the id of a record added through the single form.
func SingleID(stamp int64) string {
	return fmt.Sprintf("v_%d", stamp)
}

// BulkID returns the id of the i-th record of a bulk import.
func BulkID(stamp int64, i int) string {
	return fmt.Sprintf("b_%d_%d", stamp, i)
}

// FolderID returns the id of the i-th record of a folder link.
func FolderID(stamp int64, i int) string {
	return fmt.Sprintf("fl_%d_%d", stamp, i)
}
