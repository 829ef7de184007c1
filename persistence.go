package signlib

import (
	"context"
	"time"

	"github.com/agentstation/signlib/pkg/constants"
	"github.com/agentstation/signlib/pkg/notify"
)

// outcome collects what a mutation publishes once the lock is released.
type outcome struct {
	notices []notify.Notice
	change  *Change
}

func (o *outcome) add(level notify.Level, msg string) {
	o.notices = append(o.notices, notify.Notice{Level: level, Message: msg})
}

// persistLocked saves the catalog snapshot. A failed save keeps the
// in-memory state and queues the storage warning. Callers hold l.mu.
func (l *Library) persistLocked(ctx context.Context, out *outcome) {
	videos, favorites := l.catalog.Snapshot()
	if err := l.store.Save(ctx, videos, favorites); err != nil {
		l.logger.Warn().Err(err).Int("videos", len(videos)).Msg("Persisting catalog failed")
		out.add(notify.LevelWarn, constants.MsgStorageFull)
	}
}

// publish delivers notices and fires hooks. Callers must not hold l.mu.
func (l *Library) publish(ctx context.Context, out *outcome) {
	now := l.now()
	for _, n := range out.notices {
		if n.Time.IsZero() {
			n.Time = now
		}
		l.notifier.Notify(ctx, n)
	}
	if out.change != nil {
		l.hooks.trigger(*out.change)
	}
}

// Save writes the current state to storage.
func (l *Library) Save(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	videos, favorites := l.catalog.Snapshot()
	return l.store.Save(ctx, videos, favorites)
}

func (l *Library) now() time.Time {
	return l.clock()
}
