package storage

import (
	"context"
	"sync"

	"github.com/agentstation/signlib/pkg/errors"
)

// Quota wraps a KV and rejects writes that would push the total stored
// bytes over a limit, the way browser storage refuses large blobs.
type Quota struct {
	KV
	mu    sync.Mutex
	limit int64
}

// WithQuota wraps kv with a byte limit.
func WithQuota(kv KV, limit int64) *Quota {
	return &Quota{KV: kv, limit: limit}
}

// Limit returns the byte limit.
func (q *Quota) Limit() int64 { return q.limit }

// Set implements KV, returning a QuotaError when the write does not fit.
func (q *Quota) Set(ctx context.Context, key string, value []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	total, err := q.KV.Size(ctx)
	if err != nil {
		return err
	}
	var current int64
	if old, err := q.KV.Get(ctx, key); err == nil {
		current = int64(len(old))
	} else if !errors.IsNotFound(err) {
		return err
	}

	if next := total - current + int64(len(value)); next > q.limit {
		return errors.NewQuotaError(key, int64(len(value)), q.limit)
	}
	return q.KV.Set(ctx, key, value)
}
