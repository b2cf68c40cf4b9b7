package devicesync

import (
	"context"

	"github.com/limbo/staircircuit/pkg/entity"
)

// Channel is the best-effort message path to the paired device. Sends are
// at-most-once: no acknowledgment, no retry, no ordering guarantee.
type Channel interface {
	// Activated reports whether a session with the paired device is live.
	Activated() bool
	// Send dispatches a payload to the paired device. An error means the
	// transport rejected the send; it says nothing about delivery.
	Send(ctx context.Context, payload Payload) error
}

// Store is the companion's persisted local state: the cached replica of the
// primary's day summary plus the offline increment counter.
type Store interface {
	PendingIncrements() (int, error)
	SetPendingIncrements(count int) error
	// CachedSummary returns nil when no summary was ever replicated.
	CachedSummary() (*entity.DaySummary, error)
	SaveSummary(summary entity.DaySummary) error
}
