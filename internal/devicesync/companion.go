package devicesync

import (
	"context"
	"log/slog"
	"sync"

	errorvalues "github.com/limbo/staircircuit/internal/error_values"
	"github.com/limbo/staircircuit/pkg/entity"
)

// Companion holds the wrist device's replica of the day summary plus the
// offline increment buffer. The replica is last-write-wins: any inbound
// summary overwrites it unconditionally.
type Companion struct {
	store   Store
	channel Channel
	logger  *slog.Logger

	mu          sync.Mutex
	summary     *entity.DaySummary
	status      SyncStatus
	lastWorkout *entity.WorkoutSummary
}

func NewCompanion(store Store, channel Channel, logger *slog.Logger) (*Companion, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Companion{
		store:   store,
		channel: channel,
		logger:  logger,
		status:  StatusIdle,
	}
	cached, err := store.CachedSummary()
	if err != nil {
		return nil, err
	}
	c.summary = cached
	return c, nil
}

func (c *Companion) Status() SyncStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Companion) Summary() *entity.DaySummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.summary == nil {
		return nil
	}
	s := *c.summary
	return &s
}

func (c *Companion) LastWorkout() *entity.WorkoutSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastWorkout == nil {
		return nil
	}
	ws := *c.lastWorkout
	return &ws
}

// LastWorkoutCircuits derives the circuit count for the last workout from
// the replica's floors-per-circuit. Zero while either is missing.
func (c *Companion) LastWorkoutCircuits() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastWorkout == nil || c.summary == nil {
		return 0
	}
	return c.lastWorkout.Circuits(c.summary.FloorsPerCircuit)
}

// OnActivated runs the post-activation handshake: pull fresh state, then
// push anything buffered while offline.
func (c *Companion) OnActivated(ctx context.Context) {
	c.RequestLatestSummary(ctx)
	c.FlushPendingIfPossible(ctx)
}

// IncrementOffline records one +1 tap. The pending counter and the
// optimistic replica bump are persisted before any flush attempt, so a
// crash cannot lose the tap.
func (c *Companion) IncrementOffline(ctx context.Context) error {
	pending, err := c.store.PendingIncrements()
	if err != nil {
		return err
	}
	if err := c.store.SetPendingIncrements(pending + 1); err != nil {
		return err
	}

	c.mu.Lock()
	if c.summary != nil {
		bumped := *c.summary
		bumped.Completed++
		c.summary = &bumped
		if err := c.store.SaveSummary(bumped); err != nil {
			c.logger.Error("persisting optimistic summary failed", slog.String("error", err.Error()))
		}
	}
	c.mu.Unlock()

	c.FlushPendingIfPossible(ctx)
	return nil
}

// RequestLatestSummary asks the primary for a full-state broadcast.
func (c *Companion) RequestLatestSummary(ctx context.Context) {
	if !c.channel.Activated() {
		return
	}
	c.setStatus(StatusSyncing)
	if err := c.channel.Send(ctx, RequestSummaryPayload()); err != nil {
		c.logger.Error("requesting summary failed", slog.String("error", err.Error()))
		c.setStatus(StatusError)
	}
}

// FlushPendingIfPossible ships the buffered increments tagged with the
// replica's day key. The counter is zeroed as soon as a send is attempted,
// whether or not it succeeds; buffered taps can be lost on a persistently
// broken channel.
func (c *Companion) FlushPendingIfPossible(ctx context.Context) {
	if !c.channel.Activated() {
		return
	}
	pending, err := c.store.PendingIncrements()
	if err != nil {
		c.logger.Error("reading pending counter failed", slog.String("error", err.Error()))
		return
	}
	if pending == 0 {
		return
	}
	summary := c.Summary()
	if summary == nil {
		return
	}

	c.setStatus(StatusSyncing)
	if err := c.channel.Send(ctx, FlushPayload(pending, summary.DayKey)); err != nil {
		c.logger.Error("flushing increments failed", slog.String("error", err.Error()))
		c.setStatus(StatusError)
	}
	if err := c.store.SetPendingIncrements(0); err != nil {
		c.logger.Error("zeroing pending counter failed", slog.String("error", err.Error()))
	}
}

// HandleSummaryPayload applies an inbound full-state broadcast: overwrite
// the replica, persist it, mark synced and retry any buffered flush.
func (c *Companion) HandleSummaryPayload(ctx context.Context, payload Payload) error {
	summary, err := SummaryFromPayload(payload)
	if err == nil {
		c.mu.Lock()
		c.summary = &summary
		if saveErr := c.store.SaveSummary(summary); saveErr != nil {
			c.logger.Error("persisting replica failed", slog.String("error", saveErr.Error()))
		}
		c.status = StatusSynced
		c.mu.Unlock()
		c.FlushPendingIfPossible(ctx)
	}

	if workout, found, wErr := EmbeddedWorkout(payload); wErr == nil && found {
		c.mu.Lock()
		c.lastWorkout = &workout
		c.mu.Unlock()
	}

	if err != nil {
		return err
	}
	return nil
}

// RecordWorkoutSummary keeps the finished workout locally and relays it to
// the primary embedded in the current summary payload.
func (c *Companion) RecordWorkoutSummary(ctx context.Context, ws entity.WorkoutSummary) error {
	c.mu.Lock()
	c.lastWorkout = &ws
	c.mu.Unlock()

	c.setStatus(StatusSyncing)
	if !c.channel.Activated() {
		c.setStatus(StatusError)
		return errorvalues.ErrChannelInactive
	}
	summary := c.Summary()
	if summary == nil {
		c.setStatus(StatusError)
		return errorvalues.ErrNoCachedSummary
	}

	payload := SummaryPayload(*summary)
	payload[KeyWorkoutPayload] = map[string]any(WorkoutPayload(ws))
	if err := c.channel.Send(ctx, payload); err != nil {
		c.setStatus(StatusError)
		return errorvalues.ErrSendFailed
	}
	c.setStatus(StatusSynced)
	return nil
}

func (c *Companion) setStatus(status SyncStatus) {
	c.mu.Lock()
	c.status = status
	c.mu.Unlock()
}
