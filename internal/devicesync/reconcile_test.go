package devicesync_test

import (
	"context"
	"testing"
	"time"

	"github.com/limbo/staircircuit/internal/devicesync"
	"github.com/limbo/staircircuit/internal/reminder"
	"github.com/limbo/staircircuit/internal/transport"
	"github.com/limbo/staircircuit/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memDayLogRepo keeps day logs in a map so reconciliation tests can run the
// real read-modify-broadcast cycle without mock choreography.
type memDayLogRepo struct {
	logs map[string]*entity.DayLog
}

func newMemDayLogRepo() *memDayLogRepo {
	return &memDayLogRepo{logs: map[string]*entity.DayLog{}}
}

func (r *memDayLogRepo) GetOrCreate(_ context.Context, dayKey string) (*entity.DayLog, error) {
	if log, ok := r.logs[dayKey]; ok {
		cp := *log
		return &cp, nil
	}
	log := &entity.DayLog{DayKey: dayKey, Target: 10, FloorsPerCircuit: 4}
	r.logs[dayKey] = log
	cp := *log
	return &cp, nil
}

func (r *memDayLogRepo) ApplyIncrement(_ context.Context, dayKey string, count int) (*entity.DayLog, error) {
	log := r.logs[dayKey]
	log.Completed += count
	cp := *log
	return &cp, nil
}

func (r *memDayLogRepo) Reset(_ context.Context, dayKey string) error {
	r.logs[dayKey].Completed = 0
	return nil
}

func (r *memDayLogRepo) SetTarget(_ context.Context, dayKey string, target int) error {
	r.logs[dayKey].Target = target
	return nil
}

func (r *memDayLogRepo) SetFloorsPerCircuit(_ context.Context, dayKey string, floors int) error {
	r.logs[dayKey].FloorsPerCircuit = floors
	return nil
}

func (r *memDayLogRepo) GetRange(_ context.Context, _, _ string) ([]entity.DayLog, error) {
	return nil, nil
}

type reconcileRig struct {
	repo         *memDayLogRepo
	primary      *devicesync.Primary
	companion    *devicesync.Companion
	primaryEnd   *transport.InMemChannel
	companionEnd *transport.InMemChannel
	store        *memStore
}

func newReconcileRig(t *testing.T) *reconcileRig {
	t.Helper()
	cal := reminder.NewCalendar(time.UTC)
	repo := newMemDayLogRepo()
	primaryEnd, companionEnd := transport.NewInMemPair(nil)
	primary := devicesync.NewPrimary(repo, nil, primaryEnd, nil, cal, nil).
		WithNow(func() time.Time { return testNow })
	store := &memStore{}
	companion, err := devicesync.NewCompanion(store, companionEnd, nil)
	require.NoError(t, err)

	ctx := context.Background()
	primaryEnd.SetHandler(func(ctx context.Context, p devicesync.Payload) {
		_ = primary.HandleMessage(ctx, p)
	})
	companionEnd.SetHandler(func(ctx context.Context, p devicesync.Payload) {
		_ = companion.HandleSummaryPayload(ctx, p)
	})
	primaryEnd.SetActivated(true)
	companionEnd.SetActivated(true)

	// Seed the primary with 5 circuits and replicate once so both sides
	// agree before each scenario starts.
	_, err = primary.ApplyIncrement(ctx, 5)
	require.NoError(t, err)
	companionEnd.Drain(ctx)
	require.Equal(t, 5, companion.Summary().Completed)

	return &reconcileRig{
		repo:         repo,
		primary:      primary,
		companion:    companion,
		primaryEnd:   primaryEnd,
		companionEnd: companionEnd,
		store:        store,
	}
}

// settle pumps both directions until no messages remain in flight.
func (rig *reconcileRig) settle(ctx context.Context) {
	for rig.primaryEnd.QueuedCount() > 0 || rig.companionEnd.QueuedCount() > 0 {
		rig.primaryEnd.Drain(ctx)
		rig.companionEnd.Drain(ctx)
	}
}

func TestOfflineIncrementsReconcile(t *testing.T) {
	t.Parallel()
	rig := newReconcileRig(t)
	ctx := context.Background()

	// Two taps while the channel is down.
	rig.companionEnd.SetActivated(false)
	require.NoError(t, rig.companion.IncrementOffline(ctx))
	require.NoError(t, rig.companion.IncrementOffline(ctx))
	assert.Equal(t, 2, rig.store.pending)
	assert.Equal(t, 7, rig.companion.Summary().Completed)

	// Reconnect: the flush carries both taps, the primary applies them and
	// the echo lands on the same total. No double count.
	rig.companionEnd.SetActivated(true)
	rig.companion.FlushPendingIfPossible(ctx)
	rig.settle(ctx)

	assert.Equal(t, 7, rig.repo.logs[testTodayKey].Completed)
	assert.Equal(t, 7, rig.companion.Summary().Completed)
	assert.Zero(t, rig.store.pending)
	assert.Equal(t, devicesync.StatusSynced, rig.companion.Status())
}

func TestStaleFlushForcesResync(t *testing.T) {
	t.Parallel()
	rig := newReconcileRig(t)
	ctx := context.Background()

	// Taps buffered yesterday flush with yesterday's key after rollover.
	rig.companion.HandleSummaryPayload(ctx, devicesync.SummaryPayload(entity.DaySummary{
		DayKey:           "2026-01-16",
		Completed:        3,
		Target:           10,
		FloorsPerCircuit: 4,
	}))
	require.NoError(t, rig.companion.IncrementOffline(ctx))
	rig.settle(ctx)

	// The stale increments are discarded and the resync broadcast snaps the
	// replica back to today.
	assert.Equal(t, 5, rig.repo.logs[testTodayKey].Completed)
	assert.Equal(t, testTodayKey, rig.companion.Summary().DayKey)
	assert.Equal(t, 5, rig.companion.Summary().Completed)
	assert.Zero(t, rig.store.pending)
}

func TestReorderedBroadcastsLastWriteWins(t *testing.T) {
	t.Parallel()
	rig := newReconcileRig(t)
	ctx := context.Background()

	// Queue two broadcasts without draining, then flip delivery order.
	_, err := rig.primary.ApplyIncrement(ctx, 1)
	require.NoError(t, err)
	_, err = rig.primary.ApplyIncrement(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 2, rig.companionEnd.QueuedCount())
	rig.companionEnd.ReverseInbox()
	rig.companionEnd.Drain(ctx)

	// Whichever arrives last wins, even when it is the older state. The
	// channel makes no ordering promise and the replica tolerates the skew.
	assert.Equal(t, 7, rig.repo.logs[testTodayKey].Completed)
	assert.Equal(t, 6, rig.companion.Summary().Completed)
}

func TestLostBroadcastHealsOnNextRequest(t *testing.T) {
	t.Parallel()
	rig := newReconcileRig(t)
	ctx := context.Background()

	_, err := rig.primary.ApplyIncrement(ctx, 3)
	require.NoError(t, err)
	rig.companionEnd.DropInbox()
	assert.Equal(t, 5, rig.companion.Summary().Completed)

	// The next pull converges the replica despite the lost push.
	rig.companion.RequestLatestSummary(ctx)
	rig.settle(ctx)
	assert.Equal(t, 8, rig.companion.Summary().Completed)
}

func TestWorkoutRelayReachesPrimary(t *testing.T) {
	t.Parallel()
	rig := newReconcileRig(t)
	ctx := context.Background()

	workout := entity.WorkoutSummary{
		Date:             testNow,
		DurationSeconds:  600,
		Floors:           20,
		ActiveEnergy:     110,
		AverageHeartRate: 140,
	}
	require.NoError(t, rig.companion.RecordWorkoutSummary(ctx, workout))
	rig.settle(ctx)

	got := rig.primary.LastWorkout()
	require.NotNil(t, got)
	assert.Equal(t, workout.Floors, got.Floors)
	assert.Equal(t, workout.DurationSeconds, got.DurationSeconds)
	// 20 floors with 4 floors per circuit on both ends.
	assert.Equal(t, 5, rig.primary.LastWorkoutCircuits())
	assert.Equal(t, 5, rig.companion.LastWorkoutCircuits())
}
