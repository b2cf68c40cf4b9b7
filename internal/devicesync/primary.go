package devicesync

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	errorvalues "github.com/limbo/staircircuit/internal/error_values"
	"github.com/limbo/staircircuit/internal/reminder"
	"github.com/limbo/staircircuit/internal/repository"
	"github.com/limbo/staircircuit/pkg/entity"
)

// Primary owns the authoritative day summary. Every local mutation re-reads
// today's log, broadcasts full state to the companion and recomputes the
// reminder batch. Broadcasts are fire-and-forget.
type Primary struct {
	repo         repository.DayLogRepositoryI
	settingsRepo repository.ReminderSettingsRepositoryI
	channel      Channel
	planner      *reminder.Planner
	cal          *reminder.Calendar
	logger       *slog.Logger
	now          func() time.Time

	mu                  sync.Mutex
	lastWorkout         *entity.WorkoutSummary
	lastWorkoutCircuits int
}

func NewPrimary(
	repo repository.DayLogRepositoryI,
	settingsRepo repository.ReminderSettingsRepositoryI,
	channel Channel,
	planner *reminder.Planner,
	cal *reminder.Calendar,
	logger *slog.Logger,
) *Primary {
	if logger == nil {
		logger = slog.Default()
	}
	return &Primary{
		repo:         repo,
		settingsRepo: settingsRepo,
		channel:      channel,
		planner:      planner,
		cal:          cal,
		logger:       logger,
		now:          time.Now,
	}
}

// WithNow overrides the clock, for tests.
func (p *Primary) WithNow(now func() time.Time) *Primary {
	p.now = now
	return p
}

func (p *Primary) TodayKey() string {
	return p.cal.DayKey(p.now())
}

// RefreshSummary fetches (or creates) today's log, pushes it to the
// companion and re-plans reminders against the current goal state.
func (p *Primary) RefreshSummary(ctx context.Context) (entity.DaySummary, error) {
	log, err := p.repo.GetOrCreate(ctx, p.TodayKey())
	if err != nil {
		return entity.DaySummary{}, errors.New("refreshing summary error: " + err.Error())
	}
	summary := log.Summary()
	p.broadcast(ctx, summary)
	p.replanReminders(ctx, summary.GoalReached())
	return summary, nil
}

// ApplyIncrement adds count circuits to today's log. Non-positive counts are
// ignored.
func (p *Primary) ApplyIncrement(ctx context.Context, count int) (entity.DaySummary, error) {
	if count <= 0 {
		return p.RefreshSummary(ctx)
	}
	dayKey := p.TodayKey()
	if _, err := p.repo.GetOrCreate(ctx, dayKey); err != nil {
		return entity.DaySummary{}, errors.New("ensuring day log error: " + err.Error())
	}
	if _, err := p.repo.ApplyIncrement(ctx, dayKey, count); err != nil {
		return entity.DaySummary{}, errors.New("applying increment error: " + err.Error())
	}
	return p.RefreshSummary(ctx)
}

// HandleMessage processes one inbound companion payload. Failures are local:
// callers log the returned error and carry on.
func (p *Primary) HandleMessage(ctx context.Context, payload Payload) error {
	if requested, ok := payload[KeyRequestSummary].(bool); ok && requested {
		_, err := p.RefreshSummary(ctx)
		return err
	}

	if workout, found, err := EmbeddedWorkout(payload); err != nil {
		return err
	} else if found {
		p.recordWorkout(ctx, workout)
	}

	if count, ok := payloadInt(payload, KeyPendingIncrements); ok {
		requestedDayKey, hasKey := payload[KeyDayKey].(string)
		if hasKey && requestedDayKey != p.TodayKey() {
			// Offline taps from before midnight rollover: discard them and
			// force a full resync instead.
			if _, err := p.RefreshSummary(ctx); err != nil {
				return err
			}
			return errorvalues.ErrStaleDayMismatch
		}
		_, err := p.ApplyIncrement(ctx, count)
		return err
	}

	return nil
}

// LastWorkout returns the most recent workout summary relayed by the
// companion, if any.
func (p *Primary) LastWorkout() *entity.WorkoutSummary {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lastWorkout == nil {
		return nil
	}
	ws := *p.lastWorkout
	return &ws
}

// LastWorkoutCircuits returns the circuit count derived from the last
// relayed workout against the day log's floors-per-circuit at receipt time.
func (p *Primary) LastWorkoutCircuits() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastWorkoutCircuits
}

func (p *Primary) recordWorkout(ctx context.Context, ws entity.WorkoutSummary) {
	circuits := 0
	if dayLog, err := p.repo.GetOrCreate(ctx, p.TodayKey()); err != nil {
		p.logger.Error("loading day log for workout failed", slog.String("error", err.Error()))
	} else {
		circuits = ws.Circuits(dayLog.FloorsPerCircuit)
	}
	p.mu.Lock()
	p.lastWorkout = &ws
	p.lastWorkoutCircuits = circuits
	p.mu.Unlock()
	p.logger.Info("workout summary received",
		slog.Float64("floors", ws.Floors),
		slog.Float64("duration_seconds", ws.DurationSeconds),
		slog.Int("circuits", circuits),
	)
}

func (p *Primary) broadcast(ctx context.Context, summary entity.DaySummary) {
	if !p.channel.Activated() {
		p.logger.Debug("skipping broadcast: channel inactive")
		return
	}
	if err := p.channel.Send(ctx, SummaryPayload(summary)); err != nil {
		p.logger.Error("broadcasting summary failed", slog.String("error", err.Error()))
	}
}

func (p *Primary) replanReminders(ctx context.Context, goalReached bool) {
	if p.planner == nil {
		return
	}
	settings, err := p.settingsRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, errorvalues.ErrSettingsNotFound) {
			p.logger.Error("loading reminder settings failed", slog.String("error", err.Error()))
		}
		return
	}
	if err := p.planner.ScheduleOrCancel(*settings, goalReached); err != nil {
		p.logger.Error("replanning reminders failed", slog.String("error", err.Error()))
	}
}
