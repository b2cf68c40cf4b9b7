package reminder

import (
	"log/slog"
	"time"

	errorvalues "github.com/limbo/staircircuit/internal/error_values"
	"github.com/limbo/staircircuit/pkg/entity"
)

const (
	notificationTitle = "Time for a stair circuit"
	notificationBody  = "Quick climb now keeps the streak alive."
	todayDeepLink     = "app://today"
)

// Planner turns reminder settings into a scheduled notification batch.
// Every recompute first cancels the entire previous batch, so stale
// reminders never outlive a settings change.
type Planner struct {
	dispatcher Dispatcher
	cal        *Calendar
	logger     *slog.Logger
	now        func() time.Time
}

func NewPlanner(dispatcher Dispatcher, cal *Calendar, logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Planner{
		dispatcher: dispatcher,
		cal:        cal,
		logger:     logger,
		now:        time.Now,
	}
}

// WithNow overrides the clock, for tests.
func (p *Planner) WithNow(now func() time.Time) *Planner {
	p.now = now
	return p
}

// ScheduleOrCancel replaces the pending reminder batch according to current
// settings. Reminders disabled or goal already reached cancel everything and
// schedule nothing.
func (p *Planner) ScheduleOrCancel(settings entity.ReminderSettings, goalReached bool) error {
	if !settings.Enabled || goalReached {
		p.CancelAll()
		return nil
	}
	if settings.StartMinutes >= settings.EndMinutes {
		p.CancelAll()
		return errorvalues.ErrInvalidWindow
	}

	p.CancelAll()

	window := NewWindow(settings.StartMinutes, settings.EndMinutes, settings.IntervalMinutes, settings.WeekdaysOnly)
	fireDates := BuildFireDates(p.cal, p.now(), window)
	for index, fireAt := range fireDates {
		err := p.dispatcher.Register(Notification{
			ID:       reminderIdentifier(index),
			Title:    notificationTitle,
			Body:     notificationBody,
			DeepLink: todayDeepLink,
			FireAt:   fireAt,
		})
		if err != nil {
			p.logger.Error("registering reminder failed",
				slog.String("id", reminderIdentifier(index)),
				slog.String("error", err.Error()),
			)
		}
	}
	p.logger.Info("reminder batch replaced", slog.Int("count", len(fireDates)))
	return nil
}

func (p *Planner) CancelAll() {
	p.dispatcher.Cancel(sweepIdentifiers())
}
