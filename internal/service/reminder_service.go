package service

import (
	"context"
	"errors"
	"log"
	"time"

	errorvalues "github.com/limbo/staircircuit/internal/error_values"
	"github.com/limbo/staircircuit/internal/reminder"
	"github.com/limbo/staircircuit/internal/repository"
	"github.com/limbo/staircircuit/pkg/entity"
)

// Built-in reminder defaults, used until the first explicit save.
const (
	defaultStartMinutes    = 540
	defaultEndMinutes      = 1020
	defaultIntervalMinutes = 90
)

type ReminderService struct {
	settingsRepo repository.ReminderSettingsRepositoryI
	publisher    SummaryPublisher
	planner      *reminder.Planner
	cal          *reminder.Calendar
	now          func() time.Time
}

func NewReminderService(
	settingsRepo repository.ReminderSettingsRepositoryI,
	publisher SummaryPublisher,
	planner *reminder.Planner,
	cal *reminder.Calendar,
) *ReminderService {
	if settingsRepo == nil {
		log.Fatal("provided nil settingsRepo")
	}
	if publisher == nil {
		log.Fatal("provided nil publisher")
	}
	return &ReminderService{
		settingsRepo: settingsRepo,
		publisher:    publisher,
		planner:      planner,
		cal:          cal,
		now:          time.Now,
	}
}

// WithNow overrides the clock, for tests.
func (rs *ReminderService) WithNow(now func() time.Time) *ReminderService {
	rs.now = now
	return rs
}

func (rs *ReminderService) GetSettings(ctx context.Context) (*entity.ReminderSettings, error) {
	settings, err := rs.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, errorvalues.ErrSettingsNotFound) {
			return defaultSettings(), nil
		}
		return nil, errors.New("reminder settings repository error: " + err.Error())
	}
	return settings, nil
}

// UpdateSettings persists the new window and immediately reschedules the
// notification batch against the current goal state. The interval is snapped
// to the nearest allowed option before saving.
func (rs *ReminderService) UpdateSettings(ctx context.Context, req *UpdateReminderSettingsRequest) (*entity.ReminderSettings, error) {
	if err := validateRequest(*req); err != nil {
		return nil, err
	}
	if req.StartMinutes >= req.EndMinutes {
		return nil, errorvalues.ErrInvalidWindow
	}

	settings := &entity.ReminderSettings{
		Enabled:         req.Enabled,
		StartMinutes:    req.StartMinutes,
		EndMinutes:      req.EndMinutes,
		IntervalMinutes: reminder.ClosestInterval(req.IntervalMinutes),
		WeekdaysOnly:    req.WeekdaysOnly,
	}
	if err := rs.settingsRepo.Save(ctx, settings); err != nil {
		return nil, errors.New("reminder settings repository error: " + err.Error())
	}

	summary, err := rs.publisher.RefreshSummary(ctx)
	if err != nil {
		return nil, errors.New("day logs repository error: " + err.Error())
	}
	if rs.planner != nil {
		if err := rs.planner.ScheduleOrCancel(*settings, summary.GoalReached()); err != nil {
			return nil, err
		}
	}
	return settings, nil
}

func (rs *ReminderService) PreviewFireDates(ctx context.Context) ([]time.Time, error) {
	settings, err := rs.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if !settings.Enabled {
		return nil, nil
	}
	window := reminder.NewWindow(settings.StartMinutes, settings.EndMinutes, settings.IntervalMinutes, settings.WeekdaysOnly)
	return reminder.BuildFireDates(rs.cal, rs.now(), window), nil
}

func defaultSettings() *entity.ReminderSettings {
	return &entity.ReminderSettings{
		Enabled:         false,
		StartMinutes:    defaultStartMinutes,
		EndMinutes:      defaultEndMinutes,
		IntervalMinutes: defaultIntervalMinutes,
		WeekdaysOnly:    true,
	}
}
