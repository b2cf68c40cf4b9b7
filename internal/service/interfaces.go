package service

import (
	"context"
	"time"

	"github.com/limbo/staircircuit/pkg/entity"
)

type IncrementRequest struct {
	Count int `validate:"required,min=1,max=100"`
}

type SetTargetRequest struct {
	Target int `validate:"required,min=1,max=100"`
}

type SetFloorsPerCircuitRequest struct {
	Floors int `validate:"required,min=1,max=50"`
}

type UpdateReminderSettingsRequest struct {
	Enabled         bool `validate:"-"`
	StartMinutes    int  `validate:"minute_of_day"`
	EndMinutes      int  `validate:"min=1,max=1439"`
	IntervalMinutes int  `validate:"required,min=1,max=720"`
	WeekdaysOnly    bool `validate:"-"`
}

type DayLogServiceI interface {
	// Today returns the authoritative summary for the current day, creating
	// the backing log on first access.
	Today(ctx context.Context) (*entity.DaySummary, error)
	Increment(ctx context.Context, req *IncrementRequest) (*entity.DaySummary, error)
	Reset(ctx context.Context) (*entity.DaySummary, error)
	SetTarget(ctx context.Context, req *SetTargetRequest) (*entity.DaySummary, error)
	SetFloorsPerCircuit(ctx context.Context, req *SetFloorsPerCircuitRequest) (*entity.DaySummary, error)
}

type ReminderServiceI interface {
	// GetSettings falls back to the built-in defaults when nothing has been
	// saved yet.
	GetSettings(ctx context.Context) (*entity.ReminderSettings, error)
	UpdateSettings(ctx context.Context, req *UpdateReminderSettingsRequest) (*entity.ReminderSettings, error)
	// PreviewFireDates computes the batch the saved settings would schedule
	// right now, without touching the notification dispatcher.
	PreviewFireDates(ctx context.Context) ([]time.Time, error)
}

type AnalyticsServiceI interface {
	WeeklyStats(ctx context.Context) (*entity.WeeklyStats, error)
	Streaks(ctx context.Context) (*entity.StreakInfo, error)
	TargetSuggestion(ctx context.Context) (*TargetSuggestion, error)
}

// SummaryPublisher re-reads today's log and pushes fresh state to the paired
// companion device after a local mutation.
type SummaryPublisher interface {
	RefreshSummary(ctx context.Context) (entity.DaySummary, error)
	ApplyIncrement(ctx context.Context, count int) (entity.DaySummary, error)
	TodayKey() string
}
