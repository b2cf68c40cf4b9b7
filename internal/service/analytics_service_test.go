package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/limbo/staircircuit/internal/reminder"
	"github.com/limbo/staircircuit/internal/service"
	"github.com/limbo/staircircuit/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var analyticsTestNow = time.Date(2026, time.January, 17, 12, 0, 0, 0, time.UTC)

// rangeRepoMock serves a canned newest-first range.
type rangeRepoMock struct {
	dayLogRepoMock
	logs []entity.DayLog
}

func (rrmock *rangeRepoMock) GetRange(ctx context.Context, fromKey, toKey string) ([]entity.DayLog, error) {
	if rrmock.state == stateDBError {
		return nil, assert.AnError
	}
	return rrmock.logs, nil
}

func mkLog(dayKey string, completed, target int) entity.DayLog {
	return entity.DayLog{
		DayKey:           dayKey,
		Completed:        completed,
		Target:           target,
		FloorsPerCircuit: 4,
	}
}

func newAnalyticsService(logs []entity.DayLog) *service.AnalyticsService {
	cal := reminder.NewCalendar(time.UTC)
	return service.NewAnalyticsService(&rangeRepoMock{logs: logs}, cal).
		WithNow(func() time.Time { return analyticsTestNow })
}

func TestWeeklyStats(t *testing.T) {
	s := newAnalyticsService([]entity.DayLog{
		mkLog("2026-01-17", 12, 10),
		mkLog("2026-01-16", 10, 10),
		mkLog("2026-01-15", 8, 10),
		mkLog("2026-01-14", 10, 10),
		mkLog("2026-01-13", 11, 10),
		mkLog("2026-01-12", 9, 10),
		mkLog("2026-01-11", 10, 10),
	})

	stats, err := s.WeeklyStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 70, stats.TotalCircuits)
	assert.InDelta(t, 5.0/7.0, stats.CompletionRate, 1e-9)
	assert.InDelta(t, 10.0, stats.AverageCircuitsPerDay, 1e-9)
	assert.Equal(t, "2026-01-17", stats.BestDayKey)
	// The 15th missed its goal, so the running streak is two days.
	assert.Equal(t, 2, stats.StreakDays)
}

func TestWeeklyStatsEmpty(t *testing.T) {
	s := newAnalyticsService(nil)

	stats, err := s.WeeklyStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalCircuits)
	assert.Zero(t, stats.CompletionRate)
	assert.Empty(t, stats.BestDayKey)
}

func TestStreaks(t *testing.T) {
	t.Run("runs and last completed day", func(t *testing.T) {
		s := newAnalyticsService([]entity.DayLog{
			mkLog("2026-01-17", 10, 10),
			mkLog("2026-01-16", 10, 10),
			mkLog("2026-01-15", 4, 10),
			mkLog("2026-01-14", 10, 10),
			mkLog("2026-01-13", 10, 10),
			mkLog("2026-01-12", 10, 10),
		})

		info, err := s.Streaks(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, info.CurrentStreak)
		assert.Equal(t, 3, info.LongestStreak)
		assert.Equal(t, "2026-01-17", info.LastCompletedDay)
	})
	t.Run("missing today breaks the streak", func(t *testing.T) {
		s := newAnalyticsService([]entity.DayLog{
			mkLog("2026-01-16", 10, 10),
			mkLog("2026-01-15", 10, 10),
		})

		info, err := s.Streaks(context.Background())
		require.NoError(t, err)
		assert.Zero(t, info.CurrentStreak)
		assert.Equal(t, 2, info.LongestStreak)
	})
	t.Run("gap splits the longest run", func(t *testing.T) {
		s := newAnalyticsService([]entity.DayLog{
			mkLog("2026-01-17", 10, 10),
			mkLog("2026-01-14", 10, 10),
			mkLog("2026-01-13", 10, 10),
		})

		info, err := s.Streaks(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, info.CurrentStreak)
		assert.Equal(t, 2, info.LongestStreak)
	})
}

func TestTargetSuggestion(t *testing.T) {
	ctx := context.Background()
	week := func(completed, target int) []entity.DayLog {
		logs := make([]entity.DayLog, 0, 7)
		for day := 17; day >= 11; day-- {
			logs = append(logs, mkLog(time.Date(2026, time.January, day, 0, 0, 0, 0, time.UTC).Format(reminder.DayKeyLayout), completed, target))
		}
		return logs
	}

	t.Run("raise after an easy week", func(t *testing.T) {
		s := newAnalyticsService(week(13, 10))

		suggestion, err := s.TargetSuggestion(ctx)
		require.NoError(t, err)
		assert.Equal(t, 10, suggestion.CurrentTarget)
		// Round(10*1.1) = 11 is below the 13/day average, so the average wins.
		assert.Equal(t, 13, suggestion.SuggestedTarget)
		assert.True(t, suggestion.Plateau)
	})
	t.Run("lower after a rough week", func(t *testing.T) {
		s := newAnalyticsService(week(2, 10))

		suggestion, err := s.TargetSuggestion(ctx)
		require.NoError(t, err)
		assert.Equal(t, 9, suggestion.SuggestedTarget)
	})
	t.Run("steady week suggests nothing", func(t *testing.T) {
		logs := week(10, 10)
		for i := range logs {
			if i%2 == 1 {
				logs[i].Completed = 9
			}
		}
		s := newAnalyticsService(logs)

		suggestion, err := s.TargetSuggestion(ctx)
		require.NoError(t, err)
		assert.Zero(t, suggestion.SuggestedTarget)
	})
	t.Run("too few logs", func(t *testing.T) {
		s := newAnalyticsService(week(13, 10)[:4])

		suggestion, err := s.TargetSuggestion(ctx)
		require.NoError(t, err)
		assert.Zero(t, suggestion.CurrentTarget)
		assert.Zero(t, suggestion.SuggestedTarget)
	})
}
