package service

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"github.com/limbo/staircircuit/internal/reminder"
	"github.com/limbo/staircircuit/internal/repository"
	"github.com/limbo/staircircuit/pkg/entity"
)

const (
	plateauMinLogs     = 3
	plateauStdDev      = 1.5
	suggestionMinLogs  = 5
	streakLookbackDays = 90
)

// TargetSuggestion is the behavioral read on the last week of logs.
// SuggestedTarget is zero when no adjustment is advised.
type TargetSuggestion struct {
	CurrentTarget   int     `json:"current_target"`
	SuggestedTarget int     `json:"suggested_target,omitempty"`
	GoalMetRate     float64 `json:"goal_met_rate"`
	Plateau         bool    `json:"plateau"`
}

type AnalyticsService struct {
	repo repository.DayLogRepositoryI
	cal  *reminder.Calendar
	now  func() time.Time
}

func NewAnalyticsService(dayLogsRepo repository.DayLogRepositoryI, cal *reminder.Calendar) *AnalyticsService {
	if dayLogsRepo == nil {
		log.Fatal("provided nil dayLogsRepo")
	}
	return &AnalyticsService{
		repo: dayLogsRepo,
		cal:  cal,
		now:  time.Now,
	}
}

// WithNow overrides the clock, for tests.
func (as *AnalyticsService) WithNow(now func() time.Time) *AnalyticsService {
	as.now = now
	return as
}

func (as *AnalyticsService) WeeklyStats(ctx context.Context) (*entity.WeeklyStats, error) {
	logs, err := as.recentLogs(ctx, 7)
	if err != nil {
		return nil, err
	}
	stats := &entity.WeeklyStats{}
	if len(logs) == 0 {
		return stats, nil
	}

	goalMet := 0
	best := logs[0]
	for _, l := range logs {
		stats.TotalCircuits += l.Completed
		if l.Completed >= l.Target {
			goalMet++
		}
		if l.Completed > best.Completed {
			best = l
		}
	}
	stats.CompletionRate = float64(goalMet) / float64(len(logs))
	stats.AverageCircuitsPerDay = float64(stats.TotalCircuits) / float64(len(logs))
	stats.BestDayKey = best.DayKey
	stats.StreakDays = as.currentStreak(logs)
	return stats, nil
}

func (as *AnalyticsService) Streaks(ctx context.Context) (*entity.StreakInfo, error) {
	logs, err := as.recentLogs(ctx, streakLookbackDays)
	if err != nil {
		return nil, err
	}
	info := &entity.StreakInfo{
		CurrentStreak: as.currentStreak(logs),
		LongestStreak: longestStreak(logs),
	}
	for _, l := range logs {
		if l.Completed >= l.Target {
			info.LastCompletedDay = l.DayKey
			break
		}
	}
	return info, nil
}

func (as *AnalyticsService) TargetSuggestion(ctx context.Context) (*TargetSuggestion, error) {
	logs, err := as.recentLogs(ctx, 7)
	if err != nil {
		return nil, err
	}
	suggestion := &TargetSuggestion{Plateau: detectPlateau(logs)}
	if len(logs) < suggestionMinLogs {
		return suggestion, nil
	}

	total := 0
	goalMet := 0
	for _, l := range logs {
		total += l.Completed
		if l.Completed >= l.Target {
			goalMet++
		}
	}
	avgCompleted := float64(total) / float64(len(logs))
	currentTarget := float64(logs[0].Target)
	suggestion.CurrentTarget = logs[0].Target
	suggestion.GoalMetRate = float64(goalMet) / float64(len(logs))

	switch {
	case suggestion.GoalMetRate > 0.9 && avgCompleted > currentTarget*1.2:
		suggested := int(math.Round(currentTarget * 1.1))
		if suggested < int(avgCompleted) {
			suggested = int(avgCompleted)
		}
		suggestion.SuggestedTarget = suggested
	case suggestion.GoalMetRate < 0.4:
		suggested := int(math.Round(currentTarget * 0.9))
		if suggested < 1 {
			suggested = 1
		}
		suggestion.SuggestedTarget = suggested
	}
	return suggestion, nil
}

// detectPlateau flags a flat week: at least three logs whose completed counts
// barely move around their mean.
func detectPlateau(logs []entity.DayLog) bool {
	if len(logs) < plateauMinLogs {
		return false
	}
	total := 0
	for _, l := range logs {
		total += l.Completed
	}
	avg := float64(total) / float64(len(logs))
	variance := 0.0
	for _, l := range logs {
		diff := float64(l.Completed) - avg
		variance += diff * diff
	}
	variance /= float64(len(logs))
	return math.Sqrt(variance) < plateauStdDev
}

// currentStreak walks backwards from today. A missing or unmet day breaks it,
// today included.
func (as *AnalyticsService) currentStreak(logs []entity.DayLog) int {
	byKey := make(map[string]entity.DayLog, len(logs))
	for _, l := range logs {
		byKey[l.DayKey] = l
	}
	streak := 0
	day := as.now()
	for range logs {
		l, ok := byKey[as.cal.DayKey(day)]
		if !ok || l.Completed < l.Target {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// longestStreak finds the longest run of consecutive goal-met calendar days.
// Logs arrive newest-first.
func longestStreak(logs []entity.DayLog) int {
	longest, run := 0, 0
	var prevDay time.Time
	for i := len(logs) - 1; i >= 0; i-- {
		l := logs[i]
		day, err := time.Parse(reminder.DayKeyLayout, l.DayKey)
		if err != nil || l.Completed < l.Target {
			run = 0
			prevDay = time.Time{}
			continue
		}
		if !prevDay.IsZero() && day.Sub(prevDay) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
		prevDay = day
	}
	return longest
}

func (as *AnalyticsService) recentLogs(ctx context.Context, days int) ([]entity.DayLog, error) {
	now := as.now()
	fromKey := as.cal.DayKey(now.AddDate(0, 0, -days))
	toKey := as.cal.DayKey(now)
	logs, err := as.repo.GetRange(ctx, fromKey, toKey)
	if err != nil {
		return nil, errors.New("day logs repository error: " + err.Error())
	}
	return logs, nil
}
