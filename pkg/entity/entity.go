package entity

import (
	"time"
)

// DayLog is the primary device's authoritative record for one calendar day.
type DayLog struct {
	DayKey           string    `json:"day_key"`
	Completed        int       `json:"completed"`
	Target           int       `json:"target"`
	FloorsPerCircuit int       `json:"floors_per_circuit"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (dl *DayLog) GoalReached() bool {
	return dl.Completed >= dl.Target
}

func (dl *DayLog) Summary() DaySummary {
	return DaySummary{
		DayKey:           dl.DayKey,
		Completed:        dl.Completed,
		Target:           dl.Target,
		FloorsPerCircuit: dl.FloorsPerCircuit,
	}
}

// DaySummary is the replicated projection of a DayLog exchanged between devices.
type DaySummary struct {
	DayKey           string `json:"dayKey"`
	Completed        int    `json:"completed"`
	Target           int    `json:"target"`
	FloorsPerCircuit int    `json:"floorsPerCircuit"`
}

func (ds DaySummary) GoalReached() bool {
	return ds.Completed >= ds.Target
}

// WorkoutSummary is a finished wrist workout relayed alongside a day summary.
type WorkoutSummary struct {
	Date             time.Time `json:"date"`
	DurationSeconds  float64   `json:"duration"`
	Floors           float64   `json:"floors"`
	ActiveEnergy     float64   `json:"activeEnergy"`
	AverageHeartRate float64   `json:"averageHeartRate"`
}

// Circuits derives completed circuits from climbed floors. Malformed
// samples with negative floors derive zero circuits.
func (ws WorkoutSummary) Circuits(floorsPerCircuit int) int {
	if floorsPerCircuit < 1 {
		floorsPerCircuit = 1
	}
	circuits := int(ws.Floors) / floorsPerCircuit
	if circuits < 0 {
		return 0
	}
	return circuits
}

type ReminderSettings struct {
	Enabled         bool `json:"enabled"`
	StartMinutes    int  `json:"start_minutes"`
	EndMinutes      int  `json:"end_minutes"`
	IntervalMinutes int  `json:"interval_minutes"`
	WeekdaysOnly    bool `json:"weekdays_only"`
}

type WeeklyStats struct {
	TotalCircuits         int     `json:"total_circuits"`
	CompletionRate        float64 `json:"completion_rate"`
	StreakDays            int     `json:"streak_days"`
	BestDayKey            string  `json:"best_day_key,omitempty"`
	AverageCircuitsPerDay float64 `json:"average_circuits_per_day"`
}

type StreakInfo struct {
	CurrentStreak    int    `json:"current_streak"`
	LongestStreak    int    `json:"longest_streak"`
	LastCompletedDay string `json:"last_completed_day,omitempty"`
}
