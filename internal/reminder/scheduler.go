package reminder

import "time"

const scheduledDays = 7

// BuildFireDates computes the chronological list of reminder instants for the
// next seven eligible days. The first day drops instants already in the past
// relative to now; with WeekdaysOnly set, weekend days are skipped entirely
// and do not count toward the seven.
func BuildFireDates(cal *Calendar, now time.Time, window Window) []time.Time {
	interval := window.IntervalMinutes
	if interval < minIntervalMinutes {
		interval = minIntervalMinutes
	}
	start := window.StartMinute
	if start < 0 {
		start = 0
	}
	end := window.EndMinute
	if end < start+1 {
		end = start + 1
	}

	currentStart := nextStartDate(cal, now, start, window.WeekdaysOnly)

	fireDates := make([]time.Time, 0, scheduledDays*4)
	for range scheduledDays {
		fireDates = append(fireDates, buildDaySchedule(cal, now, currentStart, start, end, interval)...)
		currentStart = cal.NextDay(currentStart)
		if window.WeekdaysOnly {
			currentStart = nextWeekday(cal, currentStart)
		}
	}
	return fireDates
}

func buildDaySchedule(cal *Calendar, now, day time.Time, startMinutes, endMinutes, intervalMinutes int) []time.Time {
	dayStart := cal.SettingMinutes(day, startMinutes)
	dayEnd := cal.SettingMinutes(day, endMinutes)
	if !dayEnd.After(dayStart) {
		return nil
	}

	var fireDates []time.Time
	for next := dayStart; !next.After(dayEnd); next = next.Add(time.Duration(intervalMinutes) * time.Minute) {
		if !next.Before(now) {
			fireDates = append(fireDates, next)
		}
	}
	return fireDates
}

func nextStartDate(cal *Calendar, now time.Time, startMinutes int, weekdaysOnly bool) time.Time {
	candidate := cal.SettingMinutes(now, startMinutes)
	if candidate.Before(now) {
		candidate = cal.NextDay(candidate)
	}
	if weekdaysOnly {
		candidate = nextWeekday(cal, candidate)
	}
	return candidate
}

func nextWeekday(cal *Calendar, t time.Time) time.Time {
	for cal.IsWeekend(t) {
		t = cal.NextDay(t)
	}
	return t
}
