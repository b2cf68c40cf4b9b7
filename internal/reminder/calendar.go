package reminder

import "time"

const DayKeyLayout = "2006-01-02"

// Calendar fixes the location and the weekend definition used for fire-date
// math. The weekend set is locale-dependent, Sat/Sun by default.
type Calendar struct {
	loc     *time.Location
	weekend map[time.Weekday]bool
}

func NewCalendar(loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.Local
	}
	return &Calendar{
		loc: loc,
		weekend: map[time.Weekday]bool{
			time.Saturday: true,
			time.Sunday:   true,
		},
	}
}

// NewCalendarWithWeekend overrides the weekend days, for locales where the
// weekend is not Sat/Sun.
func NewCalendarWithWeekend(loc *time.Location, weekend []time.Weekday) *Calendar {
	cal := NewCalendar(loc)
	cal.weekend = make(map[time.Weekday]bool, len(weekend))
	for _, wd := range weekend {
		cal.weekend[wd] = true
	}
	return cal
}

func (c *Calendar) Location() *time.Location {
	return c.loc
}

func (c *Calendar) IsWeekend(t time.Time) bool {
	return c.weekend[t.In(c.loc).Weekday()]
}

// DayKey formats t as a local-time YYYY-MM-DD calendar-day identifier.
func (c *Calendar) DayKey(t time.Time) string {
	return t.In(c.loc).Format(DayKeyLayout)
}

// SettingMinutes returns t's calendar day at the given minute-of-day,
// wall-clock local. Negative minutes clamp to midnight.
func (c *Calendar) SettingMinutes(t time.Time, minutes int) time.Time {
	if minutes < 0 {
		minutes = 0
	}
	local := t.In(c.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), minutes/60, minutes%60, 0, 0, c.loc)
}

// NextDay advances one calendar day keeping the time-of-day, wall-clock local.
func (c *Calendar) NextDay(t time.Time) time.Time {
	local := t.In(c.loc)
	return time.Date(local.Year(), local.Month(), local.Day()+1, local.Hour(), local.Minute(), local.Second(), 0, c.loc)
}
