package reminder

// IntervalOptions are the reminder cadences the app offers. Arbitrary interval
// values coming from settings are snapped to the closest option.
var IntervalOptions = []int{30, 45, 60, 90, 120}

const minIntervalMinutes = 15

// Window is the immutable daily reminder window. Recreated on every settings
// change, never mutated in place.
type Window struct {
	StartMinute     int
	EndMinute       int
	IntervalMinutes int
	WeekdaysOnly    bool
}

// NewWindow builds a window with the interval snapped to the closest offered
// option. Start/end are taken as given; clamping happens at build time.
func NewWindow(startMinute, endMinute, intervalMinutes int, weekdaysOnly bool) Window {
	return Window{
		StartMinute:     startMinute,
		EndMinute:       endMinute,
		IntervalMinutes: ClosestInterval(intervalMinutes),
		WeekdaysOnly:    weekdaysOnly,
	}
}

// ClosestInterval snaps minutes to the nearest offered interval option.
// Ties resolve to the smaller option.
func ClosestInterval(minutes int) int {
	best := IntervalOptions[0]
	bestDiff := abs(minutes - best)
	for _, opt := range IntervalOptions[1:] {
		diff := abs(minutes - opt)
		if diff < bestDiff {
			best = opt
			bestDiff = diff
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
