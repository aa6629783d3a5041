package recurrence

import "time"

// advanceSimple moves the anchor forward by one fixed unit. Time-of-day is
// preserved. Reports false for an unrecognized unit.
func advanceSimple(unit Unit, anchor time.Time) (time.Time, bool) {
	switch unit {
	case UnitDaily:
		return anchor.AddDate(0, 0, 1), true
	case UnitWeekly:
		return anchor.AddDate(0, 0, 7), true
	case UnitMonthly:
		return addMonthsClamped(anchor, 1), true
	case UnitYearly:
		return addYearsClamped(anchor, 1), true
	}
	return time.Time{}, false
}

// addMonthsClamped adds calendar months with end-of-month clamping: Jan 31
// plus one month is Feb 28 (or Feb 29 in a leap year), not March 2. Go's
// AddDate normalizes overflowing days into the next month instead of
// clamping, so the clamp is applied here.
func addMonthsClamped(t time.Time, months int) time.Time {
	day := t.Day()
	first := time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	target := first.AddDate(0, months, 0)
	if max := daysInMonth(target.Year(), target.Month()); day > max {
		day = max
	}
	return time.Date(target.Year(), target.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// addYearsClamped adds calendar years; a Feb 29 anchor clamps to Feb 28 in
// non-leap target years.
func addYearsClamped(t time.Time, years int) time.Time {
	return addMonthsClamped(t, 12*years)
}

func daysInMonth(year int, month time.Month) int {
	// Day zero of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
