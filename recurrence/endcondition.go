package recurrence

import "time"

// shouldTerminate decides whether a freshly computed candidate date ends the
// series. A nil condition behaves like EndNever.
func shouldTerminate(candidate time.Time, newCount int, end EndCondition) bool {
	switch e := end.(type) {
	case nil:
		return false
	case EndNever:
		return false
	case EndAfterOccurrences:
		return newCount >= e.Count
	case EndOnDate:
		// Calendar dates only; the end date itself is inclusive.
		return calendarDate(candidate).After(calendarDate(e.Date))
	}
	return false
}

// calendarDate strips time-of-day using the UTC calendar.
func calendarDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
