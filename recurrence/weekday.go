package recurrence

import "time"

// Weekday names, indexed 0=Sunday through 6=Saturday, matching time.Weekday.
var weekdayNames = [7]string{
	"sunday",
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
}

// WeekdayName returns the lowercase English weekday name for t.
func WeekdayName(t time.Time) string {
	return weekdayNames[int(t.Weekday())]
}

// WeekdayIndex returns the 0=Sunday..6=Saturday index for a lowercase English
// weekday name.
func WeekdayIndex(name string) (int, bool) {
	for i, n := range weekdayNames {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

func weekdaySet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
