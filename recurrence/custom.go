package recurrence

import "time"

// advanceCustom moves the anchor forward per a custom rule. The rule is
// assumed to have passed Validate; reports false only when the weekday-set
// search exhausts its bound without a match.
func (c *Calculator) advanceCustom(rule CustomRule, anchor time.Time) (time.Time, bool) {
	switch rule.Unit {
	case UnitDays:
		return anchor.AddDate(0, 0, rule.Interval), true
	case UnitWeeks:
		if len(rule.Weekdays) == 0 {
			return anchor.AddDate(0, 0, 7*rule.Interval), true
		}
		return c.nextMatchingWeekday(rule.Weekdays, anchor)
	case UnitMonths:
		if rule.MonthMode == MonthSameWeekday {
			return sameWeekdayOfMonth(anchor, rule.Interval, *rule.MonthWeekday), true
		}
		return addMonthsClamped(anchor, rule.Interval), true
	case UnitYears:
		return nextYear(rule, anchor), true
	}
	return time.Time{}, false
}

// nextMatchingWeekday searches forward day-by-day from the day after the
// anchor for the first date whose weekday is in the set. The rule's interval
// is not consulted: only the weekday set determines the next hit, so an
// "every 2 weeks on mon/wed" rule still fires on the very next listed
// weekday. The search is a bounded loop rather than the unbounded
// week-by-week recursion it replaces; the bound comes from
// CalculatorConfig.MaxWeekdaySearchDays.
func (c *Calculator) nextMatchingWeekday(weekdays []string, anchor time.Time) (time.Time, bool) {
	set := weekdaySet(weekdays)
	probe := anchor.AddDate(0, 0, 1)
	for i := 0; i < c.config.MaxWeekdaySearchDays; i++ {
		if _, ok := set[WeekdayName(probe)]; ok {
			return probe, true
		}
		probe = probe.AddDate(0, 0, 1)
	}
	return time.Time{}, false
}

// sameWeekdayOfMonth advances by interval months and lands on the
// WeekOfMonth'th occurrence of the configured weekday in the target month.
//
// There is no "last occurrence" handling: WeekOfMonth 5 in a month with only
// four occurrences of the weekday computes a date in the following month.
func sameWeekdayOfMonth(anchor time.Time, interval int, mw MonthWeekday) time.Time {
	targetIdx, _ := WeekdayIndex(mw.Weekday)
	target := addMonthsClamped(anchor, interval)
	first := time.Date(target.Year(), target.Month(), 1,
		anchor.Hour(), anchor.Minute(), anchor.Second(), anchor.Nanosecond(), anchor.Location())
	offset := (targetIdx-int(first.Weekday())+7)%7 + (mw.WeekOfMonth-1)*7
	return first.AddDate(0, 0, offset)
}

// nextYear advances by interval years. Explicit month/day fields on the rule
// override the anchor's own, so a fixed anniversary stays put even when the
// anchor has drifted. Nonexistent days clamp to the target month's last day.
func nextYear(rule CustomRule, anchor time.Time) time.Time {
	year := anchor.Year() + rule.Interval
	month := anchor.Month()
	day := anchor.Day()
	if rule.Month != 0 {
		month = time.Month(rule.Month)
	}
	if rule.Day != 0 {
		day = rule.Day
	}
	if max := daysInMonth(year, month); day > max {
		day = max
	}
	return time.Date(year, month, day,
		anchor.Hour(), anchor.Minute(), anchor.Second(), anchor.Nanosecond(), anchor.Location())
}
