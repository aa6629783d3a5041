// Package icalendar maps recurrence rules and tasks onto their RFC 5545
// representation, for collaborators that speak iCalendar. The mapping is
// best-effort interop: the engine's observed semantics (end-of-month
// clamping, interval-ignoring weekday search) are not all expressible as
// RRULEs, and the engine never round-trips through this package.
package icalendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/solacek/librecur/recurrence"
	"github.com/teambition/rrule-go"
)

// ErrUnrepresentable is returned when a rule cannot be expressed as an RRULE.
var ErrUnrepresentable = errors.New("icalendar: rule not representable as RRULE")

// Weekday constants indexed 0=Sunday..6=Saturday, matching the engine's
// weekday indices (rrule-go itself counts from Monday).
var rruleWeekdays = [7]rrule.Weekday{
	rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA,
}

// SimpleOption maps a fixed-unit rule onto rrule-go options.
func SimpleOption(rule recurrence.SimpleRule) (rrule.ROption, error) {
	switch rule.Unit {
	case recurrence.UnitDaily:
		return rrule.ROption{Freq: rrule.DAILY}, nil
	case recurrence.UnitWeekly:
		return rrule.ROption{Freq: rrule.WEEKLY}, nil
	case recurrence.UnitMonthly:
		return rrule.ROption{Freq: rrule.MONTHLY}, nil
	case recurrence.UnitYearly:
		return rrule.ROption{Freq: rrule.YEARLY}, nil
	}
	return rrule.ROption{}, fmt.Errorf("%w: unit %q", ErrUnrepresentable, rule.Unit)
}

// CustomOption maps a user-defined rule onto rrule-go options.
func CustomOption(rule recurrence.CustomRule) (rrule.ROption, error) {
	if err := rule.Validate(); err != nil {
		return rrule.ROption{}, fmt.Errorf("%w: %v", ErrUnrepresentable, err)
	}

	opt := rrule.ROption{Interval: rule.Interval}
	switch rule.Unit {
	case recurrence.UnitDays:
		opt.Freq = rrule.DAILY
	case recurrence.UnitWeeks:
		opt.Freq = rrule.WEEKLY
		for _, name := range rule.Weekdays {
			idx, _ := recurrence.WeekdayIndex(name)
			opt.Byweekday = append(opt.Byweekday, rruleWeekdays[idx])
		}
	case recurrence.UnitMonths:
		opt.Freq = rrule.MONTHLY
		if rule.MonthMode == recurrence.MonthSameWeekday {
			idx, _ := recurrence.WeekdayIndex(rule.MonthWeekday.Weekday)
			opt.Byweekday = []rrule.Weekday{rruleWeekdays[idx].Nth(rule.MonthWeekday.WeekOfMonth)}
		}
	case recurrence.UnitYears:
		opt.Freq = rrule.YEARLY
		if rule.Month != 0 {
			opt.Bymonth = []int{rule.Month}
		}
		if rule.Day != 0 {
			opt.Bymonthday = []int{rule.Day}
		}
	}
	return opt, nil
}

// ApplyEnd folds an end condition into the options. An until date is encoded
// as the last instant of its calendar day, since the engine treats the end
// date as inclusive.
func ApplyEnd(opt *rrule.ROption, end recurrence.EndCondition) {
	switch e := end.(type) {
	case recurrence.EndAfterOccurrences:
		opt.Count = e.Count
	case recurrence.EndOnDate:
		d := e.Date.UTC()
		opt.Until = time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, time.UTC)
	}
}

// RuleString renders options as an RRULE property value, without the
// "RRULE:" prefix or a DTSTART line.
func RuleString(opt rrule.ROption) (string, error) {
	// NewRRule validates the option combination before we serialize it.
	if _, err := rrule.NewRRule(opt); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnrepresentable, err)
	}
	return opt.RRuleString(), nil
}
