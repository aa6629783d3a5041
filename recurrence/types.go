package recurrence

import (
	"errors"
	"fmt"
	"time"

	"github.com/samber/mo"
)

// Unit identifies the calendar unit a rule advances by. Simple rules use the
// four fixed units; custom rules use the plural interval units.
type Unit string

const (
	// Simple rule units
	UnitDaily   Unit = "daily"
	UnitWeekly  Unit = "weekly"
	UnitMonthly Unit = "monthly"
	UnitYearly  Unit = "yearly"

	// Custom rule interval units
	UnitDays   Unit = "days"
	UnitWeeks  Unit = "weeks"
	UnitMonths Unit = "months"
	UnitYears  Unit = "years"
)

// MonthMode selects how a monthly custom rule advances.
type MonthMode string

const (
	// MonthSameDate keeps the same day of month (clamped at month end).
	MonthSameDate MonthMode = "same_date"
	// MonthSameWeekday keeps the same nth-weekday-of-month position.
	MonthSameWeekday MonthMode = "same_weekday"
)

// RepeatFrom determines which timestamp seeds the anchor for advancement.
type RepeatFrom string

const (
	RepeatFromDueDate    RepeatFrom = "due_date"
	RepeatFromCompletion RepeatFrom = "completion"
)

// SimpleRule is a fixed-unit recurrence: one day, week, month or year per
// occurrence.
type SimpleRule struct {
	Unit Unit
}

// MonthWeekday pins a monthly rule to the nth occurrence of a weekday,
// e.g. {Weekday: "tuesday", WeekOfMonth: 3} for the third Tuesday.
//
// WeekOfMonth 1-4 select the 1st-4th occurrence. A value of 5 is commonly
// meant as "last", but the advancement formula applies no such special case:
// when the target month has only four occurrences of the weekday the computed
// date spills into the following month.
type MonthWeekday struct {
	Weekday     string
	WeekOfMonth int
}

// CustomRule is a user-defined recurrence with an arbitrary interval and
// per-unit options. Rules are immutable once constructed; edits produce a new
// value.
type CustomRule struct {
	// Interval is the number of units between occurrences. Must be positive.
	Interval int

	// Unit is one of UnitDays, UnitWeeks, UnitMonths, UnitYears.
	Unit Unit

	// Weekdays restricts weekly rules to a set of lowercase English weekday
	// names. When non-empty, advancement searches forward for the next
	// matching weekday and Interval is not consulted.
	Weekdays []string

	// MonthMode selects same-date or same-weekday advancement for monthly
	// rules. Empty means MonthSameDate.
	MonthMode MonthMode

	// MonthWeekday is required when MonthMode is MonthSameWeekday.
	MonthWeekday *MonthWeekday

	// Month and Day optionally pin yearly rules to a fixed month (1-12) and
	// day (1-31), overriding the anchor's own month/day. Zero means unset.
	Month int
	Day   int
}

// Validation errors for custom rules. The calculator itself never returns
// these: a rule failing validation terminates the series (fail-closed).
// Callers that need to distinguish a malformed rule from a legitimately
// finished series must call Validate before calculating.
var (
	ErrMissingUnit         = errors.New("recurrence: custom rule has no unit")
	ErrUnknownUnit         = errors.New("recurrence: unknown unit")
	ErrInvalidInterval     = errors.New("recurrence: interval must be positive")
	ErrUnknownWeekday      = errors.New("recurrence: unknown weekday name")
	ErrInvalidMonthWeekday = errors.New("recurrence: invalid month weekday")
	ErrInvalidYearlyDate   = errors.New("recurrence: invalid yearly month/day")
)

// Validate checks the rule for structural completeness.
func (r CustomRule) Validate() error {
	if r.Unit == "" {
		return ErrMissingUnit
	}
	switch r.Unit {
	case UnitDays, UnitWeeks, UnitMonths, UnitYears:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownUnit, r.Unit)
	}
	if r.Interval <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidInterval, r.Interval)
	}
	for _, name := range r.Weekdays {
		if _, ok := WeekdayIndex(name); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownWeekday, name)
		}
	}
	if r.MonthMode == MonthSameWeekday {
		if r.MonthWeekday == nil {
			return fmt.Errorf("%w: month weekday not set", ErrInvalidMonthWeekday)
		}
		if _, ok := WeekdayIndex(r.MonthWeekday.Weekday); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownWeekday, r.MonthWeekday.Weekday)
		}
		if r.MonthWeekday.WeekOfMonth < 1 || r.MonthWeekday.WeekOfMonth > 5 {
			return fmt.Errorf("%w: week %d", ErrInvalidMonthWeekday, r.MonthWeekday.WeekOfMonth)
		}
	}
	if r.Month < 0 || r.Month > 12 || r.Day < 0 || r.Day > 31 {
		return fmt.Errorf("%w: month %d day %d", ErrInvalidYearlyDate, r.Month, r.Day)
	}
	return nil
}

// EndCondition governs when a recurring series stops producing occurrences.
// It is a closed set of variants; evaluation type-switches exhaustively.
type EndCondition interface {
	isEndCondition()
}

// EndNever keeps the series running indefinitely.
type EndNever struct{}

// EndAfterOccurrences stops the series once it has produced Count occurrences.
type EndAfterOccurrences struct {
	Count int
}

// EndOnDate stops the series after the given calendar date. The date is
// inclusive: an occurrence falling exactly on it still proceeds. Only the
// calendar date is compared, never time-of-day.
type EndOnDate struct {
	Date time.Time
}

func (EndNever) isEndCondition()            {}
func (EndAfterOccurrences) isEndCondition() {}
func (EndOnDate) isEndCondition()           {}

// OccurrenceState is the caller-held state snapshot for one completion event.
type OccurrenceState struct {
	// Count is the number of occurrences the series has produced so far.
	Count int
	// DueDate is the current due date, if the task has one. All-day tasks
	// store it at UTC midnight.
	DueDate mo.Option[time.Time]
}

// Result is the outcome of one calculation.
//
// Terminated implies NextDue is None. OccurrenceCount is always the input
// count plus one, whether or not the series terminated.
type Result struct {
	NextDue         mo.Option[time.Time]
	Terminated      bool
	OccurrenceCount int
}
