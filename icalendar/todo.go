package icalendar

import (
	"fmt"
	"time"

	"github.com/emersion/go-ical"
	"github.com/samber/mo"
	"github.com/solacek/librecur/recurrence"
	"github.com/solacek/librecur/storage"
	"github.com/teambition/rrule-go"
)

const icalDateFormat = "20060102"

// EncodeTodo renders a task as a VTODO component. All-day due dates are
// written as date-only values (the UTC-midnight convention); recurring tasks
// carry an RRULE.
func EncodeTodo(task *storage.Task) (*ical.Component, error) {
	comp := &ical.Component{
		Name:  ical.CompToDo,
		Props: make(ical.Props),
	}
	comp.Props.SetText(ical.PropUID, task.ID)
	comp.Props.SetText(ical.PropSummary, task.Title)
	if task.Notes != "" {
		comp.Props.SetText(ical.PropDescription, task.Notes)
	}
	if task.Completed {
		comp.Props.SetText(ical.PropStatus, "COMPLETED")
	}

	if task.DueDate != nil {
		due := task.DueDate.UTC()
		if task.AllDay {
			prop := ical.NewProp(ical.PropDue)
			prop.Params.Set(ical.ParamValue, "DATE")
			prop.Value = due.Format(icalDateFormat)
			comp.Props.Set(prop)
		} else {
			comp.Props.SetDateTime(ical.PropDue, due)
		}
	}

	if task.Repeat.Recurring() {
		value, err := repeatRuleString(task.Repeat)
		if err != nil {
			return nil, fmt.Errorf("encode rrule: %w", err)
		}
		prop := ical.NewProp(ical.PropRecurrenceRule)
		prop.Value = value
		comp.Props.Set(prop)
	}

	return comp, nil
}

func repeatRuleString(repeat *storage.RepeatConfig) (string, error) {
	var (
		opt rrule.ROption
		err error
	)
	if repeat.Simple != nil {
		opt, err = SimpleOption(*repeat.Simple)
	} else {
		opt, err = CustomOption(*repeat.Custom)
	}
	if err != nil {
		return "", err
	}
	ApplyEnd(&opt, repeat.End)
	return RuleString(opt)
}

// DecodeRepeat extracts a repeat configuration from a component's RRULE
// property. Returns None when the component carries no RRULE. Only the
// representable subset maps back: a bare FREQ with interval 1 decodes as a
// simple rule, everything else as a custom rule.
func DecodeRepeat(comp *ical.Component) (mo.Option[storage.RepeatConfig], error) {
	prop := comp.Props.Get(ical.PropRecurrenceRule)
	if prop == nil || prop.Value == "" {
		return mo.None[storage.RepeatConfig](), nil
	}

	opt, err := rrule.StrToROption(prop.Value)
	if err != nil {
		return mo.None[storage.RepeatConfig](), fmt.Errorf("parse rrule %q: %w", prop.Value, err)
	}

	cfg := storage.RepeatConfig{
		From: recurrence.RepeatFromDueDate,
		End:  decodeEnd(opt),
	}

	interval := opt.Interval
	if interval <= 0 {
		interval = 1
	}
	plain := interval == 1 && len(opt.Byweekday) == 0 && len(opt.Bymonth) == 0 && len(opt.Bymonthday) == 0

	switch opt.Freq {
	case rrule.DAILY:
		if plain {
			cfg.Simple = &recurrence.SimpleRule{Unit: recurrence.UnitDaily}
		} else {
			cfg.Custom = &recurrence.CustomRule{Interval: interval, Unit: recurrence.UnitDays}
		}
	case rrule.WEEKLY:
		if plain {
			cfg.Simple = &recurrence.SimpleRule{Unit: recurrence.UnitWeekly}
		} else {
			custom := &recurrence.CustomRule{Interval: interval, Unit: recurrence.UnitWeeks}
			for _, wd := range opt.Byweekday {
				custom.Weekdays = append(custom.Weekdays, weekdayNameFor(wd))
			}
			cfg.Custom = custom
		}
	case rrule.MONTHLY:
		if plain {
			cfg.Simple = &recurrence.SimpleRule{Unit: recurrence.UnitMonthly}
		} else {
			custom := &recurrence.CustomRule{Interval: interval, Unit: recurrence.UnitMonths}
			if len(opt.Byweekday) > 0 && opt.Byweekday[0].N() != 0 {
				custom.MonthMode = recurrence.MonthSameWeekday
				custom.MonthWeekday = &recurrence.MonthWeekday{
					Weekday:     weekdayNameFor(opt.Byweekday[0]),
					WeekOfMonth: opt.Byweekday[0].N(),
				}
			}
			cfg.Custom = custom
		}
	case rrule.YEARLY:
		if plain {
			cfg.Simple = &recurrence.SimpleRule{Unit: recurrence.UnitYearly}
		} else {
			custom := &recurrence.CustomRule{Interval: interval, Unit: recurrence.UnitYears}
			if len(opt.Bymonth) > 0 {
				custom.Month = opt.Bymonth[0]
			}
			if len(opt.Bymonthday) > 0 {
				custom.Day = opt.Bymonthday[0]
			}
			cfg.Custom = custom
		}
	default:
		return mo.None[storage.RepeatConfig](), fmt.Errorf("%w: frequency %v", ErrUnrepresentable, opt.Freq)
	}

	return mo.Some(cfg), nil
}

func decodeEnd(opt *rrule.ROption) recurrence.EndCondition {
	if opt.Count > 0 {
		return recurrence.EndAfterOccurrences{Count: opt.Count}
	}
	if !opt.Until.IsZero() {
		u := opt.Until.UTC()
		return recurrence.EndOnDate{Date: time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)}
	}
	return recurrence.EndNever{}
}

// weekdayNameFor converts an rrule-go weekday (Monday-based) back to the
// engine's lowercase name.
func weekdayNameFor(wd rrule.Weekday) string {
	names := [7]string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
	day := wd.Day()
	if day < 0 || day > 6 {
		return ""
	}
	return names[day]
}
