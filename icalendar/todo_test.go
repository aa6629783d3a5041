package icalendar

import (
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/solacek/librecur/recurrence"
	"github.com/solacek/librecur/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed.UTC()
}

func TestEncodeTodo(t *testing.T) {
	due := time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)
	task := &storage.Task{
		ID:      "task-1",
		Title:   "water the plants",
		Notes:   "kitchen and balcony",
		DueDate: &due,
		AllDay:  true,
		Repeat: &storage.RepeatConfig{
			Simple: &recurrence.SimpleRule{Unit: recurrence.UnitDaily},
			From:   recurrence.RepeatFromDueDate,
			End:    recurrence.EndAfterOccurrences{Count: 10},
		},
	}

	comp, err := EncodeTodo(task)
	require.NoError(t, err)
	assert.Equal(t, ical.CompToDo, comp.Name)

	uid, err := comp.Props.Text(ical.PropUID)
	require.NoError(t, err)
	assert.Equal(t, "task-1", uid)

	summary, err := comp.Props.Text(ical.PropSummary)
	require.NoError(t, err)
	assert.Equal(t, "water the plants", summary)

	dueProp := comp.Props.Get(ical.PropDue)
	require.NotNil(t, dueProp)
	assert.Equal(t, "20260106", dueProp.Value, "all-day due dates are date-only values")
	assert.Equal(t, "DATE", dueProp.Params.Get(ical.ParamValue))

	rruleProp := comp.Props.Get(ical.PropRecurrenceRule)
	require.NotNil(t, rruleProp)
	assert.Contains(t, rruleProp.Value, "FREQ=DAILY")
	assert.Contains(t, rruleProp.Value, "COUNT=10")
}

func TestEncodeTodoWithoutRecurrence(t *testing.T) {
	task := &storage.Task{ID: "task-2", Title: "one-off"}

	comp, err := EncodeTodo(task)
	require.NoError(t, err)
	assert.Nil(t, comp.Props.Get(ical.PropRecurrenceRule))
	assert.Nil(t, comp.Props.Get(ical.PropDue))
}

func todoWithRRule(value string) *ical.Component {
	comp := &ical.Component{
		Name:  ical.CompToDo,
		Props: make(ical.Props),
	}
	prop := ical.NewProp(ical.PropRecurrenceRule)
	prop.Value = value
	comp.Props.Set(prop)
	return comp
}

func TestDecodeRepeat(t *testing.T) {
	t.Run("no rrule decodes to none", func(t *testing.T) {
		comp := &ical.Component{Name: ical.CompToDo, Props: make(ical.Props)}
		repeat, err := DecodeRepeat(comp)
		require.NoError(t, err)
		assert.True(t, repeat.IsAbsent())
	})

	t.Run("plain daily decodes as a simple rule", func(t *testing.T) {
		repeat, err := DecodeRepeat(todoWithRRule("FREQ=DAILY"))
		require.NoError(t, err)

		cfg, ok := repeat.Get()
		require.True(t, ok)
		require.NotNil(t, cfg.Simple)
		assert.Equal(t, recurrence.UnitDaily, cfg.Simple.Unit)
		assert.Equal(t, recurrence.EndNever{}, cfg.End)
	})

	t.Run("weekly with byday decodes as a custom rule", func(t *testing.T) {
		repeat, err := DecodeRepeat(todoWithRRule("FREQ=WEEKLY;INTERVAL=2;BYDAY=MO,FR;COUNT=8"))
		require.NoError(t, err)

		cfg, ok := repeat.Get()
		require.True(t, ok)
		require.NotNil(t, cfg.Custom)
		assert.Equal(t, recurrence.UnitWeeks, cfg.Custom.Unit)
		assert.Equal(t, 2, cfg.Custom.Interval)
		assert.Equal(t, []string{"monday", "friday"}, cfg.Custom.Weekdays)
		assert.Equal(t, recurrence.EndAfterOccurrences{Count: 8}, cfg.End)
	})

	t.Run("monthly nth weekday decodes to same-weekday mode", func(t *testing.T) {
		repeat, err := DecodeRepeat(todoWithRRule("FREQ=MONTHLY;INTERVAL=2;BYDAY=3TU"))
		require.NoError(t, err)

		cfg, ok := repeat.Get()
		require.True(t, ok)
		require.NotNil(t, cfg.Custom)
		assert.Equal(t, recurrence.MonthSameWeekday, cfg.Custom.MonthMode)
		require.NotNil(t, cfg.Custom.MonthWeekday)
		assert.Equal(t, "tuesday", cfg.Custom.MonthWeekday.Weekday)
		assert.Equal(t, 3, cfg.Custom.MonthWeekday.WeekOfMonth)
	})

	t.Run("yearly with until decodes an end date", func(t *testing.T) {
		repeat, err := DecodeRepeat(todoWithRRule("FREQ=YEARLY;BYMONTH=12;BYMONTHDAY=25;UNTIL=20301231T235959Z"))
		require.NoError(t, err)

		cfg, ok := repeat.Get()
		require.True(t, ok)
		require.NotNil(t, cfg.Custom)
		assert.Equal(t, 12, cfg.Custom.Month)
		assert.Equal(t, 25, cfg.Custom.Day)
		assert.Equal(t, recurrence.EndOnDate{Date: mustDate(t, "2030-12-31")}, cfg.End)
	})

	t.Run("garbage rrule is an error", func(t *testing.T) {
		_, err := DecodeRepeat(todoWithRRule("FREQ=SOMETIMES"))
		assert.Error(t, err)
	})
}

func TestRepeatRoundTrip(t *testing.T) {
	original := &storage.RepeatConfig{
		Custom: &recurrence.CustomRule{
			Interval: 2,
			Unit:     recurrence.UnitWeeks,
			Weekdays: []string{"monday", "friday"},
		},
		End: recurrence.EndAfterOccurrences{Count: 8},
	}

	value, err := repeatRuleString(original)
	require.NoError(t, err)

	decoded, err := DecodeRepeat(todoWithRRule(value))
	require.NoError(t, err)

	cfg, ok := decoded.Get()
	require.True(t, ok)
	require.NotNil(t, cfg.Custom)
	assert.Equal(t, original.Custom.Interval, cfg.Custom.Interval)
	assert.Equal(t, original.Custom.Weekdays, cfg.Custom.Weekdays)
	assert.Equal(t, original.End, cfg.End)
}
