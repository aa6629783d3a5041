package recurrence

import (
	"time"

	"github.com/samber/mo"
)

// ResolveAnchor picks the base date that unit advancement is applied to.
//
// With a due date present, the base is the due date (RepeatFromDueDate) or
// the completion timestamp (RepeatFromCompletion); the anchor is then the
// base's calendar date combined with the due date's time-of-day, so a series
// re-anchored to its completion keeps the originally scheduled clock time.
// Without a due date the completion timestamp is the anchor as-is.
//
// The date/time composition always uses the UTC calendar. All-day tasks are
// stored at UTC midnight; reading their date or clock components through a
// local calendar shifts them by the local offset and lands the anchor on the
// wrong day (a daily all-day task once advanced two days instead of one this
// way). No ambient location is consulted anywhere in this function.
func ResolveAnchor(due mo.Option[time.Time], completedAt time.Time, from RepeatFrom) time.Time {
	dueDate, ok := due.Get()
	if !ok {
		return completedAt
	}

	base := dueDate
	if from == RepeatFromCompletion {
		base = completedAt
	}

	b := base.UTC()
	d := dueDate.UTC()
	return time.Date(b.Year(), b.Month(), b.Day(), d.Hour(), d.Minute(), d.Second(), d.Nanosecond(), time.UTC)
}
