package recurrence

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/samber/mo"
)

// Calculator computes the single next occurrence of a recurring task from a
// completion event. It is stateless between calls (the optional result cache
// only memoizes pure results) and safe for concurrent use.
type Calculator struct {
	config CalculatorConfig
	cache  *resultCache
	logger *slog.Logger
}

// NewCalculator creates a calculator with default configuration. A nil logger
// falls back to slog.Default.
func NewCalculator(logger *slog.Logger) *Calculator {
	return NewCalculatorWithConfig(DefaultCalculatorConfig, logger)
}

// NextSimple computes the next occurrence for a fixed-unit rule.
//
// The occurrence count is incremented before any termination check, so
// Result.OccurrenceCount is state.Count+1 on every path. An unrecognized unit
// terminates the series fail-closed rather than returning an error.
func (c *Calculator) NextSimple(rule SimpleRule, state OccurrenceState, completedAt time.Time, from RepeatFrom, end EndCondition) Result {
	key := ""
	if c.cache != nil {
		key = cacheKey("simple", state, completedAt, from, end, string(rule.Unit))
		if result, ok := c.cache.get(key); ok {
			return result
		}
	}

	newCount := state.Count + 1
	anchor := ResolveAnchor(state.DueDate, completedAt, from)

	candidate, ok := advanceSimple(rule.Unit, anchor)
	if !ok {
		c.logger.Warn("terminating series: unrecognized simple unit",
			"unit", rule.Unit)
		return c.store(key, terminated(newCount))
	}

	c.logger.Debug("advanced simple rule",
		"unit", rule.Unit,
		"anchor", anchor,
		"candidate", candidate)

	return c.store(key, c.finish(candidate, newCount, end))
}

// NextCustom computes the next occurrence for a user-defined rule.
//
// A structurally incomplete rule (missing or unknown unit, non-positive
// interval, malformed weekday options) terminates the series fail-closed:
// Terminated=true, no next date, count still incremented. Callers that need
// to tell a malformed rule apart from a legitimately finished series must
// run CustomRule.Validate before calling.
func (c *Calculator) NextCustom(rule CustomRule, state OccurrenceState, completedAt time.Time, from RepeatFrom, end EndCondition) Result {
	key := ""
	if c.cache != nil {
		key = cacheKey("custom", state, completedAt, from, end, customRuleKey(rule))
		if result, ok := c.cache.get(key); ok {
			return result
		}
	}

	newCount := state.Count + 1

	if err := rule.Validate(); err != nil {
		c.logger.Warn("terminating series: malformed custom rule",
			"error", err)
		return c.store(key, terminated(newCount))
	}

	anchor := ResolveAnchor(state.DueDate, completedAt, from)

	candidate, ok := c.advanceCustom(rule, anchor)
	if !ok {
		c.logger.Warn("terminating series: no matching weekday within search bound",
			"weekdays", rule.Weekdays,
			"bound_days", c.config.MaxWeekdaySearchDays)
		return c.store(key, terminated(newCount))
	}

	c.logger.Debug("advanced custom rule",
		"unit", rule.Unit,
		"interval", rule.Interval,
		"anchor", anchor,
		"candidate", candidate)

	return c.store(key, c.finish(candidate, newCount, end))
}

// CacheStats reports statistics for the result cache. Zero stats when caching
// is disabled.
func (c *Calculator) CacheStats() CacheStats {
	if c.cache == nil {
		return CacheStats{}
	}
	return c.cache.stats()
}

// Close releases the result cache's background resources. Safe to call on a
// calculator with caching disabled.
func (c *Calculator) Close() {
	if c.cache != nil {
		c.cache.close()
	}
}

func (c *Calculator) finish(candidate time.Time, newCount int, end EndCondition) Result {
	if shouldTerminate(candidate, newCount, end) {
		return terminated(newCount)
	}
	return Result{
		NextDue:         mo.Some(candidate),
		Terminated:      false,
		OccurrenceCount: newCount,
	}
}

func (c *Calculator) store(key string, result Result) Result {
	if c.cache != nil {
		c.cache.set(key, result)
	}
	return result
}

func terminated(newCount int) Result {
	return Result{
		NextDue:         mo.None[time.Time](),
		Terminated:      true,
		OccurrenceCount: newCount,
	}
}

func customRuleKey(rule CustomRule) string {
	parts := []string{
		strconv.Itoa(rule.Interval),
		string(rule.Unit),
		strings.Join(rule.Weekdays, ","),
		string(rule.MonthMode),
		strconv.Itoa(rule.Month),
		strconv.Itoa(rule.Day),
	}
	if rule.MonthWeekday != nil {
		parts = append(parts, fmt.Sprintf("%s/%d", rule.MonthWeekday.Weekday, rule.MonthWeekday.WeekOfMonth))
	}
	return strings.Join(parts, "|")
}
