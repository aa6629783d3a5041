package storage

import (
	"fmt"
	"time"

	"github.com/solacek/librecur/recurrence"
)

// Error types
type ErrorType string

const (
	ErrNotFound      ErrorType = "not_found"
	ErrAlreadyExists ErrorType = "already_exists"
	ErrInvalidInput  ErrorType = "invalid_input"
)

// Error represents a storage-related error
type Error struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// RepeatConfig attaches a recurrence rule to a task. Exactly one of Simple or
// Custom is set.
type RepeatConfig struct {
	Simple *recurrence.SimpleRule
	Custom *recurrence.CustomRule
	From   recurrence.RepeatFrom
	End    recurrence.EndCondition
}

// Recurring reports whether the config actually carries a rule.
func (r *RepeatConfig) Recurring() bool {
	return r != nil && (r.Simple != nil || r.Custom != nil)
}

// Task represents a single task record
type Task struct {
	ID    string
	Title string
	Notes string

	// DueDate is nil for tasks without a due date. All-day tasks store it
	// at UTC midnight.
	DueDate *time.Time
	AllDay  bool

	Completed   bool
	CompletedAt *time.Time

	// OccurrenceCount is the number of occurrences a recurring series has
	// produced so far. Monotonically non-decreasing.
	OccurrenceCount int
	Repeat          *RepeatConfig

	Created  time.Time
	Modified time.Time
}

// ListOptions provides options for listing tasks
type ListOptions struct {
	// DueBefore filters to tasks due strictly before the given time
	DueBefore *time.Time

	// IncludeCompleted includes completed tasks in the listing
	IncludeCompleted bool
}
