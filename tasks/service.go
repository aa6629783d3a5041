package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/mo"
	"github.com/solacek/librecur/recurrence"
	"github.com/solacek/librecur/storage"
)

// Service handles task completion events: it reads the task's occurrence
// state, runs the recurrence calculator, and writes the result back through
// the store. One read and one write per call; serializing concurrent
// completions of the same task is the store's concern.
type Service struct {
	store  storage.Storage
	calc   *recurrence.Calculator
	logger *slog.Logger
}

// NewService creates a completion service. A nil logger falls back to
// slog.Default.
func NewService(store storage.Storage, calc *recurrence.Calculator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  store,
		calc:   calc,
		logger: logger,
	}
}

// Complete marks a task completed at the given timestamp. Non-recurring tasks
// are simply closed. Recurring tasks are advanced: the task reappears with
// its next due date and incremented occurrence count, or is closed for good
// when the series terminates. Returns the updated task.
func (s *Service) Complete(ctx context.Context, taskID string, completedAt time.Time) (*storage.Task, error) {
	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("load task: %w", err)
	}

	if !task.Repeat.Recurring() {
		task.Completed = true
		task.CompletedAt = &completedAt
		if err := s.store.UpdateTask(ctx, task); err != nil {
			return nil, fmt.Errorf("update task: %w", err)
		}
		return task, nil
	}

	state := recurrence.OccurrenceState{
		Count:   task.OccurrenceCount,
		DueDate: mo.PointerToOption(task.DueDate),
	}

	var result recurrence.Result
	if task.Repeat.Simple != nil {
		result = s.calc.NextSimple(*task.Repeat.Simple, state, completedAt, task.Repeat.From, task.Repeat.End)
	} else {
		result = s.calc.NextCustom(*task.Repeat.Custom, state, completedAt, task.Repeat.From, task.Repeat.End)
	}

	task.OccurrenceCount = result.OccurrenceCount
	if next, ok := result.NextDue.Get(); ok {
		task.DueDate = &next
		task.Completed = false
		task.CompletedAt = nil
		s.logger.Info("scheduled next occurrence",
			"task_id", task.ID,
			"next_due", next,
			"occurrence_count", result.OccurrenceCount)
	} else {
		task.DueDate = nil
		task.Completed = true
		task.CompletedAt = &completedAt
		s.logger.Info("recurring series finished",
			"task_id", task.ID,
			"occurrence_count", result.OccurrenceCount)
	}

	if err := s.store.UpdateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	return task, nil
}
