package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/solacek/librecur/recurrence"
	"github.com/solacek/librecur/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskCRUD(t *testing.T) {
	store := New()
	ctx := context.Background()

	due := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	task := &storage.Task{
		Title:   "water the plants",
		DueDate: &due,
		AllDay:  true,
		Repeat: &storage.RepeatConfig{
			Simple: &recurrence.SimpleRule{Unit: recurrence.UnitWeekly},
			From:   recurrence.RepeatFromDueDate,
			End:    recurrence.EndNever{},
		},
	}

	require.NoError(t, store.CreateTask(ctx, task))
	assert.NotEmpty(t, task.ID, "create assigns an ID")
	assert.False(t, task.Created.IsZero())

	got, err := store.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "water the plants", got.Title)

	got.OccurrenceCount = 1
	require.NoError(t, store.UpdateTask(ctx, got))

	got, err = store.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.OccurrenceCount)

	require.NoError(t, store.DeleteTask(ctx, task.ID))
	_, err = store.GetTask(ctx, task.ID)
	assertStorageError(t, err, storage.ErrNotFound)
}

func TestCreateTaskValidation(t *testing.T) {
	store := New()
	ctx := context.Background()

	err := store.CreateTask(ctx, &storage.Task{})
	assertStorageError(t, err, storage.ErrInvalidInput)

	task := &storage.Task{ID: "fixed", Title: "one"}
	require.NoError(t, store.CreateTask(ctx, task))

	err = store.CreateTask(ctx, &storage.Task{ID: "fixed", Title: "two"})
	assertStorageError(t, err, storage.ErrAlreadyExists)
}

func TestUpdateAndDeleteMissingTask(t *testing.T) {
	store := New()
	ctx := context.Background()

	err := store.UpdateTask(ctx, &storage.Task{ID: "nope", Title: "x"})
	assertStorageError(t, err, storage.ErrNotFound)

	err = store.DeleteTask(ctx, "nope")
	assertStorageError(t, err, storage.ErrNotFound)
}

func TestListTasks(t *testing.T) {
	store := New()
	ctx := context.Background()

	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)

	open := &storage.Task{Title: "open", DueDate: &early}
	done := &storage.Task{Title: "done", DueDate: &early, Completed: true}
	future := &storage.Task{Title: "future", DueDate: &late}
	undated := &storage.Task{Title: "undated"}

	for _, task := range []*storage.Task{open, done, future, undated} {
		require.NoError(t, store.CreateTask(ctx, task))
	}

	tasks, err := store.ListTasks(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, tasks, 4)

	tasks, err = store.ListTasks(ctx, &storage.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, tasks, 3, "completed tasks excluded by default")

	cutoff := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	tasks, err = store.ListTasks(ctx, &storage.ListOptions{DueBefore: &cutoff, IncludeCompleted: true})
	require.NoError(t, err)
	assert.Len(t, tasks, 2, "due-before filter keeps dated tasks before the cutoff")
}

func assertStorageError(t *testing.T, err error, expected storage.ErrorType) {
	t.Helper()
	require.Error(t, err)
	var storageErr *storage.Error
	require.True(t, errors.As(err, &storageErr))
	assert.Equal(t, expected, storageErr.Type)
}
