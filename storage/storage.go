package storage

import "context"

// Storage is the task store collaborating with the recurrence engine: it
// supplies the due date, occurrence count and repeat configuration for a
// completion event and receives the calculated result back. Implementations
// are responsible for serializing the read-modify-write of task state; the
// engine itself holds no state between calls.
type Storage interface {
	GetTask(ctx context.Context, taskID string) (*Task, error)
	ListTasks(ctx context.Context, opts *ListOptions) ([]*Task, error)
	CreateTask(ctx context.Context, task *Task) error
	UpdateTask(ctx context.Context, task *Task) error
	DeleteTask(ctx context.Context, taskID string) error
}
