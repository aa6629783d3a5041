// memory based implementation for testing purposes
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/solacek/librecur/storage"
)

// Store implements storage.Storage interface using an in-memory map
type Store struct {
	mu    sync.RWMutex
	tasks map[string]*storage.Task
}

// New creates a new in-memory storage
func New() *Store {
	return &Store{
		tasks: make(map[string]*storage.Task),
	}
}

func (s *Store) GetTask(_ context.Context, taskID string) (*storage.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[taskID]
	if !ok {
		return nil, &storage.Error{
			Type:    storage.ErrNotFound,
			Message: "task not found",
		}
	}

	return task, nil
}

func (s *Store) ListTasks(_ context.Context, opts *storage.ListOptions) ([]*storage.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var tasks []*storage.Task
	for _, task := range s.tasks {
		if opts != nil {
			if task.Completed && !opts.IncludeCompleted {
				continue
			}
			if opts.DueBefore != nil {
				if task.DueDate == nil || !task.DueDate.Before(*opts.DueBefore) {
					continue
				}
			}
		}

		tasks = append(tasks, task)
	}

	return tasks, nil
}

func (s *Store) CreateTask(_ context.Context, task *storage.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if task.Title == "" {
		return &storage.Error{
			Type:    storage.ErrInvalidInput,
			Message: "task title is required",
		}
	}

	if task.ID == "" {
		task.ID = uuid.NewString()
	} else if _, exists := s.tasks[task.ID]; exists {
		return &storage.Error{
			Type:    storage.ErrAlreadyExists,
			Message: "task already exists",
		}
	}

	now := time.Now()
	task.Created = now
	task.Modified = now
	s.tasks[task.ID] = task

	return nil
}

func (s *Store) UpdateTask(_ context.Context, task *storage.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[task.ID]; !exists {
		return &storage.Error{
			Type:    storage.ErrNotFound,
			Message: "task not found",
		}
	}

	task.Modified = time.Now()
	s.tasks[task.ID] = task

	return nil
}

func (s *Store) DeleteTask(_ context.Context, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[taskID]; !exists {
		return &storage.Error{
			Type:    storage.ErrNotFound,
			Message: "task not found",
		}
	}

	delete(s.tasks, taskID)
	return nil
}
