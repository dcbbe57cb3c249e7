package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/cabinet_contabil_app/internal/core/domain"
)

// TaskCursor is the keyset position after which the next page starts.
type TaskCursor struct {
	Date   *time.Time
	TaskID int64
}

// TaskReader defines read operations for tasks
type TaskReader interface {
	FindTaskByID(ctx context.Context, taskID int64) (*domain.Task, error)

	// FindTaskByKey returns the first task with the exact (client, title, date),
	// ErrNotFound when none exists.
	FindTaskByKey(ctx context.Context, clientID int64, title string, date time.Time) (*domain.Task, error)

	// ListTasks returns up to limit tasks ordered by date desc (nulls last), id desc.
	ListTasks(ctx context.Context, filter domain.TaskFilter, limit int, after *TaskCursor) ([]domain.TaskView, error)

	// ListTaskViews returns every task joined with client and assignee data.
	// A non-nil assigneeID restricts the result to that user's tasks.
	ListTaskViews(ctx context.Context, assigneeID *int64) ([]domain.TaskView, error)
}

// TaskWriter defines write operations for tasks
type TaskWriter interface {
	// SaveTask inserts the task and sets its ID and timestamps.
	SaveTask(ctx context.Context, task *domain.Task) error
	UpdateTask(ctx context.Context, task *domain.Task) error
	DeleteTask(ctx context.Context, taskID int64) error
}

// TaskRepositoryFacade combines all task-related repository interfaces
type TaskRepositoryFacade interface {
	TaskReader
	TaskWriter
}
