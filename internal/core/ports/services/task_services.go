package services

import (
	"context"

	"github.com/SscSPs/cabinet_contabil_app/internal/core/domain"
	"github.com/SscSPs/cabinet_contabil_app/internal/dto"
)

// TaskPage is one page of a task listing.
type TaskPage struct {
	Tasks     []domain.TaskView
	NextToken *string
}

// TaskReaderSvc defines read operations for tasks
type TaskReaderSvc interface {
	// GetTask returns the task when the viewer may see it.
	GetTask(ctx context.Context, taskID int64, viewer *domain.Viewer) (*domain.Task, error)
	ListTasks(ctx context.Context, params dto.ListTasksParams, viewer *domain.Viewer) (*TaskPage, error)
}

// TaskWriterSvc defines write operations for tasks
type TaskWriterSvc interface {
	CreateTask(ctx context.Context, req dto.CreateTaskRequest) (*domain.Task, error)
	UpdateTask(ctx context.Context, taskID int64, req dto.UpdateTaskRequest, viewer *domain.Viewer) (*domain.Task, error)
	DeleteTask(ctx context.Context, taskID int64, viewer *domain.Viewer) error
}

// TaskSvcFacade combines all task-related service interfaces
type TaskSvcFacade interface {
	TaskReaderSvc
	TaskWriterSvc
}

// GenerationOptions tunes a generator run.
type GenerationOptions struct {
	// SkipExisting reports tasks already present for (client, title, date)
	// as skipped instead of inserting a duplicate.
	SkipExisting bool
}

// TaskGenerationSvc materializes recurring tasks.
type TaskGenerationSvc interface {
	// GenerateByFrequency creates one task per matching (rule, client) for active
	// rules of the frequency, dated today or the first day of period when given.
	GenerateByFrequency(ctx context.Context, frequency domain.Frequency, period *domain.Period, opts GenerationOptions) (*domain.GenerationReport, error)

	// GenerateWithRules creates the two declaration tasks per client, noting the
	// titles of every active rule that applies for the period.
	GenerateWithRules(ctx context.Context, period domain.Period, opts GenerationOptions) (*domain.GenerationReport, error)

	// GenerateFixedTitles creates the four monthly document tasks for every client.
	GenerateFixedTitles(ctx context.Context, period domain.Period, opts GenerationOptions) (*domain.GenerationReport, error)

	// GenerateConditionalNotes adds note to the client's declaration tasks,
	// creating them when missing.
	GenerateConditionalNotes(ctx context.Context, clientID int64, period domain.Period, note string) (*domain.NoteReport, error)
}

// SituationFilter narrows the rollup.
type SituationFilter struct {
	Firma  string
	Period *domain.Period
}

// SituationSvc computes the monthly rollup.
type SituationSvc interface {
	GetSituation(ctx context.Context, viewer *domain.Viewer, filter SituationFilter) ([]domain.SituationRow, error)
}
