package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/cabinet_contabil_app/internal/apperrors"
	"github.com/SscSPs/cabinet_contabil_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cabinet_contabil_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cabinet_contabil_app/internal/core/ports/services"
	"github.com/SscSPs/cabinet_contabil_app/internal/dto"
	"github.com/SscSPs/cabinet_contabil_app/internal/utils/pagination"
)

type taskService struct {
	BaseService
	taskRepo portsrepo.TaskRepositoryFacade
}

// NewTaskService creates the task service.
func NewTaskService(taskRepo portsrepo.TaskRepositoryFacade) portssvc.TaskSvcFacade {
	return &taskService{taskRepo: taskRepo}
}

var _ portssvc.TaskSvcFacade = (*taskService)(nil)

func taskNotFound(taskID int64) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("Task with id %d not found", taskID))
}

// findVisible loads a task and hides it from viewers who may not see it.
func (s *taskService) findVisible(ctx context.Context, taskID int64, viewer *domain.Viewer) (*domain.Task, error) {
	if viewer == nil {
		return nil, apperrors.NewUnauthorizedError("authentication required")
	}
	task, err := s.taskRepo.FindTaskByID(ctx, taskID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find task", slog.Int64("task_id", taskID))
		}
		return nil, err
	}
	if !viewer.CanSee(*task) {
		return nil, taskNotFound(taskID)
	}
	return task, nil
}

func (s *taskService) GetTask(ctx context.Context, taskID int64, viewer *domain.Viewer) (*domain.Task, error) {
	return s.findVisible(ctx, taskID, viewer)
}

func (s *taskService) ListTasks(ctx context.Context, params dto.ListTasksParams, viewer *domain.Viewer) (*portssvc.TaskPage, error) {
	if viewer == nil {
		return nil, apperrors.NewUnauthorizedError("authentication required")
	}

	filter := domain.TaskFilter{ClientID: params.ClientID, Done: params.Done}
	if params.Month != "" || params.Year != "" {
		p, err := domain.ParsePeriod(params.Month, params.Year)
		if err != nil {
			return nil, apperrors.NewValidationFailedError(err.Error())
		}
		filter.Period = &p
	}
	if !viewer.Role.SeesAllTasks() {
		filter.AssigneeID = &viewer.UserID
	}

	var after *portsrepo.TaskCursor
	if params.NextToken != "" {
		date, id, err := pagination.DecodeTaskToken(params.NextToken)
		if err != nil {
			return nil, apperrors.NewValidationFailedError(err.Error())
		}
		after = &portsrepo.TaskCursor{Date: date, TaskID: id}
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	// one extra row tells whether another page exists
	tasks, err := s.taskRepo.ListTasks(ctx, filter, limit+1, after)
	if err != nil {
		s.LogError(ctx, err, "Failed to list tasks")
		return nil, err
	}

	page := &portssvc.TaskPage{Tasks: tasks}
	if len(tasks) > limit {
		page.Tasks = tasks[:limit]
		last := page.Tasks[limit-1]
		token := pagination.EncodeTaskToken(last.Date, last.TaskID)
		page.NextToken = &token
	}
	if page.Tasks == nil {
		page.Tasks = []domain.TaskView{}
	}
	s.LogDebug(ctx, "Tasks listed", slog.Int("count", len(page.Tasks)))
	return page, nil
}

func (s *taskService) CreateTask(ctx context.Context, req dto.CreateTaskRequest) (*domain.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.NewValidationFailedError("title is required")
	}
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return nil, apperrors.NewValidationFailedError("invalid date, expected YYYY-MM-DD")
	}

	task := domain.Task{
		Title:     title,
		Date:      date,
		Notes:     req.Notes,
		Objective: req.Objective,
		Blocked:   req.Blocked,
		Done:      req.Done,
		UserID:    req.UserID,
		ClientID:  req.ClientID,
	}
	if req.Stage != nil && *req.Stage != "" {
		stage := domain.Stage(*req.Stage)
		if !stage.IsValid() {
			return nil, apperrors.NewValidationFailedError("invalid stage " + *req.Stage)
		}
		task.Stage = &stage
	}

	if err := s.taskRepo.SaveTask(ctx, &task); err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to save task", slog.String("title", task.Title), slog.Int64("client_id", task.ClientID))
		}
		return nil, err
	}
	s.LogInfo(ctx, "Task created", slog.Int64("task_id", task.TaskID), slog.Int64("client_id", task.ClientID))
	return &task, nil
}

func (s *taskService) UpdateTask(ctx context.Context, taskID int64, req dto.UpdateTaskRequest, viewer *domain.Viewer) (*domain.Task, error) {
	task, err := s.findVisible(ctx, taskID, viewer)
	if err != nil {
		return nil, err
	}

	if req.UserID != nil && *req.UserID != task.UserID && !viewer.Role.SeesAllTasks() {
		return nil, apperrors.NewForbiddenError("only ADMIN or MANAGER may reassign tasks")
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperrors.NewValidationFailedError("title cannot be empty")
		}
		if title != task.Title {
			task.Title = title
			task.Stage = nil
			if stage, ok := domain.StageForTitle(title); ok {
				task.Stage = &stage
			}
		}
	}
	if req.Stage != nil {
		task.Stage = nil
		if *req.Stage != "" {
			stage := domain.Stage(*req.Stage)
			if !stage.IsValid() {
				return nil, apperrors.NewValidationFailedError("invalid stage " + *req.Stage)
			}
			task.Stage = &stage
		}
	}
	if req.Date != nil {
		date, err := dto.ParseDate(req.Date)
		if err != nil {
			return nil, apperrors.NewValidationFailedError("invalid date, expected YYYY-MM-DD")
		}
		task.Date = date
	}
	if req.Notes != nil {
		task.Notes = req.Notes
	}
	if req.Objective != nil {
		task.Objective = req.Objective
	}
	if req.Blocked != nil {
		task.Blocked = req.Blocked
	}
	if req.Done != nil {
		task.Done = *req.Done
	}
	if req.UserID != nil {
		task.UserID = *req.UserID
	}

	if err := s.taskRepo.UpdateTask(ctx, task); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to update task", slog.Int64("task_id", taskID))
		}
		return nil, err
	}
	s.LogInfo(ctx, "Task updated", slog.Int64("task_id", taskID))
	return task, nil
}

func (s *taskService) DeleteTask(ctx context.Context, taskID int64, viewer *domain.Viewer) error {
	if _, err := s.findVisible(ctx, taskID, viewer); err != nil {
		return err
	}
	if err := s.taskRepo.DeleteTask(ctx, taskID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete task", slog.Int64("task_id", taskID))
		}
		return err
	}
	s.LogInfo(ctx, "Task deleted", slog.Int64("task_id", taskID))
	return nil
}
