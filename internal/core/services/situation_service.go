package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/SscSPs/cabinet_contabil_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cabinet_contabil_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cabinet_contabil_app/internal/core/ports/services"
)

type situationService struct {
	BaseService
	taskRepo portsrepo.TaskReader
}

// NewSituationService creates the situation service.
func NewSituationService(taskRepo portsrepo.TaskReader) portssvc.SituationSvc {
	return &situationService{taskRepo: taskRepo}
}

var _ portssvc.SituationSvc = (*situationService)(nil)

// GetSituation loads the tasks the viewer may see and rolls them up per
// client and month. A nil viewer gets no rows.
func (s *situationService) GetSituation(ctx context.Context, viewer *domain.Viewer, filter portssvc.SituationFilter) ([]domain.SituationRow, error) {
	if viewer == nil {
		return []domain.SituationRow{}, nil
	}

	var assignee *int64
	if !viewer.Role.SeesAllTasks() {
		assignee = &viewer.UserID
	}
	tasks, err := s.taskRepo.ListTaskViews(ctx, assignee)
	if err != nil {
		s.LogError(ctx, err, "Failed to load tasks for situation")
		return nil, err
	}

	rows := domain.ComputeSituation(tasks, viewer)

	firma := strings.ToLower(strings.TrimSpace(filter.Firma))
	if firma == "" && filter.Period == nil {
		return rows, nil
	}
	filtered := make([]domain.SituationRow, 0, len(rows))
	for _, row := range rows {
		if firma != "" && !strings.Contains(strings.ToLower(row.Firma), firma) {
			continue
		}
		if filter.Period != nil && row.Period != *filter.Period {
			continue
		}
		filtered = append(filtered, row)
	}
	s.LogDebug(ctx, "Situation computed", slog.Int("rows", len(filtered)), slog.Int("tasks", len(tasks)))
	return filtered, nil
}
