package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/cabinet_contabil_app/internal/apperrors"
	"github.com/SscSPs/cabinet_contabil_app/internal/core/domain"
	portssvc "github.com/SscSPs/cabinet_contabil_app/internal/core/ports/services"
	"github.com/SscSPs/cabinet_contabil_app/internal/core/services"
	"github.com/SscSPs/cabinet_contabil_app/internal/dto"
	"github.com/stretchr/testify/suite"
)

type TaskServiceTestSuite struct {
	suite.Suite
	repo    *fakeTaskRepository
	service portssvc.TaskSvcFacade
	admin   *domain.Viewer
	ana     *domain.Viewer
}

func (s *TaskServiceTestSuite) SetupTest() {
	s.repo = newFakeTaskRepository()
	s.service = services.NewTaskService(s.repo)
	s.admin = &domain.Viewer{UserID: 1, Role: domain.RoleAdmin}
	s.ana = &domain.Viewer{UserID: 3, Role: domain.RoleUser}
}

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}

func (s *TaskServiceTestSuite) create(title, date string, userID int64) *domain.Task {
	req := dto.CreateTaskRequest{Title: title, UserID: userID, ClientID: 7}
	if date != "" {
		req.Date = &date
	}
	task, err := s.service.CreateTask(context.Background(), req)
	s.Require().NoError(err)
	return task
}

func (s *TaskServiceTestSuite) TestCreateTask_ExplicitStage() {
	stage := "lunaPrintata"
	date := "2025-03-01"
	task, err := s.service.CreateTask(context.Background(), dto.CreateTaskRequest{
		Title: "Printare registre", Date: &date, Stage: &stage, UserID: 3, ClientID: 7,
	})

	s.Require().NoError(err)
	s.Equal(domain.StageLunaPrintata, *task.Stage)
	s.Equal(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), *task.Date)
}

func (s *TaskServiceTestSuite) TestGetTask_HiddenFromOtherUsers() {
	task := s.create("Avem acte", "2025-03-01", 4)

	_, err := s.service.GetTask(context.Background(), task.TaskID, s.ana)
	s.ErrorIs(err, apperrors.ErrNotFound)

	got, err := s.service.GetTask(context.Background(), task.TaskID, s.admin)
	s.Require().NoError(err)
	s.Equal(task.TaskID, got.TaskID)

	_, err = s.service.GetTask(context.Background(), task.TaskID, nil)
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *TaskServiceTestSuite) TestListTasks_PaginatesNewestFirst() {
	s.create("Avem acte", "2025-01-01", 3)
	s.create("Avem acte", "2025-02-01", 3)
	s.create("Avem acte", "2025-03-01", 3)
	s.create("Fara data", "", 3)
	s.create("Alt user", "2025-04-01", 4)

	page, err := s.service.ListTasks(context.Background(), dto.ListTasksParams{Limit: 2}, s.ana)
	s.Require().NoError(err)
	s.Require().Len(page.Tasks, 2)
	s.Equal(time.March, page.Tasks[0].Date.Month())
	s.Equal(time.February, page.Tasks[1].Date.Month())
	s.Require().NotNil(page.NextToken)

	page, err = s.service.ListTasks(context.Background(), dto.ListTasksParams{Limit: 2, NextToken: *page.NextToken}, s.ana)
	s.Require().NoError(err)
	s.Require().Len(page.Tasks, 2)
	s.Equal(time.January, page.Tasks[0].Date.Month())
	s.Nil(page.Tasks[1].Date)
	s.Nil(page.NextToken)
}

func (s *TaskServiceTestSuite) TestListTasks_FiltersByMonth() {
	s.create("Avem acte", "2025-01-01", 3)
	s.create("Depus declaratii", "2025-02-25", 3)

	page, err := s.service.ListTasks(context.Background(), dto.ListTasksParams{Month: "2", Year: "2025", Limit: 50}, s.admin)

	s.Require().NoError(err)
	s.Require().Len(page.Tasks, 1)
	s.Equal("Depus declaratii", page.Tasks[0].Title)
}

func (s *TaskServiceTestSuite) TestListTasks_InvalidInput() {
	_, err := s.service.ListTasks(context.Background(), dto.ListTasksParams{Month: "2", Limit: 10}, s.admin)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.service.ListTasks(context.Background(), dto.ListTasksParams{NextToken: "%%%", Limit: 10}, s.admin)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *TaskServiceTestSuite) TestUpdateTask_PartialAndReassignRules() {
	task := s.create("Verificat acte", "2025-03-01", 3)
	done := true
	notes := "lipseste extras"

	updated, err := s.service.UpdateTask(context.Background(), task.TaskID, dto.UpdateTaskRequest{Done: &done, Notes: &notes}, s.ana)
	s.Require().NoError(err)
	s.True(updated.Done)
	s.Equal("Verificat acte", updated.Title)
	s.Equal(notes, *updated.Notes)

	other := int64(4)
	_, err = s.service.UpdateTask(context.Background(), task.TaskID, dto.UpdateTaskRequest{UserID: &other}, s.ana)
	s.ErrorIs(err, apperrors.ErrForbidden)

	updated, err = s.service.UpdateTask(context.Background(), task.TaskID, dto.UpdateTaskRequest{UserID: &other}, s.admin)
	s.Require().NoError(err)
	s.Equal(other, updated.UserID)
}

func (s *TaskServiceTestSuite) TestUpdateTask_RenameReclassifiesStage() {
	stage := string(domain.StageLunaPrintata)
	date := "2025-03-01"
	task, err := s.service.CreateTask(context.Background(), dto.CreateTaskRequest{
		Title: domain.TitleLunaPrintata, Date: &date, Stage: &stage, UserID: 3, ClientID: 7,
	})
	s.Require().NoError(err)

	title := domain.TitleDepusDeclaratii
	done := true
	updated, err := s.service.UpdateTask(context.Background(), task.TaskID, dto.UpdateTaskRequest{Title: &title, Done: &done}, s.ana)
	s.Require().NoError(err)
	s.Require().NotNil(updated.Stage)
	s.Equal(domain.StageDepusDeclaratii, *updated.Stage)
	s.Equal([]domain.Stage{domain.StageDepusDeclaratii}, domain.StagesOf(*updated))

	title = "Telefon contabil"
	updated, err = s.service.UpdateTask(context.Background(), task.TaskID, dto.UpdateTaskRequest{Title: &title}, s.ana)
	s.Require().NoError(err)
	s.Nil(updated.Stage)
	s.Empty(domain.StagesOf(*updated))
}

func (s *TaskServiceTestSuite) TestUpdateTask_ExplicitStage() {
	task := s.create("Printare registre", "2025-03-01", 3)

	stage := string(domain.StageLunaPrintata)
	updated, err := s.service.UpdateTask(context.Background(), task.TaskID, dto.UpdateTaskRequest{Stage: &stage}, s.ana)
	s.Require().NoError(err)
	s.Equal(domain.StageLunaPrintata, *updated.Stage)

	cleared := ""
	updated, err = s.service.UpdateTask(context.Background(), task.TaskID, dto.UpdateTaskRequest{Stage: &cleared}, s.ana)
	s.Require().NoError(err)
	s.Nil(updated.Stage)

	bogus := "arhivat"
	_, err = s.service.UpdateTask(context.Background(), task.TaskID, dto.UpdateTaskRequest{Stage: &bogus}, s.ana)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *TaskServiceTestSuite) TestDeleteTask() {
	task := s.create("Avem acte", "2025-03-01", 4)

	s.ErrorIs(s.service.DeleteTask(context.Background(), task.TaskID, s.ana), apperrors.ErrNotFound)
	s.Require().NoError(s.service.DeleteTask(context.Background(), task.TaskID, s.admin))
	s.Empty(s.repo.all())
}
