package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/cabinet_contabil_app/internal/apperrors"
	"github.com/SscSPs/cabinet_contabil_app/internal/core/domain"
	portssvc "github.com/SscSPs/cabinet_contabil_app/internal/core/ports/services"
	"github.com/SscSPs/cabinet_contabil_app/internal/dto"
	"github.com/SscSPs/cabinet_contabil_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type GenerationHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	userSvc       *MockUserService
	generationSvc *MockGenerationService
	situationSvc  *MockSituationService
}

func (s *GenerationHandlerTestSuite) SetupTest() {
	s.userSvc = new(MockUserService)
	s.generationSvc = new(MockGenerationService)
	s.situationSvc = new(MockSituationService)

	s.router = newTestRouter(&portssvc.ServiceContainer{
		User:       s.userSvc,
		Generation: s.generationSvc,
		Situation:  s.situationSvc,
	})
}

func TestGenerationHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GenerationHandlerTestSuite))
}

func (s *GenerationHandlerTestSuite) bearer(userID int64, role domain.Role) string {
	return bearerToken(s.T(), userID, role)
}

func (s *GenerationHandlerTestSuite) expectAdmin() {
	s.userSvc.On("AuthenticateAdmin", mock.Anything, "admin@cabinet.ro", "pw").
		Return(&domain.User{UserID: 1, Email: "admin@cabinet.ro", Role: domain.RoleAdmin}, nil)
}

func (s *GenerationHandlerTestSuite) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *GenerationHandlerTestSuite) TestGenerateFixed_NoCredentials() {
	req := httptest.NewRequest(http.MethodPost, "/api/tasks/generate-fixed?month=3&year=2025", nil)

	w := s.do(req)

	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal(`Basic realm="Task Generation API"`, w.Header().Get("WWW-Authenticate"))
	s.JSONEq(`{"error":"Unauthorized - Admin credentials required"}`, w.Body.String())
	s.generationSvc.AssertNotCalled(s.T(), "GenerateFixedTitles", mock.Anything, mock.Anything, mock.Anything)
}

func (s *GenerationHandlerTestSuite) TestGenerateFixed_NonAdminRejected() {
	s.userSvc.On("AuthenticateAdmin", mock.Anything, "ana@cabinet.ro", "pw").
		Return(nil, apperrors.NewUnauthorizedError("admin credentials required"))
	req := httptest.NewRequest(http.MethodPost, "/api/tasks/generate-fixed?month=3&year=2025", nil)
	req.SetBasicAuth("ana@cabinet.ro", "pw")

	w := s.do(req)

	s.Equal(http.StatusUnauthorized, w.Code)
	s.NotEmpty(w.Header().Get("WWW-Authenticate"))
}

func (s *GenerationHandlerTestSuite) TestGenerateFixed_InvalidPeriod() {
	s.expectAdmin()
	for _, query := range []string{"month=13&year=2025", "month=3a&year=2025", "month=3", "month=3&year=1800"} {
		req := httptest.NewRequest(http.MethodPost, "/api/tasks/generate-fixed?"+query, nil)
		req.SetBasicAuth("admin@cabinet.ro", "pw")

		w := s.do(req)

		s.Equal(http.StatusBadRequest, w.Code, query)
	}
	s.generationSvc.AssertNotCalled(s.T(), "GenerateFixedTitles", mock.Anything, mock.Anything, mock.Anything)
}

func (s *GenerationHandlerTestSuite) TestGenerateFixed_Success() {
	s.expectAdmin()
	date := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	s.generationSvc.On("GenerateFixedTitles", mock.Anything, domain.Period{Month: 3, Year: 2025}, portssvc.GenerationOptions{SkipExisting: true}).
		Return(&domain.GenerationReport{
			Message: "Tasks generated successfully",
			Tasks:   []domain.Task{{TaskID: 10, Title: domain.TitleAvemActe, Date: &date, UserID: 3, ClientID: 7}},
			Skipped: 3,
		}, nil).Once()
	req := httptest.NewRequest(http.MethodPost, "/api/tasks/generate-fixed?month=3&year=2025&skipExisting=true", nil)
	req.SetBasicAuth("admin@cabinet.ro", "pw")

	w := s.do(req)

	s.Require().Equal(http.StatusOK, w.Code)
	var resp dto.GenerationResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(1, resp.Count)
	s.Equal(3, resp.Skipped)
	s.Equal("2025-03-01", *resp.Tasks[0].Date)
	s.generationSvc.AssertExpectations(s.T())
}

func (s *GenerationHandlerTestSuite) TestGenerateConditional_Validation() {
	s.expectAdmin()
	tests := []struct {
		query string
		want  string
	}{
		{"month=3&year=2025", "Missing clientId, month, or year parameter"},
		{"clientId=abc&month=3&year=2025", "Invalid clientId"},
		{"clientId=7&month=0&year=2025", "invalid month 0: must be between 1 and 12"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/api/tasks/generate-conditional?"+tt.query, nil)
		req.SetBasicAuth("admin@cabinet.ro", "pw")

		w := s.do(req)

		s.Equal(http.StatusBadRequest, w.Code, tt.query)
		s.JSONEq(`{"error":"`+tt.want+`"}`, w.Body.String(), tt.query)
	}
}

func (s *GenerationHandlerTestSuite) TestGenerateConditional_ClientNotFound() {
	s.expectAdmin()
	s.generationSvc.On("GenerateConditionalNotes", mock.Anything, int64(99), domain.Period{Month: 5, Year: 2025}, "").
		Return(nil, apperrors.NewNotFoundError("Client with id 99 not found"))
	req := httptest.NewRequest(http.MethodPost, "/api/tasks/generate-conditional?clientId=99&month=5&year=2025", nil)
	req.SetBasicAuth("admin@cabinet.ro", "pw")

	w := s.do(req)

	s.Equal(http.StatusNotFound, w.Code)
	s.JSONEq(`{"error":"Client with id 99 not found"}`, w.Body.String())
}

func (s *GenerationHandlerTestSuite) TestGenerateConditional_Success() {
	s.expectAdmin()
	s.generationSvc.On("GenerateConditionalNotes", mock.Anything, int64(7), domain.Period{Month: 5, Year: 2025}, "390").
		Return(&domain.NoteReport{
			ClientID: 7, Period: domain.Period{Month: 5, Year: 2025}, Note: "390",
			Actions: []domain.NoteAction{
				{Action: domain.NoteUpdated, Title: domain.TitleGeneratDeclaratii, TaskID: 4, Notes: "100,390"},
				{Action: domain.NoteSkipped, Title: domain.TitleDepusDeclaratii, TaskID: 5, Notes: "390", Reason: `Note "390" already exists`},
			},
		}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/tasks/generate-conditional?clientId=7&month=5&year=2025&note=390", nil)
	req.SetBasicAuth("admin@cabinet.ro", "pw")

	w := s.do(req)

	s.Require().Equal(http.StatusOK, w.Code)
	var resp dto.ConditionalNotesResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("Tasks processed successfully", resp.Message)
	s.Require().Len(resp.Results, 2)
	s.Equal("updated", resp.Results[0].Action)
	s.Equal(`Note "390" already exists`, resp.Results[1].Reason)
}

func (s *GenerationHandlerTestSuite) TestGenerateByFrequency_JSONBody() {
	period := domain.Period{Month: 3, Year: 2025}
	s.generationSvc.On("GenerateByFrequency", mock.Anything, domain.FrequencyMonthly, &period, portssvc.GenerationOptions{}).
		Return(&domain.GenerationReport{Message: "Tasks generated successfully", Tasks: []domain.Task{}}, nil).Once()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks/generate", strings.NewReader(`{"frequency":"MONTHLY","month":3,"year":"2025"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", s.bearer(2, domain.RoleManager))

	w := s.do(req)

	s.Equal(http.StatusOK, w.Code)
	s.generationSvc.AssertExpectations(s.T())
}

func (s *GenerationHandlerTestSuite) TestGenerateByFrequency_RequiresManager() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks/generate?frequency=MONTHLY", nil)
	req.Header.Set("Authorization", s.bearer(3, domain.RoleUser))

	w := s.do(req)

	s.Equal(http.StatusForbidden, w.Code)
}

func (s *GenerationHandlerTestSuite) TestGenerateByFrequency_InvalidFrequency() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks/generate?frequency=weekly", nil)
	req.Header.Set("Authorization", s.bearer(1, domain.RoleAdmin))

	w := s.do(req)

	s.Equal(http.StatusBadRequest, w.Code)
	s.JSONEq(`{"error":"Invalid or missing frequency"}`, w.Body.String())
}

func (s *GenerationHandlerTestSuite) TestGenerateWithRules_StoreErrorIsGeneric() {
	s.generationSvc.On("GenerateWithRules", mock.Anything, domain.Period{Month: 6, Year: 2025}, portssvc.GenerationOptions{}).
		Return(nil, errors.New("pq: connection refused"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks/generate-with-rules?month=6&year=2025", nil)
	req.Header.Set("Authorization", s.bearer(1, domain.RoleAdmin))

	w := s.do(req)

	s.Equal(http.StatusInternalServerError, w.Code)
	s.JSONEq(`{"error":"Internal Server Error"}`, w.Body.String())
}

func (s *GenerationHandlerTestSuite) TestSituation_FlattensStages() {
	march := domain.Period{Month: 3, Year: 2025}
	row := domain.SituationRow{
		ClientID: 7, Firma: "Alfa SRL", Tip: "SRL", Period: march, MonthStart: march.FirstDay(), AssignedTo: "Ana",
		Cells: map[domain.Stage]*domain.StageCell{
			domain.StageAvemActe: {Done: true, HasTask: true, User: "Ana", TaskID: 11},
		},
	}
	viewer := &domain.Viewer{UserID: 3, Role: domain.RoleUser}
	s.situationSvc.On("GetSituation", mock.Anything, viewer, portssvc.SituationFilter{Firma: "alfa", Period: &march}).
		Return([]domain.SituationRow{row}, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/situatie?firma=alfa&month=3&year=2025", nil)
	req.Header.Set("Authorization", s.bearer(3, domain.RoleUser))

	w := s.do(req)

	s.Require().Equal(http.StatusOK, w.Code)
	var rows []map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &rows))
	s.Require().Len(rows, 1)
	s.Equal("01/03/2025", rows[0]["data"])
	s.Equal(true, rows[0]["avemActe"])
	s.Equal("done", rows[0]["avemActeStatus"])
	s.Equal(float64(11), rows[0]["avemActeTaskId"])
	s.Equal("missing", rows[0]["depusDeclaratiiStatus"])
	s.NotContains(rows[0], "depusDeclaratiiTaskId")
}

func (s *GenerationHandlerTestSuite) TestSituation_RequiresToken() {
	w := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/situatie", nil))

	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *GenerationHandlerTestSuite) TestLogin() {
	s.userSvc.On("AuthenticateUser", mock.Anything, "ana@cabinet.ro", "good-pass").
		Return(&domain.User{UserID: 3, Email: "ana@cabinet.ro", Role: domain.RoleUser}, nil)
	s.userSvc.On("AuthenticateUser", mock.Anything, "ana@cabinet.ro", "bad-pass").
		Return(nil, apperrors.NewUnauthorizedError("invalid email or password"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"ana@cabinet.ro","password":"good-pass"}`))
	req.Header.Set("Content-Type", "application/json")
	w := s.do(req)

	s.Require().Equal(http.StatusOK, w.Code)
	var resp dto.LoginResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	claims, err := utils.ParseAndValidateJWT(resp.Token, testJWTSecret)
	s.Require().NoError(err)
	s.Equal(domain.RoleUser, claims.Role)
	s.Equal(int64(3600), resp.ExpiresIn)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"ana@cabinet.ro","password":"bad-pass"}`))
	req.Header.Set("Content-Type", "application/json")
	w = s.do(req)

	s.Equal(http.StatusUnauthorized, w.Code)
}
