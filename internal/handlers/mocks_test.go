package handlers_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/cabinet_contabil_app/internal/core/domain"
	portssvc "github.com/SscSPs/cabinet_contabil_app/internal/core/ports/services"
	"github.com/SscSPs/cabinet_contabil_app/internal/dto"
	"github.com/SscSPs/cabinet_contabil_app/internal/handlers"
	"github.com/SscSPs/cabinet_contabil_app/internal/platform/config"
	"github.com/SscSPs/cabinet_contabil_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-key-for-handlers"

// newTestRouter builds the full production router over the given services.
func newTestRouter(services *portssvc.ServiceContainer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		IsProduction:      true,
		JWTSecret:         testJWTSecret,
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "cabinet-test",
		LoginRateLimit:    "100-M",
	}
	r := gin.New()
	handlers.RegisterRoutes(r, cfg, services)
	return r
}

func bearerToken(t *testing.T, userID int64, role domain.Role) string {
	t.Helper()
	token, err := utils.GenerateJWT(&domain.User{UserID: userID, Email: "x@cabinet.ro", Role: role}, testJWTSecret, time.Hour, "cabinet-test")
	require.NoError(t, err)
	return "Bearer " + token
}

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) EnsureAdmin(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) AuthenticateAdmin(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock TaskGenerationService ---
type MockGenerationService struct {
	mock.Mock
}

func (m *MockGenerationService) GenerateByFrequency(ctx context.Context, frequency domain.Frequency, period *domain.Period, opts portssvc.GenerationOptions) (*domain.GenerationReport, error) {
	args := m.Called(ctx, frequency, period, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GenerationReport), args.Error(1)
}

func (m *MockGenerationService) GenerateWithRules(ctx context.Context, period domain.Period, opts portssvc.GenerationOptions) (*domain.GenerationReport, error) {
	args := m.Called(ctx, period, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GenerationReport), args.Error(1)
}

func (m *MockGenerationService) GenerateFixedTitles(ctx context.Context, period domain.Period, opts portssvc.GenerationOptions) (*domain.GenerationReport, error) {
	args := m.Called(ctx, period, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GenerationReport), args.Error(1)
}

func (m *MockGenerationService) GenerateConditionalNotes(ctx context.Context, clientID int64, period domain.Period, note string) (*domain.NoteReport, error) {
	args := m.Called(ctx, clientID, period, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NoteReport), args.Error(1)
}

var _ portssvc.TaskGenerationSvc = (*MockGenerationService)(nil)

// --- Mock SituationService ---
type MockSituationService struct {
	mock.Mock
}

func (m *MockSituationService) GetSituation(ctx context.Context, viewer *domain.Viewer, filter portssvc.SituationFilter) ([]domain.SituationRow, error) {
	args := m.Called(ctx, viewer, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SituationRow), args.Error(1)
}

var _ portssvc.SituationSvc = (*MockSituationService)(nil)

// --- Mock ClientService ---
type MockClientService struct {
	mock.Mock
}

func (m *MockClientService) GetClientByID(ctx context.Context, clientID int64) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientService) ListClients(ctx context.Context) ([]domain.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientService) ListClientUsers(ctx context.Context, clientID int64) ([]domain.ClientUser, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClientUser), args.Error(1)
}

func (m *MockClientService) CreateClient(ctx context.Context, req dto.ClientRequest) (*domain.Client, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientService) UpdateClient(ctx context.Context, clientID int64, req dto.ClientRequest) (*domain.Client, error) {
	args := m.Called(ctx, clientID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientService) AssignUser(ctx context.Context, clientID, userID int64) error {
	args := m.Called(ctx, clientID, userID)
	return args.Error(0)
}

func (m *MockClientService) UnassignUser(ctx context.Context, clientID, userID int64) error {
	args := m.Called(ctx, clientID, userID)
	return args.Error(0)
}

var _ portssvc.ClientSvcFacade = (*MockClientService)(nil)
