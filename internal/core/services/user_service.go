package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/SscSPs/cabinet_contabil_app/internal/apperrors"
	"github.com/SscSPs/cabinet_contabil_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cabinet_contabil_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cabinet_contabil_app/internal/core/ports/services"
	"github.com/SscSPs/cabinet_contabil_app/internal/dto"
	"github.com/SscSPs/cabinet_contabil_app/internal/utils"
)

const invalidCredentialsMsg = "invalid email or password"

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates the user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	role := domain.Role(req.Role)
	if !role.IsValid() {
		return nil, apperrors.NewValidationFailedError("invalid role " + req.Role)
	}
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password", slog.String("email", req.Email))
		return nil, apperrors.NewAppError(500, "failed to hash password", err)
	}

	user := domain.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Name:         req.Name,
		Role:         role,
		PasswordHash: &hash,
	}
	if err := s.userRepo.SaveUser(ctx, &user); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save user", slog.String("email", user.Email))
		}
		return nil, err
	}

	s.LogInfo(ctx, "User created", slog.Int64("user_id", user.UserID), slog.String("role", string(user.Role)))
	return &user, nil
}

func (s *userService) EnsureAdmin(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, apperrors.NewValidationFailedError("admin email and password are required")
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to hash password", err)
	}
	user := domain.User{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Role:         domain.RoleAdmin,
		PasswordHash: &hash,
	}
	if err := s.userRepo.UpsertUserByEmail(ctx, &user); err != nil {
		s.LogError(ctx, err, "Failed to upsert admin user", slog.String("email", user.Email))
		return nil, err
	}
	s.LogInfo(ctx, "Admin user ensured", slog.Int64("user_id", user.UserID))
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user", slog.Int64("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users", slog.Int("limit", limit), slog.Int("offset", offset))
		return nil, err
	}
	if users == nil {
		return []domain.User{}, nil
	}
	return users, nil
}

// AuthenticateUser checks email and password. Every failure is reported as
// the same unauthorized error.
func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "Login for unknown email")
			return nil, apperrors.NewUnauthorizedError(invalidCredentialsMsg)
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, err
	}
	if user.PasswordHash == nil || *user.PasswordHash == "" {
		s.LogDebug(ctx, "Login for user without password", slog.Int64("user_id", user.UserID))
		return nil, apperrors.NewUnauthorizedError(invalidCredentialsMsg)
	}
	if !utils.CheckPasswordHash(password, *user.PasswordHash) {
		s.LogDebug(ctx, "Login with wrong password", slog.Int64("user_id", user.UserID))
		return nil, apperrors.NewUnauthorizedError(invalidCredentialsMsg)
	}
	return user, nil
}

func (s *userService) AuthenticateAdmin(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.AuthenticateUser(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleAdmin {
		s.LogInfo(ctx, "Non-admin user rejected", slog.Int64("user_id", user.UserID), slog.String("role", string(user.Role)))
		return nil, apperrors.NewUnauthorizedError("admin credentials required")
	}
	return user, nil
}
