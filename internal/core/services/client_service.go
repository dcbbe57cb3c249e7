package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/cabinet_contabil_app/internal/apperrors"
	"github.com/SscSPs/cabinet_contabil_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cabinet_contabil_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cabinet_contabil_app/internal/core/ports/services"
	"github.com/SscSPs/cabinet_contabil_app/internal/dto"
)

type clientService struct {
	BaseService
	clientRepo portsrepo.ClientRepositoryFacade
	userRepo   portsrepo.UserReader
}

// NewClientService creates the client service.
func NewClientService(clientRepo portsrepo.ClientRepositoryFacade, userRepo portsrepo.UserReader) portssvc.ClientSvcFacade {
	return &clientService{clientRepo: clientRepo, userRepo: userRepo}
}

var _ portssvc.ClientSvcFacade = (*clientService)(nil)

func (s *clientService) GetClientByID(ctx context.Context, clientID int64) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find client", slog.Int64("client_id", clientID))
		}
		return nil, err
	}
	return client, nil
}

func (s *clientService) ListClients(ctx context.Context) ([]domain.Client, error) {
	clients, err := s.clientRepo.ListClients(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list clients")
		return nil, err
	}
	if clients == nil {
		return []domain.Client{}, nil
	}
	return clients, nil
}

func (s *clientService) ListClientUsers(ctx context.Context, clientID int64) ([]domain.ClientUser, error) {
	if _, err := s.GetClientByID(ctx, clientID); err != nil {
		return nil, err
	}
	users, err := s.clientRepo.ListClientUsers(ctx, clientID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list client users", slog.Int64("client_id", clientID))
		return nil, err
	}
	if users == nil {
		return []domain.ClientUser{}, nil
	}
	return users, nil
}

func (s *clientService) CreateClient(ctx context.Context, req dto.ClientRequest) (*domain.Client, error) {
	client := req.ToDomain()
	if err := s.clientRepo.SaveClient(ctx, &client); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save client", slog.String("denumire", client.Denumire))
		}
		return nil, err
	}
	s.LogInfo(ctx, "Client created", slog.Int64("client_id", client.ClientID))
	return &client, nil
}

func (s *clientService) UpdateClient(ctx context.Context, clientID int64, req dto.ClientRequest) (*domain.Client, error) {
	existing, err := s.GetClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	client := req.ToDomain()
	client.ClientID = clientID
	client.CreatedAt = existing.CreatedAt
	if err := s.clientRepo.UpdateClient(ctx, &client); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to update client", slog.Int64("client_id", clientID))
		}
		return nil, err
	}
	s.LogInfo(ctx, "Client updated", slog.Int64("client_id", clientID))
	return &client, nil
}

func (s *clientService) AssignUser(ctx context.Context, clientID, userID int64) error {
	if _, err := s.GetClientByID(ctx, clientID); err != nil {
		return err
	}
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return err
	}
	if err := s.clientRepo.AssignUser(ctx, clientID, userID); err != nil {
		s.LogError(ctx, err, "Failed to assign user", slog.Int64("client_id", clientID), slog.Int64("user_id", userID))
		return err
	}
	s.LogInfo(ctx, "User assigned to client", slog.Int64("client_id", clientID), slog.Int64("user_id", userID))
	return nil
}

func (s *clientService) UnassignUser(ctx context.Context, clientID, userID int64) error {
	if err := s.clientRepo.UnassignUser(ctx, clientID, userID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to unassign user", slog.Int64("client_id", clientID), slog.Int64("user_id", userID))
		}
		return err
	}
	s.LogInfo(ctx, "User unassigned from client", slog.Int64("client_id", clientID), slog.Int64("user_id", userID))
	return nil
}
