package services

import (
	"context"

	"github.com/SscSPs/cabinet_contabil_app/internal/core/domain"
	"github.com/SscSPs/cabinet_contabil_app/internal/dto"
)

// ClientReaderSvc defines read operations for clients
type ClientReaderSvc interface {
	GetClientByID(ctx context.Context, clientID int64) (*domain.Client, error)
	ListClients(ctx context.Context) ([]domain.Client, error)
	ListClientUsers(ctx context.Context, clientID int64) ([]domain.ClientUser, error)
}

// ClientWriterSvc defines write operations for clients
type ClientWriterSvc interface {
	CreateClient(ctx context.Context, req dto.ClientRequest) (*domain.Client, error)
	UpdateClient(ctx context.Context, clientID int64, req dto.ClientRequest) (*domain.Client, error)
	AssignUser(ctx context.Context, clientID, userID int64) error
	UnassignUser(ctx context.Context, clientID, userID int64) error
}

// ClientSvcFacade combines all client-related service interfaces
type ClientSvcFacade interface {
	ClientReaderSvc
	ClientWriterSvc
}
