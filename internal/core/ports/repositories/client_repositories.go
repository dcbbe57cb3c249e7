package repositories

import (
	"context"

	"github.com/SscSPs/cabinet_contabil_app/internal/core/domain"
)

// ClientReader defines read operations for clients
type ClientReader interface {
	// FindClientByID retrieves a client by its ID.
	FindClientByID(ctx context.Context, clientID int64) (*domain.Client, error)

	// ListClients retrieves all clients ordered by denumire.
	ListClients(ctx context.Context) ([]domain.Client, error)
}

// ClientWriter defines write operations for clients
type ClientWriter interface {
	SaveClient(ctx context.Context, client *domain.Client) error
	UpdateClient(ctx context.Context, client *domain.Client) error
}

// ClientAssignmentManager manages the users linked to a client
type ClientAssignmentManager interface {
	// AssignUser links a user to a client. Linking twice is a no-op.
	AssignUser(ctx context.Context, clientID, userID int64) error

	// UnassignUser removes the link, ErrNotFound when absent.
	UnassignUser(ctx context.Context, clientID, userID int64) error

	// ListClientUsers returns the linked users in assignment order.
	ListClientUsers(ctx context.Context, clientID int64) ([]domain.ClientUser, error)
}

// ClientRepositoryFacade combines all client-related repository interfaces
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
	ClientAssignmentManager
}
