package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/cabinet_contabil_app/internal/apperrors"
	"github.com/SscSPs/cabinet_contabil_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cabinet_contabil_app/internal/core/ports/repositories"
	"github.com/SscSPs/cabinet_contabil_app/internal/models"
	"github.com/SscSPs/cabinet_contabil_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxClientRepository struct {
	BaseRepository
}

func newPgxClientRepository(pool *pgxpool.Pool) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

const clientSelectQuery = `
SELECT
	c.id, c.denumire, c.tip, c.cui, c.activa, c.data_verificarii, c.adresa,
	c.administratie, c.impozit, c.platitor_tva, c.tva_la_incasare, c.are_cod_tva_ue,
	c.cod_tva_ue, c.operatiune_ue, c.dividende, c.salariati, c.casa_de_marcat,
	c.tarif_conta, c.tarif_bilant, c.created_at, c.last_updated_at
FROM clients c
`

func (r *PgxClientRepository) getClients(ctx context.Context, filterQuery string, args ...any) ([]domain.Client, error) {
	rows, err := r.Pool.Query(ctx, clientSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query clients", err)
	}
	modelClients, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Client])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect client rows", err)
	}
	return mapping.ToDomainClientSlice(modelClients), nil
}

func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID int64) (*domain.Client, error) {
	clients, err := r.getClients(ctx, `WHERE c.id = $1`, clientID)
	if err != nil {
		return nil, err
	}
	if len(clients) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("Client with id %d not found", clientID))
	}
	return &clients[0], nil
}

func (r *PgxClientRepository) ListClients(ctx context.Context) ([]domain.Client, error) {
	return r.getClients(ctx, `ORDER BY c.denumire, c.id`)
}

func (r *PgxClientRepository) SaveClient(ctx context.Context, client *domain.Client) error {
	m := mapping.ToModelClient(*client)
	query := `
		INSERT INTO clients (
			denumire, tip, cui, activa, data_verificarii, adresa, administratie, impozit,
			platitor_tva, tva_la_incasare, are_cod_tva_ue, cod_tva_ue, operatiune_ue,
			dividende, salariati, casa_de_marcat, tarif_conta, tarif_bilant
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id, created_at, last_updated_at;
	`
	err := r.Pool.QueryRow(ctx, query,
		m.Denumire, m.Tip, m.CUI, m.Activa, m.DataVerificarii, m.Adresa, m.Administratie, m.Impozit,
		m.PlatitorTVA, m.TVALaIncasare, m.AreCodTVAUE, m.CodTVAUE, m.OperatiuneUE,
		m.Dividende, m.Salariati, m.CasaDeMarcat, m.TarifConta, m.TarifBilant,
	).Scan(&client.ClientID, &client.CreatedAt, &client.LastUpdatedAt)
	if err != nil {
		return mapWriteError(err, "failed to save client "+client.Denumire, "client already exists", "invalid client reference")
	}
	return nil
}

func (r *PgxClientRepository) UpdateClient(ctx context.Context, client *domain.Client) error {
	m := mapping.ToModelClient(*client)
	query := `
		UPDATE clients SET
			denumire = $1, tip = $2, cui = $3, activa = $4, data_verificarii = $5, adresa = $6,
			administratie = $7, impozit = $8, platitor_tva = $9, tva_la_incasare = $10,
			are_cod_tva_ue = $11, cod_tva_ue = $12, operatiune_ue = $13, dividende = $14,
			salariati = $15, casa_de_marcat = $16, tarif_conta = $17, tarif_bilant = $18,
			last_updated_at = NOW()
		WHERE id = $19
		RETURNING created_at, last_updated_at;
	`
	err := r.Pool.QueryRow(ctx, query,
		m.Denumire, m.Tip, m.CUI, m.Activa, m.DataVerificarii, m.Adresa,
		m.Administratie, m.Impozit, m.PlatitorTVA, m.TVALaIncasare,
		m.AreCodTVAUE, m.CodTVAUE, m.OperatiuneUE, m.Dividende,
		m.Salariati, m.CasaDeMarcat, m.TarifConta, m.TarifBilant,
		m.ClientID,
	).Scan(&client.CreatedAt, &client.LastUpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError(fmt.Sprintf("Client with id %d not found", client.ClientID))
		}
		return mapWriteError(err, "failed to update client", "client already exists", "invalid client reference")
	}
	return nil
}

func (r *PgxClientRepository) AssignUser(ctx context.Context, clientID, userID int64) error {
	query := `
		INSERT INTO user_clients (user_id, client_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, client_id) DO NOTHING;
	`
	if _, err := r.Pool.Exec(ctx, query, userID, clientID); err != nil {
		return mapWriteError(err, "failed to assign user to client", "user already assigned", "client or user does not exist")
	}
	return nil
}

func (r *PgxClientRepository) UnassignUser(ctx context.Context, clientID, userID int64) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM user_clients WHERE user_id = $1 AND client_id = $2;`, userID, clientID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to unassign user from client", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("user %d is not assigned to client %d", userID, clientID))
	}
	return nil
}

func (r *PgxClientRepository) ListClientUsers(ctx context.Context, clientID int64) ([]domain.ClientUser, error) {
	query := `
		SELECT uc.client_id, u.id, u.email, u.name, u.role, u.password_hash, u.created_at, u.last_updated_at
		FROM user_clients uc
		JOIN users u ON u.id = uc.user_id
		WHERE uc.client_id = $1
		ORDER BY uc.created_at, u.id;
	`
	rows, err := r.Pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query client users", err)
	}
	modelUsers, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ClientUser])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect client user rows", err)
	}
	return mapping.ToDomainClientUserSlice(modelUsers), nil
}
