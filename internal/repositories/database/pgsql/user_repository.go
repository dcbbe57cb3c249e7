package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/cabinet_contabil_app/internal/apperrors"
	"github.com/SscSPs/cabinet_contabil_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cabinet_contabil_app/internal/core/ports/repositories"
	"github.com/SscSPs/cabinet_contabil_app/internal/models"
	"github.com/SscSPs/cabinet_contabil_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userSelectQuery = `
SELECT u.id, u.email, u.name, u.role, u.password_hash, u.created_at, u.last_updated_at
FROM users u
`

func (r *PgxUserRepository) getUsers(ctx context.Context, filterQuery string, args ...any) ([]domain.User, error) {
	rows, err := r.Pool.Query(ctx, userSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query users", err)
	}
	modelUsers, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect user rows", err)
	}
	return mapping.ToDomainUserSlice(modelUsers), nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (email, name, role, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, last_updated_at;
	`
	err := r.Pool.QueryRow(ctx, query, user.Email, user.Name, string(user.Role), user.PasswordHash).
		Scan(&user.UserID, &user.CreatedAt, &user.LastUpdatedAt)
	if err != nil {
		return mapWriteError(err, "failed to save user", "user with email "+user.Email+" already exists", "invalid user reference")
	}
	return nil
}

func (r *PgxUserRepository) UpsertUserByEmail(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (email, name, role, password_hash)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET
			name = COALESCE(EXCLUDED.name, users.name),
			role = EXCLUDED.role,
			password_hash = EXCLUDED.password_hash,
			last_updated_at = NOW()
		RETURNING id, created_at, last_updated_at;
	`
	err := r.Pool.QueryRow(ctx, query, user.Email, user.Name, string(user.Role), user.PasswordHash).
		Scan(&user.UserID, &user.CreatedAt, &user.LastUpdatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert user "+user.Email, err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	users, err := r.getUsers(ctx, `WHERE u.id = $1`, userID)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("user %d: %w", userID, apperrors.ErrNotFound)
	}
	return &users[0], nil
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	users, err := r.getUsers(ctx, `WHERE lower(u.email) = lower($1)`, email)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &users[0], nil
}

func (r *PgxUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return r.getUsers(ctx, `ORDER BY u.email LIMIT $1 OFFSET $2`, limit, offset)
}
