package pgsql

import (
	portsrepo "github.com/SscSPs/cabinet_contabil_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ClientRepo: newPgxClientRepository(dbPool),
		RuleRepo:   newPgxRuleRepository(dbPool),
		TaskRepo:   newPgxTaskRepository(dbPool),
		UserRepo:   newPgxUserRepository(dbPool),
	}
}
