package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/cabinet_contabil_app/internal/apperrors"
	"github.com/SscSPs/cabinet_contabil_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cabinet_contabil_app/internal/core/ports/repositories"
	"github.com/SscSPs/cabinet_contabil_app/internal/models"
	"github.com/SscSPs/cabinet_contabil_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxRuleRepository struct {
	BaseRepository
}

func newPgxRuleRepository(pool *pgxpool.Pool) portsrepo.RuleRepositoryFacade {
	return &PgxRuleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RuleRepositoryFacade = (*PgxRuleRepository)(nil)

const ruleSelectQuery = `
SELECT r.id, r.name, r.description, r.frequency, r.task_title, r.task_notes, r.active,
	r.created_at, r.last_updated_at
FROM rules r
`

// getRules loads the rules matching the filter and attaches their conditions.
func (r *PgxRuleRepository) getRules(ctx context.Context, filterQuery string, args ...any) ([]domain.Rule, error) {
	rows, err := r.Pool.Query(ctx, ruleSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query rules", err)
	}
	modelRules, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Rule])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect rule rows", err)
	}
	if len(modelRules) == 0 {
		return []domain.Rule{}, nil
	}

	ids := make([]int64, len(modelRules))
	for i, m := range modelRules {
		ids[i] = m.RuleID
	}
	condRows, err := r.Pool.Query(ctx, `
		SELECT id, rule_id, field, operator, value
		FROM rule_conditions
		WHERE rule_id = ANY($1)
		ORDER BY rule_id, id;
	`, ids)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query rule conditions", err)
	}
	modelConditions, err := pgx.CollectRows(condRows, pgx.RowToStructByName[models.RuleCondition])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect rule condition rows", err)
	}

	byRule := make(map[int64][]models.RuleCondition, len(modelRules))
	for _, c := range modelConditions {
		byRule[c.RuleID] = append(byRule[c.RuleID], c)
	}

	rules := make([]domain.Rule, len(modelRules))
	for i, m := range modelRules {
		rules[i] = mapping.ToDomainRule(m, byRule[m.RuleID])
	}
	return rules, nil
}

func (r *PgxRuleRepository) FindRuleByName(ctx context.Context, name string) (*domain.Rule, error) {
	rules, err := r.getRules(ctx, `WHERE r.name = $1`, name)
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("rule %q not found", name))
	}
	return &rules[0], nil
}

func (r *PgxRuleRepository) ListRules(ctx context.Context, filter portsrepo.RuleFilter) ([]domain.Rule, error) {
	var clauses []string
	var args []any
	if filter.ActiveOnly {
		clauses = append(clauses, "r.active = TRUE")
	}
	if filter.Frequency != nil {
		args = append(args, string(*filter.Frequency))
		clauses = append(clauses, fmt.Sprintf("r.frequency = $%d", len(args)))
	}
	query := ""
	if len(clauses) > 0 {
		query = "WHERE " + strings.Join(clauses, " AND ")
	}
	return r.getRules(ctx, query+" ORDER BY r.name", args...)
}

func (r *PgxRuleRepository) UpsertRule(ctx context.Context, rule *domain.Rule) (err error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = r.Rollback(ctx, tx)
		}
	}()

	err = tx.QueryRow(ctx, `
		INSERT INTO rules (name, description, frequency, task_title, task_notes, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (name) DO UPDATE SET
			description = EXCLUDED.description,
			frequency = EXCLUDED.frequency,
			task_title = EXCLUDED.task_title,
			task_notes = EXCLUDED.task_notes,
			active = EXCLUDED.active,
			last_updated_at = NOW()
		RETURNING id, created_at, last_updated_at;
	`, rule.Name, rule.Description, string(rule.Frequency), rule.TaskTitle, rule.TaskNotes, rule.Active,
	).Scan(&rule.RuleID, &rule.CreatedAt, &rule.LastUpdatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert rule "+rule.Name, err)
	}

	if _, err = tx.Exec(ctx, `DELETE FROM rule_conditions WHERE rule_id = $1;`, rule.RuleID); err != nil {
		return apperrors.NewAppError(500, "failed to clear rule conditions", err)
	}

	batch := &pgx.Batch{}
	for _, c := range rule.Conditions {
		batch.Queue(`
			INSERT INTO rule_conditions (rule_id, field, operator, value)
			VALUES ($1, $2, $3, $4)
			RETURNING id;
		`, rule.RuleID, c.Field, string(c.Operator), c.Value)
	}
	if batch.Len() > 0 {
		results := tx.SendBatch(ctx, batch)
		for i := range rule.Conditions {
			if err = results.QueryRow().Scan(&rule.Conditions[i].ConditionID); err != nil {
				_ = results.Close()
				return apperrors.NewAppError(500, "failed to insert rule condition", err)
			}
		}
		if err = results.Close(); err != nil {
			return apperrors.NewAppError(500, "failed to insert rule conditions", err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxRuleRepository) SetRuleActive(ctx context.Context, name string, active bool) error {
	cmdTag, err := r.Pool.Exec(ctx, `UPDATE rules SET active = $1, last_updated_at = NOW() WHERE name = $2;`, active, name)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update rule "+name, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("rule %q not found", name))
	}
	return nil
}

func (r *PgxRuleRepository) DeleteRule(ctx context.Context, name string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM rules WHERE name = $1;`, name)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete rule "+name, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("rule %q not found", name))
	}
	return nil
}
