package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/cabinet_contabil_app/internal/apperrors"
	"github.com/SscSPs/cabinet_contabil_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cabinet_contabil_app/internal/core/ports/repositories"
	"github.com/SscSPs/cabinet_contabil_app/internal/models"
	"github.com/SscSPs/cabinet_contabil_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTaskRepository struct {
	BaseRepository
}

func newPgxTaskRepository(pool *pgxpool.Pool) portsrepo.TaskRepositoryFacade {
	return &PgxTaskRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TaskRepositoryFacade = (*PgxTaskRepository)(nil)

const taskColumns = `t.id, t.title, t.date, t.notes, t.objective, t.blocked, t.done, t.stage,
	t.user_id, t.client_id, t.created_at, t.last_updated_at`

const taskViewSelectQuery = `
SELECT ` + taskColumns + `,
	c.denumire AS client_name, c.tip AS client_tip,
	u.name AS user_name, u.email AS user_email
FROM tasks t
LEFT JOIN clients c ON c.id = t.client_id
LEFT JOIN users u ON u.id = t.user_id
`

func (r *PgxTaskRepository) getTasks(ctx context.Context, filterQuery string, args ...any) ([]domain.Task, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+taskColumns+` FROM tasks t `+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tasks", err)
	}
	modelTasks, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Task])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect task rows", err)
	}
	tasks := make([]domain.Task, len(modelTasks))
	for i, m := range modelTasks {
		tasks[i] = mapping.ToDomainTask(m)
	}
	return tasks, nil
}

func (r *PgxTaskRepository) getTaskViews(ctx context.Context, filterQuery string, args ...any) ([]domain.TaskView, error) {
	rows, err := r.Pool.Query(ctx, taskViewSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tasks", err)
	}
	modelViews, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.TaskView])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect task rows", err)
	}
	return mapping.ToDomainTaskViewSlice(modelViews), nil
}

func (r *PgxTaskRepository) FindTaskByID(ctx context.Context, taskID int64) (*domain.Task, error) {
	tasks, err := r.getTasks(ctx, `WHERE t.id = $1`, taskID)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("Task with id %d not found", taskID))
	}
	return &tasks[0], nil
}

func (r *PgxTaskRepository) FindTaskByKey(ctx context.Context, clientID int64, title string, date time.Time) (*domain.Task, error) {
	tasks, err := r.getTasks(ctx,
		`WHERE t.client_id = $1 AND t.title = $2 AND t.date = $3 ORDER BY t.id LIMIT 1`,
		clientID, title, date)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no task %q for client %d on %s", title, clientID, date.Format(time.DateOnly)))
	}
	return &tasks[0], nil
}

func (r *PgxTaskRepository) ListTasks(ctx context.Context, filter domain.TaskFilter, limit int, after *portsrepo.TaskCursor) ([]domain.TaskView, error) {
	var clauses []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.ClientID != nil {
		clauses = append(clauses, "t.client_id = "+arg(*filter.ClientID))
	}
	if filter.Done != nil {
		clauses = append(clauses, "t.done = "+arg(*filter.Done))
	}
	if filter.AssigneeID != nil {
		clauses = append(clauses, "t.user_id = "+arg(*filter.AssigneeID))
	}
	if filter.Period != nil {
		start := filter.Period.FirstDay()
		end := start.AddDate(0, 1, 0)
		clauses = append(clauses, fmt.Sprintf("t.date >= %s AND t.date < %s", arg(start), arg(end)))
	}
	if after != nil {
		// keyset over (date DESC NULLS LAST, id DESC)
		if after.Date != nil {
			d, id := arg(*after.Date), arg(after.TaskID)
			clauses = append(clauses, fmt.Sprintf("(t.date < %s OR (t.date = %s AND t.id < %s) OR t.date IS NULL)", d, d, id))
		} else {
			clauses = append(clauses, "(t.date IS NULL AND t.id < "+arg(after.TaskID)+")")
		}
	}

	query := ""
	if len(clauses) > 0 {
		query = "WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY t.date DESC NULLS LAST, t.id DESC LIMIT " + arg(limit)
	return r.getTaskViews(ctx, query, args...)
}

func (r *PgxTaskRepository) ListTaskViews(ctx context.Context, assigneeID *int64) ([]domain.TaskView, error) {
	if assigneeID != nil {
		return r.getTaskViews(ctx, `WHERE t.user_id = $1 ORDER BY t.client_id, t.date, t.id`, *assigneeID)
	}
	return r.getTaskViews(ctx, `ORDER BY t.client_id, t.date, t.id`)
}

func (r *PgxTaskRepository) SaveTask(ctx context.Context, task *domain.Task) error {
	m := mapping.ToModelTask(*task)
	query := `
		INSERT INTO tasks (title, date, notes, objective, blocked, done, stage, user_id, client_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, last_updated_at;
	`
	err := r.Pool.QueryRow(ctx, query,
		m.Title, m.Date, m.Notes, m.Objective, m.Blocked, m.Done, m.Stage, m.UserID, m.ClientID,
	).Scan(&task.TaskID, &task.CreatedAt, &task.LastUpdatedAt)
	if err != nil {
		return mapWriteError(err, "failed to save task "+task.Title, "task already exists", "task references an unknown client or user")
	}
	return nil
}

func (r *PgxTaskRepository) UpdateTask(ctx context.Context, task *domain.Task) error {
	m := mapping.ToModelTask(*task)
	query := `
		UPDATE tasks SET
			title = $1, date = $2, notes = $3, objective = $4, blocked = $5,
			done = $6, stage = $7, user_id = $8, client_id = $9, last_updated_at = NOW()
		WHERE id = $10
		RETURNING last_updated_at;
	`
	err := r.Pool.QueryRow(ctx, query,
		m.Title, m.Date, m.Notes, m.Objective, m.Blocked, m.Done, m.Stage, m.UserID, m.ClientID, m.TaskID,
	).Scan(&task.LastUpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError(fmt.Sprintf("Task with id %d not found", task.TaskID))
		}
		return mapWriteError(err, fmt.Sprintf("failed to update task %d", task.TaskID), "task already exists", "task references an unknown client or user")
	}
	return nil
}

func (r *PgxTaskRepository) DeleteTask(ctx context.Context, taskID int64) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1;`, taskID)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to delete task %d", taskID), err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("Task with id %d not found", taskID))
	}
	return nil
}
