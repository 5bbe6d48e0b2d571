package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"transapp/internal/domain"
)

type SqliteWorkerRepo struct {
	db *sql.DB
}

func NewSqliteWorkerRepo(db *sql.DB) *SqliteWorkerRepo {
	return &SqliteWorkerRepo{db: db}
}

// UpsertWorker returns the id of the worker called name, creating it if needed.
func (r *SqliteWorkerRepo) UpsertWorker(ctx context.Context, name string) (int, error) {
	return upsertWorker(ctx, r.db, name)
}

type execQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func upsertWorker(ctx context.Context, q execQuerier, name string) (int, error) {
	if _, err := q.ExecContext(ctx, `INSERT INTO workers (name) VALUES (?) ON CONFLICT(name) DO NOTHING`, name); err != nil {
		return 0, err
	}
	var id int
	err := q.QueryRowContext(ctx, `SELECT id FROM workers WHERE name = ?`, name).Scan(&id)
	return id, err
}

func (r *SqliteWorkerRepo) SetChatID(ctx context.Context, id int, chatID int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE workers SET chat_id = ? WHERE id = ?`, chatID, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SqliteWorkerRepo) GetAllWorkers(ctx context.Context) ([]domain.Worker, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, chat_id, role FROM workers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var workers []domain.Worker
	for rows.Next() {
		var w domain.Worker
		if err := rows.Scan(&w.ID, &w.Name, &w.ChatID, &w.Role); err != nil {
			return nil, err
		}
		workers = append(workers, w)
	}
	return workers, rows.Err()
}

func (r *SqliteWorkerRepo) GetWorkerByID(ctx context.Context, id int) (domain.Worker, error) {
	var w domain.Worker
	err := r.db.QueryRowContext(ctx, `SELECT id, name, chat_id, role FROM workers WHERE id = ?`, id).Scan(&w.ID, &w.Name, &w.ChatID, &w.Role)
	return w, notFound(err)
}

func (r *SqliteWorkerRepo) GetWorkerByName(ctx context.Context, name string) (domain.Worker, error) {
	var w domain.Worker
	err := r.db.QueryRowContext(ctx, `SELECT id, name, chat_id, role FROM workers WHERE name = ?`, name).Scan(&w.ID, &w.Name, &w.ChatID, &w.Role)
	return w, notFound(err)
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}
