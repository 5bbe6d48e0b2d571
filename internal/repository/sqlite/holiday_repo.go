package sqlite

import (
	"context"
	"database/sql"
	"time"

	"transapp/internal/domain"
)

type SqliteHolidayRepo struct {
	db *sql.DB
}

func NewSqliteHolidayRepo(db *sql.DB) *SqliteHolidayRepo {
	return &SqliteHolidayRepo{db: db}
}

func (r *SqliteHolidayRepo) AddHoliday(ctx context.Context, h domain.Holiday) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO holidays (date, name) VALUES (?, ?) ON CONFLICT(date) DO UPDATE SET name = excluded.name`,
		h.Date.Format(domain.DateLayout), h.Name)
	return err
}

func (r *SqliteHolidayRepo) RemoveHoliday(ctx context.Context, date time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM holidays WHERE date = ?`, date.Format(domain.DateLayout))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *SqliteHolidayRepo) GetHolidays(ctx context.Context, from, to time.Time) ([]domain.Holiday, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT date, name FROM holidays WHERE date BETWEEN ? AND ? ORDER BY date`,
		from.Format(domain.DateLayout), to.Format(domain.DateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Holiday
	for rows.Next() {
		var h domain.Holiday
		var dateStr string
		if err := rows.Scan(&dateStr, &h.Name); err != nil {
			return nil, err
		}
		if h.Date, err = time.Parse(domain.DateLayout, dateStr); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
