package sqlite

import (
	"context"
	"database/sql"

	"transapp/internal/domain"
)

type SqliteRateRepo struct {
	db *sql.DB
}

func NewSqliteRateRepo(db *sql.DB) *SqliteRateRepo {
	return &SqliteRateRepo{db: db}
}

// GetRates returns only the stored entries; callers fall back to defaults.
func (r *SqliteRateRepo) GetRates(ctx context.Context) (domain.RateTable, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT rule_key, amount FROM rates`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	table := make(domain.RateTable)
	for rows.Next() {
		var key string
		var amount int64
		if err := rows.Scan(&key, &amount); err != nil {
			return nil, err
		}
		table[domain.RuleKey(key)] = amount
	}
	return table, rows.Err()
}

func (r *SqliteRateRepo) SetRate(ctx context.Context, key domain.RuleKey, amount int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO rates (rule_key, amount) VALUES (?, ?) ON CONFLICT(rule_key) DO UPDATE SET amount = excluded.amount`,
		string(key), amount)
	return err
}
