package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

const createWorkersTable = `
CREATE TABLE IF NOT EXISTS workers (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE COLLATE NOCASE,
    chat_id INTEGER NOT NULL DEFAULT 0,
    role TEXT NOT NULL DEFAULT 'driver'
);
`

const createShiftsTable = `
CREATE TABLE IF NOT EXISTS shifts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    worker_id INTEGER NOT NULL REFERENCES workers(id),
    batch_id TEXT NOT NULL,
    date TEXT NOT NULL,
    shift_type TEXT NOT NULL CHECK (shift_type IN ('first', 'second', 'third')),
    expected_count INTEGER NOT NULL CHECK (expected_count > 0),
    paid BOOLEAN NOT NULL DEFAULT 0,
    UNIQUE (worker_id, date, shift_type)
);
`

const createShiftsIndexes = `
CREATE INDEX IF NOT EXISTS idx_shifts_date ON shifts(date);
CREATE INDEX IF NOT EXISTS idx_shifts_batch ON shifts(batch_id);
`

const createHolidaysTable = `
CREATE TABLE IF NOT EXISTS holidays (
    date TEXT PRIMARY KEY,
    name TEXT NOT NULL DEFAULT ''
);
`

const createRatesTable = `
CREATE TABLE IF NOT EXISTS rates (
    rule_key TEXT PRIMARY KEY,
    amount INTEGER NOT NULL CHECK (amount >= 0)
);
`

func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range []string{
		createWorkersTable,
		createShiftsTable,
		createShiftsIndexes,
		createHolidaysTable,
		createRatesTable,
	} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
