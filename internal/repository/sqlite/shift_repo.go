package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"transapp/internal/domain"
)

type SqliteShiftRepo struct {
	db *sql.DB
}

func NewSqliteShiftRepo(db *sql.DB) *SqliteShiftRepo {
	return &SqliteShiftRepo{db: db}
}

// AddShifts stores records under batchID in one transaction. A record for a
// worker, day and shift type that already exists is replaced by the newer
// import. It returns the number of rows written.
func (r *SqliteShiftRepo) AddShifts(ctx context.Context, batchID string, records []domain.ShiftRecord) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	workerIDs := make(map[string]int)
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO shifts (worker_id, batch_id, date, shift_type, expected_count, paid)
		VALUES (?, ?, ?, ?, ?, 0)
		ON CONFLICT(worker_id, date, shift_type) DO UPDATE SET
			batch_id = excluded.batch_id,
			expected_count = excluded.expected_count`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, rec := range records {
		id, ok := workerIDs[rec.WorkerName]
		if !ok {
			if id, err = upsertWorker(ctx, tx, rec.WorkerName); err != nil {
				return 0, fmt.Errorf("worker %q: %w", rec.WorkerName, err)
			}
			workerIDs[rec.WorkerName] = id
		}
		if _, err := stmt.ExecContext(ctx, id, batchID, rec.Date.Format(domain.DateLayout), string(rec.ShiftType), rec.ExpectedCount); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(records), nil
}

const selectShifts = `
	SELECT s.id, s.worker_id, s.batch_id, s.date, s.shift_type, s.expected_count, s.paid, w.name
	FROM shifts s JOIN workers w ON w.id = s.worker_id`

func (r *SqliteShiftRepo) GetShifts(ctx context.Context, from, to time.Time) ([]domain.DomainShift, error) {
	rows, err := r.db.QueryContext(ctx,
		selectShifts+` WHERE s.date BETWEEN ? AND ? ORDER BY s.date, w.name, s.shift_type`,
		from.Format(domain.DateLayout),
		to.Format(domain.DateLayout),
	)
	if err != nil {
		return nil, err
	}
	return scanShifts(rows)
}

func (r *SqliteShiftRepo) GetWorkerShifts(ctx context.Context, workerID int, from, to time.Time) ([]domain.DomainShift, error) {
	rows, err := r.db.QueryContext(ctx,
		selectShifts+` WHERE s.worker_id = ? AND s.date BETWEEN ? AND ? ORDER BY s.date, s.shift_type`,
		workerID,
		from.Format(domain.DateLayout),
		to.Format(domain.DateLayout),
	)
	if err != nil {
		return nil, err
	}
	return scanShifts(rows)
}

func scanShifts(rows *sql.Rows) ([]domain.DomainShift, error) {
	defer rows.Close()

	var shifts []domain.DomainShift
	for rows.Next() {
		var s domain.DomainShift
		var dateStr, shiftType string
		if err := rows.Scan(&s.ID, &s.WorkerID, &s.BatchID, &dateStr, &shiftType, &s.ExpectedCount, &s.Paid, &s.WorkerName); err != nil {
			return nil, err
		}
		date, err := time.Parse(domain.DateLayout, dateStr)
		if err != nil {
			return nil, err
		}
		s.Date = date
		s.ShiftType = domain.ShiftType(shiftType)
		shifts = append(shifts, s)
	}
	return shifts, rows.Err()
}

func (r *SqliteShiftRepo) MarkShiftsPaid(ctx context.Context, workerID int, from, to time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE shifts SET paid = 1 WHERE worker_id = ? AND paid = 0 AND date BETWEEN ? AND ?`,
		workerID,
		from.Format(domain.DateLayout),
		to.Format(domain.DateLayout),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *SqliteShiftRepo) DeleteBatch(ctx context.Context, batchID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shifts WHERE batch_id = ? AND paid = 0`, batchID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
