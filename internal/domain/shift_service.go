package domain

import (
	"context"
	"io"
	"time"
)

// Rejection reports a schedule row that was not accepted. Row is 1-based as
// shown by spreadsheet tools, counting the header.
type Rejection struct {
	Row    int
	Reason string
	Value  string
}

type ImportReport struct {
	BatchID   string
	Filename  string
	Accepted  int
	Rejected  []Rejection
	FirstDate time.Time
	LastDate  time.Time
}

type ShiftService interface {
	ImportSchedule(ctx context.Context, r io.Reader, filename string) (ImportReport, error)
	Payroll(ctx context.Context, from, to time.Time, unpaidOnly bool) ([]PaymentResult, error)
	MarkPaid(ctx context.Context, workerName string, from, to time.Time) (int64, error)
	UndoImport(ctx context.Context, batchID string) (int64, error)
}
