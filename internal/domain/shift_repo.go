package domain

import (
	"context"
	"strings"
	"time"
)

// DateLayout is the storage and display layout for calendar days.
const DateLayout = "2006-01-02"

type ShiftType string

const (
	ShiftFirst  ShiftType = "first"
	ShiftSecond ShiftType = "second"
	ShiftThird  ShiftType = "third"
)

// ShiftTypes lists the shift types in day order.
var ShiftTypes = []ShiftType{ShiftFirst, ShiftSecond, ShiftThird}

func ParseShiftType(s string) (ShiftType, bool) {
	switch ShiftType(strings.ToLower(strings.TrimSpace(s))) {
	case ShiftFirst:
		return ShiftFirst, true
	case ShiftSecond:
		return ShiftSecond, true
	case ShiftThird:
		return ShiftThird, true
	}
	return "", false
}

// ShiftRecord is one accepted schedule row.
type ShiftRecord struct {
	Date          time.Time
	ShiftType     ShiftType
	WorkerName    string
	ExpectedCount int
}

// DomainShift is a ShiftRecord as stored.
type DomainShift struct {
	ID       int
	WorkerID int
	BatchID  string
	Paid     bool
	ShiftRecord
}

type ShiftRepo interface {
	AddShifts(ctx context.Context, batchID string, records []ShiftRecord) (int, error)
	GetShifts(ctx context.Context, from, to time.Time) ([]DomainShift, error)
	GetWorkerShifts(ctx context.Context, workerID int, from, to time.Time) ([]DomainShift, error)
	MarkShiftsPaid(ctx context.Context, workerID int, from, to time.Time) (int64, error)
	DeleteBatch(ctx context.Context, batchID string) (int64, error)
}

// Day truncates t to its calendar day in UTC, keeping the date it shows in its own location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
