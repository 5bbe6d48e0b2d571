package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"transapp/internal/domain"
	"transapp/internal/payroll"
	"transapp/internal/schedule"
	"transapp/pkg/logger"
)

type ShiftServiceImpl struct {
	Repo     domain.ShiftRepo
	Workers  domain.WorkerRepo
	Holidays *HolidayService
	Rates    *RateService
	Allowed  schedule.AllowedShiftTypes
	Mapping  schedule.ColumnMapping
	NewID    func() string
}

var _ domain.ShiftService = (*ShiftServiceImpl)(nil)

func NewShiftService(repo domain.ShiftRepo, workers domain.WorkerRepo, holidays *HolidayService, rates *RateService, allowed schedule.AllowedShiftTypes) *ShiftServiceImpl {
	return &ShiftServiceImpl{
		Repo:     repo,
		Workers:  workers,
		Holidays: holidays,
		Rates:    rates,
		Allowed:  allowed,
		Mapping:  schedule.DefaultMapping(),
		NewID:    uuid.NewString,
	}
}

// ImportSchedule reads a schedule workbook and stores its accepted rows as one
// batch. Rejected rows are returned in the report. When no row is accepted the
// report is still returned together with ErrEmptySchedule.
func (s *ShiftServiceImpl) ImportSchedule(ctx context.Context, r io.Reader, filename string) (domain.ImportReport, error) {
	report := domain.ImportReport{Filename: filename}

	rows, err := schedule.ReadRows(r, filename)
	if err != nil {
		return report, fmt.Errorf("read %s: %w", filename, err)
	}
	parsed, err := schedule.Parse(rows, s.Allowed, s.Mapping)
	if err != nil {
		return report, fmt.Errorf("parse %s: %w", filename, err)
	}
	report.Rejected = parsed.Rejections

	log := logger.Log.WithFields(logrus.Fields{
		"file":     filename,
		"accepted": len(parsed.Records),
		"rejected": len(parsed.Rejections),
	})
	if len(parsed.Records) == 0 {
		log.Warn("Schedule import has no valid rows")
		return report, domain.ErrEmptySchedule
	}

	report.BatchID = s.NewID()
	n, err := s.Repo.AddShifts(ctx, report.BatchID, parsed.Records)
	if err != nil {
		return report, fmt.Errorf("store batch %s: %w", report.BatchID, err)
	}
	report.Accepted = n
	report.FirstDate, report.LastDate = dateSpan(parsed.Records)

	log.WithField("batch", report.BatchID).Info("Schedule imported")
	return report, nil
}

// Payroll computes payments for every worker with shifts in [from, to]
// using the current rate table and holidays.
func (s *ShiftServiceImpl) Payroll(ctx context.Context, from, to time.Time, unpaidOnly bool) ([]domain.PaymentResult, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidRange
	}
	shifts, err := s.Repo.GetShifts(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return s.calculate(ctx, shifts, from, to, unpaidOnly)
}

// WorkerPayment computes one worker's payment for [from, to].
func (s *ShiftServiceImpl) WorkerPayment(ctx context.Context, workerID int, from, to time.Time, unpaidOnly bool) (domain.PaymentResult, error) {
	if to.Before(from) {
		return domain.PaymentResult{}, domain.ErrInvalidRange
	}
	w, err := s.Workers.GetWorkerByID(ctx, workerID)
	if err != nil {
		return domain.PaymentResult{}, err
	}
	shifts, err := s.Repo.GetWorkerShifts(ctx, workerID, from, to)
	if err != nil {
		return domain.PaymentResult{}, err
	}
	results, err := s.calculate(ctx, shifts, from, to, unpaidOnly)
	if err != nil {
		return domain.PaymentResult{}, err
	}
	if len(results) == 0 {
		return domain.PaymentResult{WorkerName: w.Name, Breakdown: map[domain.ShiftType]domain.ShiftTotal{}}, nil
	}
	return results[0], nil
}

func (s *ShiftServiceImpl) calculate(ctx context.Context, shifts []domain.DomainShift, from, to time.Time, unpaidOnly bool) ([]domain.PaymentResult, error) {
	records := make([]domain.ShiftRecord, 0, len(shifts))
	for _, sh := range shifts {
		if unpaidOnly && sh.Paid {
			continue
		}
		records = append(records, sh.ShiftRecord)
	}

	holidays, err := s.Holidays.Set(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("load holidays: %w", err)
	}
	rates, err := s.Rates.Table(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rates: %w", err)
	}
	return payroll.Calculate(records, holidays, rates), nil
}

// MarkPaid flags the worker's unpaid shifts in [from, to] as paid.
func (s *ShiftServiceImpl) MarkPaid(ctx context.Context, workerName string, from, to time.Time) (int64, error) {
	if to.Before(from) {
		return 0, domain.ErrInvalidRange
	}
	w, err := s.Workers.GetWorkerByName(ctx, workerName)
	if err != nil {
		return 0, fmt.Errorf("worker %q: %w", workerName, err)
	}
	n, err := s.Repo.MarkShiftsPaid(ctx, w.ID, from, to)
	if err != nil {
		return 0, err
	}
	logger.Log.WithFields(logrus.Fields{"worker": w.Name, "shifts": n}).Info("Shifts marked paid")
	return n, nil
}

// UndoImport removes the unpaid shifts of a batch.
func (s *ShiftServiceImpl) UndoImport(ctx context.Context, batchID string) (int64, error) {
	if _, err := uuid.Parse(batchID); err != nil {
		return 0, fmt.Errorf("batch %q: %w", batchID, domain.ErrNotFound)
	}
	n, err := s.Repo.DeleteBatch(ctx, batchID)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, fmt.Errorf("batch %q: %w", batchID, domain.ErrNotFound)
	}
	logger.Log.WithFields(logrus.Fields{"batch": batchID, "shifts": n}).Info("Import undone")
	return n, nil
}

func dateSpan(records []domain.ShiftRecord) (first, last time.Time) {
	for i, r := range records {
		if i == 0 || r.Date.Before(first) {
			first = r.Date
		}
		if i == 0 || r.Date.After(last) {
			last = r.Date
		}
	}
	return first, last
}
