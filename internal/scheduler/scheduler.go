// Package scheduler runs the periodic payroll summary.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"transapp/internal/domain"
	"transapp/internal/report"
	"transapp/pkg/logger"
)

// Payroller is the part of the shift service the job needs.
type Payroller interface {
	Payroll(ctx context.Context, from, to time.Time, unpaidOnly bool) ([]domain.PaymentResult, error)
}

// Sender delivers the rendered summary.
type Sender interface {
	SendText(ctx context.Context, text string) error
}

type Scheduler struct {
	cron    *cron.Cron
	payroll Payroller
	sender  Sender
	loc     *time.Location
	now     func() time.Time
	timeout time.Duration
}

func New(payroll Payroller, sender Sender, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(loc)),
		payroll: payroll,
		sender:  sender,
		loc:     loc,
		now:     time.Now,
		timeout: 2 * time.Minute,
	}
}

// AddWeekly registers the previous-week summary under a standard five field
// cron spec.
func (s *Scheduler) AddWeekly(spec string) error {
	if _, err := s.cron.AddFunc(spec, func() {
		if err := s.RunWeekly(context.Background()); err != nil {
			logger.Log.WithError(err).Error("Weekly payroll job failed")
		}
	}); err != nil {
		return fmt.Errorf("cron spec %q: %w", spec, err)
	}
	return nil
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop waits for a running job to finish.
func (s *Scheduler) Stop() { <-s.cron.Stop().Done() }

// RunWeekly sends the payroll of the last full Monday-Sunday week.
func (s *Scheduler) RunWeekly(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	from, to := PreviousWeek(s.now().In(s.loc))
	results, err := s.payroll.Payroll(ctx, from, to, false)
	if err != nil {
		return err
	}
	logger.Log.WithFields(logrus.Fields{
		"from":    from.Format(domain.DateLayout),
		"to":      to.Format(domain.DateLayout),
		"workers": len(results),
	}).Info("Sending weekly payroll")
	return s.sender.SendText(ctx, report.Text(results, from, to))
}

// PreviousWeek returns Monday and Sunday of the week before now, as UTC
// calendar days.
func PreviousWeek(now time.Time) (from, to time.Time) {
	today := domain.Day(now)
	sinceMonday := (int(today.Weekday()) + 6) % 7
	from = today.AddDate(0, 0, -sinceMonday-7)
	return from, from.AddDate(0, 0, 6)
}
