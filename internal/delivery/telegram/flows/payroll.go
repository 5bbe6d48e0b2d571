package flows

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"

	"transapp/internal/app/service"
	"transapp/internal/delivery/telegram/keyboards"
	"transapp/internal/delivery/telegram/middleware"
	"transapp/internal/delivery/telegram/router"
	"transapp/internal/report"
	"transapp/pkg/logger"
)

// Callback keys fired by the month picker.
const (
	KeyPayrollMonth = "pay_month"
	KeyExportMonth  = "export_month"
)

var titles = map[string]string{
	KeyPayrollMonth: "Nómina del mes",
	KeyExportMonth:  "Exportar mes",
}

// Payroll serves the month based payroll and export screens.
type Payroll struct {
	Shifts  *service.ShiftServiceImpl
	Async   *service.AsyncService
	Timeout time.Duration
}

// ShowMonths opens the month picker for action in the year of now.
func ShowMonths(c telebot.Context, action string, now time.Time) error {
	title, markup := keyboards.BuildMonthKeyboard(now.Year(), action, titles[action])
	return middleware.EditOrSend(c, title, markup)
}

func (p *Payroll) Register(r *router.CallbackRouter) {
	r.Register(keyboards.KeyMonthNav, func(c telebot.Context, payload string) error {
		action, year, err := keyboards.ParseNav(payload)
		if err != nil {
			return nil
		}
		title, markup := keyboards.BuildMonthKeyboard(year, action, titles[action])
		return middleware.EditOrSend(c, title, markup)
	})

	r.Register(KeyPayrollMonth, func(c telebot.Context, payload string) error {
		from, to, err := keyboards.MonthRange(payload)
		if err != nil {
			return nil
		}
		ctx, cancel := p.context()
		defer cancel()
		v, err := p.Async.SubmitAsync(ctx, func() (any, error) {
			results, err := p.Shifts.Payroll(ctx, from, to, false)
			if err != nil {
				return nil, err
			}
			return report.Text(results, from, to), nil
		})
		if err != nil {
			return c.Send("Error al calcular la nómina: " + err.Error())
		}
		return middleware.EditOrSend(c, v.(string))
	})

	r.Register(KeyExportMonth, func(c telebot.Context, payload string) error {
		from, to, err := keyboards.MonthRange(payload)
		if err != nil {
			return nil
		}
		ctx, cancel := p.context()
		defer cancel()
		v, err := p.Async.SubmitAsync(ctx, func() (any, error) {
			results, err := p.Shifts.Payroll(ctx, from, to, false)
			if err != nil {
				return nil, err
			}
			var buf bytes.Buffer
			if err := report.WriteXLSX(&buf, results, from, to); err != nil {
				return nil, err
			}
			return &buf, nil
		})
		if err != nil {
			logger.Log.WithError(err).WithField("month", payload).Error("Export failed")
			return c.Send("Error al exportar: " + err.Error())
		}
		doc := &telebot.Document{
			File:     telebot.FromReader(v.(*bytes.Buffer)),
			FileName: fmt.Sprintf("nomina-%s.xlsx", from.Format("2006-01")),
			Caption:  fmt.Sprintf("Nómina %s", from.Format("2006-01")),
		}
		logger.Log.WithFields(logrus.Fields{"month": payload, "chat": c.Chat().ID}).Info("Payroll exported")
		return c.Send(doc)
	})
}

func (p *Payroll) context() (context.Context, context.CancelFunc) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	return context.WithTimeout(context.Background(), timeout)
}
