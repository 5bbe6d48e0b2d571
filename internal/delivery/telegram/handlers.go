package telegram

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"

	"transapp/internal/app/service"
	"transapp/internal/delivery/telegram/flows"
	"transapp/internal/delivery/telegram/keyboards"
	"transapp/internal/delivery/telegram/middleware"
	"transapp/internal/delivery/telegram/router"
	"transapp/internal/domain"
	"transapp/internal/report"
	"transapp/pkg/calendar"
	"transapp/pkg/logger"
)

const (
	maxUpload      = 10 << 20
	requestTimeout = time.Minute
	shownRejects   = 5
)

type Handler struct {
	Bot      *telebot.Bot
	Shifts   *service.ShiftServiceImpl
	Workers  *service.WorkerService
	Holidays *service.HolidayService
	Rates    *service.RateService
	Async    *service.AsyncService
	Calendar *calendar.CalendarController
	Router   *router.CallbackRouter

	// AdminChatID limits management commands to one chat; zero allows all.
	AdminChatID int64
	Location    *time.Location
}

func (h *Handler) Register() {
	h.Bot.Use(middleware.Recover())

	h.Bot.Handle("/start", h.handleStart)
	h.Bot.Handle("/help", h.handleStart)
	h.Bot.Handle("/mypay", h.handleMyPay)

	h.Bot.Handle("/workers", h.admin(h.handleWorkers))
	h.Bot.Handle("/rates", h.admin(h.handleRates))
	h.Bot.Handle("/setrate", h.admin(h.handleSetRate))
	h.Bot.Handle("/holidays", h.admin(h.handleHolidays))
	h.Bot.Handle("/addholiday", h.admin(h.handleAddHoliday))
	h.Bot.Handle("/delholiday", h.admin(h.handleDelHoliday))
	h.Bot.Handle("/payroll", h.admin(func(c telebot.Context) error {
		return flows.ShowMonths(c, flows.KeyPayrollMonth, h.now())
	}))
	h.Bot.Handle("/export", h.admin(func(c telebot.Context) error {
		return flows.ShowMonths(c, flows.KeyExportMonth, h.now())
	}))
	h.Bot.Handle("/paid", h.admin(h.handlePaid))
	h.Bot.Handle("/undo", h.admin(h.handleUndo))
	h.Bot.Handle(telebot.OnDocument, h.admin(h.handleDocument))

	h.registerCallbacks()
	h.Router.Attach(h.Bot)
}

// registerCallbacks wires inline buttons. Every button here manages payroll
// or holidays, so all of them sit behind the admin chat check.
func (h *Handler) registerCallbacks() {
	if h.Calendar != nil {
		h.Calendar.OnDate = h.addHolidayOn
		h.Router.RegisterPrefix(calendar.Prefix, h.Calendar.Handle)
	}
	(&flows.Payroll{Shifts: h.Shifts, Async: h.Async, Timeout: requestTimeout}).Register(h.Router)

	h.Router.Allow = h.isAdmin
	h.Router.Deny = denyAdmin
	h.Router.Protect(calendar.Prefix, flows.KeyPayrollMonth, flows.KeyExportMonth, keyboards.KeyMonthNav)
}

func (h *Handler) isAdmin(c telebot.Context) bool {
	return h.AdminChatID == 0 || c.Chat().ID == h.AdminChatID
}

func denyAdmin(c telebot.Context) error {
	return c.Send("Comando reservado a administración.")
}

func (h *Handler) admin(next telebot.HandlerFunc) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		if !h.isAdmin(c) {
			return denyAdmin(c)
		}
		return next(c)
	}
}

func (h *Handler) now() time.Time {
	if h.Location != nil {
		return time.Now().In(h.Location)
	}
	return time.Now()
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

const helpText = `TransApp nómina
/mypay - tus turnos sin pagar del mes
/start <nombre> - vincular este chat a un trabajador

Administración:
/workers, /rates, /setrate <regla> <valor>
/holidays, /addholiday [YYYY-MM-DD nombre], /delholiday YYYY-MM-DD
/payroll, /export, /paid <nombre> <desde> <hasta>, /undo <lote>
Envíe un archivo .xlsx o .xls para importar la programación.`

func (h *Handler) handleStart(c telebot.Context) error {
	name := strings.TrimSpace(c.Message().Payload)
	if name == "" {
		return c.Send(helpText)
	}
	ctx, cancel := requestContext()
	defer cancel()
	w, err := h.Workers.LinkChat(ctx, name, c.Chat().ID)
	if errors.Is(err, domain.ErrNotFound) {
		return c.Send(fmt.Sprintf("No hay un trabajador llamado %q.", name))
	}
	if errors.Is(err, domain.ErrAlreadyLinked) {
		logger.Log.WithFields(logrus.Fields{"name": name, "chat": c.Chat().ID}).Warn("Link to claimed worker refused")
		return c.Send("Ese trabajador ya está vinculado a otro chat. Pida a administración que lo libere.")
	}
	if err != nil {
		return c.Send("Error al vincular: " + err.Error())
	}
	logger.Log.WithFields(logrus.Fields{"worker": w.Name, "chat": c.Chat().ID}).Info("Chat linked")
	return c.Send(fmt.Sprintf("Chat vinculado a %s.", w.Name))
}

func (h *Handler) handleMyPay(c telebot.Context) error {
	ctx, cancel := requestContext()
	defer cancel()
	w, err := h.Workers.ByChat(ctx, c.Chat().ID)
	if errors.Is(err, domain.ErrNotFound) {
		return c.Send("Este chat no está vinculado. Use /start <nombre>.")
	}
	if err != nil {
		return c.Send("Error: " + err.Error())
	}
	now := h.now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	p, err := h.Shifts.WorkerPayment(ctx, w.ID, from, to, true)
	if err != nil {
		return c.Send("Error al calcular: " + err.Error())
	}
	return c.Send(report.Text([]domain.PaymentResult{p}, from, to))
}

func (h *Handler) handleWorkers(c telebot.Context) error {
	ctx, cancel := requestContext()
	defer cancel()
	workers, err := h.Workers.GetAllWorkers(ctx)
	if err != nil {
		return c.Send("Error al consultar trabajadores: " + err.Error())
	}
	if len(workers) == 0 {
		return c.Send("No hay trabajadores registrados.")
	}
	var b strings.Builder
	b.WriteString("Trabajadores:\n")
	for _, w := range workers {
		linked := ""
		if w.ChatID != 0 {
			linked = " ✓"
		}
		fmt.Fprintf(&b, "%d. %s (%s)%s\n", w.ID, w.Name, w.Role, linked)
	}
	return c.Send(b.String())
}

func (h *Handler) handleRates(c telebot.Context) error {
	ctx, cancel := requestContext()
	defer cancel()
	table, err := h.Rates.Table(ctx)
	if err != nil {
		return c.Send("Error al consultar tarifas: " + err.Error())
	}
	return c.Send(ratesText(table))
}

func ratesText(table domain.RateTable) string {
	var b strings.Builder
	b.WriteString("Tarifas por turno:")
	for _, k := range domain.RuleKeys {
		fmt.Fprintf(&b, "\n%s: %s", k, report.Money(table.Amount(k)))
	}
	return b.String()
}

func (h *Handler) handleSetRate(c telebot.Context) error {
	key, amount, err := parseSetRate(c.Args())
	if err != nil {
		return c.Send("Uso: /setrate <regla> <valor>")
	}
	ctx, cancel := requestContext()
	defer cancel()
	if err := h.Rates.SetRate(ctx, key, amount); err != nil {
		return c.Send("No se pudo guardar: " + err.Error())
	}
	logger.Log.WithFields(logrus.Fields{"rule": key, "amount": amount}).Info("Rate updated")
	return c.Send(fmt.Sprintf("Tarifa %s = %s", key, report.Money(amount)))
}

func parseSetRate(args []string) (string, int64, error) {
	if len(args) != 2 {
		return "", 0, errors.New("want <rule> <amount>")
	}
	raw := strings.NewReplacer(".", "", ",", "", "$", "").Replace(args[1])
	amount, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return "", 0, err
	}
	return args[0], amount, nil
}

func (h *Handler) handleHolidays(c telebot.Context) error {
	now := h.now()
	from := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(now.Year(), 12, 31, 0, 0, 0, 0, time.UTC)
	ctx, cancel := requestContext()
	defer cancel()
	list, err := h.Holidays.List(ctx, from, to)
	if err != nil {
		return c.Send("Error al consultar festivos: " + err.Error())
	}
	if len(list) == 0 {
		return c.Send("No hay festivos registrados.")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Festivos %d:", now.Year())
	for _, hol := range list {
		fmt.Fprintf(&b, "\n%s %s", hol.Date.Format(domain.DateLayout), hol.Name)
	}
	return c.Send(b.String())
}

func (h *Handler) handleAddHoliday(c telebot.Context) error {
	args := c.Args()
	if len(args) == 0 {
		if h.Calendar == nil {
			return c.Send("Uso: /addholiday YYYY-MM-DD [nombre]")
		}
		return h.Calendar.ShowCalendar(c, h.now())
	}
	date, err := time.Parse(domain.DateLayout, args[0])
	if err != nil {
		return c.Send("Fecha inválida, use YYYY-MM-DD.")
	}
	return h.saveHoliday(c, date, strings.Join(args[1:], " "))
}

func (h *Handler) addHolidayOn(date time.Time, c telebot.Context) error {
	return h.saveHoliday(c, date, "")
}

func (h *Handler) saveHoliday(c telebot.Context, date time.Time, name string) error {
	if name == "" {
		name = "Festivo"
	}
	ctx, cancel := requestContext()
	defer cancel()
	if err := h.Holidays.Add(ctx, date, name); err != nil {
		return c.Send("No se pudo guardar el festivo: " + err.Error())
	}
	logger.Log.WithField("date", date.Format(domain.DateLayout)).Info("Holiday added")
	return middleware.EditOrSend(c, fmt.Sprintf("Festivo agregado: %s %s", date.Format(domain.DateLayout), name))
}

func (h *Handler) handleDelHoliday(c telebot.Context) error {
	args := c.Args()
	if len(args) != 1 {
		return c.Send("Uso: /delholiday YYYY-MM-DD")
	}
	date, err := time.Parse(domain.DateLayout, args[0])
	if err != nil {
		return c.Send("Fecha inválida, use YYYY-MM-DD.")
	}
	ctx, cancel := requestContext()
	defer cancel()
	err = h.Holidays.Remove(ctx, date)
	if errors.Is(err, domain.ErrNotFound) {
		return c.Send("Ese día no es un festivo registrado.")
	}
	if err != nil {
		return c.Send("Error: " + err.Error())
	}
	return c.Send("Festivo eliminado.")
}

// handlePaid expects "/paid <name...> <from> <to>"; the name may have spaces.
func (h *Handler) handlePaid(c telebot.Context) error {
	name, from, to, err := parsePaid(c.Args())
	if err != nil {
		return c.Send("Uso: /paid <nombre> <YYYY-MM-DD> <YYYY-MM-DD>")
	}
	ctx, cancel := requestContext()
	defer cancel()
	n, err := h.Shifts.MarkPaid(ctx, name, from, to)
	if errors.Is(err, domain.ErrNotFound) {
		return c.Send(fmt.Sprintf("No hay un trabajador llamado %q.", name))
	}
	if err != nil {
		return c.Send("Error: " + err.Error())
	}
	return c.Send(fmt.Sprintf("%d turnos de %s marcados como pagados.", n, name))
}

func parsePaid(args []string) (name string, from, to time.Time, err error) {
	if len(args) < 3 {
		return "", from, to, errors.New("want <name> <from> <to>")
	}
	if from, err = time.Parse(domain.DateLayout, args[len(args)-2]); err != nil {
		return "", from, to, err
	}
	if to, err = time.Parse(domain.DateLayout, args[len(args)-1]); err != nil {
		return "", from, to, err
	}
	return strings.Join(args[:len(args)-2], " "), from, to, nil
}

func (h *Handler) handleUndo(c telebot.Context) error {
	args := c.Args()
	if len(args) != 1 {
		return c.Send("Uso: /undo <lote>")
	}
	ctx, cancel := requestContext()
	defer cancel()
	n, err := h.Shifts.UndoImport(ctx, args[0])
	if errors.Is(err, domain.ErrNotFound) {
		return c.Send("Lote no encontrado o ya pagado.")
	}
	if err != nil {
		return c.Send("Error: " + err.Error())
	}
	return c.Send(fmt.Sprintf("Importación deshecha, %d turnos eliminados.", n))
}

func (h *Handler) handleDocument(c telebot.Context) error {
	doc := c.Message().Document
	if doc == nil {
		return nil
	}
	switch strings.ToLower(filepath.Ext(doc.FileName)) {
	case ".xlsx", ".xlsm", ".xls":
	default:
		return c.Send("Envíe la programación como .xlsx o .xls.")
	}
	if doc.FileSize > maxUpload {
		return c.Send("El archivo es demasiado grande.")
	}

	ctx, cancel := requestContext()
	defer cancel()
	v, err := h.Async.SubmitAsync(ctx, func() (any, error) {
		rc, err := h.Bot.File(&doc.File)
		if err != nil {
			return domain.ImportReport{}, fmt.Errorf("download: %w", err)
		}
		defer rc.Close()
		return h.Shifts.ImportSchedule(ctx, rc, doc.FileName)
	})
	rep, _ := v.(domain.ImportReport)
	if err != nil && !errors.Is(err, domain.ErrEmptySchedule) {
		logger.Log.WithError(err).WithField("file", doc.FileName).Error("Import failed")
		return c.Send("No se pudo importar: " + err.Error())
	}
	return c.Send(importSummary(rep))
}

func importSummary(rep domain.ImportReport) string {
	var b strings.Builder
	if rep.BatchID == "" {
		b.WriteString("Ninguna fila válida, no se importó nada.")
	} else {
		fmt.Fprintf(&b, "Importado %s: %d turnos", rep.Filename, rep.Accepted)
		if !rep.FirstDate.IsZero() {
			fmt.Fprintf(&b, " del %s al %s", rep.FirstDate.Format(domain.DateLayout), rep.LastDate.Format(domain.DateLayout))
		}
		fmt.Fprintf(&b, ".\nLote: %s", rep.BatchID)
	}
	if len(rep.Rejected) > 0 {
		fmt.Fprintf(&b, "\nRechazadas: %d", len(rep.Rejected))
		for i, r := range rep.Rejected {
			if i == shownRejects {
				fmt.Fprintf(&b, "\n...y %d más", len(rep.Rejected)-shownRejects)
				break
			}
			fmt.Fprintf(&b, "\nFila %d: %s", r.Row, r.Reason)
			if r.Value != "" {
				fmt.Fprintf(&b, " (%q)", r.Value)
			}
		}
	}
	return b.String()
}
