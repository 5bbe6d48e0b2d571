// Package cli implements the transapp command line.
package cli

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"

	"transapp/config"
	"transapp/internal/app/service"
	"transapp/internal/delivery/telegram"
	"transapp/internal/delivery/telegram/router"
	"transapp/internal/domain"
	"transapp/internal/report"
	"transapp/internal/repository/sqlite"
	"transapp/internal/schedule"
	"transapp/internal/scheduler"
	"transapp/pkg/calendar"
	"transapp/pkg/holidays"
	"transapp/pkg/logger"
	"transapp/pkg/workerpool"
)

var ErrUsage = errors.New("usage")

// Stdout receives command output.
var Stdout io.Writer = os.Stdout

func PrintUsage(w io.Writer) {
	fmt.Fprint(w, `Usage:
  transapp [bot]
  transapp import <file.xlsx|file.xls>
  transapp payroll -from YYYY-MM-DD -to YYYY-MM-DD [-unpaid] [-out file.csv|file.xlsx]
`)
}

func Execute(args []string) error {
	cmd := "bot"
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}
	switch cmd {
	case "bot":
		return runBot(args)
	case "import":
		return runImport(args)
	case "payroll":
		return runPayroll(args)
	default:
		return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}
}

type app struct {
	cfg      *config.Config
	db       *sql.DB
	pool     *workerpool.WorkerPool
	workers  *service.WorkerService
	holidays *service.HolidayService
	rates    *service.RateService
	shifts   *service.ShiftServiceImpl
	async    *service.AsyncService
}

func open(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	logger.Init("transapp", cfg.LogLevel)

	allowed := schedule.DefaultAllowedShiftTypes()
	if cfg.ShiftLabels != "" {
		if allowed, err = schedule.ParseAllowedShiftTypes(cfg.ShiftLabels); err != nil {
			return nil, fmt.Errorf("SHIFT_LABELS: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := sqlite.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	var builtin *holidays.Calendar
	if cfg.BuiltinHolidays {
		builtin = holidays.Default()
	}

	workerRepo := sqlite.NewSqliteWorkerRepo(db)
	a := &app{
		cfg:      cfg,
		db:       db,
		pool:     workerpool.NewWorkerPool(cfg.WorkerCount, cfg.QueueSize),
		workers:  service.NewWorkerService(workerRepo),
		holidays: service.NewHolidayService(sqlite.NewSqliteHolidayRepo(db), builtin),
		rates:    service.NewRateService(sqlite.NewSqliteRateRepo(db)),
	}
	a.async = service.NewAsyncService(a.pool)
	a.shifts = service.NewShiftService(sqlite.NewSqliteShiftRepo(db), workerRepo, a.holidays, a.rates, allowed)

	logger.Log.WithFields(logrus.Fields{
		"db":       cfg.DBPath,
		"holidays": cfg.BuiltinHolidays,
		"labels":   len(allowed.Labels()),
	}).Debug("Application opened")
	return a, nil
}

func (a *app) Close() {
	a.pool.Close()
	_ = a.db.Close()
}

func runBot(args []string) error {
	fs := flag.NewFlagSet("bot", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := open(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	if err := a.cfg.RequireToken(); err != nil {
		return err
	}

	bot, err := telebot.NewBot(telebot.Settings{
		Token:  a.cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) {
			logger.Log.WithError(err).Error("Bot handler error")
		},
	})
	if err != nil {
		return fmt.Errorf("start bot: %w", err)
	}

	cal := &calendar.CalendarController{Title: "Nuevo festivo"}
	if b := a.holidays.Builtin; b != nil {
		cal.Marked = b.IsHoliday
	}
	h := &telegram.Handler{
		Bot:         bot,
		Shifts:      a.shifts,
		Workers:     a.workers,
		Holidays:    a.holidays,
		Rates:       a.rates,
		Async:       a.async,
		Calendar:    cal,
		Router:      router.New(),
		AdminChatID: a.cfg.AdminChatID,
		Location:    a.cfg.Location,
	}
	h.Register()

	if a.cfg.AdminChatID != 0 {
		sched := scheduler.New(a.shifts, &telegram.ChatSender{Bot: bot, ChatID: a.cfg.AdminChatID}, a.cfg.Location)
		if err := sched.AddWeekly(a.cfg.ReportCron); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()
	} else {
		logger.Log.Warn("ADMIN_CHAT_ID not set, weekly report disabled")
	}

	go func() {
		<-ctx.Done()
		bot.Stop()
	}()
	logger.Log.Info("Bot started")
	bot.Start()
	logger.Log.Info("Bot stopped")
	return nil
}

func runImport(args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: transapp import <file>", ErrUsage)
	}
	path := fs.Arg(0)

	ctx := context.Background()
	a, err := open(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rep, err := a.shifts.ImportSchedule(ctx, f, filepath.Base(path))
	for _, r := range rep.Rejected {
		fmt.Fprintf(Stdout, "row %d: %s %q\n", r.Row, r.Reason, r.Value)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(Stdout, "batch %s: %d shifts %s..%s, %d rejected\n",
		rep.BatchID, rep.Accepted,
		rep.FirstDate.Format(domain.DateLayout), rep.LastDate.Format(domain.DateLayout),
		len(rep.Rejected))
	return nil
}

func runPayroll(args []string) error {
	fs := flag.NewFlagSet("payroll", flag.ContinueOnError)
	fromFlag := fs.String("from", "", "first day, YYYY-MM-DD")
	toFlag := fs.String("to", "", "last day, YYYY-MM-DD")
	unpaid := fs.Bool("unpaid", false, "only unpaid shifts")
	out := fs.String("out", "", "write .csv or .xlsx instead of text")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	from, err := time.Parse(domain.DateLayout, *fromFlag)
	if err != nil {
		return fmt.Errorf("%w: -from must be YYYY-MM-DD", ErrUsage)
	}
	to, err := time.Parse(domain.DateLayout, *toFlag)
	if err != nil {
		return fmt.Errorf("%w: -to must be YYYY-MM-DD", ErrUsage)
	}
	ext := strings.ToLower(filepath.Ext(*out))
	if *out != "" && ext != ".csv" && ext != ".xlsx" {
		return fmt.Errorf("%w: -out must end in .csv or .xlsx", ErrUsage)
	}

	ctx := context.Background()
	a, err := open(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	results, err := a.shifts.Payroll(ctx, from, to, *unpaid)
	if err != nil {
		return err
	}
	if *out == "" {
		_, err = fmt.Fprintln(Stdout, report.Text(results, from, to))
		return err
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	if ext == ".csv" {
		err = report.WriteCSV(f, results)
	} else {
		err = report.WriteXLSX(f, results, from, to)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(Stdout, "wrote %s (%d workers)\n", *out, len(results))
	return nil
}
