// Package calendar renders an inline Telegram month grid for picking a day.
package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/telebot.v3"
)

// Callback keys. All of them share the "cal_" prefix so a router can hand
// the whole family to one controller.
const (
	Prefix   = "cal_"
	KeyDay   = "cal_day"
	KeyPrev  = "cal_prev"
	KeyNext  = "cal_next"
	KeyNoop  = "cal_nop"
	dayFmt   = "2006-01-02"
	monthFmt = "2006-01"
)

var esMonths = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

var weekdayHeader = [...]string{"Lu", "Ma", "Mi", "Ju", "Vi", "Sá", "Do"}

// MonthName returns the Spanish name of m.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return m.String()
	}
	return esMonths[m-1]
}

// CalendarController shows the grid and turns callbacks into picked dates.
type CalendarController struct {
	// Marked decorates days, e.g. already registered holidays. May be nil.
	Marked func(time.Time) bool
	// OnDate is called with the picked day at UTC midnight.
	OnDate func(time.Time, telebot.Context) error
	// Title is shown above the grid.
	Title string
}

// ShowCalendar sends or edits the grid for the month of now.
func (cc *CalendarController) ShowCalendar(c telebot.Context, now time.Time) error {
	return cc.send(c, now.Year(), now.Month())
}

// Handle serves a cal_* callback.
func (cc *CalendarController) Handle(c telebot.Context, key, payload string) error {
	switch key {
	case KeyDay:
		date, err := ParseDay(payload)
		if err != nil {
			return c.Send("Fecha inválida.")
		}
		if cc.OnDate == nil {
			return nil
		}
		return cc.OnDate(date, c)
	case KeyPrev, KeyNext:
		year, month, err := ParseMonth(payload)
		if err != nil {
			return c.Send("Mes inválido.")
		}
		return cc.send(c, year, month)
	}
	return nil
}

func (cc *CalendarController) send(c telebot.Context, year int, month time.Month) error {
	title, markup := cc.Keyboard(year, month)
	if c.Callback() != nil {
		return c.Edit(title, markup)
	}
	return c.Send(title, markup)
}

// Keyboard builds the grid for one month, weeks starting on Monday.
func (cc *CalendarController) Keyboard(year int, month time.Month) (string, *telebot.ReplyMarkup) {
	markup := &telebot.ReplyMarkup{}
	rows := []telebot.Row{}

	header := telebot.Row{}
	for _, d := range weekdayHeader {
		header = append(header, markup.Data(d, KeyNoop))
	}
	rows = append(rows, header)

	for _, week := range Grid(year, month) {
		row := telebot.Row{}
		for _, d := range week {
			if d == 0 {
				row = append(row, markup.Data(" ", KeyNoop))
				continue
			}
			date := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
			label := strconv.Itoa(d)
			if cc.Marked != nil && cc.Marked(date) {
				label += "*"
			}
			row = append(row, markup.Data(label, KeyDay, date.Format(dayFmt)))
		}
		rows = append(rows, row)
	}

	py, pm := AddMonths(year, month, -1)
	ny, nm := AddMonths(year, month, 1)
	rows = append(rows, telebot.Row{
		markup.Data("<", KeyPrev, fmt.Sprintf("%04d-%02d", py, pm)),
		markup.Data(">", KeyNext, fmt.Sprintf("%04d-%02d", ny, nm)),
	})
	markup.Inline(rows...)

	title := cc.Title
	if title == "" {
		title = "Seleccione una fecha"
	}
	return fmt.Sprintf("%s: %s %d", title, MonthName(month), year), markup
}

// Grid lays the days of a month out in Monday-first weeks. Zero marks an
// empty cell.
func Grid(year int, month time.Month) [][]int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()
	offset := (int(first.Weekday()) + 6) % 7

	var weeks [][]int
	week := make([]int, 7)
	col := offset
	for d := 1; d <= days; d++ {
		week[col] = d
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = make([]int, 7)
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}

// AddMonths moves (year, month) by delta months.
func AddMonths(year int, month time.Month, delta int) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	return t.Year(), t.Month()
}

func ParseDay(payload string) (time.Time, error) {
	return time.Parse(dayFmt, strings.TrimSpace(payload))
}

func ParseMonth(payload string) (int, time.Month, error) {
	t, err := time.Parse(monthFmt, strings.TrimSpace(payload))
	if err != nil {
		return 0, 0, err
	}
	return t.Year(), t.Month(), nil
}
