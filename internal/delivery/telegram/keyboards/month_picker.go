package keyboards

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/telebot.v3"
)

const (
	// KeyMonthNav carries "<action>|<year>" and redraws the picker.
	KeyMonthNav = "month_nav"
	monthFmt    = "2006-01"
)

var shortMonths = [...]string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}

// BuildMonthKeyboard lays out twelve month buttons for year. Each button
// fires the action key with a "YYYY-MM" payload.
func BuildMonthKeyboard(year int, action, title string) (string, *telebot.ReplyMarkup) {
	markup := &telebot.ReplyMarkup{}

	rows := []telebot.Row{}
	for i := 0; i < 12; i += 3 {
		row := telebot.Row{}
		for m := i; m < i+3; m++ {
			row = append(row, markup.Data(shortMonths[m], action, fmt.Sprintf("%04d-%02d", year, m+1)))
		}
		rows = append(rows, row)
	}

	prev := markup.Data("← "+strconv.Itoa(year-1), KeyMonthNav, action, strconv.Itoa(year-1))
	next := markup.Data(strconv.Itoa(year+1)+" →", KeyMonthNav, action, strconv.Itoa(year+1))
	rows = append(rows, markup.Row(prev, next))

	markup.Inline(rows...)
	return fmt.Sprintf("%s: %d", title, year), markup
}

// ParseNav splits a month_nav payload.
func ParseNav(payload string) (action string, year int, err error) {
	action, raw, ok := strings.Cut(payload, "|")
	if !ok || action == "" {
		return "", 0, fmt.Errorf("bad month nav payload %q", payload)
	}
	year, err = strconv.Atoi(raw)
	if err != nil {
		return "", 0, fmt.Errorf("bad month nav year %q: %w", raw, err)
	}
	return action, year, nil
}

// MonthRange returns the first and last day of the "YYYY-MM" month.
func MonthRange(payload string) (from, to time.Time, err error) {
	from, err = time.Parse(monthFmt, strings.TrimSpace(payload))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, from.AddDate(0, 1, -1), nil
}
