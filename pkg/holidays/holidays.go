// Package holidays expands recurring national holidays into plain dates.
package holidays

import (
	"time"

	cal "github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/aa"
)

// Fixed-date national holidays not covered by the shared definitions.
var (
	IndependenceDay = &cal.Holiday{
		Name:  "Independence Day",
		Type:  cal.ObservancePublic,
		Month: time.July,
		Day:   20,
		Func:  cal.CalcDayOfMonth,
	}
	BattleOfBoyaca = &cal.Holiday{
		Name:  "Battle of Boyacá",
		Type:  cal.ObservancePublic,
		Month: time.August,
		Day:   7,
		Func:  cal.CalcDayOfMonth,
	}
)

// Builtin is a partial set of fixed and Easter based holidays. It does not
// move holidays to Monday, so it is opt-in and stored holidays stay the
// source of truth.
var Builtin = []*cal.Holiday{
	aa.NewYear,
	aa.MaundyThursday,
	aa.GoodFriday,
	aa.WorkersDay,
	IndependenceDay,
	BattleOfBoyaca,
	aa.ImmaculateConception,
	aa.ChristmasDay,
}

// Calendar evaluates a list of recurring holidays.
type Calendar struct {
	bc *cal.BusinessCalendar
}

func New(hols ...*cal.Holiday) *Calendar {
	bc := cal.NewBusinessCalendar()
	bc.AddHoliday(hols...)
	return &Calendar{bc: bc}
}

func Default() *Calendar {
	return New(Builtin...)
}

// IsHoliday reports whether t is the actual date of a holiday.
func (c *Calendar) IsHoliday(t time.Time) bool {
	actual, _, _ := c.bc.IsHoliday(t)
	return actual
}

// Occurrence is one holiday on one date.
type Occurrence struct {
	Date time.Time
	Name string
}

// Between returns every holiday in [from, to], day resolution.
func (c *Calendar) Between(from, to time.Time) []Occurrence {
	from = dayOf(from)
	to = dayOf(to)
	var out []Occurrence
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if actual, _, h := c.bc.IsHoliday(d); actual && h != nil {
			out = append(out, Occurrence{Date: d, Name: h.Name})
		}
	}
	return out
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
