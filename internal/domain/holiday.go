package domain

import (
	"context"
	"sort"
	"time"
)

type Holiday struct {
	Date time.Time
	Name string
}

// HolidaySet is a set of calendar days. The zero value is an empty set.
type HolidaySet struct {
	days map[string]struct{}
}

func NewHolidaySet(dates ...time.Time) HolidaySet {
	s := HolidaySet{days: make(map[string]struct{}, len(dates))}
	for _, d := range dates {
		s.days[d.Format(DateLayout)] = struct{}{}
	}
	return s
}

// Add returns a set that also contains dates. The receiver is not modified.
func (s HolidaySet) Add(dates ...time.Time) HolidaySet {
	out := HolidaySet{days: make(map[string]struct{}, len(s.days)+len(dates))}
	for k := range s.days {
		out.days[k] = struct{}{}
	}
	for _, d := range dates {
		out.days[d.Format(DateLayout)] = struct{}{}
	}
	return out
}

// Contains reports whether the calendar day of t is in the set.
func (s HolidaySet) Contains(t time.Time) bool {
	_, ok := s.days[t.Format(DateLayout)]
	return ok
}

func (s HolidaySet) Len() int { return len(s.days) }

// Dates returns the set sorted ascending.
func (s HolidaySet) Dates() []time.Time {
	out := make([]time.Time, 0, len(s.days))
	for k := range s.days {
		d, err := time.Parse(DateLayout, k)
		if err != nil {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

type HolidayRepo interface {
	AddHoliday(ctx context.Context, h Holiday) error
	RemoveHoliday(ctx context.Context, date time.Time) (bool, error)
	GetHolidays(ctx context.Context, from, to time.Time) ([]Holiday, error)
}
