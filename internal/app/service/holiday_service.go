package service

import (
	"context"
	"sort"
	"time"

	"transapp/internal/domain"
	"transapp/pkg/holidays"
)

type HolidayService struct {
	Repo domain.HolidayRepo
	// Builtin adds recurring national holidays; nil disables them.
	Builtin *holidays.Calendar
}

func NewHolidayService(repo domain.HolidayRepo, builtin *holidays.Calendar) *HolidayService {
	return &HolidayService{Repo: repo, Builtin: builtin}
}

func (s *HolidayService) Add(ctx context.Context, date time.Time, name string) error {
	return s.Repo.AddHoliday(ctx, domain.Holiday{Date: domain.Day(date), Name: name})
}

func (s *HolidayService) Remove(ctx context.Context, date time.Time) error {
	ok, err := s.Repo.RemoveHoliday(ctx, domain.Day(date))
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// List returns stored and built-in holidays in [from, to], sorted by date.
// A stored holiday hides a built-in one on the same day.
func (s *HolidayService) List(ctx context.Context, from, to time.Time) ([]domain.Holiday, error) {
	stored, err := s.Repo.GetHolidays(ctx, from, to)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(stored))
	out := append([]domain.Holiday{}, stored...)
	for _, h := range stored {
		seen[h.Date.Format(domain.DateLayout)] = struct{}{}
	}
	if s.Builtin != nil {
		for _, o := range s.Builtin.Between(from, to) {
			if _, dup := seen[o.Date.Format(domain.DateLayout)]; dup {
				continue
			}
			out = append(out, domain.Holiday{Date: o.Date, Name: o.Name})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// Set returns the holidays of [from, to] as a HolidaySet.
func (s *HolidayService) Set(ctx context.Context, from, to time.Time) (domain.HolidaySet, error) {
	list, err := s.List(ctx, from, to)
	if err != nil {
		return domain.HolidaySet{}, err
	}
	dates := make([]time.Time, len(list))
	for i, h := range list {
		dates[i] = h.Date
	}
	return domain.NewHolidaySet(dates...), nil
}
