package service

import (
	"context"
	"fmt"

	"transapp/internal/domain"
)

type RateService struct {
	Repo domain.RateRepo
}

func NewRateService(repo domain.RateRepo) *RateService {
	return &RateService{Repo: repo}
}

// Table returns the stored rates. Missing rules resolve to defaults on lookup.
func (s *RateService) Table(ctx context.Context) (domain.RateTable, error) {
	return s.Repo.GetRates(ctx)
}

func (s *RateService) SetRate(ctx context.Context, key string, amount int64) error {
	rule, ok := domain.ParseRuleKey(key)
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownRule, key)
	}
	if amount < 0 {
		return domain.ErrNegativeAmount
	}
	return s.Repo.SetRate(ctx, rule, amount)
}
