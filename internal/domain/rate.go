package domain

import (
	"context"
	"strings"
)

// RuleKey names one pay rule of the rate table.
type RuleKey string

const (
	RuleSunday             RuleKey = "sunday"
	RuleHoliday            RuleKey = "holiday"
	RuleThirdShiftSaturday RuleKey = "thirdShiftSaturday"
	RuleThirdShiftWeekday  RuleKey = "thirdShiftWeekday"
	RuleFirstSecondShift   RuleKey = "firstSecondShift"
)

// RuleKeys lists every rule in resolution order.
var RuleKeys = []RuleKey{
	RuleSunday,
	RuleHoliday,
	RuleThirdShiftSaturday,
	RuleThirdShiftWeekday,
	RuleFirstSecondShift,
}

// DefaultRates apply when a table has no entry for a rule.
var DefaultRates = map[RuleKey]int64{
	RuleSunday:             35000,
	RuleHoliday:            27500,
	RuleThirdShiftSaturday: 27500,
	RuleThirdShiftWeekday:  22500,
	RuleFirstSecondShift:   20000,
}

func (k RuleKey) Valid() bool {
	_, ok := DefaultRates[k]
	return ok
}

// ParseRuleKey matches a rule key case-insensitively.
func ParseRuleKey(s string) (RuleKey, bool) {
	for _, k := range RuleKeys {
		if strings.EqualFold(string(k), strings.TrimSpace(s)) {
			return k, true
		}
	}
	return "", false
}

// RateTable maps rule keys to whole currency amounts.
type RateTable map[RuleKey]int64

// Amount returns the table entry for key, or the default when absent.
func (t RateTable) Amount(key RuleKey) int64 {
	if v, ok := t[key]; ok {
		return v
	}
	return DefaultRates[key]
}

// Effective returns a full table with defaults filled in.
func (t RateTable) Effective() RateTable {
	out := make(RateTable, len(RuleKeys))
	for _, k := range RuleKeys {
		out[k] = t.Amount(k)
	}
	return out
}

type RateRepo interface {
	GetRates(ctx context.Context) (RateTable, error)
	SetRate(ctx context.Context, key RuleKey, amount int64) error
}
