// Package payroll turns accepted shift records into payment amounts.
package payroll

import (
	"time"

	"transapp/internal/domain"
)

// RuleFor returns the single rate rule that applies to a shift. The order is
// fixed: Sunday, holiday, Saturday third shift, weekday third shift, then the
// first/second shift rate. Shift types other than third fall through to the
// last rule.
func RuleFor(date time.Time, shiftType domain.ShiftType, holidays domain.HolidaySet) domain.RuleKey {
	switch {
	case date.Weekday() == time.Sunday:
		return domain.RuleSunday
	case holidays.Contains(date):
		return domain.RuleHoliday
	case shiftType == domain.ShiftThird && date.Weekday() == time.Saturday:
		return domain.RuleThirdShiftSaturday
	case shiftType == domain.ShiftThird:
		return domain.RuleThirdShiftWeekday
	default:
		return domain.RuleFirstSecondShift
	}
}

// Resolve returns the amount paid for one shift.
func Resolve(date time.Time, shiftType domain.ShiftType, holidays domain.HolidaySet, rates domain.RateTable) int64 {
	return rates.Amount(RuleFor(date, shiftType, holidays))
}
