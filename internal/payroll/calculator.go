package payroll

import (
	"sort"

	"transapp/internal/domain"
)

// Calculate aggregates records per worker. Results are sorted by worker name.
func Calculate(records []domain.ShiftRecord, holidays domain.HolidaySet, rates domain.RateTable) []domain.PaymentResult {
	byWorker := make(map[string]*domain.PaymentResult)
	for _, rec := range records {
		res, ok := byWorker[rec.WorkerName]
		if !ok {
			res = &domain.PaymentResult{
				WorkerName: rec.WorkerName,
				Breakdown:  make(map[domain.ShiftType]domain.ShiftTotal),
			}
			byWorker[rec.WorkerName] = res
		}
		amount := Resolve(rec.Date, rec.ShiftType, holidays, rates)
		t := res.Breakdown[rec.ShiftType]
		t.Count++
		t.Amount += amount
		res.Breakdown[rec.ShiftType] = t
		res.TotalAmount += amount
	}

	out := make([]domain.PaymentResult, 0, len(byWorker))
	for _, res := range byWorker {
		out = append(out, *res)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WorkerName < out[j].WorkerName })
	return out
}

type Totals struct {
	Workers int
	Shifts  int
	Amount  int64
	ByShift map[domain.ShiftType]domain.ShiftTotal
}

func Summarize(results []domain.PaymentResult) Totals {
	t := Totals{
		Workers: len(results),
		ByShift: make(map[domain.ShiftType]domain.ShiftTotal),
	}
	for _, r := range results {
		t.Amount += r.TotalAmount
		for st, bt := range r.Breakdown {
			acc := t.ByShift[st]
			acc.Count += bt.Count
			acc.Amount += bt.Amount
			t.ByShift[st] = acc
			t.Shifts += bt.Count
		}
	}
	return t
}
