package payroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transapp/internal/domain"
)

func TestCalculateAggregatesPerWorker(t *testing.T) {
	records := []domain.ShiftRecord{
		{Date: day("2025-01-27"), ShiftType: domain.ShiftFirst, WorkerName: "Luis", ExpectedCount: 3},
		{Date: day("2025-01-27"), ShiftType: domain.ShiftThird, WorkerName: "Ana", ExpectedCount: 2},
		{Date: day("2025-02-01"), ShiftType: domain.ShiftThird, WorkerName: "Ana", ExpectedCount: 2},
		{Date: day("2025-02-02"), ShiftType: domain.ShiftFirst, WorkerName: "Luis", ExpectedCount: 1},
		{Date: day("2025-01-29"), ShiftType: domain.ShiftSecond, WorkerName: "Luis", ExpectedCount: 4},
	}
	holidays := domain.NewHolidaySet(day("2025-01-29"))

	got := Calculate(records, holidays, domain.RateTable{})
	require.Len(t, got, 2)

	ana := got[0]
	assert.Equal(t, "Ana", ana.WorkerName)
	assert.Equal(t, int64(22500+27500), ana.TotalAmount)
	assert.Equal(t, domain.ShiftTotal{Count: 2, Amount: 50000}, ana.Breakdown[domain.ShiftThird])
	assert.Equal(t, 2, ana.ShiftCount())

	luis := got[1]
	assert.Equal(t, "Luis", luis.WorkerName)
	assert.Equal(t, int64(20000+35000+27500), luis.TotalAmount)
	assert.Equal(t, domain.ShiftTotal{Count: 2, Amount: 55000}, luis.Breakdown[domain.ShiftFirst])
	assert.Equal(t, domain.ShiftTotal{Count: 1, Amount: 27500}, luis.Breakdown[domain.ShiftSecond])
}

func TestCalculateEmpty(t *testing.T) {
	got := Calculate(nil, domain.NewHolidaySet(), nil)
	assert.Empty(t, got)
}

func TestSummarize(t *testing.T) {
	results := []domain.PaymentResult{
		{WorkerName: "a", TotalAmount: 40000, Breakdown: map[domain.ShiftType]domain.ShiftTotal{
			domain.ShiftFirst: {Count: 2, Amount: 40000},
		}},
		{WorkerName: "b", TotalAmount: 42500, Breakdown: map[domain.ShiftType]domain.ShiftTotal{
			domain.ShiftFirst: {Count: 1, Amount: 20000},
			domain.ShiftThird: {Count: 1, Amount: 22500},
		}},
	}
	s := Summarize(results)
	assert.Equal(t, 2, s.Workers)
	assert.Equal(t, 4, s.Shifts)
	assert.Equal(t, int64(82500), s.Amount)
	assert.Equal(t, domain.ShiftTotal{Count: 3, Amount: 60000}, s.ByShift[domain.ShiftFirst])
}
