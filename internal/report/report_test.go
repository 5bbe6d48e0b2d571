package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"transapp/internal/domain"
)

var sample = []domain.PaymentResult{
	{WorkerName: "Ana", TotalAmount: 47500, Breakdown: map[domain.ShiftType]domain.ShiftTotal{
		domain.ShiftFirst:  {Count: 1, Amount: 20000},
		domain.ShiftSecond: {Count: 1, Amount: 27500},
	}},
	{WorkerName: "Luis", TotalAmount: 85000, Breakdown: map[domain.ShiftType]domain.ShiftTotal{
		domain.ShiftFirst: {Count: 1, Amount: 35000},
		domain.ShiftThird: {Count: 2, Amount: 50000},
	}},
}

var (
	from = time.Date(2025, 1, 27, 0, 0, 0, 0, time.UTC)
	to   = time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC)
)

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "worker,first_shifts,first_amount,second_shifts,second_amount,third_shifts,third_amount,total", lines[0])
	assert.Equal(t, "Ana,1,20000,1,27500,0,0,47500", lines[1])
	assert.Equal(t, "Luis,1,35000,0,0,2,50000,85000", lines[2])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sample, from, to))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, "Nómina 2025-01-27 a 2025-02-02", rows[0][0])
	assert.Equal(t, "Trabajador", rows[2][0])
	assert.Equal(t, []string{"Luis", "1", "35000", "0", "0", "2", "50000", "85000"}, rows[4])
	assert.Equal(t, []string{"TOTAL", "2", "55000", "1", "27500", "2", "50000", "132500"}, rows[5])
}

func TestText(t *testing.T) {
	out := Text(sample, from, to)
	assert.Contains(t, out, "Nómina 27.01.2025 a 02.02.2025")
	assert.Contains(t, out, "Luis: $85.000")
	assert.Contains(t, out, "Tercer turno: 2 turnos, $50.000")
	assert.NotContains(t, out, "Ana: $47.500\n  Tercer")
	assert.Contains(t, out, "Total: $132.500 (5 turnos, 2 trabajadores)")

	assert.Contains(t, Text(nil, from, to), "Sin turnos")
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$0", Money(0))
	assert.Equal(t, "$950", Money(950))
	assert.Equal(t, "$20.000", Money(20000))
	assert.Equal(t, "$1.234.567", Money(1234567))
	assert.Equal(t, "$-35.000", Money(-35000))
}
