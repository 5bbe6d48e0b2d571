package schedule

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"transapp/internal/domain"
)

func workbook(t *testing.T, rows ...[]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadAndParseWorkbook(t *testing.T) {
	buf := workbook(t,
		[]any{"Programación semana 5"},
		[]any{},
		[]any{"Fecha", "Turno", "Conductor", "Cantidad esperada"},
		[]any{"2025-01-27", "PRIMER TURNO", "Ana  Pérez", 3},
		[]any{"27/01/2025", "TERCER TURNO", "Luis", 2},
		[]any{"2025-01-28", "FOURTH TURNO", "Luis", 5},
		[]any{"2025-01-28", "SEGUNDO TURNO", "Luis", 0},
		[]any{"2025-01-28", "SEGUNDO TURNO", "Luis", "abc"},
		[]any{},
		[]any{"mañana", "SEGUNDO TURNO", "Luis", 1},
		[]any{"2025-01-29", "SEGUNDO TURNO", "", 1},
	)

	rows, err := ReadRows(buf, "semana5.xlsx")
	require.NoError(t, err)

	res, err := Parse(rows, DefaultAllowedShiftTypes(), DefaultMapping())
	require.NoError(t, err)
	assert.Equal(t, 3, res.HeaderRow)

	require.Len(t, res.Records, 2)
	assert.Equal(t, domain.ShiftRecord{
		Date:          time.Date(2025, 1, 27, 0, 0, 0, 0, time.UTC),
		ShiftType:     domain.ShiftFirst,
		WorkerName:    "Ana Pérez",
		ExpectedCount: 3,
	}, res.Records[0])
	assert.Equal(t, domain.ShiftThird, res.Records[1].ShiftType)
	assert.True(t, res.Records[1].Date.Equal(res.Records[0].Date))

	reasons := make(map[int]string)
	for _, r := range res.Rejections {
		reasons[r.Row] = r.Reason
	}
	assert.Equal(t, map[int]string{
		6:  string(ReasonUnknownShiftType),
		7:  string(ReasonNonPositiveExpectedCount),
		8:  string(ReasonInvalidExpectedCount),
		10: string(ReasonInvalidDate),
		11: string(ReasonMissingWorker),
	}, reasons)
}

func TestParseMissingColumns(t *testing.T) {
	rows := [][]string{{"Fecha", "Turno"}, {"2025-01-27", "PRIMER TURNO"}}
	_, err := Parse(rows, DefaultAllowedShiftTypes(), DefaultMapping())
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestParseRejectsRepeatedShift(t *testing.T) {
	rows := [][]string{
		{"Fecha", "Turno", "Conductor", "Cantidad esperada"},
		{"2025-01-27", "PRIMER TURNO", "Ana", "1"},
		{"2025-01-27", "primero", " ana ", "2"},
		{"2025-01-27", "SEGUNDO TURNO", "Ana", "1"},
	}
	res, err := Parse(rows, DefaultAllowedShiftTypes(), DefaultMapping())
	require.NoError(t, err)
	require.Len(t, res.Records, 2)
	assert.Equal(t, 1, res.Records[0].ExpectedCount)
	require.Len(t, res.Rejections, 1)
	assert.Equal(t, domain.Rejection{Row: 3, Reason: string(ReasonDuplicateShift), Value: "row 2"}, res.Rejections[0])
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse(nil, DefaultAllowedShiftTypes(), DefaultMapping())
	assert.ErrorIs(t, err, ErrEmptyWorksheet)
}

func TestReadRowsRejectsUnknownExtension(t *testing.T) {
	_, err := ReadRows(bytes.NewBufferString("a,b"), "schedule.csv")
	assert.ErrorIs(t, err, ErrUnsupportedFile)
}

func TestParseDate(t *testing.T) {
	want := time.Date(2025, 1, 27, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2025-01-27", "27/01/2025", "27/1/2025", "27-01-2025", "2025/01/27", "45684", "45684.5", "2025-01-27 06:00:00"} {
		got, ok := ParseDate(in)
		if assert.True(t, ok, in) {
			assert.True(t, want.Equal(got), "%s -> %s", in, got)
		}
	}
	for _, in := range []string{"", "2025", "abc", "31/02/2025"} {
		_, ok := ParseDate(in)
		assert.False(t, ok, in)
	}
}
