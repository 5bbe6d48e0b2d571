package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func setup(t *testing.T) (dir string, out *bytes.Buffer) {
	t.Helper()
	dir = t.TempDir()
	t.Setenv("DB_PATH", filepath.Join(dir, "test.db"))
	t.Setenv("BUILTIN_HOLIDAYS", "false")
	t.Setenv("LOG_LEVEL", "error")

	out = &bytes.Buffer{}
	prev := Stdout
	Stdout = out
	t.Cleanup(func() { Stdout = prev })
	return dir, out
}

func writeSchedule(t *testing.T, path string) {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	rows := [][]any{
		{"Fecha", "Turno", "Conductor", "Cantidad esperada"},
		{"2025-01-27", "PRIMER TURNO", "Ana", 1},
		{"2025-02-01", "TERCER TURNO", "Ana", 1},
		{"2025-02-02", "SEGUNDO TURNO", "Luis", 1},
		{"2025-02-02", "QUINTO", "Luis", 1},
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		row := r
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
}

func TestUsageErrors(t *testing.T) {
	setup(t)
	assert.ErrorIs(t, Execute([]string{"nope"}), ErrUsage)
	assert.ErrorIs(t, Execute([]string{"import"}), ErrUsage)
	assert.ErrorIs(t, Execute([]string{"payroll", "-from", "2025-01-01"}), ErrUsage)
	assert.ErrorIs(t, Execute([]string{"payroll", "-from", "2025-01-01", "-to", "2025-01-31", "-out", "x.pdf"}), ErrUsage)
}

func TestImportThenPayroll(t *testing.T) {
	dir, out := setup(t)
	file := filepath.Join(dir, "semana.xlsx")
	writeSchedule(t, file)

	require.NoError(t, Execute([]string{"import", file}))
	assert.Contains(t, out.String(), "row 5: unknown_shift_type")
	assert.Contains(t, out.String(), "3 shifts 2025-01-27..2025-02-02, 1 rejected")

	out.Reset()
	require.NoError(t, Execute([]string{"payroll", "-from", "2025-01-27", "-to", "2025-02-02"}))
	assert.Contains(t, out.String(), "Ana: $47.500")
	assert.Contains(t, out.String(), "Luis: $35.000")

	csvPath := filepath.Join(dir, "nomina.csv")
	require.NoError(t, Execute([]string{"payroll", "-from", "2025-01-27", "-to", "2025-02-02", "-out", csvPath}))
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Ana,1,20000,0,0,1,27500,47500", lines[1])
}
