package telegram

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transapp/internal/domain"
)

func TestParseSetRate(t *testing.T) {
	key, amount, err := parseSetRate([]string{"sunday", "$40.000"})
	require.NoError(t, err)
	assert.Equal(t, "sunday", key)
	assert.Equal(t, int64(40000), amount)

	_, _, err = parseSetRate([]string{"sunday"})
	assert.Error(t, err)
	_, _, err = parseSetRate([]string{"sunday", "mucho"})
	assert.Error(t, err)
}

func TestParsePaid(t *testing.T) {
	name, from, to, err := parsePaid([]string{"Ana", "María", "2025-01-01", "2025-01-31"})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", name)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), to)

	_, _, _, err = parsePaid([]string{"2025-01-01", "2025-01-31"})
	assert.Error(t, err)
	_, _, _, err = parsePaid([]string{"Ana", "enero", "2025-01-31"})
	assert.Error(t, err)
}

func TestImportSummary(t *testing.T) {
	rep := domain.ImportReport{
		BatchID:   "b1",
		Filename:  "semana.xlsx",
		Accepted:  3,
		FirstDate: time.Date(2025, 1, 27, 0, 0, 0, 0, time.UTC),
		LastDate:  time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC),
	}
	for i := 0; i < 7; i++ {
		rep.Rejected = append(rep.Rejected, domain.Rejection{Row: i + 2, Reason: "unknown_shift_type", Value: "CUARTO"})
	}

	out := importSummary(rep)
	assert.Contains(t, out, "Importado semana.xlsx: 3 turnos del 2025-01-27 al 2025-02-02")
	assert.Contains(t, out, "Lote: b1")
	assert.Contains(t, out, "Rechazadas: 7")
	assert.Contains(t, out, `Fila 2: unknown_shift_type ("CUARTO")`)
	assert.Contains(t, out, "...y 2 más")
	assert.Equal(t, shownRejects, strings.Count(out, "Fila "))

	empty := importSummary(domain.ImportReport{Rejected: rep.Rejected[:1]})
	assert.True(t, strings.HasPrefix(empty, "Ninguna fila válida"))
}

func TestRatesText(t *testing.T) {
	out := ratesText(domain.RateTable{domain.RuleSunday: 40000})
	assert.Contains(t, out, "sunday: $40.000")
	assert.Contains(t, out, "firstSecondShift: $20.000")
}
