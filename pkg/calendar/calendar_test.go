package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrid(t *testing.T) {
	feb := Grid(2025, time.February)
	require.Len(t, feb, 5)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 1, 2}, feb[0])
	assert.Equal(t, []int{24, 25, 26, 27, 28, 0, 0}, feb[4])

	sep := Grid(2025, time.September)
	require.Len(t, sep, 5)
	assert.Equal(t, 1, sep[0][0])
	assert.Equal(t, []int{29, 30, 0, 0, 0, 0, 0}, sep[4])
}

func TestAddMonths(t *testing.T) {
	y, m := AddMonths(2025, time.January, -1)
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.December, m)

	y, m = AddMonths(2025, time.December, 1)
	assert.Equal(t, 2026, y)
	assert.Equal(t, time.January, m)
}

func TestParsePayloads(t *testing.T) {
	d, err := ParseDay("2025-07-20")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 7, 20, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDay("20-7-2025")
	assert.Error(t, err)

	y, m, err := ParseMonth("2025-03")
	require.NoError(t, err)
	assert.Equal(t, 2025, y)
	assert.Equal(t, time.March, m)

	_, _, err = ParseMonth("2025-13")
	assert.Error(t, err)
}

func TestKeyboardTitleAndMarks(t *testing.T) {
	cc := &CalendarController{
		Title:  "Festivo",
		Marked: func(d time.Time) bool { return d.Day() == 7 },
	}
	title, markup := cc.Keyboard(2025, time.August)
	assert.Equal(t, "Festivo: Agosto 2025", title)

	var marked []string
	for _, row := range markup.InlineKeyboard {
		for _, b := range row {
			if strings.HasSuffix(b.Text, "*") {
				marked = append(marked, b.Data)
			}
		}
	}
	require.Len(t, marked, 1)
	assert.True(t, strings.HasSuffix(marked[0], "2025-08-07"))
	assert.Equal(t, "Septiembre", MonthName(time.September))
}
