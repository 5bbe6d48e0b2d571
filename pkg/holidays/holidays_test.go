package holidays

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDefaultCalendar(t *testing.T) {
	c := Default()
	assert.True(t, c.IsHoliday(date(2025, time.January, 1)))
	assert.True(t, c.IsHoliday(date(2025, time.May, 1)))
	assert.True(t, c.IsHoliday(date(2025, time.July, 20)))
	assert.True(t, c.IsHoliday(date(2025, time.December, 25)))
	assert.True(t, c.IsHoliday(date(2025, time.April, 18))) // Good Friday 2025
	assert.False(t, c.IsHoliday(date(2025, time.January, 27)))
}

func TestBetween(t *testing.T) {
	got := Default().Between(date(2025, time.July, 1), date(2025, time.August, 31))
	assert.Equal(t, []Occurrence{
		{Date: date(2025, time.July, 20), Name: "Independence Day"},
		{Date: date(2025, time.August, 7), Name: "Battle of Boyacá"},
	}, got)

	assert.Empty(t, Default().Between(date(2025, time.February, 1), date(2025, time.February, 28)))
}
