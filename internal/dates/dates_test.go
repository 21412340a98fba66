package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayDiffIgnoresTimeOfDay(t *testing.T) {
	a := time.Date(2024, 1, 1, 23, 59, 0, 0, time.Local)
	b := time.Date(2024, 1, 2, 0, 1, 0, 0, time.Local)
	assert.Equal(t, 1, DayDiff(a, b))
	assert.Equal(t, -1, DayDiff(b, a))
	assert.Equal(t, 0, DayDiff(a, a))
}

func TestDayDiffAcrossMonths(t *testing.T) {
	a := time.Date(2024, 1, 31, 12, 0, 0, 0, time.Local)
	b := time.Date(2024, 3, 1, 1, 0, 0, 0, time.Local)
	assert.Equal(t, 30, DayDiff(a, b)) // 2024 is a leap year
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, 5, 10, 0, 0, 1, 0, time.Local)
	b := time.Date(2024, 5, 10, 23, 59, 59, 0, time.Local)
	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(a, b.AddDate(0, 0, 1)))
}

func TestParseAndFormatISO(t *testing.T) {
	parsed, err := ParseISO("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", FormatISO(parsed))

	_, err = ParseISO("not-a-date")
	assert.Error(t, err)
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2024, 1, 11, 9, 30, 0, 0, time.Local)
	clock := FixedClock{T: at}
	assert.Equal(t, "2024-01-11", TodayISO(clock))
	assert.Equal(t, "09:30", TimeNow(clock))
}
