package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekdayOf_NormalizesSundayToLast(t *testing.T) {
	tests := []struct {
		in   time.Weekday
		want Weekday
	}{
		{time.Monday, Monday},
		{time.Tuesday, Tuesday},
		{time.Wednesday, Wednesday},
		{time.Thursday, Thursday},
		{time.Friday, Friday},
		{time.Saturday, Saturday},
		{time.Sunday, Sunday},
	}

	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			got := WeekdayOf(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.TimeWeekday())
		})
	}
}

func TestWeekday_NextSevenTimesReturnsToStart(t *testing.T) {
	for _, d := range Weekdays() {
		got := d
		for i := 0; i < DaysInWeek; i++ {
			got = got.Next()
		}
		assert.Equal(t, d, got, "day %s", d)
	}
}

func TestWeekday_NextWrapsSunday(t *testing.T) {
	assert.Equal(t, Monday, Sunday.Next())
	assert.Equal(t, Sunday, Saturday.Next())
	assert.Equal(t, Sunday, Monday.Previous())
}

func TestCompare_TotalOrderMondayFirst(t *testing.T) {
	days := Weekdays()
	for i, a := range days {
		for j, b := range days {
			got := Compare(a, b)
			switch {
			case i < j:
				assert.Equal(t, -1, got, "%s vs %s", a, b)
			case i > j:
				assert.Equal(t, 1, got, "%s vs %s", a, b)
			default:
				assert.Equal(t, 0, got, "%s vs %s", a, b)
			}
		}
	}
	assert.Equal(t, -1, Compare(Saturday, Sunday))
	assert.Equal(t, 1, Compare(Sunday, Monday))
}

func TestIsToday(t *testing.T) {
	sunday := time.Date(2024, 9, 8, 12, 0, 0, 0, time.UTC)
	require.Equal(t, time.Sunday, sunday.Weekday())

	assert.True(t, IsToday(Sunday, sunday))
	assert.False(t, IsToday(Monday, sunday))
	assert.True(t, IsToday(Monday, sunday.AddDate(0, 0, 1)))
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in   string
		want Weekday
	}{
		{"Пн", Monday},
		{"вторник", Tuesday},
		{"SUN", Sunday},
		{"friday", Friday},
	}
	for _, tt := range tests {
		got, err := ParseWeekday(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseWeekday("someday")
	assert.Error(t, err)
}

func TestWeekdayFromIndex(t *testing.T) {
	d, err := WeekdayFromIndex(6)
	require.NoError(t, err)
	assert.Equal(t, Sunday, d)

	_, err = WeekdayFromIndex(7)
	assert.Error(t, err)
	_, err = WeekdayFromIndex(-1)
	assert.Error(t, err)
}

func TestDaysUntil(t *testing.T) {
	assert.Equal(t, 0, DaysUntil(Monday, Monday))
	assert.Equal(t, 6, DaysUntil(Monday, Sunday))
	assert.Equal(t, 1, DaysUntil(Sunday, Monday))
	assert.Equal(t, 5, DaysUntil(Wednesday, Monday))
}
