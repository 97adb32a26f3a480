package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-09-09 понедельник
func monday(hour, minute int) time.Time {
	return time.Date(2024, 9, 9, hour, minute, 0, 0, time.UTC)
}

func TestParseTimeOfDay(t *testing.T) {
	got, err := ParseTimeOfDay("9:05")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay{Hour: 9, Minute: 5}, got)
	assert.Equal(t, "09:05", got.String())

	for _, bad := range []string{"", "24:00", "12:60", "12", "ab:cd", "12:5"} {
		_, err := ParseTimeOfDay(bad)
		assert.ErrorIs(t, err, ErrInvalidTime, bad)
	}
}

func TestIsWithin_InclusiveBoundaries(t *testing.T) {
	start := MustTimeOfDay(9, 0)
	end := MustTimeOfDay(10, 0)

	assert.True(t, IsWithin(start, start, end))
	assert.True(t, IsWithin(end, start, end))
	assert.True(t, IsWithin(MustTimeOfDay(9, 30), start, end))
	assert.False(t, IsWithin(MustTimeOfDay(8, 59), start, end))
	assert.False(t, IsWithin(MustTimeOfDay(10, 1), start, end))
}

func TestNewInterval_RequiresEndAfterStart(t *testing.T) {
	_, err := NewInterval(Monday, MustTimeOfDay(10, 0), MustTimeOfDay(10, 0))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = NewInterval(Monday, MustTimeOfDay(10, 0), MustTimeOfDay(9, 0))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	iv, err := NewInterval(Monday, MustTimeOfDay(9, 0), MustTimeOfDay(10, 30))
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, iv.Duration())
}

func TestInterval_IsActiveAt(t *testing.T) {
	iv := Interval{Day: Monday, Start: MustTimeOfDay(9, 0), End: MustTimeOfDay(10, 0)}

	assert.True(t, iv.IsActiveAt(monday(9, 0)))
	assert.True(t, iv.IsActiveAt(monday(9, 30)))
	assert.True(t, iv.IsActiveAt(monday(10, 0)))
	assert.False(t, iv.IsActiveAt(monday(10, 1)))
	assert.False(t, iv.IsActiveAt(monday(9, 30).AddDate(0, 0, 1)))
}

func TestSortEntries_MondayFirst(t *testing.T) {
	entries := []Entry[string]{
		NewEntry(Interval{Day: Sunday, Start: MustTimeOfDay(8, 0), End: MustTimeOfDay(9, 0)}, "sun"),
		NewEntry(Interval{Day: Monday, Start: MustTimeOfDay(10, 0), End: MustTimeOfDay(11, 0)}, "mon-10"),
		NewEntry(Interval{Day: Monday, Start: MustTimeOfDay(8, 0), End: MustTimeOfDay(10, 0)}, "mon-8-long"),
		NewEntry(Interval{Day: Monday, Start: MustTimeOfDay(8, 0), End: MustTimeOfDay(9, 0)}, "mon-8-short"),
	}

	got := Payloads(SortEntries(entries))
	assert.Equal(t, []string{"mon-8-short", "mon-8-long", "mon-10", "sun"}, got)
	assert.Equal(t, "sun", entries[0].Payload, "input must not be reordered")
}

func TestGroupByDay(t *testing.T) {
	entries := []Entry[int]{
		NewEntry(Interval{Day: Sunday, Start: MustTimeOfDay(8, 0), End: MustTimeOfDay(9, 0)}, 1),
		NewEntry(Interval{Day: Wednesday, Start: MustTimeOfDay(12, 0), End: MustTimeOfDay(13, 0)}, 2),
		NewEntry(Interval{Day: Wednesday, Start: MustTimeOfDay(8, 0), End: MustTimeOfDay(9, 0)}, 3),
	}

	week := GroupByDay(entries)
	assert.False(t, week.Empty())
	assert.Empty(t, week.Day(Monday))
	assert.Equal(t, []int{3, 2}, Payloads(week.Day(Wednesday)))
	assert.Equal(t, []int{1}, Payloads(week.Day(Sunday)))

	assert.True(t, GroupByDay[int](nil).Empty())
}

func TestStartOfWeek(t *testing.T) {
	sunday := time.Date(2024, 9, 15, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, monday(0, 0), StartOfWeek(sunday))
	assert.Equal(t, monday(0, 0), StartOfWeek(monday(23, 59)))
	assert.Equal(t, time.Date(2024, 9, 11, 0, 0, 0, 0, time.UTC), DateFor(Wednesday, sunday))
	assert.Equal(t, time.Date(2024, 9, 9, 23, 59, 59, 0, time.UTC), EndOfDay(monday(12, 0)))
}
