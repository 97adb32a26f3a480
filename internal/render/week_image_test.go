package render

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/schedule"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWeek() []*model.CalendarDayEntry {
	monday := time.Date(2024, 9, 9, 0, 0, 0, 0, time.UTC)
	days := make([]*model.CalendarDayEntry, 0, schedule.DaysInWeek)
	for i := 0; i < schedule.DaysInWeek; i++ {
		days = append(days, &model.CalendarDayEntry{Date: monday.AddDate(0, 0, i)})
	}

	lesson := &model.Lesson{
		ID:      uuid.New(),
		Day:     schedule.Monday,
		Start:   schedule.MustTimeOfDay(9, 0),
		End:     schedule.MustTimeOfDay(10, 30),
		Subject: &model.Subject{Name: "Математический анализ", Color: "blue"},
	}
	days[0].Entries = append(days[0].Entries, model.LessonCalendarEvent(lesson, days[0].Date))
	days[2].Entries = append(days[2].Entries, model.EventCalendarEvent(&model.Event{
		ID:    uuid.New(),
		Title: "Экзамен",
		Start: days[2].Date.Add(14 * time.Hour),
		End:   days[2].Date.Add(16 * time.Hour),
	}))
	return days
}

func TestWeekImage_RendersPNG(t *testing.T) {
	data, err := WeekImage(testWeek(), time.Date(2024, 9, 10, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, imageWidth, img.Bounds().Dx())
	assert.Equal(t, imageHeight, img.Bounds().Dy())
}

func TestWeekImage_RequiresSevenDays(t *testing.T) {
	_, err := WeekImage(testWeek()[:3], time.Now())
	assert.ErrorIs(t, err, ErrWeekLength)
}

func TestCalculateHourRange(t *testing.T) {
	hours := calculateHourRange(testWeek())
	assert.Equal(t, 8, hours.start)
	assert.Equal(t, 17, hours.end)
	assert.Equal(t, 9, hours.total)

	empty := make([]*model.CalendarDayEntry, schedule.DaysInWeek)
	for i := range empty {
		empty[i] = &model.CalendarDayEntry{}
	}
	hours = calculateHourRange(empty)
	assert.Equal(t, defaultMinHour-hourPaddingTop, hours.start)
	assert.Equal(t, defaultMaxHour+hourPaddingBot, hours.end)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Физика", truncate("Физика", 10))
	assert.Equal(t, "Мате…", truncate("Математика", 5))
}
