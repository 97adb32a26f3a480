package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/render"
	"github.com/Freeeeeet/timetable_bot/internal/schedule"
	"github.com/google/uuid"
)

func main() {
	now := time.Now()
	weekStart := schedule.StartOfWeek(now)

	// Тестовые предметы
	math := &model.Subject{ID: uuid.New(), Name: "Алгебра", Color: "blue"}
	russian := &model.Subject{ID: uuid.New(), Name: "Русский язык", Color: "green"}
	physics := &model.Subject{ID: uuid.New(), Name: "Физика", Color: "orange"}

	lessons := []*model.Lesson{
		lesson(math, schedule.Monday, 8, 30, 9, 15),
		lesson(russian, schedule.Monday, 9, 25, 10, 10),
		lesson(physics, schedule.Tuesday, 10, 20, 11, 5),
		lesson(math, schedule.Wednesday, 8, 30, 9, 15),
		lesson(russian, schedule.Thursday, 12, 0, 12, 45),
		lesson(physics, schedule.Friday, 9, 25, 10, 10),
	}

	events := []*model.Event{
		{
			ID:    uuid.New(),
			Title: "Родительское собрание",
			Start: weekStart.AddDate(0, 0, 2).Add(18 * time.Hour),
			End:   weekStart.AddDate(0, 0, 2).Add(19 * time.Hour),
		},
		{
			ID:     uuid.New(),
			Title:  "Экскурсия",
			Start:  weekStart.AddDate(0, 0, 5),
			End:    schedule.EndOfDay(weekStart.AddDate(0, 0, 5)),
			AllDay: true,
		},
	}

	// Раскладываем по дням недели
	days := make([]*model.CalendarDayEntry, 0, schedule.DaysInWeek)
	week := schedule.GroupByDay(model.LessonEntries(lessons))
	for _, d := range schedule.Weekdays() {
		date := weekStart.AddDate(0, 0, d.Index())
		day := &model.CalendarDayEntry{Date: date}
		for _, l := range schedule.Payloads(week.Day(d)) {
			day.Entries = append(day.Entries, model.LessonCalendarEvent(l, date))
		}
		for _, e := range events {
			if schedule.StartOfDay(e.Start).Equal(date) {
				day.Entries = append(day.Entries, model.EventCalendarEvent(e))
			}
		}
		days = append(days, day)
	}

	// Генерируем изображение
	imageData, err := render.WeekImage(days, now)
	if err != nil {
		fmt.Printf("Ошибка генерации изображения: %v\n", err)
		os.Exit(1)
	}

	filename := "week.png"
	if len(os.Args) > 1 {
		filename = os.Args[1]
	}
	if err := os.WriteFile(filename, imageData, 0644); err != nil {
		fmt.Printf("Ошибка сохранения файла: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Изображение успешно сохранено в %s\n", filename)
	fmt.Printf("📅 Неделя: %s - %s\n", weekStart.Format("02.01.2006"), weekStart.AddDate(0, 0, 6).Format("02.01.2006"))
	fmt.Printf("📊 Уроков: %d, событий: %d\n", len(lessons), len(events))
}

func lesson(subject *model.Subject, day schedule.Weekday, h1, m1, h2, m2 int) *model.Lesson {
	return &model.Lesson{
		ID:        uuid.New(),
		SubjectID: subject.ID,
		Subject:   subject,
		Day:       day,
		Start:     schedule.MustTimeOfDay(h1, m1),
		End:       schedule.MustTimeOfDay(h2, m2),
	}
}
