package formatting

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/schedule"
)

// FormatDateTime форматирует дату и время
func FormatDateTime(t time.Time) string {
	return t.Format("02.01.2006 15:04")
}

// FormatDate форматирует только дату
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatDateWithWeekday форматирует дату с днём недели: "Пн, 09.09.2024"
func FormatDateWithWeekday(t time.Time) string {
	return fmt.Sprintf("%s, %s", schedule.WeekdayFromTime(t).Short(), t.Format("02.01.2006"))
}

// FormatDayHeader заголовок дня: "Понедельник, 9 сентября"
func FormatDayHeader(t time.Time) string {
	return fmt.Sprintf("%s, %d %s", schedule.WeekdayFromTime(t), t.Day(), GetMonthGenitive(t.Month()))
}

// FormatTime форматирует только время
func FormatTime(t time.Time) string {
	return t.Format("15:04")
}

// FormatTimeRange форматирует диапазон времени
func FormatTimeRange(start, end time.Time) string {
	return fmt.Sprintf("%s-%s", start.Format("15:04"), end.Format("15:04"))
}

// FormatWeekRange "09.09 - 15.09.2024" для недели, начинающейся с weekStart
func FormatWeekRange(weekStart time.Time) string {
	weekEnd := weekStart.AddDate(0, 0, schedule.DaysInWeek-1)
	return fmt.Sprintf("%s - %s", weekStart.Format("02.01"), weekEnd.Format("02.01.2006"))
}

// FormatDuration форматирует длительность
func FormatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	if minutes < 60 {
		return fmt.Sprintf("%d мин", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%d ч", hours)
	}
	return fmt.Sprintf("%d ч %d мин", hours, mins)
}

// FormatUntil "через 2 ч 15 мин" / "сейчас"
func FormatUntil(from, to time.Time) string {
	d := to.Sub(from).Truncate(time.Minute)
	if d <= 0 {
		return "сейчас"
	}
	if d >= 24*time.Hour {
		days := int(d / (24 * time.Hour))
		return fmt.Sprintf("через %d %s", days, PluralizeDays(days))
	}
	return "через " + FormatDuration(d)
}

var monthGenitive = map[time.Month]string{
	time.January:   "января",
	time.February:  "февраля",
	time.March:     "марта",
	time.April:     "апреля",
	time.May:       "мая",
	time.June:      "июня",
	time.July:      "июля",
	time.August:    "августа",
	time.September: "сентября",
	time.October:   "октября",
	time.November:  "ноября",
	time.December:  "декабря",
}

// GetMonthGenitive название месяца в родительном падеже
func GetMonthGenitive(month time.Month) string {
	return monthGenitive[month]
}
