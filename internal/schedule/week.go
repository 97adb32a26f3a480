package schedule

import "time"

// Week записи, разложенные по дням с понедельника
type Week[T any] [DaysInWeek][]Entry[T]

// GroupByDay раскладывает записи по дням, внутри дня по началу и концу
func GroupByDay[T any](entries []Entry[T]) Week[T] {
	var week Week[T]
	for _, e := range SortEntries(entries) {
		if !e.Day.Valid() {
			continue
		}
		week[e.Day] = append(week[e.Day], e)
	}
	return week
}

// Day записи конкретного дня
func (w Week[T]) Day(d Weekday) []Entry[T] {
	if !d.Valid() {
		return nil
	}
	return w[d]
}

// Empty true если на неделе нет ни одной записи
func (w Week[T]) Empty() bool {
	for _, day := range w {
		if len(day) > 0 {
			return false
		}
	}
	return true
}

// StartOfDay полночь дня t
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay последняя секунда дня t
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Second)
}

// StartOfWeek полночь понедельника недели, в которую попадает t
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	return day.AddDate(0, 0, -WeekdayFromTime(day).Index())
}

// DateFor дата дня недели d на неделе, в которую попадает t
func DateFor(d Weekday, t time.Time) time.Time {
	return StartOfWeek(t).AddDate(0, 0, d.Index())
}
