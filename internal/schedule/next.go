package schedule

import "time"

// NextOccurrence возвращает ближайшие предстоящие записи.
//
// Записи сортируются по (день, начало, конец), затем всё, что уже прошло на
// этой неделе, закончилось сегодня или идёт прямо сейчас, уходит в конец
// списка с сохранением порядка: следующее такое вхождение будет через неделю.
// Из головы получившегося списка берётся максимальная серия с тем же
// (день, начало), что и у первой записи.
func NextOccurrence[T any](entries []Entry[T], now time.Time) []Entry[T] {
	if len(entries) == 0 {
		return []Entry[T]{}
	}

	sorted := SortEntries(entries)
	today := WeekdayFromTime(now)

	upcoming := make([]Entry[T], 0, len(sorted))
	passed := make([]Entry[T], 0, len(sorted))
	for _, e := range sorted {
		if isPassed(e.Interval, today, now) {
			passed = append(passed, e)
			continue
		}
		upcoming = append(upcoming, e)
	}
	rotated := append(upcoming, passed...)

	head := rotated[0]
	result := []Entry[T]{head}
	for _, e := range rotated[1:] {
		if e.Day != head.Day || e.Start != head.Start {
			break
		}
		result = append(result, e)
	}

	return result
}

// isPassed слот не может быть "следующим" на этой неделе
func isPassed(iv Interval, today Weekday, now time.Time) bool {
	return iv.Day < today || iv.HasEndedAt(now) || iv.IsActiveAt(now)
}

// NextStart ближайший момент начала слота строго после now
func NextStart(iv Interval, now time.Time) time.Time {
	days := DaysUntil(WeekdayFromTime(now), iv.Day)
	start := iv.Start.On(now.AddDate(0, 0, days))
	if !start.After(now) {
		start = start.AddDate(0, 0, DaysInWeek)
	}
	return start
}
