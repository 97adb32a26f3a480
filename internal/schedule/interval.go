package schedule

import (
	"fmt"
	"sort"
	"time"
)

// Interval еженедельный слот: день недели, начало и конец в пределах одного дня
type Interval struct {
	Day   Weekday
	Start TimeOfDay
	End   TimeOfDay
}

// NewInterval создаёт слот, конец должен быть строго позже начала
func NewInterval(day Weekday, start, end TimeOfDay) (Interval, error) {
	iv := Interval{Day: day, Start: start, End: end}
	if err := iv.Validate(); err != nil {
		return Interval{}, err
	}
	return iv, nil
}

// Validate проверяет день и порядок времени
func (iv Interval) Validate() error {
	if !iv.Day.Valid() {
		return fmt.Errorf("weekday %d out of range", int(iv.Day))
	}
	if !iv.Start.Before(iv.End) {
		return fmt.Errorf("%w: %s-%s", ErrInvalidInterval, iv.Start, iv.End)
	}
	return nil
}

// Duration длительность слота
func (iv Interval) Duration() time.Duration {
	return time.Duration(iv.End.Minutes()-iv.Start.Minutes()) * time.Minute
}

// Contains проверяет время суток внутри слота (границы включены)
func (iv Interval) Contains(t TimeOfDay) bool {
	return IsWithin(t, iv.Start, iv.End)
}

// IsActiveAt слот идёт прямо сейчас: тот же день недели и время внутри слота
func (iv Interval) IsActiveAt(now time.Time) bool {
	return IsToday(iv.Day, now) && iv.Contains(TimeOfDayFromTime(now))
}

// HasEndedAt слот сегодня и уже закончился
func (iv Interval) HasEndedAt(now time.Time) bool {
	return IsToday(iv.Day, now) && iv.End.Before(TimeOfDayFromTime(now))
}

// Less порядок (день, начало, конец)
func (iv Interval) Less(other Interval) bool {
	if iv.Day != other.Day {
		return iv.Day < other.Day
	}
	if iv.Start != other.Start {
		return iv.Start.Before(other.Start)
	}
	return iv.End.Before(other.End)
}

func (iv Interval) String() string {
	return fmt.Sprintf("%s %s-%s", iv.Day.Short(), iv.Start, iv.End)
}

// Entry слот с произвольной полезной нагрузкой (id урока, сам урок и т.п.)
type Entry[T any] struct {
	Interval
	Payload T
}

// NewEntry короткий конструктор
func NewEntry[T any](iv Interval, payload T) Entry[T] {
	return Entry[T]{Interval: iv, Payload: payload}
}

// Payloads достаёт нагрузку в порядке записей
func Payloads[T any](entries []Entry[T]) []T {
	out := make([]T, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Payload)
	}
	return out
}

// SortEntries возвращает копию, отсортированную по (день, начало, конец). Сортировка стабильная.
func SortEntries[T any](entries []Entry[T]) []Entry[T] {
	sorted := make([]Entry[T], len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Interval.Less(sorted[j].Interval)
	})
	return sorted
}

// ActiveAt фильтрует записи, идущие в момент now
func ActiveAt[T any](entries []Entry[T], now time.Time) []Entry[T] {
	out := make([]Entry[T], 0)
	for _, e := range SortEntries(entries) {
		if e.IsActiveAt(now) {
			out = append(out, e)
		}
	}
	return out
}
