package schedule

import (
	"fmt"
	"strings"
	"time"
)

// Weekday день недели в порядке Пн..Вс: Monday = 0, Sunday = 6.
//
// Платформенный time.Weekday начинается с воскресенья. Перевод выполняется
// один раз через WeekdayOf, дальше сравнение и ротация работают только с индексом.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DaysInWeek количество дней в неделе
const DaysInWeek = 7

// Clock возвращает текущее время. Подменяется в тестах.
type Clock func() time.Time

var weekdayNames = [DaysInWeek]string{
	"Понедельник",
	"Вторник",
	"Среда",
	"Четверг",
	"Пятница",
	"Суббота",
	"Воскресенье",
}

var weekdayShortNames = [DaysInWeek]string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}

// Weekdays возвращает все дни недели начиная с понедельника
func Weekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// WeekdayOf переводит time.Weekday (Sunday = 0) в индекс с понедельника
func WeekdayOf(wd time.Weekday) Weekday {
	return Weekday((int(wd) + 6) % DaysInWeek)
}

// WeekdayFromTime возвращает день недели для момента времени
func WeekdayFromTime(t time.Time) Weekday {
	return WeekdayOf(t.Weekday())
}

// WeekdayFromIndex проверяет индекс 0..6
func WeekdayFromIndex(index int) (Weekday, error) {
	d := Weekday(index)
	if !d.Valid() {
		return 0, fmt.Errorf("weekday index %d out of range", index)
	}
	return d, nil
}

// ParseWeekday разбирает короткое или полное название дня (регистр не важен)
func ParseWeekday(s string) (Weekday, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	for _, d := range Weekdays() {
		if s == strings.ToLower(weekdayShortNames[d]) || s == strings.ToLower(weekdayNames[d]) {
			return d, nil
		}
		if s == strings.ToLower(d.TimeWeekday().String()) || s == strings.ToLower(d.TimeWeekday().String()[:3]) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

// Valid проверяет что значение в диапазоне Monday..Sunday
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

// Index возвращает индекс 0..6
func (d Weekday) Index() int {
	return int(d)
}

// Next возвращает следующий день, после воскресенья идёт понедельник
func (d Weekday) Next() Weekday {
	return (d + 1) % DaysInWeek
}

// Previous возвращает предыдущий день, перед понедельником воскресенье
func (d Weekday) Previous() Weekday {
	return (d + DaysInWeek - 1) % DaysInWeek
}

// TimeWeekday обратное преобразование в time.Weekday
func (d Weekday) TimeWeekday() time.Weekday {
	return time.Weekday((int(d) + 1) % DaysInWeek)
}

// Before сравнивает дни в порядке Пн..Вс
func (d Weekday) Before(other Weekday) bool {
	return d < other
}

func (d Weekday) String() string {
	if !d.Valid() {
		return "Неизвестно"
	}
	return weekdayNames[d]
}

// Short короткое название: Пн, Вт, ...
func (d Weekday) Short() string {
	if !d.Valid() {
		return "?"
	}
	return weekdayShortNames[d]
}

// Compare возвращает -1, 0 или 1 в порядке понедельник < ... < воскресенье
func Compare(a, b Weekday) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// IsToday сообщает, совпадает ли день с днём недели момента now
func IsToday(d Weekday, now time.Time) bool {
	return d == WeekdayFromTime(now)
}

// DaysUntil количество дней от from до to вперёд по неделе (0..6)
func DaysUntil(from, to Weekday) int {
	return (int(to) - int(from) + DaysInWeek) % DaysInWeek
}
