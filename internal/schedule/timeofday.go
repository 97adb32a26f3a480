package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidTime     = errors.New("invalid time of day")
	ErrInvalidInterval = errors.New("interval end must be after start")
)

// TimeOfDay время суток без даты
type TimeOfDay struct {
	Hour   int
	Minute int
}

// NewTimeOfDay проверяет диапазоны 0..23 и 0..59
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: %02d:%02d", ErrInvalidTime, hour, minute)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// MustTimeOfDay как NewTimeOfDay, но паникует на неверных значениях
func MustTimeOfDay(hour, minute int) TimeOfDay {
	t, err := NewTimeOfDay(hour, minute)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseTimeOfDay разбирает строку вида "9:05" или "09:05"
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 || len(parts[1]) != 2 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	return NewTimeOfDay(hour, minute)
}

// TimeOfDayFromTime берёт часы и минуты из t (в его часовом поясе)
func TimeOfDayFromTime(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

// TimeOfDayFromMinutes обратное к Minutes
func TimeOfDayFromMinutes(minutes int) (TimeOfDay, error) {
	if minutes < 0 {
		return TimeOfDay{}, fmt.Errorf("%w: %d minutes", ErrInvalidTime, minutes)
	}
	return NewTimeOfDay(minutes/60, minutes%60)
}

// Minutes количество минут от полуночи
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Minutes() < other.Minutes()
}

func (t TimeOfDay) After(other TimeOfDay) bool {
	return t.Minutes() > other.Minutes()
}

// Compare возвращает -1, 0 или 1
func (t TimeOfDay) Compare(other TimeOfDay) int {
	switch a, b := t.Minutes(), other.Minutes(); {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// On возвращает момент времени в день date (используются год, месяц и число date)
func (t TimeOfDay) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour, t.Minute, 0, 0, date.Location())
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// IsWithin true если start <= t <= end, границы включены
func IsWithin(t, start, end TimeOfDay) bool {
	return !t.Before(start) && !t.After(end)
}
