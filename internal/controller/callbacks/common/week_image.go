package common

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/render"
	"github.com/Freeeeeet/timetable_bot/internal/schedule"
	"github.com/Freeeeeet/timetable_bot/internal/service"
)

// GenerateWeekImage PNG недели, в которую попадает date. Готовые картинки берутся из кэша,
// кэш сбрасывается при любом изменении уроков и событий владельца.
func GenerateWeekImage(ctx context.Context, calendar *service.CalendarService, cache *service.WeekCache, ownerID int64, date, now time.Time) ([]byte, error) {
	weekStart := schedule.StartOfWeek(date)
	// отметка "сегодня" меняется каждый день, поэтому картинку текущей недели не кэшируем
	current := schedule.StartOfWeek(now).Equal(weekStart)

	if !current {
		if data, ok := cache.Image(ownerID, weekStart); ok {
			return data, nil
		}
	}

	days, err := calendar.WeekEntries(ctx, ownerID, weekStart)
	if err != nil {
		return nil, fmt.Errorf("week entries: %w", err)
	}

	data, err := render.WeekImage(days, now)
	if err != nil {
		return nil, fmt.Errorf("render week: %w", err)
	}

	if !current {
		cache.SetImage(ownerID, weekStart, data)
	}
	return data, nil
}
