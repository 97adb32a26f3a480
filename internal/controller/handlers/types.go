package handlers

import (
	"net/http"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/controller/state"
	"github.com/Freeeeeet/timetable_bot/internal/service"
	"go.uber.org/zap"
)

// Services сервисы, которые используют обработчики команд
type Services struct {
	Users      *service.UserService
	Timetables *service.TimetableService
	Lessons    *service.LessonService
	Tasks      *service.TaskService
	Calendar   *service.CalendarService
	Export     *service.ExportService
	Cache      *service.WeekCache
}

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	userService      *service.UserService
	timetableService *service.TimetableService
	lessonService    *service.LessonService
	taskService      *service.TaskService
	calendarService  *service.CalendarService
	exportService    *service.ExportService
	cache            *service.WeekCache
	stateManager     *state.Manager
	loc              *time.Location
	httpClient       *http.Client
	logger           *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	services Services,
	stateManager *state.Manager,
	loc *time.Location,
	logger *zap.Logger,
) *Handlers {
	if loc == nil {
		loc = time.UTC
	}
	return &Handlers{
		userService:      services.Users,
		timetableService: services.Timetables,
		lessonService:    services.Lessons,
		taskService:      services.Tasks,
		calendarService:  services.Calendar,
		exportService:    services.Export,
		cache:            services.Cache,
		stateManager:     stateManager,
		loc:              loc,
		httpClient:       &http.Client{Timeout: downloadTimeout},
		logger:           logger,
	}
}

// now текущее время в часовом поясе бота
func (h *Handlers) now() time.Time {
	return h.lessonService.Now().In(h.loc)
}
