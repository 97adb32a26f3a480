package keyboard

// Форматы callback data. Telegram ограничивает data 64 байтами,
// поэтому префиксы короткие, а за ними идёт один uuid или дата.
const (
	Noop       = "noop"
	BackToMain = "back_to_main"

	TaskView          = "task:"                // task:<uuid>
	TaskComplete      = "task_done:"           // task_done:<uuid>
	TaskReopen        = "task_reopen:"         // task_reopen:<uuid>
	TaskArchive       = "task_archive:"        // task_archive:<uuid>
	TaskUnarchive     = "task_unarchive:"      // task_unarchive:<uuid>
	TaskDelete        = "task_delete:"         // task_delete:<uuid>
	TaskConfirmDelete = "task_confirm_delete:" // task_confirm_delete:<uuid>
	TasksPage         = "tasks_page:"          // tasks_page:<filter>:<page>

	LessonView          = "lesson:"                // lesson:<uuid>
	LessonDelete        = "lesson_delete:"         // lesson_delete:<uuid>
	LessonConfirmDelete = "lesson_confirm_delete:" // lesson_confirm_delete:<uuid>
	LessonAddTask       = "lesson_task:"           // lesson_task:<uuid>

	Week      = "week:"       // week:2024-09-09 (понедельник недели)
	WeekImage = "week_image:" // week_image:2024-09-09

	TimetableDefault = "timetable_default:" // timetable_default:<uuid>
	EventDelete      = "event_delete:"      // event_delete:<uuid>

	AddLessonSubject       = "addlesson_subject:" // addlesson_subject:<uuid>
	AddLessonCreateSubject = "addlesson_create"
	AddLessonDay           = "addlesson_day:" // addlesson_day:0..6
)

// DateLayout формат даты в callback data
const DateLayout = "2006-01-02"

// Фильтры списка задач в TasksPage
const (
	FilterOpen     = "open"
	FilterOverdue  = "overdue"
	FilterDone     = "done"
	FilterArchived = "archived"
)
