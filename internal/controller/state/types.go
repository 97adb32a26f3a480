package state

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Добавление урока: предмет -> день недели -> начало -> конец
	StateAddLessonSubject UserState = "add_lesson_subject"
	StateAddLessonWeekday UserState = "add_lesson_weekday"
	StateAddLessonStart   UserState = "add_lesson_start"
	StateAddLessonEnd     UserState = "add_lesson_end"

	// Добавление задачи: название -> срок
	StateAddTaskTitle UserState = "add_task_title"
	StateAddTaskDue   UserState = "add_task_due"

	// Однострочный ввод
	StateAddEvent        UserState = "add_event"
	StateAddSubject      UserState = "add_subject"
	StateCreateTimetable UserState = "create_timetable"
)

// Ключи временных данных диалога
const (
	KeySubjectID = "subject_id"
	KeyWeekday   = "weekday"
	KeyStart     = "start"
	KeyTitle     = "title"
	KeyLessonID  = "lesson_id"
)

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State UserState
	Data  map[string]interface{} // Временные данные для текущего диалога
}

// flows порядок шагов в многошаговых диалогах
var flows = map[UserState]UserState{
	StateAddLessonSubject: StateAddLessonWeekday,
	StateAddLessonWeekday: StateAddLessonStart,
	StateAddLessonStart:   StateAddLessonEnd,
	StateAddLessonEnd:     StateNone,

	StateAddTaskTitle: StateAddTaskDue,
	StateAddTaskDue:   StateNone,

	StateAddEvent:        StateNone,
	StateAddSubject:      StateNone,
	StateCreateTimetable: StateNone,
}

// Next следующий шаг диалога. После последнего шага и для неизвестных состояний - StateNone.
func Next(s UserState) UserState {
	return flows[s]
}

// IsDialog true для состояний, которые ждут текстового ввода
func IsDialog(s UserState) bool {
	_, ok := flows[s]
	return ok
}
