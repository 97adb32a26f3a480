package keyboard

import (
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
)

// BackButton создаёт кнопку "Назад"
func BackButton(callbackData string) models.InlineKeyboardButton {
	return Button("⬅️ Назад", callbackData)
}

// BackToMainButton создаёт кнопку "В главное меню"
func BackToMainButton() models.InlineKeyboardButton {
	return Button("🏠 В главное меню", BackToMain)
}

// CancelButton создаёт кнопку "Отмена"
func CancelButton(callbackData string) models.InlineKeyboardButton {
	return Button("❌ Отмена", callbackData)
}

// ConfirmButton создаёт кнопку "Подтвердить"
func ConfirmButton(callbackData string) models.InlineKeyboardButton {
	return Button("✅ Подтвердить", callbackData)
}

// DeleteButton создаёт кнопку "Удалить"
func DeleteButton(callbackData string) models.InlineKeyboardButton {
	return Button("🗑 Удалить", callbackData)
}

// ConfirmCancelButtons создаёт ряд с кнопками Подтвердить/Отмена
func ConfirmCancelButtons(confirmCallback, cancelCallback string) [][]models.InlineKeyboardButton {
	return [][]models.InlineKeyboardButton{
		{
			ConfirmButton(confirmCallback),
			CancelButton(cancelCallback),
		},
	}
}

// ConfirmDelete клавиатура подтверждения удаления
func ConfirmDelete(confirmCallback, cancelCallback string) *models.InlineKeyboardMarkup {
	b := NewBuilder()
	for _, row := range ConfirmCancelButtons(confirmCallback, cancelCallback) {
		b.Row(row...)
	}
	return b.Build()
}

// WithID склеивает префикс и uuid
func WithID(prefix string, id uuid.UUID) string {
	return prefix + id.String()
}

// WeekNavigation кнопки листания недель и картинки недели
func WeekNavigation(weekStart time.Time) []models.InlineKeyboardButton {
	prev := weekStart.AddDate(0, 0, -7)
	next := weekStart.AddDate(0, 0, 7)
	return []models.InlineKeyboardButton{
		Button("◀️", Week+prev.Format(DateLayout)),
		Button("🖼 Картинка", WeekImage+weekStart.Format(DateLayout)),
		Button("▶️", Week+next.Format(DateLayout)),
	}
}

// WeekImageNavigation кнопки под картинкой недели
func WeekImageNavigation(weekStart time.Time) []models.InlineKeyboardButton {
	prev := weekStart.AddDate(0, 0, -7)
	next := weekStart.AddDate(0, 0, 7)
	return []models.InlineKeyboardButton{
		Button("◀️", WeekImage+prev.Format(DateLayout)),
		Button("📄 Текстом", Week+weekStart.Format(DateLayout)),
		Button("▶️", WeekImage+next.Format(DateLayout)),
	}
}

// TaskActions кнопки действий с задачей в зависимости от её состояния
func TaskActions(task *model.Task) *models.InlineKeyboardMarkup {
	b := NewBuilder()

	if task.Completed {
		b.Row(Button("↩️ Вернуть в работу", WithID(TaskReopen, task.ID)))
	} else {
		b.Row(Button("✅ Выполнено", WithID(TaskComplete, task.ID)))
	}

	if task.Archived {
		b.Row(
			Button("📤 Из архива", WithID(TaskUnarchive, task.ID)),
			DeleteButton(WithID(TaskDelete, task.ID)),
		)
	} else {
		b.Row(
			Button("🗄 В архив", WithID(TaskArchive, task.ID)),
			DeleteButton(WithID(TaskDelete, task.ID)),
		)
	}

	b.Row(BackButton(TasksPage + FilterOpen + ":0"))
	return b.Build()
}

// LessonActions кнопки карточки урока
func LessonActions(lesson *model.Lesson) *models.InlineKeyboardMarkup {
	return NewBuilder().
		Row(Button("📝 Добавить задачу", WithID(LessonAddTask, lesson.ID))).
		Row(DeleteButton(WithID(LessonDelete, lesson.ID))).
		Build()
}
