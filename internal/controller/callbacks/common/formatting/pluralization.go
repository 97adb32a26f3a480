package formatting

// pluralize выбирает форму по правилам русского языка: 1 урок, 2 урока, 5 уроков
func pluralize(count int, one, few, many string) string {
	if count < 0 {
		count = -count
	}
	if count%10 == 1 && count%100 != 11 {
		return one
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return few
	}
	return many
}

// PluralizeLessons возвращает правильное склонение слова "урок"
func PluralizeLessons(count int) string {
	return pluralize(count, "урок", "урока", "уроков")
}

// PluralizeTasks возвращает правильное склонение слова "задача"
func PluralizeTasks(count int) string {
	return pluralize(count, "задача", "задачи", "задач")
}

// PluralizeEvents возвращает правильное склонение слова "событие"
func PluralizeEvents(count int) string {
	return pluralize(count, "событие", "события", "событий")
}

// PluralizeDays возвращает правильное склонение слова "день"
func PluralizeDays(count int) string {
	return pluralize(count, "день", "дня", "дней")
}
