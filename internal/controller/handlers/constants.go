package handlers

import "time"

// Ограничения на пользовательский ввод
const (
	// Название предмета
	SubjectNameMinLength = 2
	SubjectNameMaxLength = 100

	// Название расписания
	TimetableNameMinLength = 2
	TimetableNameMaxLength = 64

	// Задачи и события
	TaskTitleMaxLength  = 200
	EventTitleMaxLength = 200

	// Импорт .ics
	MaxImportFileSize = 1 << 20 // 1 MiB
)

const downloadTimeout = 30 * time.Second
