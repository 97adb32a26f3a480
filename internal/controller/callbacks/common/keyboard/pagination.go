package keyboard

import (
	"fmt"

	"github.com/go-telegram/bot/models"
)

// PageSize элементов на странице списков
const PageSize = 8

// PaginationButtons создаёт ряд кнопок пагинации
// prefix - префикс для callback (например "tasks_page:open:")
// currentPage - текущая страница (0-based)
// totalPages - всего страниц
func PaginationButtons(prefix string, currentPage, totalPages int) []models.InlineKeyboardButton {
	if totalPages <= 1 {
		return nil
	}

	var buttons []models.InlineKeyboardButton

	if currentPage > 0 {
		buttons = append(buttons, Button("⬅️", fmt.Sprintf("%s%d", prefix, currentPage-1)))
	}

	// Индикатор страницы
	buttons = append(buttons, Button(
		fmt.Sprintf("📄 %d/%d", currentPage+1, totalPages),
		Noop,
	))

	if currentPage < totalPages-1 {
		buttons = append(buttons, Button("➡️", fmt.Sprintf("%s%d", prefix, currentPage+1)))
	}

	return buttons
}

// AddPagination добавляет пагинацию к builder
func (b *Builder) AddPagination(prefix string, currentPage, totalPages int) *Builder {
	buttons := PaginationButtons(prefix, currentPage, totalPages)
	if len(buttons) > 0 {
		b.Row(buttons...)
	}
	return b
}

// Page границы страницы page для n элементов и число страниц.
// Страница за пределами диапазона прижимается к последней.
func Page(n, page int) (start, end, totalPages int) {
	totalPages = (n + PageSize - 1) / PageSize
	if totalPages == 0 {
		return 0, 0, 0
	}
	if page < 0 {
		page = 0
	}
	if page >= totalPages {
		page = totalPages - 1
	}
	start = page * PageSize
	end = min(start+PageSize, n)
	return start, end, totalPages
}
