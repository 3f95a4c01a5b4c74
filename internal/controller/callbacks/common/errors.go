package common

import (
	"errors"

	"github.com/glebkhl/zapis_bot/internal/repository"
	"github.com/glebkhl/zapis_bot/internal/service"
)

// ErrorMessage возвращает пользовательское сообщение для ошибки.
// Конфликт брони и чужая запись - ожидаемые исходы, их текст подсказывает
// что делать дальше; всё остальное сворачивается в общий ответ.
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, repository.ErrSlotConflict):
		return "❌ Это окно уже занято. Выберите другое время"
	case errors.Is(err, repository.ErrSlotNotFound):
		return "❌ Окно не найдено"
	case errors.Is(err, repository.ErrNotOwner):
		return "❌ Это не ваша запись"
	case errors.Is(err, service.ErrDateNotAvailable):
		return "❌ На эту дату больше нет свободных окон"
	case errors.Is(err, service.ErrTimeNotAvailable):
		return "❌ Это время уже недоступно. Выберите другое"
	case errors.Is(err, service.ErrWrongPhase):
		return "❌ Выбор устарел. Начните запись заново"
	default:
		return "❌ Произошла ошибка. Попробуйте позже"
	}
}
