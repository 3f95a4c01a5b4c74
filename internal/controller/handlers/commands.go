package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/glebkhl/zapis_bot/internal/controller/callbacks"
	"github.com/glebkhl/zapis_bot/internal/controller/callbacks/common/formatting"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	user := update.Message.From

	welcomeText := fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Бот записи на промывку мозгов 🧠\n\n"+
			"Выберите действие:",
		user.FirstName,
	)

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        welcomeText,
		ReplyMarkup: callbacks.MainMenuKeyboard(),
	})
	if err != nil {
		h.logger.Error("Failed to send start message", zap.Error(err))
	}
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Справка по командам:\n\n" +
		"/start - Главное меню\n" +
		"/mybookings - Мои записи\n" +
		"/cancel - Прервать текущий выбор\n" +
		"/help - Показать эту справку\n\n" +
		"Записаться можно через кнопку «📅 Свободные окна» в главном меню."

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText)
}

// HandleMyBookings обрабатывает команду /mybookings
func (h *Handlers) HandleMyBookings(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID

	bookings, err := h.bookingService.UserBookings(ctx, telegramID)
	if err != nil {
		h.logger.Error("Failed to list user bookings", zap.Error(err), zap.Int64("telegram_id", telegramID))
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}

	if len(bookings) == 0 {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "У вас пока нет записей.\n\nЗаписаться: /start")
		return
	}

	var sb strings.Builder
	sb.WriteString("📋 Ваши записи:\n\n")
	for _, slot := range bookings {
		svcName := slot.ServiceCode
		if svc, ok := h.catalog.Get(slot.ServiceCode); ok {
			svcName = svc.Name
		}
		sb.WriteString(fmt.Sprintf("• %s в %s - %s\n",
			formatting.FormatDateWithWeekday(slot.Date),
			formatting.FormatHour(slot.Hour),
			svcName,
		))
	}
	sb.WriteString("\nОтменить запись можно в меню «📋 Мои записи»: /start")

	h.sendMessage(ctx, b, update.Message.Chat.ID, sb.String())
}

// HandleCancel обрабатывает команду /cancel - прерывает текущий выбор
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID

	if !h.stateManager.Active(telegramID) {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Нет активного выбора для отмены.")
		return
	}

	h.stateManager.Clear(telegramID)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "✅ Выбор прерван.\n\nНачать заново: /start")
}
