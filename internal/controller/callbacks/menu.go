package callbacks

import (
	"context"
	"fmt"
	"strings"

	"github.com/glebkhl/zapis_bot/internal/controller/callbacks/common"
	"github.com/glebkhl/zapis_bot/internal/controller/callbacks/common/formatting"
	"github.com/glebkhl/zapis_bot/internal/controller/callbacks/common/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// MainMenuText текст главного меню
const MainMenuText = "🏠 Главное меню\n\nВыберите действие:"

// MainMenuKeyboard собирает клавиатуру главного меню
func MainMenuKeyboard() *models.InlineKeyboardMarkup {
	return keyboard.NewBuilder().
		Row(keyboard.Button("📅 Свободные окна", ViewDates)).
		Row(keyboard.Button("📋 Мои записи", MyBookings)).
		Row(keyboard.Button("ℹ️ Инфо", Info)).
		Build()
}

// HandleBackToMain возвращает пользователя в главное меню
func (h *Handler) HandleBackToMain(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	// Брошенный выбор дальше не нужен
	h.State.Clear(callback.From.ID)

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        MainMenuText,
		ReplyMarkup: MainMenuKeyboard(),
	})

	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleInfo показывает услуги, цены и контакты
func (h *Handler) HandleInfo(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	var sb strings.Builder
	sb.WriteString("🧠 Промывка мозгов\n\nУслуги:\n")
	for _, code := range h.Catalog.Codes() {
		svc, _ := h.Catalog.Get(code)
		sb.WriteString(fmt.Sprintf("• %s (%s) - %s\n",
			svc.Name,
			formatting.FormatDuration(svc.Duration),
			formatting.FormatPrice(svc.Price),
		))
	}
	sb.WriteString("\n📍 Адрес: ул. Мыслительная, 42\n")
	sb.WriteString("📞 Телефон: +7 (XXX) XXX-XX-XX\n")
	sb.WriteString("⏰ Часы: 10:00-20:00")

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("📅 Записаться", ViewDates)).
		Row(keyboard.Button("◀️ Назад", BackToMain)).
		Build()

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        sb.String(),
		ReplyMarkup: kb,
	})

	common.AnswerCallback(ctx, b, callback.ID, "")
}
