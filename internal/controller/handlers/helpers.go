package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// requireAdmin проверяет что команду прислал оператор из ADMIN_IDS.
// Ядро авторизацию не делает - роль приносит вызывающая сторона.
func (h *Handlers) requireAdmin(ctx context.Context, b *bot.Bot, update *models.Update) bool {
	if update.Message == nil {
		return false
	}

	telegramID := update.Message.From.ID
	if !h.cfg.IsAdmin(telegramID) {
		h.logger.Warn("Admin command from non-admin", zap.Int64("telegram_id", telegramID))
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Эта команда доступна только оператору.")
		return false
	}

	return true
}

// sendMessage отправляет сообщение и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}
