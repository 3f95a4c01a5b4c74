package callbacks

import (
	"context"
	"strings"

	"github.com/glebkhl/zapis_bot/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Callback Data Patterns
// ========================

// Навигация
const (
	BackToMain = "back_to_main"
	ViewDates  = "view_dates"
	MyBookings = "my_bookings"
	Info       = "info"
)

// Шаги записи
const (
	PickDate       = "pick_date:" // pick_date:2026-09-02
	PickTime       = "pick_time:" // pick_time:14
	ConfirmBooking = "confirm_booking"
)

// Отмена записи
const (
	CancelBooking = "cancel_booking:" // cancel_booking:2026-09-02:14
	ConfirmCancel = "confirm_cancel:" // confirm_cancel:2026-09-02:14
)

// HandleCallbackQuery принимает все нажатия inline кнопок и
// распределяет их по обработчикам
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	callback := update.CallbackQuery
	if callback == nil {
		return
	}

	data := callback.Data

	h.Logger.Info("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID),
		zap.String("user_name", callback.From.FirstName))

	switch {
	// ===== Навигация =====
	case data == BackToMain:
		h.HandleBackToMain(ctx, b, callback)
	case data == Info:
		h.HandleInfo(ctx, b, callback)

	// ===== Запись =====
	case data == ViewDates:
		h.HandleViewDates(ctx, b, callback)
	case strings.HasPrefix(data, PickDate):
		h.HandlePickDate(ctx, b, callback)
	case strings.HasPrefix(data, PickTime):
		h.HandlePickTime(ctx, b, callback)
	case data == ConfirmBooking:
		h.HandleConfirmBooking(ctx, b, callback)

	// ===== Мои записи и отмена =====
	case data == MyBookings:
		h.HandleMyBookings(ctx, b, callback)
	case strings.HasPrefix(data, CancelBooking):
		h.HandleCancelBooking(ctx, b, callback)
	case strings.HasPrefix(data, ConfirmCancel):
		h.HandleConfirmCancel(ctx, b, callback)

	case data == "noop":
		// просто подтверждаем callback
		common.AnswerCallback(ctx, b, callback.ID, "")

	default:
		h.Logger.Warn("Unknown callback", zap.String("data", data))
		common.AnswerCallback(ctx, b, callback.ID, "")
	}
}
