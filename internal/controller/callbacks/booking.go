package callbacks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glebkhl/zapis_bot/internal/controller/callbacks/common"
	"github.com/glebkhl/zapis_bot/internal/controller/callbacks/common/formatting"
	"github.com/glebkhl/zapis_bot/internal/controller/callbacks/common/keyboard"
	"github.com/glebkhl/zapis_bot/internal/model"
	"github.com/glebkhl/zapis_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Booking Flow Handlers
// ========================

// HandleViewDates начинает выбор: показывает даты со свободными окнами
func (h *Handler) HandleViewDates(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	telegramID := callback.From.ID

	// Каждый заход в выбор начинает последовательность заново
	sel := h.Booking.NewSelection(telegramID)
	h.State.SetSelection(telegramID, sel)

	dates, err := h.Booking.AvailableDates(ctx)
	if err != nil {
		h.Logger.Error("Failed to list available dates", zap.Error(err), zap.Int64("user_id", telegramID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	if len(dates) == 0 {
		b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:      msg.Chat.ID,
			MessageID:   msg.ID,
			Text:        "Нет свободных окон 😔\n\nЗагляните позже.",
			ReplyMarkup: keyboard.NewBuilder().Row(keyboard.Button("◀️ Назад", BackToMain)).Build(),
		})
		common.AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	buttons := make([]models.InlineKeyboardButton, 0, len(dates))
	for _, date := range dates {
		buttons = append(buttons, keyboard.Button(
			formatting.FormatDateWithWeekday(date),
			PickDate+date.Format(common.CallbackDateLayout),
		))
	}

	kb := keyboard.NewBuilder().
		Grid(buttons, 2).
		Row(keyboard.Button("◀️ Назад", BackToMain)).
		Build()

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        "📅 Выберите дату:",
		ReplyMarkup: kb,
	})

	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandlePickDate шаг выбора даты: показывает свободное время на дату
func (h *Handler) HandlePickDate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	date, err := common.ParseDateFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат данных")
		return
	}

	telegramID := callback.From.ID

	// Нажатие кнопки даты всегда начинает выбор с начала: кнопка могла
	// прийти из старого сообщения, когда последовательность уже ушла дальше
	sel := h.State.GetSelection(telegramID)
	if sel == nil || sel.Phase != service.PhaseBrowsing {
		sel = h.Booking.NewSelection(telegramID)
		h.State.SetSelection(telegramID, sel)
	}

	if err := h.Booking.ChooseDate(ctx, sel, date); err != nil {
		if errors.Is(err, service.ErrDateNotAvailable) {
			common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
			h.HandleViewDates(ctx, b, callback)
			return
		}
		h.Logger.Error("Failed to choose date", zap.Error(err), zap.Int64("user_id", telegramID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	h.showTimes(ctx, b, callback, msg, sel.Date, "")
}

// HandlePickTime шаг выбора времени: показывает подтверждение с ценой
func (h *Handler) HandlePickTime(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	hour, err := common.ParseHourFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат данных")
		return
	}

	telegramID := callback.From.ID
	sel := h.State.GetSelection(telegramID)
	if sel == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Выбор устарел. Начните запись заново")
		return
	}

	if err := h.Booking.ChooseTime(ctx, sel, hour); err != nil {
		if errors.Is(err, service.ErrTimeNotAvailable) {
			// время увели из-под носа - показываем актуальный список
			h.showTimes(ctx, b, callback, msg, sel.Date, "😔 Это время уже заняли.\n\n")
			return
		}
		h.Logger.Error("Failed to choose time", zap.Error(err), zap.Int64("user_id", telegramID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	svc, ok := h.Catalog.Get(sel.ServiceCode)
	if !ok {
		h.Logger.Error("Unknown service code in selection", zap.String("code", sel.ServiceCode))
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Произошла ошибка. Попробуйте позже")
		return
	}

	text := fmt.Sprintf(
		"📝 Подтвердите запись:\n\n"+
			"📅 Дата: %s\n"+
			"⏰ Время: %s\n"+
			"🧠 Услуга: %s (%s)\n"+
			"💰 Цена: %s",
		formatting.FormatDateWithWeekday(sel.Date),
		formatting.FormatHour(sel.Hour),
		svc.Name,
		formatting.FormatDuration(svc.Duration),
		formatting.FormatPrice(svc.Price),
	)

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("✅ Подтвердить", ConfirmBooking)).
		Row(keyboard.Button("🕐 Другое время", PickDate+sel.Date.Format(common.CallbackDateLayout))).
		Row(keyboard.Button("◀️ Назад", ViewDates)).
		Build()

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        text,
		ReplyMarkup: kb,
	})

	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleConfirmBooking финальный шаг: резервирует окно
func (h *Handler) HandleConfirmBooking(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	telegramID := callback.From.ID
	sel := h.State.GetSelection(telegramID)
	if sel == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Выбор устарел. Начните запись заново")
		return
	}

	name := displayName(&callback.From)

	outcome, err := h.Booking.Reserve(ctx, sel, name, nil)
	if err != nil {
		h.Logger.Error("Failed to reserve slot",
			zap.Error(err),
			zap.Int64("user_id", telegramID),
		)
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	if outcome.Conflict {
		// проиграли гонку: никакой автоповторной брони, пользователь
		// выбирает из свежего списка сам
		h.showTimesFromSlots(ctx, b, callback, msg, sel.Date, outcome.Alternatives,
			"😔 Это окно только что заняли.\n\n")
		return
	}

	h.State.Clear(telegramID)

	ref := ""
	if outcome.Slot.BookingRef != nil {
		ref = outcome.Slot.BookingRef.String()[:8]
	}

	text := fmt.Sprintf(
		"✅ Запись оформлена!\n\n"+
			"📅 %s\n"+
			"⏰ %s\n"+
			"🧠 %s - %s\n"+
			"🔖 Номер: %s\n\n"+
			"📍 ул. Мыслительная, 42\n"+
			"Ждем вас! 🧠",
		formatting.FormatDate(outcome.Slot.Date),
		formatting.FormatHour(outcome.Slot.Hour),
		outcome.Service.Name,
		formatting.FormatPrice(outcome.Service.Price),
		ref,
	)

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("📋 Мои записи", MyBookings)).
		Row(keyboard.Button("📅 Еще запись", ViewDates)).
		Row(keyboard.Button("🏠 Главное меню", BackToMain)).
		Build()

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        text,
		ReplyMarkup: kb,
	})

	common.AnswerCallback(ctx, b, callback.ID, "✅ Запись создана")
}

// HandleMyBookings показывает брони пользователя с кнопками отмены
func (h *Handler) HandleMyBookings(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	telegramID := callback.From.ID

	bookings, err := h.Booking.UserBookings(ctx, telegramID)
	if err != nil {
		h.Logger.Error("Failed to list user bookings", zap.Error(err), zap.Int64("user_id", telegramID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	if len(bookings) == 0 {
		b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:    msg.Chat.ID,
			MessageID: msg.ID,
			Text:      "У вас пока нет записей.",
			ReplyMarkup: keyboard.NewBuilder().
				Row(keyboard.Button("📅 Записаться", ViewDates)).
				Row(keyboard.Button("◀️ Назад", BackToMain)).
				Build(),
		})
		common.AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	var sb strings.Builder
	sb.WriteString("📋 Ваши записи:\n\n")

	kb := keyboard.NewBuilder()
	for _, slot := range bookings {
		svcName := slot.ServiceCode
		if svc, ok := h.Catalog.Get(slot.ServiceCode); ok {
			svcName = svc.Name
		}
		sb.WriteString(fmt.Sprintf("• %s в %s - %s\n",
			formatting.FormatDateShort(slot.Date),
			formatting.FormatHour(slot.Hour),
			svcName,
		))
		kb.Row(keyboard.Button(
			fmt.Sprintf("❌ Отменить %s %s", formatting.FormatDateShort(slot.Date), formatting.FormatHour(slot.Hour)),
			fmt.Sprintf("%s%s:%d", CancelBooking, slot.Date.Format(common.CallbackDateLayout), slot.Hour),
		))
	}
	kb.Row(keyboard.Button("◀️ Назад", BackToMain))

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        sb.String(),
		ReplyMarkup: kb.Build(),
	})

	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleCancelBooking спрашивает подтверждение отмены
func (h *Handler) HandleCancelBooking(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	date, hour, err := common.ParseSlotFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат данных")
		return
	}

	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("✅ Да, отменить", fmt.Sprintf("%s%s:%d", ConfirmCancel, date.Format(common.CallbackDateLayout), hour)),
			keyboard.Button("❌ Нет", MyBookings),
		).
		Build()

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
		Text: fmt.Sprintf("❓ Отменить запись на %s в %s?",
			formatting.FormatDate(date),
			formatting.FormatHour(hour)),
		ReplyMarkup: kb,
	})

	common.AnswerCallback(ctx, b, callback.ID, "Подтверждение отмены")
}

// HandleConfirmCancel отменяет бронь
func (h *Handler) HandleConfirmCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	date, hour, err := common.ParseSlotFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат данных")
		return
	}

	telegramID := callback.From.ID

	if err := h.Booking.Cancel(ctx, date, hour, telegramID); err != nil {
		h.Logger.Error("Failed to cancel booking",
			zap.Error(err),
			zap.Int64("user_id", telegramID),
			zap.Time("date", date),
			zap.Int("hour", hour),
		)
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("📋 Мои записи", MyBookings)).
		Row(keyboard.Button("📅 Записаться снова", ViewDates)).
		Build()

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
		Text: fmt.Sprintf("✅ Запись на %s в %s отменена.",
			formatting.FormatDate(date),
			formatting.FormatHour(hour)),
		ReplyMarkup: kb,
	})

	common.AnswerCallback(ctx, b, callback.ID, "✅ Запись отменена")
}

// showTimes загружает свободные окна на дату и показывает их
func (h *Handler) showTimes(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, msg *models.Message, date time.Time, prefix string) {
	slots, err := h.Booking.AvailableTimes(ctx, date)
	if err != nil {
		h.Logger.Error("Failed to list available times", zap.Error(err), zap.Time("date", date))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	h.showTimesFromSlots(ctx, b, callback, msg, date, slots, prefix)
}

// showTimesFromSlots показывает готовый список свободных окон
func (h *Handler) showTimesFromSlots(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, msg *models.Message, date time.Time, slots []model.Slot, prefix string) {
	if len(slots) == 0 {
		b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:    msg.Chat.ID,
			MessageID: msg.ID,
			Text:      prefix + "На эту дату больше нет свободных окон 😔",
			ReplyMarkup: keyboard.NewBuilder().
				Row(keyboard.Button("📅 Другая дата", ViewDates)).
				Row(keyboard.Button("◀️ Назад", BackToMain)).
				Build(),
		})
		common.AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	buttons := make([]models.InlineKeyboardButton, 0, len(slots))
	for _, slot := range slots {
		label := formatting.FormatHour(slot.Hour)
		if svc, ok := h.Catalog.Get(slot.ServiceCode); ok {
			label = fmt.Sprintf("%s · %s", formatting.FormatHour(slot.Hour), svc.Name)
		}
		buttons = append(buttons, keyboard.Button(label, fmt.Sprintf("%s%d", PickTime, slot.Hour)))
	}

	kb := keyboard.NewBuilder().
		Grid(buttons, 2).
		Row(keyboard.Button("◀️ К датам", ViewDates)).
		Build()

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        fmt.Sprintf("%s🕐 Свободное время на %s:", prefix, formatting.FormatDateWithWeekday(date)),
		ReplyMarkup: kb,
	})

	common.AnswerCallback(ctx, b, callback.ID, "")
}

// displayName собирает отображаемое имя из данных Telegram
func displayName(user *models.User) string {
	if user.LastName != "" {
		return user.FirstName + " " + user.LastName
	}
	return user.FirstName
}
