package common

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Helper functions для всех callback handlers

// CallbackDateLayout формат даты внутри callback data
const CallbackDateLayout = "2006-01-02"

// AnswerCallback отвечает на callback query (без alert)
func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// AnswerCallbackAlert отвечает на callback query с alert (всплывающее окно)
func AnswerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// GetMessageFromCallback извлекает сообщение из callback query
func GetMessageFromCallback(callback *models.CallbackQuery) *models.Message {
	if callback.Message.Message != nil {
		return callback.Message.Message
	}
	return nil
}

// ParseDateFromCallback извлекает дату из callback data
// Например: "pick_date:2026-09-02" -> 2 сентября 2026
func ParseDateFromCallback(data string) (time.Time, error) {
	parts := strings.Split(data, ":")
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("invalid callback data format")
	}
	return time.Parse(CallbackDateLayout, parts[1])
}

// ParseHourFromCallback извлекает час из callback data
// Например: "pick_time:14" -> 14
func ParseHourFromCallback(data string) (int, error) {
	parts := strings.Split(data, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid callback data format")
	}
	return strconv.Atoi(parts[1])
}

// ParseSlotFromCallback извлекает дату и час из callback data
// Например: "cancel_booking:2026-09-02:14" -> (2 сентября 2026, 14)
func ParseSlotFromCallback(data string) (time.Time, int, error) {
	parts := strings.Split(data, ":")
	if len(parts) != 3 {
		return time.Time{}, 0, fmt.Errorf("invalid callback data format")
	}

	date, err := time.Parse(CallbackDateLayout, parts[1])
	if err != nil {
		return time.Time{}, 0, err
	}

	hour, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, 0, err
	}

	return date, hour, nil
}
