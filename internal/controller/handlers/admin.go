package handlers

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/glebkhl/zapis_bot/internal/controller/callbacks/common"
	"github.com/glebkhl/zapis_bot/internal/controller/callbacks/common/formatting"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Operator Commands
// ========================

// HandleStats обрабатывает команду /stats - сводка по расписанию
func (h *Handlers) HandleStats(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}

	report, err := h.reportService.Stats(ctx)
	if err != nil {
		h.logger.Error("Failed to compute stats", zap.Error(err))
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Не удалось собрать статистику.")
		return
	}

	var sb strings.Builder
	sb.WriteString("📊 Статистика расписания:\n\n")
	sb.WriteString(fmt.Sprintf("Всего окон: %d\n", report.Stats.Total))
	sb.WriteString(fmt.Sprintf("Свободно: %d\n", report.Stats.Free))
	sb.WriteString(fmt.Sprintf("Занято: %d\n", report.Stats.Booked))
	sb.WriteString(fmt.Sprintf("Заполненность: %s\n", formatting.FormatOccupancy(report.Occupancy)))
	sb.WriteString(fmt.Sprintf("Оценка выручки: %s\n", formatting.FormatPrice(report.Revenue)))

	if len(report.Stats.PerService) > 0 {
		sb.WriteString("\nПо услугам:\n")
		for _, code := range h.catalog.Codes() {
			count, ok := report.Stats.PerService[code]
			if !ok {
				continue
			}
			name := code
			if svc, found := h.catalog.Get(code); found {
				name = svc.Name
			}
			sb.WriteString(fmt.Sprintf("• %s: %d\n", name, count))
		}
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, sb.String())
}

// HandleAllBookings обрабатывает команду /allbookings - все брони
func (h *Handlers) HandleAllBookings(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}

	bookings, err := h.reportService.AllBookings(ctx)
	if err != nil {
		h.logger.Error("Failed to list all bookings", zap.Error(err))
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Не удалось получить список броней.")
		return
	}

	if len(bookings) == 0 {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "Броней пока нет.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 Все брони (%d):\n\n", len(bookings)))
	for _, slot := range bookings {
		name := "?"
		if slot.OwnerName != nil {
			name = *slot.OwnerName
		}
		svcName := slot.ServiceCode
		if svc, ok := h.catalog.Get(slot.ServiceCode); ok {
			svcName = svc.Name
		}
		sb.WriteString(fmt.Sprintf("• %s %s - %s, %s\n",
			formatting.FormatDateShort(slot.Date),
			formatting.FormatHour(slot.Hour),
			svcName,
			name,
		))
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, sb.String())
}

// HandleRefresh обрабатывает команду /refresh - перегенерация свободной
// части горизонта. Занятые окна при этом сохраняются.
func (h *Handlers) HandleRefresh(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}

	created, err := h.scheduleService.Refresh(ctx)
	if err != nil {
		h.logger.Error("Failed to refresh schedule", zap.Error(err))
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Не удалось обновить расписание.")
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		fmt.Sprintf("✅ Расписание обновлено.\nСоздано окон: %d\nВсе брони сохранены.", created))
}

// HandleScheduleImage обрабатывает команду /scheduleimage - сетка
// горизонта картинкой
func (h *Handlers) HandleScheduleImage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	end := start.AddDate(0, 0, h.cfg.HorizonDays)

	slots, err := h.reportService.SlotsInRange(ctx, start, end)
	if err != nil {
		h.logger.Error("Failed to list slots for image", zap.Error(err))
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Не удалось получить расписание.")
		return
	}

	image, err := common.GenerateScheduleImage(start, h.cfg.HorizonDays, h.cfg.WorkHours, slots)
	if err != nil {
		h.logger.Error("Failed to render schedule image", zap.Error(err))
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Не удалось нарисовать расписание.")
		return
	}

	_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID: update.Message.Chat.ID,
		Photo: &models.InputFileUpload{
			Filename: "schedule.png",
			Data:     bytes.NewReader(image),
		},
		Caption: fmt.Sprintf("Расписание на %d дн.", h.cfg.HorizonDays),
	})
	if err != nil {
		h.logger.Error("Failed to send schedule image", zap.Error(err))
	}
}
