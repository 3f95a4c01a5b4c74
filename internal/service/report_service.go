package service

import (
	"context"
	"fmt"
	"time"

	"github.com/glebkhl/zapis_bot/internal/catalog"
	"github.com/glebkhl/zapis_bot/internal/model"
	"go.uber.org/zap"
)

// Report сводка по расписанию для оператора
type Report struct {
	Stats     *model.ScheduleStats
	Occupancy float64 // занятые / все, 0 при пустом расписании
	Revenue   int     // оценка выручки в копейках
}

// ReportService только читает хранилище и ничего в нём не меняет,
// поэтому его можно дёргать когда угодно и сколько угодно раз
type ReportService struct {
	store   SlotStore
	catalog *catalog.Catalog
	logger  *zap.Logger
}

func NewReportService(store SlotStore, cat *catalog.Catalog, logger *zap.Logger) *ReportService {
	return &ReportService{
		store:   store,
		catalog: cat,
		logger:  logger,
	}
}

// Stats собирает сводку: счётчики окон, занятость и оценку выручки
func (s *ReportService) Stats(ctx context.Context) (*Report, error) {
	stats, err := s.store.ComputeStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("report stats: %w", err)
	}

	report := &Report{Stats: stats}

	if stats.Total > 0 {
		report.Occupancy = float64(stats.Booked) / float64(stats.Total)
	}

	for code, count := range stats.PerService {
		svc, ok := s.catalog.Get(code)
		if !ok {
			// чужой код в таблице - нарушение инварианта, но отчёт не валим
			s.logger.Warn("Unknown service code in stats", zap.String("code", code))
			continue
		}
		report.Revenue += count * svc.Price
	}

	return report, nil
}

// AllBookings возвращает все брони для операторского обзора
func (s *ReportService) AllBookings(ctx context.Context) ([]model.Slot, error) {
	return s.store.ListAllBookings(ctx)
}

// SlotsInRange возвращает все окна диапазона для отрисовки сетки расписания
func (s *ReportService) SlotsInRange(ctx context.Context, from, to time.Time) ([]model.Slot, error) {
	return s.store.ListInRange(ctx, from, to)
}
