package app

import (
	"context"
	"time"

	"github.com/glebkhl/zapis_bot/internal/service"
	"go.uber.org/zap"
)

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	scheduleService *service.ScheduleService
	logger          *zap.Logger
	stopChan        chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(scheduleService *service.ScheduleService, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		scheduleService: scheduleService,
		logger:          logger,
		stopChan:        make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler")

	go s.runEnsureTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runEnsureTask раз в сутки дозаполняет горизонт расписания.
// Первый запуск сразу при старте, чтобы окна были доступны
// с первой же минуты работы бота.
func (s *Scheduler) runEnsureTask(ctx context.Context) {
	s.ensure(ctx)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.ensure(ctx)
		case <-s.stopChan:
			s.logger.Info("Schedule ensure task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Schedule ensure task cancelled")
			return
		}
	}
}

// ensure один проход дозаполнения. Ошибка не фатальна:
// вставка идемпотентна и следующий тик повторит попытку.
func (s *Scheduler) ensure(ctx context.Context) {
	created, err := s.scheduleService.Ensure(ctx)
	if err != nil {
		s.logger.Error("Failed to ensure schedule", zap.Error(err))
		return
	}

	if created > 0 {
		s.logger.Info("Schedule horizon topped up", zap.Int("created", created))
	}
}
