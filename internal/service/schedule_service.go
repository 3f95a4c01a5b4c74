package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/glebkhl/zapis_bot/internal/catalog"
	"github.com/glebkhl/zapis_bot/internal/model"
	"go.uber.org/zap"
)

// AssignStrategy выбирает код услуги для n-го окна горизонта
type AssignStrategy func(n int) string

// RoundRobin раздаёт услуги по кругу в порядке каталога
func RoundRobin(cat *catalog.Catalog) AssignStrategy {
	codes := cat.Codes()
	return func(n int) string {
		return codes[n%len(codes)]
	}
}

// SeededRandom раздаёт услуги псевдослучайно с фиксированным зерном
func SeededRandom(cat *catalog.Catalog, seed int64) AssignStrategy {
	codes := cat.Codes()
	rng := rand.New(rand.NewSource(seed))
	return func(int) string {
		return codes[rng.Intn(len(codes))]
	}
}

// ScheduleService держит горизонт расписания заполненным:
// на каждую пару (день горизонта, рабочий час) должно существовать окно
type ScheduleService struct {
	store       SlotStore
	horizonDays int
	workHours   []int
	assign      AssignStrategy
	logger      *zap.Logger
	now         func() time.Time
}

func NewScheduleService(
	store SlotStore,
	horizonDays int,
	workHours []int,
	assign AssignStrategy,
	logger *zap.Logger,
) *ScheduleService {
	return &ScheduleService{
		store:       store,
		horizonDays: horizonDays,
		workHours:   workHours,
		assign:      assign,
		logger:      logger,
		now:         time.Now,
	}
}

// Ensure дозаполняет горизонт [завтра, завтра+N) свободными окнами.
// Существующие окна, свободные и занятые, не трогаются, поэтому вызов
// идемпотентен и его безопасно повторять после частичного сбоя.
func (s *ScheduleService) Ensure(ctx context.Context) (int, error) {
	slots := s.horizonSlots()

	created, err := s.store.CreateMissing(ctx, slots)
	if err != nil {
		return created, fmt.Errorf("ensure schedule: %w", err)
	}

	s.logger.Info("Schedule ensured",
		zap.Int("horizon_days", s.horizonDays),
		zap.Int("created", created),
	)

	return created, nil
}

// Refresh перевыводит свободную часть горизонта: удаляет свободные окна
// и генерирует их заново. Занятые окна сохраняются безусловно -
// перегенерация никогда не отзывает существующую бронь.
func (s *ScheduleService) Refresh(ctx context.Context) (int, error) {
	from := s.horizonStart()
	to := from.AddDate(0, 0, s.horizonDays)

	deleted, err := s.store.DeleteFreeInRange(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("refresh schedule: %w", err)
	}

	created, err := s.Ensure(ctx)
	if err != nil {
		return created, fmt.Errorf("refresh schedule: %w", err)
	}

	s.logger.Info("Schedule refreshed",
		zap.Int("deleted_free", deleted),
		zap.Int("created", created),
	)

	return created, nil
}

// horizonSlots перечисляет все окна горизонта в детерминированном
// порядке: по дням, внутри дня по часам
func (s *ScheduleService) horizonSlots() []model.Slot {
	start := s.horizonStart()

	slots := make([]model.Slot, 0, s.horizonDays*len(s.workHours))
	n := 0
	for day := 0; day < s.horizonDays; day++ {
		date := start.AddDate(0, 0, day)
		for _, hour := range s.workHours {
			slots = append(slots, model.Slot{
				Date:        date,
				Hour:        hour,
				ServiceCode: s.assign(n),
				Status:      model.SlotStatusFree,
			})
			n++
		}
	}

	return slots
}

// horizonStart возвращает завтрашний день без компонента времени
func (s *ScheduleService) horizonStart() time.Time {
	t := s.now().AddDate(0, 0, 1)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
