package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebkhl/zapis_bot/internal/catalog"
	"github.com/glebkhl/zapis_bot/internal/model"
	"github.com/glebkhl/zapis_bot/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SelectionPhase фаза последовательности выбора одного пользователя
type SelectionPhase string

const (
	PhaseBrowsing   SelectionPhase = "browsing"
	PhaseDateChosen SelectionPhase = "date_chosen"
	PhaseTimeChosen SelectionPhase = "time_chosen"
)

// Selection последовательность выбора пользователя: дата -> время -> бронь.
// Значение принадлежит вызывающей стороне и живёт только в рамках одного
// диалога; никакого разделяемого состояния и никаких блокировок поверх
// хранилища оно не несёт.
type Selection struct {
	UserID      int64
	Phase       SelectionPhase
	Date        time.Time
	Hour        int
	ServiceCode string
}

// ReserveOutcome итог попытки бронирования. Либо Slot с услугой
// (успех), либо Conflict с актуальным списком свободных окон на ту же
// дату, чтобы пользователь выбрал заново.
type ReserveOutcome struct {
	Slot         *model.Slot
	Service      model.Service
	Conflict     bool
	Alternatives []model.Slot
}

// BookingService проводит пользователя по шагам выбора и делегирует
// атомарную смену состояния хранилищу. Сам сервис состояния не держит.
type BookingService struct {
	store      SlotStore
	catalog    *catalog.Catalog
	datesLimit int
	logger     *zap.Logger
}

func NewBookingService(store SlotStore, cat *catalog.Catalog, datesLimit int, logger *zap.Logger) *BookingService {
	return &BookingService{
		store:      store,
		catalog:    cat,
		datesLimit: datesLimit,
		logger:     logger,
	}
}

// NewSelection начинает последовательность выбора для пользователя
func (s *BookingService) NewSelection(userID int64) *Selection {
	return &Selection{UserID: userID, Phase: PhaseBrowsing}
}

// AvailableDates возвращает ближайшие даты со свободными окнами
func (s *BookingService) AvailableDates(ctx context.Context) ([]time.Time, error) {
	return s.store.ListAvailableDates(ctx, s.datesLimit)
}

// AvailableTimes возвращает свободные окна на дату
func (s *BookingService) AvailableTimes(ctx context.Context, date time.Time) ([]model.Slot, error) {
	return s.store.ListAvailableTimes(ctx, date)
}

// ChooseDate шаг Browsing -> DateChosen. Дата принимается только если
// она есть в текущем списке доступных.
func (s *BookingService) ChooseDate(ctx context.Context, sel *Selection, date time.Time) error {
	if sel.Phase != PhaseBrowsing {
		return ErrWrongPhase
	}

	dates, err := s.store.ListAvailableDates(ctx, s.datesLimit)
	if err != nil {
		return fmt.Errorf("choose date: %w", err)
	}

	if !containsDate(dates, date) {
		return ErrDateNotAvailable
	}

	sel.Date = date
	sel.Phase = PhaseDateChosen
	return nil
}

// ChooseTime шаг DateChosen -> TimeChosen. Час принимается только если
// на выбранную дату есть свободное окно с таким часом; код услуги
// берётся из этого окна.
func (s *BookingService) ChooseTime(ctx context.Context, sel *Selection, hour int) error {
	if sel.Phase != PhaseDateChosen {
		return ErrWrongPhase
	}

	slots, err := s.store.ListAvailableTimes(ctx, sel.Date)
	if err != nil {
		return fmt.Errorf("choose time: %w", err)
	}

	for _, slot := range slots {
		if slot.Hour == hour {
			sel.Hour = hour
			sel.ServiceCode = slot.ServiceCode
			sel.Phase = PhaseTimeChosen
			return nil
		}
	}

	return ErrTimeNotAvailable
}

// Reserve шаг TimeChosen -> Reserved | Conflict. Проигрыш гонки не
// ретраится и не подменяет окно: пользователь получает свежий список
// свободных окон на ту же дату и выбирает сам.
func (s *BookingService) Reserve(ctx context.Context, sel *Selection, name string, phone *string) (*ReserveOutcome, error) {
	if sel.Phase != PhaseTimeChosen {
		return nil, ErrWrongPhase
	}

	owner := model.Owner{
		UserID: sel.UserID,
		Name:   name,
		Phone:  phone,
		Ref:    uuid.New(),
	}

	slot, err := s.store.Reserve(ctx, sel.Date, sel.Hour, owner)
	if err != nil {
		if errors.Is(err, repository.ErrSlotConflict) {
			alternatives, listErr := s.store.ListAvailableTimes(ctx, sel.Date)
			if listErr != nil {
				return nil, fmt.Errorf("reserve: list alternatives: %w", listErr)
			}

			s.logger.Info("Reserve lost the race",
				zap.Int64("user_id", sel.UserID),
				zap.Time("date", sel.Date),
				zap.Int("hour", sel.Hour),
			)

			// возвращаем выбор на шаг даты: пользователь выбирает время заново
			sel.Hour = 0
			sel.ServiceCode = ""
			sel.Phase = PhaseDateChosen

			return &ReserveOutcome{Conflict: true, Alternatives: alternatives}, nil
		}
		return nil, fmt.Errorf("reserve: %w", err)
	}

	svc, ok := s.catalog.Get(slot.ServiceCode)
	if !ok {
		// по инварианту данных такого быть не должно
		return nil, fmt.Errorf("reserve: unknown service code %q", slot.ServiceCode)
	}

	s.logger.Info("Slot reserved",
		zap.Int64("user_id", sel.UserID),
		zap.Time("date", sel.Date),
		zap.Int("hour", sel.Hour),
		zap.String("service", slot.ServiceCode),
		zap.String("booking_ref", owner.Ref.String()),
	)

	return &ReserveOutcome{Slot: slot, Service: svc}, nil
}

// Cancel отменяет бронь пользователя. Не зависит от последовательности
// выбора; результат хранилища отдаётся как есть.
func (s *BookingService) Cancel(ctx context.Context, date time.Time, hour int, userID int64) error {
	err := s.store.Cancel(ctx, date, hour, userID)
	if err != nil {
		return fmt.Errorf("cancel: %w", err)
	}

	s.logger.Info("Booking cancelled",
		zap.Int64("user_id", userID),
		zap.Time("date", date),
		zap.Int("hour", hour),
	)

	return nil
}

// UserBookings возвращает брони пользователя
func (s *BookingService) UserBookings(ctx context.Context, userID int64) ([]model.Slot, error) {
	return s.store.ListUserBookings(ctx, userID)
}

func containsDate(dates []time.Time, date time.Time) bool {
	for _, d := range dates {
		if d.Year() == date.Year() && d.YearDay() == date.YearDay() {
			return true
		}
	}
	return false
}
