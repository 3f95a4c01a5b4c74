package service

import (
	"context"
	"time"

	"github.com/glebkhl/zapis_bot/internal/model"
)

// SlotStore всё, что сервисам нужно от хранилища окон.
// Продовая реализация - repository.SlotRepository поверх PostgreSQL.
type SlotStore interface {
	CreateMissing(ctx context.Context, slots []model.Slot) (int, error)
	DeleteFreeInRange(ctx context.Context, from, to time.Time) (int, error)

	ListAvailableDates(ctx context.Context, limit int) ([]time.Time, error)
	ListAvailableTimes(ctx context.Context, date time.Time) ([]model.Slot, error)

	Reserve(ctx context.Context, date time.Time, hour int, owner model.Owner) (*model.Slot, error)
	Cancel(ctx context.Context, date time.Time, hour int, userID int64) error

	ListInRange(ctx context.Context, from, to time.Time) ([]model.Slot, error)
	ListUserBookings(ctx context.Context, userID int64) ([]model.Slot, error)
	ListAllBookings(ctx context.Context) ([]model.Slot, error)
	ComputeStats(ctx context.Context) (*model.ScheduleStats, error)
}
