package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/glebkhl/zapis_bot/internal/model"
	"github.com/glebkhl/zapis_bot/internal/repository"
)

// memStore реализация SlotStore в памяти для тестов. Повторяет семантику
// repository.SlotRepository: условные переходы статуса под мьютексом,
// те же сигнальные ошибки.
type memStore struct {
	mu     sync.Mutex
	slots  map[string]*model.Slot
	nextID int64
}

func newMemStore() *memStore {
	return &memStore{slots: make(map[string]*model.Slot)}
}

func slotKey(date time.Time, hour int) string {
	return fmt.Sprintf("%s_%02d", date.Format("2006-01-02"), hour)
}

func (m *memStore) CreateMissing(ctx context.Context, slots []model.Slot) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	created := 0
	for _, slot := range slots {
		key := slotKey(slot.Date, slot.Hour)
		if _, exists := m.slots[key]; exists {
			continue
		}
		m.nextID++
		stored := slot
		stored.ID = m.nextID
		stored.Status = model.SlotStatusFree
		m.slots[key] = &stored
		created++
	}
	return created, nil
}

func (m *memStore) DeleteFreeInRange(ctx context.Context, from, to time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	deleted := 0
	for key, slot := range m.slots {
		if slot.Status != model.SlotStatusFree {
			continue
		}
		if slot.Date.Before(from) || !slot.Date.Before(to) {
			continue
		}
		delete(m.slots, key)
		deleted++
	}
	return deleted, nil
}

func (m *memStore) ListAvailableDates(ctx context.Context, limit int) ([]time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := make(map[string]time.Time)
	for _, slot := range m.slots {
		if slot.Status == model.SlotStatusFree {
			seen[slot.Date.Format("2006-01-02")] = slot.Date
		}
	}

	dates := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	if len(dates) > limit {
		dates = dates[:limit]
	}
	return dates, nil
}

func (m *memStore) ListAvailableTimes(ctx context.Context, date time.Time) ([]model.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.Slot
	for _, slot := range m.slots {
		if slot.Status == model.SlotStatusFree && sameDay(slot.Date, date) {
			out = append(out, *slot)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hour < out[j].Hour })
	return out, nil
}

func (m *memStore) Reserve(ctx context.Context, date time.Time, hour int, owner model.Owner) (*model.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	slot, exists := m.slots[slotKey(date, hour)]
	if !exists {
		return nil, repository.ErrSlotNotFound
	}
	if slot.Status != model.SlotStatusFree {
		return nil, repository.ErrSlotConflict
	}

	now := time.Now()
	slot.Status = model.SlotStatusBooked
	slot.OwnerID = &owner.UserID
	slot.OwnerName = &owner.Name
	slot.OwnerPhone = owner.Phone
	ref := owner.Ref
	slot.BookingRef = &ref
	slot.BookedAt = &now

	copied := *slot
	return &copied, nil
}

func (m *memStore) Cancel(ctx context.Context, date time.Time, hour int, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	slot, exists := m.slots[slotKey(date, hour)]
	if !exists {
		return repository.ErrSlotNotFound
	}
	if slot.Status != model.SlotStatusBooked || slot.OwnerID == nil || *slot.OwnerID != userID {
		return repository.ErrNotOwner
	}

	slot.Status = model.SlotStatusFree
	slot.OwnerID = nil
	slot.OwnerName = nil
	slot.OwnerPhone = nil
	slot.BookingRef = nil
	slot.BookedAt = nil
	return nil
}

func (m *memStore) ListInRange(ctx context.Context, from, to time.Time) ([]model.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.Slot
	for _, slot := range m.slots {
		if slot.Date.Before(from) || !slot.Date.Before(to) {
			continue
		}
		out = append(out, *slot)
	}
	sortSlots(out)
	return out, nil
}

func (m *memStore) ListUserBookings(ctx context.Context, userID int64) ([]model.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.Slot
	for _, slot := range m.slots {
		if slot.Status == model.SlotStatusBooked && slot.OwnerID != nil && *slot.OwnerID == userID {
			out = append(out, *slot)
		}
	}
	sortSlots(out)
	return out, nil
}

func (m *memStore) ListAllBookings(ctx context.Context) ([]model.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.Slot
	for _, slot := range m.slots {
		if slot.Status == model.SlotStatusBooked {
			out = append(out, *slot)
		}
	}
	sortSlots(out)
	return out, nil
}

func (m *memStore) ComputeStats(ctx context.Context) (*model.ScheduleStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := &model.ScheduleStats{PerService: make(map[string]int)}
	for _, slot := range m.slots {
		stats.Total++
		if slot.Status == model.SlotStatusBooked {
			stats.Booked++
			stats.PerService[slot.ServiceCode]++
		} else {
			stats.Free++
		}
	}
	return stats, nil
}

func sortSlots(slots []model.Slot) {
	sort.Slice(slots, func(i, j int) bool {
		if !sameDay(slots[i].Date, slots[j].Date) {
			return slots[i].Date.Before(slots[j].Date)
		}
		return slots[i].Hour < slots[j].Hour
	})
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
