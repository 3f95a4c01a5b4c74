package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebkhl/zapis_bot/internal/catalog"
	"github.com/glebkhl/zapis_bot/internal/model"
	"go.uber.org/zap"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]model.Service{
		{Code: "express", Name: "Экспресс", Price: 100_000, Duration: 30},
		{Code: "standard", Name: "Стандартная", Price: 150_000, Duration: 60},
		{Code: "deep", Name: "Глубокая", Price: 250_000, Duration: 90},
	})
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	return cat
}

func fixedNow() time.Time {
	return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
}

func newTestScheduleService(store SlotStore, cat *catalog.Catalog, days int, hours []int) *ScheduleService {
	s := NewScheduleService(store, days, hours, RoundRobin(cat), zap.NewNop())
	s.now = fixedNow
	return s
}

func TestEnsure_GeneratesHorizon(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	cat := testCatalog(t)

	s := newTestScheduleService(store, cat, 2, []int{10, 14})

	created, err := s.Ensure(ctx)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if created != 4 {
		t.Fatalf("expected 4 created slots, got %d", created)
	}

	stats, _ := store.ComputeStats(ctx)
	if stats.Total != 4 || stats.Free != 4 || stats.Booked != 0 {
		t.Fatalf("unexpected stats after ensure: %+v", stats)
	}
}

func TestEnsure_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	cat := testCatalog(t)

	s := newTestScheduleService(store, cat, 3, []int{10, 12, 14})

	if _, err := s.Ensure(ctx); err != nil {
		t.Fatalf("first ensure: %v", err)
	}

	created, err := s.Ensure(ctx)
	if err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if created != 0 {
		t.Fatalf("second ensure must not create slots, got %d", created)
	}

	// пар (дата, час) ровно столько, сколько ячеек в горизонте
	stats, _ := store.ComputeStats(ctx)
	if stats.Total != 9 {
		t.Fatalf("expected 9 unique slots, got %d", stats.Total)
	}
}

func TestEnsure_RoundRobinAssignment(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	cat := testCatalog(t)

	s := newTestScheduleService(store, cat, 1, []int{10, 12, 14, 16})

	if _, err := s.Ensure(ctx); err != nil {
		t.Fatalf("ensure: %v", err)
	}

	date := fixedNow().AddDate(0, 0, 1)
	slots, _ := store.ListAvailableTimes(ctx, date)
	if len(slots) != 4 {
		t.Fatalf("expected 4 slots, got %d", len(slots))
	}

	want := []string{"express", "standard", "deep", "express"}
	for i, slot := range slots {
		if slot.ServiceCode != want[i] {
			t.Fatalf("slot %d: expected service %q, got %q", i, want[i], slot.ServiceCode)
		}
	}
}

func TestSeededRandom_Reproducible(t *testing.T) {
	cat := testCatalog(t)

	a := SeededRandom(cat, 42)
	b := SeededRandom(cat, 42)

	for i := 0; i < 20; i++ {
		if a(i) != b(i) {
			t.Fatalf("same seed must give same assignment at step %d", i)
		}
	}
}

func TestRefresh_PreservesBookings(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	cat := testCatalog(t)

	s := newTestScheduleService(store, cat, 2, []int{10, 14})

	if _, err := s.Ensure(ctx); err != nil {
		t.Fatalf("ensure: %v", err)
	}

	// бронируем одно окно напрямую через хранилище
	date := fixedNow().AddDate(0, 0, 1)
	owner := model.Owner{UserID: 7, Name: "Вася"}
	if _, err := store.Reserve(ctx, date, 10, owner); err != nil {
		t.Fatalf("reserve: %v", err)
	}

	created, err := s.Refresh(ctx)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if created != 3 {
		t.Fatalf("expected 3 recreated free slots, got %d", created)
	}

	// бронь пережила перегенерацию с тем же владельцем
	bookings, _ := store.ListUserBookings(ctx, 7)
	if len(bookings) != 1 {
		t.Fatalf("expected booking to survive refresh, got %d bookings", len(bookings))
	}
	if bookings[0].Hour != 10 || !sameDay(bookings[0].Date, date) {
		t.Fatalf("unexpected surviving booking: %+v", bookings[0])
	}

	stats, _ := store.ComputeStats(ctx)
	if stats.Total != 4 || stats.Free != 3 || stats.Booked != 1 {
		t.Fatalf("unexpected stats after refresh: %+v", stats)
	}
}
