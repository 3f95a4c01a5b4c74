package service

import (
	"context"
	"testing"

	"github.com/glebkhl/zapis_bot/internal/model"
	"go.uber.org/zap"
)

func TestStats_EmptySchedule(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	cat := testCatalog(t)

	r := NewReportService(store, cat, zap.NewNop())

	report, err := r.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if report.Stats.Total != 0 {
		t.Fatalf("expected empty schedule, got %+v", report.Stats)
	}
	if report.Occupancy != 0 {
		t.Fatalf("occupancy of empty schedule must be 0, got %f", report.Occupancy)
	}
	if report.Revenue != 0 {
		t.Fatalf("revenue of empty schedule must be 0, got %d", report.Revenue)
	}
}

func TestStats_RevenueAndOccupancy(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	cat := testCatalog(t)
	seedSchedule(t, store, cat) // 4 окна на 2 дня

	date := fixedNow().AddDate(0, 0, 1)
	if _, err := store.Reserve(ctx, date, 10, model.Owner{UserID: 7, Name: "Вася"}); err != nil {
		t.Fatalf("reserve 10: %v", err)
	}
	if _, err := store.Reserve(ctx, date, 14, model.Owner{UserID: 9, Name: "Петя"}); err != nil {
		t.Fatalf("reserve 14: %v", err)
	}

	r := NewReportService(store, cat, zap.NewNop())

	report, err := r.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if report.Stats.Total != 4 || report.Stats.Free != 2 || report.Stats.Booked != 2 {
		t.Fatalf("unexpected stats: %+v", report.Stats)
	}
	if report.Stats.Free+report.Stats.Booked != report.Stats.Total {
		t.Fatalf("accounting identity violated: %+v", report.Stats)
	}
	if report.Occupancy != 0.5 {
		t.Fatalf("expected occupancy 0.5, got %f", report.Occupancy)
	}

	// выручка складывается из цен забронированных услуг
	wantRevenue := 0
	for code, count := range report.Stats.PerService {
		svc, ok := cat.Get(code)
		if !ok {
			t.Fatalf("unknown service in stats: %s", code)
		}
		wantRevenue += count * svc.Price
	}
	if report.Revenue != wantRevenue {
		t.Fatalf("expected revenue %d, got %d", wantRevenue, report.Revenue)
	}
	if report.Revenue == 0 {
		t.Fatal("revenue must be positive with booked slots")
	}
}

func TestAllBookings_Ordering(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	cat := testCatalog(t)
	seedSchedule(t, store, cat)

	day1 := fixedNow().AddDate(0, 0, 1)
	day2 := fixedNow().AddDate(0, 0, 2)

	// бронируем в обратном порядке
	if _, err := store.Reserve(ctx, day2, 14, model.Owner{UserID: 9, Name: "Петя"}); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if _, err := store.Reserve(ctx, day1, 10, model.Owner{UserID: 7, Name: "Вася"}); err != nil {
		t.Fatalf("reserve: %v", err)
	}

	r := NewReportService(store, cat, zap.NewNop())

	bookings, err := r.AllBookings(ctx)
	if err != nil {
		t.Fatalf("all bookings: %v", err)
	}
	if len(bookings) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(bookings))
	}
	if !sameDay(bookings[0].Date, day1) || bookings[1].Hour != 14 {
		t.Fatalf("bookings must be ordered by (date, hour): %+v", bookings)
	}
}
