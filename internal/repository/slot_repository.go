package repository

import (
	"context"
	"time"

	"github.com/glebkhl/zapis_bot/internal/model"
	"github.com/glebkhl/zapis_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const slotColumns = `id, slot_date, slot_time, service_code, status, owner_id, owner_name, owner_phone, booking_ref, booked_at`

// SlotRepository владеет таблицей slots и всеми её изменениями.
// Reserve и Cancel - одиночные условные UPDATE'ы: вся координация
// конкурентных записей идёт через них, без внешних блокировок.
type SlotRepository struct {
	*base.Repository
}

func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{Repository: base.NewRepository(pool)}
}

// CreateMissing вставляет свободные окна, пропуская уже существующие
// пары (дата, час). Возвращает количество созданных окон.
// Конфликт конкурентной вставки той же пары безопасен: уникальный
// индекс по (slot_date, slot_time) превращает его в no-op.
func (r *SlotRepository) CreateMissing(ctx context.Context, slots []model.Slot) (int, error) {
	if len(slots) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO slots (slot_date, slot_time, service_code, status)
		VALUES ($1, $2, $3, 'free')
		ON CONFLICT (slot_date, slot_time) DO NOTHING
	`

	batch := &pgx.Batch{}
	for _, slot := range slots {
		batch.Queue(query, slot.Date, slot.Hour, slot.ServiceCode)
	}

	results := r.SendBatch(ctx, batch)
	defer results.Close()

	created := 0
	for range slots {
		tag, err := results.Exec()
		if err != nil {
			return created, storeErr("create missing slots", err)
		}
		created += int(tag.RowsAffected())
	}

	return created, nil
}

// DeleteFreeInRange удаляет свободные окна с датой в [from, to).
// Занятые окна не трогает никогда - перегенерация расписания
// не должна отзывать существующие брони.
func (r *SlotRepository) DeleteFreeInRange(ctx context.Context, from, to time.Time) (int, error) {
	query := `
		DELETE FROM slots
		WHERE status = 'free'
		  AND slot_date >= $1
		  AND slot_date < $2
	`

	affected, err := r.ExecAffected(ctx, query, from, to)
	if err != nil {
		return 0, storeErr("delete free slots", err)
	}

	return int(affected), nil
}

// ListAvailableDates возвращает ближайшие даты, на которые есть
// хотя бы одно свободное окно, по возрастанию, не больше limit
func (r *SlotRepository) ListAvailableDates(ctx context.Context, limit int) ([]time.Time, error) {
	query := `
		SELECT DISTINCT slot_date
		FROM slots
		WHERE status = 'free'
		  AND slot_date > CURRENT_DATE
		ORDER BY slot_date
		LIMIT $1
	`

	rows, err := r.Query(ctx, query, limit)
	if err != nil {
		return nil, storeErr("list available dates", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, storeErr("scan date", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list available dates", err)
	}

	return dates, nil
}

// ListAvailableTimes возвращает свободные окна на дату по возрастанию часа
func (r *SlotRepository) ListAvailableTimes(ctx context.Context, date time.Time) ([]model.Slot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM slots
		WHERE slot_date = $1
		  AND status = 'free'
		ORDER BY slot_time
	`

	return r.querySlots(ctx, "list available times", query, date)
}

// Reserve атомарно переводит окно из free в booked для владельца owner.
// Это одиночный условный UPDATE: из двух конкурентных вызовов ровно
// один получит строку, второй - ErrSlotConflict.
func (r *SlotRepository) Reserve(ctx context.Context, date time.Time, hour int, owner model.Owner) (*model.Slot, error) {
	query := `
		UPDATE slots
		SET status = 'booked',
		    owner_id = $3,
		    owner_name = $4,
		    owner_phone = $5,
		    booking_ref = $6,
		    booked_at = now()
		WHERE slot_date = $1
		  AND slot_time = $2
		  AND status = 'free'
		RETURNING ` + slotColumns + `
	`

	row := r.QueryRow(ctx, query, date, hour, owner.UserID, owner.Name, owner.Phone, owner.Ref)
	slot, err := scanSlot(row)
	if err != nil {
		if base.IsNotFound(err) {
			// CAS не прошёл: выясняем почему. Это чтение ничего не меняет.
			return nil, r.probeReserveFailure(ctx, date, hour)
		}
		return nil, storeErr("reserve slot", err)
	}

	return slot, nil
}

// probeReserveFailure различает "окна нет" и "окно уже занято"
func (r *SlotRepository) probeReserveFailure(ctx context.Context, date time.Time, hour int) error {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM slots
			WHERE slot_date = $1 AND slot_time = $2
		)
	`

	var exists bool
	if err := r.QueryRow(ctx, query, date, hour).Scan(&exists); err != nil {
		return storeErr("probe slot", err)
	}

	if exists {
		return ErrSlotConflict
	}
	return ErrSlotNotFound
}

// Cancel атомарно освобождает окно, если оно занято именно этим
// пользователем. Поля владельца очищаются вместе со сменой статуса.
func (r *SlotRepository) Cancel(ctx context.Context, date time.Time, hour int, userID int64) error {
	query := `
		UPDATE slots
		SET status = 'free',
		    owner_id = NULL,
		    owner_name = NULL,
		    owner_phone = NULL,
		    booking_ref = NULL,
		    booked_at = NULL
		WHERE slot_date = $1
		  AND slot_time = $2
		  AND status = 'booked'
		  AND owner_id = $3
	`

	affected, err := r.ExecAffected(ctx, query, date, hour, userID)
	if err != nil {
		return storeErr("cancel slot", err)
	}

	if affected == 0 {
		return r.probeCancelFailure(ctx, date, hour)
	}

	return nil
}

// probeCancelFailure различает "окна нет" и "окно не принадлежит пользователю"
func (r *SlotRepository) probeCancelFailure(ctx context.Context, date time.Time, hour int) error {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM slots
			WHERE slot_date = $1 AND slot_time = $2
		)
	`

	var exists bool
	if err := r.QueryRow(ctx, query, date, hour).Scan(&exists); err != nil {
		return storeErr("probe slot", err)
	}

	if exists {
		return ErrNotOwner
	}
	return ErrSlotNotFound
}

// ListUserBookings возвращает брони пользователя по возрастанию (дата, час)
func (r *SlotRepository) ListUserBookings(ctx context.Context, userID int64) ([]model.Slot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM slots
		WHERE status = 'booked'
		  AND owner_id = $1
		ORDER BY slot_date, slot_time
	`

	return r.querySlots(ctx, "list user bookings", query, userID)
}

// ListInRange возвращает все окна с датой в [from, to) по возрастанию
// (дата, час), независимо от статуса. Используется для отрисовки
// сетки расписания.
func (r *SlotRepository) ListInRange(ctx context.Context, from, to time.Time) ([]model.Slot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM slots
		WHERE slot_date >= $1
		  AND slot_date < $2
		ORDER BY slot_date, slot_time
	`

	return r.querySlots(ctx, "list slots in range", query, from, to)
}

// ListAllBookings возвращает все брони по возрастанию (дата, час)
func (r *SlotRepository) ListAllBookings(ctx context.Context) ([]model.Slot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM slots
		WHERE status = 'booked'
		ORDER BY slot_date, slot_time
	`

	return r.querySlots(ctx, "list all bookings", query)
}

// ComputeStats считает агрегаты по таблице одним запросом
func (r *SlotRepository) ComputeStats(ctx context.Context) (*model.ScheduleStats, error) {
	query := `
		SELECT count(*),
		       count(*) FILTER (WHERE status = 'free'),
		       count(*) FILTER (WHERE status = 'booked')
		FROM slots
	`

	stats := &model.ScheduleStats{PerService: make(map[string]int)}
	err := r.QueryRow(ctx, query).Scan(&stats.Total, &stats.Free, &stats.Booked)
	if err != nil {
		return nil, storeErr("compute stats", err)
	}

	perServiceQuery := `
		SELECT service_code, count(*)
		FROM slots
		WHERE status = 'booked'
		GROUP BY service_code
	`

	rows, err := r.Query(ctx, perServiceQuery)
	if err != nil {
		return nil, storeErr("compute per-service stats", err)
	}
	defer rows.Close()

	for rows.Next() {
		var code string
		var count int
		if err := rows.Scan(&code, &count); err != nil {
			return nil, storeErr("scan per-service stats", err)
		}
		stats.PerService[code] = count
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("compute per-service stats", err)
	}

	return stats, nil
}

func (r *SlotRepository) querySlots(ctx context.Context, op, query string, args ...interface{}) ([]model.Slot, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr(op, err)
	}
	defer rows.Close()

	var slots []model.Slot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, storeErr("scan slot", err)
		}
		slots = append(slots, *slot)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(op, err)
	}

	return slots, nil
}

func scanSlot(row pgx.Row) (*model.Slot, error) {
	var slot model.Slot
	err := row.Scan(
		&slot.ID,
		&slot.Date,
		&slot.Hour,
		&slot.ServiceCode,
		&slot.Status,
		&slot.OwnerID,
		&slot.OwnerName,
		&slot.OwnerPhone,
		&slot.BookingRef,
		&slot.BookedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}
