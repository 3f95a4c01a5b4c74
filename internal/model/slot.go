package model

import (
	"time"

	"github.com/google/uuid"
)

type SlotStatus string

const (
	SlotStatusFree   SlotStatus = "free"
	SlotStatusBooked SlotStatus = "booked"
)

// Slot одно окно записи: (дата, час) + услуга + статус.
// Пара (Date, Hour) уникальна на уровне БД.
type Slot struct {
	ID          int64      `json:"id"`
	Date        time.Time  `json:"date"` // только календарный день, без времени
	Hour        int        `json:"hour"` // час из рабочего набора (10, 12, ...)
	ServiceCode string     `json:"service_code"`
	Status      SlotStatus `json:"status"`
	OwnerID     *int64     `json:"owner_id"` // указатель - может быть nil
	OwnerName   *string    `json:"owner_name"`
	OwnerPhone  *string    `json:"owner_phone"`
	BookingRef  *uuid.UUID `json:"booking_ref"` // номер подтверждения, есть только у занятых
	BookedAt    *time.Time `json:"booked_at"`
}

// Owner данные владельца брони, передаются в хранилище при резервировании
type Owner struct {
	UserID int64
	Name   string
	Phone  *string
	Ref    uuid.UUID
}

// IsFree проверяет свободно ли окно
func (s *Slot) IsFree() bool {
	return s.Status == SlotStatusFree
}

// SlotTime собирает полное время начала окна
func (s *Slot) SlotTime() time.Time {
	return time.Date(s.Date.Year(), s.Date.Month(), s.Date.Day(), s.Hour, 0, 0, 0, s.Date.Location())
}
