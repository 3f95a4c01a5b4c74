package repository

import (
	"errors"
	"fmt"
)

// Ошибки уровня хранилища. SlotConflict и NotOwner - ожидаемые исходы,
// они доходят до пользователя как есть и никогда не ретраятся.
var (
	ErrSlotNotFound     = errors.New("slot not found")
	ErrSlotConflict     = errors.New("slot already booked")
	ErrNotOwner         = errors.New("slot booked by another user")
	ErrStoreUnavailable = errors.New("slot store unavailable")
)

// storeErr оборачивает ошибку ввода-вывода БД в ErrStoreUnavailable,
// сохраняя исходную ошибку в цепочке
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(ErrStoreUnavailable, err))
}
