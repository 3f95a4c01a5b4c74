package service

import "errors"

// Ошибки шагов выбора. Ошибки самого хранилища
// (ErrSlotNotFound, ErrSlotConflict, ...) живут в пакете repository.
var (
	ErrWrongPhase       = errors.New("selection step out of order")
	ErrDateNotAvailable = errors.New("date has no free slots")
	ErrTimeNotAvailable = errors.New("time is not available on this date")
)
