package get_available_slots

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуги нет в каталоге
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrInvalidDate возвращается, когда дата раньше сегодняшнего дня клиники
	ErrInvalidDate = errors.New("get_available_slots: date is in the past")

	// ErrDateTooFarInFuture возвращается, когда дата за пределами окна записи
	ErrDateTooFarInFuture = errors.New("get_available_slots: date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
