package create_appointment

import "errors"

var (
	// ErrUnknownService возвращается, когда услуги нет в каталоге
	ErrUnknownService = errors.New("create_appointment: unknown service")

	// ErrExcludedDate возвращается для выходных и праздников
	ErrExcludedDate = errors.New("create_appointment: clinic is closed on this date")

	// ErrOutsideBusinessHours возвращается, когда услуга не помещается в рабочие часы
	ErrOutsideBusinessHours = errors.New("create_appointment: outside business hours")

	// ErrOutsideAdvanceWindow возвращается, когда время слишком близко или слишком далеко
	ErrOutsideAdvanceWindow = errors.New("create_appointment: outside booking window")

	// ErrSlotNotAvailable возвращается, когда время пересекается с другой записью
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
