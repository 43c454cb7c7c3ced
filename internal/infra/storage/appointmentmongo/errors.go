package appointmentmongo

import "errors"

var (
	// ErrConnect возвращается, когда не удалось подключиться к MongoDB
	ErrConnect = errors.New("appointmentmongo: failed to connect")

	// ErrQuery возвращается при ошибке выполнения запроса
	ErrQuery = errors.New("appointmentmongo: failed to execute query")

	// ErrDecode возвращается при ошибке декодирования документа
	ErrDecode = errors.New("appointmentmongo: failed to decode document")

	// ErrTransaction возвращается при ошибках работы с транзакцией
	ErrTransaction = errors.New("appointmentmongo: transaction error")
)
