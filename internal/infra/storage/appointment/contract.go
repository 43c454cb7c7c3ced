package appointment

import (
	"github.com/m04kA/DentalLab-BookingService/pkg/dbmetrics"
)

// Переиспользуем интерфейс из dbmetrics для работы с БД
// Подходит и *dbmetrics.DB, и открытая транзакция
type DBExecutor = dbmetrics.DBExecutor
