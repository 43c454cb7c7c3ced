package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/DentalLab-BookingService/internal/domain"
	"github.com/m04kA/DentalLab-BookingService/pkg/dbmetrics"
	"github.com/m04kA/DentalLab-BookingService/pkg/psqlbuilder"
)

// Repository читает каталог услуг лаборатории из таблицы dental_services
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

func buildActiveServicesQuery() (string, []interface{}, error) {
	return psqlbuilder.Select("key", "name", "duration_minutes", "description").
		From("dental_services").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("key ASC").
		ToSql()
}

// GetAll возвращает активные услуги, отсортированные по ключу
// Проверку длительности выполняет availability.NewServiceCatalog
func (r *Repository) GetAll(ctx context.Context) ([]domain.ServiceCatalogEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildActiveServicesQuery()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]domain.ServiceCatalogEntry, 0)
	for rows.Next() {
		var entry domain.ServiceCatalogEntry
		var description sql.NullString

		if err := rows.Scan(&entry.Key, &entry.Name, &entry.DurationMinutes, &description); err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan row: %v", ErrScanRow, err)
		}
		entry.Description = description.String
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}
