package migrations

import (
	"context"
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/m04kA/DentalLab-BookingService/pkg/dbmetrics"
)

//go:embed postgres/*.sql
var postgresFS embed.FS

// PostgresFiles возвращает имена .up.sql файлов в порядке применения
func PostgresFiles() ([]string, error) {
	entries, err := postgresFS.ReadDir("postgres")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	return files, nil
}

// RunPostgres применяет все миграции по порядку
// Скрипты идемпотентны (IF NOT EXISTS), повторный запуск безопасен
func RunPostgres(ctx context.Context, db dbmetrics.DBExecutor) error {
	files, err := PostgresFiles()
	if err != nil {
		return err
	}

	for _, file := range files {
		migration, err := postgresFS.ReadFile("postgres/" + file)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", file, err)
		}

		if _, err := db.ExecContext(ctx, string(migration)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", file, err)
		}
	}

	return nil
}
