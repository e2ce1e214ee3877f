package sqldb

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strings"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrate applies every up migration of the driver in file name order.
// Migrations are idempotent, so running them on every start is safe.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	dir := path.Join("migrations", driver)
	entries, err := fs.ReadDir(migrationsFS, dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		if err := execMigration(ctx, db, path.Join(dir, name)); err != nil {
			return err
		}
	}

	return nil
}

// MigrateNamed applies the single migration file whose name contains name,
// e.g. "0001_create_polls.down".
func MigrateNamed(ctx context.Context, db *sql.DB, driver, name string) error {
	dir := path.Join("migrations", driver)
	file, err := migrationFilePath(dir, name)
	if err != nil {
		return err
	}

	return execMigration(ctx, db, path.Join(dir, file))
}

func execMigration(ctx context.Context, db *sql.DB, file string) error {
	content, err := migrationsFS.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read migration file %s: %w", file, err)
	}

	if _, err := db.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("failed to execute migration %s: %w", file, err)
	}

	return nil
}

func migrationFilePath(dir, name string) (string, error) {
	regex, err := regexp.Compile(fmt.Sprintf(`^.*%s\.sql$`, regexp.QuoteMeta(name)))
	if err != nil {
		return "", fmt.Errorf("invalid migration name: %w", err)
	}

	entries, err := fs.ReadDir(migrationsFS, dir)
	if err != nil {
		return "", fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if regex.MatchString(entry.Name()) {
			return entry.Name(), nil
		}
	}

	return "", fmt.Errorf("migration file %q not found", name)
}
