// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package migration applies the Vidtube schema with golang-migrate at startup.

The users, content and social schemas ship inside the binary (sql/). Setting
MIGRATION_PATH points the runner at a directory on disk instead, which is how
hotfix migrations are rolled out without a rebuild.
*/
package migration

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/*.sql
var embedded embed.FS

/*
RunUp brings the database to the newest migration.

A dirty database (a previous run crashed half way) is refused rather than
forced; an operator has to inspect it first.

Parameters:
  - dsn: postgres:// URL as used by the pgx pool
  - dir: migration directory, or "" for the embedded set
  - logger: receives migration_* events
*/
func RunUp(dsn, dir string, logger *slog.Logger) error {
	migrator, err := open(pgx5DSN(dsn), dir)
	if err != nil {
		return err
	}
	defer closeMigrator(migrator, logger)
	migrator.Log = slogAdapter{logger: logger}

	from, err := cleanVersion(migrator)
	if err != nil {
		return err
	}
	logger.Info("migration_started", slog.Uint64("from_version", uint64(from)))

	switch err := migrator.Up(); {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("migration_already_up_to_date", slog.Uint64("version", uint64(from)))
		return nil
	case err != nil:
		return fmt.Errorf("migration_up_failed: %w", err)
	}

	to, _, _ := migrator.Version()
	logger.Info("migration_successful",
		slog.Uint64("from_version", uint64(from)),
		slog.Uint64("to_version", uint64(to)),
	)
	return nil
}

// cleanVersion returns the applied version (0 on a fresh database) and fails
// on a dirty one.
func cleanVersion(migrator *migrate.Migrate) (uint, error) {
	version, dirty, err := migrator.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		return 0, nil
	case err != nil:
		return 0, fmt.Errorf("migration_version_failed: %w", err)
	case dirty:
		return version, fmt.Errorf("migration_dirty: database left dirty at version %d", version)
	}
	return version, nil
}

func open(databaseURL, dir string) (*migrate.Migrate, error) {
	if dir != "" {
		migrator, err := migrate.New("file://"+dir, databaseURL)
		if err != nil {
			return nil, fmt.Errorf("migration_open_dir_failed: %s: %w", dir, err)
		}
		return migrator, nil
	}

	source, err := iofs.New(embedded, "sql")
	if err != nil {
		return nil, fmt.Errorf("migration_embedded_source_failed: %w", err)
	}
	migrator, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("migration_open_failed: %w", err)
	}
	return migrator, nil
}

func closeMigrator(migrator *migrate.Migrate, logger *slog.Logger) {
	sourceErr, databaseErr := migrator.Close()
	if err := errors.Join(sourceErr, databaseErr); err != nil {
		logger.Warn("migration_close_failed", slog.Any("error", err))
	}
}

// pgx5DSN rewrites postgres:// and postgresql:// URLs to the pgx5:// scheme
// the golang-migrate pgx driver registers. Other DSNs pass through.
func pgx5DSN(dsn string) string {
	for _, scheme := range []string{"postgresql://", "postgres://"} {
		if rest, ok := strings.CutPrefix(dsn, scheme); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// slogAdapter satisfies migrate.Logger.
type slogAdapter struct {
	logger *slog.Logger
}

func (a slogAdapter) Printf(format string, args ...any) {
	a.logger.Debug("migration_step", slog.String("line", strings.TrimSpace(fmt.Sprintf(format, args...))))
}

func (a slogAdapter) Verbose() bool {
	return a.logger.Enabled(context.Background(), slog.LevelDebug)
}
