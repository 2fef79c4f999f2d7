// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/dberr"
	"github.com/taibuivan/vidtube/internal/platform/postgres"
	"github.com/taibuivan/vidtube/internal/users/auth"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

// # Account Repository

// PostgresRepository implements [Repository] on users.account.
type PostgresRepository struct {
	db postgres.Querier
}

// NewPostgresRepository constructs a PostgreSQL backed profile store.
func NewPostgresRepository(db postgres.Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const accountColumns = `id, username, email, fullname, avatarurl, coverimageurl, createdat, updatedat`

func scanAccount(row pgx.Row) (*auth.User, error) {
	user := &auth.User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FullName,
		&user.AvatarURL,
		&user.CoverImageURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	return user, nil
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*auth.User, error) {
	query := `SELECT ` + accountColumns + ` FROM users.account WHERE id = $1`
	return scanAccount(repository.db.QueryRow(ctx, query, id))
}

func (repository *PostgresRepository) UpdateDetails(ctx context.Context, id, fullName, email string) (*auth.User, error) {
	query := `
		UPDATE users.account
		SET fullname = $2, email = $3, updatedat = now()
		WHERE id = $1
		RETURNING ` + accountColumns

	user, err := scanAccount(repository.db.QueryRow(ctx, query, id, fullName, email))
	if apperr.IsConflict(err) {
		return nil, apperr.Conflict("Email is already in use")
	}
	return user, err
}

// imageColumns maps an [Image] to its column. Only these names reach the SQL text.
var imageColumns = map[Image]string{
	ImageAvatar: "avatarurl",
	ImageCover:  "coverimageurl",
}

func (repository *PostgresRepository) UpdateImage(ctx context.Context, id string, image Image, url string) (*auth.User, error) {
	column, ok := imageColumns[image]
	if !ok {
		return nil, fmt.Errorf("postgres_account_repo_unknown_image: %s", image)
	}

	query := fmt.Sprintf(`
		UPDATE users.account
		SET %s = $2, updatedat = now()
		WHERE id = $1
		RETURNING `+accountColumns, column)

	return scanAccount(repository.db.QueryRow(ctx, query, id, url))
}

// # History Repository

// PostgresHistoryRepository implements [HistoryRepository] on users.watch_history.
type PostgresHistoryRepository struct {
	db postgres.Querier
}

// NewPostgresHistoryRepository constructs a PostgreSQL backed watch history.
func NewPostgresHistoryRepository(db postgres.Querier) *PostgresHistoryRepository {
	return &PostgresHistoryRepository{db: db}
}

// Record upserts on the (userid, videoid) key so a rewatch only bumps watchedat.
func (repository *PostgresHistoryRepository) Record(ctx context.Context, userID, videoID string) error {
	const query = `
		INSERT INTO users.watch_history (userid, videoid, watchedat)
		VALUES ($1, $2, now())
		ON CONFLICT (userid, videoid) DO UPDATE SET watchedat = EXCLUDED.watchedat`

	if _, err := repository.db.Exec(ctx, query, userID, videoID); err != nil {
		return dberr.Wrap(err, "Video")
	}
	return nil
}

func (repository *PostgresHistoryRepository) List(ctx context.Context, userID string, oldestFirst bool, page pagination.Params) ([]HistoryEntry, int, error) {
	direction := "DESC"
	if oldestFirst {
		direction = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT videoid, watchedat, COUNT(*) OVER() AS total
		FROM users.watch_history
		WHERE userid = $1
		ORDER BY watchedat %[1]s, videoid %[1]s
		LIMIT $2 OFFSET $3`, direction)

	rows, err := repository.db.Query(ctx, query, userID, page.SQLLimit(), page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_history_repo_list_failed: %w", err)
	}

	var total int
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (HistoryEntry, error) {
		var entry HistoryEntry
		err := row.Scan(&entry.VideoID, &entry.WatchedAt, &total)
		return entry, err
	})
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_history_repo_scan_failed: %w", err)
	}

	return entries, total, nil
}
