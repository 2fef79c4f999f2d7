// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package video

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/dberr"
	"github.com/taibuivan/vidtube/internal/platform/postgres"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.Querier
}

// NewPostgresRepository constructs a PostgreSQL backed video store.
func NewPostgresRepository(db postgres.Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const videoColumns = `
	id, ownerid, videofileurl, thumbnailurl, title, description,
	durationseconds, views, ispublished, createdat, updatedat`

func scanVideo(row pgx.Row, extra ...any) (*Video, error) {
	video := &Video{}
	dest := []any{
		&video.ID, &video.OwnerID, &video.VideoFileURL, &video.ThumbnailURL, &video.Title, &video.Description,
		&video.DurationSeconds, &video.Views, &video.IsPublished, &video.CreatedAt, &video.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return video, nil
}

// Create inserts a new row into content.video.
func (repository *PostgresRepository) Create(ctx context.Context, video *Video) error {
	const query = `
		INSERT INTO content.video (
			id, ownerid, videofileurl, thumbnailurl, title, description,
			durationseconds, views, ispublished, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8, $9, $9)`

	now := time.Now().UTC()
	video.CreatedAt, video.UpdatedAt = now, now

	_, err := repository.db.Exec(ctx, query,
		video.ID, video.OwnerID, video.VideoFileURL, video.ThumbnailURL, video.Title, video.Description,
		video.DurationSeconds, video.IsPublished, now,
	)
	if err != nil {
		return dberr.Wrap(err, "Video")
	}
	return nil
}

// FindByID retrieves a single video.
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Video, error) {
	query := `SELECT ` + videoColumns + ` FROM content.video WHERE id = $1`

	video, err := scanVideo(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Video")
	}
	return video, nil
}

// FindByIDs retrieves the videos matching ids.
func (repository *PostgresRepository) FindByIDs(ctx context.Context, ids []string) ([]*Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + videoColumns + ` FROM content.video WHERE id = ANY($1::uuid[])`

	rows, err := repository.db.Query(ctx, query, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "Video")
	}

	videos, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Video, error) {
		return scanVideo(row)
	})
	if err != nil {
		return nil, dberr.Wrap(err, "Video")
	}
	return videos, nil
}

/*
ListPublished returns a page of the public feed.

Description: Uses COUNT(*) OVER() for total metadata. A nil LIMIT reads the
whole feed.
*/
func (repository *PostgresRepository) ListPublished(ctx context.Context, filter Filter, page pagination.Params) ([]*Video, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + videoColumns + `, COUNT(*) OVER() AS total
		FROM content.video
		WHERE ispublished`)

	args := []any{}
	argID := 1

	if filter.OwnerID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND ownerid = $%d", argID))
		args = append(args, filter.OwnerID)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY createdat DESC, id DESC LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, page.SQLLimit(), page.Offset())

	return repository.list(ctx, queryBuilder.String(), args...)
}

// ListByOwner returns a channel's videos including unpublished ones.
func (repository *PostgresRepository) ListByOwner(ctx context.Context, ownerID string, page pagination.Params) ([]*Video, int, error) {
	query := `SELECT ` + videoColumns + `, COUNT(*) OVER() AS total
		FROM content.video
		WHERE ownerid = $1
		ORDER BY createdat DESC, id DESC
		LIMIT $2 OFFSET $3`

	return repository.list(ctx, query, ownerID, page.SQLLimit(), page.Offset())
}

func (repository *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*Video, int, error) {
	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Video")
	}
	defer rows.Close()

	videos := []*Video{}
	var total int
	for rows.Next() {
		video, err := scanVideo(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "Video")
		}
		videos = append(videos, video)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Video")
	}

	return videos, total, nil
}

// Update writes the mutable fields.
func (repository *PostgresRepository) Update(ctx context.Context, video *Video) error {
	const query = `
		UPDATE content.video
		SET title = $2, description = $3, thumbnailurl = $4, ispublished = $5, updatedat = $6
		WHERE id = $1`

	video.UpdatedAt = time.Now().UTC()
	tag, err := repository.db.Exec(ctx, query,
		video.ID, video.Title, video.Description, video.ThumbnailURL, video.IsPublished, video.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Video")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Video")
	}
	return nil
}

// Delete removes the row; comments, history and playlist entries cascade.
func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := repository.db.Exec(ctx, `DELETE FROM content.video WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "Video")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Video")
	}
	return nil
}

// IncrementViews bumps the counter atomically.
func (repository *PostgresRepository) IncrementViews(ctx context.Context, id string) (int64, error) {
	const query = `UPDATE content.video SET views = views + 1 WHERE id = $1 RETURNING views`

	var views int64
	if err := repository.db.QueryRow(ctx, query, id).Scan(&views); err != nil {
		return 0, dberr.Wrap(err, "Video")
	}
	return views, nil
}

// OwnerTotals aggregates a channel's video count and views.
func (repository *PostgresRepository) OwnerTotals(ctx context.Context, ownerID string) (int64, int64, error) {
	const query = `SELECT COUNT(*), COALESCE(SUM(views), 0) FROM content.video WHERE ownerid = $1`

	var videos, views int64
	if err := repository.db.QueryRow(ctx, query, ownerID).Scan(&videos, &views); err != nil {
		return 0, 0, dberr.Wrap(err, "Video")
	}
	return videos, views, nil
}
