// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/dberr"
	"github.com/taibuivan/vidtube/internal/platform/postgres"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

// PostgresRepository implements [Repository] on content.comment.
type PostgresRepository struct {
	db postgres.Querier
}

// NewPostgresRepository constructs a PostgreSQL backed comment store.
func NewPostgresRepository(db postgres.Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const commentColumns = `id, videoid, ownerid, content, createdat, updatedat`

func scanComment(row pgx.Row, extra ...any) (*Comment, error) {
	comment := &Comment{}
	dest := []any{&comment.ID, &comment.VideoID, &comment.OwnerID, &comment.Content, &comment.CreatedAt, &comment.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return comment, nil
}

// Create inserts a comment. A vanished video surfaces as NotFound via the foreign key.
func (repository *PostgresRepository) Create(ctx context.Context, comment *Comment) error {
	const query = `
		INSERT INTO content.comment (id, videoid, ownerid, content, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $5)`

	now := time.Now().UTC()
	comment.CreatedAt, comment.UpdatedAt = now, now

	if _, err := repository.db.Exec(ctx, query, comment.ID, comment.VideoID, comment.OwnerID, comment.Content, now); err != nil {
		return dberr.Wrap(err, "Video")
	}
	return nil
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM content.comment WHERE id = $1`

	comment, err := scanComment(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Comment")
	}
	return comment, nil
}

func (repository *PostgresRepository) FindByIDs(ctx context.Context, ids []string) ([]*Comment, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + commentColumns + ` FROM content.comment WHERE id = ANY($1::uuid[])`

	rows, err := repository.db.Query(ctx, query, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "Comment")
	}
	comments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Comment, error) {
		return scanComment(row)
	})
	if err != nil {
		return nil, dberr.Wrap(err, "Comment")
	}
	return comments, nil
}

// ListByVideo pages through a video's comments, newest first.
func (repository *PostgresRepository) ListByVideo(ctx context.Context, videoID string, page pagination.Params) ([]*Comment, int, error) {
	query := `SELECT ` + commentColumns + `, COUNT(*) OVER() AS total
		FROM content.comment
		WHERE videoid = $1
		ORDER BY createdat DESC, id DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.db.Query(ctx, query, videoID, page.SQLLimit(), page.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Comment")
	}
	defer rows.Close()

	comments := []*Comment{}
	var total int
	for rows.Next() {
		comment, err := scanComment(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "Comment")
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Comment")
	}
	return comments, total, nil
}

func (repository *PostgresRepository) UpdateContent(ctx context.Context, comment *Comment) error {
	const query = `UPDATE content.comment SET content = $2, updatedat = $3 WHERE id = $1`

	comment.UpdatedAt = time.Now().UTC()
	tag, err := repository.db.Exec(ctx, query, comment.ID, comment.Content, comment.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "Comment")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}
	return nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := repository.db.Exec(ctx, `DELETE FROM content.comment WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "Comment")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}
	return nil
}
