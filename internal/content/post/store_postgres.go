// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/dberr"
	"github.com/taibuivan/vidtube/internal/platform/postgres"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

// PostgresRepository implements [Repository] on content.post.
type PostgresRepository struct {
	db postgres.Querier
}

// NewPostgresRepository constructs a PostgreSQL backed post store.
func NewPostgresRepository(db postgres.Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const postColumns = `id, ownerid, kind, content, createdat, updatedat`

func scanPost(row pgx.Row, extra ...any) (*Post, error) {
	post := &Post{}
	var kind string
	dest := []any{&post.ID, &post.OwnerID, &kind, &post.Content, &post.CreatedAt, &post.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	post.Kind = Kind(kind)
	return post, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, post *Post) error {
	const query = `
		INSERT INTO content.post (id, ownerid, kind, content, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $5)`

	now := time.Now().UTC()
	post.CreatedAt, post.UpdatedAt = now, now

	if _, err := repository.db.Exec(ctx, query, post.ID, post.OwnerID, string(post.Kind), post.Content, now); err != nil {
		return dberr.Wrap(err, post.Kind.resource())
	}
	return nil
}

func (repository *PostgresRepository) FindByID(ctx context.Context, kind Kind, id string) (*Post, error) {
	query := `SELECT ` + postColumns + ` FROM content.post WHERE id = $1 AND kind = $2`

	post, err := scanPost(repository.db.QueryRow(ctx, query, id, string(kind)))
	if err != nil {
		return nil, dberr.Wrap(err, kind.resource())
	}
	return post, nil
}

func (repository *PostgresRepository) FindByIDs(ctx context.Context, kind Kind, ids []string) ([]*Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + postColumns + ` FROM content.post WHERE id = ANY($1::uuid[]) AND kind = $2`

	rows, err := repository.db.Query(ctx, query, ids, string(kind))
	if err != nil {
		return nil, dberr.Wrap(err, kind.resource())
	}
	posts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Post, error) {
		return scanPost(row)
	})
	if err != nil {
		return nil, dberr.Wrap(err, kind.resource())
	}
	return posts, nil
}

// ListByOwner pages through one owner's posts of a kind, newest first.
func (repository *PostgresRepository) ListByOwner(ctx context.Context, kind Kind, ownerID string, page pagination.Params) ([]*Post, int, error) {
	query := `SELECT ` + postColumns + `, COUNT(*) OVER() AS total
		FROM content.post
		WHERE ownerid = $1 AND kind = $2
		ORDER BY createdat DESC, id DESC
		LIMIT $3 OFFSET $4`

	rows, err := repository.db.Query(ctx, query, ownerID, string(kind), page.SQLLimit(), page.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, kind.resource())
	}
	defer rows.Close()

	posts := []*Post{}
	var total int
	for rows.Next() {
		post, err := scanPost(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, kind.resource())
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, kind.resource())
	}
	return posts, total, nil
}

func (repository *PostgresRepository) UpdateContent(ctx context.Context, post *Post) error {
	const query = `UPDATE content.post SET content = $3, updatedat = $4 WHERE id = $1 AND kind = $2`

	post.UpdatedAt = time.Now().UTC()
	tag, err := repository.db.Exec(ctx, query, post.ID, string(post.Kind), post.Content, post.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, post.Kind.resource())
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(post.Kind.resource())
	}
	return nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, kind Kind, id string) error {
	tag, err := repository.db.Exec(ctx, `DELETE FROM content.post WHERE id = $1 AND kind = $2`, id, string(kind))
	if err != nil {
		return dberr.Wrap(err, kind.resource())
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(kind.resource())
	}
	return nil
}
