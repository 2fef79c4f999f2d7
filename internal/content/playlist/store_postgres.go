// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package playlist

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/dberr"
	"github.com/taibuivan/vidtube/internal/platform/postgres"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

// PostgresRepository implements [Repository] on content.playlist.
type PostgresRepository struct {
	db postgres.Querier
}

// NewPostgresRepository constructs a PostgreSQL backed playlist store.
func NewPostgresRepository(db postgres.Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const playlistColumns = `
	p.id, p.ownerid, p.name, p.description, p.createdat, p.updatedat,
	(SELECT COUNT(*) FROM content.playlist_video pv WHERE pv.playlistid = p.id)`

func scanPlaylist(row pgx.Row, extra ...any) (*Playlist, error) {
	playlist := &Playlist{}
	dest := []any{
		&playlist.ID, &playlist.OwnerID, &playlist.Name, &playlist.Description,
		&playlist.CreatedAt, &playlist.UpdatedAt, &playlist.VideoCount,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, playlist *Playlist) error {
	const query = `
		INSERT INTO content.playlist (id, ownerid, name, description, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $5)`

	now := time.Now().UTC()
	playlist.CreatedAt, playlist.UpdatedAt = now, now

	if _, err := repository.db.Exec(ctx, query, playlist.ID, playlist.OwnerID, playlist.Name, playlist.Description, now); err != nil {
		return dberr.Wrap(err, "Playlist")
	}
	return nil
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Playlist, error) {
	query := `SELECT ` + playlistColumns + ` FROM content.playlist p WHERE p.id = $1`

	playlist, err := scanPlaylist(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Playlist")
	}
	return playlist, nil
}

func (repository *PostgresRepository) ListByOwner(ctx context.Context, ownerID string, page pagination.Params) ([]*Playlist, int, error) {
	query := `SELECT ` + playlistColumns + `, COUNT(*) OVER() AS total
		FROM content.playlist p
		WHERE p.ownerid = $1
		ORDER BY p.createdat DESC, p.id DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.db.Query(ctx, query, ownerID, page.SQLLimit(), page.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Playlist")
	}
	defer rows.Close()

	playlists := []*Playlist{}
	var total int
	for rows.Next() {
		playlist, err := scanPlaylist(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "Playlist")
		}
		playlists = append(playlists, playlist)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Playlist")
	}
	return playlists, total, nil
}

func (repository *PostgresRepository) VideoIDs(ctx context.Context, playlistID string) ([]string, error) {
	const query = `SELECT videoid::text FROM content.playlist_video WHERE playlistid = $1 ORDER BY position`

	rows, err := repository.db.Query(ctx, query, playlistID)
	if err != nil {
		return nil, dberr.Wrap(err, "Playlist")
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, dberr.Wrap(err, "Playlist")
	}
	return ids, nil
}

// AddVideo inserts the pair; the primary key keeps the set semantics.
func (repository *PostgresRepository) AddVideo(ctx context.Context, playlistID, videoID string) (bool, error) {
	const query = `
		INSERT INTO content.playlist_video (playlistid, videoid)
		VALUES ($1, $2)
		ON CONFLICT (playlistid, videoid) DO NOTHING`

	tag, err := repository.db.Exec(ctx, query, playlistID, videoID)
	if err != nil {
		return false, dberr.Wrap(err, "Video")
	}
	if tag.RowsAffected() > 0 {
		repository.touch(ctx, playlistID)
	}
	return tag.RowsAffected() > 0, nil
}

func (repository *PostgresRepository) RemoveVideo(ctx context.Context, playlistID, videoID string) (bool, error) {
	const query = `DELETE FROM content.playlist_video WHERE playlistid = $1 AND videoid = $2`

	tag, err := repository.db.Exec(ctx, query, playlistID, videoID)
	if err != nil {
		return false, dberr.Wrap(err, "Playlist")
	}
	if tag.RowsAffected() > 0 {
		repository.touch(ctx, playlistID)
	}
	return tag.RowsAffected() > 0, nil
}

// touch bumps updatedat. Failures only cost a stale timestamp.
func (repository *PostgresRepository) touch(ctx context.Context, playlistID string) {
	_, _ = repository.db.Exec(ctx, `UPDATE content.playlist SET updatedat = now() WHERE id = $1`, playlistID)
}

func (repository *PostgresRepository) UpdateDetails(ctx context.Context, playlist *Playlist) error {
	const query = `UPDATE content.playlist SET name = $2, description = $3, updatedat = $4 WHERE id = $1`

	playlist.UpdatedAt = time.Now().UTC()
	tag, err := repository.db.Exec(ctx, query, playlist.ID, playlist.Name, playlist.Description, playlist.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "Playlist")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Playlist")
	}
	return nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := repository.db.Exec(ctx, `DELETE FROM content.playlist WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "Playlist")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Playlist")
	}
	return nil
}
