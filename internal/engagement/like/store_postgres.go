// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package like

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/vidtube/internal/platform/dberr"
	"github.com/taibuivan/vidtube/internal/platform/postgres"
)

// PostgresRepository implements [Repository] on social.engagement.
type PostgresRepository struct {
	db postgres.Querier
}

// NewPostgresRepository constructs a PostgreSQL backed ledger.
func NewPostgresRepository(db postgres.Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// DeleteLike removes a like by its tuple. Dislike rows are left alone.
func (repository *PostgresRepository) DeleteLike(ctx context.Context, actorID, targetID string, kind TargetKind) (bool, error) {
	const query = `
		DELETE FROM social.engagement
		WHERE actorid = $1 AND targetid = $2 AND targetkind = $3 AND reaction = 'like'`

	tag, err := repository.db.Exec(ctx, query, actorID, targetID, string(kind))
	if err != nil {
		return false, dberr.Wrap(err, "Like")
	}
	return tag.RowsAffected() > 0, nil
}

/*
InsertLike writes a like row.

Description: The unique index on (actorid, targetid, targetkind) is the guard.
A concurrent duplicate updates nothing of substance; a previous dislike by
the same actor is flipped to a like.
*/
func (repository *PostgresRepository) InsertLike(ctx context.Context, record *Record) error {
	const query = `
		INSERT INTO social.engagement (id, actorid, targetid, targetkind, reaction, createdat)
		VALUES ($1, $2, $3, $4, 'like', $5)
		ON CONFLICT ON CONSTRAINT uq_engagement_actor_target
		DO UPDATE SET reaction = 'like', createdat = EXCLUDED.createdat
		WHERE social.engagement.reaction <> 'like'`

	_, err := repository.db.Exec(ctx, query,
		record.ID, record.ActorID, record.TargetID, string(record.TargetKind), record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_like_repo_insert_failed: %w", err)
	}
	return nil
}

// CountLikes counts like rows for one target.
func (repository *PostgresRepository) CountLikes(ctx context.Context, targetID string, kind TargetKind) (int64, error) {
	const query = `
		SELECT COUNT(*) FROM social.engagement
		WHERE targetid = $1 AND targetkind = $2 AND reaction = 'like'`

	var count int64
	if err := repository.db.QueryRow(ctx, query, targetID, string(kind)).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "Like")
	}
	return count, nil
}

// ListByActor returns the actor's likes of one kind, newest first.
func (repository *PostgresRepository) ListByActor(ctx context.Context, actorID string, kind TargetKind) ([]*Record, error) {
	const query = `
		SELECT id, actorid, targetid, targetkind, reaction, createdat
		FROM social.engagement
		WHERE actorid = $1 AND targetkind = $2 AND reaction = 'like'
		ORDER BY createdat DESC, id DESC`

	rows, err := repository.db.Query(ctx, query, actorID, string(kind))
	if err != nil {
		return nil, dberr.Wrap(err, "Like")
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Record, error) {
		record := &Record{}
		var targetKind, reaction string
		err := row.Scan(&record.ID, &record.ActorID, &record.TargetID, &targetKind, &reaction, &record.CreatedAt)
		record.TargetKind = TargetKind(targetKind)
		record.Reaction = Reaction(reaction)
		return record, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "Like")
	}
	return records, nil
}

// ownedTables maps the kinds whose owner can be found by a join.
var ownedTables = map[TargetKind]string{
	KindVideo:   "content.video",
	KindComment: "content.comment",
	KindTweet:   "content.post",
	KindPost:    "content.post",
}

// CountForOwner sums likes across every target of one kind owned by ownerID.
func (repository *PostgresRepository) CountForOwner(ctx context.Context, ownerID string, kind TargetKind) (int64, error) {
	table, ok := ownedTables[kind]
	if !ok {
		return 0, fmt.Errorf("postgres_like_repo_unknown_kind: %s", kind)
	}

	query := `
		SELECT COUNT(*)
		FROM social.engagement e
		JOIN ` + table + ` t ON t.id = e.targetid
		WHERE e.targetkind = $1 AND e.reaction = 'like' AND t.ownerid = $2`

	var count int64
	if err := repository.db.QueryRow(ctx, query, string(kind), ownerID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "Like")
	}
	return count, nil
}
