// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package subscription

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/vidtube/internal/platform/dberr"
	"github.com/taibuivan/vidtube/internal/platform/postgres"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

// PostgresRepository implements [Repository] on social.subscription.
type PostgresRepository struct {
	db postgres.Querier
}

// NewPostgresRepository constructs a PostgreSQL backed graph store.
func NewPostgresRepository(db postgres.Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert relies on uq_subscription_pair; a concurrent duplicate is a no-op.
func (repository *PostgresRepository) Insert(ctx context.Context, edge *Edge) (bool, error) {
	const query = `
		INSERT INTO social.subscription (id, subscriberid, channelid, createdat)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT ON CONSTRAINT uq_subscription_pair DO NOTHING`

	tag, err := repository.db.Exec(ctx, query, edge.ID, edge.SubscriberID, edge.ChannelID, edge.CreatedAt)
	if err != nil {
		return false, dberr.Wrap(err, "Channel")
	}
	return tag.RowsAffected() > 0, nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, subscriberID, channelID string) (bool, error) {
	const query = `DELETE FROM social.subscription WHERE subscriberid = $1 AND channelid = $2`

	tag, err := repository.db.Exec(ctx, query, subscriberID, channelID)
	if err != nil {
		return false, dberr.Wrap(err, "Subscription")
	}
	return tag.RowsAffected() > 0, nil
}

func (repository *PostgresRepository) ChannelExists(ctx context.Context, channelID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users.account WHERE id = $1)`

	var exists bool
	if err := repository.db.QueryRow(ctx, query, channelID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_subscription_repo_exists_failed: %w", err)
	}
	return exists, nil
}

func (repository *PostgresRepository) CountSubscribers(ctx context.Context, channelID string) (int64, error) {
	const query = `SELECT COUNT(*) FROM social.subscription WHERE channelid = $1`

	var count int64
	if err := repository.db.QueryRow(ctx, query, channelID).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres_subscription_repo_count_failed: %w", err)
	}
	return count, nil
}

func (repository *PostgresRepository) ListSubscribers(ctx context.Context, channelID string, page pagination.Params) ([]*Edge, int, error) {
	return repository.list(ctx, "channelid", channelID, page)
}

func (repository *PostgresRepository) ListSubscriptions(ctx context.Context, subscriberID string, page pagination.Params) ([]*Edge, int, error) {
	return repository.list(ctx, "subscriberid", subscriberID, page)
}

// list pages edges filtered on one side of the pair. column is never user input.
func (repository *PostgresRepository) list(ctx context.Context, column, value string, page pagination.Params) ([]*Edge, int, error) {
	query := fmt.Sprintf(`
		SELECT id, subscriberid, channelid, createdat, COUNT(*) OVER() AS total
		FROM social.subscription
		WHERE %s = $1
		ORDER BY createdat DESC, id DESC
		LIMIT $2 OFFSET $3`, column)

	rows, err := repository.db.Query(ctx, query, value, page.SQLLimit(), page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_subscription_repo_list_failed: %w", err)
	}

	var total int
	edges, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Edge, error) {
		edge := &Edge{}
		err := row.Scan(&edge.ID, &edge.SubscriberID, &edge.ChannelID, &edge.CreatedAt, &total)
		return edge, err
	})
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_subscription_repo_scan_failed: %w", err)
	}

	return edges, total, nil
}

/*
FindChannel computes the channel page in a single statement.

Description: Both counts and the viewer flag are correlated subqueries on the
indexed sides of social.subscription. An empty viewer id becomes NULL, which
never matches, so anonymous viewers always read false.
*/
func (repository *PostgresRepository) FindChannel(ctx context.Context, key ChannelKey, viewerID string) (*ChannelProfile, error) {
	where, value := "a.id = $1::uuid", key.ID
	if key.ID == "" {
		where, value = "a.username = $1", key.Username
	}

	query := fmt.Sprintf(`
		SELECT
			a.id, a.username, a.fullname, a.avatarurl, a.coverimageurl, a.createdat,
			(SELECT COUNT(*) FROM social.subscription s WHERE s.channelid = a.id),
			(SELECT COUNT(*) FROM social.subscription s WHERE s.subscriberid = a.id),
			EXISTS (
				SELECT 1 FROM social.subscription s
				WHERE s.channelid = a.id AND s.subscriberid = NULLIF($2, '')::uuid
			)
		FROM users.account a
		WHERE %s`, where)

	profile := &ChannelProfile{}
	err := repository.db.QueryRow(ctx, query, value, viewerID).Scan(
		&profile.ID, &profile.Username, &profile.FullName, &profile.AvatarURL, &profile.CoverImageURL,
		&profile.CreatedAt, &profile.SubscriberCount, &profile.SubscriptionCount, &profile.IsSubscribed,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Channel")
	}
	return profile, nil
}
