// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/vidtube/internal/platform/postgres"
)

// PostgresProfileSource reads owner profiles from users.account.
type PostgresProfileSource struct {
	db postgres.Querier
}

// NewPostgresProfileSource creates a [ProfileSource] backed by PostgreSQL.
func NewPostgresProfileSource(db postgres.Querier) *PostgresProfileSource {
	return &PostgresProfileSource{db: db}
}

// FindProfiles projects only public columns; password hash and refresh token
// never leave the account table through this path.
func (source *PostgresProfileSource) FindProfiles(ctx context.Context, ids []string) ([]OwnerProfile, error) {
	const query = `
		SELECT id, username, fullname, avatarurl
		FROM users.account
		WHERE id = ANY($1::uuid[])`

	rows, err := source.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("postgres_profile_source_query_failed: %w", err)
	}

	profiles, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (OwnerProfile, error) {
		var profile OwnerProfile
		err := row.Scan(&profile.ID, &profile.Username, &profile.FullName, &profile.AvatarURL)
		return profile, err
	})
	if err != nil {
		return nil, fmt.Errorf("postgres_profile_source_scan_failed: %w", err)
	}

	return profiles, nil
}
