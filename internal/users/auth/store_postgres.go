// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/dberr"
	"github.com/taibuivan/vidtube/internal/platform/postgres"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	db postgres.Querier
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(db postgres.Querier) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `
	id, username, email, fullname, avatarurl, coverimageurl,
	passwordhash, COALESCE(refreshtokenhash, ''), createdat, updatedat`

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FullName,
		&user.AvatarURL,
		&user.CoverImageURL,
		&user.PasswordHash,
		&user.RefreshTokenHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

/*
Create persists a new user record into the users.account table.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: apperr.Conflict on duplicate username/email or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (
			id, username, email, fullname, avatarurl, coverimageurl, passwordhash, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.FullName,
		user.AvatarURL,
		user.CoverImageURL,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("User with email or username already exists")
		}
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return nil
}

// FindByID retrieves a user record by primary key.
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users.account WHERE id = $1`

	user, err := scanUser(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	return user, nil
}

// FindByEmail retrieves a user record by their unique email address.
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users.account WHERE email = $1`

	user, err := scanUser(repository.db.QueryRow(context, query, email))
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	return user, nil
}

// FindByUsername retrieves a user record by their unique username.
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users.account WHERE username = $1`

	user, err := scanUser(repository.db.QueryRow(context, query, username))
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	return user, nil
}

// ExistsByUsernameOrEmail checks both unique identifiers in one round trip.
func (repository *PostgresUserRepository) ExistsByUsernameOrEmail(context context.Context, username, email string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users.account WHERE username = $1 OR email = $2)`

	var exists bool
	if err := repository.db.QueryRow(context, query, username, email).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "User")
	}
	return exists, nil
}

// SetRefreshToken overwrites the stored digest (login and explicit issuance).
func (repository *PostgresUserRepository) SetRefreshToken(context context.Context, userID, digest string) error {
	const query = `UPDATE users.account SET refreshtokenhash = $2, updatedat = now() WHERE id = $1`

	tag, err := repository.db.Exec(context, query, userID, digest)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_set_refresh_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

/*
SwapRefreshToken performs the rotation compare-and-swap.

Description: The WHERE clause matches the previous digest, so the row is only
updated when the presented token is still the current one. A NULL column
never equals anything, which makes revoked sessions fail the swap as well.
An empty expected digest never matches and is refused without a round trip.

Parameters:
  - context: context.Context
  - userID: string
  - expected: string (digest of the presented token)
  - replacement: string (digest of the newly issued token)

Returns:
  - bool: True if exactly one row was updated
  - error: Connectivity errors
*/
func (repository *PostgresUserRepository) SwapRefreshToken(context context.Context, userID, expected, replacement string) (bool, error) {
	if expected == "" {
		return false, nil
	}

	// refreshtokenhash = $2 is never true for NULL, so revoked rows stay put.
	const query = `
		UPDATE users.account
		SET refreshtokenhash = $3, updatedat = now()
		WHERE id = $1 AND refreshtokenhash = $2`

	tag, err := repository.db.Exec(context, query, userID, expected, replacement)
	if err != nil {
		return false, fmt.Errorf("postgres_user_repo_swap_refresh_failed: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ClearRefreshToken sets the digest to NULL. Matching zero rows is not an error.
func (repository *PostgresUserRepository) ClearRefreshToken(context context.Context, userID string) error {
	const query = `UPDATE users.account SET refreshtokenhash = NULL, updatedat = now() WHERE id = $1`

	if _, err := repository.db.Exec(context, query, userID); err != nil {
		return fmt.Errorf("postgres_user_repo_clear_refresh_failed: %w", err)
	}
	return nil
}

// UpdatePassword replaces the bcrypt hash.
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID, newHash string) error {
	const query = `UPDATE users.account SET passwordhash = $2, updatedat = now() WHERE id = $1`

	tag, err := repository.db.Exec(context, query, userID, newHash)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_update_password_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}
