// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
)

// # User Data Access

// UserRepository defines the data access contract for the credential store.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given (normalized) email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindByUsername returns the account with the given (normalized) username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		ExistsByUsernameOrEmail reports whether either identifier is taken.

		Parameters:
		  - context: context.Context
		  - username: string
		  - email: string

		Returns:
		  - bool: True if any account matches
		  - error: Database retrieval failures
	*/
	ExistsByUsernameOrEmail(context context.Context, username, email string) (bool, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: apperr.Conflict on a unique violation, or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		SetRefreshToken unconditionally overwrites the stored refresh token digest.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - digest: string

		Returns:
		  - error: apperr.NotFound if the user is absent, or persistence failures
	*/
	SetRefreshToken(context context.Context, userID, digest string) error

	/*
		SwapRefreshToken replaces the stored digest only if it still equals expected.

		Description: A single conditional UPDATE; two callers presenting the same
		old digest cannot both succeed.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - expected: string
		  - replacement: string

		Returns:
		  - bool: True if the swap happened
		  - error: Persistence failures
	*/
	SwapRefreshToken(context context.Context, userID, expected, replacement string) (bool, error)

	/*
		ClearRefreshToken removes any stored refresh token. Idempotent.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	ClearRefreshToken(context context.Context, userID string) error

	/*
		UpdatePassword replaces only the user's password hash.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - newHash: string

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	UpdatePassword(context context.Context, userID, newHash string) error
}
