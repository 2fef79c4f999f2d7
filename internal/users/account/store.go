// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"

	"github.com/taibuivan/vidtube/internal/users/auth"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

// # Repository Contracts

// Repository defines persistence for the editable profile columns.
type Repository interface {
	FindByID(ctx context.Context, id string) (*auth.User, error)

	/*
		UpdateDetails replaces full name and email.

		Parameters:
		  - ctx: context.Context
		  - id: string
		  - fullName: string
		  - email: string (already normalized)

		Returns:
		  - *auth.User: The updated account
		  - error: Conflict when the email belongs to another account
	*/
	UpdateDetails(ctx context.Context, id, fullName, email string) (*auth.User, error)

	// UpdateImage stores the URL of a freshly uploaded avatar or cover image.
	UpdateImage(ctx context.Context, id string, image Image, url string) (*auth.User, error)
}

// HistoryRepository defines persistence for watch history.
type HistoryRepository interface {
	// Record appends a video, or moves it to the front when already present.
	Record(ctx context.Context, userID, videoID string) error

	// List returns entries ordered by watch time with the total count.
	List(ctx context.Context, userID string, oldestFirst bool, page pagination.Params) ([]HistoryEntry, int, error)
}
