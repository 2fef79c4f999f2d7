// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package video

import (
	"context"

	"github.com/taibuivan/vidtube/pkg/pagination"
)

// Repository defines the data access contract for videos.
type Repository interface {

	/*
		Create persists a new video.

		Parameters:
		  - ctx: context.Context
		  - video: *Video

		Returns:
		  - error: Persistence failures
	*/
	Create(ctx context.Context, video *Video) error

	/*
		FindByID returns a video regardless of its publication state.

		Returns:
		  - *Video: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(ctx context.Context, id string) (*Video, error)

	// FindByIDs returns the videos it finds among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []string) ([]*Video, error)

	/*
		ListPublished returns published videos newest first.

		Returns:
		  - []*Video: Page of videos
		  - int: Total matching count
		  - error: Retrieval failures
	*/
	ListPublished(ctx context.Context, filter Filter, page pagination.Params) ([]*Video, int, error)

	// ListByOwner returns every video of a channel, published or not, newest first.
	ListByOwner(ctx context.Context, ownerID string, page pagination.Params) ([]*Video, int, error)

	// Update writes title, description, thumbnail and publication state.
	Update(ctx context.Context, video *Video) error

	// Delete removes a video.
	Delete(ctx context.Context, id string) error

	// IncrementViews adds one view and returns the new total.
	IncrementViews(ctx context.Context, id string) (int64, error)

	// OwnerTotals returns how many videos a channel has and their summed views.
	OwnerTotals(ctx context.Context, ownerID string) (videos int64, views int64, err error)
}
