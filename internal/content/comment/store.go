// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"

	"github.com/taibuivan/vidtube/pkg/pagination"
)

// Repository defines the data access contract for comments.
type Repository interface {
	Create(ctx context.Context, comment *Comment) error
	FindByID(ctx context.Context, id string) (*Comment, error)
	FindByIDs(ctx context.Context, ids []string) ([]*Comment, error)

	// ListByVideo returns a video's comments newest first with the total count.
	ListByVideo(ctx context.Context, videoID string, page pagination.Params) ([]*Comment, int, error)

	UpdateContent(ctx context.Context, comment *Comment) error
	Delete(ctx context.Context, id string) error
}
