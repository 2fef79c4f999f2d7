// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"context"

	"github.com/taibuivan/vidtube/pkg/pagination"
)

// Repository defines the data access contract for tweets and posts.
// Every lookup is scoped to one kind.
type Repository interface {
	Create(ctx context.Context, post *Post) error
	FindByID(ctx context.Context, kind Kind, id string) (*Post, error)
	FindByIDs(ctx context.Context, kind Kind, ids []string) ([]*Post, error)
	ListByOwner(ctx context.Context, kind Kind, ownerID string, page pagination.Params) ([]*Post, int, error)
	UpdateContent(ctx context.Context, post *Post) error
	Delete(ctx context.Context, kind Kind, id string) error
}
