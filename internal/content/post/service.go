// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/validate"
	"github.com/taibuivan/vidtube/internal/view"
	"github.com/taibuivan/vidtube/pkg/pagination"
	"github.com/taibuivan/vidtube/pkg/uuid"
)

// Service orchestrates business rules for tweets and posts.
type Service struct {
	repo     Repository
	composer *view.Composer
	logger   *slog.Logger
}

// NewService constructs a new post [Service].
func NewService(repo Repository, composer *view.Composer, logger *slog.Logger) *Service {
	return &Service{repo: repo, composer: composer, logger: logger}
}

func validContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	validator := &validate.Validator{}
	validator.Required(FieldContent, content).MaxLen(FieldContent, content, ContentMaxLength)
	return content, validator.Err()
}

/*
Create publishes a tweet or post.

Parameters:
  - ctx: context.Context
  - ownerID: string
  - kind: Kind
  - content: string

Returns:
  - *Post: Created entity with its owner
  - error: Validation failure for empty content
*/
func (service *Service) Create(ctx context.Context, ownerID string, kind Kind, content string) (*Post, error) {
	if err := kind.check(); err != nil {
		return nil, err
	}

	content, err := validContent(content)
	if err != nil {
		return nil, err
	}

	post := &Post{ID: uuid.New(), OwnerID: ownerID, Kind: kind, Content: content}
	if err := service.repo.Create(ctx, post); err != nil {
		return nil, apperr.Ensure(err)
	}

	if err := service.composer.Attach(ctx, post); err != nil {
		return nil, err
	}

	service.logger.DebugContext(ctx, "post_created", slog.String("post_id", post.ID), slog.String("kind", string(kind)))
	return post, nil
}

// ListByOwner returns one owner's tweets or posts, newest first.
func (service *Service) ListByOwner(ctx context.Context, kind Kind, ownerID string, page pagination.Params) ([]*Post, int, error) {
	if err := kind.check(); err != nil {
		return nil, 0, err
	}

	posts, total, err := service.repo.ListByOwner(ctx, kind, ownerID, page)
	if err != nil {
		return nil, 0, apperr.Ensure(err)
	}

	if err := view.AttachOwners(ctx, service.composer, posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (service *Service) owned(ctx context.Context, kind Kind, actorID, postID string) (*Post, error) {
	if err := kind.check(); err != nil {
		return nil, err
	}
	post, err := service.repo.FindByID(ctx, kind, postID)
	if err != nil {
		return nil, apperr.Ensure(err)
	}
	if post.OwnerID != actorID {
		return nil, apperr.Forbidden("You do not own this " + strings.ToLower(kind.resource()))
	}
	return post, nil
}

// Update replaces the content of a post owned by actorID.
func (service *Service) Update(ctx context.Context, kind Kind, actorID, postID, content string) (*Post, error) {
	content, err := validContent(content)
	if err != nil {
		return nil, err
	}

	post, err := service.owned(ctx, kind, actorID, postID)
	if err != nil {
		return nil, err
	}

	post.Content = content
	if err := service.repo.UpdateContent(ctx, post); err != nil {
		return nil, apperr.Ensure(err)
	}

	if err := service.composer.Attach(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes a post owned by actorID.
func (service *Service) Delete(ctx context.Context, kind Kind, actorID, postID string) error {
	if _, err := service.owned(ctx, kind, actorID, postID); err != nil {
		return err
	}
	if err := service.repo.Delete(ctx, kind, postID); err != nil {
		return apperr.Ensure(err)
	}
	return nil
}

// Finder returns a bulk loader bound to one kind, for use as a like target.
func (service *Service) Finder(kind Kind) func(ctx context.Context, ids []string) ([]*Post, error) {
	return func(ctx context.Context, ids []string) ([]*Post, error) {
		posts, err := service.repo.FindByIDs(ctx, kind, ids)
		if err != nil {
			return nil, apperr.Ensure(err)
		}
		return posts, nil
	}
}
