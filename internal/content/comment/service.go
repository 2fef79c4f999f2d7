// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/vidtube/internal/content/video"
	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/validate"
	"github.com/taibuivan/vidtube/internal/view"
	"github.com/taibuivan/vidtube/pkg/pagination"
	"github.com/taibuivan/vidtube/pkg/uuid"
)

// VideoFinder loads the video a comment belongs to, as seen by viewerID.
// Unpublished videos of other owners are NotFound.
type VideoFinder interface {
	FindVisibleByID(ctx context.Context, id, viewerID string) (*video.Video, error)
}

// Service orchestrates business rules for comments.
type Service struct {
	repo     Repository
	videos   VideoFinder
	composer *view.Composer
	logger   *slog.Logger
}

// NewService constructs a new comment [Service].
func NewService(repo Repository, videos VideoFinder, composer *view.Composer, logger *slog.Logger) *Service {
	return &Service{repo: repo, videos: videos, composer: composer, logger: logger}
}

func validContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	validator := &validate.Validator{}
	validator.Required(FieldContent, content).MaxLen(FieldContent, content, ContentMaxLength)
	return content, validator.Err()
}

/*
List returns the comments under a video, newest first, each with its owner.

Returns:
  - []*Comment: Page of comments
  - int: Total comments on the video
  - error: NotFound for an unknown video or one hidden from viewerID
*/
func (service *Service) List(ctx context.Context, videoID, viewerID string, page pagination.Params) ([]*Comment, int, error) {
	if _, err := service.videos.FindVisibleByID(ctx, videoID, viewerID); err != nil {
		return nil, 0, apperr.Ensure(err)
	}

	comments, total, err := service.repo.ListByVideo(ctx, videoID, page)
	if err != nil {
		return nil, 0, apperr.Ensure(err)
	}

	if err := view.AttachOwners(ctx, service.composer, comments); err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

/*
Add posts a comment under a video.

Returns:
  - *Comment: Created comment with its owner
  - error: Validation failure for empty content, NotFound for an unknown or hidden video
*/
func (service *Service) Add(ctx context.Context, ownerID, videoID, content string) (*Comment, error) {
	content, err := validContent(content)
	if err != nil {
		return nil, err
	}

	if _, err := service.videos.FindVisibleByID(ctx, videoID, ownerID); err != nil {
		return nil, apperr.Ensure(err)
	}

	comment := &Comment{
		ID:      uuid.New(),
		VideoID: videoID,
		OwnerID: ownerID,
		Content: content,
	}
	if err := service.repo.Create(ctx, comment); err != nil {
		return nil, apperr.Ensure(err)
	}

	if err := service.composer.Attach(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (service *Service) owned(ctx context.Context, actorID, commentID string) (*Comment, error) {
	comment, err := service.repo.FindByID(ctx, commentID)
	if err != nil {
		return nil, apperr.Ensure(err)
	}
	if comment.OwnerID != actorID {
		return nil, apperr.Forbidden("You do not own this comment")
	}
	return comment, nil
}

// Update replaces the text of a comment owned by actorID.
func (service *Service) Update(ctx context.Context, actorID, commentID, content string) (*Comment, error) {
	content, err := validContent(content)
	if err != nil {
		return nil, err
	}

	comment, err := service.owned(ctx, actorID, commentID)
	if err != nil {
		return nil, err
	}

	comment.Content = content
	if err := service.repo.UpdateContent(ctx, comment); err != nil {
		return nil, apperr.Ensure(err)
	}

	if err := service.composer.Attach(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes a comment owned by actorID.
func (service *Service) Delete(ctx context.Context, actorID, commentID string) error {
	if _, err := service.owned(ctx, actorID, commentID); err != nil {
		return err
	}
	if err := service.repo.Delete(ctx, commentID); err != nil {
		return apperr.Ensure(err)
	}

	service.logger.DebugContext(ctx, "comment_deleted", slog.String("comment_id", commentID))
	return nil
}

// FindByIDs loads comments in bulk without owners.
func (service *Service) FindByIDs(ctx context.Context, ids []string) ([]*Comment, error) {
	comments, err := service.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Ensure(err)
	}
	return comments, nil
}
