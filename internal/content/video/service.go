// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package video

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/vidtube/internal/engagement/like"
	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/objectstore"
	"github.com/taibuivan/vidtube/internal/platform/validate"
	"github.com/taibuivan/vidtube/internal/view"
	"github.com/taibuivan/vidtube/pkg/pagination"
	"github.com/taibuivan/vidtube/pkg/pointer"
	"github.com/taibuivan/vidtube/pkg/slice"
	"github.com/taibuivan/vidtube/pkg/uuid"
)

// # Collaborators

// LikeCounter reports how many likes a target has.
type LikeCounter interface {
	Count(ctx context.Context, targetID string, kind like.TargetKind) (int64, error)
}

// HistoryRecorder appends a video to a user's watch history.
type HistoryRecorder interface {
	Record(ctx context.Context, userID, videoID string) error
}

// # Service Layer

// Service orchestrates business rules for videos.
type Service struct {
	repo     Repository
	composer *view.Composer
	uploader objectstore.Uploader
	likes    LikeCounter
	history  HistoryRecorder
	logger   *slog.Logger
}

// NewService constructs a new video [Service].
func NewService(
	repo Repository,
	composer *view.Composer,
	uploader objectstore.Uploader,
	likes LikeCounter,
	history HistoryRecorder,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:     repo,
		composer: composer,
		uploader: uploader,
		likes:    likes,
		history:  history,
		logger:   logger,
	}
}

// PublishInput describes a new upload.
type PublishInput struct {
	Title           string
	Description     string
	DurationSeconds float64
	VideoFile       *objectstore.File
	Thumbnail       *objectstore.File
}

/*
Publish uploads the media and thumbnail and stores a published video.

Parameters:
  - ctx: context.Context
  - ownerID: string
  - input: PublishInput

Returns:
  - *Video: Created entity with its owner attached
  - error: Validation, upload or persistence failures
*/
func (service *Service) Publish(ctx context.Context, ownerID string, input PublishInput) (*Video, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, TitleMaxLength).
		Required(FieldDescription, input.Description).
		MaxLen(FieldDescription, input.Description, DescriptionMaxLength).
		Custom(FieldVideoFile, input.VideoFile == nil, "Video file is required").
		Custom(FieldThumbnail, input.Thumbnail == nil, "Thumbnail is required").
		Custom(FieldDuration, input.DurationSeconds < 0, "Duration must not be negative")

	if err := validator.Err(); err != nil {
		return nil, err
	}

	videoURL, err := objectstore.Put(ctx, service.uploader, videoPrefix, input.VideoFile)
	if err != nil {
		return nil, apperr.Ensure(fmt.Errorf("video_service_upload_failed: %w", err))
	}

	thumbnailURL, err := objectstore.Put(ctx, service.uploader, thumbnailPrefix, input.Thumbnail)
	if err != nil {
		return nil, apperr.Ensure(fmt.Errorf("video_service_thumbnail_upload_failed: %w", err))
	}

	video := &Video{
		ID:              uuid.New(),
		OwnerID:         ownerID,
		VideoFileURL:    videoURL,
		ThumbnailURL:    thumbnailURL,
		Title:           input.Title,
		Description:     input.Description,
		DurationSeconds: input.DurationSeconds,
		IsPublished:     true,
	}

	if err := service.repo.Create(ctx, video); err != nil {
		return nil, apperr.Ensure(err)
	}

	if err := service.composer.Attach(ctx, video); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "video_published",
		slog.String("video_id", video.ID),
		slog.String("owner_id", ownerID),
	)

	return video, nil
}

/*
Feed lists published videos newest first with their owners.

Returns:
  - []*Video: Page of videos
  - int: Total published videos matching the filter
  - error: Retrieval failures
*/
func (service *Service) Feed(ctx context.Context, filter Filter, page pagination.Params) ([]*Video, int, error) {
	videos, total, err := service.repo.ListPublished(ctx, filter, page)
	if err != nil {
		return nil, 0, apperr.Ensure(err)
	}

	if err := view.AttachOwners(ctx, service.composer, videos); err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

// ListByOwner returns every video of a channel, published or not.
func (service *Service) ListByOwner(ctx context.Context, ownerID string, page pagination.Params) ([]*Video, int, error) {
	videos, total, err := service.repo.ListByOwner(ctx, ownerID, page)
	if err != nil {
		return nil, 0, apperr.Ensure(err)
	}

	if err := view.AttachOwners(ctx, service.composer, videos); err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

/*
Get returns the detail view of a video and counts the view.

Description: Unpublished videos are only visible to their owner. An
authenticated viewer gets the video appended to their watch history.

Parameters:
  - ctx: context.Context
  - videoID: string
  - viewerID: string (empty for anonymous)

Returns:
  - *Video: Video with owner and like count
  - error: NotFound when missing or hidden
*/
func (service *Service) Get(ctx context.Context, videoID, viewerID string) (*Video, error) {
	video, err := service.repo.FindByID(ctx, videoID)
	if err != nil {
		return nil, apperr.Ensure(err)
	}

	if !video.VisibleTo(viewerID) {
		return nil, apperr.NotFound("Video")
	}

	views, err := service.repo.IncrementViews(ctx, videoID)
	if err != nil {
		return nil, apperr.Ensure(err)
	}
	video.Views = views

	if viewerID != "" {
		if err := service.history.Record(ctx, viewerID, videoID); err != nil {
			return nil, apperr.Ensure(fmt.Errorf("video_service_history_failed: %w", err))
		}
	}

	likes, err := service.likes.Count(ctx, videoID, like.KindVideo)
	if err != nil {
		return nil, apperr.Ensure(err)
	}
	video.Likes = &likes

	if err := service.composer.Attach(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

// FindByIDs loads videos in bulk without owners; used by other modules.
func (service *Service) FindByIDs(ctx context.Context, ids []string) ([]*Video, error) {
	videos, err := service.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Ensure(err)
	}
	return videos, nil
}

// FindVisible is FindByIDs minus the videos viewerID may not see.
func (service *Service) FindVisible(ctx context.Context, ids []string, viewerID string) ([]*Video, error) {
	videos, err := service.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return slice.Filter(videos, func(video *Video) bool { return video.VisibleTo(viewerID) }), nil
}

// FindVisibleByID loads one video for viewerID without side effects. Hidden
// videos are NotFound, exactly like missing ones.
func (service *Service) FindVisibleByID(ctx context.Context, id, viewerID string) (*Video, error) {
	video, err := service.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !video.VisibleTo(viewerID) {
		return nil, apperr.NotFound("Video")
	}
	return video, nil
}

// FindByID loads one video without side effects.
func (service *Service) FindByID(ctx context.Context, id string) (*Video, error) {
	video, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Ensure(err)
	}
	return video, nil
}

// owned loads a video and checks that actorID owns it.
func (service *Service) owned(ctx context.Context, actorID, videoID string) (*Video, error) {
	video, err := service.repo.FindByID(ctx, videoID)
	if err != nil {
		return nil, apperr.Ensure(err)
	}
	if video.OwnerID != actorID {
		return nil, apperr.Forbidden("You do not own this video")
	}
	return video, nil
}

// UpdateInput carries optional changes; nil fields are left as they are.
type UpdateInput struct {
	Title       *string
	Description *string
	Thumbnail   *objectstore.File
}

/*
Update modifies the metadata of a video owned by actorID.

Returns:
  - *Video: Updated entity
  - error: Forbidden for non-owners, validation or persistence failures
*/
func (service *Service) Update(ctx context.Context, actorID, videoID string, input UpdateInput) (*Video, error) {
	video, err := service.owned(ctx, actorID, videoID)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	if title := pointer.Trimmed(input.Title); title != nil {
		video.Title = *title
		validator.Required(FieldTitle, video.Title).MaxLen(FieldTitle, video.Title, TitleMaxLength)
	}
	if description := pointer.Trimmed(input.Description); description != nil {
		video.Description = *description
		validator.Required(FieldDescription, video.Description).MaxLen(FieldDescription, video.Description, DescriptionMaxLength)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if input.Thumbnail != nil {
		thumbnailURL, err := objectstore.Put(ctx, service.uploader, thumbnailPrefix, input.Thumbnail)
		if err != nil {
			return nil, apperr.Ensure(fmt.Errorf("video_service_thumbnail_upload_failed: %w", err))
		}
		video.ThumbnailURL = thumbnailURL
	}

	if err := service.repo.Update(ctx, video); err != nil {
		return nil, apperr.Ensure(err)
	}

	if err := service.composer.Attach(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

// Delete removes a video owned by actorID.
func (service *Service) Delete(ctx context.Context, actorID, videoID string) error {
	if _, err := service.owned(ctx, actorID, videoID); err != nil {
		return err
	}

	if err := service.repo.Delete(ctx, videoID); err != nil {
		return apperr.Ensure(err)
	}

	service.logger.InfoContext(ctx, "video_deleted", slog.String("video_id", videoID))
	return nil
}

// TogglePublish flips the publication state of a video owned by actorID.
func (service *Service) TogglePublish(ctx context.Context, actorID, videoID string) (*Video, error) {
	video, err := service.owned(ctx, actorID, videoID)
	if err != nil {
		return nil, err
	}

	video.IsPublished = !video.IsPublished
	if err := service.repo.Update(ctx, video); err != nil {
		return nil, apperr.Ensure(err)
	}
	return video, nil
}

// Totals returns a channel's video count and summed views.
func (service *Service) Totals(ctx context.Context, ownerID string) (int64, int64, error) {
	videos, views, err := service.repo.OwnerTotals(ctx, ownerID)
	if err != nil {
		return 0, 0, apperr.Ensure(err)
	}
	return videos, views, nil
}
