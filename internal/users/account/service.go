// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/vidtube/internal/content/video"
	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/objectstore"
	"github.com/taibuivan/vidtube/internal/platform/validate"
	"github.com/taibuivan/vidtube/internal/users/auth"
	"github.com/taibuivan/vidtube/internal/view"
	"github.com/taibuivan/vidtube/pkg/identity"
	"github.com/taibuivan/vidtube/pkg/pagination"
	"github.com/taibuivan/vidtube/pkg/slice"
)

// # Service Layer

// Service orchestrates self-service profile changes and watch history.
type Service struct {
	accounts  Repository
	history   HistoryRepository
	videos    VideoFinder
	passwords PasswordChanger
	uploader  objectstore.Uploader
	profiles  ProfileInvalidator
	composer  *view.Composer
	logger    *slog.Logger
}

// Dependencies groups the collaborators of [Service].
type Dependencies struct {
	Accounts  Repository
	History   HistoryRepository
	Videos    VideoFinder
	Passwords PasswordChanger
	Uploader  objectstore.Uploader
	Profiles  ProfileInvalidator
	Composer  *view.Composer
	Logger    *slog.Logger
}

// NewService constructs a new account [Service].
func NewService(deps Dependencies) *Service {
	return &Service{
		accounts:  deps.Accounts,
		history:   deps.History,
		videos:    deps.Videos,
		passwords: deps.Passwords,
		uploader:  deps.Uploader,
		profiles:  deps.Profiles,
		composer:  deps.Composer,
		logger:    deps.Logger,
	}
}

// # Profile Management

// Get returns the caller's own account.
func (service *Service) Get(ctx context.Context, userID string) (*auth.User, error) {
	user, err := service.accounts.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.Ensure(err)
	}
	return user, nil
}

// DetailsInput carries the editable text fields of an account.
type DetailsInput struct {
	FullName string
	Email    string
}

/*
UpdateDetails replaces full name and email.

Parameters:
  - ctx: context.Context
  - userID: string
  - input: DetailsInput (both fields required)

Returns:
  - *auth.User: The updated account
  - error: Validation failure, or Conflict when the email is taken
*/
func (service *Service) UpdateDetails(ctx context.Context, userID string, input DetailsInput) (*auth.User, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Email = identity.Email(input.Email)

	validator := &validate.Validator{}
	validator.Required(auth.FieldFullName, input.FullName).
		MaxLen(auth.FieldFullName, input.FullName, auth.FullNameMaxLength).
		Required(auth.FieldEmail, input.Email).
		Email(auth.FieldEmail, input.Email)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.accounts.UpdateDetails(ctx, userID, input.FullName, input.Email)
	if err != nil {
		return nil, apperr.Ensure(err)
	}

	service.invalidate(ctx, userID)
	service.logger.InfoContext(ctx, "account_details_updated", slog.String("user_id", userID))
	return user, nil
}

/*
ReplaceImage uploads a new avatar or cover image and stores its URL.

Parameters:
  - ctx: context.Context
  - userID: string
  - image: Image (avatar or cover)
  - file: *objectstore.File (required)

Returns:
  - *auth.User: The updated account
  - error: Validation failure for a missing file, upload or storage errors
*/
func (service *Service) ReplaceImage(ctx context.Context, userID string, image Image, file *objectstore.File) (*auth.User, error) {
	prefix, field := avatarPrefix, auth.FieldAvatar
	if image == ImageCover {
		prefix, field = coverPrefix, auth.FieldCoverImage
	}

	validator := &validate.Validator{}
	validator.Custom(field, file == nil, "File is required")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	url, err := objectstore.Put(ctx, service.uploader, prefix, file)
	if err != nil {
		return nil, apperr.Ensure(fmt.Errorf("account_service_upload_failed: %w", err))
	}

	user, err := service.accounts.UpdateImage(ctx, userID, image, url)
	if err != nil {
		return nil, apperr.Ensure(err)
	}

	service.invalidate(ctx, userID)
	service.logger.InfoContext(ctx, "account_image_replaced",
		slog.String("user_id", userID),
		slog.String("image", string(image)),
	)
	return user, nil
}

// ChangePassword delegates to the credential owner.
func (service *Service) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	validator := &validate.Validator{}
	validator.Required(auth.FieldOldPassword, oldPassword).
		Required(auth.FieldNewPassword, newPassword).
		MinLen(auth.FieldNewPassword, newPassword, auth.PasswordMinLength).
		MaxLen(auth.FieldNewPassword, newPassword, auth.PasswordMaxLength)

	if err := validator.Err(); err != nil {
		return err
	}
	return service.passwords.ChangePassword(ctx, userID, oldPassword, newPassword)
}

// A stale cached profile only lives until its TTL, so failures are logged.
func (service *Service) invalidate(ctx context.Context, userID string) {
	if err := service.profiles.Invalidate(ctx, userID); err != nil {
		service.logger.WarnContext(ctx, "profile_cache_invalidate_failed",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
	}
}

// # Watch History

/*
History returns the caller's watch history, each video with its owner.

Description: Entries are ordered by watch time, newest first unless
oldestFirst is set. Videos that were deleted or unpublished by someone else
since they were watched are skipped.

Parameters:
  - ctx: context.Context
  - userID: string
  - oldestFirst: bool
  - page: pagination.Params

Returns:
  - []*WatchedVideo: History page
  - int: Total entries
  - error: Storage errors
*/
func (service *Service) History(ctx context.Context, userID string, oldestFirst bool, page pagination.Params) ([]*WatchedVideo, int, error) {
	entries, total, err := service.history.List(ctx, userID, oldestFirst, page)
	if err != nil {
		return nil, 0, apperr.Ensure(err)
	}

	ids := make([]string, len(entries))
	for i, entry := range entries {
		ids[i] = entry.VideoID
	}

	found, err := service.videos.FindVisible(ctx, ids, userID)
	if err != nil {
		return nil, 0, apperr.Ensure(err)
	}
	byID := slice.IndexBy(found, video.IDOf)

	watched := make([]*WatchedVideo, 0, len(entries))
	videos := make([]*video.Video, 0, len(entries))
	for _, entry := range entries {
		v, ok := byID[entry.VideoID]
		if !ok {
			continue
		}
		watched = append(watched, &WatchedVideo{Video: v, WatchedAt: entry.WatchedAt})
		videos = append(videos, v)
	}

	if err := view.AttachOwners(ctx, service.composer, videos); err != nil {
		return nil, 0, err
	}
	return watched, total, nil
}
