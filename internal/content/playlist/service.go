// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package playlist

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/vidtube/internal/content/video"
	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/validate"
	"github.com/taibuivan/vidtube/internal/view"
	"github.com/taibuivan/vidtube/pkg/pagination"
	"github.com/taibuivan/vidtube/pkg/slice"
	"github.com/taibuivan/vidtube/pkg/uuid"
)

// VideoFinder loads the videos a playlist refers to, as seen by viewerID.
// Unpublished videos of other owners are treated as absent.
type VideoFinder interface {
	FindVisibleByID(ctx context.Context, id, viewerID string) (*video.Video, error)
	FindVisible(ctx context.Context, ids []string, viewerID string) ([]*video.Video, error)
}

// Service orchestrates business rules for playlists.
type Service struct {
	repo     Repository
	videos   VideoFinder
	composer *view.Composer
	logger   *slog.Logger
}

// NewService constructs a new playlist [Service].
func NewService(repo Repository, videos VideoFinder, composer *view.Composer, logger *slog.Logger) *Service {
	return &Service{repo: repo, videos: videos, composer: composer, logger: logger}
}

// Details are the editable fields of a playlist.
type Details struct {
	Name        string
	Description string
}

func (details Details) normalized() (Details, error) {
	details.Name = strings.TrimSpace(details.Name)
	details.Description = strings.TrimSpace(details.Description)

	validator := &validate.Validator{}
	validator.Required(FieldName, details.Name).
		MaxLen(FieldName, details.Name, NameMaxLength).
		Required(FieldDescription, details.Description).
		MaxLen(FieldDescription, details.Description, DescriptionMaxLength)

	return details, validator.Err()
}

/*
Create stores an empty playlist.

Returns:
  - *Playlist: Created entity with its owner
  - error: Validation failure when name or description is missing
*/
func (service *Service) Create(ctx context.Context, ownerID string, details Details) (*Playlist, error) {
	details, err := details.normalized()
	if err != nil {
		return nil, err
	}

	playlist := &Playlist{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        details.Name,
		Description: details.Description,
	}
	if err := service.repo.Create(ctx, playlist); err != nil {
		return nil, apperr.Ensure(err)
	}

	if err := service.composer.Attach(ctx, playlist); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "playlist_created", slog.String("playlist_id", playlist.ID))
	return playlist, nil
}

// ListByOwner returns a user's playlists newest first, owner attached.
func (service *Service) ListByOwner(ctx context.Context, ownerID string, page pagination.Params) ([]*Playlist, int, error) {
	playlists, total, err := service.repo.ListByOwner(ctx, ownerID, page)
	if err != nil {
		return nil, 0, apperr.Ensure(err)
	}

	if err := view.AttachOwners(ctx, service.composer, playlists); err != nil {
		return nil, 0, err
	}
	return playlists, total, nil
}

/*
Get returns a playlist with its videos, each video with its own owner.

Description: Videos keep playlist order. Unpublished videos are only shown to
their own owner. The playlist owner and all video owners are resolved in one
lookup.

Parameters:
  - ctx: context.Context
  - playlistID: string
  - viewerID: string (empty for anonymous)

Returns:
  - *Playlist: Composed playlist
  - error: NotFound for an unknown playlist
*/
func (service *Service) Get(ctx context.Context, playlistID, viewerID string) (*Playlist, error) {
	playlist, err := service.repo.FindByID(ctx, playlistID)
	if err != nil {
		return nil, apperr.Ensure(err)
	}

	ids, err := service.repo.VideoIDs(ctx, playlistID)
	if err != nil {
		return nil, apperr.Ensure(err)
	}

	found, err := service.videos.FindVisible(ctx, ids, viewerID)
	if err != nil {
		return nil, apperr.Ensure(err)
	}

	byID := slice.IndexBy(found, video.IDOf)

	playlist.Videos = make([]*video.Video, 0, len(ids))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			playlist.Videos = append(playlist.Videos, v)
		}
	}

	owned := append([]view.Owned{playlist}, view.AsOwned(playlist.Videos)...)
	if err := service.composer.Attach(ctx, owned...); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (service *Service) owned(ctx context.Context, actorID, playlistID string) (*Playlist, error) {
	playlist, err := service.repo.FindByID(ctx, playlistID)
	if err != nil {
		return nil, apperr.Ensure(err)
	}
	if playlist.OwnerID != actorID {
		return nil, apperr.Forbidden("You do not own this playlist")
	}
	return playlist, nil
}

// AddVideo appends a video to a playlist owned by actorID. Adding a video
// that is already present is a no-op; another owner's unpublished video is
// NotFound.
func (service *Service) AddVideo(ctx context.Context, actorID, playlistID, videoID string) (*Playlist, error) {
	if _, err := service.owned(ctx, actorID, playlistID); err != nil {
		return nil, err
	}

	if _, err := service.videos.FindVisibleByID(ctx, videoID, actorID); err != nil {
		return nil, apperr.Ensure(err)
	}

	if _, err := service.repo.AddVideo(ctx, playlistID, videoID); err != nil {
		return nil, apperr.Ensure(err)
	}
	return service.Get(ctx, playlistID, actorID)
}

// RemoveVideo takes a video out of a playlist owned by actorID.
func (service *Service) RemoveVideo(ctx context.Context, actorID, playlistID, videoID string) (*Playlist, error) {
	if _, err := service.owned(ctx, actorID, playlistID); err != nil {
		return nil, err
	}

	removed, err := service.repo.RemoveVideo(ctx, playlistID, videoID)
	if err != nil {
		return nil, apperr.Ensure(err)
	}
	if !removed {
		return nil, apperr.NotFoundMsg("Video is not in this playlist")
	}
	return service.Get(ctx, playlistID, actorID)
}

// Update replaces name and description of a playlist owned by actorID.
func (service *Service) Update(ctx context.Context, actorID, playlistID string, details Details) (*Playlist, error) {
	details, err := details.normalized()
	if err != nil {
		return nil, err
	}

	playlist, err := service.owned(ctx, actorID, playlistID)
	if err != nil {
		return nil, err
	}

	playlist.Name = details.Name
	playlist.Description = details.Description
	if err := service.repo.UpdateDetails(ctx, playlist); err != nil {
		return nil, apperr.Ensure(err)
	}

	if err := service.composer.Attach(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

// Delete removes a playlist owned by actorID.
func (service *Service) Delete(ctx context.Context, actorID, playlistID string) error {
	if _, err := service.owned(ctx, actorID, playlistID); err != nil {
		return err
	}
	if err := service.repo.Delete(ctx, playlistID); err != nil {
		return apperr.Ensure(err)
	}

	service.logger.InfoContext(ctx, "playlist_deleted", slog.String("playlist_id", playlistID))
	return nil
}
