// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package playlist

import (
	"context"

	"github.com/taibuivan/vidtube/pkg/pagination"
)

// Repository defines the data access contract for playlists.
type Repository interface {
	Create(ctx context.Context, playlist *Playlist) error

	// FindByID returns the playlist with VideoCount filled in.
	FindByID(ctx context.Context, id string) (*Playlist, error)

	// ListByOwner returns a user's playlists newest first with the total count.
	ListByOwner(ctx context.Context, ownerID string, page pagination.Params) ([]*Playlist, int, error)

	// VideoIDs returns the playlist's video ids in insertion order.
	VideoIDs(ctx context.Context, playlistID string) ([]string, error)

	// AddVideo appends a video. It reports false when the video was already present.
	AddVideo(ctx context.Context, playlistID, videoID string) (bool, error)

	// RemoveVideo reports false when the video was not in the playlist.
	RemoveVideo(ctx context.Context, playlistID, videoID string) (bool, error)

	UpdateDetails(ctx context.Context, playlist *Playlist) error
	Delete(ctx context.Context, id string) error
}
