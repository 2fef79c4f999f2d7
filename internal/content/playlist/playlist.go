// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package playlist manages user-curated, ordered sets of videos.

A video appears at most once in a playlist. The detail view is composed in two
levels: the playlist carries its owner and every video carries its own.
*/
package playlist

import (
	"time"

	"github.com/taibuivan/vidtube/internal/content/video"
	"github.com/taibuivan/vidtube/internal/view"
)

// Playlist is a named list of videos owned by one user.
type Playlist struct {
	ID          string             `json:"id"`
	OwnerID     string             `json:"owner_id"`
	Owner       *view.OwnerProfile `json:"owner,omitempty"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	VideoCount  int                `json:"video_count"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`

	// Videos is only populated on the detail view, in playlist order.
	Videos []*video.Video `json:"videos,omitempty"`
}

func (playlist *Playlist) OwnerRef() string { return playlist.OwnerID }

func (playlist *Playlist) AttachOwner(profile view.OwnerProfile) { playlist.Owner = &profile }

func (playlist *Playlist) SortKey() (time.Time, string) { return playlist.CreatedAt, playlist.ID }

const (
	FieldName        = "name"
	FieldDescription = "description"

	NameMaxLength        = 150
	DescriptionMaxLength = 2000
)
