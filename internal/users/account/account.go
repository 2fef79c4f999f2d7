// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account lets an authenticated user manage their own profile and read
their watch history.

Credentials and sessions live in the auth package; account only touches the
public-facing columns of users.account and the users.watch_history table.

# Architecture

  - Repository: profile columns (full name, email, avatar, cover).
  - HistoryRepository: watch history. It is also the [video.HistoryRecorder]
    the video service writes through.
  - Service: profile changes invalidate the cached owner profile.
*/
package account

import (
	"context"
	"time"

	"github.com/taibuivan/vidtube/internal/content/video"
)

// # Domain Entities

// Image selects which profile image an upload replaces.
type Image string

const (
	ImageAvatar Image = "avatar"
	ImageCover  Image = "cover_image"
)

// WatchedVideo is one watch history entry.
type WatchedVideo struct {
	*video.Video
	WatchedAt time.Time `json:"watched_at"`
}

// HistoryEntry is a stored watch history row.
type HistoryEntry struct {
	VideoID   string
	WatchedAt time.Time
}

// # Collaborators

// ProfileInvalidator drops cached owner profiles after a change.
type ProfileInvalidator interface {
	Invalidate(ctx context.Context, userID string) error
}

// PasswordChanger verifies and replaces a user's password.
type PasswordChanger interface {
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
}

// VideoFinder loads the videos referenced by watch history that viewerID
// may still see.
type VideoFinder interface {
	FindVisible(ctx context.Context, ids []string, viewerID string) ([]*video.Video, error)
}

const (
	avatarPrefix = "avatars"
	coverPrefix  = "covers"
)
