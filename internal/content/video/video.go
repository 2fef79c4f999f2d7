// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package video manages uploaded videos: publishing, the public feed, detail
views with view counting and watch history, and owner-only edits.
*/
package video

import (
	"time"

	"github.com/taibuivan/vidtube/internal/view"
)

// # Domain Entities

// Video is an uploaded media file with its metadata.
type Video struct {
	ID              string             `json:"id"`
	OwnerID         string             `json:"owner_id"`
	Owner           *view.OwnerProfile `json:"owner,omitempty"`
	VideoFileURL    string             `json:"video_file"`
	ThumbnailURL    string             `json:"thumbnail"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	DurationSeconds float64            `json:"duration"`
	Views           int64              `json:"views"`
	IsPublished     bool               `json:"is_published"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`

	// Likes is only populated on the detail view.
	Likes *int64 `json:"likes,omitempty"`
}

func (video *Video) OwnerRef() string { return video.OwnerID }

func (video *Video) AttachOwner(profile view.OwnerProfile) { video.Owner = &profile }

func (video *Video) SortKey() (time.Time, string) { return video.CreatedAt, video.ID }

// VisibleTo reports whether viewerID may see the video. Unpublished videos
// exist only for their owner; an empty viewerID is an anonymous viewer.
func (video *Video) VisibleTo(viewerID string) bool {
	return video.IsPublished || (viewerID != "" && video.OwnerID == viewerID)
}

// IDOf returns the video's id.
func IDOf(video *Video) string { return video.ID }

// Filter narrows the public feed.
type Filter struct {
	// OwnerID restricts the feed to one channel.
	OwnerID string
}

// # Field Identifiers

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldVideoFile   = "video_file"
	FieldThumbnail   = "thumbnail"
	FieldDuration    = "duration"
)

const (
	TitleMaxLength       = 200
	DescriptionMaxLength = 5000

	videoPrefix     = "videos"
	thumbnailPrefix = "thumbnails"
)
