// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package comment manages the discussion threads under videos.
package comment

import (
	"time"

	"github.com/taibuivan/vidtube/internal/view"
)

// Comment is a piece of text left under a video.
type Comment struct {
	ID        string             `json:"id"`
	VideoID   string             `json:"video_id"`
	OwnerID   string             `json:"owner_id"`
	Owner     *view.OwnerProfile `json:"owner,omitempty"`
	Content   string             `json:"content"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func (comment *Comment) OwnerRef() string { return comment.OwnerID }

func (comment *Comment) AttachOwner(profile view.OwnerProfile) { comment.Owner = &profile }

func (comment *Comment) SortKey() (time.Time, string) { return comment.CreatedAt, comment.ID }

// IDOf returns the comment's id.
func IDOf(comment *Comment) string { return comment.ID }

const (
	FieldContent     = "content"
	ContentMaxLength = 2000
)
