// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package post manages short-form text a channel publishes outside of videos.

Two kinds share one table: tweets and community posts. They behave the same
way and are kept apart so that each kind is its own like target.
*/
package post

import (
	"time"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/view"
)

// Kind tells tweets and posts apart.
type Kind string

const (
	KindTweet Kind = "tweet"
	KindPost  Kind = "post"
)

// Valid reports whether kind is one of the known kinds.
func (kind Kind) Valid() bool {
	return kind == KindTweet || kind == KindPost
}

func (kind Kind) resource() string {
	if kind == KindTweet {
		return "Tweet"
	}
	return "Post"
}

func (kind Kind) check() error {
	if !kind.Valid() {
		return apperr.InvalidRequest("Invalid post kind")
	}
	return nil
}

// Post is a tweet or community post.
type Post struct {
	ID        string             `json:"id"`
	OwnerID   string             `json:"owner_id"`
	Owner     *view.OwnerProfile `json:"owner,omitempty"`
	Kind      Kind               `json:"kind"`
	Content   string             `json:"content"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func (post *Post) OwnerRef() string { return post.OwnerID }

func (post *Post) AttachOwner(profile view.OwnerProfile) { post.Owner = &profile }

func (post *Post) SortKey() (time.Time, string) { return post.CreatedAt, post.ID }

// IDOf returns the post's id.
func IDOf(post *Post) string { return post.ID }

const (
	FieldContent     = "content"
	ContentMaxLength = 1000
)
