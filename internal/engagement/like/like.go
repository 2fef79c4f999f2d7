// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package like implements the engagement ledger: reactions that any user can
leave on videos, comments, tweets and posts.

A record references its target by (id, kind) without a foreign key. Kinds form
a closed set and each one is backed by a [TargetResolver] in the [Registry],
which is how the ledger checks that a target exists and how it loads targets
back for listings.

# Invariants

  - At most one record per (actor, target, kind), enforced by a unique index.
  - Counts are recomputed from the ledger on every read; nothing is cached.
*/
package like

import (
	"context"
	"strings"
	"time"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/view"
)

// # Target Kinds

// TargetKind names a kind of record that can be liked.
type TargetKind string

const (
	KindVideo   TargetKind = "Video"
	KindComment TargetKind = "Comment"
	KindTweet   TargetKind = "Tweet"
	KindPost    TargetKind = "Post"
)

// Kinds lists every accepted target kind.
var Kinds = []TargetKind{KindVideo, KindComment, KindTweet, KindPost}

// ParseTargetKind maps client input onto a [TargetKind], ignoring case.
func ParseTargetKind(raw string) (TargetKind, error) {
	for _, kind := range Kinds {
		if strings.EqualFold(string(kind), strings.TrimSpace(raw)) {
			return kind, nil
		}
	}
	return "", apperr.InvalidRequest("Invalid target kind")
}

// # Reactions

// Reaction is the polarity of a record. Toggle only ever writes likes.
type Reaction string

const (
	ReactionLike    Reaction = "like"
	ReactionDislike Reaction = "dislike"
)

// State is the outcome of a toggle.
type State string

const (
	StateLiked   State = "liked"
	StateUnliked State = "unliked"
)

// # Entities

// Record is one row of the ledger.
type Record struct {
	ID         string     `json:"id"`
	ActorID    string     `json:"actor_id"`
	TargetID   string     `json:"target_id"`
	TargetKind TargetKind `json:"target_kind"`
	Reaction   Reaction   `json:"reaction"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ToggleResult reports the state after a toggle and the recomputed like count.
type ToggleResult struct {
	State State `json:"state"`
	Count int64 `json:"count"`
}

// LikedTarget is one entry of a "things I liked" listing.
type LikedTarget struct {
	Kind    TargetKind `json:"kind"`
	LikedAt time.Time  `json:"liked_at"`
	Target  view.Owned `json:"target"`

	recordID string
}

// SortKey orders entries by when the like happened.
func (entry *LikedTarget) SortKey() (time.Time, string) {
	return entry.LikedAt, entry.recordID
}

// # Resolution

// TargetResolver checks and loads the records of one target kind as seen by
// viewerID. Targets the viewer may not see behave as absent.
type TargetResolver interface {
	// Exists reports whether a target with id is present and visible.
	Exists(ctx context.Context, id, viewerID string) (bool, error)
	// Load returns the visible targets it finds, keyed by id. Other ids are omitted.
	Load(ctx context.Context, ids []string, viewerID string) (map[string]view.Owned, error)
}

// Finder loads the records among ids that viewerID may see.
type Finder[T view.Owned] func(ctx context.Context, ids []string, viewerID string) ([]T, error)

// Public adapts a finder whose records are visible to everyone.
func Public[T view.Owned](find func(ctx context.Context, ids []string) ([]T, error)) Finder[T] {
	return func(ctx context.Context, ids []string, _ string) ([]T, error) {
		return find(ctx, ids)
	}
}

// Registry maps each target kind to its resolver.
type Registry map[TargetKind]TargetResolver

// Resolver adapts a bulk finder into a [TargetResolver].
//
// idOf extracts a record's id.
func Resolver[T view.Owned](find Finder[T], idOf func(T) string) TargetResolver {
	return finderResolver[T]{find: find, idOf: idOf}
}

type finderResolver[T view.Owned] struct {
	find Finder[T]
	idOf func(T) string
}

func (resolver finderResolver[T]) Exists(ctx context.Context, id, viewerID string) (bool, error) {
	found, err := resolver.find(ctx, []string{id}, viewerID)
	if err != nil {
		return false, err
	}
	return len(found) > 0, nil
}

func (resolver finderResolver[T]) Load(ctx context.Context, ids []string, viewerID string) (map[string]view.Owned, error) {
	found, err := resolver.find(ctx, ids, viewerID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]view.Owned, len(found))
	for _, item := range found {
		byID[resolver.idOf(item)] = item
	}
	return byID, nil
}
