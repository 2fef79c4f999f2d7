// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package view assembles outward-facing records from stored ones.

Content records carry a bare owner id. Before they leave the service layer the
[Composer] replaces that reference with an [OwnerProfile]: the only projection
of a user that is ever returned next to someone else's content.

# Invariants

  - Every owner id resolves to exactly one profile. A missing profile is a data
    integrity fault and surfaces as an internal error, never as a silently
    empty owner.
  - List endpoints return newest-created-first; an explicit page/limit is
    applied to the window after that ordering (see [Window]).
*/
package view

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/pkg/pagination"
	"github.com/taibuivan/vidtube/pkg/slice"
)

// # Projections

// OwnerProfile is the public projection of a user shown next to their content.
type OwnerProfile struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
}

// Owned is implemented by records that reference an owning user.
type Owned interface {
	// OwnerRef returns the id of the owning user.
	OwnerRef() string
	// AttachOwner stores the resolved profile on the record.
	AttachOwner(OwnerProfile)
}

// Dated is implemented by records that take part in the canonical ordering.
type Dated interface {
	SortKey() (time.Time, string)
}

// # Sources

// ProfileSource loads owner profiles in bulk.
//
// Implementations return one profile per id they know about, in any order,
// and simply omit unknown ids.
type ProfileSource interface {
	FindProfiles(ctx context.Context, ids []string) ([]OwnerProfile, error)
}

// # Composer

// Composer enriches records with their owners' profiles.
type Composer struct {
	source ProfileSource
}

// NewComposer creates a [Composer] reading from source.
func NewComposer(source ProfileSource) *Composer {
	return &Composer{source: source}
}

/*
Owners resolves a set of user ids into profiles.

Description: Duplicate ids are collapsed before the lookup. Every requested id
must come back exactly once.

Parameters:
  - ctx: context.Context
  - ids: []string

Returns:
  - map[string]OwnerProfile: Profiles keyed by user id
  - error: Internal when a profile is missing or the source fails
*/
func (composer *Composer) Owners(ctx context.Context, ids []string) (map[string]OwnerProfile, error) {
	unique := slice.Unique(ids)
	if len(unique) == 0 {
		return map[string]OwnerProfile{}, nil
	}

	profiles, err := composer.source.FindProfiles(ctx, unique)
	if err != nil {
		return nil, apperr.Ensure(fmt.Errorf("view_owner_lookup_failed: %w", err))
	}

	byID := make(map[string]OwnerProfile, len(profiles))
	for _, profile := range profiles {
		if _, dup := byID[profile.ID]; dup {
			return nil, apperr.Internal(fmt.Errorf("view_owner_ambiguous: %s", profile.ID))
		}
		byID[profile.ID] = profile
	}

	for _, id := range unique {
		if _, ok := byID[id]; !ok {
			return nil, apperr.Internal(fmt.Errorf("view_owner_missing: %s", id))
		}
	}

	return byID, nil
}

// Attach resolves and stores the owner of every item with one lookup.
// Items may be of different concrete types, which is how nested structures
// (a playlist and its videos) are composed in a single round trip.
func (composer *Composer) Attach(ctx context.Context, items ...Owned) error {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.OwnerRef())
	}

	owners, err := composer.Owners(ctx, ids)
	if err != nil {
		return err
	}

	for _, item := range items {
		item.AttachOwner(owners[item.OwnerRef()])
	}
	return nil
}

// AttachOwners is [Composer.Attach] for a homogeneous slice.
func AttachOwners[T Owned](ctx context.Context, composer *Composer, items []T) error {
	return composer.Attach(ctx, AsOwned(items)...)
}

// AsOwned widens a typed slice so it can be combined with other record kinds.
func AsOwned[T Owned](items []T) []Owned {
	return slice.Map(items, func(item T) Owned { return item })
}

// # Ordering

// Window sorts items newest-first (ties broken by descending id) and then
// applies the page window. The input slice is not modified.
func Window[T Dated](items []T, page pagination.Params) []T {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		aTime, aID := a.SortKey()
		bTime, bID := b.SortKey()
		if byTime := bTime.Compare(aTime); byTime != 0 {
			return byTime
		}
		return cmp.Compare(bID, aID)
	})

	start, end := page.Bounds(len(sorted))
	return sorted[start:end]
}
