// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package subscription

import (
	"context"

	"github.com/taibuivan/vidtube/pkg/pagination"
)

// Repository defines persistence for subscription edges.
type Repository interface {
	// Insert writes an edge. It reports false when the pair already existed.
	Insert(ctx context.Context, edge *Edge) (bool, error)

	// Delete removes the edge for a pair and reports whether one existed.
	Delete(ctx context.Context, subscriberID, channelID string) (bool, error)

	// ChannelExists reports whether a user with the given id exists.
	ChannelExists(ctx context.Context, channelID string) (bool, error)

	CountSubscribers(ctx context.Context, channelID string) (int64, error)

	// ListSubscribers returns edges into a channel, newest first, with the total.
	ListSubscribers(ctx context.Context, channelID string, page pagination.Params) ([]*Edge, int, error)

	// ListSubscriptions returns edges out of a subscriber, newest first, with the total.
	ListSubscriptions(ctx context.Context, subscriberID string, page pagination.Params) ([]*Edge, int, error)

	/*
		FindChannel loads a public channel page and its audience figures.

		Parameters:
		  - ctx: context.Context
		  - key: ChannelKey (id or username)
		  - viewerID: string (empty for anonymous)

		Returns:
		  - *ChannelProfile: Profile with counts and the viewer's subscription flag
		  - error: NotFound when no such user exists
	*/
	FindChannel(ctx context.Context, key ChannelKey, viewerID string) (*ChannelProfile, error)
}

// ChannelKey addresses a channel either by id or by username.
type ChannelKey struct {
	ID       string
	Username string
}
