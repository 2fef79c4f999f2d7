// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package subscription

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/view"
	"github.com/taibuivan/vidtube/pkg/identity"
	"github.com/taibuivan/vidtube/pkg/pagination"
	"github.com/taibuivan/vidtube/pkg/uuid"
)

// Service owns the subscription graph.
type Service struct {
	repo     Repository
	composer *view.Composer
	logger   *slog.Logger
	now      func() time.Time
}

// NewService constructs a graph service over repo.
func NewService(repo Repository, composer *view.Composer, logger *slog.Logger) *Service {
	return &Service{repo: repo, composer: composer, logger: logger, now: time.Now}
}

/*
Toggle subscribes subscriberID to channelID, or unsubscribes when the edge
already exists.

Returns:
  - *ToggleResult: New state and the channel's subscriber count
  - error: InvalidRequest for a self subscription, NotFound for an unknown channel
*/
func (service *Service) Toggle(ctx context.Context, subscriberID, channelID string) (*ToggleResult, error) {
	if subscriberID == channelID {
		return nil, apperr.InvalidRequest("cannot subscribe to self")
	}

	exists, err := service.repo.ChannelExists(ctx, channelID)
	if err != nil {
		return nil, apperr.Ensure(err)
	}
	if !exists {
		return nil, apperr.NotFound("Channel")
	}

	removed, err := service.repo.Delete(ctx, subscriberID, channelID)
	if err != nil {
		return nil, apperr.Ensure(err)
	}

	state := StateUnsubscribed
	if !removed {
		edge := &Edge{
			ID:           uuid.New(),
			SubscriberID: subscriberID,
			ChannelID:    channelID,
			CreatedAt:    service.now(),
		}
		// A lost race against an identical insert still leaves the pair subscribed.
		if _, err := service.repo.Insert(ctx, edge); err != nil {
			return nil, apperr.Ensure(err)
		}
		state = StateSubscribed
	}

	count, err := service.repo.CountSubscribers(ctx, channelID)
	if err != nil {
		return nil, apperr.Ensure(err)
	}

	service.logger.InfoContext(ctx, "subscription_toggled",
		slog.String("subscriber_id", subscriberID),
		slog.String("channel_id", channelID),
		slog.String("state", string(state)),
	)
	return &ToggleResult{State: state, Subscribers: count}, nil
}

// ListSubscribers returns the users following channelID, newest edge first.
func (service *Service) ListSubscribers(ctx context.Context, channelID string, page pagination.Params) ([]*Member, int, error) {
	edges, total, err := service.repo.ListSubscribers(ctx, channelID, page)
	if err != nil {
		return nil, 0, apperr.Ensure(err)
	}
	return service.members(ctx, edges, total, func(edge *Edge) string { return edge.SubscriberID })
}

// ListSubscriptions returns the channels subscriberID follows, newest edge first.
func (service *Service) ListSubscriptions(ctx context.Context, subscriberID string, page pagination.Params) ([]*Member, int, error) {
	edges, total, err := service.repo.ListSubscriptions(ctx, subscriberID, page)
	if err != nil {
		return nil, 0, apperr.Ensure(err)
	}
	return service.members(ctx, edges, total, func(edge *Edge) string { return edge.ChannelID })
}

func (service *Service) members(ctx context.Context, edges []*Edge, total int, counterpart func(*Edge) string) ([]*Member, int, error) {
	members := make([]*Member, 0, len(edges))
	for _, edge := range edges {
		members = append(members, &Member{
			SubscribedAt: edge.CreatedAt,
			userID:       counterpart(edge),
		})
	}

	// Edges arrive already ordered and paged by the repository.
	if err := view.AttachOwners(ctx, service.composer, members); err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

// ChannelProfile loads a channel by id as seen by viewerID.
func (service *Service) ChannelProfile(ctx context.Context, channelID, viewerID string) (*ChannelProfile, error) {
	profile, err := service.repo.FindChannel(ctx, ChannelKey{ID: channelID}, viewerID)
	if err != nil {
		return nil, apperr.Ensure(err)
	}
	return profile, nil
}

// ChannelByUsername loads a channel by its handle as seen by viewerID.
func (service *Service) ChannelByUsername(ctx context.Context, username, viewerID string) (*ChannelProfile, error) {
	username = identity.Username(username)
	if username == "" {
		return nil, apperr.InvalidRequest("username is missing")
	}

	profile, err := service.repo.FindChannel(ctx, ChannelKey{Username: username}, viewerID)
	if err != nil {
		return nil, apperr.Ensure(err)
	}
	return profile, nil
}

// SubscriberCount returns how many users follow channelID.
func (service *Service) SubscriberCount(ctx context.Context, channelID string) (int64, error) {
	count, err := service.repo.CountSubscribers(ctx, channelID)
	if err != nil {
		return 0, apperr.Ensure(err)
	}
	return count, nil
}
