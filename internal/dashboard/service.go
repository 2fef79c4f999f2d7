// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package dashboard reports a channel's figures to its owner.

Nothing here is stored: every number is recomputed from the video, graph and
engagement stores on each request.
*/
package dashboard

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/vidtube/internal/content/video"
	"github.com/taibuivan/vidtube/internal/engagement/like"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

// Stats are the aggregate figures of one channel.
type Stats struct {
	TotalVideos      int64 `json:"total_videos"`
	TotalViews       int64 `json:"total_views"`
	TotalSubscribers int64 `json:"total_subscribers"`
	TotalLikes       int64 `json:"total_likes"`
}

// # Collaborators

// VideoSource provides per-channel video figures and listings.
type VideoSource interface {
	Totals(ctx context.Context, ownerID string) (int64, int64, error)
	ListByOwner(ctx context.Context, ownerID string, page pagination.Params) ([]*video.Video, int, error)
}

// SubscriberCounter counts a channel's audience.
type SubscriberCounter interface {
	SubscriberCount(ctx context.Context, channelID string) (int64, error)
}

// LikeCounter sums likes received across a channel's targets.
type LikeCounter interface {
	CountForOwner(ctx context.Context, ownerID string, kind like.TargetKind) (int64, error)
}

// Service computes dashboard figures.
type Service struct {
	videos      VideoSource
	subscribers SubscriberCounter
	likes       LikeCounter
	logger      *slog.Logger
}

// NewService constructs a dashboard [Service].
func NewService(videos VideoSource, subscribers SubscriberCounter, likes LikeCounter, logger *slog.Logger) *Service {
	return &Service{videos: videos, subscribers: subscribers, likes: likes, logger: logger}
}

/*
Stats gathers the channel's totals concurrently.

Description: Video totals, subscriber count and received video likes are
independent reads; the first failure cancels the others.

Parameters:
  - ctx: context.Context
  - channelID: string

Returns:
  - *Stats: Aggregated figures
  - error: The first collaborator failure
*/
func (service *Service) Stats(ctx context.Context, channelID string) (*Stats, error) {
	stats := &Stats{}
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		videos, views, err := service.videos.Totals(groupCtx, channelID)
		stats.TotalVideos, stats.TotalViews = videos, views
		return err
	})

	group.Go(func() error {
		count, err := service.subscribers.SubscriberCount(groupCtx, channelID)
		stats.TotalSubscribers = count
		return err
	})

	group.Go(func() error {
		count, err := service.likes.CountForOwner(groupCtx, channelID, like.KindVideo)
		stats.TotalLikes = count
		return err
	})

	if err := group.Wait(); err != nil {
		service.logger.WarnContext(ctx, "dashboard_stats_failed",
			slog.String("channel_id", channelID),
			slog.Any("error", err),
		)
		return nil, err
	}
	return stats, nil
}

// Videos lists every video of the channel, unpublished included, newest first.
func (service *Service) Videos(ctx context.Context, channelID string, page pagination.Params) ([]*video.Video, int, error) {
	return service.videos.ListByOwner(ctx, channelID, page)
}
