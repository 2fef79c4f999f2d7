// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package like

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/view"
	"github.com/taibuivan/vidtube/pkg/pagination"
	"github.com/taibuivan/vidtube/pkg/uuid"
)

// # Service

// Service is the engagement ledger.
type Service struct {
	repo     Repository
	registry Registry
	composer *view.Composer
	logger   *slog.Logger
	now      func() time.Time
}

// NewService constructs the ledger over repo, resolving targets via registry.
func NewService(repo Repository, registry Registry, composer *view.Composer, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		registry: registry,
		composer: composer,
		logger:   logger,
		now:      time.Now,
	}
}

func (service *Service) resolver(kind TargetKind) (TargetResolver, error) {
	resolver, ok := service.registry[kind]
	if !ok {
		return nil, apperr.InvalidRequest("Invalid target kind")
	}
	return resolver, nil
}

/*
Toggle flips the actor's like on a target.

Description: An existing like is deleted; otherwise a like is inserted. The
unique index decides concurrent toggles. The count is recomputed afterwards.

Parameters:
  - ctx: context.Context
  - actorID: string
  - targetID: string
  - kind: TargetKind

Returns:
  - *ToggleResult: New state and like count
  - error: InvalidRequest for an unknown kind, NotFound for a missing or hidden target
*/
func (service *Service) Toggle(ctx context.Context, actorID, targetID string, kind TargetKind) (*ToggleResult, error) {
	resolver, err := service.resolver(kind)
	if err != nil {
		return nil, err
	}

	exists, err := resolver.Exists(ctx, targetID, actorID)
	if err != nil {
		return nil, apperr.Ensure(fmt.Errorf("like_target_lookup_failed: %w", err))
	}
	if !exists {
		return nil, apperr.NotFound(string(kind))
	}

	deleted, err := service.repo.DeleteLike(ctx, actorID, targetID, kind)
	if err != nil {
		return nil, apperr.Ensure(err)
	}

	state := StateUnliked
	if !deleted {
		record := &Record{
			ID:         uuid.New(),
			ActorID:    actorID,
			TargetID:   targetID,
			TargetKind: kind,
			Reaction:   ReactionLike,
			CreatedAt:  service.now().UTC(),
		}
		if err := service.repo.InsertLike(ctx, record); err != nil {
			return nil, apperr.Ensure(err)
		}
		state = StateLiked
	}

	count, err := service.repo.CountLikes(ctx, targetID, kind)
	if err != nil {
		return nil, apperr.Ensure(err)
	}

	service.logger.DebugContext(ctx, "like_toggled",
		slog.String("target_id", targetID),
		slog.String("kind", string(kind)),
		slog.String("state", string(state)),
	)

	return &ToggleResult{State: state, Count: count}, nil
}

// Count returns the number of likes on a target.
func (service *Service) Count(ctx context.Context, targetID string, kind TargetKind) (int64, error) {
	if _, err := service.resolver(kind); err != nil {
		return 0, err
	}
	count, err := service.repo.CountLikes(ctx, targetID, kind)
	if err != nil {
		return 0, apperr.Ensure(err)
	}
	return count, nil
}

// CountForOwner returns the likes received by ownerID across targets of kind.
func (service *Service) CountForOwner(ctx context.Context, ownerID string, kind TargetKind) (int64, error) {
	count, err := service.repo.CountForOwner(ctx, ownerID, kind)
	if err != nil {
		return 0, apperr.Ensure(err)
	}
	return count, nil
}

/*
ListLiked returns what the actor liked, newest like first.

Description: Each entry carries the full target with its owner profile. Likes
whose target has since been deleted, or is no longer visible to the actor
(an unpublished video), are skipped. The page window is applied
after ordering.

Parameters:
  - ctx: context.Context
  - actorID: string
  - kind: TargetKind
  - page: pagination.Params

Returns:
  - []*LikedTarget: Window of liked targets
  - int: Total number of live entries
  - error: InvalidRequest for an unknown kind, Internal on lookup failures
*/
func (service *Service) ListLiked(ctx context.Context, actorID string, kind TargetKind, page pagination.Params) ([]*LikedTarget, int, error) {
	resolver, err := service.resolver(kind)
	if err != nil {
		return nil, 0, err
	}

	records, err := service.repo.ListByActor(ctx, actorID, kind)
	if err != nil {
		return nil, 0, apperr.Ensure(err)
	}
	if len(records) == 0 {
		return []*LikedTarget{}, 0, nil
	}

	ids := make([]string, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.TargetID)
	}

	targets, err := resolver.Load(ctx, ids, actorID)
	if err != nil {
		return nil, 0, apperr.Ensure(fmt.Errorf("like_target_load_failed: %w", err))
	}

	entries := make([]*LikedTarget, 0, len(records))
	for _, record := range records {
		target, ok := targets[record.TargetID]
		if !ok {
			service.logger.DebugContext(ctx, "like_target_dangling",
				slog.String("record_id", record.ID),
				slog.String("target_id", record.TargetID),
			)
			continue
		}
		entries = append(entries, &LikedTarget{
			Kind:     kind,
			LikedAt:  record.CreatedAt,
			Target:   target,
			recordID: record.ID,
		})
	}

	window := view.Window(entries, page)

	owned := make([]view.Owned, 0, len(window))
	for _, entry := range window {
		owned = append(owned, entry.Target)
	}
	if err := service.composer.Attach(ctx, owned...); err != nil {
		return nil, 0, err
	}

	return window, len(entries), nil
}
