// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/vidtube/internal/platform/constants"
)

// CachedProfileSource is a Redis read-through cache in front of another
// [ProfileSource]. Cache faults degrade to the origin; they are never fatal.
type CachedProfileSource struct {
	origin ProfileSource
	client redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedProfileSource wraps origin with a cache whose entries live for ttl.
func NewCachedProfileSource(origin ProfileSource, client redis.Cmdable, ttl time.Duration, logger *slog.Logger) *CachedProfileSource {
	return &CachedProfileSource{origin: origin, client: client, ttl: ttl, logger: logger}
}

func profileKey(id string) string {
	return constants.RedisPrefixOwnerProfile + id
}

// FindProfiles serves hits from Redis, loads misses from the origin and
// back-fills them.
func (cache *CachedProfileSource) FindProfiles(ctx context.Context, ids []string) ([]OwnerProfile, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = profileKey(id)
	}

	profiles := make([]OwnerProfile, 0, len(ids))
	var misses []string

	values, err := cache.client.MGet(ctx, keys...).Result()
	if err != nil {
		cache.logger.WarnContext(ctx, "profile_cache_read_failed", slog.Any("error", err))
		misses = ids
	} else {
		for i, value := range values {
			raw, ok := value.(string)
			if !ok {
				misses = append(misses, ids[i])
				continue
			}
			var profile OwnerProfile
			if json.Unmarshal([]byte(raw), &profile) != nil {
				misses = append(misses, ids[i])
				continue
			}
			profiles = append(profiles, profile)
		}
	}

	if len(misses) == 0 {
		return profiles, nil
	}

	loaded, err := cache.origin.FindProfiles(ctx, misses)
	if err != nil {
		return nil, err
	}

	cache.store(ctx, loaded)
	return append(profiles, loaded...), nil
}

// store writes profiles with the configured TTL in one pipeline.
func (cache *CachedProfileSource) store(ctx context.Context, profiles []OwnerProfile) {
	if len(profiles) == 0 {
		return
	}

	_, err := cache.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, profile := range profiles {
			payload, err := json.Marshal(profile)
			if err != nil {
				return err
			}
			pipe.Set(ctx, profileKey(profile.ID), payload, cache.ttl)
		}
		return nil
	})
	if err != nil {
		cache.logger.WarnContext(ctx, "profile_cache_write_failed", slog.Any("error", err))
	}
}

// Invalidate drops the cached profile of a user after a profile change.
func (cache *CachedProfileSource) Invalidate(ctx context.Context, userID string) error {
	err := cache.client.Del(ctx, profileKey(userID)).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}
