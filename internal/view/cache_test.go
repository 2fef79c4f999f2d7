// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidtube/internal/view"
)

func newCache(t *testing.T, origin view.ProfileSource) (*view.CachedProfileSource, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return view.NewCachedProfileSource(origin, client, time.Minute, logger), server
}

/*
TestCachedProfileSource_ReadThrough verifies misses go to the origin once and hits stay in Redis.
*/
func TestCachedProfileSource_ReadThrough(t *testing.T) {
	origin := newSource()
	cache, server := newCache(t, origin)
	ctx := context.Background()

	first, err := cache.FindProfiles(ctx, []string{"alice", "bob"})
	require.NoError(t, err)
	assert.Len(t, first, 2)
	assert.Equal(t, 1, origin.lookups)
	assert.True(t, server.Exists("view:owner:alice"))

	second, err := cache.FindProfiles(ctx, []string{"alice", "bob"})
	require.NoError(t, err)
	assert.ElementsMatch(t, first, second)
	assert.Equal(t, 1, origin.lookups)

	ttl := server.TTL("view:owner:bob")
	assert.Equal(t, time.Minute, ttl)
}

/*
TestCachedProfileSource_Invalidate verifies a changed profile is re-read from the origin.
*/
func TestCachedProfileSource_Invalidate(t *testing.T) {
	origin := newSource()
	cache, _ := newCache(t, origin)
	ctx := context.Background()

	_, err := cache.FindProfiles(ctx, []string{"alice"})
	require.NoError(t, err)

	origin.profiles["alice"] = view.OwnerProfile{ID: "alice", Username: "alice", FullName: "Alice Renamed"}
	require.NoError(t, cache.Invalidate(ctx, "alice"))

	profiles, err := cache.FindProfiles(ctx, []string{"alice"})
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Alice Renamed", profiles[0].FullName)
	assert.Equal(t, 2, origin.lookups)
}

/*
TestCachedProfileSource_RedisDown verifies the origin still answers when Redis is unreachable.
*/
func TestCachedProfileSource_RedisDown(t *testing.T) {
	origin := newSource()
	cache, server := newCache(t, origin)
	server.Close()

	profiles, err := cache.FindProfiles(context.Background(), []string{"bob"})
	require.NoError(t, err)
	assert.Len(t, profiles, 1)
}

func TestCachedProfileSource_UnknownStaysMissing(t *testing.T) {
	origin := newSource()
	cache, server := newCache(t, origin)

	profiles, err := cache.FindProfiles(context.Background(), []string{"ghost"})
	require.NoError(t, err)
	assert.Empty(t, profiles)
	assert.False(t, server.Exists("view:owner:ghost"))
}
