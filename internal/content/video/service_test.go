// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package video_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidtube/internal/content/video"
	"github.com/taibuivan/vidtube/internal/engagement/like"
	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/objectstore"
	"github.com/taibuivan/vidtube/internal/view"
	"github.com/taibuivan/vidtube/pkg/pagination"
	"github.com/taibuivan/vidtube/pkg/pointer"
)

// # Fakes

type memoryVideos struct {
	mu     sync.Mutex
	videos map[string]*video.Video
	clock  int
}

func newMemoryVideos() *memoryVideos {
	return &memoryVideos{videos: make(map[string]*video.Video)}
}

func (m *memoryVideos) Create(_ context.Context, v *video.Video) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clock++
	v.CreatedAt = time.Date(2026, 1, 1, 0, 0, m.clock, 0, time.UTC)
	v.UpdatedAt = v.CreatedAt
	clone := *v
	m.videos[v.ID] = &clone
	return nil
}

func (m *memoryVideos) FindByID(_ context.Context, id string) (*video.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.videos[id]
	if !ok {
		return nil, apperr.NotFound("Video")
	}
	clone := *v
	return &clone, nil
}

func (m *memoryVideos) FindByIDs(ctx context.Context, ids []string) ([]*video.Video, error) {
	var out []*video.Video
	for _, id := range ids {
		if v, err := m.FindByID(ctx, id); err == nil {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *memoryVideos) filtered(keep func(*video.Video) bool, page pagination.Params) ([]*video.Video, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []*video.Video
	for _, v := range m.videos {
		if keep(v) {
			clone := *v
			all = append(all, &clone)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	start, end := page.Bounds(len(all))
	return all[start:end], len(all)
}

func (m *memoryVideos) ListPublished(_ context.Context, filter video.Filter, page pagination.Params) ([]*video.Video, int, error) {
	out, total := m.filtered(func(v *video.Video) bool {
		return v.IsPublished && (filter.OwnerID == "" || v.OwnerID == filter.OwnerID)
	}, page)
	return out, total, nil
}

func (m *memoryVideos) ListByOwner(_ context.Context, ownerID string, page pagination.Params) ([]*video.Video, int, error) {
	out, total := m.filtered(func(v *video.Video) bool { return v.OwnerID == ownerID }, page)
	return out, total, nil
}

func (m *memoryVideos) Update(_ context.Context, v *video.Video) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.videos[v.ID]; !ok {
		return apperr.NotFound("Video")
	}
	clone := *v
	m.videos[v.ID] = &clone
	return nil
}

func (m *memoryVideos) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.videos[id]; !ok {
		return apperr.NotFound("Video")
	}
	delete(m.videos, id)
	return nil
}

func (m *memoryVideos) IncrementViews(_ context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.videos[id]
	if !ok {
		return 0, apperr.NotFound("Video")
	}
	v.Views++
	return v.Views, nil
}

func (m *memoryVideos) OwnerTotals(_ context.Context, ownerID string) (int64, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count, views int64
	for _, v := range m.videos {
		if v.OwnerID == ownerID {
			count++
			views += v.Views
		}
	}
	return count, views, nil
}

type fixedLikes int64

func (f fixedLikes) Count(context.Context, string, like.TargetKind) (int64, error) {
	return int64(f), nil
}

type historyLog struct {
	entries []string
}

func (h *historyLog) Record(_ context.Context, userID, videoID string) error {
	h.entries = append(h.entries, userID+"/"+videoID)
	return nil
}

type uploads struct{ keys []string }

func (u *uploads) Upload(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	_, _ = io.Copy(io.Discard, body)
	u.keys = append(u.keys, key)
	return "https://cdn.test/" + key, nil
}

type profiles map[string]view.OwnerProfile

func (p profiles) FindProfiles(_ context.Context, ids []string) ([]view.OwnerProfile, error) {
	var out []view.OwnerProfile
	for _, id := range ids {
		if profile, ok := p[id]; ok {
			out = append(out, profile)
		}
	}
	return out, nil
}

const (
	owner    = "0190c000-0000-7000-8000-000000000001"
	stranger = "0190c000-0000-7000-8000-000000000002"
)

type fixture struct {
	repo    *memoryVideos
	history *historyLog
	uploads *uploads
	service *video.Service
}

func newFixture() *fixture {
	repo := newMemoryVideos()
	history := &historyLog{}
	up := &uploads{}
	composer := view.NewComposer(profiles{
		owner:    {ID: owner, Username: "owner"},
		stranger: {ID: stranger, Username: "stranger"},
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &fixture{
		repo:    repo,
		history: history,
		uploads: up,
		service: video.NewService(repo, composer, up, fixedLikes(3), history, logger),
	}
}

func file(name string) *objectstore.File {
	return &objectstore.File{Body: strings.NewReader("bytes"), Name: name, ContentType: "application/octet-stream"}
}

func (f *fixture) publish(t *testing.T, title string) *video.Video {
	t.Helper()
	v, err := f.service.Publish(context.Background(), owner, video.PublishInput{
		Title:           title,
		Description:     "about " + title,
		DurationSeconds: 12.5,
		VideoFile:       file("clip.mp4"),
		Thumbnail:       file("thumb.jpg"),
	})
	require.NoError(t, err)
	return v
}

// # Tests

/*
TestPublish verifies uploads, owner attachment and validation.
*/
func TestPublish(t *testing.T) {
	f := newFixture()

	v := f.publish(t, "first")
	assert.True(t, v.IsPublished)
	assert.True(t, strings.HasPrefix(v.VideoFileURL, "https://cdn.test/videos/"))
	assert.True(t, strings.HasPrefix(v.ThumbnailURL, "https://cdn.test/thumbnails/"))
	require.NotNil(t, v.Owner)
	assert.Equal(t, "owner", v.Owner.Username)
	assert.Len(t, f.uploads.keys, 2)

	_, err := f.service.Publish(context.Background(), owner, video.PublishInput{Title: " ", Description: "x"})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeValidation, ae.Code)
	assert.Len(t, ae.Details, 3)
	assert.Len(t, f.uploads.keys, 2)
}

/*
TestGet verifies view counting, history recording and like counts.
*/
func TestGet(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	v := f.publish(t, "clip")

	got, err := f.service.Get(ctx, v.ID, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Views)
	require.NotNil(t, got.Likes)
	assert.Equal(t, int64(3), *got.Likes)
	assert.Empty(t, f.history.entries)

	got, err = f.service.Get(ctx, v.ID, stranger)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Views)
	assert.Equal(t, []string{stranger + "/" + v.ID}, f.history.entries)

	_, err = f.service.Get(ctx, "0190c000-0000-7000-8000-0000000000ff", "")
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestOwnerOnlyOperations verifies non-owners are forbidden and owners succeed.
*/
func TestOwnerOnlyOperations(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	v := f.publish(t, "mine")

	_, err := f.service.Update(ctx, stranger, v.ID, video.UpdateInput{Title: pointer.To("stolen")})
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	_, err = f.service.TogglePublish(ctx, stranger, v.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	assert.True(t, apperr.HasCode(f.service.Delete(ctx, stranger, v.ID), apperr.CodeForbidden))

	updated, err := f.service.Update(ctx, owner, v.ID, video.UpdateInput{Title: pointer.To("  renamed ")})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, "about mine", updated.Description)

	toggled, err := f.service.TogglePublish(ctx, owner, v.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsPublished)

	// Hidden from everyone but the owner.
	_, err = f.service.Get(ctx, v.ID, stranger)
	assert.True(t, apperr.IsNotFound(err))
	_, err = f.service.Get(ctx, v.ID, owner)
	assert.NoError(t, err)

	require.NoError(t, f.service.Delete(ctx, owner, v.ID))
	_, err = f.service.FindByID(ctx, v.ID)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestFeed verifies newest-first order, unpublished exclusion and paging.
*/
func TestFeed(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first := f.publish(t, "one")
	second := f.publish(t, "two")
	hidden := f.publish(t, "three")
	_, err := f.service.TogglePublish(ctx, owner, hidden.ID)
	require.NoError(t, err)

	videos, total, err := f.service.Feed(ctx, video.Filter{}, pagination.All())
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, videos, 2)
	assert.Equal(t, second.ID, videos[0].ID)
	assert.Equal(t, first.ID, videos[1].ID)
	assert.NotNil(t, videos[0].Owner)

	videos, _, err = f.service.Feed(ctx, video.Filter{}, pagination.Page(2, 1))
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, first.ID, videos[0].ID)

	all, total, err := f.service.ListByOwner(ctx, owner, pagination.All())
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, all, 3)
}

/*
TestFindVisible verifies unpublished videos resolve only for their owner, both
directly and through the like registry resolver.
*/
func TestFindVisible(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	public := f.publish(t, "public")
	secret := f.publish(t, "secret")
	_, err := f.service.TogglePublish(ctx, owner, secret.ID)
	require.NoError(t, err)

	ids := []string{public.ID, secret.ID}

	seen, err := f.service.FindVisible(ctx, ids, stranger)
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.Equal(t, public.ID, seen[0].ID)

	anonymous, err := f.service.FindVisible(ctx, ids, "")
	require.NoError(t, err)
	assert.Len(t, anonymous, 1)

	mine, err := f.service.FindVisible(ctx, ids, owner)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	_, err = f.service.FindVisibleByID(ctx, secret.ID, stranger)
	assert.True(t, apperr.IsNotFound(err))
	got, err := f.service.FindVisibleByID(ctx, secret.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "secret", got.Title)

	resolver := like.Resolver(f.service.FindVisible, video.IDOf)

	exists, err := resolver.Exists(ctx, secret.ID, stranger)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = resolver.Exists(ctx, secret.ID, owner)
	require.NoError(t, err)
	assert.True(t, exists)

	loaded, err := resolver.Load(ctx, ids, stranger)
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
	assert.NotContains(t, loaded, secret.ID)
}
