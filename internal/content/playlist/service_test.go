// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package playlist_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidtube/internal/content/playlist"
	"github.com/taibuivan/vidtube/internal/content/video"
	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/view"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

type memoryPlaylists struct {
	mu        sync.Mutex
	playlists map[string]*playlist.Playlist
	members   map[string][]string
}

func (m *memoryPlaylists) Create(_ context.Context, p *playlist.Playlist) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *p
	m.playlists[p.ID] = &clone
	return nil
}

func (m *memoryPlaylists) FindByID(_ context.Context, id string) (*playlist.Playlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.playlists[id]
	if !ok {
		return nil, apperr.NotFound("Playlist")
	}
	clone := *p
	clone.VideoCount = len(m.members[id])
	return &clone, nil
}

func (m *memoryPlaylists) ListByOwner(_ context.Context, ownerID string, page pagination.Params) ([]*playlist.Playlist, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []*playlist.Playlist
	for _, p := range m.playlists {
		if p.OwnerID == ownerID {
			clone := *p
			all = append(all, &clone)
		}
	}
	start, end := page.Bounds(len(all))
	return all[start:end], len(all), nil
}

func (m *memoryPlaylists) VideoIDs(_ context.Context, playlistID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.members[playlistID]...), nil
}

func (m *memoryPlaylists) AddVideo(_ context.Context, playlistID, videoID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range m.members[playlistID] {
		if id == videoID {
			return false, nil
		}
	}
	m.members[playlistID] = append(m.members[playlistID], videoID)
	return true, nil
}

func (m *memoryPlaylists) RemoveVideo(_ context.Context, playlistID, videoID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := m.members[playlistID]
	for i, id := range ids {
		if id == videoID {
			m.members[playlistID] = append(ids[:i:i], ids[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryPlaylists) UpdateDetails(_ context.Context, p *playlist.Playlist) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *p
	m.playlists[p.ID] = &clone
	return nil
}

func (m *memoryPlaylists) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.playlists, id)
	delete(m.members, id)
	return nil
}

type videoCatalog map[string]*video.Video

func (c videoCatalog) FindVisibleByID(_ context.Context, id, viewerID string) (*video.Video, error) {
	v, ok := c[id]
	if !ok || !v.VisibleTo(viewerID) {
		return nil, apperr.NotFound("Video")
	}
	clone := *v
	return &clone, nil
}

func (c videoCatalog) FindVisible(ctx context.Context, ids []string, viewerID string) ([]*video.Video, error) {
	var out []*video.Video
	for _, id := range ids {
		if v, err := c.FindVisibleByID(ctx, id, viewerID); err == nil {
			out = append(out, v)
		}
	}
	return out, nil
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
	curator  = "0190c000-0000-7000-8000-000000000001"
	creator  = "0190c000-0000-7000-8000-000000000002"
	intro    = "0190a000-0000-7000-8000-000000000001"
	outro    = "0190a000-0000-7000-8000-000000000002"
	draft    = "0190a000-0000-7000-8000-000000000003"
	unknownV = "0190a000-0000-7000-8000-0000000000ff"
)

func newService() (*playlist.Service, *memoryPlaylists) {
	repo := &memoryPlaylists{
		playlists: make(map[string]*playlist.Playlist),
		members:   make(map[string][]string),
	}
	catalog := videoCatalog{
		intro: {ID: intro, OwnerID: creator, Title: "Intro", IsPublished: true},
		outro: {ID: outro, OwnerID: curator, Title: "Outro", IsPublished: true},
		draft: {ID: draft, OwnerID: creator, Title: "Draft", IsPublished: false},
	}
	composer := view.NewComposer(profiles{
		curator: {ID: curator, Username: "curator"},
		creator: {ID: creator, Username: "creator"},
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return playlist.NewService(repo, catalog, composer, logger), repo
}

/*
TestService_Membership verifies ordering and idempotent adds.
*/
func TestService_Membership(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	created, err := service.Create(ctx, curator, playlist.Details{Name: " Mix ", Description: "favourites"})
	require.NoError(t, err)
	assert.Equal(t, "Mix", created.Name)
	require.NotNil(t, created.Owner)
	assert.Equal(t, "curator", created.Owner.Username)

	for _, id := range []string{outro, intro, intro} {
		_, err := service.AddVideo(ctx, curator, created.ID, id)
		require.NoError(t, err)
	}

	got, err := service.Get(ctx, created.ID, "")
	require.NoError(t, err)
	require.Len(t, got.Videos, 2)
	assert.Equal(t, outro, got.Videos[0].ID)
	assert.Equal(t, intro, got.Videos[1].ID)
	assert.Equal(t, "creator", got.Videos[1].Owner.Username)
	assert.Equal(t, 2, got.VideoCount)

	after, err := service.RemoveVideo(ctx, curator, created.ID, outro)
	require.NoError(t, err)
	require.Len(t, after.Videos, 1)
	assert.Equal(t, intro, after.Videos[0].ID)

	_, err = service.RemoveVideo(ctx, curator, created.ID, outro)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestService_UnpublishedVideos verifies another owner's draft cannot be added
and that a draft inside its owner's playlist is shown only to that owner.
*/
func TestService_UnpublishedVideos(t *testing.T) {
	service, repo := newService()
	ctx := context.Background()

	mix, err := service.Create(ctx, curator, playlist.Details{Name: "Mix", Description: "d"})
	require.NoError(t, err)
	_, err = service.AddVideo(ctx, curator, mix.ID, draft)
	assert.True(t, apperr.IsNotFound(err))
	assert.Empty(t, repo.members[mix.ID])

	reel, err := service.Create(ctx, creator, playlist.Details{Name: "Reel", Description: "d"})
	require.NoError(t, err)
	for _, id := range []string{intro, draft} {
		_, err := service.AddVideo(ctx, creator, reel.ID, id)
		require.NoError(t, err)
	}

	public, err := service.Get(ctx, reel.ID, curator)
	require.NoError(t, err)
	require.Len(t, public.Videos, 1)
	assert.Equal(t, intro, public.Videos[0].ID)

	own, err := service.Get(ctx, reel.ID, creator)
	require.NoError(t, err)
	assert.Len(t, own.Videos, 2)
}

/*
TestService_OwnerOnly verifies that only the owner may change a playlist.
*/
func TestService_OwnerOnly(t *testing.T) {
	service, repo := newService()
	ctx := context.Background()

	created, err := service.Create(ctx, curator, playlist.Details{Name: "Mix", Description: "d"})
	require.NoError(t, err)

	_, err = service.AddVideo(ctx, creator, created.ID, intro)
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	_, err = service.AddVideo(ctx, curator, created.ID, unknownV)
	assert.True(t, apperr.IsNotFound(err))

	_, err = service.Update(ctx, creator, created.ID, playlist.Details{Name: "x", Description: "y"})
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	updated, err := service.Update(ctx, curator, created.ID, playlist.Details{Name: "Renamed", Description: "new"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	assert.True(t, apperr.HasCode(service.Delete(ctx, creator, created.ID), apperr.CodeForbidden))
	require.NoError(t, service.Delete(ctx, curator, created.ID))
	assert.Empty(t, repo.playlists)

	_, err = service.Get(ctx, created.ID, curator)
	assert.True(t, apperr.IsNotFound(err))
}

func TestService_CreateValidation(t *testing.T) {
	service, _ := newService()

	_, err := service.Create(context.Background(), curator, playlist.Details{Name: "  ", Description: "d"})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = service.Create(context.Background(), curator, playlist.Details{Name: "n"})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func TestService_ListByOwner(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	for _, name := range []string{"a", "b"} {
		_, err := service.Create(ctx, curator, playlist.Details{Name: name, Description: "d"})
		require.NoError(t, err)
	}
	_, err := service.Create(ctx, creator, playlist.Details{Name: "c", Description: "d"})
	require.NoError(t, err)

	playlists, total, err := service.ListByOwner(ctx, curator, pagination.All())
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	for _, p := range playlists {
		assert.Equal(t, "curator", p.Owner.Username)
	}
}
