// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"errors"
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
	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/objectstore"
	"github.com/taibuivan/vidtube/internal/users/account"
	"github.com/taibuivan/vidtube/internal/users/auth"
	"github.com/taibuivan/vidtube/internal/view"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

type memoryAccounts struct {
	mu    sync.Mutex
	users map[string]*auth.User
}

func (m *memoryAccounts) FindByID(_ context.Context, id string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	clone := *user
	return &clone, nil
}

func (m *memoryAccounts) UpdateDetails(ctx context.Context, id, fullName, email string) (*auth.User, error) {
	m.mu.Lock()
	for otherID, other := range m.users {
		if otherID != id && other.Email == email {
			m.mu.Unlock()
			return nil, apperr.Conflict("Email is already in use")
		}
	}
	m.users[id].FullName = fullName
	m.users[id].Email = email
	m.mu.Unlock()
	return m.FindByID(ctx, id)
}

func (m *memoryAccounts) UpdateImage(ctx context.Context, id string, image account.Image, url string) (*auth.User, error) {
	m.mu.Lock()
	if image == account.ImageAvatar {
		m.users[id].AvatarURL = url
	} else {
		m.users[id].CoverImageURL = url
	}
	m.mu.Unlock()
	return m.FindByID(ctx, id)
}

type memoryHistory struct {
	mu      sync.Mutex
	clock   int
	entries map[string]map[string]time.Time
}

func (m *memoryHistory) Record(_ context.Context, userID, videoID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clock++
	if m.entries[userID] == nil {
		m.entries[userID] = make(map[string]time.Time)
	}
	m.entries[userID][videoID] = time.Date(2026, 3, 1, 0, 0, m.clock, 0, time.UTC)
	return nil
}

func (m *memoryHistory) List(_ context.Context, userID string, oldestFirst bool, page pagination.Params) ([]account.HistoryEntry, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []account.HistoryEntry
	for videoID, at := range m.entries[userID] {
		all = append(all, account.HistoryEntry{VideoID: videoID, WatchedAt: at})
	}
	sort.Slice(all, func(i, j int) bool {
		if oldestFirst {
			return all[i].WatchedAt.Before(all[j].WatchedAt)
		}
		return all[i].WatchedAt.After(all[j].WatchedAt)
	})
	start, end := page.Bounds(len(all))
	return all[start:end], len(all), nil
}

type videoCatalog map[string]*video.Video

func (c videoCatalog) FindVisible(_ context.Context, ids []string, viewerID string) ([]*video.Video, error) {
	var out []*video.Video
	for _, id := range ids {
		if v, ok := c[id]; ok && v.VisibleTo(viewerID) {
			clone := *v
			out = append(out, &clone)
		}
	}
	return out, nil
}

type passwordRecorder struct {
	calls int
}

func (p *passwordRecorder) ChangePassword(_ context.Context, _, oldPassword, _ string) error {
	p.calls++
	if oldPassword != "correct-password" {
		return apperr.InvalidRequest("invalid old password")
	}
	return nil
}

type recordingUploader struct {
	keys []string
}

func (r *recordingUploader) Upload(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	r.keys = append(r.keys, key)
	return "https://cdn.test/" + key, nil
}

type invalidations struct {
	ids  []string
	fail bool
}

func (i *invalidations) Invalidate(_ context.Context, userID string) error {
	i.ids = append(i.ids, userID)
	if i.fail {
		return errors.New("redis down")
	}
	return nil
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
	viewer  = "0190c000-0000-7000-8000-000000000001"
	creator = "0190c000-0000-7000-8000-000000000002"
	first   = "0190a000-0000-7000-8000-000000000001"
	second  = "0190a000-0000-7000-8000-000000000002"
	hidden  = "0190a000-0000-7000-8000-000000000003"
	removed = "0190a000-0000-7000-8000-000000000004"
)

type fixture struct {
	service       *account.Service
	accounts      *memoryAccounts
	history       *memoryHistory
	passwords     *passwordRecorder
	uploader      *recordingUploader
	invalidations *invalidations
}

func newFixture() *fixture {
	f := &fixture{
		accounts: &memoryAccounts{users: map[string]*auth.User{
			viewer:  {ID: viewer, Username: "viewer", Email: "viewer@vidtube.dev", FullName: "Viewer"},
			creator: {ID: creator, Username: "creator", Email: "creator@vidtube.dev", FullName: "Creator"},
		}},
		history:       &memoryHistory{entries: make(map[string]map[string]time.Time)},
		passwords:     &passwordRecorder{},
		uploader:      &recordingUploader{},
		invalidations: &invalidations{},
	}

	f.service = account.NewService(account.Dependencies{
		Accounts: f.accounts,
		History:  f.history,
		Videos: videoCatalog{
			first:  {ID: first, OwnerID: creator, Title: "First", IsPublished: true},
			second: {ID: second, OwnerID: creator, Title: "Second", IsPublished: true},
			hidden: {ID: hidden, OwnerID: creator, Title: "Hidden", IsPublished: false},
		},
		Passwords: f.passwords,
		Uploader:  f.uploader,
		Profiles:  f.invalidations,
		Composer: view.NewComposer(profiles{
			viewer:  {ID: viewer, Username: "viewer"},
			creator: {ID: creator, Username: "creator"},
		}),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return f
}

/*
TestService_UpdateDetails verifies normalization, conflicts and cache
invalidation.
*/
func TestService_UpdateDetails(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	user, err := f.service.UpdateDetails(ctx, viewer, account.DetailsInput{FullName: "  New Name ", Email: " New@Vidtube.dev "})
	require.NoError(t, err)
	assert.Equal(t, "New Name", user.FullName)
	assert.Equal(t, "new@vidtube.dev", user.Email)
	assert.Equal(t, []string{viewer}, f.invalidations.ids)

	_, err = f.service.UpdateDetails(ctx, viewer, account.DetailsInput{FullName: "x", Email: "creator@vidtube.dev"})
	assert.True(t, apperr.IsConflict(err))

	_, err = f.service.UpdateDetails(ctx, viewer, account.DetailsInput{FullName: "", Email: "bad"})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

/*
TestService_ReplaceImage verifies uploads land in the right column and a
failing cache never fails the request.
*/
func TestService_ReplaceImage(t *testing.T) {
	f := newFixture()
	f.invalidations.fail = true
	ctx := context.Background()

	user, err := f.service.ReplaceImage(ctx, viewer, account.ImageAvatar, &objectstore.File{
		Body: strings.NewReader("png"), Name: "me.png", ContentType: "image/png",
	})
	require.NoError(t, err)
	require.Len(t, f.uploader.keys, 1)
	assert.True(t, strings.HasPrefix(f.uploader.keys[0], "avatars/"))
	assert.Equal(t, "https://cdn.test/"+f.uploader.keys[0], user.AvatarURL)
	assert.Empty(t, user.CoverImageURL)

	user, err = f.service.ReplaceImage(ctx, viewer, account.ImageCover, &objectstore.File{
		Body: strings.NewReader("jpg"), Name: "cover.jpg", ContentType: "image/jpeg",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(f.uploader.keys[1], "covers/"))
	assert.NotEmpty(t, user.CoverImageURL)
	assert.Len(t, f.invalidations.ids, 2)

	_, err = f.service.ReplaceImage(ctx, viewer, account.ImageAvatar, nil)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func TestService_ChangePassword(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	err := f.service.ChangePassword(ctx, viewer, "correct-password", "short")
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	assert.Zero(t, f.passwords.calls)

	err = f.service.ChangePassword(ctx, viewer, "wrong-password", "long-enough-password")
	assert.True(t, apperr.HasCode(err, apperr.CodeInvalidRequest))

	require.NoError(t, f.service.ChangePassword(ctx, viewer, "correct-password", "long-enough-password"))
	assert.Equal(t, 2, f.passwords.calls)
}

/*
TestService_History verifies both orderings, rewatch bumping and the
visibility filter.
*/
func TestService_History(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for _, id := range []string{first, hidden, second, removed, first} {
		require.NoError(t, f.history.Record(ctx, viewer, id))
	}

	newest, total, err := f.service.History(ctx, viewer, false, pagination.All())
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	require.Len(t, newest, 2)
	assert.Equal(t, first, newest[0].ID)
	assert.Equal(t, second, newest[1].ID)
	require.NotNil(t, newest[0].Owner)
	assert.Equal(t, "creator", newest[0].Owner.Username)

	oldest, _, err := f.service.History(ctx, viewer, true, pagination.All())
	require.NoError(t, err)
	require.Len(t, oldest, 2)
	assert.Equal(t, second, oldest[0].ID)
	assert.Equal(t, first, oldest[1].ID)

	empty, total, err := f.service.History(ctx, creator, false, pagination.All())
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, empty)
}
