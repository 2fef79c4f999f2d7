// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidtube/internal/content/comment"
	"github.com/taibuivan/vidtube/internal/content/video"
	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/middleware"
	"github.com/taibuivan/vidtube/internal/platform/sec"
	"github.com/taibuivan/vidtube/internal/view"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

type memoryComments struct {
	mu       sync.Mutex
	comments map[string]*comment.Comment
	clock    int
}

func (m *memoryComments) Create(_ context.Context, c *comment.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clock++
	c.CreatedAt = time.Date(2026, 2, 1, 0, 0, m.clock, 0, time.UTC)
	clone := *c
	m.comments[c.ID] = &clone
	return nil
}

func (m *memoryComments) FindByID(_ context.Context, id string) (*comment.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.comments[id]
	if !ok {
		return nil, apperr.NotFound("Comment")
	}
	clone := *c
	return &clone, nil
}

func (m *memoryComments) FindByIDs(ctx context.Context, ids []string) ([]*comment.Comment, error) {
	var out []*comment.Comment
	for _, id := range ids {
		if c, err := m.FindByID(ctx, id); err == nil {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memoryComments) ListByVideo(_ context.Context, videoID string, page pagination.Params) ([]*comment.Comment, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []*comment.Comment
	for _, c := range m.comments {
		if c.VideoID == videoID {
			clone := *c
			all = append(all, &clone)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	start, end := page.Bounds(len(all))
	return all[start:end], len(all), nil
}

func (m *memoryComments) UpdateContent(_ context.Context, c *comment.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *c
	m.comments[c.ID] = &clone
	return nil
}

func (m *memoryComments) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.comments, id)
	return nil
}

type videoSet map[string]video.Video

func (s videoSet) FindVisibleByID(_ context.Context, id, viewerID string) (*video.Video, error) {
	found, ok := s[id]
	if !ok || !found.VisibleTo(viewerID) {
		return nil, apperr.NotFound("Video")
	}
	return &found, nil
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

// tokenResolver maps fixed bearer tokens to users.
type tokenResolver map[string]string

func (r tokenResolver) ResolvePrincipal(_ context.Context, token string) (*sec.Principal, error) {
	userID, ok := r[token]
	if !ok {
		return nil, apperr.Unauthorized("Invalid access token")
	}
	return &sec.Principal{UserID: userID}, nil
}

const (
	videoID  = "0190a000-0000-7000-8000-00000000000a"
	draftID  = "0190a000-0000-7000-8000-00000000000d"
	author   = "0190c000-0000-7000-8000-000000000001"
	stranger = "0190c000-0000-7000-8000-000000000002"
)

func newService() (*comment.Service, *memoryComments) {
	repo := &memoryComments{comments: make(map[string]*comment.Comment)}
	composer := view.NewComposer(profiles{
		author:   {ID: author, Username: "author"},
		stranger: {ID: stranger, Username: "stranger"},
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	videos := videoSet{
		videoID: {ID: videoID, OwnerID: author, IsPublished: true},
		draftID: {ID: draftID, OwnerID: author},
	}
	return comment.NewService(repo, videos, composer, logger), repo
}

/*
TestService_Lifecycle verifies add, list, owner-only edits and deletion.
*/
func TestService_Lifecycle(t *testing.T) {
	service, repo := newService()
	ctx := context.Background()

	first, err := service.Add(ctx, author, videoID, "  first!  ")
	require.NoError(t, err)
	assert.Equal(t, "first!", first.Content)
	require.NotNil(t, first.Owner)
	assert.Equal(t, "author", first.Owner.Username)

	second, err := service.Add(ctx, stranger, videoID, "second")
	require.NoError(t, err)

	comments, total, err := service.List(ctx, videoID, "", pagination.All())
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, comments, 2)
	assert.Equal(t, second.ID, comments[0].ID)
	assert.Equal(t, "stranger", comments[0].Owner.Username)

	_, err = service.Update(ctx, stranger, first.ID, "hijack")
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	updated, err := service.Update(ctx, author, first.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	assert.True(t, apperr.HasCode(service.Delete(ctx, stranger, first.ID), apperr.CodeForbidden))
	require.NoError(t, service.Delete(ctx, author, first.ID))
	assert.Len(t, repo.comments, 1)
}

/*
TestService_Rejections verifies empty content and unknown videos.
*/
func TestService_Rejections(t *testing.T) {
	service, repo := newService()
	ctx := context.Background()

	_, err := service.Add(ctx, author, videoID, "   ")
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = service.Add(ctx, author, "0190a000-0000-7000-8000-0000000000ff", "hello")
	assert.True(t, apperr.IsNotFound(err))

	_, _, err = service.List(ctx, "0190a000-0000-7000-8000-0000000000ff", author, pagination.All())
	assert.True(t, apperr.IsNotFound(err))

	assert.Empty(t, repo.comments)
}

/*
TestService_UnpublishedVideo verifies only the owner of a draft can read or
write its comments.
*/
func TestService_UnpublishedVideo(t *testing.T) {
	service, repo := newService()
	ctx := context.Background()

	_, err := service.Add(ctx, stranger, draftID, "sneak peek")
	assert.True(t, apperr.IsNotFound(err))
	assert.Empty(t, repo.comments)

	_, err = service.Add(ctx, author, draftID, "note to self")
	require.NoError(t, err)

	_, _, err = service.List(ctx, draftID, stranger, pagination.All())
	assert.True(t, apperr.IsNotFound(err))
	_, _, err = service.List(ctx, draftID, "", pagination.All())
	assert.True(t, apperr.IsNotFound(err))

	comments, total, err := service.List(ctx, draftID, author, pagination.All())
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, comments, 1)
}

/*
TestHandler_AddRequiresAuth verifies the router wiring of the guards.
*/
func TestHandler_AddRequiresAuth(t *testing.T) {
	service, _ := newService()
	guard := middleware.NewGuard(tokenResolver{"author-token": author})
	router := comment.NewHandler(service).Routes(guard)

	request := httptest.NewRequest(http.MethodPost, "/"+videoID, strings.NewReader(`{"content":"hi"}`))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	request = httptest.NewRequest(http.MethodPost, "/"+videoID, strings.NewReader(`{"content":"hi"}`))
	request.Header.Set("Authorization", "Bearer author-token")
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	request = httptest.NewRequest(http.MethodGet, "/"+videoID+"?page=1&limit=5", nil)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"total":1`)

	request = httptest.NewRequest(http.MethodGet, "/not-a-uuid", nil)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	request = httptest.NewRequest(http.MethodGet, "/"+draftID, nil)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	request = httptest.NewRequest(http.MethodGet, "/"+draftID, nil)
	request.Header.Set("Authorization", "Bearer author-token")
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
}
