// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/constants"
	"github.com/taibuivan/vidtube/internal/platform/sec"
	"github.com/taibuivan/vidtube/internal/users/auth"
)

// memoryUsers is an in-memory UserRepository.
type memoryUsers struct {
	mu    sync.Mutex
	users map[string]*auth.User
	swaps int
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: make(map[string]*auth.User)}
}

func (m *memoryUsers) find(match func(*auth.User) bool) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if match(user) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (m *memoryUsers) FindByID(_ context.Context, id string) (*auth.User, error) {
	return m.find(func(u *auth.User) bool { return u.ID == id })
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	return m.find(func(u *auth.User) bool { return u.Email == email })
}

func (m *memoryUsers) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	return m.find(func(u *auth.User) bool { return u.Username == username })
}

func (m *memoryUsers) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	_, err := m.find(func(u *auth.User) bool { return u.Username == username || u.Email == email })
	return err == nil, nil
}

func (m *memoryUsers) Create(_ context.Context, user *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return apperr.Conflict("User with email or username already exists")
		}
	}
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *memoryUsers) SetRefreshToken(_ context.Context, userID, digest string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.RefreshTokenHash = digest
	return nil
}

func (m *memoryUsers) SwapRefreshToken(_ context.Context, userID, expected, replacement string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.swaps++
	user, ok := m.users[userID]
	if !ok || user.RefreshTokenHash == "" || user.RefreshTokenHash != expected {
		return false, nil
	}
	user.RefreshTokenHash = replacement
	return true, nil
}

func (m *memoryUsers) ClearRefreshToken(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.users[userID]; ok {
		user.RefreshTokenHash = ""
	}
	return nil
}

func (m *memoryUsers) UpdatePassword(_ context.Context, userID, newHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.PasswordHash = newHash
	return nil
}

func (m *memoryUsers) remove(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, userID)
}

// recordingUploader stores uploads in memory and returns predictable URLs.
type recordingUploader struct {
	mu   sync.Mutex
	keys []string
}

func (r *recordingUploader) Upload(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = append(r.keys, key)
	return "https://cdn.test/" + key, nil
}

type fixture struct {
	users    *memoryUsers
	uploader *recordingUploader
	tokens   *auth.TokenService
	service  *auth.Service
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSigners(t *testing.T) (*sec.Signer, *sec.Signer) {
	t.Helper()
	access, err := sec.NewSigner("access-secret", constants.AuthIssuer, sec.TokenTypeAccess)
	require.NoError(t, err)
	refresh, err := sec.NewSigner("refresh-secret", constants.AuthIssuer, sec.TokenTypeRefresh)
	require.NoError(t, err)
	return access, refresh
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	access, refresh := newSigners(t)

	users := newMemoryUsers()
	uploader := &recordingUploader{}
	tokens := auth.NewTokenService(users, auth.TokenConfig{
		Access:     access,
		Refresh:    refresh,
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 240 * time.Hour,
	}, discardLogger())

	return &fixture{
		users:    users,
		uploader: uploader,
		tokens:   tokens,
		service:  auth.NewService(users, tokens, uploader, discardLogger()),
	}
}

func (f *fixture) register(t *testing.T, username, email, password string) *auth.User {
	t.Helper()
	user, err := f.service.Register(context.Background(), auth.RegisterInput{
		Username: username,
		Email:    email,
		FullName: "Test User",
		Password: password,
	})
	require.NoError(t, err)
	return user
}
