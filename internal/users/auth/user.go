// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user identity and session management layer.

It owns the credential store (users.account), the dual-token session
lifecycle and the HTTP entry points that create and end sessions.

# Architecture

  - User: the stored identity, including secrets that never leave this package.
  - TokenService: issues, verifies, rotates and revokes access/refresh pairs.
  - Service: registration, login, logout and principal resolution.
*/
package auth

import (
	"time"

	"github.com/taibuivan/vidtube/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Vidtube platform.
type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	FullName      string    `json:"full_name"`
	AvatarURL     string    `json:"avatar_url"`
	CoverImageURL string    `json:"cover_image_url"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Secrets are explicitly omitted from JSON.
	PasswordHash     string `json:"-"`
	RefreshTokenHash string `json:"-"`
}

// Principal projects the user into the identity attached to requests.
func (user *User) Principal() *sec.Principal {
	return &sec.Principal{
		UserID:        user.ID,
		Username:      user.Username,
		Email:         user.Email,
		FullName:      user.FullName,
		AvatarURL:     user.AvatarURL,
		CoverImageURL: user.CoverImageURL,
	}
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername     = "username"
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldFullName     = "full_name"
	FieldLogin        = "login"
	FieldAvatar       = "avatar"
	FieldCoverImage   = "cover_image"
	FieldOldPassword  = "old_password"
	FieldNewPassword  = "new_password"
	FieldRefreshToken = "refresh_token"
)
