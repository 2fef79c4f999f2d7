// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # Authentication Constraints

const (
	// PasswordMinLength is the minimum accepted password length.
	PasswordMinLength = 8

	// PasswordMaxLength stays under bcrypt's 72-byte input limit.
	PasswordMaxLength = 72

	// UsernameMinLength and UsernameMaxLength bound channel handles.
	UsernameMinLength = 3
	UsernameMaxLength = 30

	// FullNameMaxLength bounds display names.
	FullNameMaxLength = 80
)

// # Storage Prefixes

const (
	avatarPrefix = "avatars"
	coverPrefix  = "covers"
)

// # Messages

// Client-facing messages for credential failures.
const (
	msgUserNotFound        = "user does not exist"
	msgInvalidCredentials  = "invalid user credentials"
	msgInvalidAccessToken  = "Invalid access token"
	msgInvalidRefreshToken = "invalid refresh token"
	msgRefreshReused       = "refresh token expired or reused"
	msgUnauthorizedRequest = "unauthorized request"
)
