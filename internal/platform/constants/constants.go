// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants holds the fixed values shared across Vidtube layers: server
timing, rate limits, cookie and header names, upload ceilings and cache keys.

Anything an operator may want to tune per environment belongs in config, not
here.
*/
package constants

import "time"

const (
	AppName    = "vidtube-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadHeaderTimeout protects against slow-loris clients.
	DefaultReadHeaderTimeout = 2 * time.Second

	// DefaultReadTimeout and DefaultWriteTimeout are sized for the largest
	// upload; ordinary requests are cut much earlier by GlobalRequestTimeout.
	DefaultReadTimeout  = 15 * time.Minute
	DefaultWriteTimeout = 16 * time.Minute
	DefaultIdleTimeout  = 2 * time.Minute

	// GlobalRequestTimeout is the handler deadline for non-upload requests and
	// the Postgres statement_timeout.
	GlobalRequestTimeout = 30 * time.Second

	// UploadTimeout is the handler deadline for multipart requests.
	UploadTimeout = 15 * time.Minute

	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	DefaultRateLimitRPS   = 100.0
	DefaultRateLimitBurst = 150

	// Idle IP buckets are forgotten after RateLimitClientTTL, checked every
	// RateLimitCleanupInterval.
	RateLimitCleanupInterval = time.Minute
	RateLimitClientTTL       = 3 * time.Minute
)

// # Session

const (
	AuthIssuer = "vidtube.api"

	AccessTokenCookieName  = "accessToken"
	RefreshTokenCookieName = "refreshToken"

	BearerPrefix = "Bearer "
)

// # Headers

const (
	HeaderAuthorization = "Authorization"
	HeaderOrigin        = "Origin"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
)

// # Uploads

const (
	// MaxUploadBytes bounds a video publish body (video plus thumbnail).
	MaxUploadBytes = 512 << 20

	// MaxImageBytes bounds avatar, cover and thumbnail replacements.
	MaxImageBytes = 8 << 20
)

// # Envelope keys used outside the respond package

const (
	FieldError   = "error"
	FieldCode    = "code"
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// RedisPrefixOwnerProfile namespaces cached owner profiles by user id.
const RedisPrefixOwnerProfile = "view:owner:"
