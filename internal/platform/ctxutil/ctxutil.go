// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ctxutil carries per-request values through [context.Context].

Middleware writes the request id, the scoped logger and the authenticated
viewer once; handlers and services read them back with the Get helpers.
The key type is unexported so no other package can collide with or forge
these values.
*/
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/vidtube/internal/platform/sec"
)

type contextKey uint8

const (
	requestIDKey contextKey = iota
	loggerKey
	principalKey
)

// # Tracing

// WithRequestID tags ctx with the X-Request-ID of the current call.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID returns the request id, or "" outside an HTTP request.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// # Logging

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger falls back to [slog.Default] so background jobs can log too.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// # Viewer

// WithPrincipal attaches the viewer resolved from the access token.
func WithPrincipal(ctx context.Context, principal *sec.Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

// GetPrincipal returns the signed-in viewer, or nil for anonymous calls.
func GetPrincipal(ctx context.Context) *sec.Principal {
	principal, _ := ctx.Value(principalKey).(*sec.Principal)
	return principal
}

// GetUserID is the viewer's id, or "" when anonymous. Services use it to
// decide visibility of unpublished videos and the is_liked flags.
func GetUserID(ctx context.Context) string {
	if principal := GetPrincipal(ctx); principal != nil {
		return principal.UserID
	}
	return ""
}
