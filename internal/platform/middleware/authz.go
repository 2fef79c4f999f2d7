// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/constants"
	"github.com/taibuivan/vidtube/internal/platform/ctxutil"
	"github.com/taibuivan/vidtube/internal/platform/respond"
	"github.com/taibuivan/vidtube/internal/platform/sec"
)

// PrincipalResolver turns a raw access token into the identity it names.
//
// Implementations verify the token and load the user without secrets. Every
// failure must be reported as an error; the middleware maps it to 401.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, accessToken string) (*sec.Principal, error)
}

// Guard bundles the two authentication gates handed to feature routers.
type Guard struct {
	// Optional admits anonymous requests but rejects a bad credential.
	Optional func(http.Handler) http.Handler
	// Required rejects any request without a valid credential.
	Required func(http.Handler) http.Handler
}

// NewGuard builds both gates around one resolver.
func NewGuard(resolver PrincipalResolver) Guard {
	return Guard{
		Optional: Authenticate(resolver),
		Required: RequireAuth(resolver),
	}
}

// ExtractToken returns the access token carried by the request.
//
// # Precedence
//  1. The 'accessToken' cookie, when present and non-empty.
//  2. The 'Authorization: Bearer <token>' header.
//
// The second return value is false when neither source carries anything.
func ExtractToken(request *http.Request) (string, bool) {
	if cookie, err := request.Cookie(constants.AccessTokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}

	header := strings.TrimSpace(request.Header.Get(constants.HeaderAuthorization))
	if header == "" {
		return "", false
	}

	// A header that is present but not a bearer credential still counts as
	// "a credential was sent" so the caller rejects it.
	if len(header) < len(constants.BearerPrefix) || !strings.EqualFold(header[:len(constants.BearerPrefix)], constants.BearerPrefix) {
		return "", true
	}
	return strings.TrimSpace(header[len(constants.BearerPrefix):]), true
}

// Authenticate resolves the credential when one is sent.
//
// # Flow
//  1. No cookie and no header: the request proceeds as anonymous.
//  2. A credential is present: it must resolve, otherwise 401 and downstream is not called.
//  3. On success the [*sec.Principal] is placed on the request context.
func Authenticate(resolver PrincipalResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			token, present := ExtractToken(request)
			if !present {
				next.ServeHTTP(writer, request)
				return
			}

			ctx, ok := resolve(writer, request, resolver, token)
			if !ok {
				return
			}
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks any request that does not carry a valid credential.
func RequireAuth(resolver PrincipalResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			token, present := ExtractToken(request)
			if !present || token == "" {
				respond.Error(writer, request, apperr.Unauthorized("Unauthorized request"))
				return
			}

			ctx, ok := resolve(writer, request, resolver, token)
			if !ok {
				return
			}
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// resolve runs the resolver and writes the 401 itself on failure.
func resolve(writer http.ResponseWriter, request *http.Request, resolver PrincipalResolver, token string) (context.Context, bool) {
	if token == "" {
		respond.Error(writer, request, apperr.Unauthorized("Invalid access token"))
		return nil, false
	}

	principal, err := resolver.ResolvePrincipal(request.Context(), token)
	if err != nil || principal == nil {
		ctxutil.GetLogger(request.Context()).DebugContext(request.Context(), "access_token_rejected", slog.Any("error", err))

		// Keep the resolver's message when it already chose a 401; never leak anything else.
		if ae := apperr.As(err); ae != nil && ae.Code == apperr.CodeUnauthorized {
			respond.Error(writer, request, ae)
		} else {
			respond.Error(writer, request, apperr.Unauthorized("Invalid access token"))
		}
		return nil, false
	}

	ctx := ctxutil.WithPrincipal(request.Context(), principal)
	ctx = ctxutil.WithLogger(ctx, ctxutil.GetLogger(ctx).With(slog.String("user_id", principal.UserID)))
	return ctx, true
}
