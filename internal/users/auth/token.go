// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/sec"
	"github.com/taibuivan/vidtube/pkg/uuid"
)

// # Token Pair

// TokenPair is the credential set handed to a client after login or refresh.
type TokenPair struct {
	AccessToken           string    `json:"access_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshToken          string    `json:"refresh_token"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
}

// # Token Service

// TokenService issues, verifies, rotates and revokes session credentials.
//
// The user row holds the digest of the single refresh token currently
// honoured. Issuing overwrites it; rotation swaps it atomically; revoking
// clears it.
type TokenService struct {
	users      UserRepository
	access     *sec.Signer
	refresh    *sec.Signer
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     *slog.Logger
}

// TokenConfig carries the signers and lifetimes of both token kinds.
type TokenConfig struct {
	Access     *sec.Signer
	Refresh    *sec.Signer
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// NewTokenService constructs a [TokenService].
func NewTokenService(users UserRepository, cfg TokenConfig, logger *slog.Logger) *TokenService {
	return &TokenService{
		users:      users,
		access:     cfg.Access,
		refresh:    cfg.Refresh,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		logger:     logger,
	}
}

/*
IssueTokenPair signs a fresh access/refresh pair and stores the refresh digest.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *TokenPair: Signed credentials
  - error: apperr.NotFound for an unknown user, apperr.Internal on storage failure
*/
func (service *TokenService) IssueTokenPair(context context.Context, userID string) (*TokenPair, error) {
	user, err := service.users.FindByID(context, userID)
	if err != nil {
		return nil, apperr.Ensure(err)
	}
	return service.issue(context, user)
}

func (service *TokenService) issue(context context.Context, user *User) (*TokenPair, error) {
	pair, err := service.sign(user)
	if err != nil {
		return nil, err
	}

	if err := service.users.SetRefreshToken(context, user.ID, sec.HashToken(pair.RefreshToken)); err != nil {
		return nil, apperr.Ensure(fmt.Errorf("auth_token_store_failed: %w", err))
	}

	return pair, nil
}

// sign produces both tokens. The refresh token carries a random jti so two
// pairs issued within the same second never share a digest.
func (service *TokenService) sign(user *User) (*TokenPair, error) {
	accessToken, accessExpiry, err := service.access.Sign(sec.AuthClaims{
		UserID:   user.ID,
		Username: user.Username,
	}, service.accessTTL)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_token_sign_access_failed: %w", err))
	}

	refreshClaims := sec.AuthClaims{UserID: user.ID}
	refreshClaims.ID = uuid.New()

	refreshToken, refreshExpiry, err := service.refresh.Sign(refreshClaims, service.refreshTTL)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_token_sign_refresh_failed: %w", err))
	}

	return &TokenPair{
		AccessToken:           accessToken,
		AccessTokenExpiresAt:  accessExpiry,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: refreshExpiry,
	}, nil
}

/*
VerifyAccessToken checks an access token and returns the user it names.

Returns:
  - string: User ID
  - error: apperr.Unauthorized for any missing, malformed, expired or foreign token
*/
func (service *TokenService) VerifyAccessToken(token string) (string, error) {
	claims, err := service.access.Verify(token)
	if err != nil {
		return "", apperr.Unauthorized(msgInvalidAccessToken)
	}
	return claims.UserID, nil
}

/*
RotateFromRefreshToken exchanges a valid refresh token for a new pair.

Description: A token whose digest differs from the stored one is refused
without touching storage. Otherwise the stored digest is replaced with a
single conditional UPDATE. When the swap matches no row the presented token is either stale (already
rotated or revoked) or belongs to a user that no longer exists.

Parameters:
  - context: context.Context
  - token: string (Presented refresh token)

Returns:
  - *TokenPair: New credentials; the presented token is no longer honoured
  - error: apperr.Unauthorized on any verification or swap failure
*/
func (service *TokenService) RotateFromRefreshToken(context context.Context, token string) (*TokenPair, error) {
	claims, err := service.refresh.Verify(token)
	if err != nil {
		return nil, apperr.Unauthorized(msgInvalidRefreshToken)
	}

	user, err := service.users.FindByID(context, claims.UserID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized(msgInvalidRefreshToken)
		}
		return nil, apperr.Ensure(err)
	}

	// Stale tokens are turned away before signing; the swap below still
	// settles races between two holders of the current token.
	if !sec.TokenMatches(token, user.RefreshTokenHash) {
		service.logger.WarnContext(context, "refresh_token_reuse_detected", slog.String("user_id", user.ID))
		return nil, apperr.Unauthorized(msgRefreshReused)
	}

	pair, err := service.sign(user)
	if err != nil {
		return nil, err
	}

	swapped, err := service.users.SwapRefreshToken(context, user.ID, sec.HashToken(token), sec.HashToken(pair.RefreshToken))
	if err != nil {
		return nil, apperr.Ensure(fmt.Errorf("auth_token_rotate_failed: %w", err))
	}

	if !swapped {
		service.logger.WarnContext(context, "refresh_token_reuse_detected", slog.String("user_id", user.ID))
		return nil, apperr.Unauthorized(msgRefreshReused)
	}

	return pair, nil
}

// Revoke clears the stored refresh token. Revoking twice is not an error.
func (service *TokenService) Revoke(context context.Context, userID string) error {
	if err := service.users.ClearRefreshToken(context, userID); err != nil {
		return apperr.Ensure(fmt.Errorf("auth_token_revoke_failed: %w", err))
	}
	return nil
}
