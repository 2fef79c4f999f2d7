// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/objectstore"
	"github.com/taibuivan/vidtube/internal/platform/sec"
	"github.com/taibuivan/vidtube/pkg/identity"
	"github.com/taibuivan/vidtube/pkg/uuid"
)

// # Service

// Service implements the account entry points: registration, login, logout
// and resolution of request credentials into a [sec.Principal].
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	users    UserRepository
	tokens   *TokenService
	uploader objectstore.Uploader
	logger   *slog.Logger
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(users UserRepository, tokens *TokenService, uploader objectstore.Uploader, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		tokens:   tokens,
		uploader: uploader,
		logger:   logger,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username   string
	Email      string
	FullName   string
	Password   string
	Avatar     *objectstore.File
	CoverImage *objectstore.File
}

/*
Register normalizes, hashes, and persists a brand new user account.

Description: Identifiers are normalized before the uniqueness check so that
case or width variants of an existing handle collide. Images are uploaded
only after the identity is known to be free.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: Conflict (if identity exists), upload or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	username := identity.Username(input.Username)
	email := identity.Email(input.Email)

	taken, err := service.users.ExistsByUsernameOrEmail(context, username, email)
	if err != nil {
		return nil, apperr.Ensure(err)
	}
	if taken {
		return nil, apperr.Conflict("User with email or username already exists")
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_hash_failed: %w", err))
	}

	avatarURL, err := objectstore.Put(context, service.uploader, avatarPrefix, input.Avatar)
	if err != nil {
		return nil, apperr.Ensure(fmt.Errorf("auth_service_avatar_upload_failed: %w", err))
	}

	coverURL, err := objectstore.Put(context, service.uploader, coverPrefix, input.CoverImage)
	if err != nil {
		return nil, apperr.Ensure(fmt.Errorf("auth_service_cover_upload_failed: %w", err))
	}

	user := &User{
		ID:            uuid.New(),
		Username:      username,
		Email:         email,
		FullName:      input.FullName,
		AvatarURL:     avatarURL,
		CoverImageURL: coverURL,
		PasswordHash:  hashedPassword,
	}

	if err := service.users.Create(context, user); err != nil {
		return nil, apperr.Ensure(err)
	}

	service.logger.InfoContext(context, "user_registered", slog.String("user_id", user.ID))
	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	// Login is a username or an email address.
	Login    string
	Password string
}

// LoginResult is the user together with a freshly issued pair.
type LoginResult struct {
	User   *User      `json:"user"`
	Tokens *TokenPair `json:"tokens"`
}

/*
Login validates user credentials and issues security tokens.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginResult: User and credentials
  - error: NotFound for an unknown identity, Unauthorized for a wrong password
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginResult, error) {
	var (
		user *User
		err  error
	)

	if identity.LooksLikeEmail(input.Login) {
		user, err = service.users.FindByEmail(context, identity.Email(input.Login))
	} else {
		user, err = service.users.FindByUsername(context, identity.Username(input.Login))
	}

	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFoundMsg(msgUserNotFound)
		}
		return nil, apperr.Ensure(err)
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized(msgInvalidCredentials)
	}

	pair, err := service.tokens.issue(context, user)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "user_logged_in", slog.String("user_id", user.ID))
	return &LoginResult{User: user, Tokens: pair}, nil
}

// Logout revokes the user's refresh token.
func (service *Service) Logout(context context.Context, userID string) error {
	return service.tokens.Revoke(context, userID)
}

// Refresh rotates the presented refresh token.
func (service *Service) Refresh(context context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, apperr.Unauthorized(msgUnauthorizedRequest)
	}
	return service.tokens.RotateFromRefreshToken(context, refreshToken)
}

/*
ResolvePrincipal verifies an access token and loads the identity it names.

Description: Used by the session middleware. The returned principal never
carries the password hash or the refresh token.

Returns:
  - *sec.Principal: Request identity
  - error: apperr.Unauthorized when the token is bad or the user is gone
*/
func (service *Service) ResolvePrincipal(context context.Context, accessToken string) (*sec.Principal, error) {
	userID, err := service.tokens.VerifyAccessToken(accessToken)
	if err != nil {
		return nil, err
	}

	user, err := service.users.FindByID(context, userID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized(msgInvalidAccessToken)
		}
		return nil, apperr.Ensure(err)
	}

	return user.Principal(), nil
}

// CurrentUser returns the stored account of the authenticated caller.
func (service *Service) CurrentUser(context context.Context, userID string) (*User, error) {
	user, err := service.users.FindByID(context, userID)
	if err != nil {
		return nil, apperr.Ensure(err)
	}
	return user, nil
}

/*
ChangePassword replaces the password after checking the current one.

Description: On success the refresh token is revoked, so other sessions have
to log in again once their access token expires.

Parameters:
  - context: context.Context
  - userID: string
  - oldPassword: string
  - newPassword: string

Returns:
  - error: InvalidRequest for a wrong current password, storage errors
*/
func (service *Service) ChangePassword(context context.Context, userID, oldPassword, newPassword string) error {
	user, err := service.users.FindByID(context, userID)
	if err != nil {
		return apperr.Ensure(err)
	}

	if !sec.CheckPasswordHash(oldPassword, user.PasswordHash) {
		return apperr.InvalidRequest("invalid old password")
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return apperr.Internal(fmt.Errorf("auth_service_hash_failed: %w", err))
	}

	if err := service.users.UpdatePassword(context, userID, hashedPassword); err != nil {
		return apperr.Ensure(err)
	}

	if err := service.tokens.Revoke(context, userID); err != nil {
		return err
	}

	service.logger.InfoContext(context, "user_password_changed", slog.String("user_id", userID))
	return nil
}
