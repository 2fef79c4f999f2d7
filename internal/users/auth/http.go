// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vidtube/internal/platform/constants"
	"github.com/taibuivan/vidtube/internal/platform/middleware"
	requestutil "github.com/taibuivan/vidtube/internal/platform/request"
	"github.com/taibuivan/vidtube/internal/platform/respond"
	"github.com/taibuivan/vidtube/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages the session entry points (registration, login,
// logout, refresh) and the caller's own credentials.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register        : Creates a new account (multipart).
//   - POST /login           : Authenticates and sets session cookies.
//   - POST /refresh-token   : Rotates the refresh token.
//   - POST /logout          : Revokes the session.
//   - POST /change-password : Replaces the password.
//   - GET  /current-user    : Returns the caller.
func (handler *Handler) Routes(guard middleware.Guard) chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/refresh-token", handler.refresh)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(guard.Required)
		r.Post("/logout", handler.logout)
		r.Post("/change-password", handler.changePassword)
		r.Get("/current-user", handler.currentUser)
	})

	return router
}

// # Request Payloads

type loginRequest struct {
	Login    string `json:"login"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// identifier picks the first identifier the client sent.
func (input loginRequest) identifier() string {
	for _, candidate := range []string{input.Login, input.Email, input.Username} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

/*
Register handles the creation of a new user account.

POST /api/v1/users/register

Request:
  - Body: multipart form (username, email, full_name, password, avatar?, cover_image?)

Response:
  - 201: User: Created user profile
  - 400: Validation failure
  - 409: Username or Email already exists
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	if err := requestutil.ParseMultipart(writer, request, 2*constants.MaxImageBytes); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := RegisterInput{
		Username: requestutil.FormValue(request, FieldUsername),
		Email:    requestutil.FormValue(request, FieldEmail),
		FullName: requestutil.FormValue(request, FieldFullName),
		Password: request.FormValue(FieldPassword),
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, UsernameMinLength).
		MaxLen(FieldUsername, input.Username, UsernameMaxLength).
		Username(FieldUsername, input.Username).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldFullName, input.FullName).
		MaxLen(FieldFullName, input.FullName, FullNameMaxLength).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, PasswordMinLength).
		MaxLen(FieldPassword, input.Password, PasswordMaxLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	avatar, err := requestutil.FormFile(request, FieldAvatar)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if avatar != nil {
		defer avatar.File.Close()
		input.Avatar = avatar.Object()
	}

	cover, err := requestutil.FormFile(request, FieldCoverImage)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if cover != nil {
		defer cover.File.Close()
		input.CoverImage = cover.Object()
	}

	user, err := handler.authService.Register(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
Login authenticates a user and establishes a session.

POST /api/v1/users/login

Request:
  - Body: loginRequest (login | email | username, password)

Response:
  - 200: LoginResult, plus accessToken and refreshToken cookies
  - 401: Wrong password
  - 404: Unknown user
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldLogin, input.identifier())
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Login(request.Context(), LoginInput{
		Login:    input.identifier(),
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setSessionCookies(writer, result.Tokens)
	respond.Message(writer, result, "User logged in successfully")
}

/*
Logout revokes the refresh token and clears both cookies.

POST /api/v1/users/logout
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.Logout(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	clearSessionCookies(writer)
	respond.Message(writer, struct{}{}, "User logged out")
}

/*
Refresh exchanges a refresh token for a new pair.

POST /api/v1/users/refresh-token

Description: The token is read from the refreshToken cookie, falling back to
the JSON body.

Response:
  - 200: TokenPair, plus rotated cookies
  - 401: Missing, invalid, expired or reused token
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	var token string
	if cookie, err := request.Cookie(constants.RefreshTokenCookieName); err == nil {
		token = cookie.Value
	}

	if token == "" {
		var input refreshRequest
		if err := requestutil.DecodeOptionalJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}
		token = input.RefreshToken
	}

	pair, err := handler.authService.Refresh(request.Context(), token)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setSessionCookies(writer, pair)
	respond.Message(writer, pair, "Access token refreshed")
}

/*
ChangePassword replaces the caller's password.

POST /api/v1/users/change-password
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldOldPassword, input.OldPassword).
		Required(FieldNewPassword, input.NewPassword).
		MinLen(FieldNewPassword, input.NewPassword, PasswordMinLength).
		MaxLen(FieldNewPassword, input.NewPassword, PasswordMaxLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.ChangePassword(request.Context(), userID, input.OldPassword, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, struct{}{}, "Password changed successfully")
}

// GET /api/v1/users/current-user
func (handler *Handler) currentUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.CurrentUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// # Cookies

func setSessionCookies(writer http.ResponseWriter, pair *TokenPair) {
	http.SetCookie(writer, sessionCookie(constants.AccessTokenCookieName, pair.AccessToken, pair.AccessTokenExpiresAt))
	http.SetCookie(writer, sessionCookie(constants.RefreshTokenCookieName, pair.RefreshToken, pair.RefreshTokenExpiresAt))
}

func clearSessionCookies(writer http.ResponseWriter) {
	for _, name := range []string{constants.AccessTokenCookieName, constants.RefreshTokenCookieName} {
		cookie := sessionCookie(name, "", time.Unix(0, 0))
		cookie.MaxAge = -1
		http.SetCookie(writer, cookie)
	}
}

func sessionCookie(name, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
}
