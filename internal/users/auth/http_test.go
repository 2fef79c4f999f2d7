// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidtube/internal/platform/constants"
	"github.com/taibuivan/vidtube/internal/platform/middleware"
	"github.com/taibuivan/vidtube/internal/users/auth"
)

func newRouter(f *fixture) http.Handler {
	return auth.NewHandler(f.service).Routes(middleware.NewGuard(f.service))
}

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

/*
TestHandler_RegisterLoginFlow drives register, login, current-user, refresh
and logout through the router.
*/
func TestHandler_RegisterLoginFlow(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)

	// Register
	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	require.NoError(t, form.WriteField("username", "judy"))
	require.NoError(t, form.WriteField("email", "judy@example.com"))
	require.NoError(t, form.WriteField("full_name", "Judy Hopps"))
	require.NoError(t, form.WriteField("password", "password123"))
	part, err := form.CreateFormFile("avatar", "judy.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	request := httptest.NewRequest(http.MethodPost, "/register", body)
	request.Header.Set("Content-Type", form.FormDataContentType())
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	assert.NotContains(t, recorder.Body.String(), "password")

	// Login
	request = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"judy@example.com","password":"password123"}`))
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	accessCookie := cookieByName(recorder.Result().Cookies(), constants.AccessTokenCookieName)
	refreshCookie := cookieByName(recorder.Result().Cookies(), constants.RefreshTokenCookieName)
	require.NotNil(t, accessCookie)
	require.NotNil(t, refreshCookie)
	assert.True(t, accessCookie.HttpOnly)
	assert.True(t, accessCookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, accessCookie.SameSite)

	// Current user with the cookie
	request = httptest.NewRequest(http.MethodGet, "/current-user", nil)
	request.AddCookie(accessCookie)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data auth.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "judy", envelope.Data.Username)

	// Refresh from the JSON body
	request = httptest.NewRequest(http.MethodPost, "/refresh-token", strings.NewReader(`{"refresh_token":"`+refreshCookie.Value+`"}`))
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	// The old refresh token is spent.
	request = httptest.NewRequest(http.MethodPost, "/refresh-token", nil)
	request.AddCookie(refreshCookie)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// Logout with the header form
	request = httptest.NewRequest(http.MethodPost, "/logout", nil)
	request.Header.Set("Authorization", "Bearer "+accessCookie.Value)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)

	cleared := cookieByName(recorder.Result().Cookies(), constants.RefreshTokenCookieName)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Equal(t, -1, cleared.MaxAge)
}

/*
TestHandler_ProtectedRoutes verifies protected routes reject anonymous callers.
*/
func TestHandler_ProtectedRoutes(t *testing.T) {
	router := newRouter(newFixture(t))

	for _, path := range []string{"/logout", "/change-password"} {
		request := httptest.NewRequest(http.MethodPost, path, nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code, path)
	}

	request := httptest.NewRequest(http.MethodGet, "/current-user", nil)
	request.Header.Set("Authorization", "Bearer nope")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestHandler_RegisterValidation verifies bad input never reaches the service.
*/
func TestHandler_RegisterValidation(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	require.NoError(t, form.WriteField("username", "a b"))
	require.NoError(t, form.WriteField("email", "nope"))
	require.NoError(t, form.WriteField("password", "short"))
	require.NoError(t, form.Close())

	request := httptest.NewRequest(http.MethodPost, "/register", body)
	request.Header.Set("Content-Type", form.FormDataContentType())
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "VALIDATION_ERROR")
	assert.Empty(t, f.users.users)
}
