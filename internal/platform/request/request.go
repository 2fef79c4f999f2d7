// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/ctxutil"
	"github.com/taibuivan/vidtube/internal/platform/objectstore"
	"github.com/taibuivan/vidtube/internal/platform/sec"
	"github.com/taibuivan/vidtube/internal/platform/validate"
	"github.com/taibuivan/vidtube/pkg/uuid"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
DecodeOptionalJSON is DecodeJSON that accepts an empty body.
*/
func DecodeOptionalJSON(request *http.Request, target interface{}) error {
	err := json.NewDecoder(request.Body).Decode(target)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return validate.ErrInvalidJSON
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
ID retrieves a named URL parameter and requires it to be a UUID.

Returns:
  - string: The identifier
  - error: apperr.InvalidRequest naming the parameter
*/
func ID(request *http.Request, name string) (string, error) {
	value := chi.URLParam(request, name)
	if !uuid.Valid(value) {
		return "", apperr.InvalidRequest("Invalid " + name)
	}
	return value, nil
}

/*
QueryID reads a query parameter that must be a UUID.
*/
func QueryID(request *http.Request, key string) (string, error) {
	value := request.URL.Query().Get(key)
	if !uuid.Valid(value) {
		return "", apperr.InvalidRequest("Invalid " + key)
	}
	return value, nil
}

/*
QueryBool reads a boolean query parameter, falling back when absent or malformed.
*/
func QueryBool(request *http.Request, key string, fallback bool) bool {
	raw := request.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}

/*
Principal extracts the authenticated principal from the request context.

Returns nil if the request is not authenticated.
*/
func Principal(request *http.Request) *sec.Principal {
	return ctxutil.GetPrincipal(request.Context())
}

/*
RequiredPrincipal ensures the request is authenticated and returns the principal.

Returns:
  - *sec.Principal: The authenticated identity
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredPrincipal(request *http.Request) (*sec.Principal, error) {
	principal := ctxutil.GetPrincipal(request.Context())
	if principal == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return principal, nil
}

/*
RequiredUserID returns the User ID of the currently logged-in user.

Returns:
  - string: User UUID
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredUserID(request *http.Request) (string, error) {
	principal, err := RequiredPrincipal(request)
	if err != nil {
		return "", err
	}
	return principal.UserID, nil
}

// # Multipart

// Upload is a file received in a multipart form.
type Upload struct {
	File        multipart.File
	Filename    string
	ContentType string
	Size        int64
}

// Object detaches the upload from the transport for the object store.
func (upload *Upload) Object() *objectstore.File {
	if upload == nil {
		return nil
	}
	return &objectstore.File{Body: upload.File, Name: upload.Filename, ContentType: upload.ContentType}
}

/*
ParseMultipart parses a multipart body bounded by maxBytes.
*/
func ParseMultipart(writer http.ResponseWriter, request *http.Request, maxBytes int64) error {
	request.Body = http.MaxBytesReader(writer, request.Body, maxBytes)

	if err := request.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperr.PayloadTooLarge("Upload exceeds the allowed size")
		}
		return apperr.InvalidRequest("Invalid multipart form")
	}
	return nil
}

/*
FormFile returns the named file part, or nil when the part is absent.
The caller closes Upload.File.
*/
func FormFile(request *http.Request, field string) (*Upload, error) {
	file, header, err := request.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.InvalidRequest("Invalid file field " + field)
	}

	contentType := header.Header.Get("Content-Type")
	return &Upload{File: file, Filename: header.Filename, ContentType: contentType, Size: header.Size}, nil
}

/*
RequiredFormFile is FormFile that reports a missing part as a validation error.
*/
func RequiredFormFile(request *http.Request, field string) (*Upload, error) {
	upload, err := FormFile(request, field)
	if err != nil {
		return nil, err
	}
	if upload == nil {
		return nil, validate.RequiredError(field, "File is required")
	}
	return upload, nil
}

/*
FormValue returns a trimmed form field.
*/
func FormValue(request *http.Request, field string) string {
	return strings.TrimSpace(request.FormValue(field))
}
