// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"mime"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Deadline bounds every request with chi's Timeout middleware. Multipart
// requests (video, thumbnail, avatar and cover uploads) stream large bodies
// to object storage and get the longer upload budget instead.
func Deadline(standard, upload time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		short := chimw.Timeout(standard)(next)
		long := chimw.Timeout(upload)(next)

		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if isMultipart(request) {
				long.ServeHTTP(writer, request)
				return
			}
			short.ServeHTTP(writer, request)
		})
	}
}

func isMultipart(request *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(request.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}
