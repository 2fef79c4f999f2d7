// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// and how the resulting metadata is delivered in the API response envelope.
//
// A request that names neither "page" nor "limit" is unbounded: list
// operations return the full ordered result.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the number of items per page when only "page" is given.
	DefaultLimit = 10
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int

	// Explicit is false when the caller asked for no window at all.
	Explicit bool
}

// All returns params that select the entire ordered result.
func All() Params {
	return Params{Page: DefaultPage, Limit: 0, Explicit: false}
}

// Page returns explicit params for the given page and limit, clamped.
func Page(page, limit int) Params {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}
	return Params{Page: page, Limit: limit, Explicit: true}
}

// Offset returns the SQL OFFSET value derived from [Page] and [Limit].
func (p Params) Offset() int {
	if !p.Explicit || p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// SQLLimit returns the SQL LIMIT value, or nil for an unbounded read.
// pgx encodes a nil *int as NULL, and "LIMIT NULL" means no limit.
func (p Params) SQLLimit() *int {
	if !p.Explicit {
		return nil
	}
	limit := p.Limit
	return &limit
}

// Bounds returns the [start, end) slice indexes of the window over n items.
func (p Params) Bounds(n int) (int, int) {
	if !p.Explicit {
		return 0, n
	}
	start := p.Offset()
	if start > n {
		start = n
	}
	end := start + p.Limit
	if end > n {
		end = n
	}
	return start, end
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta constructs pagination metadata for a response.
//
// It automatically calculates the TotalPages based on the total count and limit.
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Meta builds response metadata for these params. An unbounded read is
// reported as a single page holding every item.
func (p Params) Meta(total int) Meta {
	if !p.Explicit {
		return Meta{Page: 1, Limit: total, Total: total, TotalPages: 1}
	}
	return NewMeta(p.Page, p.Limit, total)
}

// FromRequest parses "page" and "limit" query parameters from an HTTP request.
//
// # Clamping
//
// Invalid, negative, or excessive values are automatically clamped to
// [DefaultPage], [DefaultLimit], or [MaxLimit].
func FromRequest(r *http.Request) Params {
	query := r.URL.Query()
	if !query.Has("page") && !query.Has("limit") {
		return All()
	}

	return Page(
		parseIntParam(r, "page", DefaultPage),
		parseIntParam(r, "limit", DefaultLimit),
	)
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}
