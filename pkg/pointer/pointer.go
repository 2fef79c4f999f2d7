// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer provides utilities for working with optional values.

PATCH-style request bodies decode absent fields as nil pointers; these helpers
keep the "field not sent" versus "field sent empty" distinction readable.
*/
package pointer

import "strings"

// To returns a pointer to the provided value.
func To[T any](v T) *T {
	return &v
}

// Trimmed returns a pointer to the whitespace-trimmed value of p, or nil.
func Trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	return To(strings.TrimSpace(*p))
}
