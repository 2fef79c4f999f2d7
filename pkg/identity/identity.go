// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package identity normalizes user-supplied identifiers before they reach storage.

Usernames are NFKC-normalized and case-folded so that visually identical handles
("Ｔai", "tai", "TAI") collide on the unique index. Emails are trimmed and
lower-cased as a whole.
*/
package identity

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// A cases.Caser keeps state and must not be shared across goroutines.
func fold(s string) string {
	return cases.Fold().String(s)
}

// Username returns the canonical form of a username.
func Username(raw string) string {
	return fold(norm.NFKC.String(strings.TrimSpace(raw)))
}

// Email returns the canonical form of an email address.
func Email(raw string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(raw)))
}

// LooksLikeEmail reports whether a login identifier should be matched against
// the email column instead of the username column.
func LooksLikeEmail(identifier string) bool {
	return strings.Contains(identifier, "@")
}
