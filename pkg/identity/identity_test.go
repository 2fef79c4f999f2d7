// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package identity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/vidtube/pkg/identity"
)

/*
TestUsername verifies width and case variants collapse to one handle.
*/
func TestUsername(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "tai", "tai"},
		{"upper", "TAI", "tai"},
		{"padded", "  Tai ", "tai"},
		{"fullwidth", "Ｔａｉ", "tai"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, identity.Username(tt.raw))
		})
	}
}

func TestEmail(t *testing.T) {
	assert.Equal(t, "tai@vidtube.dev", identity.Email(" Tai@VidTube.dev "))
	assert.True(t, identity.LooksLikeEmail("tai@vidtube.dev"))
	assert.False(t, identity.LooksLikeEmail("tai"))
}
