// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgx5DSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@db:5432/vidtube", "pgx5://u:p@db:5432/vidtube"},
		{"postgresql://db/vidtube", "pgx5://db/vidtube"},
		{"pgx5://db/vidtube", "pgx5://db/vidtube"},
		{"host=db dbname=vidtube", "host=db dbname=vidtube"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, pgx5DSN(tt.in))
		})
	}
}

/*
TestEmbedded_Pairs verifies every embedded up migration has a matching down.
*/
func TestEmbedded_Pairs(t *testing.T) {
	ups, err := fs.Glob(embedded, "sql/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(embedded, "sql/*.down.sql")
	require.NoError(t, err)

	require.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups))
}
