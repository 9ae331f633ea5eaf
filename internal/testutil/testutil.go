package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unrealities/talkie-trivia-sub000/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied,
// including the seeded trivia catalog.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	database, err := db.Open("file::memory:")
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = database.Close()
	})
	return database
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}
