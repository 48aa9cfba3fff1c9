package bookmarks

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "bookmarks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var tick int
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	return s
}

func TestAddAndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	added, err := s.Add(ctx, "Acme Corp")
	require.NoError(t, err)
	assert.True(t, added)
	_, err = s.Add(ctx, "Beta")
	require.NoError(t, err)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Beta", list[0].Name)
	assert.Equal(t, "Acme Corp", list[1].Name)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 1, 0, 0, time.UTC), list[1].SavedAt)
}

func TestAdd_Dedupes(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.Add(ctx, "Acme")
	require.NoError(t, err)
	added, err := s.Add(ctx, "  acme ")
	require.NoError(t, err)
	assert.False(t, added)

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, "Acme", list[0].Name)
}

func TestAdd_EmptyName(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Add(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestRemove(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	_, err := s.Add(ctx, "Acme")
	require.NoError(t, err)

	removed, err := s.Remove(ctx, "ACME")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.Remove(ctx, "Acme")
	require.NoError(t, err)
	assert.False(t, removed)

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestOpen_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.db")
	ctx := context.Background()

	s, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = s.Add(ctx, "Acme")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Acme", list[0].Name)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/home/tester/.company_prep/bookmarks.db", p)
}
