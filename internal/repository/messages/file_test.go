package messages

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/morse-beacon/internal/domain/message"
)

// TestFileRepository_NotFound verifies Load returns ErrNotFound for missing file.
func TestFileRepository_NotFound(t *testing.T) {
	t.Parallel()

	repo := NewFileRepository(filepath.Join(t.TempDir(), "missing.yaml"))
	m, err := repo.Load(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
	require.Nil(t, m)
}

// TestFileRepository_SaveLoad_Roundtrip ensures Save followed by Load returns equal messages.
func TestFileRepository_SaveLoad_Roundtrip(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "messages.yaml")
	repo := NewFileRepository(file)

	want := []*domain.Message{
		{
			ID:        "01900000-0000-7000-8000-000000000001",
			Name:      "distress",
			Text:      "SOS",
			Favorite:  true,
			CreatedAt: time.Now().UTC().Truncate(time.Second),
		},
		{
			ID:   "01900000-0000-7000-8000-000000000002",
			Name: "greeting",
			Text: "hello world",
		},
	}

	require.NoError(t, repo.Save(context.Background(), want))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, want[0].Text, got[0].Text)
	require.True(t, want[0].CreatedAt.Equal(got[0].CreatedAt))
	require.Equal(t, want[1].Name, got[1].Name)
	require.False(t, got[1].Favorite)

	_, err = os.Stat(file)
	require.NoError(t, err)
}

// TestFileRepository_Corrupt verifies decode errors are reported.
func TestFileRepository_Corrupt(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "messages.yaml")
	require.NoError(t, os.WriteFile(file, []byte("messages: {broken"), 0o600))

	_, err := NewFileRepository(file).Load(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}
