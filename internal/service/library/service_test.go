package library

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/morse-beacon/internal/config"
	domain "github.com/oshokin/morse-beacon/internal/domain/message"
	repo "github.com/oshokin/morse-beacon/internal/repository/messages"
)

var (
	errTestLoad = errors.New("test load error")
	errTestSave = errors.New("test save error")
)

// memoryRepository is a minimal in-memory Repository implementation for tests.
type memoryRepository struct {
	// messages is the library to return from Load operations.
	messages []*domain.Message
	// loadErr is the error to return from Load operations.
	loadErr error
	// saveErr is the error to return from Save operations.
	saveErr error
	// saved stores the last library passed to Save operations.
	saved []*domain.Message
}

func (m *memoryRepository) Load(context.Context) ([]*domain.Message, error) {
	return m.messages, m.loadErr
}

func (m *memoryRepository) Save(_ context.Context, messages []*domain.Message) error {
	if m.saveErr != nil {
		return m.saveErr
	}

	m.saved = messages

	return nil
}

// TestNew_LoadsOrDefaults asserts New behavior on existing, missing, and error libraries.
func TestNew_LoadsOrDefaults(t *testing.T) {
	t.Parallel()

	existing := []*domain.Message{{ID: "a", Name: "one", Text: "E"}}

	s, err := New(context.Background(), &memoryRepository{messages: existing})
	require.NoError(t, err)
	require.Len(t, s.List(context.Background(), false), 1)

	s, err = New(context.Background(), &memoryRepository{loadErr: repo.ErrNotFound})
	require.NoError(t, err)
	require.Empty(t, s.List(context.Background(), false))

	s, err = New(context.Background(), &memoryRepository{loadErr: errTestLoad})
	require.ErrorIs(t, err, errTestLoad)
	require.Nil(t, s)
}

// TestService_Lifecycle verifies add, favourite, list ordering and removal.
func TestService_Lifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	memory := new(memoryRepository)

	s, err := New(ctx, memory)
	require.NoError(t, err)

	base := time.Unix(1_700_000_000, 0)
	tick := 0
	s.now = func() time.Time {
		tick++

		return base.Add(time.Duration(tick) * time.Minute)
	}

	first, err := s.Add(ctx, " distress ", "SOS")
	require.NoError(t, err)
	require.Equal(t, "distress", first.Name)
	require.NotEmpty(t, first.ID)
	require.Len(t, memory.saved, 1)

	second, err := s.Add(ctx, "greeting", "hello")
	require.NoError(t, err)

	// Newest first.
	list := s.List(ctx, false)
	require.Equal(t, []string{second.ID, first.ID}, []string{list[0].ID, list[1].ID})

	// Favourites first.
	fav, err := s.SetFavorite(ctx, first.ID, true)
	require.NoError(t, err)
	require.True(t, fav.Favorite)

	list = s.List(ctx, false)
	require.Equal(t, first.ID, list[0].ID)
	require.Len(t, s.List(ctx, true), 1)

	// Listing returns copies.
	list[0].Name = "mutated"
	got, err := s.Get(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, "distress", got.Name)

	require.NoError(t, s.Remove(ctx, second.ID))
	require.Len(t, s.List(ctx, false), 1)
	require.Len(t, memory.saved, 1)

	_, err = s.Get(ctx, second.ID)
	require.ErrorIs(t, err, ErrMessageNotFound)
}

// TestService_Validation verifies rejected input.
func TestService_Validation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	s, err := New(ctx, nil)
	require.NoError(t, err)

	_, err = s.Add(ctx, "", "SOS")
	require.Error(t, err)

	_, err = s.Add(ctx, "noise", "### %%%")
	require.ErrorIs(t, err, ErrNothingToPlay)

	_, err = s.Get(ctx, "")
	require.ErrorIs(t, err, ErrMessageNotFound)

	require.ErrorIs(t, s.Remove(ctx, "missing"), ErrMessageNotFound)
}

// TestService_PrefixLookup verifies unique prefixes resolve and ambiguous ones do not.
func TestService_PrefixLookup(t *testing.T) {
	t.Parallel()

	s, err := New(context.Background(), &memoryRepository{messages: []*domain.Message{
		{ID: "abc-1", Name: "one", Text: "E"},
		{ID: "abc-2", Name: "two", Text: "T"},
		{ID: "xyz-1", Name: "three", Text: "I"},
	}})
	require.NoError(t, err)

	m, err := s.Get(context.Background(), "xyz")
	require.NoError(t, err)
	require.Equal(t, "three", m.Name)

	_, err = s.Get(context.Background(), "abc")
	require.ErrorIs(t, err, ErrMessageNotFound)
}

// TestService_PersistFailure verifies a failed save leaves memory untouched.
func TestService_PersistFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	memory := &memoryRepository{saveErr: errTestSave}

	s, err := New(ctx, memory)
	require.NoError(t, err)

	_, err = s.Add(ctx, "distress", "SOS")
	require.ErrorIs(t, err, errTestSave)
	require.Empty(t, s.List(ctx, false))
}

// TestCommands runs the CLI entry points against files in a temp dir.
func TestCommands(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()

	settingsPath := filepath.Join(dir, "settings.yaml")
	cfg := config.Default()
	cfg.MessagesFile = filepath.Join(dir, "messages.yaml")
	require.NoError(t, config.Save(settingsPath, cfg))

	var out bytes.Buffer

	opts := &Options{ConfigPath: settingsPath, Out: &out}

	require.NoError(t, RunList(ctx, opts, false))
	require.Contains(t, out.String(), "No saved messages.")

	out.Reset()
	require.NoError(t, RunAdd(ctx, opts, "distress", "SOS"))

	id := string(bytes.TrimSpace(out.Bytes()))
	require.NotEmpty(t, id)

	require.NoError(t, RunFavorite(ctx, opts, id, true))

	out.Reset()
	require.NoError(t, RunList(ctx, opts, true))
	require.Contains(t, out.String(), "distress")
	require.Contains(t, out.String(), "... --- ...")

	require.NoError(t, RunRemove(ctx, opts, id))

	_, err := os.Stat(cfg.MessagesFile)
	require.NoError(t, err)

	out.Reset()
	require.NoError(t, RunList(ctx, opts, false))
	require.Contains(t, out.String(), "No saved messages.")
}
