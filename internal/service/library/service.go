package library

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	domain "github.com/oshokin/morse-beacon/internal/domain/message"
	"github.com/oshokin/morse-beacon/internal/logger"
	"github.com/oshokin/morse-beacon/internal/morse"
	repo "github.com/oshokin/morse-beacon/internal/repository/messages"
)

var (
	// ErrMessageNotFound is returned when no message has the requested ID.
	ErrMessageNotFound = errors.New("message not found")
	// ErrNothingToPlay is returned when a message has no encodable characters.
	ErrNothingToPlay = errors.New("message has no encodable characters")
	// errNameRequired is returned for messages without a name.
	errNameRequired = errors.New("message name must be provided")
)

// Service keeps the saved messages in memory and persists every change.
type Service struct {
	// repo handles persistent storage of the messages.
	repo repo.Repository
	// messages is the in-memory library in insertion order.
	messages []*domain.Message
	// now returns the creation timestamp of new messages.
	now func() time.Time
	// mu protects concurrent access to messages.
	mu sync.RWMutex
}

// New creates a service backed by the provided repository.
// A missing library starts empty.
func New(ctx context.Context, repository repo.Repository) (*Service, error) {
	s := &Service{
		repo: repository,
		now:  time.Now,
	}

	if repository == nil {
		return s, nil
	}

	messages, err := repository.Load(ctx)
	switch {
	case err == nil:
		s.messages = messages
	case errors.Is(err, repo.ErrNotFound):
		// Keep an empty library.
	default:
		return nil, fmt.Errorf("load messages: %w", err)
	}

	return s, nil
}

// Add stores a new message and returns it.
func (s *Service) Add(ctx context.Context, name, text string) (*domain.Message, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errNameRequired
	}

	if morse.Compile(text, 1).IsEmpty() {
		return nil, ErrNothingToPlay
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate message id: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m := &domain.Message{
		ID:        id.String(),
		Name:      name,
		Text:      text,
		CreatedAt: s.now().UTC(),
	}

	next := append(cloneAll(s.messages), m)
	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}

	logger.InfoKV(ctx, "Message saved", "id", m.ID, "name", m.Name)

	return m.Clone(), nil
}

// Get returns the message with the given ID.
// Unambiguous ID prefixes are accepted too.
func (s *Service) Get(_ context.Context, id string) (*domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, err := s.find(id)
	if err != nil {
		return nil, err
	}

	return m.Clone(), nil
}

// List returns the messages, favourites first, then newest first.
func (s *Service) List(_ context.Context, favoritesOnly bool) []*domain.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := lo.FilterMap(s.messages, func(m *domain.Message, _ int) (*domain.Message, bool) {
		return m.Clone(), !favoritesOnly || m.Favorite
	})

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Favorite != result[j].Favorite {
			return result[i].Favorite
		}

		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result
}

// SetFavorite marks or unmarks a message as favourite.
func (s *Service) SetFavorite(ctx context.Context, id string, favorite bool) (*domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.find(id)
	if err != nil {
		return nil, err
	}

	next := cloneAll(s.messages)
	updated := lo.Map(next, func(item *domain.Message, _ int) *domain.Message {
		if item.ID == m.ID {
			item.Favorite = favorite
		}

		return item
	})

	if err := s.persist(ctx, updated); err != nil {
		return nil, err
	}

	logger.InfoKV(ctx, "Message favourite updated", "id", m.ID, "favorite", favorite)

	result := m.Clone()
	result.Favorite = favorite

	return result, nil
}

// Remove deletes a message.
func (s *Service) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.find(id)
	if err != nil {
		return err
	}

	next := lo.Reject(cloneAll(s.messages), func(item *domain.Message, _ int) bool {
		return item.ID == m.ID
	})

	if err := s.persist(ctx, next); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Message removed", "id", m.ID, "name", m.Name)

	return nil
}

// find resolves an ID or unique ID prefix. Callers hold the lock.
func (s *Service) find(id string) (*domain.Message, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrMessageNotFound
	}

	if m, ok := lo.Find(s.messages, func(m *domain.Message) bool { return m.ID == id }); ok {
		return m, nil
	}

	matches := lo.Filter(s.messages, func(m *domain.Message, _ int) bool {
		return strings.HasPrefix(m.ID, id)
	})
	if len(matches) != 1 {
		return nil, fmt.Errorf("%w: %s", ErrMessageNotFound, id)
	}

	return matches[0], nil
}

// persist saves next and swaps it in. Callers hold the write lock.
func (s *Service) persist(ctx context.Context, next []*domain.Message) error {
	if s.repo != nil {
		if err := s.repo.Save(ctx, next); err != nil {
			logger.Errorf(ctx, "Failed to persist messages: %v", err)

			return fmt.Errorf("persist messages: %w", err)
		}
	}

	s.messages = next

	return nil
}

func cloneAll(messages []*domain.Message) []*domain.Message {
	return lo.Map(messages, func(m *domain.Message, _ int) *domain.Message {
		return m.Clone()
	})
}
