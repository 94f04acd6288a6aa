package messages

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/morse-beacon/internal/config"
	domain "github.com/oshokin/morse-beacon/internal/domain/message"
)

// Repository defines persistence operations for saved messages.
type Repository interface {
	Load(ctx context.Context) ([]*domain.Message, error)
	Save(ctx context.Context, messages []*domain.Message) error
}

// document is the on-disk layout of the library.
type document struct {
	Messages []*domain.Message `yaml:"messages"`
}

// FileRepository persists saved messages to a YAML file on disk.
type FileRepository struct {
	// path is the filesystem location of the library file.
	path string
	// mu protects concurrent access to the library file.
	mu sync.Mutex
}

// ErrNotFound is returned when the library file does not exist yet.
var ErrNotFound = errors.New("message library not found")

// NewFileRepository creates a repository that reads/writes YAML at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Load reads the library from disk.
func (r *FileRepository) Load(_ context.Context) ([]*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read message library: %w", err)
	}

	var doc document
	if err = yaml.Unmarshal(contents, &doc); err != nil {
		return nil, fmt.Errorf("decode message library: %w", err)
	}

	return doc.Messages, nil
}

// Save writes the library to disk, replacing the previous contents.
func (r *FileRepository) Save(_ context.Context, messages []*domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := yaml.Marshal(&document{Messages: messages})
	if err != nil {
		return fmt.Errorf("encode message library: %w", err)
	}

	if err = os.WriteFile(r.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write message library: %w", err)
	}

	return nil
}
