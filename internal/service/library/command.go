package library

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/oshokin/morse-beacon/internal/config"
	domain "github.com/oshokin/morse-beacon/internal/domain/message"
	"github.com/oshokin/morse-beacon/internal/logger"
	"github.com/oshokin/morse-beacon/internal/morse"
	repo "github.com/oshokin/morse-beacon/internal/repository/messages"
)

// Options locates the library and where command output goes.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// Out receives command output.
	Out io.Writer
}

// Open loads settings and the library they point to.
func Open(ctx context.Context, opts *Options) (*Service, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	return New(ctx, repo.NewFileRepository(cfg.MessagesFile))
}

// RunList prints the library as a table.
func RunList(ctx context.Context, opts *Options, favoritesOnly bool) error {
	ctx = logger.WithName(ctx, "library")

	svc, err := Open(ctx, opts)
	if err != nil {
		return err
	}

	messages := svc.List(ctx, favoritesOnly)
	if len(messages) == 0 {
		_, _ = fmt.Fprintln(opts.Out, "No saved messages.")

		return nil
	}

	_, _ = fmt.Fprintln(opts.Out, renderTable(messages))

	return nil
}

// RunAdd saves a message and prints its ID.
func RunAdd(ctx context.Context, opts *Options, name, text string) error {
	ctx = logger.WithName(ctx, "library")

	svc, err := Open(ctx, opts)
	if err != nil {
		return err
	}

	m, err := svc.Add(ctx, name, text)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(opts.Out, m.ID)

	return nil
}

// RunRemove deletes a message.
func RunRemove(ctx context.Context, opts *Options, id string) error {
	ctx = logger.WithName(ctx, "library")

	svc, err := Open(ctx, opts)
	if err != nil {
		return err
	}

	return svc.Remove(ctx, id)
}

// RunFavorite toggles the favourite mark of a message.
func RunFavorite(ctx context.Context, opts *Options, id string, favorite bool) error {
	ctx = logger.WithName(ctx, "library")

	svc, err := Open(ctx, opts)
	if err != nil {
		return err
	}

	_, err = svc.SetFavorite(ctx, id, favorite)

	return err
}

func renderTable(messages []*domain.Message) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Name", "Fav", "Text", "Morse", "Created"})

	for _, m := range messages {
		fav := ""
		if m.Favorite {
			fav = "*"
		}

		t.AppendRow(table.Row{m.ID, m.Name, fav, m.Text, morse.Encode(m.Text), m.CreatedAt.Local().Format(time.DateTime)})
	}

	return t.Render()
}
