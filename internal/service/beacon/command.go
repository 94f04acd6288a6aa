package beacon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/oshokin/morse-beacon/internal/clock"
	"github.com/oshokin/morse-beacon/internal/config"
	"github.com/oshokin/morse-beacon/internal/device/torch"
	"github.com/oshokin/morse-beacon/internal/device/vibration"
	domain "github.com/oshokin/morse-beacon/internal/domain/playback"
	"github.com/oshokin/morse-beacon/internal/logger"
	repo "github.com/oshokin/morse-beacon/internal/repository/messages"
	"github.com/oshokin/morse-beacon/internal/service/library"
	"github.com/oshokin/morse-beacon/internal/service/playback"
)

// Options controls a single playback.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// Text is the text to play. Ignored when MessageID is set.
	Text string
	// MessageID plays a saved message instead of Text.
	MessageID string
	// UnitMs overrides the configured dit length when positive.
	UnitMs int
	// Vibration overrides the configured vibration channel when set.
	Vibration *bool
	// Light overrides the configured light channel when set.
	Light *bool
	// Out is where the torch is drawn. Defaults to stdout.
	Out io.Writer
	// DisableWatch skips live reloading of the settings file.
	DisableWatch bool
}

var (
	// ErrNoText is returned when neither text nor a message ID is provided.
	ErrNoText = errors.New("no text or message ID provided")
	// errNothingEncodable is returned when text has no encodable characters.
	errNothingEncodable = errors.New("text has no encodable characters")
	// ErrLightUnavailable is returned when the light is enabled but the output is not a terminal.
	ErrLightUnavailable = playback.ErrLightUnavailable
)

// Run plays the requested text and blocks until the playback finishes or ctx is done.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "beacon")

	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if lvl, ok := logger.ParseLogLevel(settings.LogLevel); ok {
		logger.SetLevel(lvl)
	}

	text, err := resolveText(ctx, opts, settings)
	if err != nil {
		return err
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	light := torch.New(out, torch.WithColor(settings.TorchColor))
	defer func() {
		_ = light.Finish()
	}()

	motor := vibration.NewMotor(clock.Real(), func(on bool) {
		logger.DebugKV(ctx, "Vibration motor", "on", on)
	})

	done := make(chan struct{}, 1)
	scheduler := playback.NewScheduler(ctx, motor, light,
		playback.WithObserver(func(status *domain.Status) {
			if status.IsPlaying() {
				return
			}

			select {
			case done <- struct{}{}:
			default:
			}
		}))

	cfg := resolvePlayback(opts, settings, light.Available())
	if !cfg.HasChannel() {
		logger.WarnKV(ctx, "No output channel enabled, nothing to play")

		return nil
	}

	if !settings.InRecommendedRange() && opts.UnitMs <= 0 {
		logger.WarnKV(ctx, "Unit outside the recommended range",
			"unit_ms", settings.UnitMs, "min", config.MinUnitMs, "max", config.MaxUnitMs)
	}

	if err := scheduler.Start(ctx, text, cfg); err != nil {
		return fmt.Errorf("start playback: %w", err)
	}

	status := scheduler.Status()
	if !status.IsPlaying() {
		logger.WarnKV(ctx, "Text has no encodable characters, nothing to play", "text", text)

		return nil
	}

	logger.InfoKV(ctx, "Playing",
		"playback_id", status.PlaybackID,
		"duration", status.Duration,
		"unit_ms", cfg.UnitMs,
		"vibration", cfg.Vibration,
		"light", cfg.Light)

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()

	if !opts.DisableWatch {
		err := config.Watch(watchCtx, opts.ConfigPath, func(updated *config.Config) {
			if err := scheduler.UpdateChannels(ctx, resolvePlayback(opts, updated, light.Available())); err != nil {
				logger.ErrorKV(ctx, "Failed to apply settings", "error", err)
			}
		})
		if err != nil {
			logger.WarnKV(ctx, "Live settings disabled", "error", err)
		}
	}

	select {
	case <-done:
		logger.Info(ctx, "Playback finished")
	case <-ctx.Done():
		scheduler.Close(context.WithoutCancel(ctx))
		logger.Info(ctx, "Playback interrupted")
	}

	return nil
}

// resolveText returns the saved message text or the provided text.
func resolveText(ctx context.Context, opts *Options, settings *config.Config) (string, error) {
	if opts.MessageID == "" {
		if strings.TrimSpace(opts.Text) == "" {
			return "", ErrNoText
		}

		return opts.Text, nil
	}

	svc, err := library.New(ctx, repo.NewFileRepository(settings.MessagesFile))
	if err != nil {
		return "", err
	}

	m, err := svc.Get(ctx, opts.MessageID)
	if err != nil {
		return "", fmt.Errorf("resolve message: %w", err)
	}

	logger.DebugKV(ctx, "Playing saved message", "id", m.ID, "name", m.Name)

	return m.Text, nil
}

// resolvePlayback applies the command line overrides on top of settings.
func resolvePlayback(opts *Options, settings *config.Config, lightAvailable bool) domain.Config {
	cfg := settings.Playback(lightAvailable)

	if opts.UnitMs > 0 {
		cfg.UnitMs = opts.UnitMs
	}

	if opts.Vibration != nil {
		cfg.Vibration = *opts.Vibration
	}

	if opts.Light != nil {
		cfg.Light = *opts.Light
	}

	return cfg
}
