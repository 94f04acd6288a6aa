package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/morse-beacon/internal/config"
	"github.com/oshokin/morse-beacon/internal/version"
)

var (
	// configPath to the settings YAML file.
	configPath string

	// rootCmd represents the base command when called without any subcommands.
	rootCmd = &cobra.Command{
		Use:   "morse-beacon",
		Short: "Play text as Morse code on a vibration motor and a light strobe.",
		Long: `Converts text into Morse code and plays it on two channels: a simulated vibration
motor and a torch drawn on the terminal.

Timing follows the standard Morse ratios: a dash is three dots, letters are separated
by three units and words by seven. The unit length and the enabled channels are read
from the settings file and can be overridden per run.`,
		SilenceUsage: true,
	}
)

// Execute runs the morse-beacon CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	// Stop on SIGINT/SIGTERM so a running playback is torn down cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
}
