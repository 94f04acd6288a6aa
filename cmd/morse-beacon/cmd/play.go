package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/oshokin/morse-beacon/internal/service/beacon"
)

var (
	// messageID selects a saved message to play.
	messageID string
	// unitMs overrides the configured dit length.
	unitMs int
	// vibration overrides the configured vibration channel.
	vibration bool
	// light overrides the configured light channel.
	light bool

	// playCmd plays text or a saved message.
	playCmd = &cobra.Command{
		Use:   "play [text...]",
		Short: "Play text or a saved message as Morse code.",
		Long: `Plays the given text, or the saved message selected with --message, and blocks until
the playback completes or the process is interrupted.

Changes to the channels or the unit in the settings file are applied while playing:
the playback restarts from the beginning, or stops when no channel is left.
The light channel needs an interactive terminal.`,
		Example: `  morse-beacon play SOS
  morse-beacon play --light --unit 150 "HELLO WORLD"
  morse-beacon play --message 0199`,
		RunE: func(cmd *cobra.Command, args []string) error {
			options := &beacon.Options{
				ConfigPath: configPath,
				Text:       strings.Join(args, " "),
				MessageID:  messageID,
				UnitMs:     unitMs,
				Out:        cmd.OutOrStdout(),
			}

			if cmd.Flags().Changed("vibration") {
				options.Vibration = &vibration
			}

			if cmd.Flags().Changed("light") {
				options.Light = &light
			}

			return beacon.Run(cmd.Context(), options)
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	playCmd.Flags().StringVarP(&messageID, "message", "m", "", "ID or ID prefix of a saved message to play")
	playCmd.Flags().IntVarP(&unitMs, "unit", "u", 0, "dit length in milliseconds (defaults to the settings)")
	playCmd.Flags().BoolVar(&vibration, "vibration", true, "enable the vibration channel")
	playCmd.Flags().BoolVar(&light, "light", false, "enable the light channel")

	rootCmd.AddCommand(playCmd)
}
