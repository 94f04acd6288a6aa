package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/oshokin/morse-beacon/internal/domain/playback"
	"github.com/oshokin/morse-beacon/internal/service/beacon"
)

var (
	// timelineUnitMs is the dit length used for the timeline table.
	timelineUnitMs int

	// encodeCmd prints the dot-dash form of text.
	encodeCmd = &cobra.Command{
		Use:   "encode text...",
		Short: "Print text as dots and dashes.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return beacon.PrintEncoding(cmd.OutOrStdout(), strings.Join(args, " "))
		},
	}

	// timelineCmd prints the compiled timing of text.
	timelineCmd = &cobra.Command{
		Use:   "timeline text...",
		Short: "Print the pause/active timeline of text.",
		Long:  "Print the millisecond timeline a playback of text would follow, one row per pause or active phase.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return beacon.PrintTimeline(cmd.OutOrStdout(), strings.Join(args, " "), timelineUnitMs)
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	timelineCmd.Flags().IntVarP(&timelineUnitMs, "unit", "u", playback.DefaultUnitMs, "dit length in milliseconds")

	rootCmd.AddCommand(encodeCmd, timelineCmd)
}
