package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/oshokin/morse-beacon/internal/service/library"
)

var (
	// favoritesOnly limits the listing to favourite messages.
	favoritesOnly bool
	// unfavorite clears the favourite mark instead of setting it.
	unfavorite bool

	// messagesCmd groups the saved-message commands.
	messagesCmd = &cobra.Command{
		Use:     "messages",
		Aliases: []string{"msg"},
		Short:   "Manage saved messages.",
	}

	messagesListCmd = &cobra.Command{
		Use:   "list",
		Short: "List saved messages, favourites first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return library.RunList(cmd.Context(), libraryOptions(cmd), favoritesOnly)
		},
	}

	messagesAddCmd = &cobra.Command{
		Use:   "add name text...",
		Short: "Save a message and print its ID.",
		Args:  cobra.MinimumNArgs(2), //nolint:mnd // Name and at least one word.
		RunE: func(cmd *cobra.Command, args []string) error {
			return library.RunAdd(cmd.Context(), libraryOptions(cmd), args[0], strings.Join(args[1:], " "))
		},
	}

	messagesRemoveCmd = &cobra.Command{
		Use:     "remove id",
		Aliases: []string{"rm"},
		Short:   "Delete a saved message.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return library.RunRemove(cmd.Context(), libraryOptions(cmd), args[0])
		},
	}

	messagesFavoriteCmd = &cobra.Command{
		Use:   "favorite id",
		Short: "Mark a saved message as favourite.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return library.RunFavorite(cmd.Context(), libraryOptions(cmd), args[0], !unfavorite)
		},
	}
)

func libraryOptions(cmd *cobra.Command) *library.Options {
	return &library.Options{
		ConfigPath: configPath,
		Out:        cmd.OutOrStdout(),
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	messagesListCmd.Flags().BoolVarP(&favoritesOnly, "favorites", "f", false, "list favourite messages only")
	messagesFavoriteCmd.Flags().BoolVar(&unfavorite, "unset", false, "clear the favourite mark")

	messagesCmd.AddCommand(messagesListCmd, messagesAddCmd, messagesRemoveCmd, messagesFavoriteCmd)
	rootCmd.AddCommand(messagesCmd)
}
