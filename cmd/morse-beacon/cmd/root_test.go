package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestInspectCommands runs the encode and timeline subcommands end to end.
func TestInspectCommands(t *testing.T) {
	tests := map[string]struct {
		args []string
		want string
	}{
		"encode":   {args: []string{"encode", "sos"}, want: "... --- ..."},
		"timeline": {args: []string{"timeline", "--unit", "100", "E"}, want: "active"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer

			rootCmd.SetOut(&out)
			rootCmd.SetArgs(tt.args)

			require.NoError(t, rootCmd.Execute())
			require.Contains(t, out.String(), tt.want)
		})
	}
}
