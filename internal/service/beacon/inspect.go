package beacon

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/oshokin/morse-beacon/internal/morse"
)

// PrintEncoding writes the dot-dash rendering of s.
func PrintEncoding(w io.Writer, s string) error {
	encoded := morse.Encode(s)
	if encoded == "" {
		return fmt.Errorf("%w: %q", errNothingEncodable, s)
	}

	_, err := fmt.Fprintln(w, encoded)

	return err
}

// PrintTimeline writes the compiled timeline of s as a table.
func PrintTimeline(w io.Writer, s string, unitMs int) error {
	timeline := morse.Compile(s, unitMs)
	if timeline.IsEmpty() {
		return fmt.Errorf("%w: %q", errNothingEncodable, s)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Phase", "Offset ms", "Duration ms"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})

	for i, step := range timeline.Steps() {
		t.AppendRow(table.Row{i, step.Phase, step.OffsetMs, step.Ms})
	}

	t.AppendFooter(table.Row{"", "total", "", timeline.Total()})
	t.Render()

	return nil
}
