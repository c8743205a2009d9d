package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/proj-coursebook/change-tracker/pkg/core"
)

func renderTable(headers []string, rows [][]string) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       text.AlignLeft,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func stateRow(path string, state core.FileState) []string {
	prev, _ := state.PreviousFingerprint()
	return []string{path, state.Status().String(), string(prev)}
}

// writeStates prints states as JSON, a table on terminals, or
// tab-separated "status path" lines otherwise.
func writeStates(w io.Writer, states core.FileStates, asJSON, changedOnly bool) error {
	filtered := states.Clone()
	if changedOnly {
		filtered = states.Changed()
	}

	if asJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(filtered)
	}

	paths := make([]string, 0, len(filtered))
	for path := range filtered {
		paths = append(paths, path)
	}
	slices.Sort(paths)

	if isTerminal(w) {
		rows := make([][]string, 0, len(paths))
		for _, path := range paths {
			rows = append(rows, stateRow(path, filtered[path]))
		}
		_, err := fmt.Fprintln(w, renderTable([]string{"PATH", "STATUS", "PREVIOUS"}, rows))
		return err
	}

	var b strings.Builder
	for _, path := range paths {
		fmt.Fprintf(&b, "%s\t%s\n", filtered[path].Status(), path)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
