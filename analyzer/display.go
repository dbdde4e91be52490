package analyzer

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Display writes a table of the report's files and a summary line.
// Unchanged files are listed only when verbose is set.
func Display(w io.Writer, report *Report, verbose bool) {
	if len(report.Files) == 0 {
		fmt.Fprintln(w, "No source files found")
		return
	}

	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"File", "Status", "Size", "Bindings"})

	for _, f := range report.Files {
		status := fileStatus(f)
		if status == "unchanged" && !verbose {
			continue
		}
		tbl.AppendRow(table.Row{relPath(report.Root, f.Path), status, humanize.Bytes(uint64(f.Size)), formatBindings(f.Bindings)})
	}

	changed, unchanged, skipped, failed := report.Counts()
	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d files", len(report.Files))})
	tbl.Render()

	color.New(color.FgGreen).Fprintf(w, "%d changed", changed)
	fmt.Fprintf(w, ", %d unchanged", unchanged)
	if skipped > 0 {
		color.New(color.FgYellow).Fprintf(w, ", %d skipped", skipped)
	}
	if failed > 0 {
		color.New(color.FgRed).Fprintf(w, ", %d failed", failed)
	}
	fmt.Fprintln(w)
}

func fileStatus(f FileResult) string {
	switch {
	case f.Err != nil:
		return "error: " + f.Err.Error()
	case f.Skipped != "":
		return "skipped: " + f.Skipped
	case f.Written:
		return "written"
	case f.Changed:
		return "changed"
	default:
		return "unchanged"
	}
}

// formatBindings renders renamed bindings as "want→got", sorted by name.
func formatBindings(bindings map[string]string) string {
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		if got := bindings[name]; got != name {
			parts = append(parts, name+"→"+got)
		} else {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, ", ")
}

func relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
