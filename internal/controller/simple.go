package controller

import (
	"bytes"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/placefold/internal/model"
)

// SimpleUI implements UI using cobra Command's output streams.
type SimpleUI struct {
	cmd *cobra.Command
	now func() time.Time
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd, now: time.Now}
}

// DisplayParseResult prints the export summary and any warnings.
func (s *SimpleUI) DisplayParseResult(report m.ParseReport, err error) error {
	if err != nil {
		s.printf("parse error: %v\n", err)
		s.printWarnings(report.Warnings)

		return err
	}

	s.printf("Exported %s to %s\n", report.Source, report.Folder)
	s.printf("\n%s", renderTable(
		[]string{"Elements", "Scripts", "Property files", "Warnings"},
		[][]string{{
			fmt.Sprintf("%d", report.Elements),
			fmt.Sprintf("%d", report.Scripts),
			fmt.Sprintf("%d", report.PropertyFiles),
			fmt.Sprintf("%d", len(report.Warnings)),
		}},
		nil,
	))
	s.printWarnings(report.Warnings)

	return nil
}

// DisplayRebuildResult prints the applied changes and the output path.
func (s *SimpleUI) DisplayRebuildResult(report m.RebuildReport, err error) error {
	if err != nil {
		s.printf("rebuild error: %v\n", err)
		s.printWarnings(report.Warnings)

		return err
	}

	s.printChanges(report.Changes)
	s.printWarnings(report.Warnings)
	s.printf("Wrote %s\n", report.Output)

	return nil
}

// DisplayStatus prints pending changes and their diffs.
func (s *SimpleUI) DisplayStatus(report m.RebuildReport, diffs []m.TextDiff, err error) error {
	if err != nil {
		s.printf("status error: %v\n", err)
		s.printWarnings(report.Warnings)

		return err
	}

	s.printChanges(report.Changes)

	for _, d := range diffs {
		s.printf("\n%s", d.Patch)
	}

	s.printWarnings(report.Warnings)

	return nil
}

// DisplayWatchEvent prints a one-line summary of a watch rebuild.
func (s *SimpleUI) DisplayWatchEvent(report m.RebuildReport, err error) {
	stamp := s.now().Format(time.TimeOnly)

	if err != nil {
		s.printf("[%s] rebuild failed: %v\n", stamp, err)
		return
	}

	s.printf("[%s] %s -> %s\n", stamp, summarizeRun(report), report.Output)

	for _, w := range report.Warnings {
		s.printf("  %s\n", w)
	}
}

func (s *SimpleUI) printChanges(changes []m.Change) {
	if len(changes) == 0 {
		s.printf("No changes\n")
		return
	}

	rows := make([][]string, 0, len(changes))
	for _, c := range changes {
		rows = append(rows, []string{string(c.Path), c.Property, string(c.Kind)})
	}

	s.printf("\n%s", renderTable(
		[]string{"Path", "Property", "Kind"},
		rows,
		[]string{fmt.Sprintf("Total Changes %d", len(changes)), "", ""},
	))
}

func (s *SimpleUI) printWarnings(warnings []m.Warning) {
	if len(warnings) == 0 {
		return
	}

	rows := make([][]string, 0, len(warnings))
	for _, w := range warnings {
		rows = append(rows, []string{string(w.Code), string(w.Path), w.Message})
	}

	s.printf("\n%s", renderTable([]string{"Warning", "Path", "Message"}, rows, nil))
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func renderTable(header []string, rows [][]string, footer []string) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(rows)

	if footer != nil {
		table.SetFooter(footer)
	}

	table.Render()

	return tableBuffer.String()
}

// summarizeRun describes a rebuild in a few words.
func summarizeRun(report m.RebuildReport) string {
	text := "no changes"

	switch n := len(report.Changes); n {
	case 0:
	case 1:
		text = "1 change"
	default:
		text = fmt.Sprintf("%d changes", n)
	}

	if n := len(report.Warnings); n > 0 {
		text += fmt.Sprintf(", %d warning(s)", n)
	}

	return text
}
