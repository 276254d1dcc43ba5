package controller

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/placefold/internal/model"
)

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	pathStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

// TUI implements UI with styled output and a Bubble Tea change browser.
type TUI struct {
	output io.Writer
	input  io.Reader
	now    func() time.Time
	// interactive is false when the status browser should not start, for
	// example when there is nothing to browse.
	interactive bool
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output, input: os.Stdin, now: time.Now, interactive: true}
}

// DisplayParseResult prints the export summary.
func (t *TUI) DisplayParseResult(report m.ParseReport, err error) error {
	if err != nil {
		t.printf("%s %v\n", errStyle.Render("parse failed:"), err)
		t.printWarnings(report.Warnings)

		return err
	}

	t.printf("%s %s %s %s\n",
		okStyle.Render("exported"),
		pathStyle.Render(string(report.Source)),
		mutedStyle.Render("→"),
		pathStyle.Render(string(report.Folder)))
	t.printf("  %d elements, %d scripts, %d property files\n",
		report.Elements, report.Scripts, report.PropertyFiles)
	t.printWarnings(report.Warnings)

	return nil
}

// DisplayRebuildResult prints the applied changes.
func (t *TUI) DisplayRebuildResult(report m.RebuildReport, err error) error {
	if err != nil {
		t.printf("%s %v\n", errStyle.Render("rebuild failed:"), err)
		t.printWarnings(report.Warnings)

		return err
	}

	t.printChanges(report.Changes)
	t.printWarnings(report.Warnings)
	t.printf("%s %s\n", okStyle.Render("wrote"), pathStyle.Render(string(report.Output)))

	return nil
}

// DisplayStatus opens the change browser when there are changes to show.
func (t *TUI) DisplayStatus(report m.RebuildReport, diffs []m.TextDiff, err error) error {
	if err != nil {
		t.printf("%s %v\n", errStyle.Render("status failed:"), err)
		t.printWarnings(report.Warnings)

		return err
	}

	if len(report.Changes) == 0 || !t.interactive {
		t.printChanges(report.Changes)
		t.printWarnings(report.Warnings)

		return nil
	}

	program := tea.NewProgram(newStatusModel(report, diffs),
		tea.WithOutput(t.output), tea.WithInput(t.input), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	// The browser used the alternate screen; leave a summary behind.
	t.printf("%s\n", summarizeRun(report))

	return nil
}

// DisplayWatchEvent prints a one-line summary of a watch rebuild.
func (t *TUI) DisplayWatchEvent(report m.RebuildReport, err error) {
	stamp := mutedStyle.Render(t.now().Format(time.TimeOnly))

	if err != nil {
		t.printf("%s %s %v\n", stamp, errStyle.Render("rebuild failed:"), err)
		return
	}

	t.printf("%s %s %s %s\n", stamp, okStyle.Render(summarizeRun(report)),
		mutedStyle.Render("→"), pathStyle.Render(string(report.Output)))

	for _, w := range report.Warnings {
		t.printf("  %s\n", warnStyle.Render(w.String()))
	}
}

func (t *TUI) printChanges(changes []m.Change) {
	if len(changes) == 0 {
		t.printf("%s\n", mutedStyle.Render("no changes"))
		return
	}

	var b strings.Builder

	for _, c := range changes {
		item := changeItem{path: string(c.Path), property: c.Property, kind: string(c.Kind)}
		fmt.Fprintf(&b, "  %s %s\n", warnStyle.Render(fmt.Sprintf("%-*s", kindWidth, item.kind)), pathStyle.Render(item.title()))
	}

	t.printf("%s\n%s", okStyle.Render(fmt.Sprintf("%d change(s)", len(changes))), b.String())
}

func (t *TUI) printWarnings(warnings []m.Warning) {
	for _, w := range warnings {
		t.printf("%s %s\n", warnStyle.Render("warning"), w.String())
	}
}

func (t *TUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(t.output, format, args...)
}
