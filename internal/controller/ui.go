// Package controller renders the results of placefold commands.
package controller

import (
	m "github.com/mouse-blink/placefold/internal/model"
)

// UI defines how command results are shown.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	// DisplayParseResult shows the outcome of an export. A non-nil err is
	// printed and returned.
	DisplayParseResult(report m.ParseReport, err error) error
	// DisplayRebuildResult shows the outcome of a rebuild.
	DisplayRebuildResult(report m.RebuildReport, err error) error
	// DisplayStatus shows pending changes and, when diffs is not nil, their diffs.
	DisplayStatus(report m.RebuildReport, diffs []m.TextDiff, err error) error
	// DisplayWatchEvent shows one rebuild of the watch loop.
	DisplayWatchEvent(report m.RebuildReport, err error)
}
