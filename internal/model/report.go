package model

import "fmt"

// WarningCode classifies a recoverable, per-element problem.
type WarningCode string

// Warning codes reported by parse and rebuild runs.
const (
	WarnMalformedElement  WarningCode = "malformed-element"
	WarnInvalidLiteral    WarningCode = "invalid-literal"
	WarnOrphanedMapping   WarningCode = "orphaned-mapping"
	WarnUntrackedFile     WarningCode = "untracked-file"
	WarnMissingFile       WarningCode = "missing-file"
	WarnUnreadableFile    WarningCode = "unreadable-file"
	WarnInvalidScript     WarningCode = "invalid-script"
	WarnUnknownProperty   WarningCode = "unknown-property"
	WarnStaleSnapshot     WarningCode = "stale-snapshot"
	WarnDuplicateProperty WarningCode = "duplicate-property"
)

// Warning is a recoverable problem that did not stop the run.
type Warning struct {
	Code     WarningCode
	Path     Path
	Referent string
	Message  string
}

func (w Warning) String() string {
	if w.Path == "" {
		return fmt.Sprintf("%s: %s", w.Code, w.Message)
	}

	return fmt.Sprintf("%s: %s: %s", w.Code, w.Path, w.Message)
}

// Patch replaces one span of the original text.
type Patch struct {
	Span Span
	Text string
}

// Change records one property or script body that differs from its original value.
type Change struct {
	Path     Path
	Referent string
	Property string
	Kind     Kind
	Old      string // literal or script text before the edit
	New      string // literal or script text after the edit
	Patches  []Patch
}

// Stage is the state of a rebuild run.
type Stage int

// Rebuild stages in execution order.
const (
	StageIdle Stage = iota
	StageLoadingSnapshot
	StageComputingChanges
	StagePatchingDocument
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageLoadingSnapshot:
		return "loading snapshot"
	case StageComputingChanges:
		return "computing changes"
	case StagePatchingDocument:
		return "patching document"
	case StageDone:
		return "done"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// ParseReport summarizes an export run.
type ParseReport struct {
	Source        Path
	Folder        Path
	Elements      int
	Scripts       int
	PropertyFiles int
	Warnings      []Warning
}

// RebuildReport summarizes a rebuild or status run.
type RebuildReport struct {
	Folder   Path
	Source   Path
	Output   Path
	Stage    Stage
	Changes  []Change
	Warnings []Warning
}

// Unchanged reports whether the rebuilt document equals the original.
func (r RebuildReport) Unchanged() bool {
	return len(r.Changes) == 0
}

// TextDiff is a rendered diff of one change, shown by status --diff.
type TextDiff struct {
	Path     Path
	Property string
	Patch    string
}
