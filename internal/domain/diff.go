package domain

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	m "github.com/mouse-blink/placefold/internal/model"
)

const diffContext = 3

// lineOp is one line of a line-level diff.
type lineOp struct {
	kind    diffmatchpatch.Operation
	text    string
	oldLine int
	newLine int
}

// UnifiedDiff renders a unified diff of two texts with three lines of context.
// It returns "" when the texts are equal.
func UnifiedDiff(path, oldText, newText string) string {
	if oldText == newText {
		return ""
	}

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0

	a, b, lines := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	ops := toLineOps(diffs)

	var out strings.Builder

	fmt.Fprintf(&out, "--- a/%s\n+++ b/%s\n", path, path)

	for start := 0; start < len(ops); {
		first := nextChange(ops, start)
		if first < 0 {
			break
		}

		from := max(first-diffContext, 0)

		// Extend the hunk while the gap between changes fits in the context.
		last := first
		for {
			next := nextChange(ops, last+1)
			if next < 0 || next-last > 2*diffContext {
				break
			}

			last = next
		}

		to := min(last+diffContext+1, len(ops))

		writeHunk(&out, ops[from:to])

		start = to
	}

	return out.String()
}

// DiffChanges renders one diff per change.
func DiffChanges(changes []m.Change) []m.TextDiff {
	diffs := make([]m.TextDiff, 0, len(changes))

	for _, c := range changes {
		name := string(c.Path)
		if c.Kind != m.KindProtectedString || c.Property != "Source" {
			name += "#" + c.Property
		}

		diffs = append(diffs, m.TextDiff{
			Path:     c.Path,
			Property: c.Property,
			Patch:    UnifiedDiff(name, withNewline(c.Old), withNewline(c.New)),
		})
	}

	return diffs
}

func withNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}

	return s + "\n"
}

func toLineOps(diffs []diffmatchpatch.Diff) []lineOp {
	var (
		ops              []lineOp
		oldLine, newLine = 1, 1
	)

	for _, d := range diffs {
		text := strings.TrimSuffix(d.Text, "\n")
		if d.Text == "" {
			continue
		}

		for _, line := range strings.Split(text, "\n") {
			op := lineOp{kind: d.Type, text: line, oldLine: oldLine, newLine: newLine}

			switch d.Type {
			case diffmatchpatch.DiffEqual:
				oldLine++
				newLine++
			case diffmatchpatch.DiffDelete:
				oldLine++
			case diffmatchpatch.DiffInsert:
				newLine++
			}

			ops = append(ops, op)
		}
	}

	return ops
}

func nextChange(ops []lineOp, from int) int {
	for i := from; i < len(ops); i++ {
		if ops[i].kind != diffmatchpatch.DiffEqual {
			return i
		}
	}

	return -1
}

func writeHunk(out *strings.Builder, ops []lineOp) {
	var oldCount, newCount int

	for _, op := range ops {
		if op.kind != diffmatchpatch.DiffInsert {
			oldCount++
		}

		if op.kind != diffmatchpatch.DiffDelete {
			newCount++
		}
	}

	oldStart, newStart := ops[0].oldLine, ops[0].newLine
	if oldCount == 0 {
		oldStart--
	}

	if newCount == 0 {
		newStart--
	}

	fmt.Fprintf(out, "@@ -%d,%d +%d,%d @@\n", oldStart, oldCount, newStart, newCount)

	for _, op := range ops {
		switch op.kind {
		case diffmatchpatch.DiffEqual:
			out.WriteString(" ")
		case diffmatchpatch.DiffDelete:
			out.WriteString("-")
		case diffmatchpatch.DiffInsert:
			out.WriteString("+")
		}

		out.WriteString(op.text)
		out.WriteString("\n")
	}
}
