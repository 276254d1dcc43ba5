package domain

import (
	"bytes"
	"fmt"
	"sort"

	m "github.com/mouse-blink/placefold/internal/model"
)

// ApplyPatches returns a copy of text with every patch applied. Patches must lie
// within text and must not overlap; they are spliced from the highest start
// offset down so earlier offsets stay valid.
func ApplyPatches(text []byte, patches []m.Patch) ([]byte, error) {
	out := bytes.Clone(text)
	if out == nil {
		out = []byte{}
	}

	if len(patches) == 0 {
		return out, nil
	}

	sorted := make([]m.Patch, len(patches))
	copy(sorted, patches)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Span.Start != sorted[j].Span.Start {
			return sorted[i].Span.Start > sorted[j].Span.Start
		}

		return sorted[i].Span.End > sorted[j].Span.End
	})

	for i, p := range sorted {
		if !p.Span.Valid(len(text)) {
			return nil, &m.CorruptElementMapError{
				Reason: fmt.Sprintf("span [%d, %d) lies outside the %d byte document", p.Span.Start, p.Span.End, len(text)),
			}
		}

		if i > 0 && p.Span.End > sorted[i-1].Span.Start {
			return nil, &m.CorruptElementMapError{
				Reason: fmt.Sprintf("span [%d, %d) overlaps [%d, %d)",
					p.Span.Start, p.Span.End, sorted[i-1].Span.Start, sorted[i-1].Span.End),
			}
		}
	}

	for _, p := range sorted {
		tail := append([]byte(p.Text), out[p.Span.End:]...)
		out = append(out[:p.Span.Start], tail...)
	}

	return out, nil
}
