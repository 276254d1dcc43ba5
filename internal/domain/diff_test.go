package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	m "github.com/mouse-blink/placefold/internal/model"
)

func TestUnifiedDiff(t *testing.T) {
	t.Run("equal texts", func(t *testing.T) {
		assert.Empty(t, UnifiedDiff("a.lua", "x\n", "x\n"))
	})

	t.Run("single line change", func(t *testing.T) {
		got := UnifiedDiff("Util.module.lua", "return 1\n", "return 2\n")

		assert.Equal(t, "--- a/Util.module.lua\n+++ b/Util.module.lua\n"+
			"@@ -1,1 +1,1 @@\n-return 1\n+return 2\n", got)
	})

	t.Run("context is limited to three lines", func(t *testing.T) {
		var oldLines, newLines []string
		for i := 0; i < 20; i++ {
			line := "line " + string(rune('a'+i))
			oldLines = append(oldLines, line)
			if i == 10 {
				line = "changed"
			}
			newLines = append(newLines, line)
		}

		got := UnifiedDiff("f", strings.Join(oldLines, "\n")+"\n", strings.Join(newLines, "\n")+"\n")

		assert.Contains(t, got, "@@ -8,7 +8,7 @@\n")
		assert.Contains(t, got, "-line k\n+changed\n")
		assert.NotContains(t, got, "line a")
		assert.NotContains(t, got, "line t")
	})

	t.Run("distant changes make two hunks", func(t *testing.T) {
		var oldLines, newLines []string
		for i := 0; i < 30; i++ {
			line := "l" + string(rune('A'+i))
			oldLines = append(oldLines, line)
			if i == 2 || i == 25 {
				line += "!"
			}
			newLines = append(newLines, line)
		}

		got := UnifiedDiff("f", strings.Join(oldLines, "\n")+"\n", strings.Join(newLines, "\n")+"\n")
		assert.Equal(t, 2, strings.Count(got, "@@ -"))
	})
}

func TestDiffChanges(t *testing.T) {
	diffs := DiffChanges([]m.Change{
		{Path: "Util.module.lua", Property: "Source", Kind: m.KindProtectedString, Old: "return 1", New: "return 2"},
		{Path: "Part.part.model", Property: "Size", Kind: m.KindVector3, Old: "{\n    Y = 1,\n}", New: "{\n    Y = 2.0,\n}"},
	})

	assert.Len(t, diffs, 2)
	assert.Contains(t, diffs[0].Patch, "--- a/Util.module.lua\n")
	assert.Contains(t, diffs[1].Patch, "--- a/Part.part.model#Size\n")
	assert.Contains(t, diffs[1].Patch, "-    Y = 1,\n+    Y = 2.0,\n")
}
