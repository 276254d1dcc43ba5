package controller

import (
	m "github.com/mouse-blink/placefold/internal/model"
)

func sampleReport() m.RebuildReport {
	return m.RebuildReport{
		Folder: "game",
		Source: "/tmp/game.rbxlx",
		Output: "/tmp/game.rebuilt.rbxlx",
		Stage:  m.StageDone,
		Changes: []m.Change{
			{Path: "Workspace/Util.module.lua", Referent: "RBX2", Property: "Source", Kind: m.KindProtectedString, Old: "return 1", New: "return 2"},
			{Path: "Workspace/Baseplate.part.model", Referent: "RBX1", Property: "Anchored", Kind: m.KindBool, Old: "true", New: "false"},
		},
		Warnings: []m.Warning{
			{Code: m.WarnUntrackedFile, Path: "Workspace/New.part.model", Message: "file is not in the element map"},
		},
	}
}

func sampleDiffs() []m.TextDiff {
	return []m.TextDiff{
		{
			Path:     "Workspace/Util.module.lua",
			Property: "Source",
			Patch:    "--- a/Workspace/Util.module.lua\n+++ b/Workspace/Util.module.lua\n@@ -1,1 +1,1 @@\n-return 1\n+return 2\n",
		},
	}
}
