package controller

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/placefold/internal/model"
)

func newTestTUI() (*TUI, *bytes.Buffer) {
	var buf bytes.Buffer

	ui := NewTUI(&buf)
	ui.interactive = false
	ui.now = func() time.Time { return time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC) }

	return ui, &buf
}

func TestTUI_DisplayParseResult(t *testing.T) {
	ui, buf := newTestTUI()

	assert.NoError(t, ui.DisplayParseResult(m.ParseReport{Source: "game.rbxlx", Folder: "game", Elements: 3}, nil))
	assert.Contains(t, buf.String(), "game.rbxlx")
	assert.Contains(t, buf.String(), "3 elements")

	boom := errors.New("boom")
	assert.ErrorIs(t, ui.DisplayParseResult(m.ParseReport{}, boom), boom)
	assert.Contains(t, buf.String(), "boom")
}

func TestTUI_DisplayRebuildResult(t *testing.T) {
	ui, buf := newTestTUI()

	assert.NoError(t, ui.DisplayRebuildResult(sampleReport(), nil))

	output := buf.String()
	assert.Contains(t, output, "2 change(s)")
	assert.Contains(t, output, "Workspace/Baseplate.part.model#Anchored")
	assert.Contains(t, output, "untracked-file")
	assert.Contains(t, output, "/tmp/game.rebuilt.rbxlx")
}

func TestTUI_DisplayStatus_NotInteractive(t *testing.T) {
	ui, buf := newTestTUI()

	assert.NoError(t, ui.DisplayStatus(sampleReport(), sampleDiffs(), nil))
	assert.Contains(t, buf.String(), "Workspace/Util.module.lua")

	buf.Reset()
	ui.interactive = true

	assert.NoError(t, ui.DisplayStatus(m.RebuildReport{}, nil, nil))
	assert.Contains(t, buf.String(), "no changes")
}

func TestTUI_DisplayWatchEvent(t *testing.T) {
	ui, buf := newTestTUI()

	ui.DisplayWatchEvent(sampleReport(), nil)
	ui.DisplayWatchEvent(m.RebuildReport{}, errors.New("boom"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "15:04:05")
	assert.Contains(t, lines[0], "2 changes, 1 warning(s)")
	assert.Contains(t, lines[1], "untracked-file")
	assert.Contains(t, lines[2], "rebuild failed:")
}

func TestAnimateScroll_Edges(t *testing.T) {
	assert.Equal(t, "", animateScroll("hello", 0, 0))
	assert.Equal(t, "hi", animateScroll("hi", 5, 0))
	assert.Equal(t, "ab…", animateScroll("abcdef", 3, 0))

	got := animateScroll("abcdef", 3, 10)
	assert.NotEqual(t, "ab…", got)
	assert.Len(t, []rune(got), 3)
}

func TestTruncateToWidth(t *testing.T) {
	assert.Equal(t, "", truncateToWidth("hello", 0))
	assert.Equal(t, "hello", truncateToWidth("hello", 10))
	assert.Equal(t, "…", truncateToWidth("hello", 1))
	assert.Equal(t, "h…", truncateToWidth("hello", 2))
}

func TestStatusModel(t *testing.T) {
	model := newStatusModel(sampleReport(), sampleDiffs())

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	model = updated.(statusModel)

	view := model.View()
	assert.Contains(t, view, "placefold status")
	assert.Contains(t, view, "Workspace/Util.module.lua")
	assert.Contains(t, view, "+return 2")

	item, ok := model.selected()
	require.True(t, ok)
	assert.Equal(t, "Source", item.property)

	updated, cmd := model.Update(tickMsg(time.Now()))
	model = updated.(statusModel)
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, model.animOffset)

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model = updated.(statusModel)

	item, ok = model.selected()
	require.True(t, ok)
	assert.Equal(t, "Anchored", item.property)
	assert.Equal(t, 1, model.lastSelected)
	assert.Equal(t, 0, model.animOffset)
	assert.NotContains(t, model.View(), "+return 2")

	_, cmd = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestChangeItem(t *testing.T) {
	script := changeItem{path: "a.lua", property: "Source", kind: "ProtectedString"}
	assert.Equal(t, "a.lua", script.title())

	prop := changeItem{path: "a.part.model", property: "Anchored", kind: "bool"}
	assert.Equal(t, "a.part.model#Anchored", prop.title())
	assert.Equal(t, "a.part.model#Anchored", prop.FilterValue())
}
