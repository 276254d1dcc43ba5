package controller

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/placefold/internal/model"
)

const kindWidth = 16

// changeDelegate renders one change per line.
type changeDelegate struct {
	offset int
}

func (d changeDelegate) Height() int  { return 1 }
func (d changeDelegate) Spacing() int { return 0 }
func (d changeDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d changeDelegate) Render(w io.Writer, l list.Model, index int, item list.Item) {
	change, ok := item.(changeItem)
	if !ok {
		return
	}

	var pathStyle, kindStyle lipgloss.Style

	var displayPath string

	width := l.Width() - kindWidth - 2

	if index == l.Index() {
		pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true)
		kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true).
			Width(kindWidth)

		displayPath = animateScroll(change.title(), width, d.offset)
	} else {
		pathStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
		kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Width(kindWidth)

		displayPath = truncateToWidth(change.title(), width)
	}

	_, _ = fmt.Fprintf(w, "%s  %s", kindStyle.Render(change.kind), pathStyle.Render(displayPath))
}

// animateScroll scrolls text that does not fit in width, after a short pause.
func animateScroll(text string, width int, offset int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const (
		gap   = "   "
		pause = 5
	)

	if offset < pause {
		return truncateToWidth(text, width)
	}

	runes := []rune(text + gap)
	n := len(runes)
	start := (offset - pause) % n

	res := make([]rune, 0, width)
	for i := 0; i < width; i++ {
		res = append(res, runes[(start+i)%n])
	}

	return string(res)
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	maxWidth := width - lipgloss.Width(ellipsis)
	if maxWidth <= 0 {
		return ellipsis
	}

	currentWidth := 0

	result := make([]rune, 0, len(text))
	for _, r := range text {
		rWidth := lipgloss.Width(string(r))
		if currentWidth+rWidth > maxWidth {
			break
		}

		result = append(result, r)
		currentWidth += rWidth
	}

	return string(result) + ellipsis
}

// statusModel browses the pending changes of a folder and shows the diff of
// the selected one.
type statusModel struct {
	width        int
	height       int
	changeList   list.Model
	delegate     changeDelegate
	warnings     []m.Warning
	total        int
	animOffset   int
	lastSelected int
}

func newStatusModel(report m.RebuildReport, diffs []m.TextDiff) statusModel {
	patches := make(map[string]string, len(diffs))
	for _, d := range diffs {
		patches[string(d.Path)+"#"+d.Property] = d.Patch
	}

	items := make([]list.Item, 0, len(report.Changes))
	for _, c := range report.Changes {
		items = append(items, changeItem{
			path:     string(c.Path),
			property: c.Property,
			kind:     string(c.Kind),
			patch:    patches[string(c.Path)+"#"+c.Property],
		})
	}

	delegate := changeDelegate{}
	changeList := list.New(items, delegate, 80, 20)
	changeList.SetShowPagination(false)
	changeList.SetShowFilter(true)
	changeList.SetShowHelp(false)
	changeList.SetShowTitle(false)
	changeList.SetShowStatusBar(false)
	changeList.FilterInput.Placeholder = "Filter by path…"

	return statusModel{
		width:        80,
		height:       24,
		changeList:   changeList,
		delegate:     delegate,
		warnings:     report.Warnings,
		total:        len(report.Changes),
		lastSelected: 0,
	}
}

func (s statusModel) Init() tea.Cmd {
	return tea.Tick(time.Second/2, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (s statusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.changeList.SetWidth(s.width)

	case tickMsg:
		if s.changeList.FilterState() == list.Filtering {
			return s, nil
		}

		s.animOffset++
		s.delegate.offset = s.animOffset
		s.changeList.SetDelegate(s.delegate)

		return s, tea.Tick(time.Millisecond*150, func(t time.Time) tea.Msg {
			return tickMsg(t)
		})

	case tea.KeyMsg:
		if s.changeList.FilterState() != list.Filtering {
			switch msg.String() {
			case "q", "ctrl+c", "esc":
				return s, tea.Quit
			}
		}

		s.changeList, cmd = s.changeList.Update(msg)

		if s.changeList.Index() != s.lastSelected {
			s.lastSelected = s.changeList.Index()
			s.animOffset = 0
			s.delegate.offset = 0
			s.changeList.SetDelegate(s.delegate)
		}

		return s, cmd
	}

	return s, cmd
}

func (s statusModel) selected() (changeItem, bool) {
	item, ok := s.changeList.SelectedItem().(changeItem)
	return item, ok
}

func (s statusModel) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)

	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 2)

	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	title := titleStyle.Render("placefold status")

	summary := summaryStyle.Render(fmt.Sprintf(
		"Changes: %s   Warnings: %s",
		accentStyle.Render(fmt.Sprintf("%d", s.total)),
		accentStyle.Render(fmt.Sprintf("%d", len(s.warnings))),
	))

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Align(lipgloss.Center).
		Width(s.width)

	footer := footerStyle.Render("↑/k up • ↓/j down • / filter • q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		summary,
		s.renderTable(),
		s.renderDiff(),
		footer,
	)
}

func (s statusModel) listHeight() int {
	// Title, summary, footer, borders and headers take nine lines; the rest
	// is split between the list and the diff.
	h := (s.height - 9) / 2
	if h < 5 {
		h = 5
	}

	return h
}

func (s statusModel) renderTable() string {
	listWidth := s.width - 6

	s.changeList.SetHeight(s.listHeight())
	s.changeList.SetWidth(listWidth)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("8")).
		Width(listWidth)

	headers := headerStyle.Render(fmt.Sprintf("%-*s  %s", kindWidth, "Kind", "Path"))

	tableContainer := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Margin(0, 1).
		Padding(0, 1)

	return tableContainer.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			headers,
			s.changeList.View(),
		),
	)
}

func (s statusModel) renderDiff() string {
	item, ok := s.selected()
	if !ok || item.patch == "" {
		return ""
	}

	addStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	delStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hunkStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	lines := strings.Split(strings.TrimSuffix(item.patch, "\n"), "\n")
	if limit := s.height - s.listHeight() - 9; limit > 0 && len(lines) > limit {
		lines = append(lines[:limit], "…")
	}

	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "@@"):
			lines[i] = hunkStyle.Render(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = addStyle.Render(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = delStyle.Render(line)
		}
	}

	return lipgloss.NewStyle().Padding(0, 2).Render(strings.Join(lines, "\n"))
}
