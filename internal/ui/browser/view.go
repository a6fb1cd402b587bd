package browser

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/andyrewlee/vport/internal/data"
	"github.com/andyrewlee/vport/internal/engine"
	"github.com/andyrewlee/vport/internal/ui/common"
)

// View renders the browser.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	var content []string
	switch {
	case m.showHelp:
		content = m.viewHelp()
	case m.grid:
		content = m.viewGrid()
	default:
		content = m.viewList()
	}

	lines := make([]string, 0, m.height)
	lines = append(lines, m.viewHeader())
	lines = append(lines, content...)
	lines = append(lines, m.viewStatus())

	return m.zone.Scan(strings.Join(lines, "\n"))
}

func (m *Model) viewHeader() string {
	title := m.styles.Title.Render("vport")
	mode := "list"
	if m.grid {
		mode = fmt.Sprintf("grid %dx%d", m.engine.AriaRowCount(), m.engine.AriaColCount())
	}
	info := m.styles.Muted.Render(fmt.Sprintf(" %s · %s", mode, m.ariaLine))
	return truncateLine(title+info, m.width)
}

// viewList renders the windowed list. Items are rendered whole, then the
// slice of rows the viewport actually covers is cut out, so an item half
// above the viewport is clipped rather than snapped.
func (m *Model) viewList() []string {
	extent := m.extent()
	rng := m.engine.VisibleRange()
	if rng.Empty() {
		return padLines(nil, extent)
	}

	skip := m.engine.CurrentOffset() - m.engine.OffsetFor(rng.VisibleStart)
	if skip < 0 {
		skip = 0
	}

	var rows []string
	for idx := rng.VisibleStart; idx <= rng.VisibleEnd; idx++ {
		item, ok := m.source.Item(idx)
		if !ok {
			continue
		}
		rows = append(rows, m.renderItem(idx, item.Body)...)
		if len(rows) >= skip+extent {
			break
		}
	}
	if skip > len(rows) {
		skip = len(rows)
	}
	rows = rows[skip:]
	if len(rows) > extent {
		rows = rows[:extent]
	}
	return padLines(rows, extent)
}

// renderItem returns the wrapped rows for one entry. The first row is the
// click target and carries the selection highlight.
func (m *Model) renderItem(idx int, body string) []string {
	wrapped := strings.Split(ansi.Hardwrap(body, m.width, true), "\n")
	out := make([]string, 0, len(wrapped))
	for i, line := range wrapped {
		switch {
		case i == 0 && idx == m.selected:
			line = m.styles.Selected.Width(m.width).Render(line)
		case i == 0:
			line = m.styles.Body.Render(line)
		default:
			line = m.styles.Muted.Render(line)
		}
		if i == 0 {
			line = m.zone.Mark(rowZoneID(idx), line)
		}
		out = append(out, line)
	}
	return out
}

func (m *Model) viewGrid() []string {
	extent := m.extent()
	rows := m.engine.VisibleRows()
	if rows.Start < 0 {
		return padLines(nil, extent)
	}

	firstIdx := m.engine.ToIndex(rows.Start, 0)
	skip := m.engine.CurrentOffset() - m.engine.OffsetFor(firstIdx)
	if skip < 0 {
		skip = 0
	}

	var out []string
	for row := rows.Start; row <= rows.End; row++ {
		out = append(out, m.renderGridRow(row)...)
		if len(out) >= skip+extent {
			break
		}
	}
	if skip > len(out) {
		skip = len(out)
	}
	out = out[skip:]
	if len(out) > extent {
		out = out[:extent]
	}
	return padLines(out, extent)
}

func (m *Model) renderGridRow(row int) []string {
	cols := m.engine.AriaColCount()
	tiles := make([]string, 0, cols)
	for col := 0; col < cols; col++ {
		idx := m.engine.ToIndex(row, col)
		if idx < 0 {
			break
		}
		item, ok := m.source.Item(idx)
		if !ok {
			break
		}
		label := runewidth.Truncate(item.Title, m.tileWidth()-4, "…")
		style := m.styles.Tile
		if idx == m.selected {
			style = m.styles.SelectedTile
		}
		tile := style.Width(m.tileWidth() - 2).Render(label)
		tiles = append(tiles, m.zone.Mark(rowZoneID(idx), tile))
	}
	if len(tiles) == 0 {
		return nil
	}
	return strings.Split(lipgloss.JoinHorizontal(lipgloss.Top, tiles...), "\n")
}

func (m *Model) tileWidth() int {
	cols := m.cfg.GridColumns
	if cols <= 0 {
		cols = 1
	}
	w := m.width / cols
	if w < 8 {
		w = 8
	}
	return w
}

func (m *Model) viewStatus() string {
	var parts []string
	if m.loading {
		parts = append(parts, common.SpinnerFrame(m.spinnerFrame))
	}
	parts = append(parts, fmt.Sprintf("%d items", m.source.Len()))
	if m.source.HasMore() {
		parts = append(parts, "more…")
	}
	parts = append(parts, fmt.Sprintf("%d/%d", m.engine.CurrentOffset(), m.engine.TotalSize()))
	if m.follow {
		parts = append(parts, "FOLLOW")
	}
	left := m.styles.StatusBar.Render(strings.Join(parts, " · "))

	if m.status != "" {
		style := m.styles.Success
		if m.statusIsErr {
			style = m.styles.Error
		}
		left += "  " + style.Render(m.status)
	}

	hint := m.styles.HelpKey.Render("?") + m.styles.HelpDesc.Render(" help")
	gap := m.width - ansi.StringWidth(left) - ansi.StringWidth(hint)
	if gap < 1 {
		return truncateLine(left, m.width)
	}
	return left + strings.Repeat(" ", gap) + hint
}

func (m *Model) viewHelp() []string {
	bindings := []struct {
		key  string
		desc string
	}{
		{helpKey(m.keys.Up), "up"},
		{helpKey(m.keys.Down), "down"},
		{helpKey(m.keys.HalfUp), "half page up"},
		{helpKey(m.keys.HalfDown), "half page down"},
		{helpKey(m.keys.PageUp), "page up"},
		{helpKey(m.keys.PageDown), "page down"},
		{helpKey(m.keys.Top), "top"},
		{helpKey(m.keys.Bottom), "bottom"},
		{helpKey(m.keys.GridToggle), "toggle grid view"},
		{helpKey(m.keys.Follow), "follow tail"},
		{helpKey(m.keys.Copy), "copy entry"},
		{helpKey(m.keys.Quit), "quit"},
	}

	lines := make([]string, 0, len(bindings))
	for _, b := range bindings {
		lines = append(lines, fmt.Sprintf("  %s %s",
			m.styles.HelpKey.Render(runewidth.FillRight(b.key, 12)),
			m.styles.HelpDesc.Render(b.desc)))
	}
	if extent := m.extent(); len(lines) > extent {
		lines = lines[:extent]
	}
	return padLines(lines, m.extent())
}

// formatAria summarizes the published window for assistive output.
func formatAria(e *engine.Engine, vis engine.Visibility) string {
	if vis.Range.Empty() {
		return "empty"
	}
	return fmt.Sprintf("items %d-%d of %d (%d visible)",
		vis.Range.VisibleStart, vis.Range.VisibleEnd, e.ItemCount(), vis.VisibleCount())
}

// renderedRows counts the rows an entry occupies at the given width.
func renderedRows(item data.Item, width int) int {
	return strings.Count(ansi.Hardwrap(item.Body, width, true), "\n") + 1
}

func helpKey(b key.Binding) string {
	return b.Help().Key
}

func (m *Model) itemRows(idx int) int {
	item, ok := m.source.Item(idx)
	if !ok {
		return 0
	}
	return renderedRows(item, m.width)
}

func rowZoneID(idx int) string {
	return fmt.Sprintf("item-%d", idx)
}

func padLines(lines []string, extent int) []string {
	for len(lines) < extent {
		lines = append(lines, "")
	}
	return lines
}

func truncateLine(s string, width int) string {
	return ansi.Truncate(s, width, "…")
}
