package browser

import (
	"context"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/vport/internal/engine"
	"github.com/andyrewlee/vport/internal/ui/common"
)

// ItemsAppendedMsg signals that the source grew outside the update loop,
// typically from a follower goroutine.
type ItemsAppendedMsg struct {
	Added int
}

// loadDoneMsg carries the result of a dispatched load command.
type loadDoneMsg struct {
	gen uint64
	err error
}

// spinnerTickMsg advances the loading spinner.
type spinnerTickMsg struct{}

func spinnerTick() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

// Init initializes the browser.
func (m *Model) Init() tea.Cmd {
	m.syncCount()
	m.measureVisible()
	return m.dispatchLoad()
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.measureVisible()
		return m, m.dispatchLoad()

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.MouseWheelMsg:
		return m.handleMouseWheel(msg)

	case tea.MouseClickMsg:
		return m.handleMouseClick(msg)

	case ItemsAppendedMsg:
		m.syncCount()
		if m.follow && m.source.Len() > 0 {
			m.selected = m.source.Len() - 1
			m.engine.ScrollToIndex(m.selected, engine.AlignEnd)
		}
		m.measureVisible()
		return m, m.dispatchLoad()

	case loadDoneMsg:
		m.loading = false
		delete(m.dispatched, msg.gen)
		m.engine.ResolveLoad(msg.gen, msg.err)
		if msg.err != nil {
			m.status = "load failed: " + msg.err.Error()
			m.statusIsErr = true
		}
		m.syncCount()
		m.measureVisible()
		return m, m.dispatchLoad()

	case spinnerTickMsg:
		if !m.loading {
			return m, nil
		}
		m.spinnerFrame++
		return m, spinnerTick()

	case common.ErrorMsg:
		m.status = msg.Context + ": " + msg.Err.Error()
		m.statusIsErr = true
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (*Model, tea.Cmd) {
	m.status = ""
	m.statusIsErr = false

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)

	case key.Matches(msg, m.keys.HalfUp):
		m.scrollBy(-m.extent() / 2)
	case key.Matches(msg, m.keys.HalfDown):
		m.scrollBy(m.extent() / 2)
	case key.Matches(msg, m.keys.PageUp):
		m.scrollBy(-m.extent())
	case key.Matches(msg, m.keys.PageDown):
		m.scrollBy(m.extent())

	case key.Matches(msg, m.keys.Top):
		m.selected = 0
		m.follow = false
		m.engine.ScrollToIndex(0, engine.AlignStart)
	case key.Matches(msg, m.keys.Bottom):
		if n := m.source.Len(); n > 0 {
			m.selected = n - 1
			m.engine.ScrollToIndex(m.selected, engine.AlignEnd)
		}

	case key.Matches(msg, m.keys.GridToggle):
		m.toggleGrid()

	case key.Matches(msg, m.keys.Follow):
		m.follow = !m.follow
		if m.follow && m.source.Len() > 0 {
			m.selected = m.source.Len() - 1
			m.engine.ScrollToIndex(m.selected, engine.AlignEnd)
		}

	case key.Matches(msg, m.keys.Copy):
		if item, ok := m.source.Item(m.selected); ok {
			if err := common.CopyToClipboard(item.Body); err != nil {
				m.status = "copy failed: " + err.Error()
				m.statusIsErr = true
			} else {
				m.status = "copied " + item.ID
			}
		}
		return m, nil

	default:
		return m, nil
	}

	m.measureVisible()
	return m, m.dispatchLoad()
}

// moveSelection moves the selection along the layout axis: items in list
// mode, whole rows in grid mode.
func (m *Model) moveSelection(delta int) {
	step := delta
	if m.grid {
		step = delta * m.cfg.GridColumns
	}
	next := m.selected + step
	if next < 0 {
		next = 0
	}
	if max := m.source.Len() - 1; next > max {
		next = max
	}
	if next < 0 {
		return
	}
	m.selected = next
	m.follow = false
	m.engine.ScrollToIndex(m.selected, engine.AlignAuto)
}

func (m *Model) scrollBy(delta int) {
	m.follow = false
	m.engine.ScrollTo(m.engine.CurrentOffset() + delta)
}

func (m *Model) handleMouseWheel(msg tea.MouseWheelMsg) (*Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseWheelUp:
		m.scrollBy(-3)
	case tea.MouseWheelDown:
		m.scrollBy(3)
	default:
		return m, nil
	}
	m.measureVisible()
	return m, m.dispatchLoad()
}

func (m *Model) handleMouseClick(msg tea.MouseClickMsg) (*Model, tea.Cmd) {
	if msg.Button != tea.MouseLeft {
		return m, nil
	}
	if idx, ok := m.indexAtCell(msg.X, msg.Y); ok {
		m.selected = idx
		m.follow = false
	}
	return m, nil
}

// indexAtCell maps a terminal cell to an item index. y is relative to the
// full view, so the header row is peeled off first.
func (m *Model) indexAtCell(x, y int) (int, bool) {
	contentY := y - 1
	if contentY < 0 || contentY >= m.extent() {
		return -1, false
	}
	target := m.engine.CurrentOffset() + contentY

	if m.grid {
		rows := m.engine.VisibleRows()
		for row := rows.Start; row >= 0 && row <= rows.End; row++ {
			start := m.engine.OffsetFor(m.engine.ToIndex(row, 0))
			if target < start || target >= start+deviceTileRows {
				continue
			}
			col := x / m.tileWidth()
			idx := m.engine.ToIndex(row, col)
			if idx < 0 {
				return -1, false
			}
			return idx, true
		}
		return -1, false
	}

	rng := m.engine.VisibleRange()
	if rng.Empty() {
		return -1, false
	}
	for idx := rng.VisibleStart; idx <= rng.VisibleEnd; idx++ {
		start := m.engine.OffsetFor(idx)
		if target >= start && target < start+m.itemRows(idx) {
			return idx, true
		}
	}
	return -1, false
}

func (m *Model) extent() int {
	extent := m.height - chromeRows
	if extent < 0 {
		return 0
	}
	return extent
}

// measureVisible reports rendered heights for the windowed items so the
// engine can upgrade estimates. Grid tiles are fixed and never measured.
func (m *Model) measureVisible() {
	if m.grid || m.width <= 0 {
		return
	}
	rng := m.engine.VisibleRange()
	if rng.Empty() {
		return
	}
	for idx := rng.OverscanStart; idx <= rng.OverscanEnd; idx++ {
		item, ok := m.source.Item(idx)
		if !ok {
			continue
		}
		m.engine.ReportMeasured(idx, renderedRows(item, m.width))
	}
}

// dispatchLoad turns a pending engine load request into a command, once
// per generation.
func (m *Model) dispatchLoad() tea.Cmd {
	req, ok := m.engine.PendingLoad()
	if !ok || m.dispatched[req.Gen] {
		return nil
	}
	m.dispatched[req.Gen] = true
	m.loading = true

	source := m.source
	return common.SafeBatch(
		func() tea.Msg {
			err := source.LoadMore(context.Background(), req.Start, req.Stop)
			return loadDoneMsg{gen: req.Gen, err: err}
		},
		spinnerTick(),
	)
}
