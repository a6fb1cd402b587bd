// Package browser renders a virtualized item browser: a flat list with
// variable-height entries or a fixed-height device grid, windowed by the
// engine so only visible items are materialized.
package browser

import (
	zone "github.com/lrstanley/bubblezone"

	"github.com/andyrewlee/vport/internal/config"
	"github.com/andyrewlee/vport/internal/data"
	"github.com/andyrewlee/vport/internal/engine"
	"github.com/andyrewlee/vport/internal/keymap"
	"github.com/andyrewlee/vport/internal/logging"
	"github.com/andyrewlee/vport/internal/ui/common"
)

// deviceTileRows is the fixed height of a grid tile (1 content row plus borders).
const deviceTileRows = 3

// chromeRows is the header plus the status bar.
const chromeRows = 2

// Model is the Bubbletea model for the item browser.
type Model struct {
	engine *engine.Engine
	source data.Source
	keys   keymap.KeyMap
	styles common.Styles
	zone   *zone.Manager
	cfg    config.EngineConfig

	grid     bool
	follow   bool
	selected int

	width  int
	height int

	spinnerFrame int
	loading      bool
	status       string
	statusIsErr  bool
	showHelp     bool

	// Load generations already handed to a command; the engine keeps the
	// request pending until resolved, so this prevents double dispatch.
	dispatched map[uint64]bool

	ariaLine string
}

// New creates a browser over source. grid selects the device-grid layout.
func New(cfg config.EngineConfig, keys keymap.KeyMap, source data.Source, grid bool) (*Model, error) {
	m := &Model{
		source:     source,
		keys:       keys,
		styles:     common.DefaultStyles(),
		zone:       zone.New(),
		cfg:        cfg,
		grid:       grid,
		dispatched: make(map[uint64]bool),
	}
	if err := m.buildEngine(); err != nil {
		return nil, err
	}
	return m, nil
}

// buildEngine constructs the windowing engine for the current layout mode
// and replays collection state into it.
func (m *Model) buildEngine() error {
	opts := engine.Options{
		OverscanCount: m.cfg.OverscanCount,
		LoadThreshold: m.cfg.LoadThreshold,
	}
	if m.grid {
		opts.ItemSize = deviceTileRows
		opts.Columns = m.cfg.GridColumns
	} else {
		opts.SizeFunc = m.source.SizeHint
		opts.EstimatedItemSize = m.cfg.EstimatedItemSize
	}

	eng, err := engine.New(opts)
	if err != nil {
		return err
	}
	eng.SetObserver(m.onVisibility)
	m.engine = eng
	m.dispatched = make(map[uint64]bool)

	if m.width > 0 && m.height > chromeRows {
		m.applyViewport()
	}
	m.syncCount()
	if m.selected > 0 {
		m.engine.ScrollToIndex(m.selected, engine.AlignAuto)
	}
	return nil
}

// onVisibility records the accessibility line published with each window.
func (m *Model) onVisibility(vis engine.Visibility) {
	m.ariaLine = formatAria(m.engine, vis)
}

// SetStyles sets the styles for the browser.
func (m *Model) SetStyles(styles common.Styles) { m.styles = styles }

// GridMode reports whether the browser is in the device-grid layout.
func (m *Model) GridMode() bool { return m.grid }

// Selected returns the selected item index.
func (m *Model) Selected() int { return m.selected }

// SetSize sets the browser size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.applyViewport()
}

func (m *Model) applyViewport() {
	extent := m.height - chromeRows
	m.engine.SetViewport(engine.Viewport{
		Offset:      m.engine.CurrentOffset(),
		Extent:      extent,
		CrossExtent: m.width,
	})
}

// syncCount pushes the source's current length into the engine.
func (m *Model) syncCount() {
	m.engine.SetItemCount(m.source.Len(), m.source.HasMore())
	if max := m.source.Len() - 1; m.selected > max {
		m.selected = max
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// toggleGrid switches layout modes, rebuilding the engine for the new axis.
func (m *Model) toggleGrid() {
	m.grid = !m.grid
	if err := m.buildEngine(); err != nil {
		// Config was already validated once; a rebuild failure means the
		// grid settings are unusable, so fall back to the list.
		logging.Error("grid rebuild failed: %v", err)
		m.grid = false
		_ = m.buildEngine()
	}
}
