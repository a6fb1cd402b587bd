// Package app wires the browser pane, the item source, and any follower
// feeding it into the root Bubbletea model.
package app

import (
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/andyrewlee/vport/internal/config"
	"github.com/andyrewlee/vport/internal/data"
	"github.com/andyrewlee/vport/internal/keymap"
	"github.com/andyrewlee/vport/internal/logging"
	"github.com/andyrewlee/vport/internal/ui/browser"
)

// Options selects the item source. At most one of FollowPath and
// ExecCommand may be set; with neither, the synthetic device inventory
// is shown.
type Options struct {
	FollowPath  string
	ExecCommand string
	DeviceCount int
	Grid        bool
}

type follower interface {
	Start() error
	Close() error
}

// App is the root model.
type App struct {
	cfg      *config.Config
	keys     keymap.KeyMap
	browser  *browser.Model
	source   data.Source
	follower follower
	send     func(tea.Msg)
	quitting bool
}

// New builds the app for the selected source.
func New(cfg *config.Config, opts Options) (*App, error) {
	if opts.FollowPath != "" && opts.ExecCommand != "" {
		return nil, fmt.Errorf("cannot follow a file and a command at once")
	}

	a := &App{
		cfg:  cfg,
		keys: keymap.New(cfg.KeyMap),
	}

	switch {
	case opts.FollowPath != "":
		logs := data.NewLogSource()
		f, err := data.NewFollowFile(opts.FollowPath, a.appendSink(logs))
		if err != nil {
			return nil, err
		}
		a.source = logs
		a.follower = f

	case opts.ExecCommand != "":
		logs := data.NewLogSource()
		a.source = logs
		a.follower = data.NewFollowCommand(opts.ExecCommand, a.appendSink(logs))

	default:
		count := opts.DeviceCount
		if count <= 0 {
			count = 500
		}
		a.source = data.NewDeviceSource(count, 48)
	}

	b, err := browser.New(cfg.Engine, a.keys, a.source, opts.Grid)
	if err != nil {
		return nil, err
	}
	a.browser = b
	return a, nil
}

// SetMsgSender lets follower goroutines push messages into the program.
func (a *App) SetMsgSender(send func(tea.Msg)) { a.send = send }

// StartFollower begins tailing, if a follower source was selected. Call
// after SetMsgSender so appended lines reach the update loop.
func (a *App) StartFollower() error {
	if a.follower == nil {
		return nil
	}
	return a.follower.Start()
}

// appendSink feeds follower lines into the log source and notifies the
// update loop. The sink runs on the follower's goroutine.
func (a *App) appendSink(logs *data.LogSource) func(lines []string) {
	return func(lines []string) {
		added := logs.AppendLines(lines)
		if added == 0 {
			return
		}
		if send := a.send; send != nil {
			send(browser.ItemsAppendedMsg{Added: added})
		}
	}
}

// Init initializes the app.
func (a *App) Init() tea.Cmd {
	return a.browser.Init()
}

// Update handles messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok && key.Matches(msg, a.keys.Quit) {
		a.quitting = true
		return a, tea.Quit
	}

	b, cmd := a.browser.Update(msg)
	a.browser = b
	return a, cmd
}

// View renders the app.
func (a *App) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion
	view.BackgroundColor = lipgloss.Color("#1a1b26")

	if a.quitting {
		view.SetContent("")
		return view
	}
	view.SetContent(a.browser.View())
	return view
}

// Shutdown stops the follower, if any.
func (a *App) Shutdown() {
	if a.follower == nil {
		return
	}
	if err := a.follower.Close(); err != nil {
		logging.WithError(err, "closing follower")
	}
}
