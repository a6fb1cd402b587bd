package keymap

import (
	"strings"

	"charm.land/bubbles/v2/key"

	"github.com/andyrewlee/vport/internal/config"
)

// Action identifies a configurable keybinding.
type Action string

const (
	ActionUp       Action = "up"
	ActionDown     Action = "down"
	ActionHalfUp   Action = "half_page_up"
	ActionHalfDown Action = "half_page_down"
	ActionPageUp   Action = "page_up"
	ActionPageDown Action = "page_down"
	ActionTop      Action = "top"
	ActionBottom   Action = "bottom"

	ActionGridToggle Action = "grid_toggle"
	ActionFollow     Action = "follow_toggle"
	ActionCopy       Action = "copy"
	ActionHelp       Action = "help"
	ActionQuit       Action = "quit"
)

type bindingDef struct {
	action Action
	keys   []string
	desc   string
}

// KeyMap defines all keybindings for the browser.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	HalfUp   key.Binding
	HalfDown key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding

	GridToggle key.Binding
	Follow     key.Binding
	Copy       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// New builds a keymap from defaults, applying any user overrides.
func New(cfg config.KeyMapConfig) KeyMap {
	return KeyMap{
		Up: bindingFromDef(cfg, bindingDef{
			action: ActionUp,
			keys:   []string{"k", "up"},
			desc:   "up",
		}),
		Down: bindingFromDef(cfg, bindingDef{
			action: ActionDown,
			keys:   []string{"j", "down"},
			desc:   "down",
		}),
		HalfUp: bindingFromDef(cfg, bindingDef{
			action: ActionHalfUp,
			keys:   []string{"ctrl+u"},
			desc:   "half page up",
		}),
		HalfDown: bindingFromDef(cfg, bindingDef{
			action: ActionHalfDown,
			keys:   []string{"ctrl+d"},
			desc:   "half page down",
		}),
		PageUp: bindingFromDef(cfg, bindingDef{
			action: ActionPageUp,
			keys:   []string{"pgup", "b"},
			desc:   "page up",
		}),
		PageDown: bindingFromDef(cfg, bindingDef{
			action: ActionPageDown,
			keys:   []string{"pgdown", "f"},
			desc:   "page down",
		}),
		Top: bindingFromDef(cfg, bindingDef{
			action: ActionTop,
			keys:   []string{"g", "home"},
			desc:   "top",
		}),
		Bottom: bindingFromDef(cfg, bindingDef{
			action: ActionBottom,
			keys:   []string{"G", "end"},
			desc:   "bottom",
		}),

		GridToggle: bindingFromDef(cfg, bindingDef{
			action: ActionGridToggle,
			keys:   []string{"v"},
			desc:   "toggle grid view",
		}),
		Follow: bindingFromDef(cfg, bindingDef{
			action: ActionFollow,
			keys:   []string{"F"},
			desc:   "follow tail",
		}),
		Copy: bindingFromDef(cfg, bindingDef{
			action: ActionCopy,
			keys:   []string{"y", "ctrl+c"},
			desc:   "copy entry",
		}),
		Help: bindingFromDef(cfg, bindingDef{
			action: ActionHelp,
			keys:   []string{"?"},
			desc:   "help",
		}),
		Quit: bindingFromDef(cfg, bindingDef{
			action: ActionQuit,
			keys:   []string{"q", "ctrl+q"},
			desc:   "quit",
		}),
	}
}

func bindingFromDef(cfg config.KeyMapConfig, def bindingDef) key.Binding {
	keys, ok := cfg.BindingFor(string(def.action))
	if !ok {
		keys = def.keys
	}
	helpKey := strings.Join(keys, "/")
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(helpKey, def.desc),
	)
}

// PrimaryKey returns the first key in the binding, if present.
func PrimaryKey(binding key.Binding) string {
	keys := binding.Keys()
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}
