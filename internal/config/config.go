package config

import (
	"encoding/json"
	"os"
	"strings"
)

// KeyMapConfig holds user overrides for keybindings.
type KeyMapConfig struct {
	Bindings map[string][]string `json:"bindings,omitempty"`
}

// BindingFor returns the configured keys for an action, if present.
func (k KeyMapConfig) BindingFor(action string) ([]string, bool) {
	if len(k.Bindings) == 0 {
		return nil, false
	}
	if keys, ok := k.Bindings[action]; ok {
		return keys, true
	}
	if keys, ok := k.Bindings[strings.ToLower(action)]; ok {
		return keys, true
	}
	return nil, false
}

// EngineConfig carries the windowing tunables exposed to users.
type EngineConfig struct {
	// OverscanCount is the base overscan item count per side.
	OverscanCount int `json:"overscan_count,omitempty"`
	// EstimatedItemSize seeds unmeasured variable-height items, in rows.
	EstimatedItemSize int `json:"estimated_item_size,omitempty"`
	// LoadThreshold is how many items from the end a load is requested.
	LoadThreshold int `json:"load_threshold,omitempty"`
	// GridColumns is the column count used when the grid view opens.
	GridColumns int `json:"grid_columns,omitempty"`
}

// Config holds the application configuration
type Config struct {
	Paths  *Paths
	Engine EngineConfig
	KeyMap KeyMapConfig
}

// DefaultConfig returns the default configuration
func DefaultConfig() (*Config, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}

	return &Config{
		Paths: paths,
		Engine: EngineConfig{
			OverscanCount:     5,
			EstimatedItemSize: 2,
			LoadThreshold:     20,
			GridColumns:       3,
		},
		KeyMap: KeyMapConfig{},
	}, nil
}

// fileConfig is the on-disk shape; only present fields override defaults.
type fileConfig struct {
	Engine *EngineConfig `json:"engine,omitempty"`
	KeyMap KeyMapConfig  `json:"keymap,omitempty"`
}

// Load loads config overrides from ~/.vport/config.json if present.
func Load() (*Config, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(cfg.Paths.ConfigPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var overrides fileConfig
	if err := json.Unmarshal(data, &overrides); err != nil {
		return nil, err
	}
	cfg.apply(overrides)
	return cfg, nil
}

func (c *Config) apply(overrides fileConfig) {
	if e := overrides.Engine; e != nil {
		if e.OverscanCount > 0 {
			c.Engine.OverscanCount = e.OverscanCount
		}
		if e.EstimatedItemSize > 0 {
			c.Engine.EstimatedItemSize = e.EstimatedItemSize
		}
		if e.LoadThreshold > 0 {
			c.Engine.LoadThreshold = e.LoadThreshold
		}
		if e.GridColumns > 0 {
			c.Engine.GridColumns = e.GridColumns
		}
	}
	if len(overrides.KeyMap.Bindings) > 0 {
		c.KeyMap = overrides.KeyMap
	}
}
