package config

import (
	"os"
	"path/filepath"
)

// Paths holds the file system paths used by the application
type Paths struct {
	Home       string // ~/.vport
	ConfigPath string // ~/.vport/config.json
	LogRoot    string // ~/.vport/logs
}

// DefaultPaths returns the default paths configuration. VPORT_CONFIG_DIR
// overrides the home directory, mainly for tests and sandboxed runs.
func DefaultPaths() (*Paths, error) {
	root := os.Getenv("VPORT_CONFIG_DIR")
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		root = filepath.Join(home, ".vport")
	}

	return &Paths{
		Home:       root,
		ConfigPath: filepath.Join(root, "config.json"),
		LogRoot:    filepath.Join(root, "logs"),
	}, nil
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	dirs := []string{
		p.Home,
		p.LogRoot,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return nil
}
