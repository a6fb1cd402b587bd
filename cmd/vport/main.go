package main

import (
	"flag"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/vport/internal/app"
	"github.com/andyrewlee/vport/internal/config"
	"github.com/andyrewlee/vport/internal/logging"
)

// Version info set by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "print version and exit")
		follow      = flag.String("follow", "", "tail a log file")
		execCmd     = flag.String("exec", "", "run a command and browse its output")
		devices     = flag.Int("devices", 500, "size of the synthetic device inventory")
		grid        = flag.Bool("grid", false, "start in the grid layout")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("vport %s (commit: %s, built: %s)\n", version, commit, date)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Paths.EnsureDirectories(); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating config directories: %v\n", err)
		os.Exit(1)
	}

	if err := logging.Initialize(cfg.Paths.LogRoot, logging.LevelDebug); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not initialize logging: %v\n", err)
	}
	defer logging.Close()

	logging.Info("Starting vport")

	a, err := app.New(cfg, app.Options{
		FollowPath:  *follow,
		ExecCommand: *execCmd,
		DeviceCount: *devices,
		Grid:        *grid,
	})
	if err != nil {
		logging.Error("Failed to initialize app: %v", err)
		fmt.Fprintf(os.Stderr, "Error initializing app: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(a)
	a.SetMsgSender(p.Send)

	if err := a.StartFollower(); err != nil {
		logging.Error("Failed to start follower: %v", err)
		fmt.Fprintf(os.Stderr, "Error starting follower: %v\n", err)
		os.Exit(1)
	}

	if _, err := p.Run(); err != nil {
		logging.Error("App exited with error: %v", err)
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		a.Shutdown()
		os.Exit(1)
	}
	a.Shutdown()

	logging.Info("vport shutdown complete")
}
