package data

import (
	"bufio"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/creack/pty"

	"github.com/andyrewlee/vport/internal/logging"
	"github.com/andyrewlee/vport/internal/safego"
)

// FollowCommand runs a shell command under a pty and delivers its output
// lines to a sink. A pty keeps line buffering and color output alive for
// commands that detect a terminal.
type FollowCommand struct {
	mu sync.Mutex

	command   string
	cmd       *exec.Cmd
	ptyFile   *os.File
	sink      func(lines []string)
	closeOnce sync.Once
}

// NewFollowCommand creates a follower that will run command via sh -c.
func NewFollowCommand(command string, sink func(lines []string)) *FollowCommand {
	return &FollowCommand{
		command: command,
		sink:    sink,
	}
}

// Start launches the command. Output is read on a background goroutine
// until the command exits or Close is called.
func (f *FollowCommand) Start() error {
	cmd := exec.Command("sh", "-c", f.command)
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.cmd = cmd
	f.ptyFile = ptmx
	f.mu.Unlock()

	safego.Go("follow-command", func() {
		scanner := bufio.NewScanner(ptmx)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := strings.TrimRight(scanner.Text(), "\r")
			if f.sink != nil {
				f.sink([]string{line})
			}
		}
		logging.Debug("command follower finished: %s", f.command)
	})
	return nil
}

// Close terminates the command and stops the reader.
func (f *FollowCommand) Close() error {
	var err error
	f.closeOnce.Do(func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.ptyFile != nil {
			err = f.ptyFile.Close()
		}
		if f.cmd != nil && f.cmd.Process != nil {
			_ = f.cmd.Process.Kill()
		}
	})
	return err
}
