package data

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func collectLines(t *testing.T) (func(lines []string), chan string) {
	t.Helper()
	ch := make(chan string, 64)
	sink := func(lines []string) {
		for _, line := range lines {
			ch <- line
		}
	}
	return sink, ch
}

func waitLine(t *testing.T, ch chan string, want string) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case got := <-ch:
			if got == want {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for line %q", want)
		}
	}
}

func TestFollowFileDeliversExistingContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	if err := os.WriteFile(path, []byte("alpha\nbeta\n"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	sink, ch := collectLines(t)
	f, err := NewFollowFile(path, sink)
	if err != nil {
		t.Fatalf("NewFollowFile failed: %v", err)
	}
	defer f.Close()
	if err := f.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	waitLine(t, ch, "alpha")
	waitLine(t, ch, "beta")
}

func TestFollowFileDeliversAppendedLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	if err := os.WriteFile(path, []byte(""), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	sink, ch := collectLines(t)
	f, err := NewFollowFile(path, sink)
	if err != nil {
		t.Fatalf("NewFollowFile failed: %v", err)
	}
	defer f.Close()
	if err := f.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	if _, err := file.WriteString("gamma\n"); err != nil {
		t.Fatalf("WriteString failed: %v", err)
	}
	file.Close()

	waitLine(t, ch, "gamma")
}

func TestFollowFileHandlesTruncation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	if err := os.WriteFile(path, []byte("old-1\nold-2\n"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	sink, ch := collectLines(t)
	f, err := NewFollowFile(path, sink)
	if err != nil {
		t.Fatalf("NewFollowFile failed: %v", err)
	}
	defer f.Close()
	if err := f.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitLine(t, ch, "old-2")

	// Rotate in place: truncate and write fresh content.
	if err := os.WriteFile(path, []byte("new-1\n"), 0644); err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}
	waitLine(t, ch, "new-1")
}
