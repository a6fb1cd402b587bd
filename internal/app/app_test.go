package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/vport/internal/config"
	"github.com/andyrewlee/vport/internal/data"
	"github.com/andyrewlee/vport/internal/ui/browser"
)

func testAppConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("VPORT_CONFIG_DIR", t.TempDir())
	cfg, err := config.DefaultConfig()
	if err != nil {
		t.Fatalf("DefaultConfig failed: %v", err)
	}
	return cfg
}

func TestNewRejectsConflictingSources(t *testing.T) {
	cfg := testAppConfig(t)
	if _, err := New(cfg, Options{FollowPath: "/tmp/x.log", ExecCommand: "ls"}); err == nil {
		t.Fatalf("expected error for conflicting sources")
	}
}

func TestDeviceModeByDefault(t *testing.T) {
	cfg := testAppConfig(t)
	a, err := New(cfg, Options{DeviceCount: 100})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Shutdown()

	if a.follower != nil {
		t.Fatalf("device mode must not start a follower")
	}
	if got := a.source.Len(); got != 48 {
		t.Fatalf("expected first device page of 48, got %d", got)
	}
}

func TestQuitKeyQuits(t *testing.T) {
	cfg := testAppConfig(t)
	a, err := New(cfg, Options{DeviceCount: 10})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Shutdown()

	_, cmd := a.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Fatalf("expected quit message, got %T", msg)
	}
	if !a.quitting {
		t.Fatalf("expected quitting state")
	}
}

func TestFollowerSinkNotifiesProgram(t *testing.T) {
	cfg := testAppConfig(t)
	a, err := New(cfg, Options{ExecCommand: "true"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Shutdown()

	var got []tea.Msg
	a.SetMsgSender(func(msg tea.Msg) { got = append(got, msg) })

	logs, ok := a.source.(*data.LogSource)
	if !ok {
		t.Fatalf("expected a log source for exec mode, got %T", a.source)
	}
	sink := a.appendSink(logs)

	sink([]string{"line 1", "line 2"})
	if logs.Len() != 2 {
		t.Fatalf("expected lines appended, got %d", logs.Len())
	}
	if len(got) != 1 {
		t.Fatalf("expected one notification, got %d", len(got))
	}
	appended, ok := got[0].(browser.ItemsAppendedMsg)
	if !ok || appended.Added != 2 {
		t.Fatalf("unexpected notification %#v", got[0])
	}

	// Replayed lines with known IDs add nothing and must not notify.
	sink(nil)
	if len(got) != 1 {
		t.Fatalf("empty batches must not notify, got %d messages", len(got))
	}
}
