package data

import (
	"context"
	"testing"
)

func TestDeviceSourceFirstPage(t *testing.T) {
	s := NewDeviceSource(100, 24)

	if got := s.Len(); got != 24 {
		t.Fatalf("expected first page of 24, got %d", got)
	}
	if !s.HasMore() {
		t.Fatalf("expected more devices beyond the first page")
	}
	item, ok := s.Item(0)
	if !ok || item.ID != "dev-0000" {
		t.Fatalf("unexpected first item %+v ok=%v", item, ok)
	}
}

func TestDeviceSourceLoadMore(t *testing.T) {
	s := NewDeviceSource(50, 24)

	if err := s.LoadMore(context.Background(), 24, 50); err != nil {
		t.Fatalf("LoadMore failed: %v", err)
	}
	if got := s.Len(); got != 48 {
		t.Fatalf("expected 48 after second page, got %d", got)
	}

	// Final page is short and exhausts the inventory.
	if err := s.LoadMore(context.Background(), 48, 50); err != nil {
		t.Fatalf("LoadMore failed: %v", err)
	}
	if got := s.Len(); got != 50 {
		t.Fatalf("expected full inventory, got %d", got)
	}
	if s.HasMore() {
		t.Fatalf("expected exhausted inventory")
	}
}

func TestDeviceSourceIDsAreUnique(t *testing.T) {
	s := NewDeviceSource(60, 20)
	for i := 0; i < 3; i++ {
		if err := s.LoadMore(context.Background(), 0, 0); err != nil {
			t.Fatalf("LoadMore failed: %v", err)
		}
	}

	seen := make(map[string]bool)
	for i := 0; i < s.Len(); i++ {
		item, _ := s.Item(i)
		if seen[item.ID] {
			t.Fatalf("duplicate id %s at index %d", item.ID, i)
		}
		seen[item.ID] = true
	}
}

func TestDeviceSourceCancelledContext(t *testing.T) {
	s := NewDeviceSource(100, 10)
	s.SetLatency(0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.LoadMore(ctx, 10, 100); err == nil {
		t.Fatalf("expected context error")
	}
	if got := s.Len(); got != 10 {
		t.Fatalf("cancelled load must not append, got %d", got)
	}
}
