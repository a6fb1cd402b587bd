package data

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/andyrewlee/vport/internal/logging"
)

var deviceKinds = []string{"sensor", "camera", "gateway", "relay", "meter"}

// DeviceSource is a synthetic paged device inventory. Pages are generated
// deterministically so a re-requested range merges cleanly by ID.
type DeviceSource struct {
	mu sync.Mutex

	items    []Item
	seen     map[string]bool
	capacity int
	pageSize int
	latency  time.Duration
}

// NewDeviceSource creates an inventory holding capacity devices in total,
// loaded pageSize at a time. The first page is available immediately.
func NewDeviceSource(capacity, pageSize int) *DeviceSource {
	if capacity < 0 {
		capacity = 0
	}
	if pageSize <= 0 {
		pageSize = 24
	}
	s := &DeviceSource{
		seen:     make(map[string]bool),
		capacity: capacity,
		pageSize: pageSize,
	}
	s.appendPage(pageSize)
	return s
}

// SetLatency adds an artificial delay to LoadMore, for demos.
func (s *DeviceSource) SetLatency(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latency = d
}

// Len returns how many devices are currently loaded.
func (s *DeviceSource) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// HasMore reports whether the inventory has devices beyond those loaded.
func (s *DeviceSource) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) < s.capacity
}

// Item returns the device at index.
func (s *DeviceSource) Item(index int) (Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.items) {
		return Item{}, false
	}
	return s.items[index], true
}

// SizeHint returns the tile height for a device entry. Devices render as
// fixed three-row tiles.
func (s *DeviceSource) SizeHint(index int) int {
	return 3
}

// LoadMore appends the next page of devices.
func (s *DeviceSource) LoadMore(ctx context.Context, start, stop int) error {
	s.mu.Lock()
	latency := s.latency
	s.mu.Unlock()

	if latency > 0 {
		select {
		case <-time.After(latency):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	added := s.appendPage(s.pageSize)
	logging.Debug("device page loaded: added=%d total=%d", added, len(s.items))
	return nil
}

// appendPage generates up to n more devices. Caller holds the lock (or is
// the constructor). Returns how many were actually added.
func (s *DeviceSource) appendPage(n int) int {
	added := 0
	for added < n && len(s.items) < s.capacity {
		i := len(s.items)
		id := fmt.Sprintf("dev-%04d", i)
		if s.seen[id] {
			added++
			continue
		}
		s.seen[id] = true
		kind := deviceKinds[i%len(deviceKinds)]
		s.items = append(s.items, Item{
			ID:    id,
			Title: fmt.Sprintf("%s %s", kind, id),
			Body:  fmt.Sprintf("rack %d / slot %d", i/16, i%16),
		})
		added++
	}
	return added
}
