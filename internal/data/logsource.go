package data

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// LogSource is an append-only stream of log entries fed by a follower.
// It never reports more items pending; growth arrives via Append.
type LogSource struct {
	mu sync.Mutex

	items []Item
	seen  map[string]bool
	next  int
}

// NewLogSource creates an empty log stream.
func NewLogSource() *LogSource {
	return &LogSource{seen: make(map[string]bool)}
}

// Len returns how many entries have been appended.
func (s *LogSource) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// HasMore always reports false; a stream has no known tail to page in.
func (s *LogSource) HasMore() bool { return false }

// Item returns the entry at index.
func (s *LogSource) Item(index int) (Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.items) {
		return Item{}, false
	}
	return s.items[index], true
}

// SizeHint returns the number of rows the entry's body spans, or 0 when
// the index is out of range.
func (s *LogSource) SizeHint(index int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.items) {
		return 0
	}
	return strings.Count(s.items[index].Body, "\n") + 1
}

// LoadMore is a no-op for streams.
func (s *LogSource) LoadMore(ctx context.Context, start, stop int) error {
	return nil
}

// AppendLines adds one entry per line. Entries are assigned sequential
// IDs; a line carrying an explicit "id=" prefix reuses that ID and is
// dropped if already present.
func (s *LogSource) AppendLines(lines []string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, line := range lines {
		id, body := splitExplicitID(line)
		if id == "" {
			id = fmt.Sprintf("log-%08d", s.next)
			s.next++
		} else if s.seen[id] {
			continue
		}
		s.seen[id] = true
		s.items = append(s.items, Item{ID: id, Title: firstLine(body), Body: body})
		added++
	}
	return added
}

// splitExplicitID peels an "id=<token> " prefix off a line, if present.
func splitExplicitID(line string) (string, string) {
	if !strings.HasPrefix(line, "id=") {
		return "", line
	}
	rest := line[len("id="):]
	sp := strings.IndexByte(rest, ' ')
	if sp <= 0 {
		return "", line
	}
	return rest[:sp], rest[sp+1:]
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
