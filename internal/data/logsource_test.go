package data

import "testing"

func TestLogSourceAppendLines(t *testing.T) {
	s := NewLogSource()

	added := s.AppendLines([]string{"first", "second"})
	if added != 2 {
		t.Fatalf("expected 2 added, got %d", added)
	}
	if got := s.Len(); got != 2 {
		t.Fatalf("expected 2 entries, got %d", got)
	}
	item, ok := s.Item(1)
	if !ok || item.Body != "second" {
		t.Fatalf("unexpected item %+v ok=%v", item, ok)
	}
	if s.HasMore() {
		t.Fatalf("streams never report pending items")
	}
}

func TestLogSourceExplicitIDDedup(t *testing.T) {
	s := NewLogSource()

	s.AppendLines([]string{"id=evt-1 boot complete"})
	added := s.AppendLines([]string{"id=evt-1 boot complete", "id=evt-2 link up"})
	if added != 1 {
		t.Fatalf("expected replayed entry dropped, added=%d", added)
	}
	if got := s.Len(); got != 2 {
		t.Fatalf("expected 2 unique entries, got %d", got)
	}
	item, _ := s.Item(0)
	if item.ID != "evt-1" || item.Body != "boot complete" {
		t.Fatalf("explicit id not applied: %+v", item)
	}
}

func TestLogSourceSizeHint(t *testing.T) {
	s := NewLogSource()
	s.AppendLines([]string{"one line"})
	s.items[0].Body = "a\nb\nc"

	if got := s.SizeHint(0); got != 3 {
		t.Fatalf("expected 3 rows, got %d", got)
	}
	if got := s.SizeHint(99); got != 0 {
		t.Fatalf("expected 0 for out of range, got %d", got)
	}
}
