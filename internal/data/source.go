package data

import "context"

// Item is a single browsable entry.
type Item struct {
	ID    string
	Title string
	Body  string
}

// Source supplies items to the browser. Len and Item are cheap and are
// called from the UI loop; LoadMore may block and is called off-loop.
type Source interface {
	// Len returns how many items are currently available.
	Len() int

	// HasMore reports whether more items exist beyond Len.
	HasMore() bool

	// Item returns the item at index, if present.
	Item(index int) (Item, bool)

	// SizeHint returns the expected rendered height in rows for the
	// item at index, or 0 when unknown.
	SizeHint(index int) int

	// LoadMore fetches the items following the current set. start and
	// stop describe the range the caller is about to run out of; the
	// source decides how much to actually fetch. Items already present
	// are merged by ID, never duplicated.
	LoadMore(ctx context.Context, start, stop int) error
}
