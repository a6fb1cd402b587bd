package engine

import (
	"github.com/andyrewlee/vport/internal/logging"
	"github.com/andyrewlee/vport/internal/perf"
)

// LoadStatus is the lifecycle of a load request.
type LoadStatus int

const (
	LoadPending LoadStatus = iota
	LoadResolved
	LoadAborted
)

// LoadRequest asks the data source for the gap between the materialized
// window and the end of the known collection. Start/Stop are inclusive
// item indices; Gen invalidates stale resolutions after the coordinator
// has moved on.
type LoadRequest struct {
	Start  int
	Stop   int
	Status LoadStatus
	Gen    uint64
}

// loadCoordinator watches the computed window against the known item count
// and a has-more flag. At most one request is in flight; a request whose
// window has scrolled away is not cancelled, but its resolution only
// applies if its generation still matches.
type loadCoordinator struct {
	threshold int

	pending bool
	current LoadRequest
	gen     uint64
	lastErr error

	// Window the last resolution was observed against. While the window
	// and item count stay put, the same gap is not re-requested: a failed
	// load stays failed until the user scrolls or the collection changes,
	// and a successful one waits for the source to publish its new count.
	settled      bool
	settledEnd   int
	settledCount int
}

// check returns the request to issue for the current window, if any.
// Transition trigger: overscanEnd within threshold of the last known item,
// hasMore set, nothing pending, collection non-empty, and the window or
// item count has moved since the last resolution.
func (c *loadCoordinator) check(rng WindowRange, itemCount int, hasMore bool) (LoadRequest, bool) {
	if c.pending || !hasMore || itemCount <= 0 || rng.Empty() {
		return LoadRequest{}, false
	}
	if rng.OverscanEnd < itemCount-1-c.threshold {
		return LoadRequest{}, false
	}
	if c.settled && rng.OverscanEnd == c.settledEnd && itemCount == c.settledCount {
		return LoadRequest{}, false
	}
	c.settled = false
	c.gen++
	c.current = LoadRequest{
		Start:  rng.OverscanEnd + 1,
		Stop:   itemCount,
		Status: LoadPending,
		Gen:    c.gen,
	}
	c.pending = true
	perf.Count("engine.loads_issued", 1)
	return c.current, true
}

// resolve completes the pending request against the window it resolved
// under. A stale generation is recorded and dropped so it cannot clear a
// newer pending gap; the item-count change itself arrives separately from
// the source, merged by id there.
func (c *loadCoordinator) resolve(gen uint64, err error, windowEnd, itemCount int) {
	if gen != c.gen || !c.pending {
		perf.Count("engine.stale_loads_dropped", 1)
		logging.Debug("dropping stale load resolution gen=%d current=%d", gen, c.gen)
		return
	}
	c.pending = false
	c.settled = true
	c.settledEnd = windowEnd
	c.settledCount = itemCount
	if err != nil {
		// Recorded, not retried: the gap stays idle until a scroll or a
		// count change moves the window. Retry policy belongs to the
		// data source.
		c.current.Status = LoadAborted
		c.lastErr = err
		logging.WithError(err, "load request failed")
		return
	}
	c.current.Status = LoadResolved
	c.lastErr = nil
}

// pendingRequest returns the in-flight request, if any.
func (c *loadCoordinator) pendingRequest() (LoadRequest, bool) {
	if !c.pending {
		return LoadRequest{}, false
	}
	return c.current, true
}
