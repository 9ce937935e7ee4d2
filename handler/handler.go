package handler

import (
	"errors"

	"github.com/philipp01105/plog/core"
)

// Handler defines the interface for log handlers. Handlers only see
// entries that already passed the filter.
type Handler interface {
	// Handle processes a log entry
	Handle(entry *core.Entry) error

	// Close closes the handler and releases resources
	Close() error
}

// Recycler is implemented by handlers that are done with an entry when
// Handle returns. The logger only returns entries to the pool when its
// handler reports true.
type Recycler interface {
	CanRecycleEntry() bool
}

// CanRecycle reports whether h is done with entries when Handle returns.
func CanRecycle(h Handler) bool {
	rc, ok := h.(Recycler)
	return ok && rc.CanRecycleEntry()
}

// StatsProvider is implemented by handlers that count what they drop
// and process.
type StatsProvider interface {
	Stats() Snapshot
}

// ErrClosed is returned by handlers that no longer accept entries.
var ErrClosed = errors.New("handler closed")
