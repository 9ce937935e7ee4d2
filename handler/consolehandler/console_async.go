package consolehandler

import (
	"sync"
	"time"

	"github.com/philipp01105/plog/core"
	"github.com/philipp01105/plog/handler"
)

// AsyncConsoleHandler queues entries for a background goroutine. When
// the queue is full the per-level OverflowPolicy decides whether the
// entry is dropped or the caller waits.
type AsyncConsoleHandler struct {
	consoleBase
	queue          chan *core.Entry
	wg             sync.WaitGroup
	overflowPolicy map[core.Level]handler.OverflowPolicy
	blockTimeout   time.Duration
	drainTimeout   time.Duration
	blockMu        sync.Mutex // guards blockTimer
	blockTimer     *time.Timer
	parBufPool     sync.Pool
	onError        func(error)
}

// newAsyncConsoleHandler creates a new asynchronous console handler.
func newAsyncConsoleHandler(cfg ConsoleConfig) *AsyncConsoleHandler {
	h := &AsyncConsoleHandler{
		overflowPolicy: cfg.OverflowPolicy,
		blockTimeout:   cfg.BlockTimeout,
		drainTimeout:   cfg.DrainTimeout,
		blockTimer:     newStoppedTimer(),
		parBufPool:     newParBufPool(),
		onError:        cfg.OnError,
	}
	h.init(cfg)

	h.queue = make(chan *core.Entry, cfg.BufferSize)
	h.wg.Add(1)
	go h.process()

	return h
}

// Handle sends a log entry to the async queue with overflow policy
// handling. The handler owns the entry afterwards and returns it to the
// pool once written or dropped. After Close entries are written
// synchronously.
func (h *AsyncConsoleHandler) Handle(entry *core.Entry) error {
	select {
	case <-h.closed:
		err := h.write(entry, &h.parBufPool)
		core.PutEntry(entry)
		return err
	default:
	}

	policy, ok := h.overflowPolicy[entry.Level]
	if !ok {
		policy = handler.DropNewest
	}

	select {
	case h.queue <- entry:
		return nil
	default:
	}

	switch policy {
	case handler.Block:
		return h.handleBlock(entry)

	case handler.DropOldest:
		select {
		case old := <-h.queue:
			h.stats.IncrementDropped(old.Level)
			core.PutEntry(old)
		default:
		}
		select {
		case h.queue <- entry:
		default:
			h.stats.IncrementDropped(entry.Level)
			core.PutEntry(entry)
		}
		return nil

	default:
		h.stats.IncrementDropped(entry.Level)
		core.PutEntry(entry)
		return nil
	}
}

// handleBlock waits up to the block timeout for queue space, then
// writes the entry on the caller's goroutine.
func (h *AsyncConsoleHandler) handleBlock(entry *core.Entry) error {
	h.blockMu.Lock()
	defer h.blockMu.Unlock()

	h.blockTimer.Reset(h.blockTimeout)
	select {
	case h.queue <- entry:
		stopTimer(h.blockTimer)
		return nil
	case <-h.blockTimer.C:
		h.stats.IncrementBlocked()
	case <-h.closed:
		stopTimer(h.blockTimer)
	}
	err := h.write(entry, &h.parBufPool)
	core.PutEntry(entry)
	return err
}

// CanRecycleEntry returns false because the async handler processes entries
// in a background goroutine after Handle returns.
func (h *AsyncConsoleHandler) CanRecycleEntry() bool {
	return false
}

func (h *AsyncConsoleHandler) writeQueued(entry *core.Entry) {
	if err := h.processWrite(entry, &h.parBufPool); err != nil && h.onError != nil {
		h.onError(err)
	}
	core.PutEntry(entry)
}

// process handles async log processing
func (h *AsyncConsoleHandler) process() {
	defer h.wg.Done()

	for {
		select {
		case entry := <-h.queue:
			h.writeQueued(entry)
			// Batch drain: process additional queued entries without blocking
		batchDrain:
			for {
				select {
				case entry := <-h.queue:
					h.writeQueued(entry)
				default:
					break batchDrain
				}
			}
		case <-h.closed:
			deadline := time.NewTimer(h.drainTimeout)
			defer deadline.Stop()
			for {
				select {
				case entry := <-h.queue:
					h.writeQueued(entry)
				case <-deadline.C:
					return
				default:
					return
				}
			}
		}
	}
}

// Close stops accepting queued entries and drains what is left, giving
// up after the drain timeout. Close is idempotent.
func (h *AsyncConsoleHandler) Close() error {
	h.closeOnce.Do(func() {
		close(h.closed)
		h.wg.Wait()
	})
	return nil
}
