package consolehandler

import (
	"sync"

	"github.com/philipp01105/plog/core"
	"github.com/philipp01105/plog/formatter"
	"github.com/philipp01105/plog/handler"
)

// SyncConsoleHandler writes each entry before Handle returns. It has no
// queue, so nothing is ever dropped and the caller may recycle entries
// immediately.
type SyncConsoleHandler struct {
	consoleBase
	parBufPool sync.Pool
}

// newSyncConsoleHandler creates a new synchronous console handler.
func newSyncConsoleHandler(cfg ConsoleConfig) *SyncConsoleHandler {
	h := &SyncConsoleHandler{}
	h.init(cfg)
	h.parBufPool = newParBufPool()
	return h
}

// Handle formats and writes a log entry.
func (h *SyncConsoleHandler) Handle(entry *core.Entry) error {
	select {
	case <-h.closed:
		return handler.ErrClosed
	default:
	}
	return h.write(entry, &h.parBufPool)
}

// CanRecycleEntry returns true because sync handler processes entries immediately.
func (h *SyncConsoleHandler) CanRecycleEntry() bool {
	return true
}

// Close closes the handler. Further entries are rejected with
// handler.ErrClosed.
func (h *SyncConsoleHandler) Close() error {
	h.closeOnce.Do(func() { close(h.closed) })
	return nil
}

// init fills the fields shared by both handler variants.
func (b *consoleBase) init(cfg ConsoleConfig) {
	b.writer = cfg.Writer
	b.formatter = cfg.Formatter
	b.concurrentSafe = cfg.ConcurrentWriter || isConcurrentSafeWriter(cfg.Writer)
	b.stats = handler.NewStats()
	b.closed = make(chan struct{})

	// Cache WriterFormatter for zero-alloc path
	b.writerFormatter, _ = cfg.Formatter.(formatter.WriterFormatter)

	// Cache BufferFormatter for the handler-owned buffer path
	b.bufferFormatter, _ = cfg.Formatter.(formatter.BufferFormatter)

	b.lw = lockedWriter{mu: &b.mu, w: b.writer}
	if b.bufferFormatter != nil {
		b.syncBuf.Grow(256)
	}
}
