package filehandler

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/philipp01105/plog/core"
	"github.com/philipp01105/plog/formatter"
	"github.com/philipp01105/plog/handler"
)

// backupTimeFormat names rotated files. It sorts chronologically.
const backupTimeFormat = "2006-01-02T15-04-05.000"

// FileConfig holds configuration for file handler
type FileConfig struct {
	// Filename is the path to the log file
	Filename string
	// Formatter to use (default: JSONFormatter)
	Formatter formatter.BufferFormatter
	// MaxSize is the size in bytes that triggers rotation (0 = no size rotation)
	MaxSize int64
	// RotateInterval rotates the file after this long (0 = no interval rotation)
	RotateInterval time.Duration
	// MaxBackups is the maximum number of rotated files to keep (0 = keep all)
	MaxBackups int
}

// FileHandler appends entries to a file.
type FileHandler struct {
	cfg       FileConfig
	mu        sync.Mutex
	file      *os.File
	w         *bufio.Writer
	buf       bytes.Buffer
	size      int64
	opened    time.Time
	stats     *handler.Stats
	closed    bool
	now       func() time.Time
	closeOnce sync.Once
	closeErr  error
}

// NewFileHandler opens (or creates) cfg.Filename for appending.
func NewFileHandler(cfg FileConfig) (*FileHandler, error) {
	if cfg.Filename == "" {
		return nil, errors.New("filename is required")
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewJSONFormatter(formatter.Config{})
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Filename), 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create log directory for %s", cfg.Filename)
	}

	h := &FileHandler{cfg: cfg, stats: handler.NewStats(), now: time.Now}
	if err := h.open(); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *FileHandler) open() error {
	f, err := os.OpenFile(h.cfg.Filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", h.cfg.Filename)
	}
	info, err := f.Stat()
	if err != nil {
		return multierr.Append(errors.Wrapf(err, "failed to stat %s", h.cfg.Filename), f.Close())
	}
	h.file = f
	h.size = info.Size()
	h.opened = h.now()
	if h.w == nil {
		h.w = bufio.NewWriterSize(f, 4096)
	} else {
		h.w.Reset(f)
	}
	return nil
}

// Handle formats the entry and appends it, rotating first when due.
func (h *FileHandler) Handle(entry *core.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return handler.ErrClosed
	}

	h.buf.Reset()
	h.cfg.Formatter.FormatEntry(entry, &h.buf)

	if h.rotationDue(int64(h.buf.Len())) {
		if err := h.rotate(); err != nil {
			return err
		}
	}

	n, err := h.w.Write(h.buf.Bytes())
	h.size += int64(n)
	if err != nil {
		return err
	}
	h.stats.IncrementProcessed()
	return nil
}

// rotationDue reports whether writing next more bytes needs a new file.
// An empty file is never rotated, so an oversized entry still lands.
func (h *FileHandler) rotationDue(next int64) bool {
	if h.size == 0 {
		return false
	}
	if h.cfg.MaxSize > 0 && h.size+next > h.cfg.MaxSize {
		return true
	}
	return h.cfg.RotateInterval > 0 && h.now().Sub(h.opened) >= h.cfg.RotateInterval
}

func (h *FileHandler) rotate() error {
	if err := h.closeFile(); err != nil {
		return err
	}

	backup := h.backupName()
	if err := os.Rename(h.cfg.Filename, backup); err != nil {
		// Keep logging into the old file.
		return multierr.Append(errors.Wrapf(err, "failed to rotate %s", h.cfg.Filename), h.open())
	}
	if err := h.open(); err != nil {
		return err
	}
	return h.prune()
}

// backupName returns a free name for the file being rotated out.
func (h *FileHandler) backupName() string {
	name := h.cfg.Filename + "." + h.now().Format(backupTimeFormat)
	candidate := name
	for i := 1; ; i++ {
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", name, i)
	}
}

// Backups returns the rotated files of the handler, oldest first.
func (h *FileHandler) Backups() ([]string, error) {
	matches, err := filepath.Glob(h.cfg.Filename + ".*")
	if err != nil {
		return nil, errors.Wrap(err, "failed to list backups")
	}
	prefix := filepath.Base(h.cfg.Filename) + "."
	backups := matches[:0]
	for _, m := range matches {
		if strings.HasPrefix(filepath.Base(m), prefix) {
			backups = append(backups, m)
		}
	}
	sort.Strings(backups)
	return backups, nil
}

func (h *FileHandler) prune() error {
	if h.cfg.MaxBackups <= 0 {
		return nil
	}
	backups, err := h.Backups()
	if err != nil {
		return err
	}
	var errs error
	for len(backups) > h.cfg.MaxBackups {
		errs = multierr.Append(errs, os.Remove(backups[0]))
		backups = backups[1:]
	}
	return errs
}

// closeFile flushes, syncs and closes the current file.
func (h *FileHandler) closeFile() error {
	return multierr.Combine(h.w.Flush(), h.file.Sync(), h.file.Close())
}

// Sync flushes buffered entries to disk.
func (h *FileHandler) Sync() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	return multierr.Append(h.w.Flush(), h.file.Sync())
}

// Stats returns a snapshot of the current statistics
func (h *FileHandler) Stats() handler.Snapshot {
	return h.stats.GetSnapshot()
}

// CanRecycleEntry returns true because entries are formatted before
// Handle returns.
func (h *FileHandler) CanRecycleEntry() bool {
	return true
}

// Close flushes and closes the file. Later calls return the first
// result.
func (h *FileHandler) Close() error {
	h.closeOnce.Do(func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.closed = true
		h.closeErr = h.closeFile()
	})
	return h.closeErr
}
