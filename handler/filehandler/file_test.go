package filehandler

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/philipp01105/plog/core"
	"github.com/philipp01105/plog/formatter"
	"github.com/philipp01105/plog/handler"
)

func newEntry(event string) *core.Entry {
	return &core.Entry{Level: core.InfoLevel, Event: event, Path: []string{"app"}}
}

func textFormatter() formatter.BufferFormatter {
	return formatter.NewTextFormatter(formatter.Config{OmitTime: true})
}

func readFile(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("ReadFile(%s) error = %v", name, err)
	}
	return string(b)
}

func TestFileHandler_WriteAndClose(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "logs", "app.log")

	h, err := NewFileHandler(FileConfig{Filename: filename, Formatter: textFormatter()})
	if err != nil {
		t.Fatal(err)
	}

	if err := h.Handle(newEntry("first")); err != nil {
		t.Errorf("Handle() error = %v", err)
	}
	if err := h.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	if got := readFile(t, filename); got != "[INFO] app first\n" {
		t.Errorf("file = %q, want %q", got, "[INFO] app first\n")
	}
	if err := h.Handle(newEntry("late")); err != handler.ErrClosed {
		t.Errorf("Handle() after Close error = %v, want %v", err, handler.ErrClosed)
	}
	if err := h.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestFileHandler_Appends(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(filename, []byte("existing\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	h, err := NewFileHandler(FileConfig{Filename: filename, Formatter: textFormatter()})
	if err != nil {
		t.Fatal(err)
	}
	_ = h.Handle(newEntry("more"))
	if err := h.Sync(); err != nil {
		t.Errorf("Sync() error = %v", err)
	}

	if got := readFile(t, filename); got != "existing\n[INFO] app more\n" {
		t.Errorf("file = %q", got)
	}
	h.Close()
}

func TestFileHandler_MaxSize(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "app.log")
	line := "[INFO] app 0123456789\n"

	h, err := NewFileHandler(FileConfig{
		Filename:   filename,
		Formatter:  textFormatter(),
		MaxSize:    int64(2 * len(line)), // two entries per file
		MaxBackups: 2,
	})
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 9; i++ {
		if err := h.Handle(newEntry("0123456789")); err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
	}
	if err := h.Close(); err != nil {
		t.Fatal(err)
	}

	backups, err := h.Backups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 2 {
		t.Fatalf("Expected 2 backups, got %d: %v", len(backups), backups)
	}
	for _, b := range backups {
		if got := readFile(t, b); got != line+line {
			t.Errorf("backup %s = %q, want two entries", b, got)
		}
	}
	if got := readFile(t, filename); got != line {
		t.Errorf("current file = %q, want one entry", got)
	}
	if got := h.Stats().ProcessedTotal; got != 9 {
		t.Errorf("ProcessedTotal = %d, want 9", got)
	}
}

func TestFileHandler_OversizedEntry(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "app.log")

	h, err := NewFileHandler(FileConfig{Filename: filename, Formatter: textFormatter(), MaxSize: 5})
	if err != nil {
		t.Fatal(err)
	}
	_ = h.Handle(newEntry(strings.Repeat("x", 20)))
	h.Close()

	backups, _ := h.Backups()
	if len(backups) != 0 {
		t.Errorf("an entry larger than MaxSize must not rotate an empty file, got %v", backups)
	}
}

func TestFileHandler_RotateInterval(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "app.log")

	h, err := NewFileHandler(FileConfig{
		Filename:       filename,
		Formatter:      textFormatter(),
		RotateInterval: time.Hour,
	})
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return now }
	h.opened = now

	_ = h.Handle(newEntry("first"))
	now = now.Add(30 * time.Minute)
	_ = h.Handle(newEntry("second"))
	now = now.Add(31 * time.Minute)
	_ = h.Handle(newEntry("third"))
	h.Close()

	backups, _ := h.Backups()
	if len(backups) != 1 {
		t.Fatalf("Expected 1 backup, got %v", backups)
	}
	if want := filename + ".2026-03-01T13-01-00.000"; backups[0] != want {
		t.Errorf("backup = %s, want %s", backups[0], want)
	}
	if got := readFile(t, backups[0]); got != "[INFO] app first\n[INFO] app second\n" {
		t.Errorf("backup = %q", got)
	}
	if got := readFile(t, filename); got != "[INFO] app third\n" {
		t.Errorf("current file = %q", got)
	}
}

func TestNewFileHandler_RequiresFilename(t *testing.T) {
	if _, err := NewFileHandler(FileConfig{}); err == nil {
		t.Error("Expected error for empty filename")
	}
}

func BenchmarkFileHandler(b *testing.B) {
	h, err := NewFileHandler(FileConfig{Filename: filepath.Join(b.TempDir(), "bench.log")})
	if err != nil {
		b.Fatal(err)
	}
	defer h.Close()

	entry := newEntry("benchmark")
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = h.Handle(entry)
	}
}
