package handler

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"go.uber.org/multierr"

	"github.com/philipp01105/plog/core"
	"github.com/philipp01105/plog/formatter"
)

// memHandler formats entries into a buffer, for tests in this package.
type memHandler struct {
	mu      sync.Mutex
	buf     bytes.Buffer
	f       formatter.Formatter
	entries []core.Entry
	err     error
	closed  bool
	recycle bool
}

func newMemHandler() *memHandler {
	return &memHandler{f: formatter.NewTextFormatter(formatter.Config{OmitTime: true}), recycle: true}
}

func (h *memHandler) Handle(entry *core.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	out, _ := h.f.Format(entry)
	h.buf.Write(out)
	e := *entry
	e.Fields = append([]core.Field(nil), entry.Fields...)
	h.entries = append(h.entries, e)
	return h.err
}

func (h *memHandler) Close() error {
	h.closed = true
	return h.err
}

func (h *memHandler) CanRecycleEntry() bool {
	return h.recycle
}

func (h *memHandler) String() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.buf.String()
}

func TestStats_PerLevel(t *testing.T) {
	s := NewStats()
	for _, l := range core.Levels() {
		for i := 0; i < int(l); i++ {
			s.IncrementDropped(l)
		}
	}
	s.IncrementDropped(core.Level(0))
	s.IncrementDropped(core.Level(42))
	s.IncrementBlocked()
	s.IncrementProcessed()
	s.IncrementProcessed()

	for _, l := range core.Levels() {
		if got := s.GetDropped(l); got != uint64(l) {
			t.Errorf("GetDropped(%v) = %d, want %d", l, got, l)
		}
	}
	if got := s.GetTotalDropped(); got != 21 {
		t.Errorf("GetTotalDropped() = %d, want 21", got)
	}

	snap := s.GetSnapshot()
	if snap.DroppedTotal[core.TraceLevel] != 1 || snap.DroppedTotal[core.FatalLevel] != 6 {
		t.Errorf("GetSnapshot().DroppedTotal = %v", snap.DroppedTotal)
	}
	if snap.BlockedTotal != 1 || snap.ProcessedTotal != 2 {
		t.Errorf("GetSnapshot() = %+v", snap)
	}

	s.Reset()
	if s.GetTotalDropped() != 0 || s.GetBlocked() != 0 || s.GetProcessed() != 0 {
		t.Error("Reset() should zero all counters")
	}
}

func TestStats_Concurrent(t *testing.T) {
	s := NewStats()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				s.IncrementDropped(core.InfoLevel)
				s.IncrementProcessed()
			}
		}()
	}
	wg.Wait()

	if got := s.GetDropped(core.InfoLevel); got != 8000 {
		t.Errorf("GetDropped(Info) = %d, want 8000", got)
	}
	if got := s.GetProcessed(); got != 8000 {
		t.Errorf("GetProcessed() = %d, want 8000", got)
	}
}

func TestDefaultLevelPolicy(t *testing.T) {
	p := DefaultLevelPolicy()
	for _, l := range core.Levels() {
		want := DropNewest
		if l >= core.ErrorLevel {
			want = Block
		}
		if p[l] != want {
			t.Errorf("DefaultLevelPolicy()[%v] = %v, want %v", l, p[l], want)
		}
	}
}

func TestOverflowPolicy_String(t *testing.T) {
	tests := map[OverflowPolicy]string{
		DropNewest:         "DropNewest",
		DropOldest:         "DropOldest",
		Block:              "Block",
		OverflowPolicy(99): "Unknown",
	}
	for p, want := range tests {
		if got := p.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}

func TestMultiHandler(t *testing.T) {
	h1, h2 := newMemHandler(), newMemHandler()
	m := NewMultiHandler(h1, h2)

	entry := &core.Entry{Level: core.InfoLevel, Event: "fan out", Path: []string{"app"}}
	if err := m.Handle(entry); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	want := "[INFO] app fan out\n"
	if h1.String() != want || h2.String() != want {
		t.Errorf("outputs = %q, %q, want %q", h1.String(), h2.String(), want)
	}
	if !m.CanRecycleEntry() {
		t.Error("CanRecycleEntry() = false, want true")
	}

	if err := m.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if !h1.closed || !h2.closed {
		t.Error("Close() should close every child")
	}
}

func TestMultiHandler_CombinesErrors(t *testing.T) {
	errA, errB := errors.New("a failed"), errors.New("b failed")
	h1, h2, h3 := newMemHandler(), newMemHandler(), newMemHandler()
	h1.err, h3.err = errA, errB

	m := NewMultiHandler(h1, h2, h3)
	err := m.Handle(&core.Entry{Level: core.ErrorLevel, Event: "x"})

	if got := len(multierr.Errors(err)); got != 2 {
		t.Fatalf("len(Errors()) = %d, want 2", got)
	}
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("Handle() error = %v, want both child errors", err)
	}
	if h2.String() == "" {
		t.Error("a failing handler should not stop the others")
	}
}

func TestMultiHandler_Recycle(t *testing.T) {
	h1, h2 := newMemHandler(), newMemHandler()
	h2.recycle = false
	if NewMultiHandler(h1, h2).CanRecycleEntry() {
		t.Error("CanRecycleEntry() = true with a non-recycling child")
	}
	if CanRecycle(struct{ Handler }{h1}) {
		t.Error("CanRecycle() = true for a handler without CanRecycleEntry")
	}
}
