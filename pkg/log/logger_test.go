package log

import (
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestNoopLogger(t *testing.T) {
	var l Logger = NoopLogger{}
	l.Log(Event{SubscriptionID: "ignored"})
}

func TestFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "append.rlog")

	for i := 0; i < 2; i++ {
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("NewFileLogger failed: %v", err)
		}
		logger.Log(Event{Timestamp: time.Now(), SubscriptionID: "s"})
		logger.Close()
	}

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()
	if got := len(readAll(t, reader)); got != 2 {
		t.Errorf("got %d events, want 2", got)
	}
}

func TestFileLoggerIgnoresLogAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "closed.rlog")
	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	logger.Log(Event{SubscriptionID: "before"})
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	logger.Log(Event{SubscriptionID: "after"})

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()
	events := readAll(t, reader)
	if len(events) != 1 || events[0].SubscriptionID != "before" {
		t.Errorf("got %+v, want only the event logged before Close", events)
	}
}

func TestFileLoggerConcurrentWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "concurrent.rlog")
	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				logger.Log(Event{Timestamp: time.Now(), Category: CategoryNotify})
			}
		}()
	}
	wg.Wait()
	logger.Close()

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()
	if got := len(readAll(t, reader)); got != 200 {
		t.Errorf("got %d events, want 200", got)
	}
}

func TestMultiLoggerFansOut(t *testing.T) {
	a, b := NewMemoryLogger(), NewMemoryLogger()
	m := NewMultiLogger(a, nil, b)

	m.Log(Event{SubscriptionID: "x"})
	m.Log(Event{SubscriptionID: "y"})

	for name, l := range map[string]*MemoryLogger{"a": a, "b": b} {
		events := l.Events()
		if len(events) != 2 {
			t.Fatalf("%s: got %d events, want 2", name, len(events))
		}
		if events[0].SubscriptionID != "x" || events[1].SubscriptionID != "y" {
			t.Errorf("%s: events out of order: %+v", name, events)
		}
	}
}

func TestMemoryLoggerFilteredAndReset(t *testing.T) {
	m := NewMemoryLogger()
	drop := CategoryDrop
	m.Log(Event{SubscriptionID: "a", Category: CategoryNotify})
	m.Log(Event{SubscriptionID: "a", Category: CategoryDrop})
	m.Log(Event{SubscriptionID: "b", Category: CategoryDrop})

	if got := len(m.Filtered(Filter{Category: &drop})); got != 2 {
		t.Errorf("drops: got %d, want 2", got)
	}
	if got := len(m.Filtered(Filter{SubscriptionID: "a"})); got != 2 {
		t.Errorf("sub a: got %d, want 2", got)
	}

	events := m.Events()
	events[0].SubscriptionID = "mutated"
	if m.Events()[0].SubscriptionID != "a" {
		t.Error("Events must return a copy")
	}

	m.Reset()
	if len(m.Events()) != 0 {
		t.Error("Reset did not clear events")
	}
}
