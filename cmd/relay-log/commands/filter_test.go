package commands

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/cookierelay/cookierelay-go/pkg/log"
)

func TestRunFilterByCategory(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "filtered.rlog")

	n, err := RunFilter(path, out, FilterOptions{Category: "drop"})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}
	if n != 1 {
		t.Errorf("got %d events, want 1", n)
	}

	reader, err := log.NewReader(out)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer reader.Close()

	event, err := reader.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if event.Drop == nil || event.Drop.Reason != log.DropConsumerGone {
		t.Errorf("unexpected event: %+v", event)
	}
	if _, err := reader.Next(); err != io.EOF {
		t.Errorf("expected EOF, got %v", err)
	}
}

func TestRunFilterBySubscription(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "filtered.rlog")

	n, err := RunFilter(path, out, FilterOptions{SubscriptionID: sampleEvents()[0].SubscriptionID})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}
	if n != 4 {
		t.Errorf("got %d events, want 4", n)
	}
}

func TestRunFilterInvalidOptions(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	if _, err := RunFilter(path, filepath.Join(t.TempDir(), "x.rlog"), FilterOptions{Side: "left"}); err == nil {
		t.Error("expected error for invalid side")
	}
}
