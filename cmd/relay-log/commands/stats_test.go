package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/cookierelay/cookierelay-go/pkg/log"
)

func TestCollectStats(t *testing.T) {
	events := sampleEvents()
	delivered := log.ChangeEvent{Name: "session", Domain: "example.com", Path: "/", Cause: "INSERTED", Delivered: true}
	events = append(events, log.Event{
		Timestamp:      testTS.Add(time.Second),
		SubscriptionID: events[0].SubscriptionID,
		Side:           log.SideConsumer,
		Category:       log.CategoryNotify,
		Change:         &delivered,
	})
	path := createTestLogFile(t, events)

	stats, err := CollectStats(path)
	if err != nil {
		t.Fatalf("CollectStats failed: %v", err)
	}

	if stats.TotalEvents != 6 {
		t.Errorf("TotalEvents = %d, want 6", stats.TotalEvents)
	}
	if stats.EventsBySide[log.SideResource] != 2 {
		t.Errorf("resource events = %d, want 2", stats.EventsBySide[log.SideResource])
	}
	if stats.Errors != 1 {
		t.Errorf("Errors = %d, want 1", stats.Errors)
	}
	if stats.DropsByReason[log.DropConsumerGone] != 1 {
		t.Errorf("drops = %v", stats.DropsByReason)
	}
	if len(stats.Subscriptions) != 1 {
		t.Fatalf("Subscriptions = %d, want 1", len(stats.Subscriptions))
	}

	sub := stats.Subscriptions[events[0].SubscriptionID]
	if sub.Key != "BY_COOKIE https://example.com/ session" {
		t.Errorf("Key = %q", sub.Key)
	}
	if sub.Forwarded != 1 || sub.Delivered != 1 || sub.Dropped != 1 {
		t.Errorf("counts = %+v", sub)
	}
	if sub.LastState != "ACTIVE" {
		t.Errorf("LastState = %q, want ACTIVE", sub.LastState)
	}
	if !stats.TimeRange.End.Equal(testTS.Add(time.Second)) {
		t.Errorf("TimeRange.End = %v", stats.TimeRange.End)
	}
}

func TestRunStatsOutput(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	output := buf.String()

	for _, want := range []string{
		"Total Events: 5",
		"CONSUMER:",
		"RESOURCE:",
		"DROP:",
		"CONSUMER_GONE:",
		"Subscriptions: 1",
		"[9b2f4c1e] BY_COOKIE https://example.com/ session",
		"Errors: 1",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got:\n%s", want, output)
		}
	}
}

func TestRunStatsEmptyFile(t *testing.T) {
	path := createTestLogFile(t, nil)

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Total Events: 0") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}
