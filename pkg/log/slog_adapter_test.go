package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"
)

func logJSON(t *testing.T, event Event) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	NewSlogAdapter(slog.New(handler)).Log(event)

	if buf.Len() == 0 {
		t.Fatal("no output produced")
	}
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	return entry
}

func TestSlogAdapterLogsKeyEvent(t *testing.T) {
	entry := logJSON(t, Event{
		Timestamp:      time.Now(),
		SubscriptionID: "sub-123",
		Side:           SideConsumer,
		Category:       CategorySubscribe,
		Runner:         "ui",
		Key:            &KeyEvent{Kind: "BY_COOKIE", Identity: "https://example.com/", Name: "session"},
	})

	want := map[string]any{
		"msg":      "relay",
		"level":    "DEBUG",
		"sub_id":   "sub-123",
		"side":     "CONSUMER",
		"category": "SUBSCRIBE",
		"runner":   "ui",
		"kind":     "BY_COOKIE",
		"identity": "https://example.com/",
		"name":     "session",
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("%s: got %v, want %v", k, entry[k], v)
		}
	}
}

func TestSlogAdapterLogsDropEvent(t *testing.T) {
	entry := logJSON(t, Event{
		SubscriptionID: "sub-9",
		Side:           SideConsumer,
		Category:       CategoryDrop,
		Drop: &DropEvent{
			Reason: DropConsumerGone,
			Change: ChangeEvent{Name: "session", Domain: "example.com", Path: "/", Cause: "INSERTED"},
		},
	})

	if entry["reason"] != "CONSUMER_GONE" {
		t.Errorf("reason: got %v", entry["reason"])
	}
	if entry["cookie"] != "session" {
		t.Errorf("cookie: got %v", entry["cookie"])
	}
	if entry["cause"] != "INSERTED" {
		t.Errorf("cause: got %v", entry["cause"])
	}
}

func TestSlogAdapterLogsStateChange(t *testing.T) {
	entry := logJSON(t, Event{
		Side:        SideResource,
		Category:    CategoryState,
		StateChange: &StateChangeEvent{OldState: "SUBSCRIBING", NewState: "ACTIVE"},
	})
	if entry["old_state"] != "SUBSCRIBING" || entry["new_state"] != "ACTIVE" {
		t.Errorf("got old=%v new=%v", entry["old_state"], entry["new_state"])
	}
	if _, ok := entry["reason"]; ok {
		t.Error("empty reason should be omitted")
	}
}

func TestSlogAdapterLogsError(t *testing.T) {
	entry := logJSON(t, Event{
		Category: CategoryError,
		Error:    &ErrorEventData{Message: "not implemented", Context: "AddCallbackForAllChanges"},
	})
	if entry["error_msg"] != "not implemented" {
		t.Errorf("error_msg: got %v", entry["error_msg"])
	}
	if entry["error_context"] != "AddCallbackForAllChanges" {
		t.Errorf("error_context: got %v", entry["error_context"])
	}
}

func TestSlogAdapterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	NewSlogAdapter(slog.New(handler)).Log(Event{SubscriptionID: "quiet"})
	if buf.Len() != 0 {
		t.Errorf("expected no output at info level, got %q", buf.String())
	}
}
