// Package commands implements the relay-log CLI commands.
package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/cookierelay/cookierelay-go/pkg/log"
)

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [sub:id] SIDE runner Type
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	runner := event.Runner
	if runner == "" {
		runner = "-"
	}
	fmt.Fprintf(w, "%s [sub:%s] %-8s %s %s\n", ts, shortenID(event.SubscriptionID), event.Side, runner, eventType(event))

	switch {
	case event.Key != nil:
		fmt.Fprintf(w, "  Kind: %s\n", event.Key.Kind)
		if event.Key.Identity != "" {
			fmt.Fprintf(w, "  Identity: %s\n", event.Key.Identity)
		}
		if event.Key.Name != "" {
			fmt.Fprintf(w, "  Name: %s\n", event.Key.Name)
		}
	case event.Change != nil:
		formatChange(w, *event.Change)
		if event.Change.Delivered {
			fmt.Fprintln(w, "  Delivered")
		}
	case event.Drop != nil:
		fmt.Fprintf(w, "  Reason: %s\n", event.Drop.Reason)
		formatChange(w, event.Drop.Change)
	case event.StateChange != nil:
		fmt.Fprintf(w, "  %s -> %s\n", event.StateChange.OldState, event.StateChange.NewState)
		if event.StateChange.Reason != "" {
			fmt.Fprintf(w, "  Reason: %s\n", event.StateChange.Reason)
		}
	case event.Error != nil:
		fmt.Fprintf(w, "  Message: %s\n", event.Error.Message)
		if event.Error.Context != "" {
			fmt.Fprintf(w, "  Context: %s\n", event.Error.Context)
		}
	}

	fmt.Fprintln(w)
}

func formatChange(w io.Writer, c log.ChangeEvent) {
	fmt.Fprintf(w, "  Cookie: %s (domain=%s path=%s)\n", c.Name, c.Domain, c.Path)
	fmt.Fprintf(w, "  Cause: %s\n", c.Cause)
}

// eventType returns a short label for the event payload.
func eventType(event log.Event) string {
	switch {
	case event.Key != nil:
		return "Subscribe"
	case event.Change != nil:
		return "Change"
	case event.Drop != nil:
		return "Drop"
	case event.StateChange != nil:
		return "State"
	case event.Error != nil:
		return "Error"
	default:
		return "Unknown"
	}
}

// shortenID returns the first 8 characters of a subscription ID.
func shortenID(id string) string {
	if id == "" {
		return "-"
	}
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// RunView prints every event of the trace file matching filter.
func RunView(path string, filter log.Filter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}
}
