package commands

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/cookierelay/cookierelay-go/pkg/log"
)

// Stats holds aggregate statistics about a trace file.
type Stats struct {
	TotalEvents      int
	EventsBySide     map[log.Side]int
	EventsByCategory map[log.Category]int
	DropsByReason    map[log.DropReason]int
	Subscriptions    map[string]*SubscriptionStats
	Errors           int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// SubscriptionStats holds statistics for one subscription.
type SubscriptionStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Key       string
	Forwarded int
	Delivered int
	Dropped   int
	LastState string
}

// CollectStats reads the whole trace file.
func CollectStats(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsBySide:     make(map[log.Side]int),
		EventsByCategory: make(map[log.Category]int),
		DropsByReason:    make(map[log.DropReason]int),
		Subscriptions:    make(map[string]*SubscriptionStats),
	}

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return stats, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsBySide[event.Side]++
	s.EventsByCategory[event.Category]++

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	if event.Error != nil {
		s.Errors++
	}
	if event.Drop != nil {
		s.DropsByReason[event.Drop.Reason]++
	}

	if event.SubscriptionID == "" {
		return
	}
	sub, ok := s.Subscriptions[event.SubscriptionID]
	if !ok {
		sub = &SubscriptionStats{FirstSeen: event.Timestamp, LastSeen: event.Timestamp}
		s.Subscriptions[event.SubscriptionID] = sub
	}
	if event.Timestamp.After(sub.LastSeen) {
		sub.LastSeen = event.Timestamp
	}

	switch {
	case event.Key != nil:
		sub.Key = event.Key.Kind + " " + event.Key.Identity
		if event.Key.Name != "" {
			sub.Key += " " + event.Key.Name
		}
	case event.Change != nil && event.Change.Delivered:
		sub.Delivered++
	case event.Change != nil:
		sub.Forwarded++
	case event.Drop != nil:
		sub.Dropped++
	case event.StateChange != nil:
		sub.LastState = event.StateChange.NewState
	}
}

// RunStats analyzes the trace file and prints statistics.
func RunStats(path string, w io.Writer) error {
	stats, err := CollectStats(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Cookie Relay Trace Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Millisecond))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Side:")
	for _, side := range []log.Side{log.SideConsumer, log.SideResource} {
		if count := stats.EventsBySide[side]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", side.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategorySubscribe, log.CategoryNotify, log.CategoryDrop, log.CategoryState, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}

	if len(stats.DropsByReason) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Drops by Reason:")
		for _, r := range []log.DropReason{log.DropConsumerGone, log.DropRunnerStopped} {
			if count := stats.DropsByReason[r]; count > 0 {
				fmt.Fprintf(w, "  %-16s %d\n", r.String()+":", count)
			}
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Subscriptions: %d\n", len(stats.Subscriptions))
	if len(stats.Subscriptions) > 0 {
		type subInfo struct {
			id    string
			stats *SubscriptionStats
		}
		subs := make([]subInfo, 0, len(stats.Subscriptions))
		for id, ss := range stats.Subscriptions {
			subs = append(subs, subInfo{id, ss})
		}
		sort.Slice(subs, func(i, j int) bool {
			return subs[i].stats.FirstSeen.Before(subs[j].stats.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, s := range subs {
			fmt.Fprintf(w, "  [%s] %s\n", shortenID(s.id), s.stats.Key)
			fmt.Fprintf(w, "           forwarded %d, delivered %d, dropped %d\n",
				s.stats.Forwarded, s.stats.Delivered, s.stats.Dropped)
			if s.stats.LastState != "" {
				fmt.Fprintf(w, "           State: %s\n", s.stats.LastState)
			}
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
