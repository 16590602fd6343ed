package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/cookierelay/cookierelay-go/pkg/log"
)

// ParseSideFlag parses a relay side (case-insensitive).
func ParseSideFlag(s string) (log.Side, error) {
	switch strings.ToLower(s) {
	case "consumer":
		return log.SideConsumer, nil
	case "resource":
		return log.SideResource, nil
	default:
		return 0, fmt.Errorf("invalid side: %s (must be consumer or resource)", s)
	}
}

// ParseCategoryFlag parses an event category (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "subscribe":
		return log.CategorySubscribe, nil
	case "notify":
		return log.CategoryNotify, nil
	case "drop":
		return log.CategoryDrop, nil
	case "state":
		return log.CategoryState, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be subscribe, notify, drop, state, or error)", s)
	}
}

// FilterOptions holds the string form of filter flags shared by the view
// and filter commands.
type FilterOptions struct {
	SubscriptionID string
	Side           string
	Category       string
	TimeStart      string
	TimeEnd        string
}

// Build converts the options into a log.Filter.
func (o FilterOptions) Build() (log.Filter, error) {
	filter := log.Filter{SubscriptionID: o.SubscriptionID}

	if o.Side != "" {
		s, err := ParseSideFlag(o.Side)
		if err != nil {
			return log.Filter{}, err
		}
		filter.Side = &s
	}
	if o.Category != "" {
		c, err := ParseCategoryFlag(o.Category)
		if err != nil {
			return log.Filter{}, err
		}
		filter.Category = &c
	}
	if o.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, o.TimeStart)
		if err != nil {
			return log.Filter{}, fmt.Errorf("invalid time-start format: %w", err)
		}
		filter.TimeStart = &t
	}
	if o.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, o.TimeEnd)
		if err != nil {
			return log.Filter{}, fmt.Errorf("invalid time-end format: %w", err)
		}
		filter.TimeEnd = &t
	}
	return filter, nil
}
