package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes trace events to an slog.Logger at debug level.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter writing to logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event with one attribute per populated field.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("sub_id", event.SubscriptionID),
		slog.String("side", event.Side.String()),
		slog.String("category", event.Category.String()),
	}
	if event.Runner != "" {
		attrs = append(attrs, slog.String("runner", event.Runner))
	}

	switch {
	case event.Key != nil:
		attrs = append(attrs, slog.String("kind", event.Key.Kind))
		if event.Key.Identity != "" {
			attrs = append(attrs, slog.String("identity", event.Key.Identity))
		}
		if event.Key.Name != "" {
			attrs = append(attrs, slog.String("name", event.Key.Name))
		}
	case event.Change != nil:
		attrs = append(attrs, changeAttrs(*event.Change)...)
		if event.Change.Delivered {
			attrs = append(attrs, slog.Bool("delivered", true))
		}
	case event.Drop != nil:
		attrs = append(attrs, slog.String("reason", event.Drop.Reason.String()))
		attrs = append(attrs, changeAttrs(event.Drop.Change)...)
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Error != nil:
		attrs = append(attrs, slog.String("error_msg", event.Error.Message))
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "relay", attrs...)
}

func changeAttrs(c ChangeEvent) []slog.Attr {
	return []slog.Attr{
		slog.String("cookie", c.Name),
		slog.String("domain", c.Domain),
		slog.String("path", c.Path),
		slog.String("cause", c.Cause),
	}
}

var _ Logger = (*SlogAdapter)(nil)
