// Package log provides structured tracing of cookie change subscriptions.
//
// Every subscription relay reports what happens to it as Events: when it is
// requested, each state transition of its consumer/store pair, each change it
// forwards and each change it drops. This is separate from operational
// logging (slog); a trace is a complete machine-readable record of one run,
// meant for debugging ordering and teardown problems after the fact.
//
// # Basic Usage
//
// Applications configure tracing by providing a Logger implementation:
//
//	// For development: trace to console via slog
//	opts = append(opts, relay.WithTraceLogger(log.NewSlogAdapter(slog.Default())))
//
//	// For later analysis: write a binary trace file
//	trace, _ := log.NewFileLogger("/var/log/cookie-relay/trace.rlog")
//
//	// Both: use MultiLogger
//	log.NewMultiLogger(log.NewSlogAdapter(slog.Default()), trace)
//
// # Event Types
//
// Events are tagged with the side of the relay that produced them:
//   - Consumer: the runner that owns the subscription handle
//   - Resource: the runner that owns the cookie store
//
// and carry exactly one payload: a subscription key (KeyEvent), a forwarded
// change (ChangeEvent), a dropped change (DropEvent), a lifecycle transition
// (StateChangeEvent) or an error (ErrorEventData).
//
// # File Format
//
// Trace files are a stream of CBOR-encoded events with integer keys, using
// the .rlog extension. The relay-log command views and summarises them.
package log
