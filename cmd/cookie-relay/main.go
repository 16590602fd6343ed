// Command cookie-relay runs a cookie store on its own runner and relays its
// change notifications to subscribers on a second runner.
//
// Usage:
//
//	cookie-relay [flags]
//
// Flags:
//
//	-config string          Configuration file path (YAML)
//	-log-level string       Log level: debug, info, warn, error (default "info")
//	-trace-log string       Write relay trace events to this file (.rlog)
//	-state-file string      Load cookies from and save them to this snapshot
//	-seed string            YAML file of cookies to set at startup
//	-interactive            Enable interactive command mode
//	-evict-interval dur     Remove expired cookies periodically (0 disables)
//	-max-per-domain int     Cookie limit per domain (default 180)
//
// Examples:
//
//	# Interactive session with a persistent jar
//	cookie-relay -interactive -state-file jar.cbor
//
//	# Trace every relayed change for later analysis with relay-log
//	cookie-relay -config relay.yaml -trace-log trace.rlog
package main

import (
	"context"
	"errors"
	"flag"
	stdlog "log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cookierelay/cookierelay-go/cmd/cookie-relay/interactive"
	"github.com/cookierelay/cookierelay-go/pkg/cookies"
	"github.com/cookierelay/cookierelay-go/pkg/log"
	"github.com/cookierelay/cookierelay-go/pkg/relay"
	"github.com/cookierelay/cookierelay-go/pkg/taskrunner"
)

var config Config

func init() {
	flag.StringVar(&config.ConfigFile, "config", "", "Configuration file path (YAML)")
	flag.StringVar(&config.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.StringVar(&config.TraceLog, "trace-log", "", "Write relay trace events to this file")
	flag.StringVar(&config.StateFile, "state-file", "", "Load cookies from and save them to this snapshot file")
	flag.StringVar(&config.SeedFile, "seed", "", "YAML file of cookies to set at startup")
	flag.BoolVar(&config.Interactive, "interactive", false, "Enable interactive command mode")
	flag.DurationVar(&config.EvictInterval, "evict-interval", 0, "Remove expired cookies at this interval (0 disables)")
	flag.IntVar(&config.MaxPerDomain, "max-per-domain", cookies.DefaultMaxCookiesPerDomain, "Maximum cookies per domain")
}

func main() {
	flag.Parse()

	if config.ConfigFile != "" {
		explicit := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
		if err := loadConfigFile(config.ConfigFile, &config, explicit); err != nil {
			stdlog.Fatalf("Failed to load configuration: %v", err)
		}
	}
	if err := config.validate(); err != nil {
		stdlog.Fatalf("Invalid configuration: %v", err)
	}

	logger := setupLogging(config.LogLevel)

	stdlog.Println("Cookie Relay")
	stdlog.Println("============")

	trace, closeTrace := setupTrace(logger)
	defer closeTrace()

	resource := taskrunner.NewSequence("store", taskrunner.WithLogger(logger))
	consumer := taskrunner.NewSequence("consumer", taskrunner.WithLogger(logger))
	resource.Start()
	consumer.Start()

	store := cookies.NewStore(resource,
		cookies.WithLogger(logger),
		cookies.WithMaxCookiesPerDomain(config.MaxPerDomain),
	)
	dispatcher := relay.NewStoreDispatcher(store,
		relay.WithLogger(logger),
		relay.WithTraceLogger(trace),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := loadCookies(ctx, store); err != nil {
		stdlog.Fatalf("Failed to load cookies: %v", err)
	}

	watches, err := startWatches(ctx, dispatcher, consumer)
	if err != nil {
		stdlog.Fatalf("Failed to subscribe: %v", err)
	}

	if config.EvictInterval > 0 {
		go runEviction(ctx, store, config.EvictInterval)
	}

	var shell *interactive.Shell
	if config.Interactive {
		shell = interactive.New(store, dispatcher, consumer, os.Stdout)
		go func() {
			if err := shell.Run(ctx, cancel); err != nil {
				stdlog.Printf("Interactive mode failed: %v", err)
				cancel()
			}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		stdlog.Printf("Received signal: %v", sig)
	case <-ctx.Done():
	}

	// Shutdown: stop subscriptions, save the jar, then stop the runners.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if shell != nil {
		if err := shell.UnsubscribeAll(shutdownCtx); err != nil {
			stdlog.Printf("Failed to unsubscribe: %v", err)
		}
	}
	if err := taskrunner.Call(shutdownCtx, consumer, func(ctx context.Context) error {
		for _, sub := range watches {
			sub.Unsubscribe(ctx)
		}
		return nil
	}); err != nil {
		stdlog.Printf("Failed to unsubscribe: %v", err)
	}
	if err := saveCookies(shutdownCtx, store); err != nil {
		stdlog.Printf("Failed to save cookies: %v", err)
	}

	consumer.Stop()
	resource.Stop()
	stdlog.Println("Stopped")
}

// setupLogging configures the standard logger flags and returns the slog
// logger used by the libraries.
func setupLogging(level string) *slog.Logger {
	stdlog.SetFlags(stdlog.Ltime | stdlog.Lmicroseconds)

	var lvl slog.Level
	switch level {
	case "debug":
		stdlog.SetFlags(stdlog.Ltime | stdlog.Lmicroseconds | stdlog.Lshortfile)
		lvl = slog.LevelDebug
	case "warn":
		stdlog.SetFlags(stdlog.Ltime)
		lvl = slog.LevelWarn
	case "error":
		stdlog.SetFlags(stdlog.Ltime)
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger
}

// setupTrace builds the relay trace logger: slog at debug level, plus a
// trace file when configured.
func setupTrace(logger *slog.Logger) (log.Logger, func()) {
	var loggers []log.Logger
	closeFn := func() {}

	if config.LogLevel == "debug" {
		loggers = append(loggers, log.NewSlogAdapter(logger))
	}
	if config.TraceLog != "" {
		fl, err := log.NewFileLogger(config.TraceLog)
		if err != nil {
			stdlog.Fatalf("Failed to open trace log: %v", err)
		}
		stdlog.Printf("Trace log: %s", config.TraceLog)
		loggers = append(loggers, fl)
		closeFn = func() { _ = fl.Close() }
	}

	if len(loggers) == 0 {
		return log.NoopLogger{}, closeFn
	}
	return log.NewMultiLogger(loggers...), closeFn
}

// loadCookies restores the snapshot and applies the seed file.
func loadCookies(ctx context.Context, store *cookies.Store) error {
	if config.StateFile != "" {
		snap, err := cookies.LoadSnapshotFile(config.StateFile)
		if err != nil {
			return err
		}
		if snap != nil {
			err := taskrunner.Call(ctx, store.Runner(), func(ctx context.Context) error {
				n := store.Restore(ctx, snap.Cookies)
				stdlog.Printf("Restored %d cookies from %s (saved %s)", n, config.StateFile, snap.SavedAt.Format(time.RFC3339))
				return nil
			})
			if err != nil {
				return err
			}
		}
	}

	if config.SeedFile != "" {
		seeds, err := cookies.LoadSeedFile(config.SeedFile, time.Now())
		if err != nil {
			return err
		}
		err = taskrunner.Call(ctx, store.Runner(), func(ctx context.Context) error {
			var errs []error
			for _, s := range seeds {
				errs = append(errs, store.SetCookie(ctx, s.Identity, s.Cookie))
			}
			return errors.Join(errs...)
		})
		if err != nil {
			return err
		}
		stdlog.Printf("Seeded %d cookies from %s", len(seeds), config.SeedFile)
	}
	return nil
}

// saveCookies writes the jar to the state file, if configured.
func saveCookies(ctx context.Context, store *cookies.Store) error {
	if config.StateFile == "" {
		return nil
	}
	var all []cookies.Cookie
	if err := taskrunner.Call(ctx, store.Runner(), func(ctx context.Context) error {
		all = store.All(ctx)
		return nil
	}); err != nil {
		return err
	}
	if err := cookies.SaveSnapshotFile(config.StateFile, all); err != nil {
		return err
	}
	stdlog.Printf("Saved %d cookies to %s", len(all), config.StateFile)
	return nil
}

// startWatches creates the configured startup subscriptions on consumer.
func startWatches(ctx context.Context, d *relay.Dispatcher, consumer taskrunner.Runner) ([]*relay.Subscription, error) {
	var subs []*relay.Subscription
	err := taskrunner.Call(ctx, consumer, func(ctx context.Context) error {
		for _, w := range config.Watch {
			cb := func(ch cookies.Change) {
				stdlog.Printf("[watch %s] %s %s=%s (domain=%s path=%s)",
					w.URL, ch.Cause, ch.Cookie.Name, ch.Cookie.Value, ch.Cookie.Domain, ch.Cookie.Path)
			}
			var (
				sub *relay.Subscription
				err error
			)
			if w.Name != "" {
				sub, err = d.AddCallbackForCookie(ctx, w.URL, w.Name, cb)
			} else {
				sub, err = d.AddCallbackForURL(ctx, w.URL, cb)
			}
			if err != nil {
				return err
			}
			stdlog.Printf("Watching %s", sub.Key())
			subs = append(subs, sub)
		}
		return nil
	})
	return subs, err
}

// runEviction removes expired cookies every interval until ctx is done.
func runEviction(ctx context.Context, store *cookies.Store, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			store.Runner().PostTask(func(ctx context.Context) {
				if n := store.EvictExpired(ctx); n > 0 {
					slog.Debug("evicted expired cookies", slog.Int("count", n))
				}
			})
		}
	}
}
