// Package interactive provides the interactive command-line interface
// for cookie-relay.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chzyer/readline"

	"github.com/cookierelay/cookierelay-go/pkg/cookies"
	"github.com/cookierelay/cookierelay-go/pkg/relay"
	"github.com/cookierelay/cookierelay-go/pkg/taskrunner"
)

// Shell runs relay commands typed by the user. Store commands run on the
// store's runner and subscriptions are made from the consumer runner, so
// change notifications print from there.
type Shell struct {
	store      *cookies.Store
	dispatcher *relay.Dispatcher
	consumer   taskrunner.Runner
	out        *syncWriter

	// Only touched on the consumer runner.
	subs map[string]*relay.Subscription
}

// New creates a shell writing to out.
func New(store *cookies.Store, dispatcher *relay.Dispatcher, consumer taskrunner.Runner, out io.Writer) *Shell {
	return &Shell{
		store:      store,
		dispatcher: dispatcher,
		consumer:   consumer,
		out:        &syncWriter{w: out},
		subs:       make(map[string]*relay.Subscription),
	}
}

// Run reads commands with line editing until quit, EOF or ctx is done.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "relay> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()
	s.out.set(rl.Stdout())

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			cancel()
			return nil
		}

		if !s.Execute(ctx, line) {
			cancel()
			return nil
		}
	}
}

// Execute runs one command line. It returns false when the user asked to
// quit.
func (s *Shell) Execute(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	var err error
	switch cmd {
	case "help", "?":
		s.printHelp()
	case "subscribe", "sub":
		err = s.cmdSubscribe(ctx, args)
	case "subscribe-all":
		err = s.cmdSubscribeAll(ctx)
	case "unsubscribe", "unsub":
		err = s.cmdUnsubscribe(ctx, args)
	case "subs":
		err = s.cmdSubs(ctx)
	case "set":
		err = s.cmdSet(ctx, args)
	case "delete", "del":
		err = s.cmdDelete(ctx, args)
	case "list", "ls":
		err = s.cmdList(ctx, args)
	case "evict":
		err = s.cmdEvict(ctx)
	case "quit", "exit", "q":
		fmt.Fprintln(s.out, "Exiting...")
		return false
	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
	return true
}

// UnsubscribeAll cancels every subscription made through the shell.
func (s *Shell) UnsubscribeAll(ctx context.Context) error {
	return taskrunner.Call(ctx, s.consumer, func(ctx context.Context) error {
		for id, sub := range s.subs {
			sub.Unsubscribe(ctx)
			delete(s.subs, id)
		}
		return nil
	})
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
Cookie Relay Commands:
  Subscriptions:
    subscribe <url> [name]            - Watch one cookie, or every cookie for url
    subscribe-all                     - Watch every change (not supported)
    unsubscribe <id>                  - Cancel a subscription (id prefix is enough)
    subs                              - List subscriptions

  Cookies:
    set <url> <name> <value> [max-age] - Store a cookie (max-age in seconds)
    delete <url> <name>               - Delete a cookie
    list [url]                        - List cookies (visible to url)
    evict                             - Remove expired cookies

  General:
    help                              - Show this help
    quit                              - Exit`)
}

func (s *Shell) cmdSubscribe(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New("usage: subscribe <url> [name]")
	}

	return taskrunner.Call(ctx, s.consumer, func(ctx context.Context) error {
		// Changes are always delivered in a later task, after id is set.
		var id string
		cb := func(ch cookies.Change) { s.printChange(id, ch) }

		var (
			sub *relay.Subscription
			err error
		)
		if len(args) == 2 {
			sub, err = s.dispatcher.AddCallbackForCookie(ctx, args[0], args[1], cb)
		} else {
			sub, err = s.dispatcher.AddCallbackForURL(ctx, args[0], cb)
		}
		if err != nil {
			return err
		}

		id = sub.ID().String()
		s.subs[id] = sub
		fmt.Fprintf(s.out, "Subscribed %s (%s)\n", id, sub.Key())
		return nil
	})
}

func (s *Shell) cmdSubscribeAll(ctx context.Context) error {
	return taskrunner.Call(ctx, s.consumer, func(ctx context.Context) error {
		_, err := s.dispatcher.AddCallbackForAllChanges(ctx, func(cookies.Change) {})
		return err
	})
}

func (s *Shell) cmdUnsubscribe(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: unsubscribe <id>")
	}

	return taskrunner.Call(ctx, s.consumer, func(ctx context.Context) error {
		id, err := s.resolve(args[0])
		if err != nil {
			return err
		}
		s.subs[id].Unsubscribe(ctx)
		delete(s.subs, id)
		fmt.Fprintf(s.out, "Unsubscribed %s\n", id)
		return nil
	})
}

// resolve finds the subscription whose ID starts with prefix.
func (s *Shell) resolve(prefix string) (string, error) {
	var match string
	for id := range s.subs {
		if strings.HasPrefix(id, prefix) {
			if match != "" {
				return "", fmt.Errorf("ambiguous subscription id %q", prefix)
			}
			match = id
		}
	}
	if match == "" {
		return "", fmt.Errorf("no subscription %q", prefix)
	}
	return match, nil
}

func (s *Shell) cmdSubs(ctx context.Context) error {
	return taskrunner.Call(ctx, s.consumer, func(context.Context) error {
		if len(s.subs) == 0 {
			fmt.Fprintln(s.out, "No subscriptions")
			return nil
		}
		ids := make([]string, 0, len(s.subs))
		for id := range s.subs {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		fmt.Fprintf(s.out, "Subscriptions (%d):\n", len(ids))
		for _, id := range ids {
			sub := s.subs[id]
			fmt.Fprintf(s.out, "  %s  %-13s %s\n", id, sub.State(), sub.Key())
		}
		return nil
	})
}

func (s *Shell) cmdSet(ctx context.Context, args []string) error {
	if len(args) < 3 || len(args) > 4 {
		return errors.New("usage: set <url> <name> <value> [max-age]")
	}
	id, err := cookies.ParseIdentity(args[0])
	if err != nil {
		return err
	}
	c := cookies.Cookie{Name: args[1], Value: args[2]}
	if len(args) == 4 {
		secs, err := strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("invalid max-age %q: %w", args[3], err)
		}
		c.Expires = time.Now().Add(time.Duration(secs) * time.Second)
	}

	return taskrunner.Call(ctx, s.store.Runner(), func(ctx context.Context) error {
		return s.store.SetCookie(ctx, id, c)
	})
}

func (s *Shell) cmdDelete(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: delete <url> <name>")
	}
	id, err := cookies.ParseIdentity(args[0])
	if err != nil {
		return err
	}

	return taskrunner.Call(ctx, s.store.Runner(), func(ctx context.Context) error {
		n := s.store.DeleteCookie(ctx, id, args[1])
		fmt.Fprintf(s.out, "Deleted %d cookie(s)\n", n)
		return nil
	})
}

func (s *Shell) cmdList(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return errors.New("usage: list [url]")
	}
	var id cookies.Identity
	if len(args) == 1 {
		var err error
		if id, err = cookies.ParseIdentity(args[0]); err != nil {
			return err
		}
	}

	var list []cookies.Cookie
	err := taskrunner.Call(ctx, s.store.Runner(), func(ctx context.Context) error {
		if id.IsZero() {
			list = s.store.All(ctx)
		} else {
			list = s.store.Cookies(ctx, id)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if len(list) == 0 {
		fmt.Fprintln(s.out, "No cookies")
		return nil
	}
	fmt.Fprintf(s.out, "Cookies (%d):\n", len(list))
	for _, c := range list {
		expires := "session"
		if !c.IsSession() {
			expires = c.Expires.Format(time.RFC3339)
		}
		fmt.Fprintf(s.out, "  %s=%s  domain=%s path=%s expires=%s\n", c.Name, c.Value, c.Domain, c.Path, expires)
	}
	return nil
}

func (s *Shell) cmdEvict(ctx context.Context) error {
	return taskrunner.Call(ctx, s.store.Runner(), func(ctx context.Context) error {
		fmt.Fprintf(s.out, "Evicted %d expired cookie(s)\n", s.store.EvictExpired(ctx))
		return nil
	})
}

func (s *Shell) printChange(id string, ch cookies.Change) {
	fmt.Fprintf(s.out, "[%s] %s %s=%s (domain=%s path=%s)\n",
		shortID(id), ch.Cause, ch.Cookie.Name, ch.Cookie.Value, ch.Cookie.Domain, ch.Cookie.Path)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// syncWriter serialises writes from the command loop and the consumer
// runner.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.w.Write(p)
}

func (w *syncWriter) set(out io.Writer) {
	w.mu.Lock()
	w.w = out
	w.mu.Unlock()
}
