package taskrunner

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Sequence is a Runner backed by a single goroutine.
//
// Tasks may be posted before Start; they run once the goroutine starts.
// After Stop, PostTask returns false and queued tasks are discarded.
type Sequence struct {
	name   string
	logger *slog.Logger

	mu      sync.Mutex
	queue   []Task
	stopped bool
	wake    chan struct{}

	// Background processing
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running atomic.Bool
	exited  chan struct{}
}

// SequenceOption configures a Sequence.
type SequenceOption func(*Sequence)

// WithLogger sets the operational logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) SequenceOption {
	return func(s *Sequence) {
		s.logger = logger
	}
}

// NewSequence creates a stopped Sequence. Call Start to begin running tasks.
func NewSequence(name string, opts ...SequenceOption) *Sequence {
	s := &Sequence{
		name:   name,
		logger: slog.Default(),
		wake:   make(chan struct{}, 1),
		exited: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(slog.String("runner", name))
	return s
}

// Name returns the sequence name.
func (s *Sequence) Name() string {
	return s.name
}

// Start launches the goroutine that runs tasks. A Sequence can only be
// started once; later calls are ignored.
func (s *Sequence) Start() {
	if s.running.Swap(true) {
		return // Already running
	}

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.mu.Unlock()

	s.wg.Add(1)
	go s.loop(WithRunner(s.ctx, s))
}

// Stop stops accepting tasks, discards the queue and waits for the running
// task, if any, to return. Stop must not be called from a task on s.
func (s *Sequence) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	dropped := len(s.queue)
	s.queue = nil
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()

	if dropped > 0 {
		s.logger.Debug("discarded queued tasks on stop", slog.Int("count", dropped))
	}
}

// PostTask implements Runner.
func (s *Sequence) PostTask(task Task) bool {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return false
	}
	s.queue = append(s.queue, task)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
	return true
}

// RunsTasksInCurrentSequence implements Runner.
func (s *Sequence) RunsTasksInCurrentSequence(ctx context.Context) bool {
	return Current(ctx) == Runner(s)
}

// Flush waits until every task posted before the call has run.
// It returns ErrStopped if the sequence stops first.
func (s *Sequence) Flush(ctx context.Context) error {
	done := make(chan struct{})
	if !s.PostTask(func(context.Context) { close(done) }) {
		return ErrStopped
	}

	select {
	case <-done:
		return nil
	case <-s.exited:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pending returns the number of queued tasks.
func (s *Sequence) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

func (s *Sequence) loop(ctx context.Context) {
	defer s.wg.Done()
	defer close(s.exited)

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.wake:
		}

		for {
			if ctx.Err() != nil {
				return
			}
			task := s.pop()
			if task == nil {
				break
			}
			task(ctx)
		}
	}
}

func (s *Sequence) pop() Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) == 0 {
		return nil
	}
	task := s.queue[0]
	s.queue[0] = nil
	s.queue = s.queue[1:]
	return task
}

// Compile-time interface satisfaction check.
var _ Runner = (*Sequence)(nil)
