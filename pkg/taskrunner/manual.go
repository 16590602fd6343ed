package taskrunner

import (
	"context"
	"sync"
)

// Manual is a Runner that only runs tasks when told to, on the goroutine
// that calls RunPending or RunUntilIdle. PostTask is safe from any goroutine.
type Manual struct {
	name string
	ctx  context.Context

	mu      sync.Mutex
	queue   []Task
	stopped bool
}

// NewManual creates a Manual runner.
func NewManual(name string) *Manual {
	m := &Manual{name: name}
	m.ctx = WithRunner(context.Background(), m)
	return m
}

// Name returns the runner name.
func (m *Manual) Name() string {
	return m.name
}

// Context returns a context that is considered to be running on m.
// Tests use it to act "from" the runner without posting a task.
func (m *Manual) Context() context.Context {
	return m.ctx
}

// PostTask implements Runner.
func (m *Manual) PostTask(task Task) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stopped {
		return false
	}
	m.queue = append(m.queue, task)
	return true
}

// RunsTasksInCurrentSequence implements Runner.
func (m *Manual) RunsTasksInCurrentSequence(ctx context.Context) bool {
	return Current(ctx) == Runner(m)
}

// RunPending runs the tasks that were queued when it was called and returns
// how many ran. Tasks posted while running wait for the next call.
func (m *Manual) RunPending() int {
	m.mu.Lock()
	batch := m.queue
	m.queue = nil
	m.mu.Unlock()

	for _, task := range batch {
		task(m.ctx)
	}
	return len(batch)
}

// RunUntilIdle runs tasks until the queue is empty, including tasks posted
// by the tasks it runs. It returns how many ran.
func (m *Manual) RunUntilIdle() int {
	total := 0
	for {
		n := m.RunPending()
		if n == 0 {
			return total
		}
		total += n
	}
}

// Pending returns the number of queued tasks.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// Stop discards queued tasks and rejects new ones.
func (m *Manual) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
	m.queue = nil
}

// RunAllUntilIdle drains several manual runners in turn until none of them
// has work left, so tasks that bounce between runners are followed through.
func RunAllUntilIdle(runners ...*Manual) int {
	total := 0
	for {
		progress := 0
		for _, r := range runners {
			progress += r.RunUntilIdle()
		}
		if progress == 0 {
			return total
		}
		total += progress
	}
}

// Compile-time interface satisfaction check.
var _ Runner = (*Manual)(nil)
