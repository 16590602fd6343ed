package taskrunner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManualRunsOnlyWhenDrained(t *testing.T) {
	m := NewManual("consumer")

	ran := 0
	m.PostTask(func(context.Context) { ran++ })
	m.PostTask(func(context.Context) { ran++ })

	assert.Equal(t, 0, ran)
	assert.Equal(t, 2, m.Pending())

	assert.Equal(t, 2, m.RunPending())
	assert.Equal(t, 2, ran)
	assert.Equal(t, 0, m.Pending())
}

func TestManualRunPendingDefersNestedPosts(t *testing.T) {
	m := NewManual("consumer")

	var order []string
	m.PostTask(func(context.Context) {
		order = append(order, "outer")
		m.PostTask(func(context.Context) { order = append(order, "inner") })
	})

	assert.Equal(t, 1, m.RunPending())
	assert.Equal(t, []string{"outer"}, order)

	assert.Equal(t, 1, m.RunUntilIdle())
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestManualContext(t *testing.T) {
	m := NewManual("consumer")
	other := NewManual("other")

	assert.True(t, m.RunsTasksInCurrentSequence(m.Context()))
	assert.False(t, other.RunsTasksInCurrentSequence(m.Context()))

	var inTask bool
	m.PostTask(func(ctx context.Context) { inTask = m.RunsTasksInCurrentSequence(ctx) })
	m.RunUntilIdle()
	assert.True(t, inTask)
}

func TestRunAllUntilIdleFollowsPingPong(t *testing.T) {
	a := NewManual("a")
	b := NewManual("b")

	var hops []string
	var ping func(n int) Task
	ping = func(n int) Task {
		return func(ctx context.Context) {
			hops = append(hops, Current(ctx).Name())
			if n == 0 {
				return
			}
			if Current(ctx) == Runner(a) {
				b.PostTask(ping(n - 1))
			} else {
				a.PostTask(ping(n - 1))
			}
		}
	}

	a.PostTask(ping(3))
	RunAllUntilIdle(a, b)

	assert.Equal(t, []string{"a", "b", "a", "b"}, hops)
}

func TestManualStop(t *testing.T) {
	m := NewManual("consumer")
	m.PostTask(func(context.Context) { t.Fatal("discarded task ran") })
	m.Stop()

	assert.False(t, m.PostTask(func(context.Context) {}))
	assert.Equal(t, 0, m.RunUntilIdle())
}

func TestAssertOn(t *testing.T) {
	m := NewManual("store")
	other := NewManual("consumer")

	assert.NotPanics(t, func() { AssertOn(m.Context(), m, "store") })
	assert.PanicsWithValue(t,
		`store called on runner "consumer", must run on "store"`,
		func() { AssertOn(other.Context(), m, "store") })
	assert.PanicsWithValue(t,
		`store called on runner "none", must run on "store"`,
		func() { AssertOn(context.Background(), m, "store") })
}

func TestCurrentNilContext(t *testing.T) {
	//nolint:staticcheck // nil context is part of the contract
	assert.Nil(t, Current(nil))
	assert.Nil(t, Current(context.Background()))
}
