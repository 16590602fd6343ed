package taskrunner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRefCountedDestroysOnOwner(t *testing.T) {
	owner := NewManual("resource")
	other := NewManual("consumer")

	var destroyedOn Runner
	destroyed := 0
	r := NewRefCounted(owner, func(ctx context.Context) {
		destroyed++
		destroyedOn = Current(ctx)
	})

	// Released from another runner: the decrement is posted, not applied.
	r.Release(other.Context())
	assert.Equal(t, int32(1), r.Refs())
	assert.Equal(t, 0, destroyed)

	owner.RunUntilIdle()
	assert.Equal(t, int32(0), r.Refs())
	assert.Equal(t, 1, destroyed)
	assert.Same(t, owner, destroyedOn)
}

func TestRefCountedReleaseOnOwnerIsImmediate(t *testing.T) {
	owner := NewManual("resource")

	destroyed := false
	r := NewRefCounted(owner, func(context.Context) { destroyed = true })
	r.AddRef()

	r.Release(owner.Context())
	assert.False(t, destroyed)
	assert.Equal(t, int32(1), r.Refs())

	r.Release(owner.Context())
	assert.True(t, destroyed)
	assert.Equal(t, 0, owner.Pending())
}

func TestRefCountedReleaseSoonAlwaysPosts(t *testing.T) {
	owner := NewManual("resource")

	destroyed := false
	r := NewRefCounted(owner, func(context.Context) { destroyed = true })

	r.ReleaseSoon()
	assert.False(t, destroyed)
	assert.Equal(t, 1, owner.Pending())

	owner.RunUntilIdle()
	assert.True(t, destroyed)
}

func TestRefCountedTaskHoldsReference(t *testing.T) {
	owner := NewManual("resource")

	var events []string
	r := NewRefCounted(owner, func(context.Context) { events = append(events, "destroy") })

	r.AddRef()
	owner.PostTask(func(ctx context.Context) {
		events = append(events, "task")
		r.Release(ctx)
	})

	// The creator drops its reference before the task has run.
	r.ReleaseSoon()

	owner.RunUntilIdle()
	assert.Equal(t, []string{"task", "destroy"}, events)
}

func TestRefCountedAddRefAfterRelease(t *testing.T) {
	owner := NewManual("resource")
	r := NewRefCounted(owner, func(context.Context) {})
	r.Release(owner.Context())

	assert.Panics(t, func() { r.AddRef() })
}

func TestRefCountedOwnerStopped(t *testing.T) {
	owner := NewManual("resource")
	owner.Stop()

	r := NewRefCounted(owner, func(context.Context) { t.Fatal("destroyed on stopped runner") })
	assert.NotPanics(t, func() { r.ReleaseSoon() })
	assert.Equal(t, int32(1), r.Refs())
}
