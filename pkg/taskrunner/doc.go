// Package taskrunner provides sequenced task execution for code that must
// stay on one logical thread.
//
// A Runner accepts tasks and runs them one at a time, in the order they were
// posted. Tasks never run concurrently within a single Runner. There is no
// ordering guarantee between tasks posted to different Runners.
//
// # Current Runner
//
// Go has no thread-local storage, so the runner that is executing a task is
// carried in the task's context. Code that needs to know "where am I" asks
// Current(ctx), and thread-affine types assert their runner with AssertOn.
//
//	seq := taskrunner.NewSequence("cookie-store")
//	seq.Start()
//	defer seq.Stop()
//
//	seq.PostTask(func(ctx context.Context) {
//	    taskrunner.AssertOn(ctx, seq, "store")
//	})
//
// # Implementations
//
//   - Sequence: backed by one goroutine draining an unbounded FIFO queue.
//   - Manual: runs tasks only when RunPending or RunUntilIdle is called,
//     which gives tests a deterministic draining step.
//
// # Deferred Destruction
//
// RefCounted ties an object's destruction to its owner Runner. References
// may be dropped from anywhere, but the count is only decremented by tasks
// on the owner, so the destroy function always runs there.
package taskrunner
