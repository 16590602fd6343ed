// Package relay delivers cookie change notifications across runners.
//
// A cookie store lives on one runner (the resource runner) and its change
// registry may only be touched from there. Consumers live on other runners
// and want their callbacks to run on their own runner. The Dispatcher bridges
// the two: each subscription is a pair of objects, a front owned by the
// consumer runner and a back owned by the resource runner.
//
//	consumer runner                      resource runner
//	---------------                      ---------------
//	Subscription --owns--> front  <--weak-- back --registered with--> ChangeSource
//	                         ^                |
//	                         '-- posted task -'
//
// The back registers with the ChangeSource, and for each change it posts a
// task to the consumer runner that resolves a weak reference to the front.
// Calling Unsubscribe removes the consumer callback, invalidates the weak
// reference so that changes already in flight are dropped, and hands the back
// to the resource runner to unregister and destroy. Unsubscribe never waits
// for the resource runner. Dropping the Subscription without calling
// Unsubscribe has the same effect once the garbage collector reclaims it.
//
// Guarantees:
//   - Callbacks run only on the runner that subscribed.
//   - Changes for one subscription arrive in the order the source produced them.
//   - Once Unsubscribe returns, the callback is never invoked again.
//   - The back is always destroyed on the resource runner.
//
// Subscribing to every change in the jar is not supported through the relay;
// AddCallbackForAllChanges reports ErrNotImplemented.
package relay
