// Package cookies implements the shared cookie jar that change subscriptions
// observe, and the registry that dispatches its change notifications.
//
// A Store and its Registry live permanently on one taskrunner.Runner (the
// "store runner"). Every method asserts that it is called from a task on that
// runner; nothing in this package takes a lock.
//
// # Change Notifications
//
// Every mutation of the jar is reported as a Change carrying a copy of the
// affected cookie and a ChangeCause. Registry callbacks can be scoped to:
//   - one cookie name visible to an identity (AddCallbackForCookie)
//   - every cookie visible to an identity (AddCallbackForURL)
//   - every change in the jar (AddCallbackForAllChanges)
//
// Callbacks run synchronously on the store runner, in registration order.
//
// # Identities
//
// An Identity is the URL a cookie is read for. ParseIdentity accepts full
// URLs and bare host names:
//
//	id, _ := cookies.ParseIdentity("example.com")          // https://example.com/
//	id, _ := cookies.ParseIdentity("http://a.example.com/app")
//
// Matching follows RFC 6265: host-only cookies need an exact host, domain
// cookies match the domain and its subdomains, paths match by prefix on a
// segment boundary, and secure cookies are only visible to https.
//
// # Persistence
//
// Jars are saved as versioned CBOR snapshots and can be seeded from YAML.
package cookies
