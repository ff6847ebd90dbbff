// Package cache defines the shared cache used by dEnv: a fast, possibly
// multi-process key-value store that is preferred for reads while it is
// available.
//
// Key Components:
//
//   - ICache Interface: get/set/delete of raw string values, with optional
//     not-exists guard and expiry on set. Implementations must treat a missing
//     key as (value "", loaded false, err nil); errors are reserved for an
//     unreachable or misbehaving cache.
//
//   - Error System: Error wraps a RetCode and a message, so callers can tell
//     an unreachable cache (RetCUnavailable) from a rejected request.
//
// Implementations:
//
//   - Redis (rcache): the shared cache of a multi-process deployment.
//     Available in the "github.com/ValentinKolb/dEnv/lib/cache/rcache" package.
//
//   - Local (lcache): an in-process cache, useful when all workers live in
//     one process and for tests.
//     Available in the "github.com/ValentinKolb/dEnv/lib/cache/lcache" package.
//
//   - No-op (ncache): the stand-in of degraded mode. Get never finds anything,
//     Set and Delete always succeed. Readers fall back to the durable store.
//     Available in the "github.com/ValentinKolb/dEnv/lib/cache/ncache" package.
package cache
