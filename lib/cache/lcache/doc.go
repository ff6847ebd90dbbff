// Package lcache implements cache.ICache as an in-process map
// (xsync.MapOf), safe for concurrent use. Expired entries are dropped lazily
// when they are read. The content is only visible inside one process, which
// makes the package suitable for single-process deployments and tests.
package lcache
