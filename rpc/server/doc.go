// Package server exposes the named values of an env.Registry over HTTP, so
// that processes without direct access to the durable store or the shared
// cache can read and update configuration values.
//
// Routes:
//
//	GET /env         all values of the registry as one JSON object
//	GET /env/{key}   the JSON value of one key (404 for unknown keys)
//	PUT /env/{key}   replace the value of a key, the body is the JSON value
//	GET /metrics     cache/file routing counters in Prometheus text format
//
// Writes go through env.Env.Set, so the usual rules apply: unchanged values
// are free, null is stored as the empty string on disk, and the release keys
// are never blanked on disk.
//
// When the log level is "debug" every request is logged with its status code
// and duration.
package server
