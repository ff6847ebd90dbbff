// Package common provides the configuration and logging utilities shared by
// the dEnv command-line tool and its HTTP api.
//
// Key Components:
//
//   - Config: All settings of a dEnv process (durable store path, shared cache
//     backend, redis connection, degraded mode switch, log level). It is filled
//     from cobra flags and DENV_* environment variables by the cmd package.
//
//   - CacheBackend: Enumeration of the supported shared cache backends
//     (redis, memory, none). The degraded mode switch forces "none".
//
//   - Logger: Custom logging implementation that plugs into Dragonboat's
//     logger package, giving every dEnv package a named logger with consistent
//     formatting.
package common
