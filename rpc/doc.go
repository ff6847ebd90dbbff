// Package rpc exposes dEnv over the network and holds the configuration shared
// by the command-line tool and the HTTP api.
//
// The package is organized into several subpackages:
//
//   - common: Configuration structures, cache backend selection and logging.
//
//   - server: HTTP api that reads and writes the named values of a registry
//     and exports the dEnv metrics in Prometheus format.
package rpc
