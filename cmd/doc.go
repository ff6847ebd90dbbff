// Package cmd implements the command-line interface of dEnv. It provides a
// hierarchical command structure for reading and writing named values, clearing
// the shared cache and running the HTTP api.
//
// The package is organized into several subpackages:
//
//   - values: Commands for named values (env get, env set, env list) and the shared cache (cache get, cache del)
//   - serve: Command for starting the HTTP api
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See denv -help for a list of all commands.
package cmd
