// Package types holds shared context keys for the command-line tools.
package types

type contextKey string

// DBKey carries the database handle through urfave/cli command contexts.
const DBKey contextKey = "db"
