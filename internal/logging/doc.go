// Package logging constructs slog loggers shared by the daemon and CLI.
//
// New builds a handler from explicit options; NewFromConfig derives options
// from application config, tees output to the log directory, and picks the
// console format only when stdout is a terminal. The Attr helpers and field
// constants keep structured keys consistent across components.
package logging
