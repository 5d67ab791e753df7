// Package daemon owns the long-running watch process: single-instance
// locking, starting and stopping the watcher, and clean shutdown that lets
// an in-flight document finish.
package daemon
