// Package auditlog persists an append-only record of every document the
// pipeline organized, backed by SQLite, and serves the query surface used by
// the CLI (recent, full listing, summary search, stats).
package auditlog
