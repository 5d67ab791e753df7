package testsupport

import (
	"context"
	"testing"

	"alchemist/internal/auditlog"
	"alchemist/internal/config"
)

// MustOpenStore opens an auditlog.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *auditlog.Store {
	t.Helper()

	store, err := auditlog.Open(cfg)
	if err != nil {
		t.Fatalf("auditlog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// MustAppend writes a record and fails the test on error.
func MustAppend(t testing.TB, store *auditlog.Store, record auditlog.Record) auditlog.Record {
	t.Helper()

	saved, err := store.Append(context.Background(), record)
	if err != nil {
		t.Fatalf("auditlog.Append: %v", err)
	}
	return saved
}
