package auditlog_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"alchemist/internal/auditlog"
	"alchemist/internal/testsupport"
)

func TestAppendAssignsIDAndTimestamp(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))

	saved := testsupport.MustAppend(t, store, auditlog.Record{
		OriginalFilename: "paper.txt",
		NewFilename:      "2024_paper.txt",
		Category:         "Systems CS",
		Summary:          "A systems paper.",
		DestPath:         "/library/Systems CS/2024_paper.txt",
	})
	if saved.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if saved.Timestamp == "" {
		t.Fatal("expected assigned timestamp")
	}
	if _, err := time.Parse(time.RFC3339Nano, saved.Timestamp); err != nil {
		t.Fatalf("timestamp not RFC3339Nano: %v", err)
	}
}

func TestAppendKeepsSuppliedTimestamp(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))

	saved := testsupport.MustAppend(t, store, auditlog.Record{
		OriginalFilename: "a.txt",
		NewFilename:      "b.txt",
		Category:         "Finance",
		Summary:          "s",
		Timestamp:        "2026-01-02T03:04:05Z",
	})
	if saved.Timestamp != "2026-01-02T03:04:05Z" {
		t.Fatalf("timestamp overwritten: %q", saved.Timestamp)
	}
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))

	for i := 1; i <= 5; i++ {
		testsupport.MustAppend(t, store, auditlog.Record{
			OriginalFilename: fmt.Sprintf("doc%d.txt", i),
			NewFilename:      fmt.Sprintf("renamed%d.txt", i),
			Category:         "Personal",
			Summary:          fmt.Sprintf("summary %d", i),
			Timestamp:        fmt.Sprintf("2026-01-0%dT00:00:00Z", i),
		})
	}

	recent, err := store.Recent(context.Background(), 3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("got %d records, want 3", len(recent))
	}
	for i, want := range []string{"doc5.txt", "doc4.txt", "doc3.txt"} {
		if recent[i].OriginalFilename != want {
			t.Fatalf("recent[%d] = %q, want %q", i, recent[i].OriginalFilename, want)
		}
	}
}

func TestRecentZeroLimit(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	testsupport.MustAppend(t, store, auditlog.Record{
		OriginalFilename: "a", NewFilename: "b", Category: "c", Summary: "s",
	})

	recent, err := store.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 0 {
		t.Fatalf("got %d records, want 0", len(recent))
	}
}

func TestAllRoundTrip(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))

	original := auditlog.Record{
		OriginalFilename: "tax.pdf",
		NewFilename:      "2025_tax_return.pdf",
		Category:         "Finance",
		Summary:          "Federal tax return for 2025.",
		DestPath:         "/library/Finance/2025_tax_return.pdf",
	}
	saved := testsupport.MustAppend(t, store, original)

	all, err := store.All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("got %d records, want 1", len(all))
	}
	got := all[0]
	if got.ID != saved.ID ||
		got.OriginalFilename != original.OriginalFilename ||
		got.NewFilename != original.NewFilename ||
		got.Category != original.Category ||
		got.Summary != original.Summary ||
		got.DestPath != original.DestPath ||
		got.Timestamp != saved.Timestamp {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, saved)
	}
}

func TestSearchSummaryANDSemantics(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))

	summaries := []string{
		"Quarterly budget review for the finance team.",
		"Annual budget planning notes.",
		"Review of the hiring pipeline.",
	}
	for i, summary := range summaries {
		testsupport.MustAppend(t, store, auditlog.Record{
			OriginalFilename: fmt.Sprintf("doc%d.txt", i),
			NewFilename:      fmt.Sprintf("doc%d.txt", i),
			Category:         "Finance",
			Summary:          summary,
		})
	}

	got, err := store.SearchSummary(context.Background(), "budget review")
	if err != nil {
		t.Fatalf("SearchSummary: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d matches, want 1", len(got))
	}
	if got[0].Summary != summaries[0] {
		t.Fatalf("unexpected match %q", got[0].Summary)
	}
}

func TestSearchSummaryCaseSensitive(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	testsupport.MustAppend(t, store, auditlog.Record{
		OriginalFilename: "a", NewFilename: "b", Category: "c",
		Summary: "Budget review.",
	})

	got, err := store.SearchSummary(context.Background(), "budget")
	if err != nil {
		t.Fatalf("SearchSummary: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("lowercase token should not match %q", got[0].Summary)
	}
}

func TestSearchSummaryBlankQuery(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	testsupport.MustAppend(t, store, auditlog.Record{
		OriginalFilename: "a", NewFilename: "b", Category: "c", Summary: "s",
	})

	for _, query := range []string{"", "   ", "\t\n"} {
		got, err := store.SearchSummary(context.Background(), query)
		if err != nil {
			t.Fatalf("SearchSummary(%q): %v", query, err)
		}
		if len(got) != 0 {
			t.Fatalf("blank query %q matched %d records", query, len(got))
		}
	}
}

func TestStats(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	for _, category := range []string{"Finance", "Finance", "Personal"} {
		testsupport.MustAppend(t, store, auditlog.Record{
			OriginalFilename: "a", NewFilename: "b", Category: category, Summary: "s",
		})
	}

	stats, err := store.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalRecords != 3 {
		t.Fatalf("TotalRecords = %d, want 3", stats.TotalRecords)
	}
	if stats.ByCategory["Finance"] != 2 || stats.ByCategory["Personal"] != 1 {
		t.Fatalf("ByCategory = %v", stats.ByCategory)
	}
	if stats.LastTimestamp == "" {
		t.Fatal("expected last timestamp")
	}
}

func TestOpenIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.MustAppend(t, store, auditlog.Record{
		OriginalFilename: "a", NewFilename: "b", Category: "c", Summary: "s",
	})
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := auditlog.Open(cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	all, err := reopened.All(context.Background())
	if err != nil {
		t.Fatalf("All after reopen: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("got %d records after reopen, want 1", len(all))
	}
	if err := reopened.CheckHealth(context.Background()); err != nil {
		t.Fatalf("CheckHealth: %v", err)
	}
}
