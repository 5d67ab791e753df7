package watcher_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"alchemist/internal/auditlog"
	"alchemist/internal/classify"
	"alchemist/internal/config"
	"alchemist/internal/extract"
	"alchemist/internal/logging"
	"alchemist/internal/organize"
	"alchemist/internal/services/llm"
	"alchemist/internal/testsupport"
	"alchemist/internal/watcher"
)

// newFixture builds a pipeline whose classifier always receives content from
// a stub completion endpoint.
func newFixture(t *testing.T, llmContent string) (*watcher.Pipeline, *config.Config, *auditlog.Store) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]any{
			"choices": []any{
				map[string]any{"message": map[string]any{"content": llmContent}},
			},
		}
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			t.Fatalf("encode response: %v", err)
		}
	}))
	t.Cleanup(server.Close)

	cfg := testsupport.NewConfig(t,
		testsupport.WithLLMEndpoint(server.URL),
		testsupport.WithSettleDelay(0),
	)
	store := testsupport.MustOpenStore(t, cfg)

	logger := logging.NewNop()
	client := llm.NewClient(llm.Config{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
	}, llm.WithRetryMaxAttempts(1))
	pipeline := watcher.NewPipeline(
		cfg,
		extract.New(cfg.Classifier.MaxWords, logger),
		classify.New(cfg, client, logger),
		organize.New(cfg.Paths.LibraryDir, logger),
		store,
		logger,
	)
	return pipeline, cfg, store
}

func TestProcessOrganizesDocument(t *testing.T) {
	pipeline, cfg, store := newFixture(t,
		`{"summary_sentence":"A paper on distributed consensus.","category":"Systems CS","suggested_filename":"2024_paper.txt"}`)

	source := filepath.Join(cfg.Paths.WatchDir, "paper.txt")
	testsupport.WriteTextFile(t, source, "We present a new consensus protocol.")

	outcome := pipeline.Process(context.Background(), source)
	if outcome.Status != watcher.StatusDone {
		t.Fatalf("status = %q (err %v), want done", outcome.Status, outcome.Err)
	}
	want := filepath.Join(cfg.Paths.LibraryDir, "Systems CS", "2024_paper.txt")
	if outcome.FinalPath != want {
		t.Fatalf("final path = %q, want %q", outcome.FinalPath, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("placed file missing: %v", err)
	}
	if _, err := os.Stat(source); !os.IsNotExist(err) {
		t.Fatal("source still present after move")
	}

	records, err := store.All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d audit records, want 1", len(records))
	}
	r := records[0]
	if r.OriginalFilename != "paper.txt" || r.NewFilename != "2024_paper.txt" ||
		r.Category != "Systems CS" || r.DestPath != want {
		t.Fatalf("unexpected audit record: %+v", r)
	}
}

func TestProcessUnsupportedTypeQuarantinesWithoutAudit(t *testing.T) {
	pipeline, cfg, store := newFixture(t, `{}`)

	source := filepath.Join(cfg.Paths.WatchDir, "image.png")
	testsupport.WriteTextFile(t, source, "\x89PNG not really")

	outcome := pipeline.Process(context.Background(), source)
	if outcome.Status != watcher.StatusQuarantinedUnsupported {
		t.Fatalf("status = %q, want quarantined_unsupported", outcome.Status)
	}
	want := filepath.Join(cfg.Paths.LibraryDir, classify.CategoryUnsupported, "image.png")
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("quarantined file missing: %v", err)
	}

	records, err := store.All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("got %d audit records, want 0", len(records))
	}
}

func TestProcessEmptyTextQuarantinesWithoutAudit(t *testing.T) {
	pipeline, cfg, store := newFixture(t, `{}`)

	source := filepath.Join(cfg.Paths.WatchDir, "blank.txt")
	testsupport.WriteTextFile(t, source, "   \n\t  ")

	outcome := pipeline.Process(context.Background(), source)
	if outcome.Status != watcher.StatusQuarantinedEmpty {
		t.Fatalf("status = %q, want quarantined_empty", outcome.Status)
	}
	want := filepath.Join(cfg.Paths.LibraryDir, classify.CategoryUnclassified, "blank.txt")
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("quarantined file missing: %v", err)
	}

	records, err := store.All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("got %d audit records, want 0", len(records))
	}
}

func TestProcessClassifierQuarantineIsAudited(t *testing.T) {
	pipeline, cfg, store := newFixture(t, "not json at all")

	source := filepath.Join(cfg.Paths.WatchDir, "odd.txt")
	testsupport.WriteTextFile(t, source, "some content")

	outcome := pipeline.Process(context.Background(), source)
	if outcome.Status != watcher.StatusDone {
		t.Fatalf("status = %q (err %v), want done", outcome.Status, outcome.Err)
	}
	if outcome.Category != classify.CategoryUnclassified {
		t.Fatalf("category = %q, want %q", outcome.Category, classify.CategoryUnclassified)
	}
	want := filepath.Join(cfg.Paths.LibraryDir, classify.CategoryUnclassified, "odd.txt")
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("quarantined file missing: %v", err)
	}

	records, err := store.All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d audit records, want 1", len(records))
	}
	if records[0].Category != classify.CategoryUnclassified {
		t.Fatalf("audit category = %q", records[0].Category)
	}
}

func TestProcessMissingFileSkips(t *testing.T) {
	pipeline, cfg, _ := newFixture(t, `{}`)

	outcome := pipeline.Process(context.Background(), filepath.Join(cfg.Paths.WatchDir, "ghost.txt"))
	if outcome.Status != watcher.StatusSkipped {
		t.Fatalf("status = %q, want skipped", outcome.Status)
	}
}

func TestProcessCollisionGetsSuffix(t *testing.T) {
	pipeline, cfg, _ := newFixture(t,
		`{"summary_sentence":"s","category":"Finance","suggested_filename":"report.txt"}`)

	testsupport.WriteTextFile(t, filepath.Join(cfg.Paths.LibraryDir, "Finance", "report.txt"), "existing")
	source := filepath.Join(cfg.Paths.WatchDir, "new.txt")
	testsupport.WriteTextFile(t, source, "fresh content")

	outcome := pipeline.Process(context.Background(), source)
	if outcome.Status != watcher.StatusDone {
		t.Fatalf("status = %q (err %v), want done", outcome.Status, outcome.Err)
	}
	if filepath.Base(outcome.FinalPath) != "report_1.txt" {
		t.Fatalf("final name = %q, want report_1.txt", filepath.Base(outcome.FinalPath))
	}
}
