package testsupport

import (
	"path/filepath"
	"testing"

	"alchemist/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.LLM.APIKey = "test"
	cfgVal.Paths.WatchDir = filepath.Join(base, "watch")
	cfgVal.Paths.LibraryDir = filepath.Join(base, "library")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithBaseCategories overrides the base category vocabulary.
func WithBaseCategories(categories ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Classifier.BaseCategories = categories
	}
}

// WithLLMEndpoint points the classifier at a test server.
func WithLLMEndpoint(baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.LLM.BaseURL = baseURL
	}
}

// WithSettleDelay overrides the watcher settle delay in seconds.
func WithSettleDelay(seconds int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Watcher.SettleDelaySeconds = seconds
	}
}

// WithRecursive toggles recursive watching on the test config.
func WithRecursive(recursive bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Watcher.Recursive = recursive
	}
}
