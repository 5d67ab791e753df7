package config

const (
	defaultWatchDir           = "~/.local/share/alchemist/dropzone"
	defaultLibraryDir         = "~/.local/share/alchemist/library"
	defaultLogDir             = "~/.local/share/alchemist/logs"
	defaultLLMBaseURL         = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel           = "google/gemini-3-flash-preview"
	defaultLLMTimeoutSeconds  = 60
	defaultMaxWords           = 3000
	defaultSettleDelaySeconds = 1
	defaultLogFormat          = ""
	defaultLogLevel           = "info"
)

func defaultBaseCategories() []string {
	return []string{"Systems CS", "ML-Bio", "Personal", "Finance"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WatchDir:   defaultWatchDir,
			LibraryDir: defaultLibraryDir,
			LogDir:     defaultLogDir,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		Classifier: Classifier{
			BaseCategories: defaultBaseCategories(),
			MaxWords:       defaultMaxWords,
		},
		Watcher: Watcher{
			Recursive:          false,
			SettleDelaySeconds: defaultSettleDelaySeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
