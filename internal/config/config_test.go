package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestNewConfig verifies default values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	if cfg.MaxDepth != DefaultMaxDepth {
		t.Errorf("expected MaxDepth %d, got %d", DefaultMaxDepth, cfg.MaxDepth)
	}
	if cfg.BatchSize != DefaultBatchSize {
		t.Errorf("expected BatchSize %d, got %d", DefaultBatchSize, cfg.BatchSize)
	}
	if cfg.OutputMode != OutputModeAggregate {
		t.Errorf("expected output mode %q, got %q", OutputModeAggregate, cfg.OutputMode)
	}
	if cfg.FilterMode != FilterModeHeuristic {
		t.Errorf("expected filter mode %q, got %q", FilterModeHeuristic, cfg.FilterMode)
	}
	if cfg.UserAgent == "" {
		t.Error("expected non-empty default user agent")
	}
}

// TestConfigValidate tests the validation rules.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		cfg := NewConfig()
		cfg.StartURL = "https://docs.example.com/guide"
		cfg.DocName = "example_docs"
		cfg.OutputDir = "."
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: nil,
		},
		{
			name:    "missing start URL",
			mutate:  func(c *Config) { c.StartURL = "" },
			wantErr: ErrNoStartURL,
		},
		{
			name:    "start URL without host",
			mutate:  func(c *Config) { c.StartURL = "/just/a/path" },
			wantErr: ErrInvalidStartURL,
		},
		{
			name:    "missing doc name",
			mutate:  func(c *Config) { c.DocName = "" },
			wantErr: ErrNoDocName,
		},
		{
			name:    "negative depth",
			mutate:  func(c *Config) { c.MaxDepth = -1 },
			wantErr: ErrInvalidDepth,
		},
		{
			name:    "depth zero is valid",
			mutate:  func(c *Config) { c.MaxDepth = 0 },
			wantErr: nil,
		},
		{
			name:    "zero batch size",
			mutate:  func(c *Config) { c.BatchSize = 0 },
			wantErr: ErrInvalidBatchSize,
		},
		{
			name:    "unknown output mode",
			mutate:  func(c *Config) { c.OutputMode = "zip" },
			wantErr: ErrInvalidOutputMode,
		},
		{
			name:    "unknown filter mode",
			mutate:  func(c *Config) { c.FilterMode = "regex" },
			wantErr: ErrInvalidFilterMode,
		},
		{
			name:    "llm mode without key",
			mutate:  func(c *Config) { c.FilterMode = FilterModeLLM },
			wantErr: ErrMissingAPIKey,
		},
		{
			name: "llm mode with key",
			mutate: func(c *Config) {
				c.FilterMode = FilterModeLLM
				c.OpenAIKey = "sk-test"
			},
			wantErr: nil,
		},
		{
			name:    "negative body size",
			mutate:  func(c *Config) { c.MaxBodySize = -1 },
			wantErr: ErrInvalidMaxBodySize,
		},
		{
			name:    "negative rate limit",
			mutate:  func(c *Config) { c.RequestsPerSecond = -1 },
			wantErr: ErrInvalidRateLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestParseOutputMode covers canonical names and legacy aliases.
func TestParseOutputMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    OutputMode
		wantErr bool
	}{
		{in: "aggregate", want: OutputModeAggregate},
		{in: "single", want: OutputModeAggregate},
		{in: "mirror", want: OutputModeMirror},
		{in: "multiple", want: OutputModeMirror},
		{in: "bogus", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("mode "+tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseOutputMode(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidOutputMode) {
					t.Errorf("expected ErrInvalidOutputMode, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// TestParseFilterMode covers the two filter modes.
func TestParseFilterMode(t *testing.T) {
	t.Parallel()

	if got, err := ParseFilterMode("heuristic"); err != nil || got != FilterModeHeuristic {
		t.Errorf("expected heuristic, got %q (err=%v)", got, err)
	}
	if got, err := ParseFilterMode("llm"); err != nil || got != FilterModeLLM {
		t.Errorf("expected llm, got %q (err=%v)", got, err)
	}
	if _, err := ParseFilterMode("prune"); !errors.Is(err, ErrInvalidFilterMode) {
		t.Errorf("expected ErrInvalidFilterMode, got %v", err)
	}
}

// TestBaseDomain verifies host extraction from the start URL.
func TestBaseDomain(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	cfg.StartURL = "https://docs.example.com/guide/intro"

	if got := cfg.BaseDomain(); got != "docs.example.com" {
		t.Errorf("expected docs.example.com, got %q", got)
	}
}

// TestLoadConfigFile tests YAML config loading and merging.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("loads sites and defaults", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, DefaultConfigFile)
		content := `
defaults:
  depth: 2
sites:
  docs.example.com:
    cookie: "session=abc"
    headers:
      Authorization: "Bearer token"
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		site := cf.GetSiteConfig("docs.example.com")
		if site.Cookie != "session=abc" {
			t.Errorf("expected cookie from site entry, got %q", site.Cookie)
		}
		if site.Depth != 2 {
			t.Errorf("expected depth 2 from defaults, got %d", site.Depth)
		}
		if site.Headers["Authorization"] != "Bearer token" {
			t.Errorf("expected Authorization header, got %v", site.Headers)
		}

		// Unknown host gets defaults only.
		other := cf.GetSiteConfig("other.example.com")
		if other.Depth != 2 || other.Cookie != "" {
			t.Errorf("expected defaults for unknown host, got %+v", other)
		}
	})

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("invalid yaml returns error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte("sites: [broken"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected error for invalid yaml")
		}
	})
}

// TestFindConfigFile verifies explicit-path resolution.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFile)
	if err := os.WriteFile(path, []byte("sites: {}\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if got := FindConfigFile(path); got != path {
		t.Errorf("expected %q, got %q", path, got)
	}

	if got := FindConfigFile(filepath.Join(dir, "missing.yml")); got != "" {
		t.Errorf("expected empty string for missing explicit path, got %q", got)
	}
}
