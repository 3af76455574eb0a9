package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Index.MaxFeatures != 5000 || cfg.LLM.Provider != "anthropic" || cfg.Evaluation.K != 3 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := "corpus:\n  path: recipes.csv\nllm:\n  provider: openai\n  max_retries: 5\nindex:\n  min_df: 1\n"
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Corpus.Path != "recipes.csv" || cfg.LLM.Provider != "openai" || cfg.Index.MinDF != 1 {
		t.Fatalf("explicit values lost: %+v", cfg)
	}
	if cfg.Index.MaxFeatures != 5000 || cfg.Retrieval.TopK != 5 || cfg.LLM.MaxTokens != 500 {
		t.Fatalf("defaults not applied: %+v", cfg)
	}

	gc := cfg.GeneratorConfig()
	if gc.MaxRetries != 5 || gc.Timeout != 60*time.Second {
		t.Fatalf("unexpected generator config %+v", gc)
	}
	if opts := cfg.IndexOptions(); opts.MinDF != 1 || opts.NGramMax != 2 {
		t.Fatalf("unexpected index options %+v", opts)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("llm: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	in := Default()
	in.Metrics.ListenAddr = ":9090"
	if err := Save(path, in); err != nil {
		t.Fatalf("Save: %v", err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *out != *in {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", out, in)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppConfig)
		ok     bool
	}{
		{"defaults", func(*AppConfig) {}, true},
		{"unknown provider", func(c *AppConfig) { c.LLM.Provider = "cohere" }, false},
		{"empty corpus", func(c *AppConfig) { c.Corpus.Path = "" }, false},
		{"negative top k", func(c *AppConfig) { c.Retrieval.TopK = -1 }, false},
		{"negative retries", func(c *AppConfig) { c.LLM.MaxRetries = -1 }, false},
		{"threshold above one", func(c *AppConfig) { c.Evaluation.Threshold = 1.5 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}
