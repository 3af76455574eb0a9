package llm

import (
	"errors"
	"testing"
)

func TestFactoryCreate(t *testing.T) {
	t.Setenv("TEST_LLM_KEY", "secret")

	var seen Config
	f := NewFactory()
	f.Register("fake", func(cfg Config) (Generator, error) {
		seen = cfg
		return &scriptedGenerator{}, nil
	})

	gen, err := f.Create(Config{Provider: "fake", APIKeyEnv: "TEST_LLM_KEY"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, wrapped := gen.(*RetryGenerator); wrapped {
		t.Fatal("no retry configured, generator should not be wrapped")
	}
	if seen.APIKey != "secret" || seen.MaxTokens != DefaultMaxTokens {
		t.Fatalf("config not resolved: %+v", seen)
	}

	gen, err = f.Create(Config{Provider: "fake", APIKey: "k", MaxRetries: 2})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, wrapped := gen.(*RetryGenerator); !wrapped {
		t.Fatal("expected retry wrapper")
	}
}

func TestFactoryErrors(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	f := NewFactory()
	f.Register("anthropic", func(cfg Config) (Generator, error) { return &scriptedGenerator{}, nil })

	if _, err := f.Create(Config{Provider: "nope"}); !errors.Is(err, ErrUnknownProvider) {
		t.Fatalf("expected ErrUnknownProvider, got %v", err)
	}
	if _, err := f.Create(Config{Provider: "anthropic"}); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestResolveDefaults(t *testing.T) {
	cfg, err := Config{Provider: "openai", APIKey: "k"}.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Model != "gpt-3.5-turbo" || cfg.APIKeyEnv != "OPENAI_API_KEY" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}
