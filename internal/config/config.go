package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"reciperag/internal/embedding/tfidf"
	"reciperag/internal/llm"
)

// CorpusConfig locates the recipe dataset.
type CorpusConfig struct {
	Path string `yaml:"path"`
}

// IndexConfig configures the TF-IDF vocabulary.
type IndexConfig struct {
	MaxFeatures int `yaml:"max_features"`
	MinDF       int `yaml:"min_df"`
	NGramMax    int `yaml:"ngram_max"`
}

// RetrievalConfig sets how many recipes are retrieved per question.
type RetrievalConfig struct {
	TopK int `yaml:"top_k"`
}

// LLMConfig selects and configures the answer generator.
type LLMConfig struct {
	Provider    string `yaml:"provider"`
	Model       string `yaml:"model,omitempty"`
	APIKeyEnv   string `yaml:"api_key_env,omitempty"`
	BaseURL     string `yaml:"base_url,omitempty"`
	MaxTokens   int    `yaml:"max_tokens"`
	TimeoutSecs int    `yaml:"timeout_secs"`
	MaxRetries  int    `yaml:"max_retries"`
}

// EvaluationConfig configures the offline evaluation commands.
type EvaluationConfig struct {
	K           int     `yaml:"k"`
	Threshold   float64 `yaml:"threshold"`
	Concurrency int     `yaml:"concurrency"`
	OutputDir   string  `yaml:"output_dir"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Env   string `yaml:"env"`
	Level string `yaml:"level"`
}

// MetricsConfig enables the Prometheus endpoint when ListenAddr is set.
type MetricsConfig struct {
	ListenAddr string `yaml:"listen_addr,omitempty"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Corpus     CorpusConfig     `yaml:"corpus"`
	Index      IndexConfig      `yaml:"index"`
	Retrieval  RetrievalConfig  `yaml:"retrieval"`
	LLM        LLMConfig        `yaml:"llm"`
	Evaluation EvaluationConfig `yaml:"evaluation"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid config")

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/reciperag/config.yaml.
// If neither exists, it writes defaults to ~/.config/reciperag/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := Default()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate rejects values no component can work with.
func (c *AppConfig) Validate() error {
	if c.Corpus.Path == "" {
		return fmt.Errorf("%w: corpus.path is empty", ErrInvalid)
	}
	if _, ok := llm.DefaultModels[c.LLM.Provider]; !ok {
		return fmt.Errorf("%w: llm.provider %q is not one of anthropic, openai", ErrInvalid, c.LLM.Provider)
	}
	switch {
	case c.Index.MaxFeatures < 0, c.Index.MinDF < 0, c.Index.NGramMax < 0:
		return fmt.Errorf("%w: index limits must not be negative", ErrInvalid)
	case c.Retrieval.TopK < 0:
		return fmt.Errorf("%w: retrieval.top_k must not be negative", ErrInvalid)
	case c.LLM.MaxRetries < 0, c.LLM.TimeoutSecs < 0:
		return fmt.Errorf("%w: llm retries and timeout must not be negative", ErrInvalid)
	case c.Evaluation.Threshold < 0 || c.Evaluation.Threshold > 1:
		return fmt.Errorf("%w: evaluation.threshold must be within [0,1]", ErrInvalid)
	}
	return nil
}

// IndexOptions converts the index section for tfidf.Build.
func (c *AppConfig) IndexOptions() tfidf.Options {
	return tfidf.Options{
		MaxFeatures: c.Index.MaxFeatures,
		MinDF:       c.Index.MinDF,
		NGramMax:    c.Index.NGramMax,
	}
}

// GeneratorConfig converts the llm section for llm.Factory.
func (c *AppConfig) GeneratorConfig() llm.Config {
	return llm.Config{
		Provider:   c.LLM.Provider,
		Model:      c.LLM.Model,
		APIKeyEnv:  c.LLM.APIKeyEnv,
		BaseURL:    c.LLM.BaseURL,
		MaxTokens:  c.LLM.MaxTokens,
		Timeout:    time.Duration(c.LLM.TimeoutSecs) * time.Second,
		MaxRetries: c.LLM.MaxRetries,
	}
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "reciperag", "config.yaml"), nil
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	cfg := &AppConfig{
		Corpus:    CorpusConfig{Path: "data/recipes_subset.json"},
		Index:     IndexConfig{MaxFeatures: 5000, MinDF: 2, NGramMax: 2},
		Retrieval: RetrievalConfig{TopK: 5},
		LLM: LLMConfig{
			Provider:    "anthropic",
			MaxTokens:   llm.DefaultMaxTokens,
			TimeoutSecs: 60,
			MaxRetries:  2,
		},
		Evaluation: EvaluationConfig{K: 3, Threshold: 0.15, Concurrency: 4, OutputDir: "evaluation"},
		Logging:    LoggingConfig{Env: "local", Level: "info"},
	}
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	def := Default()
	if cfg.Corpus.Path == "" {
		cfg.Corpus.Path = def.Corpus.Path
	}
	if cfg.Index.MaxFeatures == 0 {
		cfg.Index.MaxFeatures = def.Index.MaxFeatures
	}
	if cfg.Index.MinDF == 0 {
		cfg.Index.MinDF = def.Index.MinDF
	}
	if cfg.Index.NGramMax == 0 {
		cfg.Index.NGramMax = def.Index.NGramMax
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = def.Retrieval.TopK
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = def.LLM.Provider
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = def.LLM.MaxTokens
	}
	if cfg.LLM.TimeoutSecs == 0 {
		cfg.LLM.TimeoutSecs = def.LLM.TimeoutSecs
	}
	if cfg.Evaluation.K == 0 {
		cfg.Evaluation.K = def.Evaluation.K
	}
	if cfg.Evaluation.Threshold == 0 {
		cfg.Evaluation.Threshold = def.Evaluation.Threshold
	}
	if cfg.Evaluation.Concurrency == 0 {
		cfg.Evaluation.Concurrency = def.Evaluation.Concurrency
	}
	if cfg.Evaluation.OutputDir == "" {
		cfg.Evaluation.OutputDir = def.Evaluation.OutputDir
	}
	if cfg.Logging.Env == "" {
		cfg.Logging.Env = def.Logging.Env
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
}
