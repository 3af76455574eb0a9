package main

import (
	"fmt"

	"go.uber.org/zap"

	"reciperag/internal/config"
	"reciperag/internal/corpus"
	"reciperag/internal/llm"
	"reciperag/internal/llm/providers"
	"reciperag/internal/logger"
	"reciperag/internal/metrics"
	"reciperag/internal/service"
)

type globalOptions struct {
	configPath string
	corpusPath string
	provider   string
}

// app carries what every command needs once flags are parsed.
type app struct {
	cfg    *config.AppConfig
	logger *zap.Logger
}

func loadApp(opts *globalOptions) (*app, error) {
	var (
		cfg *config.AppConfig
		err error
	)
	if opts.configPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(opts.configPath)
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.corpusPath != "" {
		cfg.Corpus.Path = opts.corpusPath
	}
	if opts.provider != "" {
		cfg.LLM.Provider = opts.provider
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logger.NewLogger(cfg.Logging.Env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	metrics.Register()
	if addr := cfg.Metrics.ListenAddr; addr != "" {
		go func() {
			if err := metrics.Serve(addr); err != nil {
				log.Error("metrics server stopped", zap.String("addr", addr), zap.Error(err))
			}
		}()
		log.Info("serving metrics", zap.String("addr", addr))
	}
	return &app{cfg: cfg, logger: log}, nil
}

func (a *app) retriever() (*service.Retriever, error) {
	r, err := service.Initialize(corpus.File(a.cfg.Corpus.Path), a.cfg.IndexOptions(), a.logger)
	if err != nil {
		return nil, fmt.Errorf("initialize retriever from %s: %w", a.cfg.Corpus.Path, err)
	}
	metrics.CorpusDocuments.Set(float64(r.Store().Len()))
	metrics.VocabularySize.Set(float64(r.Index().Dimension()))
	return r, nil
}

func (a *app) searcher(r *service.Retriever) service.Searcher {
	return service.NewInstrumentedSearcher(r)
}

func (a *app) generator() (llm.Generator, error) {
	gen, err := providers.NewFactory().Create(a.cfg.GeneratorConfig())
	if err != nil {
		return nil, err
	}
	return llm.NewInstrumented(gen, a.logger), nil
}

func (a *app) assistant() (*service.Assistant, *service.Retriever, error) {
	r, err := a.retriever()
	if err != nil {
		return nil, nil, err
	}
	gen, err := a.generator()
	if err != nil {
		return nil, nil, err
	}
	return service.NewAssistant(a.searcher(r), gen, a.logger), r, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}

func (a *app) topK(flagK int) int {
	if flagK > 0 {
		return flagK
	}
	return a.cfg.Retrieval.TopK
}
