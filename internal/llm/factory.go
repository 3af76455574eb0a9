package llm

import (
	"fmt"
	"sort"
)

// Constructor builds a Generator from a resolved config.
type Constructor func(cfg Config) (Generator, error)

// Factory creates Generators by provider name.
type Factory struct {
	constructors map[string]Constructor
}

// NewFactory returns an empty factory.
func NewFactory() *Factory {
	return &Factory{constructors: make(map[string]Constructor)}
}

// Register adds a provider constructor under name.
func (f *Factory) Register(name string, ctor Constructor) {
	f.constructors[name] = ctor
}

// Names lists registered providers in sorted order.
func (f *Factory) Names() []string {
	out := make([]string, 0, len(f.constructors))
	for k := range f.constructors {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Create resolves cfg and builds the provider. When retries are configured
// the result is wrapped with RetryGenerator.
func (f *Factory) Create(cfg Config) (Generator, error) {
	ctor, ok := f.constructors[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("%w %q, registered: %v", ErrUnknownProvider, cfg.Provider, f.Names())
	}
	resolved, err := cfg.Resolve()
	if err != nil {
		return nil, err
	}
	gen, err := ctor(resolved)
	if err != nil {
		return nil, err
	}
	if resolved.MaxRetries > 0 || resolved.Timeout > 0 {
		return NewRetryGenerator(gen, RetryConfig{
			MaxRetries: resolved.MaxRetries,
			RetryDelay: resolved.RetryDelay,
			Timeout:    resolved.Timeout,
		}), nil
	}
	return gen, nil
}
