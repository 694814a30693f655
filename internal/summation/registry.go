package summation

import (
	"fmt"
	"sort"
	"sync"
)

// StrategyFactory gives access to the registered strategies by key.
type StrategyFactory interface {
	// Get returns the strategy registered under key.
	Get(key string) (Strategy, error)
	// List returns the registered keys in sorted order.
	List() []string
	// GetAll returns a copy of the registry.
	GetAll() map[string]Strategy
}

// DefaultFactory is a thread-safe registry of strategies.
type DefaultFactory struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
}

// NewDefaultFactory returns a factory holding the built-in strategies:
// "sequential", "manual", "aggregate" and "partials".
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{strategies: make(map[string]Strategy)}
	f.Register("sequential", SequentialStrategy{})
	f.Register("manual", ManualStrategy{})
	f.Register("aggregate", AggregateStrategy{})
	f.Register("partials", PartialsStrategy{})
	return f
}

var (
	globalFactory     *DefaultFactory
	globalFactoryOnce sync.Once
)

// GlobalFactory returns a lazily created, process-wide default factory.
func GlobalFactory() *DefaultFactory {
	globalFactoryOnce.Do(func() {
		globalFactory = NewDefaultFactory()
	})
	return globalFactory
}

// Register adds or replaces the strategy stored under key.
func (f *DefaultFactory) Register(key string, s Strategy) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.strategies[key] = s
}

// Get implements StrategyFactory.
func (f *DefaultFactory) Get(key string) (Strategy, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	s, ok := f.strategies[key]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q", key)
	}
	return s, nil
}

// List implements StrategyFactory.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	keys := make([]string, 0, len(f.strategies))
	for k := range f.strategies {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetAll implements StrategyFactory.
func (f *DefaultFactory) GetAll() map[string]Strategy {
	f.mu.RLock()
	defer f.mu.RUnlock()
	all := make(map[string]Strategy, len(f.strategies))
	for k, v := range f.strategies {
		all[k] = v
	}
	return all
}
