// Package coordinator owns one memoization cache for type decomposition
// and one for reference resolution, behind a single configuration
// surface with named presets, aggregated statistics, and a guarded
// process-wide shared instance.
package coordinator

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/docpipe/go-doccache/cache"
	"github.com/docpipe/go-doccache/resolver"
	"github.com/docpipe/go-doccache/typetree"
)

// Stats aggregates the counters of both caches.
type Stats struct {
	TypeCache      cache.Statistics
	ReferenceCache cache.Statistics
}

type options struct {
	logger *zap.Logger
}

// Option configures a Coordinator.
type Option func(*options)

// WithLogger attaches a logger for debug-level cache lifecycle events.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Coordinator is the entry point the rendering layer talks to. It owns
// both caches exclusively; callers observe decomposed trees and
// resolved symbols only and never touch cache internals.
type Coordinator struct {
	cfg        Config
	decomposer *typetree.Decomposer
	resolver   *resolver.Resolver
	logger     *zap.Logger
}

// New returns a fresh, independently configured Coordinator. It always
// yields a new instance; the shared accessor is Shared.
func New(parser typetree.ShapeParser, table resolver.SymbolTable, cfg Config, opts ...Option) (*Coordinator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	decomposerOpts := []typetree.DecomposerOption{
		typetree.WithMaxDepth(cfg.MaxDepth),
		typetree.WithStats(cfg.EnableStats),
	}
	if !cfg.Enabled || !cfg.TypeCache.Enabled {
		decomposerOpts = append(decomposerOpts, typetree.WithCacheDisabled())
	} else {
		decomposerOpts = append(decomposerOpts, typetree.WithCacheSize(cfg.TypeCache.MaxSize))
	}
	d, err := typetree.NewDecomposer(parser, decomposerOpts...)
	if err != nil {
		return nil, err
	}

	resolverOpts := []resolver.ResolverOption{
		resolver.WithStats(cfg.EnableStats),
	}
	if !cfg.Enabled || !cfg.ReferenceCache.Enabled {
		resolverOpts = append(resolverOpts, resolver.WithCacheDisabled())
	} else {
		resolverOpts = append(resolverOpts, resolver.WithCacheSize(cfg.ReferenceCache.MaxSize))
	}
	r, err := resolver.New(table, resolverOpts...)
	if err != nil {
		return nil, err
	}

	o.logger.Debug("coordinator configured",
		zap.Bool("enabled", cfg.Enabled),
		zap.Int("typeCacheSize", cfg.TypeCache.MaxSize),
		zap.Int("referenceCacheSize", cfg.ReferenceCache.MaxSize),
		zap.Int("maxDepth", cfg.MaxDepth))

	return &Coordinator{cfg: cfg, decomposer: d, resolver: r, logger: o.logger}, nil
}

// Decompose expands a type signature into a property tree.
func (c *Coordinator) Decompose(signature string) *typetree.PropertyNode {
	return c.decomposer.Decompose(signature)
}

// Resolve resolves a declaration reference in an optional context.
func (c *Coordinator) Resolve(ref resolver.DeclarationReference, context resolver.ContextSymbol) (resolver.ResolvedSymbol, error) {
	return c.resolver.Resolve(ref, context)
}

// InvalidateFailures retries negative resolution results on the next
// lookup; see resolver.Resolver.InvalidateFailures.
func (c *Coordinator) InvalidateFailures() int {
	return c.resolver.InvalidateFailures()
}

// Stats returns a snapshot of both caches' counters.
func (c *Coordinator) Stats() Stats {
	return Stats{
		TypeCache:      c.decomposer.Stats(),
		ReferenceCache: c.resolver.Stats(),
	}
}

// ClearAll empties both caches, e.g. between runs over changed sources.
func (c *Coordinator) ClearAll() {
	c.decomposer.Clear()
	c.resolver.Clear()
	c.logger.Debug("caches cleared")
}

// Config returns the configuration this coordinator was built with.
func (c *Coordinator) Config() Config {
	return c.cfg
}

var (
	sharedMu   sync.Mutex
	sharedInst *Coordinator
	sharedCfg  Config
)

// Shared returns the lazily constructed process-wide Coordinator, for
// callers that do not want to thread an instance through every call.
// The first call constructs it; any later call whose configuration
// differs fails with an error wrapping cache.ErrInvalidConfig rather
// than silently discarding the requested configuration.
func Shared(parser typetree.ShapeParser, table resolver.SymbolTable, cfg Config, opts ...Option) (*Coordinator, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	if sharedInst != nil {
		if cfg != sharedCfg {
			return nil, fmt.Errorf("%w: shared coordinator already configured with different options", cache.ErrInvalidConfig)
		}
		return sharedInst, nil
	}
	inst, err := New(parser, table, cfg, opts...)
	if err != nil {
		return nil, err
	}
	sharedInst = inst
	sharedCfg = cfg
	return inst, nil
}

// ResetShared discards the shared instance so an independent run can
// configure its own. Intended for run boundaries and tests.
func ResetShared() {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	sharedInst = nil
	sharedCfg = Config{}
}
