package resolver

import (
	"errors"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/docpipe/go-doccache/cache"
)

// ErrUnresolvableKey marks a reference whose canonical fields cannot be
// extracted for key construction. It is propagated rather than replaced
// by an under-discriminating fallback key, which would let distinct
// references share a cache slot.
var ErrUnresolvableKey = errors.New("resolver: reference has no canonical identity")

type resolverConfig struct {
	cacheSize    int
	cacheEnabled bool
	trackStats   bool
}

// ResolverOption configures a Resolver.
type ResolverOption func(*resolverConfig)

// WithCacheSize sets the capacity of the resolution cache.
func WithCacheSize(size int) ResolverOption {
	return func(c *resolverConfig) { c.cacheSize = size }
}

// WithCacheDisabled turns memoization off; every call consults the
// symbol table.
func WithCacheDisabled() ResolverOption {
	return func(c *resolverConfig) { c.cacheEnabled = false }
}

// WithStats enables or disables cache hit/miss tracking.
func WithStats(enabled bool) ResolverOption {
	return func(c *resolverConfig) { c.trackStats = enabled }
}

// Resolver memoizes symbol-table lookups per (reference, context) pair.
// Misses are routed through a single-flight group, so when the table is
// wrapped with I/O, near-simultaneous requests for the same key still
// trigger exactly one external lookup.
type Resolver struct {
	table SymbolTable
	cache *cache.Cache[string, ResolvedSymbol]
	group singleflight.Group
}

// New returns a Resolver backed by the given symbol table.
func New(table SymbolTable, opts ...ResolverOption) (*Resolver, error) {
	if table == nil {
		return nil, fmt.Errorf("%w: nil symbol table", cache.ErrInvalidConfig)
	}
	cfg := resolverConfig{
		cacheSize:    cache.DefaultMaxSize,
		cacheEnabled: true,
		trackStats:   true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	r := &Resolver{table: table}
	if cfg.cacheEnabled {
		c, err := cache.New[string, ResolvedSymbol](cfg.cacheSize, cache.WithStats(cfg.trackStats))
		if err != nil {
			return nil, err
		}
		r.cache = c
	}
	return r, nil
}

// Resolve returns the symbol the reference points to in the given
// context (context may be nil). While a cache entry is warm, repeated
// calls with an equal pair return it without consulting the table.
// Failed lookups are cached like successes; use InvalidateFailures to
// retry them. The only error path is key construction on a reference
// with no canonical identity.
func (r *Resolver) Resolve(ref DeclarationReference, context ContextSymbol) (ResolvedSymbol, error) {
	key, err := resolutionKey(ref, context)
	if err != nil {
		return ResolvedSymbol{}, err
	}
	if r.cache != nil {
		if cached, ok := r.cache.Get(key); ok {
			return cached, nil
		}
	}
	result, _, _ := r.group.Do(key, func() (any, error) {
		res := r.table.Resolve(ref, context)
		if r.cache != nil {
			r.cache.Set(key, res)
		}
		return res, nil
	})
	return result.(ResolvedSymbol), nil
}

// Invalidate drops the cache entry for one (reference, context) pair,
// reporting whether an entry was present.
func (r *Resolver) Invalidate(ref DeclarationReference, context ContextSymbol) (bool, error) {
	key, err := resolutionKey(ref, context)
	if err != nil {
		return false, err
	}
	if r.cache == nil {
		return false, nil
	}
	return r.cache.Delete(key), nil
}

// InvalidateFailures drops every cached failed lookup so callers can
// retry after external state changes. Returns the number of entries
// removed.
func (r *Resolver) InvalidateFailures() int {
	if r.cache == nil {
		return 0
	}
	return r.cache.DeleteFunc(func(_ string, v ResolvedSymbol) bool {
		return v.ErrorMessage != ""
	})
}

// Stats returns the resolution cache counters. Zero-valued when the
// cache is disabled.
func (r *Resolver) Stats() cache.Statistics {
	if r.cache == nil {
		return cache.Statistics{}
	}
	return r.cache.Stats()
}

// Clear empties the resolution cache and resets its counters.
func (r *Resolver) Clear() {
	if r.cache != nil {
		r.cache.Clear()
	}
}

// resolutionKey builds the structural cache key for a lookup. The
// symbol path is passed as a sequence — never pre-joined — so path
// segmentation stays part of the identity, and the context contributes
// its canonical fields rather than a rendering.
func resolutionKey(ref DeclarationReference, context ContextSymbol) (string, error) {
	if len(ref.SymbolPath) == 0 {
		return "", fmt.Errorf("%w: empty symbol path", ErrUnresolvableKey)
	}
	for _, segment := range ref.SymbolPath {
		if segment == "" {
			return "", fmt.Errorf("%w: blank symbol path segment in %q", ErrUnresolvableKey, ref.String())
		}
	}
	parts := []any{ref.SymbolPath, ref.PackageName}
	if context != nil {
		parts = append(parts, context.CanonicalName(), context.PackageName(), context.MemberCount())
	}
	return cache.StructuralKey(parts...)
}
