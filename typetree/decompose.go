package typetree

import (
	"fmt"
	"strings"

	"github.com/docpipe/go-doccache/cache"
)

// DefaultMaxDepth bounds recursive decomposition when no explicit depth
// is configured.
const DefaultMaxDepth = 10

type decomposerConfig struct {
	maxDepth     int
	cacheSize    int
	cacheEnabled bool
	trackStats   bool
}

// DecomposerOption configures a Decomposer.
type DecomposerOption func(*decomposerConfig)

// WithMaxDepth sets the maximum tree depth. Nodes that would recurse
// past it are emitted with Truncated set and no children.
func WithMaxDepth(depth int) DecomposerOption {
	return func(c *decomposerConfig) { c.maxDepth = depth }
}

// WithCacheSize sets the capacity of the decomposition cache.
func WithCacheSize(size int) DecomposerOption {
	return func(c *decomposerConfig) { c.cacheSize = size }
}

// WithCacheDisabled turns memoization off; every call decomposes from
// scratch.
func WithCacheDisabled() DecomposerOption {
	return func(c *decomposerConfig) { c.cacheEnabled = false }
}

// WithStats enables or disables cache hit/miss tracking.
func WithStats(enabled bool) DecomposerOption {
	return func(c *decomposerConfig) { c.trackStats = enabled }
}

// Decomposer expands type signatures into PropertyNode trees, memoizing
// results on the normalized form of the signature so syntactically
// different but semantically identical signatures share one cached tree.
type Decomposer struct {
	parser   ShapeParser
	maxDepth int
	cache    *cache.Cache[string, *PropertyNode]
}

// NewDecomposer returns a Decomposer using the given shape parser.
// An invalid maxDepth or cache size fails with an error wrapping
// cache.ErrInvalidConfig.
func NewDecomposer(parser ShapeParser, opts ...DecomposerOption) (*Decomposer, error) {
	if parser == nil {
		return nil, fmt.Errorf("%w: nil shape parser", cache.ErrInvalidConfig)
	}
	cfg := decomposerConfig{
		maxDepth:     DefaultMaxDepth,
		cacheSize:    cache.DefaultMaxSize,
		cacheEnabled: true,
		trackStats:   true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxDepth <= 0 {
		return nil, fmt.Errorf("%w: maxDepth must be a positive integer, got %d", cache.ErrInvalidConfig, cfg.maxDepth)
	}
	d := &Decomposer{parser: parser, maxDepth: cfg.maxDepth}
	if cfg.cacheEnabled {
		c, err := cache.New[string, *PropertyNode](cfg.cacheSize, cache.WithStats(cfg.trackStats))
		if err != nil {
			return nil, err
		}
		d.cache = c
	}
	return d, nil
}

// Decompose expands signature into a property tree. It never returns an
// error: a blank signature yields a bare leaf, and an unclassifiable
// one yields a leaf with ParseFailed set. The returned tree is owned by
// the caller; the cache keeps its own copy.
func (d *Decomposer) Decompose(signature string) *PropertyNode {
	key := Normalize(signature)
	if d.cache != nil {
		if cached, ok := d.cache.Get(key); ok {
			return cached.Clone()
		}
	}
	active := make(map[string]struct{})
	node := d.walk("", signature, 0, active)
	if d.cache != nil {
		d.cache.Set(key, node.Clone())
	}
	return node
}

// Stats returns the decomposition cache counters. Zero-valued when the
// cache is disabled.
func (d *Decomposer) Stats() cache.Statistics {
	if d.cache == nil {
		return cache.Statistics{}
	}
	return d.cache.Stats()
}

// Clear empties the decomposition cache, e.g. between runs that must
// not see trees derived from changed sources.
func (d *Decomposer) Clear() {
	if d.cache != nil {
		d.cache.Clear()
	}
}

// walk decomposes one signature. active holds the normalized signatures
// currently being decomposed on this call chain; it is the cycle guard,
// independent of the depth guard.
func (d *Decomposer) walk(name, signature string, depth int, active map[string]struct{}) *PropertyNode {
	node := &PropertyNode{
		Name:           name,
		TypeAnnotation: strings.TrimSpace(signature),
		Required:       true,
		Depth:          depth,
	}

	sig := Normalize(signature)
	if sig == "" {
		return node
	}
	if _, onPath := active[sig]; onPath {
		node.Cyclic = true
		return node
	}

	shape, err := d.parser.Parse(signature)
	if err != nil {
		node.ParseFailed = true
		return node
	}

	composite := shape.Kind == KindObject || shape.Kind == KindArray ||
		shape.Kind == KindUnion || (shape.Kind == KindAlias && shape.Target != "")
	if !composite {
		return node
	}
	if depth >= d.maxDepth {
		node.Truncated = true
		return node
	}

	active[sig] = struct{}{}
	defer delete(active, sig)

	switch shape.Kind {
	case KindObject:
		for _, m := range shape.Members {
			child := d.walk(m.Name, m.Signature, depth+1, active)
			child.Required = !m.Optional
			child.Deprecated = m.Deprecated
			child.Description = m.Description
			child.DefaultValue = m.Default
			node.Children = append(node.Children, child)
		}
	case KindArray:
		node.Children = append(node.Children, d.walk("[]", shape.Element, depth+1, active))
	case KindUnion:
		for i, variant := range shape.Variants {
			node.Children = append(node.Children, d.walk(fmt.Sprintf("option %d", i+1), variant, depth+1, active))
		}
	case KindAlias:
		node.Children = append(node.Children, d.walk(name, shape.Target, depth+1, active))
	}
	return node
}
