// Package evaluator implements the tree-walking evaluation engine.
//
// The evaluator receives a syntax tree from the parser and reduces it to a
// single float64. It supports:
//   - Literal, binary and parenthesized expressions
//   - Optional caching of parsed trees by source text
//   - Debug logging of every visited node
//
// # Example
//
//	ev := evaluator.New()
//	result, err := ev.Eval(parser.Parse("(1 + 2) * 3"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Invariant violations
//
// Evaluate assumes a tree the parser produced without diagnostics. An
// operator or node variant the grammar cannot produce makes it panic with a
// *types.InternalError; this is distinct from the diagnostics returned for
// malformed input.
package evaluator

import (
	"context"
	"log/slog"

	"github.com/sandrolain/goarith/pkg/cache"
	"github.com/sandrolain/goarith/pkg/parser"
	"github.com/sandrolain/goarith/pkg/types"
)

// Evaluator evaluates syntax trees. It holds no per-evaluation state and is
// safe for concurrent use by multiple goroutines.
type Evaluator struct {
	opts   EvalOptions
	logger *slog.Logger
	cache  *cache.Cache // non-nil when Caching is enabled
}

// EvalOptions configures evaluator behavior.
type EvalOptions struct {
	// Caching enables caching of parsed trees by source text.
	// The default cache holds up to 256 entries with LRU eviction.
	Caching bool
	// CacheSize sets the maximum number of cached trees.
	// Only used when Caching is true and no explicit Cache is provided.
	// Defaults to 256.
	CacheSize int
	// Cache is a custom tree cache. If non-nil, Caching is implicitly enabled.
	Cache *cache.Cache
	// ParseOptions are passed to the parser by EvalString.
	ParseOptions []parser.ParseOption
	// Debug enables debug logging.
	Debug bool
	// Logger for structured logging.
	Logger *slog.Logger
}

// New creates a new Evaluator with default options.
func New(opts ...EvalOption) *Evaluator {
	options := EvalOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	var c *cache.Cache
	if options.Cache != nil {
		c = options.Cache
	} else if options.Caching {
		c = cache.New(options.CacheSize)
	}

	return &Evaluator{
		opts:   options,
		logger: options.Logger,
		cache:  c,
	}
}

// Cache returns the tree cache, or nil if caching is disabled.
func (e *Evaluator) Cache() *cache.Cache {
	return e.cache
}

// Eval evaluates a parsed tree. It returns a *types.DiagnosticsError without
// evaluating anything when the tree carries diagnostics.
func (e *Evaluator) Eval(tree *types.SyntaxTree) (float64, error) {
	if err := tree.Diagnostics().Err(); err != nil {
		return 0, err
	}
	return e.Evaluate(tree.Root()), nil
}

// EvalString parses and evaluates source, reusing a cached tree when caching
// is enabled. The returned tree is nil only when ctx is already done.
func (e *Evaluator) EvalString(ctx context.Context, source string) (float64, *types.SyntaxTree, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}

	tree := e.parse(source)
	result, err := e.Eval(tree)
	if err != nil && e.opts.Debug {
		e.logger.Debug("expression rejected",
			"source", source,
			"diagnostics", len(tree.Diagnostics()))
	}
	return result, tree, err
}

func (e *Evaluator) parse(source string) *types.SyntaxTree {
	parse := func() *types.SyntaxTree {
		return parser.Parse(source, e.opts.ParseOptions...)
	}
	if e.cache == nil {
		return parse()
	}
	return e.cache.GetOrParse(source, parse)
}

// EvalOption configures evaluation behavior.
type EvalOption func(*EvalOptions)

// WithCaching enables or disables caching of parsed trees.
// When enabled, a default LRU cache of 256 entries is created.
// To control the cache size use WithCacheSize; to supply your own cache use WithCache.
func WithCaching(enabled bool) EvalOption {
	return func(opts *EvalOptions) {
		opts.Caching = enabled
	}
}

// WithCacheSize sets the maximum number of cached trees.
// Only effective when combined with WithCaching(true).
func WithCacheSize(size int) EvalOption {
	return func(opts *EvalOptions) {
		opts.CacheSize = size
	}
}

// WithCache attaches an external tree cache.
// The evaluator will use this cache regardless of the Caching flag.
func WithCache(c *cache.Cache) EvalOption {
	return func(opts *EvalOptions) {
		opts.Cache = c
	}
}

// WithParseOptions sets the options EvalString passes to the parser.
func WithParseOptions(opts ...parser.ParseOption) EvalOption {
	return func(o *EvalOptions) {
		o.ParseOptions = append(o.ParseOptions, opts...)
	}
}

// WithDebug enables or disables debug logging.
func WithDebug(enabled bool) EvalOption {
	return func(opts *EvalOptions) {
		opts.Debug = enabled
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) EvalOption {
	return func(opts *EvalOptions) {
		opts.Logger = logger
	}
}
