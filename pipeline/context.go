// Package pipeline provides the validation pipeline infrastructure: a
// registrable, priority-ordered set of phases run against a single parsed
// expression, accumulating warnings into a pooled Result.
package pipeline

import (
	"sync"

	foodex2 "github.com/efsa/foodex2validator"
	"github.com/efsa/foodex2validator/catalog"
	"github.com/efsa/foodex2validator/hierarchy"
	"github.com/efsa/foodex2validator/parser"
	"github.com/efsa/foodex2validator/rules"
	"github.com/efsa/foodex2validator/structural"
)

// Context holds all state needed during validation of a single expression.
// It is passed through every phase and provides shared access to the parsed
// expression, the catalogue, and the accumulated Result.
//
// Context instances are pooled for efficiency. Use AcquireContext() and
// Release() to manage them properly.
type Context struct {
	// OriginalCode is the expression exactly as submitted.
	OriginalCode string

	// Expression is the parsed (base, facets) pair. Zero value until the
	// parse phase runs.
	Expression parser.Expression

	// StructuralFaults holds faults reported by the parser before any
	// catalogue lookup (malformed base/facet syntax).
	StructuralFaults []parser.StructuralFault

	// Resolved holds the structural validator's output: the resolved base
	// term and surviving explicit facets.
	Resolved structural.Resolved

	// RuleContext is built once structural validation completes and is
	// shared with the rule evaluator.
	RuleContext *rules.Context

	// Store is the catalogue backing this validation.
	Store catalog.Store

	// Resolver computes hierarchy ancestry against Store.
	Resolver *hierarchy.Resolver

	// ContextMode gates context-specific rules (see foodex2.ContextMode).
	ContextMode foodex2.ContextMode

	// Result accumulates validation warnings.
	Result *foodex2.Result

	// Options holds validation options accessible during validation.
	Options *ContextOptions

	// mu protects concurrent access during parallel phase execution.
	mu sync.RWMutex

	metadata map[string]any
}

// ContextOptions holds validation options accessible during validation.
type ContextOptions struct {
	BlockOnHigh bool
	MaxWarnings int

	// SkipRulesOnStructuralError mirrors foodex2.Options.SkipRulesOnStructuralError.
	// A nil Options on the Context is treated as the spec default (true).
	SkipRulesOnStructuralError bool
}

// contextPool holds reusable Context instances.
var contextPool = sync.Pool{
	New: func() any {
		return &Context{
			metadata: make(map[string]any, 8),
		}
	},
}

// AcquireContext gets a Context from the pool.
// Call Release() when done to return it to the pool.
func AcquireContext() *Context {
	ctx := contextPool.Get().(*Context)
	ctx.Reset()
	return ctx
}

// Release returns the Context to the pool.
// After calling Release, the Context should not be used.
func (c *Context) Release() {
	if c == nil {
		return
	}
	if len(c.metadata) <= 64 {
		contextPool.Put(c)
	}
}

// Reset clears the context for reuse.
func (c *Context) Reset() {
	c.OriginalCode = ""
	c.Expression = parser.Expression{}
	c.StructuralFaults = nil
	c.Resolved = structural.Resolved{}
	c.RuleContext = nil
	c.Store = nil
	c.Resolver = nil
	c.ContextMode = ""
	c.Result = nil
	c.Options = nil
	for k := range c.metadata {
		delete(c.metadata, k)
	}
}

// SetMetadata stores a value in the context metadata.
// Thread-safe for use during parallel phase execution.
func (c *Context) SetMetadata(key string, value any) {
	c.mu.Lock()
	c.metadata[key] = value
	c.mu.Unlock()
}

// GetMetadata retrieves a value from the context metadata.
// Thread-safe for use during parallel phase execution.
func (c *Context) GetMetadata(key string) (any, bool) {
	c.mu.RLock()
	v, ok := c.metadata[key]
	c.mu.RUnlock()
	return v, ok
}

// AddWarning adds a validation warning to the result.
// Thread-safe for use during parallel phase execution.
func (c *Context) AddWarning(w foodex2.Warning) {
	if c.Result != nil {
		c.Result.AddWarning(w)
	}
}

// AddWarnings adds multiple validation warnings to the result.
func (c *Context) AddWarnings(ws []foodex2.Warning) {
	if c.Result != nil {
		c.Result.AddWarnings(ws)
	}
}

// ShouldStop returns true if validation should stop (max warnings reached).
func (c *Context) ShouldStop() bool {
	if c.Options == nil || c.Options.MaxWarnings <= 0 {
		return false
	}
	if c.Result == nil {
		return false
	}
	return len(c.Result.AllWarnings()) >= c.Options.MaxWarnings
}

// NewContext creates a new Context (non-pooled).
// Prefer AcquireContext() for better performance.
func NewContext() *Context {
	return &Context{metadata: make(map[string]any, 8)}
}

// ReleaseContext returns a Context to the pool.
// This is a convenience function equivalent to ctx.Release().
func ReleaseContext(ctx *Context) {
	if ctx != nil {
		ctx.Release()
	}
}
