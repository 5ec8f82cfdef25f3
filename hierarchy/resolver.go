// Package hierarchy answers ancestor/descendant/membership questions over
// the catalogue's per-hierarchy parent links, memoizing ancestor chains so
// each is walked at most once per process lifetime.
package hierarchy

import (
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/efsa/foodex2validator/cache"
	"github.com/efsa/foodex2validator/catalog"
	"github.com/efsa/foodex2validator/internal/logging"
)

// maxDepth bounds parent-link traversal. A valid catalogue has no cycles;
// exceeding this depth means the catalogue is inconsistent.
const maxDepth = 256

// CatalogError reports a catalogue-consistency fault: an infrastructural
// failure distinct from any validation Warning (per the spec's error
// handling design, §7).
type CatalogError struct {
	Code      string
	Hierarchy string
	Reason    string
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("hierarchy: %s in %q: %s", e.Code, e.Hierarchy, e.Reason)
}

type ancestorKey struct {
	code      string
	hierarchy string
}

// Resolver answers hierarchy queries against a catalog.Store, memoizing
// ancestor chains in an LRU cache keyed by (code, hierarchy). Safe for
// concurrent use; concurrent lookups of the same key are deduplicated with
// singleflight so only one goroutine walks the parent chain.
type Resolver struct {
	store       catalog.Store
	cache       *cache.Cache[ancestorKey, []string]
	group       singleflight.Group
	cacheHitFn  func()
	cacheMissFn func()
}

// New creates a Resolver over store with an ancestor cache of the given
// capacity.
func New(store catalog.Store, cacheSize int) *Resolver {
	return &Resolver{
		store: store,
		cache: cache.New[ancestorKey, []string](cacheSize),
	}
}

// OnCacheHit registers a callback invoked on every memoization cache hit
// (wired to Metrics.RecordCacheHit by the engine).
func (r *Resolver) OnCacheHit(fn func()) { r.cacheHitFn = fn }

// OnCacheMiss registers a callback invoked on every memoization cache miss.
func (r *Resolver) OnCacheMiss(fn func()) { r.cacheMissFn = fn }

// Ancestors returns every ancestor of code in hierarchy, nearest first,
// excluding code itself (is_ancestor(x,x,H) = false, so x is never its own
// ancestor). Returns a *CatalogError if a cycle is detected.
func (r *Resolver) Ancestors(code, hierarchy string) ([]string, error) {
	key := ancestorKey{code, hierarchy}
	if cached, ok := r.cache.Get(key); ok {
		r.hit()
		return cached, nil
	}
	r.miss()

	v, err, _ := r.group.Do(fmt.Sprintf("%s\x00%s", hierarchy, code), func() (interface{}, error) {
		if cached, ok := r.cache.Get(key); ok {
			return cached, nil
		}
		chain, err := r.walk(code, hierarchy)
		if err != nil {
			return nil, err
		}
		r.cache.Set(key, chain)
		return chain, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

func (r *Resolver) walk(code, hierarchy string) ([]string, error) {
	var chain []string
	seen := map[string]bool{code: true}
	current := code
	for depth := 0; depth < maxDepth; depth++ {
		parent, ok := r.store.Parent(current, hierarchy)
		if !ok {
			return chain, nil
		}
		if seen[parent] {
			logging.Error("cycle detected in hierarchy parent chain", "code", code, "hierarchy", hierarchy, "parent", parent)
			return nil, &CatalogError{Code: code, Hierarchy: hierarchy, Reason: "cycle detected in parent chain"}
		}
		seen[parent] = true
		chain = append(chain, parent)
		current = parent
	}
	logging.Error("hierarchy walk exceeded max depth", "code", code, "hierarchy", hierarchy, "maxDepth", maxDepth)
	return nil, &CatalogError{Code: code, Hierarchy: hierarchy, Reason: "parent chain exceeds maximum depth"}
}

// AncestorsInclusive returns Ancestors(code, hierarchy) with code itself
// prepended, for callers (like forbidden-process resolution) that treat
// the term as its own ancestor.
func (r *Resolver) AncestorsInclusive(code, hierarchy string) ([]string, error) {
	ancestors, err := r.Ancestors(code, hierarchy)
	if err != nil {
		return nil, err
	}
	return append([]string{code}, ancestors...), nil
}

// IsAncestor reports whether candidate is a (strict) ancestor of
// descendant in hierarchy. Irreflexive: IsAncestor(x, x, H) is always
// false.
func (r *Resolver) IsAncestor(candidate, descendant, hierarchy string) (bool, error) {
	if candidate == descendant {
		return false, nil
	}
	ancestors, err := r.Ancestors(descendant, hierarchy)
	if err != nil {
		return false, err
	}
	for _, a := range ancestors {
		if a == candidate {
			return true, nil
		}
	}
	return false, nil
}

// IsChildOfAny reports whether descendant has any of candidates as a
// strict ancestor in hierarchy.
func (r *Resolver) IsChildOfAny(candidates []string, descendant, hierarchy string) (bool, error) {
	ancestors, err := r.Ancestors(descendant, hierarchy)
	if err != nil {
		return false, err
	}
	ancestorSet := make(map[string]bool, len(ancestors))
	for _, a := range ancestors {
		ancestorSet[a] = true
	}
	for _, c := range candidates {
		if ancestorSet[c] {
			return true, nil
		}
	}
	return false, nil
}

// IsParentOf reports whether candidate is the direct parent of child in
// hierarchy.
func (r *Resolver) IsParentOf(candidate, child, hierarchy string) bool {
	parent, ok := r.store.Parent(child, hierarchy)
	return ok && parent == candidate
}

// AreSiblings reports whether a and b share the same direct parent in
// hierarchy. Two terms with no parent (both roots) are not siblings.
func (r *Resolver) AreSiblings(a, b, hierarchy string) bool {
	if a == b {
		return false
	}
	pa, aok := r.store.Parent(a, hierarchy)
	pb, bok := r.store.Parent(b, hierarchy)
	return aok && bok && pa == pb
}

func (r *Resolver) hit() {
	if r.cacheHitFn != nil {
		r.cacheHitFn()
	}
}

func (r *Resolver) miss() {
	if r.cacheMissFn != nil {
		r.cacheMissFn()
	}
}
