// Package rules implements the FoodEx2 business-rule evaluator: BR01
// through BR31, dispatched in id order as a data-driven table of
// (id, severity, predicate) values rather than hard-coded branches, so
// tests can enumerate and parametrize over the set and context-gated
// rules can be toggled without touching dispatch logic.
package rules

import (
	"sort"

	"github.com/efsa/foodex2validator"
	"github.com/efsa/foodex2validator/catalog"
	"github.com/efsa/foodex2validator/hierarchy"
	"github.com/efsa/foodex2validator/structural"
)

// Context is everything a rule predicate needs: the resolved base term
// and explicit facets, the implicit facets inherited from the base, the
// hierarchy resolver and catalogue store, the context mode, and the
// warnings accumulated so far in this evaluation pass (structural
// warnings plus every rule warning emitted before this one in id order).
// BR22/BR25 read WarningsSoFar to report on the pass's own outcome.
type Context struct {
	Base           catalog.Term
	ExplicitFacets []structural.ResolvedFacet
	ImplicitFacets []catalog.FacetRef
	Store          catalog.Store
	Resolver       *hierarchy.Resolver
	ContextMode    foodex2.ContextMode
	WarningsSoFar  []foodex2.Warning
}

// ExplicitByGroup returns the explicit facets in group g.
func (c *Context) ExplicitByGroup(g string) []structural.ResolvedFacet {
	var out []structural.ResolvedFacet
	for _, f := range c.ExplicitFacets {
		if f.Ref.Group == g {
			out = append(out, f)
		}
	}
	return out
}

// ImplicitByGroup returns the implicit facets in group g.
func (c *Context) ImplicitByGroup(g string) []catalog.FacetRef {
	var out []catalog.FacetRef
	for _, f := range c.ImplicitFacets {
		if f.Group == g {
			out = append(out, f)
		}
	}
	return out
}

// hasBlockingSoFar reports whether WarningsSoFar already contains an ERROR
// or HIGH severity warning.
func (c *Context) hasBlockingSoFar() bool {
	for _, w := range c.WarningsSoFar {
		if w.Severity == foodex2.SeverityError || w.Severity == foodex2.SeverityHigh {
			return true
		}
	}
	return false
}

func (c *Context) hasWarningWithRule(id foodex2.RuleID) bool {
	for _, w := range c.WarningsSoFar {
		if w.Rule == id {
			return true
		}
	}
	return false
}

// Predicate evaluates one rule against ctx, returning zero or more
// warnings (some rules, like BR20/BR21, can fire once per offending term).
type Predicate func(ctx *Context) []foodex2.Warning

// Rule is a single business rule: its id, default severity, and the
// predicate that decides whether it fires. A nil Predicate marks an inert
// rule (BR02, BR09, BR14, BR15, BR18, BR29-31): the evaluator skips it
// unconditionally.
type Rule struct {
	ID        foodex2.RuleID
	Severity  foodex2.Severity
	Predicate Predicate
}

// Evaluator holds an ordered, registrable set of rules.
type Evaluator struct {
	rules map[foodex2.RuleID]Rule
	order []foodex2.RuleID
}

// NewEvaluator creates an empty Evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{rules: make(map[foodex2.RuleID]Rule)}
}

// Register adds or replaces a rule. This is the extension point for
// caller-supplied rule modules (e.g. the soft SR1-SR8 heuristics or
// domain overlays) plugged into the same evaluator.
func (e *Evaluator) Register(r Rule) {
	if _, exists := e.rules[r.ID]; !exists {
		e.order = append(e.order, r.ID)
	}
	e.rules[r.ID] = r
	sort.Slice(e.order, func(i, j int) bool { return e.order[i] < e.order[j] })
}

// Evaluate runs every registered rule in id order against ctx, seeding
// ctx.WarningsSoFar with structuralWarnings and threading each rule's own
// output into the next rule's view. Evaluation never short-circuits on a
// non-ERROR warning.
func (e *Evaluator) Evaluate(ctx *Context, structuralWarnings []foodex2.Warning) []foodex2.Warning {
	ctx.WarningsSoFar = append([]foodex2.Warning(nil), structuralWarnings...)

	for _, id := range e.order {
		rule := e.rules[id]
		if rule.Predicate == nil {
			continue
		}
		fired := rule.Predicate(ctx)
		applyMessageOverrides(ctx.Store, fired)
		ctx.WarningsSoFar = append(ctx.WarningsSoFar, fired...)
	}

	return ctx.WarningsSoFar[len(structuralWarnings):]
}

// applyMessageOverrides consults the catalogue's rule-message table for
// each warning just fired, replacing its default Message (and Severity,
// if the override sets one) in place. Warnings with no override loaded
// keep the rule's built-in text; see rules.go's businessRuleDefaults.
func applyMessageOverrides(store catalog.Store, warnings []foodex2.Warning) {
	if store == nil {
		return
	}
	for i := range warnings {
		rm, ok := store.RuleMessage(string(warnings[i].Rule))
		if !ok {
			continue
		}
		if rm.Message != "" {
			warnings[i].Message = rm.Message
		}
		if rm.Severity != "" {
			warnings[i].Severity = foodex2.Severity(rm.Severity)
		}
	}
}
