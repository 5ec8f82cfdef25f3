// Package structural enforces the shape rules that must hold before any
// business rule runs: the base term and every facet descriptor resolve
// against the catalogue, each descriptor belongs to the hierarchy paired
// with its group, single-cardinality groups appear at most once, and no
// facet is duplicated.
package structural

import (
	"github.com/efsa/foodex2validator"
	"github.com/efsa/foodex2validator/catalog"
	"github.com/efsa/foodex2validator/parser"
)

// Resolved carries the structural validator's output: the base term (nil
// if unresolved) and the explicit facets that resolved to a catalogue
// term, paired with their terms.
type Resolved struct {
	Base        *catalog.Term
	Facets      []ResolvedFacet
	HasBlocking bool
}

// ResolvedFacet pairs a FacetRef with its resolved Term.
type ResolvedFacet struct {
	Ref  catalog.FacetRef
	Term catalog.Term
}

// Validate runs every structural check against expr and returns the
// resolved base/facets plus any warnings. A base that fails to resolve
// (VBA-NOTFOUND) still returns Resolved{Base: nil}; callers must check
// HasBlocking before running the rule evaluator (it is an ERROR).
func Validate(expr parser.Expression, store catalog.Store) (Resolved, []foodex2.Warning) {
	var warnings []foodex2.Warning
	var res Resolved

	base, ok := store.LookupTerm(expr.Base)
	if !ok {
		warnings = append(warnings, foodex2.NewWarning(foodex2.RuleBaseNotFound, foodex2.SeverityError).
			Message("base term code does not resolve to a catalogue term").
			At(expr.Base).
			Build())
		res.HasBlocking = true
		return res, warnings
	}
	res.Base = &base

	seen := make(map[catalog.FacetRef]bool, len(expr.Facets))
	groupCounts := make(map[string]int, len(expr.Facets))

	for _, ref := range expr.Facets {
		if seen[ref] {
			warnings = append(warnings, foodex2.NewWarning(foodex2.RuleDuplicate, foodex2.SeverityHigh).
				Message("duplicate facet (group, descriptor) pair").
				At(ref.DescriptorCode).
				InGroup(ref.Group).
				Build())
			continue
		}
		seen[ref] = true
		groupCounts[ref.Group]++

		term, ok := store.LookupTerm(ref.DescriptorCode)
		if !ok {
			warnings = append(warnings, foodex2.NewWarning(foodex2.RuleFacetNotFound, foodex2.SeverityError).
				Message("facet descriptor code does not resolve to a catalogue term").
				At(ref.DescriptorCode).
				InGroup(ref.Group).
				Build())
			res.HasBlocking = true
			continue
		}

		hierarchy, known := catalog.FacetGroupHierarchy[ref.Group]
		if !known || !store.IsMember(ref.DescriptorCode, hierarchy) {
			warnings = append(warnings, foodex2.NewWarning(foodex2.RuleCategory, foodex2.SeverityError).
				Message("facet descriptor does not belong to the hierarchy assigned to its group").
				At(ref.DescriptorCode).
				InGroup(ref.Group).
				Build())
			res.HasBlocking = true
			continue
		}

		res.Facets = append(res.Facets, ResolvedFacet{Ref: ref, Term: term})
	}

	for group, count := range groupCounts {
		if count > 1 && catalog.SingleCardinalityGroups[group] {
			warnings = append(warnings, foodex2.NewWarning(foodex2.RuleCardinality, foodex2.SeverityHigh).
				Message("more than one facet declared for a single-cardinality group").
				InGroup(group).
				Build())
		}
	}

	return res, warnings
}
