// Package parser tokenizes a FoodEx2 expression string into a structured
// FacetExpression, enforcing shape only: it never looks anything up in the
// catalogue except (in Normalize) to strip implicit facets.
package parser

import (
	"regexp"
	"strings"

	"github.com/efsa/foodex2validator/catalog"
	"github.com/efsa/foodex2validator/pool"
)

var (
	baseRe  = regexp.MustCompile(`^[A-Z0-9]{5}$`)
	groupRe = regexp.MustCompile(`^F\d{2}$`)
	descRe  = regexp.MustCompile(`^[A-Z0-9]{5}$`)
)

// Expression is a parsed FoodEx2 expression: a base term code plus an
// ordered list of explicit facet references. Order is insignificant for
// semantics; it is preserved only so Serialize can round-trip.
type Expression struct {
	Base   string
	Facets []catalog.FacetRef
}

// StructuralFault describes one structural rejection: a malformed base or
// a malformed facet fragment.
type StructuralFault struct {
	Rule     string // "STRUCT_BASE" or "STRUCT_FACET"
	Fragment string
}

// Parse tokenizes expr per "BASE[(#|$)GROUP.DESC]*". Input shorter than
// five characters is a fatal structural fault (the returned Expression is
// empty). Otherwise the first five characters are the base: a malformed
// base is reported as STRUCT_BASE but kept in Base, and the facet fragments
// are still parsed. A malformed facet fragment is reported as a fault but does not prevent the
// remaining fragments from parsing, matching the spec's per-fragment
// STRUCT_FACET reporting.
func Parse(expr string) (Expression, []StructuralFault) {
	var faults []StructuralFault

	if len(expr) < 5 {
		return Expression{}, []StructuralFault{{Rule: "STRUCT_BASE", Fragment: expr}}
	}

	base, rest := splitBase(expr)
	if !baseRe.MatchString(base) {
		faults = append(faults, StructuralFault{Rule: "STRUCT_BASE", Fragment: base})
	}

	out := Expression{Base: base}
	for _, fragment := range splitFragments(rest) {
		ref, ok := parseFragment(fragment)
		if !ok {
			faults = append(faults, StructuralFault{Rule: "STRUCT_FACET", Fragment: fragment})
			continue
		}
		out.Facets = append(out.Facets, ref)
	}

	return out, faults
}

// splitBase extracts the leading base code (always the first five
// characters, even if a separator appears earlier) and the remainder.
func splitBase(expr string) (base, rest string) {
	if len(expr) < 5 {
		return expr, ""
	}
	return expr[:5], expr[5:]
}

// splitFragments splits on '#' or '$', discarding empty fragments.
func splitFragments(rest string) []string {
	if rest == "" {
		return nil
	}
	raw := strings.FieldsFunc(rest, func(r rune) bool {
		return r == '#' || r == '$'
	})
	fragments := make([]string, 0, len(raw))
	for _, f := range raw {
		if f != "" {
			fragments = append(fragments, f)
		}
	}
	return fragments
}

// parseFragment validates a single GROUP.DESCRIPTOR fragment.
func parseFragment(fragment string) (catalog.FacetRef, bool) {
	dot := strings.IndexByte(fragment, '.')
	if dot < 0 {
		return catalog.FacetRef{}, false
	}
	group, desc := fragment[:dot], fragment[dot+1:]
	if !groupRe.MatchString(group) || !descRe.MatchString(desc) {
		return catalog.FacetRef{}, false
	}
	return catalog.FacetRef{Group: group, DescriptorCode: desc}, true
}

// Serialize renders an Expression back to canonical form: '#' before the
// first facet, '$' before every subsequent one. Facet order is the order
// they appear in expr.Facets.
func Serialize(expr Expression) string {
	if len(expr.Facets) == 0 {
		return expr.Base
	}
	b := pool.AcquirePathBuilder()
	defer b.Release()
	b.WriteString(expr.Base)
	for i, f := range expr.Facets {
		if i == 0 {
			b.WriteByte('#')
		} else {
			b.WriteByte('$')
		}
		b.WriteString(f.Group)
		b.WriteByte('.')
		b.WriteString(f.DescriptorCode)
	}
	return b.String()
}
