package parser

import (
	"github.com/efsa/foodex2validator"
	"github.com/efsa/foodex2validator/catalog"
)

// Normalize removes from expr.Facets any facet that is already implicit on
// the base term, returning the surviving facets, the canonical serialized
// form, and (if anything was stripped) a HIGH warning carrying that form.
// Normalization never changes structural acceptance; it only records a
// warning and a canonical form. Calling Normalize again on an
// already-cleaned expression is a no-op: it strips nothing and emits no
// warning, so repeated normalization is idempotent.
func Normalize(expr Expression, base catalog.Term, store catalog.Store) (Expression, *foodex2.Warning) {
	implicit := store.ImplicitFacets(base)
	if len(implicit) == 0 || len(expr.Facets) == 0 {
		return expr, nil
	}

	implicitSet := make(map[catalog.FacetRef]bool, len(implicit))
	for _, f := range implicit {
		implicitSet[f] = true
	}

	cleaned := Expression{Base: expr.Base}
	stripped := false
	for _, f := range expr.Facets {
		if implicitSet[f] {
			stripped = true
			continue
		}
		cleaned.Facets = append(cleaned.Facets, f)
	}

	if !stripped {
		return expr, nil
	}

	canonical := Serialize(cleaned)
	w := foodex2.NewWarning(foodex2.RuleImplicitStripped, foodex2.SeverityHigh).
		Message("explicit facet duplicates a facet implicit on the base term; removed").
		WithCleanedCode(canonical).
		Build()
	return cleaned, &w
}
