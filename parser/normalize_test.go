package parser

import (
	"testing"

	"github.com/efsa/foodex2validator/catalog"
)

func TestNormalize_StripsImplicitFacet(t *testing.T) {
	store := catalog.NewMemoryStore()
	base := catalog.Term{Code: "A01DJ", ImplicitFacets: "F27.A0EZJ"}
	store.PutTerm(base)

	expr, _ := Parse("A01DJ#F27.A0EZJ$F28.A07KQ")
	cleaned, warning := Normalize(expr, base, store)

	if warning == nil {
		t.Fatal("expected a HIGH warning for the stripped implicit facet")
	}
	if len(cleaned.Facets) != 1 || cleaned.Facets[0].Group != "F28" {
		t.Errorf("cleaned.Facets = %+v; want only F28 to survive", cleaned.Facets)
	}
	if warning.CleanedCode != "A01DJ#F28.A07KQ" {
		t.Errorf("warning.CleanedCode = %q", warning.CleanedCode)
	}
}

func TestNormalize_NoOpWhenNothingImplicit(t *testing.T) {
	store := catalog.NewMemoryStore()
	base := catalog.Term{Code: "A0B9Z"}
	store.PutTerm(base)

	expr, _ := Parse("A0B9Z#F28.A07KQ")
	cleaned, warning := Normalize(expr, base, store)

	if warning != nil {
		t.Error("expected no warning when base has no implicit facets")
	}
	if len(cleaned.Facets) != 1 {
		t.Errorf("cleaned.Facets = %+v; want unchanged", cleaned.Facets)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	store := catalog.NewMemoryStore()
	base := catalog.Term{Code: "A01DJ", ImplicitFacets: "F27.A0EZJ"}
	store.PutTerm(base)

	expr, _ := Parse("A01DJ#F27.A0EZJ$F28.A07KQ")
	cleaned, _ := Normalize(expr, base, store)

	reCleaned, warning := Normalize(cleaned, base, store)
	if warning != nil {
		t.Error("normalizing an already-cleaned expression should emit no warning")
	}
	if len(reCleaned.Facets) != len(cleaned.Facets) {
		t.Errorf("re-normalized facets = %+v; want unchanged %+v", reCleaned.Facets, cleaned.Facets)
	}
}
