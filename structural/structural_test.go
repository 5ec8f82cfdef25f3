package structural

import (
	"testing"

	"github.com/efsa/foodex2validator"
	"github.com/efsa/foodex2validator/catalog"
	"github.com/efsa/foodex2validator/parser"
)

func setupStore() *catalog.MemoryStore {
	s := catalog.NewMemoryStore()
	s.PutTerm(catalog.Term{Code: "A0B9Z", Type: catalog.TermRaw})
	s.PutTerm(catalog.Term{Code: "A07JS", Type: catalog.TermGroup})
	s.PutTerm(catalog.Term{Code: "A0F6E", Type: catalog.TermGroup})
	s.PutParent("process", "A07JS", "A07XS")
	s.PutMember("source", "A0F6E")
	return s
}

func mustParse(t *testing.T, expr string) parser.Expression {
	t.Helper()
	e, faults := parser.Parse(expr)
	if len(faults) != 0 {
		t.Fatalf("Parse(%q) faults = %+v", expr, faults)
	}
	return e
}

func TestValidate_BaseNotFound(t *testing.T) {
	store := setupStore()
	res, warnings := Validate(mustParse(t, "ZZZZZ"), store)

	if !res.HasBlocking || res.Base != nil {
		t.Errorf("res = %+v; want blocking with no base", res)
	}
	if len(warnings) != 1 || warnings[0].Rule != foodex2.RuleBaseNotFound {
		t.Errorf("warnings = %+v; want one VBA-NOTFOUND", warnings)
	}
}

func TestValidate_FacetNotFound(t *testing.T) {
	store := setupStore()
	res, warnings := Validate(mustParse(t, "A0B9Z#F28.ZZZZZ"), store)

	if !res.HasBlocking {
		t.Error("expected HasBlocking for an unresolved facet")
	}
	if len(warnings) != 1 || warnings[0].Rule != foodex2.RuleFacetNotFound {
		t.Errorf("warnings = %+v; want one VBA-FACET404", warnings)
	}
}

func TestValidate_WrongCategory(t *testing.T) {
	store := setupStore()
	// A0F6E is a member of "source" but referenced under F28 (process).
	res, warnings := Validate(mustParse(t, "A0B9Z#F28.A0F6E"), store)

	if !res.HasBlocking {
		t.Error("expected HasBlocking for a category mismatch")
	}
	if len(warnings) != 1 || warnings[0].Rule != foodex2.RuleCategory {
		t.Errorf("warnings = %+v; want one VBA-CATEGORY", warnings)
	}
}

func TestValidate_Cardinality(t *testing.T) {
	store := setupStore()
	store.PutTerm(catalog.Term{Code: "XXXXX", Type: catalog.TermGroup})
	store.PutTerm(catalog.Term{Code: "YYYYY", Type: catalog.TermGroup})
	store.PutMember("state", "XXXXX")
	store.PutMember("state", "YYYYY")

	res, warnings := Validate(mustParse(t, "A0B9Z#F03.XXXXX$F03.YYYYY"), store)

	if res.HasBlocking {
		t.Error("cardinality violation should not be marked blocking (HIGH, not ERROR)")
	}
	found := false
	for _, w := range warnings {
		if w.Rule == foodex2.RuleCardinality {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %+v; want a VBA-CARDINALITY warning", warnings)
	}
}

func TestValidate_Duplicate(t *testing.T) {
	store := setupStore()
	res, warnings := Validate(mustParse(t, "A0B9Z#F28.A07JS$F28.A07JS"), store)

	if res.HasBlocking {
		t.Error("duplicate facet should not be marked blocking (HIGH, not ERROR)")
	}
	found := false
	for _, w := range warnings {
		if w.Rule == foodex2.RuleDuplicate {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %+v; want a VBA-DUPLICATE warning", warnings)
	}
	if len(res.Facets) != 1 {
		t.Errorf("res.Facets = %+v; want only the first occurrence kept", res.Facets)
	}
}

func TestValidate_CleanExpression(t *testing.T) {
	store := setupStore()
	res, warnings := Validate(mustParse(t, "A0B9Z#F28.A07JS"), store)

	if res.HasBlocking {
		t.Error("expected no blocking warnings")
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %+v; want none", warnings)
	}
	if res.Base == nil || res.Base.Code != "A0B9Z" {
		t.Errorf("res.Base = %+v", res.Base)
	}
	if len(res.Facets) != 1 {
		t.Errorf("res.Facets = %+v; want 1", res.Facets)
	}
}
