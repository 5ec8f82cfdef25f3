package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestMemoryStore_LookupTerm(t *testing.T) {
	s := NewMemoryStore()
	s.PutTerm(Term{Code: "A0B9Z", Name: "Example", Type: TermRaw})

	term, ok := s.LookupTerm("A0B9Z")
	if !ok {
		t.Fatal("expected term to be found")
	}
	if term.Name != "Example" {
		t.Errorf("Name = %q; want %q", term.Name, "Example")
	}

	if _, ok := s.LookupTerm("ZZZZZ"); ok {
		t.Error("expected missing term to report not found, not an error")
	}
}

func TestMemoryStore_ParentAndMember(t *testing.T) {
	s := NewMemoryStore()
	s.PutParent("process", "A07KX", "A07KQ")

	parent, ok := s.Parent("A07KX", "process")
	if !ok || parent != "A07KQ" {
		t.Errorf("Parent() = (%q, %v); want (A07KQ, true)", parent, ok)
	}

	if !s.IsMember("A07KX", "process") {
		t.Error("A07KX should be a member of process")
	}
	if !s.IsMember("A07KQ", "process") {
		t.Error("A07KQ (parent) should be a member of process")
	}
	if s.IsMember("A07KX", "report") {
		t.Error("A07KX should not be a member of an unrelated hierarchy")
	}

	if _, ok := s.Parent("A07KQ", "process"); ok {
		t.Error("root term should have no parent")
	}
}

func TestMemoryStore_ForbiddenProcessesFor(t *testing.T) {
	s := NewMemoryStore()
	s.PutForbiddenProcess(ForbiddenProcess{RootGroupCode: "A000L", ProcessCode: "A07LG", Ordinal: decimal.NewFromInt(1)})
	s.PutForbiddenProcess(ForbiddenProcess{RootGroupCode: "A000M", ProcessCode: "A07LH", Ordinal: decimal.NewFromInt(1)})

	forbidden := s.ForbiddenProcessesFor("A000L", []string{"A000M"})
	if !forbidden["A07LG"] || !forbidden["A07LH"] {
		t.Errorf("ForbiddenProcessesFor() = %v; want both A07LG and A07LH", forbidden)
	}
	if len(forbidden) != 2 {
		t.Errorf("len(forbidden) = %d; want 2", len(forbidden))
	}
}

func TestMemoryStore_ImplicitFacets(t *testing.T) {
	s := NewMemoryStore()
	term := Term{Code: "A01DJ", ImplicitFacets: "F27.A0EZJ#F28.A07KQ"}

	refs := s.ImplicitFacets(term)
	if len(refs) != 2 {
		t.Fatalf("len(refs) = %d; want 2", len(refs))
	}
	if refs[0] != (FacetRef{Group: "F27", DescriptorCode: "A0EZJ"}) {
		t.Errorf("refs[0] = %+v", refs[0])
	}
}

func TestMemoryStore_Sets(t *testing.T) {
	s := NewMemoryStore()
	s.SetPhysicalStateSet([]string{"A0BZS"})
	s.SetDehydrationProcessSet([]string{"A07XY"})
	s.SetRehydrationProcessSet([]string{"A07XZ"})

	if !s.PhysicalStateSet()["A0BZS"] {
		t.Error("PhysicalStateSet should contain A0BZS")
	}
	if !s.DehydrationProcessSet()["A07XY"] {
		t.Error("DehydrationProcessSet should contain A07XY")
	}
	if !s.RehydrationProcessSet()["A07XZ"] {
		t.Error("RehydrationProcessSet should contain A07XZ")
	}
}

func TestMemoryStore_RuleMessage(t *testing.T) {
	s := NewMemoryStore()
	s.PutRuleMessage(RuleMessage{ID: "BR03", Message: "custom override", Severity: "HIGH"})

	rm, ok := s.RuleMessage("BR03")
	if !ok || rm.Message != "custom override" {
		t.Errorf("RuleMessage(BR03) = %+v, %v", rm, ok)
	}
	if _, ok := s.RuleMessage("BR99"); ok {
		t.Error("expected no override for unknown rule")
	}
}
