package parser

import (
	"testing"

	"github.com/efsa/foodex2validator/catalog"
)

func TestParse_BareBase(t *testing.T) {
	expr, faults := Parse("A0B9Z")
	if len(faults) != 0 {
		t.Fatalf("faults = %+v; want none", faults)
	}
	if expr.Base != "A0B9Z" || len(expr.Facets) != 0 {
		t.Errorf("expr = %+v", expr)
	}
}

func TestParse_WithFacets(t *testing.T) {
	expr, faults := Parse("A0B9Z#F28.A07JS$F01.A0F6E")
	if len(faults) != 0 {
		t.Fatalf("faults = %+v; want none", faults)
	}
	want := []catalog.FacetRef{{Group: "F28", DescriptorCode: "A07JS"}, {Group: "F01", DescriptorCode: "A0F6E"}}
	if len(expr.Facets) != 2 || expr.Facets[0] != want[0] || expr.Facets[1] != want[1] {
		t.Errorf("Facets = %+v; want %+v", expr.Facets, want)
	}
}

func TestParse_AcceptsDollarAsFirstSeparator(t *testing.T) {
	expr, faults := Parse("A0B9Z$F28.A07JS")
	if len(faults) != 0 {
		t.Fatalf("faults = %+v; want none", faults)
	}
	if len(expr.Facets) != 1 {
		t.Errorf("Facets = %+v; want 1 entry", expr.Facets)
	}
}

func TestParse_ShortInput(t *testing.T) {
	_, faults := Parse("A0B")
	if len(faults) != 1 || faults[0].Rule != "STRUCT_BASE" {
		t.Errorf("faults = %+v; want one STRUCT_BASE", faults)
	}
}

func TestParse_MalformedBase(t *testing.T) {
	_, faults := Parse("a0b9z#F28.A07JS")
	if len(faults) == 0 || faults[0].Rule != "STRUCT_BASE" {
		t.Errorf("faults = %+v; want STRUCT_BASE first", faults)
	}
}

func TestParse_MalformedFacetContinuesParsing(t *testing.T) {
	expr, faults := Parse("A0B9Z#garbage$F28.A07JS")
	if len(faults) != 1 || faults[0].Rule != "STRUCT_FACET" {
		t.Errorf("faults = %+v; want one STRUCT_FACET", faults)
	}
	if len(expr.Facets) != 1 || expr.Facets[0].Group != "F28" {
		t.Errorf("expr.Facets = %+v; want the valid fragment kept", expr.Facets)
	}
}

func TestParse_BadGroupFormat(t *testing.T) {
	_, faults := Parse("A0B9Z#G28.A07JS")
	if len(faults) != 1 || faults[0].Rule != "STRUCT_FACET" {
		t.Errorf("faults = %+v; want STRUCT_FACET for bad group", faults)
	}
}

func TestSerialize_RoundTrip(t *testing.T) {
	inputs := []string{
		"A0B9Z",
		"A0B9Z#F28.A07JS",
		"A0B9Z#F28.A07JS$F01.A0F6E",
	}
	for _, in := range inputs {
		expr, faults := Parse(in)
		if len(faults) != 0 {
			t.Fatalf("Parse(%q) faults = %+v", in, faults)
		}
		out := Serialize(expr)
		if out != in {
			t.Errorf("Serialize(Parse(%q)) = %q; want %q", in, out, in)
		}
	}
}
