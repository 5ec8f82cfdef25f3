// Package catalog provides read-only access to the FoodEx2 reference data:
// terms, per-hierarchy parent links, forbidden-process tables, process
// ordinal codes, and rule-message overrides. Nothing in this package
// mutates the catalogue after it is loaded.
package catalog

import "github.com/shopspring/decimal"

// TermType is the catalogue's closed term-type enum.
type TermType string

// Term types, per the catalogue's term typology.
const (
	TermRaw             TermType = "r"
	TermDerivative      TermType = "d"
	TermComposite       TermType = "c"
	TermSimpleComposite TermType = "s"
	TermFacet           TermType = "f"
	TermGroup           TermType = "g"
	TermHierarchy       TermType = "h"
	TermNonSpecific     TermType = "n"
)

// Status is the catalogue's term lifecycle status.
type Status string

// Known statuses.
const (
	StatusApproved  Status = "APPROVED"
	StatusDismissed Status = "DISMISSED"
)

// Term is a catalogue entity: a base term or a facet descriptor.
type Term struct {
	Code        string
	Name        string
	Type        TermType
	DetailLevel string
	Status      Status
	Deprecated  bool

	// ImplicitFacets is the raw implicit-facets string as stored by the
	// catalogue, using '$' and/or '#' as separators interchangeably. Use
	// ParseImplicitFacets to decode it.
	ImplicitFacets string
}

// IsHierarchyTerm reports whether the term marks a hierarchy node
// (detail_level = 'H').
func (t Term) IsHierarchyTerm() bool {
	return t.DetailLevel == "H"
}

// FacetRef is a (group, descriptor) pair. Equality is on the full pair; a
// descriptor code shared across groups is a distinct FacetRef.
type FacetRef struct {
	Group          string
	DescriptorCode string
}

// ForbiddenProcess is one row of the forbidden-process reference table:
// a process forbidden for a root group and every descendant of it in the
// reporting hierarchy.
type ForbiddenProcess struct {
	RootGroupCode  string
	RootGroupLabel string
	ProcessCode    string
	ProcessLabel   string
	Ordinal        decimal.Decimal
}

// RuleMessage is a catalogue-supplied override for a rule's message text
// and/or severity.
type RuleMessage struct {
	ID       string
	Message  string
	Severity string
}

// ReportHierarchy is the hierarchy whose membership signals that a term
// may be used for official data submission. forbidden_processes_for walks
// ancestors in this hierarchy.
const ReportHierarchy = "report"

// ExposureHierarchy is the hierarchy whose membership signals suitability
// for consumption/exposure data (BR23/BR24).
const ExposureHierarchy = "expo"

// ProcessedTermCode is the generic "Processed" term in the process
// hierarchy (BR11).
const ProcessedTermCode = "A07XS"
