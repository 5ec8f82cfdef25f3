package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Store is read-only access to the static reference data. Implementations
// must be safe for concurrent reads; there are no write operations once a
// Store is constructed.
type Store interface {
	// LookupTerm returns the term for an exact code, or false if absent.
	// A missing term is a successful "not found" response; it is never an
	// error.
	LookupTerm(code string) (Term, bool)

	// ImplicitFacets returns the decoded implicit facets for a term.
	ImplicitFacets(term Term) []FacetRef

	// Parent returns the direct parent of code in hierarchy, if any.
	Parent(code, hierarchy string) (string, bool)

	// IsMember reports whether code belongs to hierarchy.
	IsMember(code, hierarchy string) bool

	// ForbiddenProcessesFor returns the set of process codes forbidden for
	// term, the union over term and its ancestors (inclusive) in
	// ReportHierarchy.
	ForbiddenProcessesFor(code string, ancestorsInclusive []string) map[string]bool

	// ProcessOrdinal returns the ordinal code for a process descriptor. A
	// missing value is treated as 0 (non-exclusive) by the caller.
	ProcessOrdinal(processCode string) (decimal.Decimal, bool)

	// RuleMessage returns a catalogue-supplied override for a rule's message and
	// severity, if one has been loaded.
	RuleMessage(id string) (RuleMessage, bool)

	// PhysicalStateSet is the BR13 "derivative-creating physical states"
	// set: F03 descriptor codes whose presence on a raw term indicates a
	// derivative-creating process.
	PhysicalStateSet() map[string]bool

	// DehydrationProcessSet is the BR28 "dehydration-indicating implicit
	// process" set: F28 descriptor codes that mark a term as already
	// dehydrated/concentrated.
	DehydrationProcessSet() map[string]bool

	// RehydrationProcessSet is the BR28 "reconstitution or dilution"
	// process set: F28 descriptor codes that undo dehydration/
	// concentration. Not named in spec.md's text, which only describes the
	// processes by name; surfaced as a catalogue-driven set for the same
	// reason PhysicalStateSet and DehydrationProcessSet are.
	RehydrationProcessSet() map[string]bool
}

// ParseImplicitFacets decodes a catalogue implicit_facets string into
// FacetRef values. Separators '$' and '#' are equivalent; fragments that
// do not match GROUP.DESCRIPTOR are skipped.
func ParseImplicitFacets(raw string) []FacetRef {
	if raw == "" {
		return nil
	}
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '$' || r == '#'
	})
	refs := make([]FacetRef, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		dot := strings.IndexByte(f, '.')
		if dot < 0 {
			continue
		}
		group, desc := f[:dot], f[dot+1:]
		if group == "" || desc == "" {
			continue
		}
		refs = append(refs, FacetRef{Group: group, DescriptorCode: desc})
	}
	return refs
}
