package foodex2

// RuleDefinition is the static, catalogue-overridable description of a rule:
// its message template and default severity. BR02, BR09, and BR18 are
// deliberately empty slots that preserve the numbering; BR14 and BR15 are
// reserved for ICT/DCF contexts and carry no predicate anywhere in this
// package, so they never produce a Warning.
type RuleDefinition struct {
	ID       RuleID
	Message  string
	Severity Severity
}

// businessRuleDefaults is the fallback rule-message table used when the
// catalogue supplies no rule-message override (see catalog.Store.RuleMessage).
var businessRuleDefaults = map[RuleID]RuleDefinition{
	"BR01": {"BR01", "explicit raw-commodity source facet is not a descendant of any implicit source or the base term", SeverityHigh},
	"BR02": {"BR02", "", SeverityNone},
	"BR03": {"BR03", "F01 source facet not allowed in composite food", SeverityHigh},
	"BR04": {"BR04", "F27 raw-commodity source facet not allowed in composite food", SeverityHigh},
	"BR05": {"BR05", "explicit raw-commodity source facet is not a descendant of the implicit source", SeverityHigh},
	"BR06": {"BR06", "derivative with an explicit source facet must declare exactly one raw-commodity source", SeverityHigh},
	"BR07": {"BR07", "derivative with an explicit source facet must declare exactly one raw-commodity source", SeverityHigh},
	"BR08": {"BR08", "base term is not a member of the reporting hierarchy", SeverityHigh},
	"BR09": {"BR09", "", SeverityNone},
	"BR10": {"BR10", "base term is non-specific", SeverityLow},
	"BR11": {"BR11", "explicit process facet is the generic \"Processed\" term", SeverityLow},
	"BR12": {"BR12", "ingredient facet not expected on a raw or derivative term", SeverityLow},
	"BR13": {"BR13", "physical-state facet denotes a derivative-creating process; use a derivative base term instead", SeverityHigh},
	"BR16": {"BR16", "explicit facet is a strict, non-sibling ancestor of the implicit facet in the same group", SeverityHigh},
	"BR17": {"BR17", "facet terms cannot be used as base terms", SeverityHigh},
	"BR18": {"BR18", "", SeverityNone},
	"BR19": {"BR19", "process facet is forbidden for this term", SeverityHigh},
	"BR20": {"BR20", "term is deprecated", SeverityHigh},
	"BR21": {"BR21", "term is dismissed", SeverityHigh},
	"BR22": {"BR22", "expression validated with no blocking warnings", SeverityNone},
	"BR23": {"BR23", "base term is a hierarchy term within the exposure hierarchy", SeverityLow},
	"BR24": {"BR24", "base term is a hierarchy term outside the exposure hierarchy", SeverityHigh},
	"BR25": {"BR25", "more than one facet declared for a single-cardinality group", SeverityHigh},
	"BR26": {"BR26", "two or more process facets share a mutually-exclusive ordinal", SeverityHigh},
	"BR27": {"BR27", "two or more process facets share a fractional-ordinal derivative family", SeverityHigh},
	"BR28": {"BR28", "reconstitution or dilution process applied to an already dehydrated/concentrated term", SeverityHigh},
	"BR29": {"BR29", "structural violation", SeverityError},
	"BR30": {"BR30", "structural violation", SeverityError},
	"BR31": {"BR31", "structural violation", SeverityError},

	RuleBaseNotFound:  {RuleBaseNotFound, "base term code does not resolve to a catalogue term", SeverityError},
	RuleFacetNotFound: {RuleFacetNotFound, "facet descriptor code does not resolve to a catalogue term", SeverityError},
	RuleCategory:      {RuleCategory, "facet descriptor does not belong to the hierarchy assigned to its group", SeverityError},
	RuleCardinality:   {RuleCardinality, "more than one facet declared for a single-cardinality group", SeverityHigh},
	RuleDuplicate:     {RuleDuplicate, "duplicate facet (group, descriptor) pair", SeverityHigh},
	RuleStructBase:    {RuleStructBase, "base term must be five uppercase alphanumerics", SeverityError},
	RuleStructFacet:   {RuleStructFacet, "facet fragment must be GROUP.DESCRIPTOR with a two-digit group and a five-character descriptor", SeverityError},
}

// InertRules are rule ids reserved for context modes not yet defined
// (ICT/DCF). They are carried as placeholders and must never emit a
// warning; see Context and the rule evaluator's dispatch loop.
var InertRules = map[RuleID]bool{
	"BR14": true,
	"BR15": true,
}

// LookupRuleDefinition returns the default definition for a rule id, and
// whether one was found. Catalogue-loaded overrides (catalog.Store.RuleMessage)
// take precedence over this table at evaluation time.
func LookupRuleDefinition(id RuleID) (RuleDefinition, bool) {
	def, ok := businessRuleDefaults[id]
	return def, ok
}
