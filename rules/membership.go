package rules

import (
	"github.com/efsa/foodex2validator"
	"github.com/efsa/foodex2validator/catalog"
)

// br08 (HIGH): not dismissed, base not a member of the report hierarchy.
func br08(ctx *Context) []foodex2.Warning {
	if ctx.Base.Status == catalog.StatusDismissed {
		return nil
	}
	if ctx.Store.IsMember(ctx.Base.Code, catalog.ReportHierarchy) {
		return nil
	}
	return []foodex2.Warning{foodex2.NewWarning("BR08", foodex2.SeverityHigh).
		Message("base term is not a member of the reporting hierarchy").At(ctx.Base.Code).Build()}
}

// br23 (LOW): base detail_level = 'H' and base in expo.
func br23(ctx *Context) []foodex2.Warning {
	if !ctx.Base.IsHierarchyTerm() || !ctx.Store.IsMember(ctx.Base.Code, catalog.ExposureHierarchy) {
		return nil
	}
	return []foodex2.Warning{foodex2.NewWarning("BR23", foodex2.SeverityLow).
		Message("base term is a hierarchy term within the exposure hierarchy").At(ctx.Base.Code).Build()}
}

// br24 (HIGH): base detail_level = 'H' and base NOT in expo.
func br24(ctx *Context) []foodex2.Warning {
	if !ctx.Base.IsHierarchyTerm() || ctx.Store.IsMember(ctx.Base.Code, catalog.ExposureHierarchy) {
		return nil
	}
	return []foodex2.Warning{foodex2.NewWarning("BR24", foodex2.SeverityHigh).
		Message("base term is a hierarchy term outside the exposure hierarchy").At(ctx.Base.Code).Build()}
}

// br25 (HIGH): the single-cardinality violation is caught by the
// structural validator (VBA-CARDINALITY); BR25 additionally reports it
// here under its business-rule id, per spec §4.5.
func br25(ctx *Context) []foodex2.Warning {
	if !ctx.hasWarningWithRule(foodex2.RuleCardinality) {
		return nil
	}
	return []foodex2.Warning{foodex2.NewWarning("BR25", foodex2.SeverityHigh).
		Message("more than one facet declared for a single-cardinality group").Build()}
}
