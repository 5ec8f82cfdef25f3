package rules

import (
	"github.com/efsa/foodex2validator"
	"github.com/efsa/foodex2validator/catalog"
)

// br10 (LOW): base type = n.
func br10(ctx *Context) []foodex2.Warning {
	if ctx.Base.Type != catalog.TermNonSpecific {
		return nil
	}
	return []foodex2.Warning{foodex2.NewWarning("BR10", foodex2.SeverityLow).
		Message("base term is non-specific").At(ctx.Base.Code).Build()}
}

// br11 (LOW): any explicit F28 descriptor equal to, or a descendant in
// process of, the generic "Processed" term.
func br11(ctx *Context) []foodex2.Warning {
	var out []foodex2.Warning
	for _, f := range ctx.ExplicitByGroup("F28") {
		if f.Ref.DescriptorCode == catalog.ProcessedTermCode {
			out = append(out, br11Warning(f.Ref.DescriptorCode))
			continue
		}
		if ok, err := ctx.Resolver.IsAncestor(catalog.ProcessedTermCode, f.Ref.DescriptorCode, "process"); err == nil && ok {
			out = append(out, br11Warning(f.Ref.DescriptorCode))
		}
	}
	return out
}

func br11Warning(code string) foodex2.Warning {
	return foodex2.NewWarning("BR11", foodex2.SeverityLow).
		Message(`explicit process facet is the generic "Processed" term`).At(code).InGroup("F28").Build()
}

// br12 (LOW): type ∈ {r, d}, any explicit F04 present.
func br12(ctx *Context) []foodex2.Warning {
	if ctx.Base.Type != catalog.TermRaw && ctx.Base.Type != catalog.TermDerivative {
		return nil
	}
	if len(ctx.ExplicitByGroup("F04")) == 0 {
		return nil
	}
	return []foodex2.Warning{foodex2.NewWarning("BR12", foodex2.SeverityLow).
		Message("ingredient facet not expected on a raw or derivative term").InGroup("F04").Build()}
}

// br13 (HIGH): type = r, any explicit F03 descriptor in the catalogue's
// physical-state set (a state that in fact denotes a derivative-creating
// process, e.g. "dried").
func br13(ctx *Context) []foodex2.Warning {
	if ctx.Base.Type != catalog.TermRaw {
		return nil
	}
	states := ctx.Store.PhysicalStateSet()
	var out []foodex2.Warning
	for _, f := range ctx.ExplicitByGroup("F03") {
		if states[f.Ref.DescriptorCode] {
			out = append(out, foodex2.NewWarning("BR13", foodex2.SeverityHigh).
				Message("physical-state facet denotes a derivative-creating process; use a derivative base term instead").
				At(f.Ref.DescriptorCode).InGroup("F03").Build())
		}
	}
	return out
}

// br16 (HIGH): for any facet group present both implicitly and explicitly,
// the explicit descriptor is a strict ancestor (not the same code, not a
// sibling) of the implicit descriptor in that group's hierarchy.
func br16(ctx *Context) []foodex2.Warning {
	var out []foodex2.Warning
	for group, h := range catalog.FacetGroupHierarchy {
		implicit := ctx.ImplicitByGroup(group)
		if len(implicit) == 0 {
			continue
		}
		for _, ex := range ctx.ExplicitByGroup(group) {
			for _, im := range implicit {
				if ex.Ref.DescriptorCode == im.DescriptorCode {
					continue
				}
				if ok, err := ctx.Resolver.IsAncestor(ex.Ref.DescriptorCode, im.DescriptorCode, h); err == nil && ok {
					out = append(out, foodex2.NewWarning("BR16", foodex2.SeverityHigh).
						Message("explicit facet is a strict, non-sibling ancestor of the implicit facet in the same group").
						At(ex.Ref.DescriptorCode).InGroup(group).Build())
				}
			}
		}
	}
	return out
}

// br17 (HIGH): base term type = f (a facet term used as a base term).
func br17(ctx *Context) []foodex2.Warning {
	if ctx.Base.Type != catalog.TermFacet {
		return nil
	}
	return []foodex2.Warning{foodex2.NewWarning("BR17", foodex2.SeverityHigh).
		Message("facet terms cannot be used as base terms").At(ctx.Base.Code).Build()}
}
