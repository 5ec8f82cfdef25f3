package rules

import (
	"github.com/efsa/foodex2validator"
	"github.com/efsa/foodex2validator/catalog"
)

// br19 (HIGH): type = r, any explicit F28 descriptor forbidden for the base
// term or any of its ancestors in the report hierarchy.
func br19(ctx *Context) []foodex2.Warning {
	if ctx.Base.Type != catalog.TermRaw {
		return nil
	}
	explicit := ctx.ExplicitByGroup("F28")
	if len(explicit) == 0 {
		return nil
	}
	ancestors, err := ctx.Resolver.AncestorsInclusive(ctx.Base.Code, catalog.ReportHierarchy)
	if err != nil {
		return nil
	}
	forbidden := ctx.Store.ForbiddenProcessesFor(ctx.Base.Code, ancestors)

	var out []foodex2.Warning
	for _, f := range explicit {
		if forbidden[f.Ref.DescriptorCode] {
			out = append(out, foodex2.NewWarning("BR19", foodex2.SeverityHigh).
				Message("process facet is forbidden for this term").At(f.Ref.DescriptorCode).InGroup("F28").Build())
		}
	}
	return out
}
