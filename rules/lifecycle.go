package rules

import (
	"github.com/efsa/foodex2validator"
	"github.com/efsa/foodex2validator/catalog"
)

// br20 (HIGH): base term or any explicit descriptor is deprecated.
func br20(ctx *Context) []foodex2.Warning {
	var out []foodex2.Warning
	if ctx.Base.Deprecated {
		out = append(out, foodex2.NewWarning("BR20", foodex2.SeverityHigh).
			Message("term is deprecated").At(ctx.Base.Code).Build())
	}
	for _, f := range ctx.ExplicitFacets {
		if f.Term.Deprecated {
			out = append(out, foodex2.NewWarning("BR20", foodex2.SeverityHigh).
				Message("term is deprecated").At(f.Term.Code).InGroup(f.Ref.Group).Build())
		}
	}
	return out
}

// br21 (HIGH): base term or any explicit descriptor is dismissed.
func br21(ctx *Context) []foodex2.Warning {
	var out []foodex2.Warning
	if ctx.Base.Status == catalog.StatusDismissed {
		out = append(out, foodex2.NewWarning("BR21", foodex2.SeverityHigh).
			Message("term is dismissed").At(ctx.Base.Code).Build())
	}
	for _, f := range ctx.ExplicitFacets {
		if f.Term.Status == catalog.StatusDismissed {
			out = append(out, foodex2.NewWarning("BR21", foodex2.SeverityHigh).
				Message("term is dismissed").At(f.Term.Code).InGroup(f.Ref.Group).Build())
		}
	}
	return out
}

// br22 (NONE): no ERROR/HIGH warning produced so far and the base term is
// not itself a hierarchy term. Reports a successful validation outcome.
func br22(ctx *Context) []foodex2.Warning {
	if ctx.hasBlockingSoFar() || ctx.Base.IsHierarchyTerm() {
		return nil
	}
	return []foodex2.Warning{foodex2.NewWarning("BR22", foodex2.SeverityNone).
		Message("expression validated with no blocking warnings").Build()}
}
