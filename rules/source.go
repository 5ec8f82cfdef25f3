package rules

import (
	"github.com/efsa/foodex2validator"
	"github.com/efsa/foodex2validator/catalog"
)

// racsourceHierarchy is the hierarchy paired with facet group F27.
const racsourceHierarchy = "racsource"

// br01 (HIGH): type = r, some explicit F27 present. Violation: an explicit
// F27 descriptor that is neither a descendant of any implicit F27 nor a
// descendant of the base term, in racsource.
func br01(ctx *Context) []foodex2.Warning {
	if ctx.Base.Type != "r" {
		return nil
	}
	explicit := ctx.ExplicitByGroup("F27")
	if len(explicit) == 0 {
		return nil
	}
	implicit := ctx.ImplicitByGroup("F27")

	var out []foodex2.Warning
	for _, ex := range explicit {
		ok, err := ctx.Resolver.IsAncestor(ctx.Base.Code, ex.Ref.DescriptorCode, racsourceHierarchy)
		if err == nil && ok {
			continue
		}
		descendsImplicit := false
		for _, im := range implicit {
			if anc, err := ctx.Resolver.IsAncestor(im.DescriptorCode, ex.Ref.DescriptorCode, racsourceHierarchy); err == nil && anc {
				descendsImplicit = true
				break
			}
		}
		if descendsImplicit {
			continue
		}
		out = append(out, foodex2.NewWarning("BR01", foodex2.SeverityHigh).
			Message("explicit raw-commodity source facet is not a descendant of any implicit source or the base term").
			At(ex.Ref.DescriptorCode).InGroup("F27").Build())
	}
	return out
}

// br03 (HIGH): type ∈ {c, s}, any explicit F01 present.
func br03(ctx *Context) []foodex2.Warning {
	if !isComposite(ctx.Base.Type) {
		return nil
	}
	if len(ctx.ExplicitByGroup("F01")) == 0 {
		return nil
	}
	return []foodex2.Warning{foodex2.NewWarning("BR03", foodex2.SeverityHigh).
		Message("F01 source facet not allowed in composite food").InGroup("F01").Build()}
}

// br04 (HIGH): type ∈ {c, s}, any explicit F27 present.
func br04(ctx *Context) []foodex2.Warning {
	if !isComposite(ctx.Base.Type) {
		return nil
	}
	if len(ctx.ExplicitByGroup("F27")) == 0 {
		return nil
	}
	return []foodex2.Warning{foodex2.NewWarning("BR04", foodex2.SeverityHigh).
		Message("F27 raw-commodity source facet not allowed in composite food").InGroup("F27").Build()}
}

// br05 (HIGH): type = d, at least one implicit F27. Violation: an explicit
// F27 descriptor that is not a descendant in racsource of any implicit F27.
func br05(ctx *Context) []foodex2.Warning {
	if ctx.Base.Type != "d" {
		return nil
	}
	implicit := ctx.ImplicitByGroup("F27")
	if len(implicit) == 0 {
		return nil
	}
	var out []foodex2.Warning
	for _, ex := range ctx.ExplicitByGroup("F27") {
		descends := false
		for _, im := range implicit {
			if anc, err := ctx.Resolver.IsAncestor(im.DescriptorCode, ex.Ref.DescriptorCode, racsourceHierarchy); err == nil && anc {
				descends = true
				break
			}
		}
		if !descends {
			out = append(out, foodex2.NewWarning("BR05", foodex2.SeverityHigh).
				Message("explicit raw-commodity source facet is not a descendant of the implicit source").
				At(ex.Ref.DescriptorCode).InGroup("F27").Build())
		}
	}
	return out
}

// br06 (HIGH): type = d, any F01 explicit. Violation: zero F27 in
// (implicit ∪ explicit).
func br06(ctx *Context) []foodex2.Warning {
	if ctx.Base.Type != "d" || len(ctx.ExplicitByGroup("F01")) == 0 {
		return nil
	}
	if unionF27Count(ctx) == 0 {
		return []foodex2.Warning{foodex2.NewWarning("BR06", foodex2.SeverityHigh).
			Message("derivative with an explicit source facet must declare exactly one raw-commodity source").
			InGroup("F27").Build()}
	}
	return nil
}

// br07 (HIGH): type = d, any F01 explicit. Violation: more than one F27 in
// (implicit ∪ explicit).
func br07(ctx *Context) []foodex2.Warning {
	if ctx.Base.Type != "d" || len(ctx.ExplicitByGroup("F01")) == 0 {
		return nil
	}
	if unionF27Count(ctx) > 1 {
		return []foodex2.Warning{foodex2.NewWarning("BR07", foodex2.SeverityHigh).
			Message("derivative with an explicit source facet must declare exactly one raw-commodity source").
			InGroup("F27").Build()}
	}
	return nil
}

func unionF27Count(ctx *Context) int {
	seen := make(map[string]bool)
	for _, f := range ctx.ImplicitByGroup("F27") {
		seen[f.DescriptorCode] = true
	}
	for _, f := range ctx.ExplicitByGroup("F27") {
		seen[f.Ref.DescriptorCode] = true
	}
	return len(seen)
}

func isComposite(t catalog.TermType) bool {
	return t == catalog.TermComposite || t == catalog.TermSimpleComposite
}
