package rules

import (
	"strings"

	"github.com/efsa/foodex2validator"
)

// dehydrationNameHints catches base terms whose catalogue name marks them as
// already dehydrated or concentrated even when no implicit F28 descriptor is
// present in the catalogue's DehydrationProcessSet.
var dehydrationNameHints = []string{"concentrate", "powder", "dried", "dehydrated"}

// br28 (HIGH): the base term is already dehydrated or concentrated (by name
// or by an implicit F28 member of DehydrationProcessSet), and an explicit
// F28 descriptor applies a reconstitution or dilution process.
func br28(ctx *Context) []foodex2.Warning {
	if !isAlreadyDehydrated(ctx) {
		return nil
	}
	rehydration := ctx.Store.RehydrationProcessSet()
	var out []foodex2.Warning
	for _, f := range ctx.ExplicitByGroup("F28") {
		if rehydration[f.Ref.DescriptorCode] {
			out = append(out, foodex2.NewWarning("BR28", foodex2.SeverityHigh).
				Message("reconstitution or dilution process applied to an already dehydrated/concentrated term").
				At(f.Ref.DescriptorCode).InGroup("F28").Build())
		}
	}
	return out
}

func isAlreadyDehydrated(ctx *Context) bool {
	lowerName := strings.ToLower(ctx.Base.Name)
	for _, hint := range dehydrationNameHints {
		if strings.Contains(lowerName, hint) {
			return true
		}
	}
	dehydration := ctx.Store.DehydrationProcessSet()
	for _, f := range ctx.ImplicitByGroup("F28") {
		if dehydration[f.DescriptorCode] {
			return true
		}
	}
	return false
}
