package rules

import (
	"github.com/efsa/foodex2validator"
	"github.com/efsa/foodex2validator/catalog"
)

type ordinalEntry struct {
	code     string
	explicit bool
}

// groupByOrdinal partitions every F28 descriptor (implicit ∪ explicit, each
// descriptor code counted once, preferring the explicit flag when a code is
// both) by the integer part of its process ordinal, skipping codes the
// catalogue has no ordinal for.
func groupByOrdinal(ctx *Context) map[string][]ordinalEntry {
	seen := make(map[string]bool)
	groups := make(map[string][]ordinalEntry)

	add := func(code string, explicit bool) {
		if seen[code] {
			return
		}
		seen[code] = true
		ordinal, ok := ctx.Store.ProcessOrdinal(code)
		if !ok {
			return
		}
		key := ordinal.Truncate(0).String()
		groups[key] = append(groups[key], ordinalEntry{code: code, explicit: explicit})
	}

	for _, f := range ctx.ExplicitByGroup("F28") {
		add(f.Ref.DescriptorCode, true)
	}
	for _, f := range ctx.ImplicitByGroup("F28") {
		add(f.DescriptorCode, false)
	}
	return groups
}

func anyExplicit(entries []ordinalEntry) bool {
	for _, e := range entries {
		if e.explicit {
			return true
		}
	}
	return false
}

// br26 (HIGH): two or more F28 codes (implicit ∪ explicit, at least one
// explicit) share the same integer ordinal with zero fractional part,
// i.e. they belong to the same mutual-exclusion category.
func br26(ctx *Context) []foodex2.Warning {
	if ctx.Base.Type != catalog.TermDerivative {
		return nil
	}
	var out []foodex2.Warning
	for key, entries := range groupByOrdinal(ctx) {
		if len(entries) < 2 || !anyExplicit(entries) {
			continue
		}
		ordinal, ok := ctx.Store.ProcessOrdinal(entries[0].code)
		if !ok || !ordinal.Truncate(0).Equal(ordinal) {
			continue
		}
		_ = key
		out = append(out, foodex2.NewWarning("BR26", foodex2.SeverityHigh).
			Message("two or more process facets share a mutually-exclusive ordinal").InGroup("F28").Build())
	}
	return out
}

// br27 (HIGH): two or more F28 codes (implicit ∪ explicit, at least one
// explicit) share the same integer part with a non-zero fractional part,
// i.e. they are distinct derivatives of the same process family.
func br27(ctx *Context) []foodex2.Warning {
	if ctx.Base.Type != catalog.TermDerivative {
		return nil
	}
	var out []foodex2.Warning
	for key, entries := range groupByOrdinal(ctx) {
		if len(entries) < 2 || !anyExplicit(entries) {
			continue
		}
		ordinal, ok := ctx.Store.ProcessOrdinal(entries[0].code)
		if !ok || ordinal.Truncate(0).Equal(ordinal) {
			continue
		}
		_ = key
		out = append(out, foodex2.NewWarning("BR27", foodex2.SeverityHigh).
			Message("two or more process facets share a fractional-ordinal derivative family").InGroup("F28").Build())
	}
	return out
}
