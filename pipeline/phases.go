package pipeline

import (
	"context"

	foodex2 "github.com/efsa/foodex2validator"
	"github.com/efsa/foodex2validator/catalog"
	"github.com/efsa/foodex2validator/parser"
	"github.com/efsa/foodex2validator/rules"
	"github.com/efsa/foodex2validator/structural"
)

// parsePhase splits pctx.OriginalCode into a base and facet fragments and
// normalizes away explicit facets that duplicate an implicit one. Its
// warnings are STRUCT_BASE/STRUCT_FACET faults and the NORM-IMPLICIT
// notice; it never touches the catalogue beyond the base term lookup
// normalization needs.
type parsePhase struct{}

func (parsePhase) Name() string { return string(PhaseIDParse) }

func (parsePhase) Validate(_ context.Context, pctx *Context) []foodex2.Warning {
	expr, faults := parser.Parse(pctx.OriginalCode)
	pctx.StructuralFaults = faults

	var warnings []foodex2.Warning
	for _, f := range faults {
		warnings = append(warnings, foodex2.NewWarning(foodex2.RuleID(f.Rule), foodex2.SeverityError).
			Message("malformed expression fragment").At(f.Fragment).Build())
	}
	if len(faults) > 0 {
		return warnings
	}

	if base, ok := pctx.Store.LookupTerm(expr.Base); ok {
		cleaned, notice := parser.Normalize(expr, base, pctx.Store)
		expr = cleaned
		if notice != nil {
			warnings = append(warnings, *notice)
		}
	}

	pctx.Expression = expr
	return warnings
}

// structuralPhase resolves the parsed expression's base term and explicit
// facets against the catalogue, enforcing category, cardinality, and
// duplicate constraints.
type structuralPhase struct{}

func (structuralPhase) Name() string { return string(PhaseIDStructural) }

func (structuralPhase) Validate(_ context.Context, pctx *Context) []foodex2.Warning {
	if len(pctx.StructuralFaults) > 0 {
		return nil
	}
	resolved, warnings := structural.Validate(pctx.Expression, pctx.Store)
	pctx.Resolved = resolved
	return warnings
}

// rulesPhase runs the business-rule evaluator against the structural
// phase's resolved base term and facets. It is a no-op if the base term
// never resolved.
type rulesPhase struct {
	evaluator *rules.Evaluator
}

// NewRulesPhase wraps an Evaluator as a Phase, so callers can plug in a
// customized rule set (e.g. with caller-registered extension rules).
func NewRulesPhase(e *rules.Evaluator) Phase {
	return &rulesPhase{evaluator: e}
}

func (p *rulesPhase) Name() string { return string(PhaseIDRules) }

func (p *rulesPhase) Validate(_ context.Context, pctx *Context) []foodex2.Warning {
	if pctx.Resolved.Base == nil {
		return nil
	}
	if pctx.Resolved.HasBlocking {
		skip := true
		if pctx.Options != nil {
			skip = pctx.Options.SkipRulesOnStructuralError
		}
		if skip {
			return nil
		}
	}

	var implicit []catalog.FacetRef
	if pctx.Store != nil {
		implicit = pctx.Store.ImplicitFacets(*pctx.Resolved.Base)
	}

	ruleCtx := &rules.Context{
		Base:           *pctx.Resolved.Base,
		ExplicitFacets: pctx.Resolved.Facets,
		ImplicitFacets: implicit,
		Store:          pctx.Store,
		Resolver:       pctx.Resolver,
		ContextMode:    pctx.ContextMode,
	}
	pctx.RuleContext = ruleCtx

	structuralWarnings := pctx.Result.AllWarnings()
	return p.evaluator.Evaluate(ruleCtx, structuralWarnings)
}

// NewDefaultPipeline builds the pipeline shipped with parse, structural,
// and rule-evaluation phases wired in their required order.
func NewDefaultPipeline(opts *PipelineOptions) *Pipeline {
	p := NewPipeline(opts)
	p.Register(PhaseIDParse, parsePhase{}, WithPriority(PriorityFirst), WithParallel(false), WithRequired(true))
	p.Register(PhaseIDStructural, structuralPhase{}, WithPriority(PriorityEarly), WithParallel(false), WithRequired(true))
	p.Register(PhaseIDRules, NewRulesPhase(rules.Default()), WithPriority(PriorityLast), WithParallel(false), WithRequired(true))
	return p
}
