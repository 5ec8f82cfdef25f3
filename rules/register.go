package rules

import (
	"github.com/efsa/foodex2validator"
)

// Default builds the evaluator shipped with the base rule set: every
// registered BR01-BR31 rule with its spec-default severity, including the
// inert placeholders (BR02, BR09, BR14, BR15, BR18, BR29-BR31) registered
// with a nil Predicate so they remain addressable but never fire. BR29-BR31
// are structural violations already reported by the structural validator
// under their VBA-* ids; the spec does not ask for them to additionally
// surface under their BR id the way BR25 does, so they stay inert here.
func Default() *Evaluator {
	e := NewEvaluator()

	register := func(id foodex2.RuleID, severity foodex2.Severity, pred Predicate) {
		e.Register(Rule{ID: id, Severity: severity, Predicate: pred})
	}

	register("BR01", foodex2.SeverityHigh, br01)
	register("BR02", foodex2.SeverityNone, nil)
	register("BR03", foodex2.SeverityHigh, br03)
	register("BR04", foodex2.SeverityHigh, br04)
	register("BR05", foodex2.SeverityHigh, br05)
	register("BR06", foodex2.SeverityHigh, br06)
	register("BR07", foodex2.SeverityHigh, br07)
	register("BR08", foodex2.SeverityHigh, br08)
	register("BR09", foodex2.SeverityNone, nil)
	register("BR10", foodex2.SeverityLow, br10)
	register("BR11", foodex2.SeverityLow, br11)
	register("BR12", foodex2.SeverityLow, br12)
	register("BR13", foodex2.SeverityHigh, br13)
	register("BR14", foodex2.SeverityNone, nil)
	register("BR15", foodex2.SeverityNone, nil)
	register("BR16", foodex2.SeverityHigh, br16)
	register("BR17", foodex2.SeverityHigh, br17)
	register("BR18", foodex2.SeverityNone, nil)
	register("BR19", foodex2.SeverityHigh, br19)
	register("BR20", foodex2.SeverityHigh, br20)
	register("BR21", foodex2.SeverityHigh, br21)
	register("BR22", foodex2.SeverityNone, br22)
	register("BR23", foodex2.SeverityLow, br23)
	register("BR24", foodex2.SeverityHigh, br24)
	register("BR25", foodex2.SeverityHigh, br25)
	register("BR26", foodex2.SeverityHigh, br26)
	register("BR27", foodex2.SeverityHigh, br27)
	register("BR28", foodex2.SeverityHigh, br28)
	register("BR29", foodex2.SeverityError, nil)
	register("BR30", foodex2.SeverityError, nil)
	register("BR31", foodex2.SeverityError, nil)

	return e
}
