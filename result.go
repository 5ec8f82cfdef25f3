package foodex2

import "sync"

// TermType is the closed term-type enum used in BaseTerm summaries.
type TermType string

// Term types from the catalogue's term typology.
const (
	TermRaw            TermType = "r"
	TermDerivative     TermType = "d"
	TermComposite      TermType = "c"
	TermSimpleComposite TermType = "s"
	TermFacet          TermType = "f"
	TermGroup          TermType = "g"
	TermHierarchy      TermType = "h"
	TermNonSpecific    TermType = "n"
)

// BaseTermSummary is the result-facing view of the resolved base term.
type BaseTermSummary struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Type        TermType `json:"type"`
	DetailLevel string   `json:"detailLevel,omitempty"`
}

// FacetView is the result-facing view of a surviving explicit facet.
type FacetView struct {
	Group          string `json:"group"`
	DescriptorCode string `json:"descriptorCode"`
	DescriptorName string `json:"descriptorName,omitempty"`
}

// WarningCounts buckets warnings by severity.
type WarningCounts struct {
	Error int `json:"error"`
	High  int `json:"high"`
	Low   int `json:"low"`
	Info  int `json:"info"`
	Total int `json:"total"`
}

// Result contains the outcome of validating a FoodEx2 expression.
// Use Release() to return it to the pool when done for better performance.
type Result struct {
	// Valid is true if no blocking warning was found (ERROR always blocks;
	// HIGH blocks unless Options.BlockOnHigh is false).
	Valid bool `json:"valid"`

	// OriginalCode is the expression as supplied to Validate.
	OriginalCode string `json:"originalCode"`

	// CleanedCode is the canonical serialization after implicit-facet
	// removal, or empty if nothing was stripped.
	CleanedCode string `json:"cleanedCode,omitempty"`

	// BaseTerm is the resolved base term, nil if it did not resolve.
	BaseTerm *BaseTermSummary `json:"baseTerm,omitempty"`

	// Facets are the surviving explicit facets, in input order.
	Facets []FacetView `json:"facets,omitempty"`

	// InterpretedDescription is the base term name followed by
	// ", <group label> = <descriptor name>" for each surviving facet.
	InterpretedDescription string `json:"interpretedDescription,omitempty"`

	// Warnings contains all structural and rule warnings found.
	Warnings []Warning `json:"warnings,omitempty"`

	// Severity is the max severity across all warnings.
	Severity Severity `json:"severity"`

	// Counts buckets Warnings by severity.
	Counts WarningCounts `json:"warningCounts"`

	// mu protects concurrent access to Warnings.
	mu sync.Mutex
}

// resultPool holds reusable Result instances.
var resultPool = sync.Pool{
	New: func() any {
		return &Result{
			Warnings: make([]Warning, 0, 16),
		}
	},
}

// AcquireResult gets a Result from the pool. The result starts as valid
// with no warnings.
func AcquireResult() *Result {
	r := resultPool.Get().(*Result)
	r.Reset()
	return r
}

// Release returns the Result to the pool. After calling Release, the
// Result should not be used.
func (r *Result) Release() {
	if r == nil {
		return
	}
	if cap(r.Warnings) <= 1024 {
		resultPool.Put(r)
	}
}

// Reset clears the result for reuse.
func (r *Result) Reset() {
	r.Valid = true
	r.OriginalCode = ""
	r.CleanedCode = ""
	r.BaseTerm = nil
	r.Facets = r.Facets[:0]
	r.InterpretedDescription = ""
	r.Warnings = r.Warnings[:0]
	r.Severity = SeverityNone
	r.Counts = WarningCounts{}
}

// NewResult creates a new (non-pooled) result. Prefer AcquireResult() for
// better performance.
func NewResult() *Result {
	return &Result{
		Valid:    true,
		Warnings: make([]Warning, 0, 8),
		Severity: SeverityNone,
	}
}

// AddWarning appends a warning and updates the running severity/counts.
// This method is thread-safe (rule predicates may run in parallel phases).
func (r *Result) AddWarning(w Warning) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Warnings = append(r.Warnings, w)
	r.bump(w.Severity)
}

// AddWarnings appends multiple warnings.
func (r *Result) AddWarnings(ws []Warning) {
	if len(ws) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Warnings = append(r.Warnings, ws...)
	for _, w := range ws {
		r.bump(w.Severity)
	}
}

// bump updates Severity and Counts for one warning. Caller holds r.mu.
func (r *Result) bump(s Severity) {
	r.Counts.Total++
	switch s {
	case SeverityError:
		r.Counts.Error++
	case SeverityHigh:
		r.Counts.High++
	case SeverityLow:
		r.Counts.Low++
	default:
		r.Counts.Info++
	}
	if s.MoreSevereThan(r.Severity) {
		r.Severity = s
	}
}

// Finalize computes Valid from the accumulated warnings given whether HIGH
// severity should block (Options.BlockOnHigh). It is idempotent and must be
// called once the aggregator has added every warning.
func (r *Result) Finalize(blockOnHigh bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Counts.Error > 0 {
		r.Valid = false
		return
	}
	if blockOnHigh && r.Counts.High > 0 {
		r.Valid = false
		return
	}
	r.Valid = true
}

// HasErrors returns true if there are any ERROR-severity warnings.
func (r *Result) HasErrors() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Counts.Error > 0
}

// HasWarnings returns true if there are any HIGH or LOW severity warnings.
func (r *Result) HasWarnings() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Counts.High > 0 || r.Counts.Low > 0
}

// ErrorCount returns the number of ERROR-severity warnings.
func (r *Result) ErrorCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Counts.Error
}

// Errors returns all ERROR-severity warnings.
func (r *Result) Errors() []Warning {
	return r.bySeverity(SeverityError)
}

// AllWarnings returns all warnings currently accumulated (a defensive copy).
func (r *Result) AllWarnings() []Warning {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Warning, len(r.Warnings))
	copy(out, r.Warnings)
	return out
}

func (r *Result) bySeverity(s Severity) []Warning {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Warning
	for _, w := range r.Warnings {
		if w.Severity == s {
			out = append(out, w)
		}
	}
	return out
}

// Buckets partitions Warnings into hard (ERROR+HIGH), soft (LOW), and
// info (NONE), per the spec's result aggregator.
func (r *Result) Buckets() (hard, soft, info []Warning) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.Warnings {
		switch w.Severity {
		case SeverityError, SeverityHigh:
			hard = append(hard, w)
		case SeverityLow:
			soft = append(soft, w)
		default:
			info = append(info, w)
		}
	}
	return hard, soft, info
}

// Merge combines another result's warnings into this one.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	other.mu.Lock()
	ws := make([]Warning, len(other.Warnings))
	copy(ws, other.Warnings)
	other.mu.Unlock()
	r.AddWarnings(ws)
}

// Clone creates a copy of the result (not pooled).
func (r *Result) Clone() *Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := &Result{
		Valid:                   r.Valid,
		OriginalCode:            r.OriginalCode,
		CleanedCode:             r.CleanedCode,
		BaseTerm:                r.BaseTerm,
		Facets:                  append([]FacetView(nil), r.Facets...),
		InterpretedDescription:  r.InterpretedDescription,
		Warnings:                make([]Warning, len(r.Warnings)),
		Severity:                r.Severity,
		Counts:                  r.Counts,
	}
	copy(clone.Warnings, r.Warnings)
	return clone
}
