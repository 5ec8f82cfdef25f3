package foodex2

import (
	"runtime"
	"time"
)

// ContextMode gates context-specific rules. BR14 and BR15 are reserved for
// ICT/DCF but have no predicate anywhere in this module; they never emit a
// warning regardless of ContextMode (see InertRules).
type ContextMode string

// Supported context modes.
const (
	ContextICT      ContextMode = "ICT"
	ContextDCF      ContextMode = "DCF"
	ContextInternal ContextMode = "internal"
	ContextExternal ContextMode = "external"
)

// Option configures the Engine.
type Option func(*Options)

// Options holds all configuration for the validation engine.
type Options struct {
	// BlockOnHigh, when true (the default), makes a HIGH-severity warning
	// invalidate the code, same as ERROR. Set false to downgrade HIGH to
	// non-blocking (see spec Open Questions).
	BlockOnHigh bool

	// Context gates context-specific rules (BR14/BR15, reserved).
	Context ContextMode

	// SkipRulesOnStructuralError skips the rule evaluator entirely once the
	// structural validator has produced an ERROR. This is the default
	// behavior described in the spec's "Ordering and termination" note.
	SkipRulesOnStructuralError bool

	// Performance
	MaxWarnings    int
	ParallelPhases bool
	WorkerCount    int
	PhaseTimeout   time.Duration
	EnablePooling  bool

	// HierarchyCacheSize bounds the ancestor-lookup memoization table.
	HierarchyCacheSize int
}

// DefaultOptions returns the default configuration.
func DefaultOptions() *Options {
	return &Options{
		BlockOnHigh:                true,
		Context:                    ContextInternal,
		SkipRulesOnStructuralError: true,

		MaxWarnings:    0, // unlimited
		ParallelPhases: true,
		WorkerCount:    runtime.NumCPU(),
		PhaseTimeout:   0, // no timeout
		EnablePooling:  true,

		HierarchyCacheSize: 4096,
	}
}

// --- Validation Options ---

// WithBlockOnHigh configures whether HIGH severity invalidates the code.
func WithBlockOnHigh(block bool) Option {
	return func(o *Options) {
		o.BlockOnHigh = block
	}
}

// WithContext sets the context mode for gating context-specific rules.
func WithContext(mode ContextMode) Option {
	return func(o *Options) {
		o.Context = mode
	}
}

// WithSkipRulesOnStructuralError configures whether the rule evaluator runs
// after a structural ERROR. Disabling this surfaces both structural and
// business-rule warnings in the same Result at the cost of evaluating rules
// against a code known to be unresolvable.
func WithSkipRulesOnStructuralError(skip bool) Option {
	return func(o *Options) {
		o.SkipRulesOnStructuralError = skip
	}
}

// --- Performance Options ---

// WithMaxWarnings stops validation after this many warnings. Use 0 for
// unlimited.
func WithMaxWarnings(max int) Option {
	return func(o *Options) {
		o.MaxWarnings = max
	}
}

// WithParallelPhases enables parallel execution of independent validation
// phases.
func WithParallelPhases(enable bool) Option {
	return func(o *Options) {
		o.ParallelPhases = enable
	}
}

// WithWorkerCount sets the number of workers for batch validation. Defaults
// to runtime.NumCPU().
func WithWorkerCount(count int) Option {
	return func(o *Options) {
		if count > 0 {
			o.WorkerCount = count
		}
	}
}

// WithPhaseTimeout sets a timeout for each validation phase. Use 0 for no
// timeout.
func WithPhaseTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.PhaseTimeout = timeout
	}
}

// WithPooling sets Options.EnablePooling. The engine does not read this
// field: Validate always takes its Result from the pool
// (foodex2.AcquireResult), whatever the setting.
func WithPooling(enable bool) Option {
	return func(o *Options) {
		o.EnablePooling = enable
	}
}

// WithHierarchyCacheSize configures the ancestor-lookup memoization table
// capacity.
func WithHierarchyCacheSize(size int) Option {
	return func(o *Options) {
		if size > 0 {
			o.HierarchyCacheSize = size
		}
	}
}

// --- Presets ---

// FastOptions returns options optimized for throughput: HIGH does not
// block, rules are skipped after a structural error, and caches are larger.
func FastOptions() []Option {
	return []Option{
		WithBlockOnHigh(false),
		WithSkipRulesOnStructuralError(true),
		WithParallelPhases(true),
		WithHierarchyCacheSize(16384),
		WithPooling(true),
	}
}

// StrictOptions returns options for strict validation: HIGH blocks, and
// the rule evaluator still runs after a structural error so every finding
// is reported in one pass.
func StrictOptions() []Option {
	return []Option{
		WithBlockOnHigh(true),
		WithSkipRulesOnStructuralError(false),
	}
}

// DebugOptions returns options useful for debugging: EnablePooling set to
// false (which the engine does not read; see WithPooling), and a warning
// cap to bound pathological inputs.
func DebugOptions() []Option {
	return []Option{
		WithPooling(false),
		WithMaxWarnings(200),
	}
}
