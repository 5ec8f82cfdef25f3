// Package stream provides streaming and order-preserving parallel
// validation over large lists of FoodEx2 expressions, one per line, for
// callers too large to hold in memory at once (batch exports, the
// out-of-scope SQLite import script). It is the contract spec.md §6
// promises to collaborators beyond the core.
package stream

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	foodex2 "github.com/efsa/foodex2validator"
)

// ExpressionResult is one line's validation outcome.
type ExpressionResult struct {
	// Index is the zero-based position of the expression among the lines
	// that were validated; skipped blank and '#' lines are not counted.
	Index int

	// Expression is the raw expression text as read (whitespace trimmed).
	Expression string

	// Result is the validation outcome, nil if Error is set.
	Result *foodex2.Result

	// Error is set for a read/processing fault distinct from a validation
	// Warning (e.g. the reader failed), never for a validation failure.
	Error error
}

// ValidateFunc validates a single expression. Engine.Validate satisfies
// this signature.
type ValidateFunc func(ctx context.Context, expression string) *foodex2.Result

// Validator streams expressions from an io.Reader, one per line, through a
// ValidateFunc. Blank lines and lines starting with '#' are skipped.
type Validator struct {
	validate    ValidateFunc
	bufferSize  int
	workerCount int
}

// NewValidator creates a streaming Validator over validate.
func NewValidator(validate ValidateFunc) *Validator {
	return &Validator{
		validate:    validate,
		bufferSize:  100,
		workerCount: 4,
	}
}

// WithBufferSize sets the result channel buffer size.
func (v *Validator) WithBufferSize(size int) *Validator {
	if size > 0 {
		v.bufferSize = size
	}
	return v
}

// WithWorkerCount sets the number of parallel workers for
// ValidateStreamParallel.
func (v *Validator) WithWorkerCount(count int) *Validator {
	if count > 0 {
		v.workerCount = count
	}
	return v
}

// ValidateStream validates expressions from r sequentially, emitting
// results in input order as each line is read and validated.
func (v *Validator) ValidateStream(ctx context.Context, r io.Reader) <-chan *ExpressionResult {
	results := make(chan *ExpressionResult, v.bufferSize)

	go func() {
		defer close(results)

		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		index := 0
		for scanner.Scan() {
			select {
			case <-ctx.Done():
				results <- &ExpressionResult{Index: index, Error: ctx.Err()}
				return
			default:
			}

			expr := strings.TrimSpace(scanner.Text())
			if expr == "" || strings.HasPrefix(expr, "#") {
				continue
			}

			results <- &ExpressionResult{
				Index:      index,
				Expression: expr,
				Result:     v.validate(ctx, expr),
			}
			index++
		}
		if err := scanner.Err(); err != nil {
			results <- &ExpressionResult{Index: index, Error: fmt.Errorf("stream: reading expressions: %w", err)}
		}
	}()

	return results
}

// ValidateStreamParallel validates expressions from r with a bounded pool
// of workerCount goroutines, reordering results back into input order
// before emitting them (per spec.md §5's "ordering of results MUST mirror
// order of inputs"). Use this over ValidateStream when the catalogue
// lookups dominate wall-clock time and per-line validations are
// independent (true for every FoodEx2 expression: the catalogue is
// read-only).
func (v *Validator) ValidateStreamParallel(ctx context.Context, r io.Reader) <-chan *ExpressionResult {
	results := make(chan *ExpressionResult, v.bufferSize)

	go func() {
		defer close(results)

		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		type workItem struct {
			index int
			expr  string
		}
		workChan := make(chan workItem, v.bufferSize)
		resultChan := make(chan *ExpressionResult, v.bufferSize)

		var wg sync.WaitGroup
		for i := 0; i < v.workerCount; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for work := range workChan {
					select {
					case <-ctx.Done():
						return
					default:
					}
					resultChan <- &ExpressionResult{
						Index:      work.index,
						Expression: work.expr,
						Result:     v.validate(ctx, work.expr),
					}
				}
			}()
		}

		total := 0
		go func() {
			defer close(workChan)
			index := 0
			for scanner.Scan() {
				expr := strings.TrimSpace(scanner.Text())
				if expr == "" || strings.HasPrefix(expr, "#") {
					continue
				}
				select {
				case workChan <- workItem{index: index, expr: expr}:
				case <-ctx.Done():
					return
				}
				index++
			}
			total = index
		}()

		go func() {
			wg.Wait()
			close(resultChan)
		}()

		pending := make(map[int]*ExpressionResult)
		next := 0
		for result := range resultChan {
			pending[result.Index] = result
			for {
				r, ok := pending[next]
				if !ok {
					break
				}
				results <- r
				delete(pending, next)
				next++
			}
		}
		for next < total {
			if r, ok := pending[next]; ok {
				results <- r
				delete(pending, next)
			}
			next++
		}
		if err := scanner.Err(); err != nil {
			results <- &ExpressionResult{Index: total, Error: fmt.Errorf("stream: reading expressions: %w", err)}
		}
	}()

	return results
}

// Summary aggregates a channel of ExpressionResult into totals.
type Summary struct {
	Total          int
	Valid          int
	Invalid        int
	ProcessingErrs []error
}

// Aggregate drains results, computing a Summary. It releases each Result
// back to the pool once counted.
func Aggregate(results <-chan *ExpressionResult) *Summary {
	s := &Summary{}
	for r := range results {
		if r.Error != nil {
			s.ProcessingErrs = append(s.ProcessingErrs, r.Error)
			continue
		}
		s.Total++
		if r.Result == nil {
			continue
		}
		if r.Result.Valid {
			s.Valid++
		} else {
			s.Invalid++
		}
		r.Result.Release()
	}
	return s
}

// HasErrors reports whether any expression failed validation or any
// processing error occurred.
func (s *Summary) HasErrors() bool {
	return s.Invalid > 0 || len(s.ProcessingErrs) > 0
}

// String returns a human-readable summary.
func (s *Summary) String() string {
	return fmt.Sprintf("validated %d expressions: %d valid, %d invalid", s.Total, s.Valid, s.Invalid)
}
