package worker

import (
	"context"
	"runtime"
	"sync"

	foodex2 "github.com/efsa/foodex2validator"
)

// BatchValidator provides a simple interface for batch validation of
// FoodEx2 expressions, preserving input order in its results.
type BatchValidator struct {
	validator BatchValidatorFunc
	workers   int
}

// BatchValidatorFunc validates a single FoodEx2 expression.
type BatchValidatorFunc func(ctx context.Context, expression string) (*foodex2.Result, error)

// NewBatchValidator creates a new batch validator.
func NewBatchValidator(validateFunc BatchValidatorFunc, workers int) *BatchValidator {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &BatchValidator{
		validator: validateFunc,
		workers:   workers,
	}
}

// ValidateBatch validates multiple expressions, preserving order in the
// returned BatchResult regardless of which worker finishes first.
func (bv *BatchValidator) ValidateBatch(ctx context.Context, expressions []string) *BatchResult {
	if len(expressions) == 0 {
		return &BatchResult{
			Results:       make([]*JobResult, 0),
			TotalJobs:     0,
			CompletedJobs: 0,
		}
	}

	// For small batches, don't use parallelism
	if len(expressions) <= 2 {
		return bv.validateSequential(ctx, expressions)
	}

	return bv.validateParallel(ctx, expressions)
}

func (bv *BatchValidator) validateSequential(ctx context.Context, expressions []string) *BatchResult {
	results := make([]*JobResult, 0, len(expressions))

	for i, expr := range expressions {
		select {
		case <-ctx.Done():
			return &BatchResult{
				Results:       results,
				TotalJobs:     len(expressions),
				CompletedJobs: len(results),
			}
		default:
		}

		result, err := bv.validator(ctx, expr)
		results = append(results, &JobResult{
			ID:     jobID(i),
			Result: result,
			Error:  err,
		})
	}

	return &BatchResult{
		Results:       results,
		TotalJobs:     len(expressions),
		CompletedJobs: len(results),
	}
}

func (bv *BatchValidator) validateParallel(ctx context.Context, expressions []string) *BatchResult {
	numWorkers := bv.workers
	if numWorkers > len(expressions) {
		numWorkers = len(expressions)
	}

	jobs := make(chan indexedExpression, len(expressions))
	resultsChan := make(chan *indexedResult, len(expressions))

	// Start workers
	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func() {
			defer wg.Done()
			for job := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}

				result, err := bv.validator(ctx, job.expression)
				resultsChan <- &indexedResult{
					index:  job.index,
					result: result,
					err:    err,
				}
			}
		}()
	}

	// Submit jobs
	go func() {
		for i, expr := range expressions {
			select {
			case <-ctx.Done():
				break
			case jobs <- indexedExpression{index: i, expression: expr}:
			}
		}
		close(jobs)
	}()

	// Wait for workers and close results channel
	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	// Collect results in order
	results := make([]*JobResult, len(expressions))
	completed := 0
	failed := 0

	for ir := range resultsChan {
		results[ir.index] = &JobResult{
			ID:     jobID(ir.index),
			Result: ir.result,
			Error:  ir.err,
		}
		completed++
		if ir.err != nil {
			failed++
		}
	}

	return &BatchResult{
		Results:       results,
		TotalJobs:     len(expressions),
		CompletedJobs: completed,
		FailedJobs:    failed,
	}
}

type indexedExpression struct {
	index      int
	expression string
}

type indexedResult struct {
	index  int
	result *foodex2.Result
	err    error
}

func jobID(i int) string {
	const digits = "0123456789"
	if i < 10 {
		return string(digits[i])
	}
	// Fall back to a simple base-10 expansion for larger batches.
	var buf []byte
	for i > 0 {
		buf = append([]byte{digits[i%10]}, buf...)
		i /= 10
	}
	return string(buf)
}

// ValidateBatchSimple is a convenience function for batch validation.
func ValidateBatchSimple(ctx context.Context, validateFunc BatchValidatorFunc, expressions []string) *BatchResult {
	bv := NewBatchValidator(validateFunc, runtime.NumCPU())
	return bv.ValidateBatch(ctx, expressions)
}
