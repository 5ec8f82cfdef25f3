package worker

import foodex2 "github.com/efsa/foodex2validator"

// Job represents a validation job to be processed by a worker.
type Job struct {
	// ID is a unique identifier for this job.
	ID string

	// Expression is the FoodEx2 code to validate.
	Expression string

	// Options contains additional validation options.
	Options *JobOptions
}

// JobOptions contains optional parameters for a validation job. Pool does
// not read them: every job is validated by the pool's Validator with that
// Validator's own settings.
type JobOptions struct {
	// BlockOnHigh, if true, treats HIGH-severity warnings as blocking.
	BlockOnHigh bool

	// MaxWarnings stops rule evaluation after this many warnings (0 = unlimited).
	MaxWarnings int
}

// JobResult represents the result of a validation job.
type JobResult struct {
	// ID matches the Job.ID that produced this result.
	ID string

	// Result contains the validation result.
	Result *foodex2.Result

	// Error contains any error that occurred during validation.
	Error error

	// Duration is the time taken to validate (in nanoseconds).
	Duration int64
}

// BatchResult aggregates results from multiple jobs.
type BatchResult struct {
	// Results contains all job results, in the same order as the input.
	Results []*JobResult

	// TotalJobs is the number of jobs submitted.
	TotalJobs int

	// CompletedJobs is the number of jobs completed (including errors).
	CompletedJobs int

	// FailedJobs is the number of jobs that failed with a Go error
	// (as opposed to a validation warning).
	FailedJobs int

	// TotalDuration is the total time for all validations (in nanoseconds).
	TotalDuration int64
}

// HasErrors returns true if any job result failed or its Result blocks.
func (br *BatchResult) HasErrors() bool {
	for _, r := range br.Results {
		if r.Error != nil {
			return true
		}
		if r.Result != nil && r.Result.HasErrors() {
			return true
		}
	}
	return false
}

// ErrorCount returns the total number of ERROR-severity warnings across all results.
func (br *BatchResult) ErrorCount() int {
	count := 0
	for _, r := range br.Results {
		if r.Result != nil {
			count += r.Result.ErrorCount()
		}
	}
	return count
}
