// Package worker provides a worker pool for parallel batch validation of
// FoodEx2 expressions.
//
// The worker pool enables efficient validation of multiple expressions in
// parallel, taking advantage of multi-core processors. Pool delivers
// results in completion order, each tagged with its Job's ID;
// BatchValidator preserves the caller's input order in its results.
//
// Example usage:
//
//	// Create a worker pool with 4 workers
//	pool := worker.NewPool(validator, 4)
//	defer pool.Close()
//
//	// Submit jobs from a separate goroutine: Submit blocks once the job
//	// queue is full and no one is reading results yet
//	go func() {
//	    for i, expr := range expressions {
//	        pool.Submit(worker.Job{
//	            ID:         strconv.Itoa(i),
//	            Expression: expr,
//	        })
//	    }
//	}()
//
//	// Collect one result per job (Results() is closed only by Close)
//	for range expressions {
//	    result := <-pool.Results()
//	    if result.Error != nil {
//	        // Handle error
//	    }
//	    // Process result.Result
//	}
package worker
