package worker

import (
	"context"
	"sync"

	"github.com/citecheck/citecheck/internal/model"
)

// Checker produces a verification report for a single document. The
// pipeline satisfies this; tests substitute a stub.
type Checker interface {
	CheckFile(ctx context.Context, path string) (*model.VerificationReport, error)
}

// BatchResult pairs a document path with its report or failure
type BatchResult struct {
	Path   string
	Report *model.VerificationReport
	Err    error
}

// BatchProcessor runs the checker over many documents concurrently.
// Concurrency here bounds local work (reading and parsing documents);
// outbound request spacing is still governed by the shared Limiter
// inside the checker, so adding workers never adds request pressure.
type BatchProcessor struct {
	checker    Checker
	maxWorkers int
}

// NewBatchProcessor creates a batch processor with the given worker bound
func NewBatchProcessor(checker Checker, maxWorkers int) *BatchProcessor {
	if maxWorkers <= 0 {
		maxWorkers = 4
	}
	return &BatchProcessor{
		checker:    checker,
		maxWorkers: maxWorkers,
	}
}

// Process checks every path and returns results in input order
func (p *BatchProcessor) Process(ctx context.Context, paths []string) []BatchResult {
	if len(paths) == 0 {
		return []BatchResult{}
	}

	results := make([]BatchResult, len(paths))
	var wg sync.WaitGroup

	semaphore := make(chan struct{}, p.maxWorkers)

	for i, path := range paths {
		wg.Add(1)
		go func(idx int, docPath string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[idx] = BatchResult{Path: docPath, Err: ctx.Err()}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			report, err := p.checker.CheckFile(ctx, docPath)
			results[idx] = BatchResult{Path: docPath, Report: report, Err: err}
		}(i, path)
	}

	wg.Wait()

	return results
}
