package filter

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// EvaluatorOption configures an evaluator
type EvaluatorOption func(*ConcurrentEvaluator)

// WithWorkers sets the number of worker goroutines
func WithWorkers(workers int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if workers > 0 {
			e.workerCount = workers
		}
	}
}

// WithBatchSize sets the batch size for chunked processing
func WithBatchSize(size int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if size > 0 {
			e.batchSize = size
		}
	}
}

// ConcurrentEvaluator splits large record lists into chunks evaluated in
// parallel. Lists shorter than the batch size are evaluated in place.
type ConcurrentEvaluator struct {
	workerCount int
	batchSize   int
}

// NewConcurrentEvaluator creates a new concurrent evaluator
func NewConcurrentEvaluator(opts ...EvaluatorOption) *ConcurrentEvaluator {
	e := &ConcurrentEvaluator{
		workerCount: runtime.GOMAXPROCS(0),
		batchSize:   100,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Select returns the records matching filter, in their original order
func Select[R Record](ctx context.Context, e *ConcurrentEvaluator, filter Filter, records []R) ([]R, error) {
	if len(records) == 0 {
		return []R{}, nil
	}

	if len(records) < e.batchSize {
		return selectSequential(filter, records), nil
	}

	return selectConcurrent(ctx, e, filter, records)
}

// SelectBatch evaluates several filters against the same records
func SelectBatch[R Record](ctx context.Context, e *ConcurrentEvaluator, filters map[string]CompiledFilter, records []R) (map[string][]R, error) {
	results := make(map[string][]R, len(filters))
	if len(filters) == 0 || len(records) == 0 {
		return results, nil
	}

	type batchResult struct {
		name    string
		matches []R
	}
	resultChan := make(chan batchResult, len(filters))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workerCount)

	for name, filter := range filters {
		g.Go(func() error {
			matches, err := Select(ctx, e, filter, records)
			if err != nil {
				return err
			}
			resultChan <- batchResult{name: name, matches: matches}
			return nil
		})
	}

	err := g.Wait()
	close(resultChan)
	if err != nil {
		return nil, err
	}

	for result := range resultChan {
		results[result.name] = result.matches
	}
	return results, nil
}

func selectSequential[R Record](filter Filter, records []R) []R {
	matches := make([]R, 0, len(records)/4)
	for _, record := range records {
		if filter.Evaluate(record) {
			matches = append(matches, record)
		}
	}
	return matches
}

func selectConcurrent[R Record](ctx context.Context, e *ConcurrentEvaluator, filter Filter, records []R) ([]R, error) {
	chunkSize := max(len(records)/e.workerCount, e.batchSize)
	chunks := make([][]R, (len(records)+chunkSize-1)/chunkSize)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workerCount)

	for index := range chunks {
		start := index * chunkSize
		end := min(start+chunkSize, len(records))

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			// Each goroutine owns one slot
			chunks[index] = selectSequential(filter, records[start:end])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, chunk := range chunks {
		total += len(chunk)
	}
	matches := make([]R, 0, total)
	for _, chunk := range chunks {
		matches = append(matches, chunk...)
	}
	return matches, nil
}
