package ethproofs

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"
)

// Concurrency limits of the batch helpers.
const (
	DefaultConcurrency = 5
	MaxConcurrency     = 20
)

func clampConcurrency(n int) int {
	if n <= 0 {
		return DefaultConcurrency
	}
	return min(n, MaxConcurrency)
}

// ListAllProofs pages through ListProofs starting at req.Offset until
// total_count proofs have been seen or a page comes back empty. The cursor
// advances by the records received; the offset echoed by the server is
// ignored.
func (c *Client) ListAllProofs(ctx context.Context, req ListProofsRequest) ([]ProofRecord, error) {
	var all []ProofRecord

	for {
		page, err := c.ListProofs(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("failed to list proofs at offset %d: %w", req.Offset, err)
		}
		all = append(all, page.Proofs...)

		c.logger.Debug().
			Uint64("offset", req.Offset).
			Int("count", len(page.Proofs)).
			Uint64("total", page.TotalCount).
			Msg("Retrieved proofs page")

		if len(page.Proofs) == 0 {
			break
		}
		req.Offset += uint64(len(page.Proofs))
		if req.Offset >= page.TotalCount {
			break
		}
	}

	return all, nil
}

// BatchDownloadResult contains the results of a batch download
type BatchDownloadResult struct {
	Requested  int
	Successful map[string]DownloadProofResponse
	Failed     []ItemError
}

// ItemError records the failure of one item of a batch
type ItemError struct {
	Item string
	Err  error
}

// Error implements the error interface
func (e ItemError) Error() string {
	return fmt.Sprintf("%s: %v", e.Item, e.Err)
}

// Unwrap returns the underlying error
func (e ItemError) Unwrap() error { return e.Err }

// BatchDownloadProofs downloads proofs concurrently. Each download is
// independent: a failure is recorded and the others continue. Repeated ids
// are downloaded once and counted once in Requested.
func (c *Client) BatchDownloadProofs(ctx context.Context, proofIDs []string, concurrency int) BatchDownloadResult {
	proofIDs = slices.Compact(slices.Sorted(slices.Values(proofIDs)))
	result := BatchDownloadResult{
		Requested:  len(proofIDs),
		Successful: make(map[string]DownloadProofResponse, len(proofIDs)),
	}

	if len(proofIDs) == 0 {
		return result
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(clampConcurrency(concurrency))

	type outcome struct {
		id   string
		resp DownloadProofResponse
		err  error
	}
	outcomes := make(chan outcome, len(proofIDs))

	for _, id := range proofIDs {
		g.Go(func() error {
			resp, err := c.DownloadProof(ctx, id)
			outcomes <- outcome{id: id, resp: resp, err: err}
			return nil
		})
	}

	g.Wait()
	close(outcomes)

	for o := range outcomes {
		if o.err != nil {
			result.Failed = append(result.Failed, ItemError{Item: o.id, Err: o.err})
			continue
		}
		result.Successful[o.id] = o.resp
	}

	return result
}

// BatchTransitionResult contains the results of a batch transition
type BatchTransitionResult struct {
	Status     ProofStatus
	Requested  int
	Successful map[uint64]uint64 // block number -> proof ID
	Failed     []ItemError
}

// BatchTransition moves many blocks of one cluster to the queued or proving
// state concurrently. Proved is not accepted since it needs a proof per
// block; use ProvedProof. Repeated blocks are transitioned once.
func (c *Client) BatchTransition(ctx context.Context, status ProofStatus, clusterID uint64, blocks []uint64, concurrency int) (BatchTransitionResult, error) {
	blocks = slices.Compact(slices.Sorted(slices.Values(blocks)))
	result := BatchTransitionResult{
		Status:     status,
		Requested:  len(blocks),
		Successful: make(map[uint64]uint64, len(blocks)),
	}

	var transition func(ctx context.Context, block uint64) (uint64, error)
	switch status {
	case ProofStatusQueued:
		transition = func(ctx context.Context, block uint64) (uint64, error) {
			resp, err := c.QueueProof(ctx, block, clusterID)
			return resp.ProofID, err
		}
	case ProofStatusProving:
		transition = func(ctx context.Context, block uint64) (uint64, error) {
			resp, err := c.ProvingProof(ctx, block, clusterID)
			return resp.ProofID, err
		}
	default:
		return result, fmt.Errorf("batch transition to %q is not supported", status)
	}

	if len(blocks) == 0 {
		return result, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(clampConcurrency(concurrency))

	type outcome struct {
		block   uint64
		proofID uint64
		err     error
	}
	outcomes := make(chan outcome, len(blocks))

	for _, block := range blocks {
		g.Go(func() error {
			proofID, err := transition(ctx, block)
			outcomes <- outcome{block: block, proofID: proofID, err: err}
			return nil
		})
	}

	g.Wait()
	close(outcomes)

	for o := range outcomes {
		if o.err != nil {
			result.Failed = append(result.Failed, ItemError{Item: fmt.Sprintf("block %d", o.block), Err: o.err})
			continue
		}
		result.Successful[o.block] = o.proofID
	}

	c.logger.Debug().
		Str("status", status.String()).
		Int("successful", len(result.Successful)).
		Int("failed", len(result.Failed)).
		Msg("Batch transition finished")

	return result, nil
}
