package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"kinship-engine/internal/model"
)

var (
	ErrMissingHouseholdID   = errors.New("household job without household_id")
	ErrDuplicateHouseholdID = errors.New("household_id appears more than once in batch")
)

// ProcessBatch builds every job on at most workers goroutines. Households
// share nothing, so results are keyed by household id with no ordering
// between them. Cancelling ctx stops scheduling new households; the trees
// already built are returned alongside the context error.
func ProcessBatch(ctx context.Context, jobs []model.HouseholdJob, workers int) (map[string]*model.TreeResponse, error) {
	seen := make(map[string]struct{}, len(jobs))
	for i, job := range jobs {
		if job.HouseholdID == "" {
			return nil, fmt.Errorf("job %d: %w", i, ErrMissingHouseholdID)
		}
		if _, dup := seen[job.HouseholdID]; dup {
			return nil, fmt.Errorf("job %d (%s): %w", i, job.HouseholdID, ErrDuplicateHouseholdID)
		}
		seen[job.HouseholdID] = struct{}{}
	}

	if workers < 1 {
		workers = 1
	}

	var mu sync.Mutex
	out := make(map[string]*model.TreeResponse, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, job := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			batchInFlight.Inc()
			defer batchInFlight.Dec()

			resp := Process(job)

			mu.Lock()
			out[job.HouseholdID] = resp
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return out, fmt.Errorf("batch of %d households: %w", len(jobs), err)
	}
	if err := ctx.Err(); err != nil {
		return out, fmt.Errorf("batch of %d households: %w", len(jobs), err)
	}
	return out, nil
}
