package repository

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/cperrin88/vpmsync/internal/logger"
	"github.com/cperrin88/vpmsync/pkg/model"
)

// DefaultMaxConcurrent caps in-flight fetches when no limit is configured.
const DefaultMaxConcurrent = 5

// Hooks receives batch progress.
type Hooks struct {
	// OnProgress is called once per completed fetch with the number of
	// completed fetches so far and the batch size. Calls come from a single
	// goroutine and done strictly increases.
	OnProgress func(done, total int)
}

// BatchResult pairs a submitted descriptor with its outcome.
type BatchResult struct {
	Descriptor model.RepositoryDescriptor `json:"descriptor"`
	Outcome    model.DownloadOutcome      `json:"outcome"`
}

// Synchronizer fetches many repositories concurrently.
type Synchronizer struct {
	fetcher       *Fetcher
	maxConcurrent int
}

// NewSynchronizer creates a synchronizer running at most maxConcurrent
// fetches at once.
func NewSynchronizer(fetcher *Fetcher, maxConcurrent int) *Synchronizer {
	if maxConcurrent < 1 {
		maxConcurrent = DefaultMaxConcurrent
	}
	return &Synchronizer{fetcher: fetcher, maxConcurrent: maxConcurrent}
}

// ImportBatch fetches every descriptor and returns the outcomes in
// submission order. After all fetches finish, a Success whose id was already
// known or accepted earlier in the batch becomes Duplicated.
//
// If ctx is cancelled, ImportBatch returns ctx.Err() and no results.
func (s *Synchronizer) ImportBatch(ctx context.Context, descriptors []model.RepositoryDescriptor, known *KnownSet, hooks Hooks) ([]BatchResult, error) {
	if known == nil {
		known = NewKnownSet()
	}
	total := len(descriptors)
	results := make([]BatchResult, total)
	if total == 0 {
		return results, nil
	}

	logger.Info("downloading repositories", logger.Fields{"count": total})

	completed := make(chan struct{}, total)
	progressDone := make(chan struct{})
	go func() {
		defer close(progressDone)
		done := 0
		for range completed {
			done++
			if hooks.OnProgress != nil {
				hooks.OnProgress(done, total)
			}
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)
	for i, desc := range descriptors {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = BatchResult{
				Descriptor: desc,
				Outcome:    s.fetcher.Fetch(gctx, desc.URL, desc.Headers, known),
			}
			completed <- struct{}{}
			return nil
		})
	}
	err := g.Wait()
	close(completed)
	<-progressDone

	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dedupBatch(results, known)
	return results, nil
}

func dedupBatch(results []BatchResult, known *KnownSet) {
	seen := known.IDs()
	for i := range results {
		outcome := results[i].Outcome
		if !outcome.IsSuccess() {
			continue
		}
		id := outcome.Repository.ID
		if _, ok := seen[id]; ok {
			logger.Info("duplicated repository in list", logger.Fields{"url": outcome.Repository.URL, "id": id})
			results[i].Outcome = model.Duplicated()
			continue
		}
		seen[id] = struct{}{}
	}
}
