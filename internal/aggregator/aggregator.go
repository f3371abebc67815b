package aggregator

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"reviewsync/internal/domain"
	"reviewsync/internal/source/appstore"
)

// SourceFetcher walks one sorted listing. Satisfied by appstore.Source.
type SourceFetcher interface {
	FetchReviews(ctx context.Context, workspaceID int64, externalID, country, sort string, pageCap, recordCap int) (*appstore.Result, error)
}

// Options bound one aggregation. Sources are listed in dedup priority
// order: when two listings return the same review id, the earlier source
// wins regardless of which goroutine finished first. WorkspaceID selects
// the call budget the fetches draw from.
type Options struct {
	WorkspaceID int64
	Sources     []string
	PageCap     int
	TotalLimit  int
	Concurrency int
}

// SourceError records one listing's failure without failing the run.
type SourceError struct {
	Source  string
	Code    domain.ErrorCode
	Message string
}

// Output is the merged, deduplicated fetch result. Fetched counts raw
// entries before dedup, so Fetched == len(Reviews) + Duplicates + Truncated.
type Output struct {
	Reviews          []domain.Review
	Fetched          int
	Duplicates       int
	Truncated        int
	Pages            int
	SourcesProcessed []string
	Errors           []SourceError
}

type Aggregator struct {
	fetcher SourceFetcher
	logger  *slog.Logger
}

func New(fetcher SourceFetcher, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		fetcher: fetcher,
		logger:  logger.With("component", "aggregator"),
	}
}

// Fetch runs the source fetcher once per configured sort order with bounded
// concurrency and merges the results. A single listing's failure is recorded
// and the others proceed; only total failure of every listing is an error.
func (a *Aggregator) Fetch(ctx context.Context, externalID, country string, opts Options) (*Output, error) {
	if len(opts.Sources) == 0 {
		return &Output{}, nil
	}

	perSourceCap := ceilDiv(opts.TotalLimit, len(opts.Sources))

	type sourceResult struct {
		res *appstore.Result
		err error
	}
	results := make([]sourceResult, len(opts.Sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Concurrency, 1))

	for i, sort := range opts.Sources {
		g.Go(func() error {
			res, err := a.fetcher.FetchReviews(gctx, opts.WorkspaceID, externalID, country, sort, opts.PageCap, perSourceCap)
			results[i] = sourceResult{res: res, err: err}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := &Output{}
	seen := make(map[string]struct{})

	// Merge in configured order so the tie-break is the fixed source
	// priority, not goroutine arrival order.
	for i, sort := range opts.Sources {
		r := results[i]

		if r.err != nil {
			if domain.IsCancellation(r.err) {
				return nil, r.err
			}
			out.Errors = append(out.Errors, SourceError{
				Source:  sort,
				Code:    domain.CodeOf(r.err),
				Message: r.err.Error(),
			})
			a.logger.Warn("source fetch failed",
				"sort", sort,
				"code", string(domain.CodeOf(r.err)),
				"error", r.err,
			)
		}

		if r.res == nil {
			continue
		}

		out.Pages += r.res.Pages
		out.Fetched += len(r.res.Reviews)
		if r.res.Pages > 0 || r.err == nil {
			out.SourcesProcessed = append(out.SourcesProcessed, sort)
		}

		for _, review := range r.res.Reviews {
			if _, dup := seen[review.ExternalID]; dup {
				out.Duplicates++
				continue
			}
			seen[review.ExternalID] = struct{}{}
			out.Reviews = append(out.Reviews, review)
		}
	}

	if len(out.Errors) == len(opts.Sources) && out.Fetched == 0 {
		first := out.Errors[0]
		return out, domain.NewSyncError(first.Code, "all sources failed: "+first.Message)
	}

	if opts.TotalLimit > 0 && len(out.Reviews) > opts.TotalLimit {
		out.Truncated = len(out.Reviews) - opts.TotalLimit
		out.Reviews = out.Reviews[:opts.TotalLimit]
	}

	return out, nil
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	return (a + b - 1) / b
}
