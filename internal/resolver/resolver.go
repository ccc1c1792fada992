// Package resolver runs the normalize, redirect, fetch pipeline for one
// request and collapses every failure into a single outcome.
package resolver

import (
	"context"
	"errors"

	infralogger "github.com/jonesrussell/north-cloud/post-resolver/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/domain"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/postpath"
)

// Fetcher loads a post by normalized path.
type Fetcher interface {
	FetchPost(ctx context.Context, path string) (*domain.ContentRecord, error)
}

// Policy decides whether a request is redirected instead of rendered.
type Policy interface {
	Decide(rc domain.RequestContext, path string) (domain.Redirect, bool)
}

// Resolver holds no per-request state and is safe for concurrent use.
type Resolver struct {
	fetcher Fetcher
	policy  Policy
}

// New creates a Resolver.
func New(fetcher Fetcher, policy Policy) *Resolver {
	return &Resolver{
		fetcher: fetcher,
		policy:  policy,
	}
}

// Resolve returns exactly one outcome for rc. The path is normalized once and
// handed to both the policy and the fetcher. When the policy redirects, the
// fetcher is not called.
func (r *Resolver) Resolve(ctx context.Context, rc domain.RequestContext) domain.Outcome {
	log := infralogger.FromContext(ctx)

	path, err := postpath.Normalize(rc.Segments)
	if err != nil {
		log.Info("Rejected post path",
			infralogger.Strings("segments", rc.Segments),
			infralogger.Error(err),
		)
		return domain.NotFoundOutcome()
	}

	log.Info("Resolving post",
		infralogger.String("path", path),
		infralogger.String("referrer", rc.Referrer),
		infralogger.Bool("tracking", rc.HasTracking),
	)

	if redirect, ok := r.policy.Decide(rc, path); ok {
		return domain.RedirectOutcome(redirect)
	}

	record, err := r.fetcher.FetchPost(ctx, path)
	if err != nil {
		logFetchError(log, path, err)
		return domain.NotFoundOutcome()
	}

	return domain.PropsOutcome(record)
}

func logFetchError(log infralogger.Logger, path string, err error) {
	if errors.Is(err, domain.ErrContentNotFound) {
		log.Info("Post not found", infralogger.String("path", path))
		return
	}
	log.Error("Failed to fetch post",
		infralogger.String("path", path),
		infralogger.Error(err),
	)
}
