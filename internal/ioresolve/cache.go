package ioresolve

import (
	"context"

	"github.com/gnames/gnvern/pkg/db"
	gocache "github.com/patrickmn/go-cache"
)

// AmbiguityCache memoizes ComputeAmbiguousNames per filter for the
// duration of a batch operation. It is an explicit object passed to
// whoever needs the set; callers must Invalidate after any common-name
// mutation. Never shared across processes, never a package singleton.
type AmbiguityCache struct {
	memo *gocache.Cache
}

// NewAmbiguityCache creates an empty cache. Entries never expire on
// their own; batch lifetime is bounded by Invalidate calls.
func NewAmbiguityCache() *AmbiguityCache {
	return &AmbiguityCache{
		memo: gocache.New(gocache.NoExpiration, 0),
	}
}

// Get returns the ambiguous-name set for the filter, computing and
// memoizing it on first use.
func (a *AmbiguityCache) Get(
	ctx context.Context,
	q db.DBTX,
	f AmbiguityFilter,
) (map[string]bool, error) {
	if cached, found := a.memo.Get(f.key()); found {
		return cached.(map[string]bool), nil
	}

	set, err := ComputeAmbiguousNames(ctx, q, f)
	if err != nil {
		return nil, err
	}
	a.memo.Set(f.key(), set, gocache.NoExpiration)
	return set, nil
}

// Invalidate drops all memoized sets. Must be called after any
// common-name or taxon mutation.
func (a *AmbiguityCache) Invalidate() {
	a.memo.Flush()
}
