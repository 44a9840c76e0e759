package search

import "context"

// Provider turns a query string into candidate site URLs. Implementations
// are best-effort: a missing key or a payload we cannot recognize yields an
// empty result, and network failures come back as ordinary errors for the
// caller to skip.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, count int) ([]string, error)
}
