package driving

import "context"

// FetchService answers fetch_docs.
type FetchService interface {
	// Fetch gates, retrieves and normalises target.
	// Per-call failures are returned as *domain.FetchError.
	Fetch(ctx context.Context, target string) (string, error)
}
