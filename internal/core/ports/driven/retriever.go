package driven

import (
	"context"

	"github.com/chr33s/mcpdoc/internal/core/domain"
)

// Retriever acquires the content behind a fetch target.
// The fetch gate has already admitted the target when Retrieve is called.
type Retriever interface {
	// Retrieve reads target and returns its raw bytes.
	// Failures are reported as *domain.FetchError.
	Retrieve(ctx context.Context, target string) (*domain.RawDocument, error)
}

// RedirectValidator re-checks a redirect target discovered mid-retrieval
// (a meta-refresh tag). It returns a *domain.FetchError when the target
// is not allowed.
type RedirectValidator func(target string) error
