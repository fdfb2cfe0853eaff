package driven

import (
	"time"

	"github.com/chr33s/mcpdoc/internal/core/domain"
)

// FetchObserver is notified once per completed fetch.
// Implementations must be safe for concurrent use.
type FetchObserver interface {
	// ObserveFetch records a fetch of the given kind. outcome is "ok" or an
	// ErrorKind label.
	ObserveFetch(kind domain.SourceKind, outcome string, elapsed time.Duration)
}
