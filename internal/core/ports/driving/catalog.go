package driving

import "github.com/chr33s/mcpdoc/internal/core/domain"

// CatalogService answers list_doc_sources.
type CatalogService interface {
	// List returns the configured sources in order.
	List() []domain.DocSource

	// Render formats the catalog as the text returned to the host.
	// An empty catalog renders as the empty string.
	Render() string
}
