package services

import (
	"strings"

	"github.com/chr33s/mcpdoc/internal/core/domain"
	"github.com/chr33s/mcpdoc/internal/core/ports/driving"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// CatalogService serves the ordered list of configured doc sources.
type CatalogService struct {
	sources []domain.DocSource
}

// NewCatalogService creates a catalog over a copy of sources.
func NewCatalogService(sources []domain.DocSource) *CatalogService {
	cp := make([]domain.DocSource, len(sources))
	copy(cp, sources)
	return &CatalogService{sources: cp}
}

// List returns the configured sources in order.
func (s *CatalogService) List() []domain.DocSource {
	out := make([]domain.DocSource, len(s.sources))
	copy(out, s.sources)
	return out
}

// Render formats each source as its name followed by a URL or Path line.
// Entries are separated by a blank line.
func (s *CatalogService) Render() string {
	entries := make([]string, 0, len(s.sources))
	for _, src := range s.sources {
		entries = append(entries, renderSource(src))
	}
	return strings.Join(entries, "\n\n")
}

func renderSource(src domain.DocSource) string {
	if src.Kind() == domain.SourceRemote {
		return src.DisplayName() + "\nURL: " + src.Location
	}
	return src.DisplayName() + "\nPath: " + domain.CanonicalPath(src.Location)
}
